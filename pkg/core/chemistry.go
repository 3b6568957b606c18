package core

import "math"

// CondensedAromaticThreshold is the DBE/C# ratio at or above which an
// aromatic compound is classified as condensed.
const CondensedAromaticThreshold = 0.67

// Species groups used to split plots by heteroatom content
const (
	SpeciesCH   = "CH Species"
	SpeciesCHN  = "CHN Species"
	SpeciesCHO  = "CHO Species"
	SpeciesCHNO = "CHNO Species"
)

// SpeciesGroups lists the species groups in display order.
var SpeciesGroups = []string{SpeciesCH, SpeciesCHN, SpeciesCHO, SpeciesCHNO}

// Reclassify moves aromatics with DBE/C# >= 0.67 into the condensed
// aromatics family. Applying it more than once has no further effect.
func Reclassify(r *Record) {
	if r.Family == FamilyAromatics && r.DBEPerC >= CondensedAromaticThreshold {
		r.Family = FamilyCondensedAromatics
	}
}

// ReclassifyAll applies Reclassify to every record.
func ReclassifyAll(records []Record) {
	for i := range records {
		Reclassify(&records[i])
	}
}

// AromaticityIndex computes AI = (1 + C - O - H/2) / (C - O - N).
// It is 0 when either term is not positive.
func AromaticityIndex(c, h, n, o int) float64 {
	dbe := 1 + float64(c) - float64(o) - float64(h)/2
	cai := float64(c - o - n)
	if dbe <= 0 || cai <= 0 {
		return 0
	}
	return dbe / cai
}

// AI returns the record's aromaticity index.
func (r *Record) AI() float64 {
	return AromaticityIndex(r.C, r.H, r.N, r.O)
}

// SpeciesGroupOf maps a family to its species group, or "" when the family
// belongs to none (elements, organo-metallics, unknown).
func SpeciesGroupOf(family string) string {
	switch family {
	case FamilyAliphatics, FamilyAromatics, FamilyCondensedAromatics,
		FamilyHCClusters, FamilyCarbonClusters, FamilyFullerenes:
		return SpeciesCH
	case FamilyNitrogenSpecies:
		return SpeciesCHN
	case FamilyOxygenSpecies:
		return SpeciesCHO
	case FamilyNitrogenOxygenSpecies:
		return SpeciesCHNO
	default:
		return ""
	}
}

// RoundFloat rounds a float to n decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
