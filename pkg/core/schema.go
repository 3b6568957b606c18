package core

// Column names as they appear in tables and exports
const (
	ColC                 = "C#"
	ColH                 = "H#"
	ColN                 = "N#"
	ColO                 = "O#"
	ColDBE               = "DBE"
	ColDBEPerC           = "DBE/C#"
	ColHC                = "H/C"
	ColSample            = "Sample"
	ColDescription       = "Description"
	ColFormula           = "Formula"
	ColMass              = "Mass"
	ColTheoreticalMass   = "Theoretical mass"
	ColError             = "Error"
	ColFamily            = "Family"
	ColAbsoluteIntensity = "Absolute intensity"
	ColRelativeIntensity = "Relative intensity"

	ColMassAverage  = "Mass (Average)"
	ColErrorAverage = "Error (Average)"

	averageSuffix = "(Average)"
)

// RawColumns returns the canonical display order of a loaded table.
func RawColumns(mode IntensityMode) []string {
	return []string{
		ColC, ColH, ColN, ColO, ColDBE, ColDBEPerC, ColHC,
		ColSample, ColDescription, ColFormula,
		ColMass, ColTheoreticalMass, ColError,
		ColFamily, mode.Column(),
	}
}

// AveragedColumns returns the column order of an averaged or common-species
// view over the given groups.
func AveragedColumns(mode IntensityMode, groups []Group) []string {
	cols := []string{
		ColC, ColH, ColN, ColO, ColDBE, ColDBEPerC, ColHC,
		ColFormula, ColMassAverage, ColTheoreticalMass, ColErrorAverage,
		ColFamily,
	}
	for _, g := range groups {
		cols = append(cols, mode.GroupColumn(g))
	}
	return append(cols, mode.AverageColumn())
}

// MassColumn returns the mass column name for a view kind.
func MassColumn(kind ViewKind) string {
	if kind.IsDerived() {
		return ColMassAverage
	}
	return ColMass
}

// IntensityColumn returns the active intensity column for a view.
func IntensityColumn(kind ViewKind, mode IntensityMode) string {
	if kind.IsDerived() {
		return mode.AverageColumn()
	}
	return mode.Column()
}

// Families in display order
const (
	FamilyAliphatics            = "Aliphatics"
	FamilyAromatics             = "Aromatics"
	FamilyCondensedAromatics    = "Condensed Aromatics"
	FamilyHCClusters            = "HC Clusters"
	FamilyCarbonClusters        = "Carbon Clusters"
	FamilyFullerenes            = "Fullerenes"
	FamilyNitrogenSpecies       = "Nitrogen Species"
	FamilyOxygenSpecies         = "Oxygen Species"
	FamilyNitrogenOxygenSpecies = "Nitrogen Oxygen Species"
	FamilyElements              = "Elements"
	FamilyOrganometallics       = "Organo-metallics"
)

// Families lists every known family in display order.
var Families = []string{
	FamilyAliphatics,
	FamilyAromatics,
	FamilyCondensedAromatics,
	FamilyHCClusters,
	FamilyCarbonClusters,
	FamilyFullerenes,
	FamilyNitrogenSpecies,
	FamilyOxygenSpecies,
	FamilyNitrogenOxygenSpecies,
	FamilyElements,
	FamilyOrganometallics,
}

// FamilyRank returns the display position of a family; unknown families
// sort after all known ones.
func FamilyRank(family string) int {
	for i, f := range Families {
		if f == family {
			return i
		}
	}
	return len(Families)
}
