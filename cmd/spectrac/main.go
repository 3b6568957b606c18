// SpectraC - mass spectrometry peak list reconciliation tool
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/SpectraC/cmd/spectrac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
