// Package presets lists the known institution presets
package presets

import (
	"encoding/csv"
	"fmt"

	"fjacquet/csv2qif/cmd/root"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

// Cmd represents the presets command
var Cmd = &cobra.Command{
	Use:   "presets",
	Short: "List the institution presets accepted by --company",
	Long: `List the institution presets accepted by --company as CSV, one preset per
row: the built-in ones plus those of the file named by presets.file.

Example:
  csv2qif presets`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         presetsFunc,
}

func presetsFunc(cmd *cobra.Command, args []string) error {
	list := root.GetPresets().List()
	w := csv.NewWriter(cmd.OutOrStdout())
	if err := gocsv.MarshalCSV(list, gocsv.NewSafeCSVWriter(w)); err != nil {
		root.GetLogger().WithError(err).Error("Failed to list presets")
		return fmt.Errorf("error writing presets: %w", err)
	}
	return nil
}
