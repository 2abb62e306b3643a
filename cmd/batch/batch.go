// Package batch handles batch processing of files
package batch

import (
	"fmt"

	"fjacquet/csv2qif/cmd/common"
	"fjacquet/csv2qif/cmd/root"
	"fjacquet/csv2qif/internal/fileutils"
	"fjacquet/csv2qif/internal/logging"
	"fjacquet/csv2qif/internal/parsererror"

	"github.com/spf13/cobra"
)

var (
	// Flags holds the mapping flags shared with convert
	Flags common.Flags

	// InputDir is the directory scanned for CSV files
	InputDir string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch convert the CSV files of a directory",
	Long: `Batch convert every .csv file in a directory to a .qif file beside it.

All files share the same options. --csv and --qif take options only, no file
name. Processing stops at the first file that fails.

Example:
  csv2qif batch --dir statements/ --company Shinsei:Bank
  csv2qif batch --dir cards/ --csv encoding=sjis,slice=2:-4 --fieldMap Date:1,Payee:2,Debit:4`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&InputDir, "dir", "", "directory holding the CSV files")
	Cmd.Flags().StringVar(&Flags.CSV, "csv", "", "CSV options, e.g. encoding=sjis,slice=1:,dtFmt=%Y%m%d")
	Cmd.Flags().StringVar(&Flags.QIF, "qif", "", "QIF options, e.g. encoding=utf8,type=Bank")
	Cmd.Flags().StringVar(&Flags.FieldMap, "fieldMap", "", "comma-separated Field:position pairs")
	Cmd.Flags().StringVar(&Flags.Company, "company", "", "predefined institution Name:Type")
	_ = Cmd.MarkFlagRequired("dir")
	Cmd.MarkFlagsMutuallyExclusive("fieldMap", "company")
	Cmd.MarkFlagsOneRequired("fieldMap", "company")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	log := root.GetLogger()

	opts, err := common.BuildOptions(Flags, root.GetConfig(), root.GetPresets())
	if err != nil {
		log.WithError(err).Error("Invalid options")
		return err
	}
	if opts.CSV.File != "" || opts.QIF.File != "" {
		err := &parsererror.ConfigError{Option: "--csv/--qif", Value: opts.CSV.File + opts.QIF.File, Reason: "batch takes no file names, only options"}
		log.WithError(err).Error("Invalid options")
		return err
	}

	files, err := fileutils.ListFilesWithExtension(InputDir, ".csv")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn("No CSV files found in input directory", logging.F(logging.FieldInputFile, InputDir))
		return nil
	}
	log.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))

	total, err := common.ProcessFiles(common.DefaultConverter, files, opts, log)
	if err != nil {
		log.WithError(err).Error("Batch conversion stopped")
		return err
	}
	log.Info(fmt.Sprintf("Batch processing completed. %d files converted.", len(files)),
		logging.F(logging.FieldRecords, total.Records),
		logging.F(logging.FieldNet, total.NetString()),
	)
	return nil
}
