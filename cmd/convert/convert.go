// Package convert handles single-file CSV to QIF conversion
package convert

import (
	"fjacquet/csv2qif/cmd/common"
	"fjacquet/csv2qif/cmd/root"
	"fjacquet/csv2qif/internal/logging"

	"github.com/spf13/cobra"
)

// Flags holds the values of the convert flags
var Flags common.Flags

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert one CSV file to QIF",
	Long: `Convert one CSV statement to a QIF file.

--csv and --qif take a file name followed by comma-separated key=value options.
  --csv keys: encoding, slice (START:STOP, lines kept), dtFmt (strftime layout)
  --qif keys: encoding, dtFmt, type (Cash, Bank, CCard, Invst)
Without a --qif file the output is written next to the input with a .qif
extension.

Example:
  csv2qif convert --csv data.csv,encoding=sjis,slice=1:,dtFmt=%Y%m%d \
    --qif type=CCard,encoding=utf8 --fieldMap Date:0,Amount:2,Payee:5,Memo:9
  csv2qif convert --csv jp-post.csv --company JP-Post:Bank`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         convertFunc,
}

func init() {
	Cmd.Flags().StringVar(&Flags.CSV, "csv", "", "CSV input file followed by options, e.g. data.csv,encoding=sjis,slice=1:,dtFmt=%Y%m%d")
	Cmd.Flags().StringVar(&Flags.QIF, "qif", "", "QIF output file followed by options, e.g. my.qif,encoding=sjis,type=Bank")
	Cmd.Flags().StringVar(&Flags.FieldMap, "fieldMap", "", "comma-separated Field:position pairs, e.g. Date:0,Amount:2,Payee:5,Memo:9")
	Cmd.Flags().StringVar(&Flags.Company, "company", "", "predefined institution Name:Type, e.g. Shinsei:Bank")
	_ = Cmd.MarkFlagRequired("csv")
	Cmd.MarkFlagsMutuallyExclusive("fieldMap", "company")
	Cmd.MarkFlagsOneRequired("fieldMap", "company")
}

func convertFunc(cmd *cobra.Command, args []string) error {
	log := root.GetLogger()

	opts, err := common.BuildOptions(Flags, root.GetConfig(), root.GetPresets())
	if err != nil {
		log.WithError(err).Error("Invalid options")
		return err
	}
	log.Debug("Options",
		logging.F(logging.FieldInputFile, opts.CSV.File),
		logging.F(logging.FieldOutputFile, opts.QIF.File),
		logging.F(logging.FieldPreset, Flags.Company),
		logging.F(logging.FieldFieldMap, opts.FieldMap.String()),
	)

	if _, err := common.ProcessFile(common.DefaultConverter, opts, log); err != nil {
		log.WithError(err).Error("Conversion failed")
		return err
	}
	return nil
}
