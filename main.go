package main

import (
	"fmt"
	"os"

	"fjacquet/csv2qif/cmd/batch"
	"fjacquet/csv2qif/cmd/convert"
	"fjacquet/csv2qif/cmd/presets"
	"fjacquet/csv2qif/cmd/root"
	"fjacquet/csv2qif/internal/config"
)

func init() {
	// Load .env silently before the configuration reads the environment.
	_, _ = config.LoadEnv()

	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(presets.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
