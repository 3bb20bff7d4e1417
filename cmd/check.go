package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/intonado/intonado/config"
	"github.com/intonado/intonado/notation"
	"github.com/intonado/intonado/trainer"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <config.yaml>",
	Short: "Parses and validates every notation sequence in a config",
	Long:  `Parses and validates every notation sequence in a config`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(check(args[0]))
	},
}

func check(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	seqs := cfg.Sequences
	if seqs == nil || len(seqs.Notes) == 0 {
		fmt.Println("No sequences in config.")
		return nil
	}
	unit, err := seqs.Unit()
	if err != nil {
		return err
	}
	beats, err := seqs.BeatsPerMeasure()
	if err != nil {
		return err
	}
	var key *notation.Key
	if seqs.Scale != "" {
		if key, err = notation.ParseKey(seqs.Scale); err != nil {
			return err
		}
	}
	opts := notation.Options{UnitLength: unit, Key: key}

	bad := 0
	for i, line := range seqs.Notes {
		label := trainer.Label(i, line)
		elems, err := notation.ParseElements(line, opts)
		if err != nil {
			bad++
			fmt.Fprintf(os.Stderr, "%s: %v\n", label, err)
			continue
		}
		report := notation.ValidateSignature(elems, beats, label)
		for _, v := range report.Violations {
			bad++
			fmt.Fprintln(os.Stderr, v.String())
		}
		if len(report.Violations) == 0 {
			fmt.Printf("%s: ok (%d measures)\n", label, len(report.Measures))
		}
	}
	if bad > 0 {
		return errors.Errorf("%d problem(s) found", bad)
	}
	return nil
}
