package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/intonado/intonado/config"
	"github.com/intonado/intonado/session"
	"github.com/intonado/intonado/tracelog"
	"github.com/intonado/intonado/trainer"
)

var (
	renderOutput      string
	renderTextFile    string
	renderDryRun      bool
	renderVerbose     bool
	renderMaxDuration float64
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output MIDI file (overrides config)")
	renderCmd.Flags().Float64Var(&renderMaxDuration, "max-duration", 0, "duration budget in seconds (overrides config)")
	renderCmd.Flags().StringVar(&renderTextFile, "text-file", "", "also write a text transcript here")
	renderCmd.Flags().BoolVar(&renderDryRun, "dry-run", false, "print the plan without writing MIDI")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "print every scheduled exercise")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <config.yaml>",
	Short: "Renders a practice session MIDI file from a config",
	Long:  `Renders a practice session MIDI file from a config`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(render(args[0]))
	},
}

func render(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if renderMaxDuration > 0 {
		cfg.MaxDuration = renderMaxDuration
	}
	rng := trainer.Rng(cfg)
	res, err := trainer.FromConfig(cfg, rng)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if len(res.Exercises) == 0 {
		fmt.Fprintln(os.Stderr, "warning: config produced no exercises, nothing to do")
		return nil
	}

	plan := trainer.Plan(cfg, res.Exercises)
	params := trainer.Params(cfg)
	sessionID := uuid.New().String()
	meta := tracelog.Meta{
		SessionID:       sessionID,
		ScaleName:       cfg.Scale.Root + " " + cfg.Scale.Kind,
		BeatsPerMeasure: params.BeatsPerMeasure,
	}
	if cfg.Sequences != nil {
		meta.TimeSignature = cfg.Sequences.Signature
		if meta.TimeSignature == "" {
			meta.TimeSignature = "4/4"
		}
	}

	fmt.Printf("Session %s: %d exercises, %d scheduled entries\n",
		sessionID, len(res.Exercises), len(plan))
	fmt.Printf("Estimated playtime: %.0fs (budget %.0fs)\n",
		session.EstimateSeconds(plan, params), cfg.MaxDuration)

	if renderVerbose || renderDryRun {
		if err := tracelog.Write(os.Stdout, plan, meta); err != nil {
			return err
		}
	}
	if renderTextFile != "" {
		f, err := os.Create(renderTextFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := tracelog.Write(f, plan, meta); err != nil {
			return err
		}
	}
	if renderDryRun {
		return nil
	}

	out := cfg.Output
	if renderOutput != "" {
		out = renderOutput
	}
	if err := session.WriteFile(out, plan, params, "intonado "+sessionID); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}
