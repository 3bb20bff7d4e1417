package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/intonado/intonado/schedule"
	"github.com/intonado/intonado/session"
	"github.com/intonado/intonado/tracelog"
)

var (
	replayOutput string
	replayReps   int
)

func init() {
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "replay.mid", "output MIDI file")
	replayCmd.Flags().IntVar(&replayReps, "repetitions", 1, "repetitions per exercise")
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <session.log>",
	Short: "Rebuilds a session MIDI file from its text transcript",
	Long:  `Rebuilds a session MIDI file from its text transcript`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(replay(args[0]))
	},
}

func replay(logPath string) error {
	f, err := os.Open(logPath)
	if err != nil {
		return err
	}
	defer f.Close()

	exercises, err := tracelog.Read(f)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		fmt.Println("No replayable exercises in transcript.")
		return nil
	}

	plan := schedule.Plan(exercises, schedule.Policy{Repetitions: replayReps})
	name := "intonado replay " + uuid.New().String()
	if err := session.WriteFile(replayOutput, plan, session.DefaultParams(), name); err != nil {
		return err
	}
	fmt.Printf("Replayed %d exercises into %s\n", len(exercises), replayOutput)
	return nil
}
