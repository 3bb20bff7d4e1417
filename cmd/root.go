package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intonado",
	Short: "Intonation practice session generator",
	Long:  `Compiles melodic notation and vocal exercises into practice session MIDI files.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
