package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/intonado/intonado/midi"
	"github.com/intonado/intonado/note"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Summarizes the note content of a MIDI file",
	Long:  `Summarizes the note content of a MIDI file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(inspect(args[0]))
	},
}

func inspect(path string) error {
	s, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	st := midi.Summarize(s)
	fmt.Printf("tracks: %d\n", st.Tracks)
	fmt.Printf("note ons: %d\n", st.NoteOns)
	fmt.Printf("note offs: %d\n", st.NoteOffs)
	if st.NoteOns > 0 {
		fmt.Printf("range: %s (%d) .. %s (%d)\n",
			note.MIDIToName(st.LowestKey), st.LowestKey,
			note.MIDIToName(st.HighestKey), st.HighestKey)
	}
	fmt.Printf("length: %d ticks\n", st.TotalTicks)
	return nil
}
