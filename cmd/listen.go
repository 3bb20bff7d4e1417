package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/intonado/intonado/note"
	"github.com/intonado/intonado/util"
)

var listenPort int

func init() {
	listenCmd.Flags().IntVarP(&listenPort, "port", "p", 0, "MIDI input port number")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Monitors a MIDI input and prints the held pitches",
	Long:  `Monitors a MIDI input and prints the held pitches with their frequencies, for checking against a reference instrument.`,
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(listen())
	},
}

func listen() error {
	defer midi.CloseDriver()
	in, err := midi.InPort(listenPort)
	if err != nil {
		return fmt.Errorf("cannot open MIDI input %d: %w", listenPort, err)
	}

	var mu sync.Mutex
	held := make(map[uint8]bool)
	deb := debounce.New(50 * time.Millisecond)

	printHeld := func() {
		mu.Lock()
		keys := util.GetKeysSorted(held)
		mu.Unlock()
		if len(keys) == 0 {
			return
		}
		for _, k := range keys {
			fmt.Printf("%-4s (%3d) %8.2f Hz  ", note.MIDIToName(k), k, note.MIDIToFreq(k))
		}
		fmt.Println()
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			mu.Lock()
			held[key] = true
			mu.Unlock()
			deb(printHeld)
		case msg.GetNoteEnd(&ch, &key):
			mu.Lock()
			delete(held, key)
			mu.Unlock()
			deb(printHeld)
		default:
			// ignore
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	fmt.Printf("Listening on %s, ctrl-c to quit\n", in.String())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	return nil
}
