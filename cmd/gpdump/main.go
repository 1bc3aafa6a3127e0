package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	gp "github.com/slundi/gogp"
	"github.com/slundi/gogp/internal/midiname"
	"github.com/slundi/gogp/internal/trackcolor"
)

func main() {
	root := &cobra.Command{
		Use:   "gpdump FILE",
		Short: "Dump a decoded Guitar Pro tablature file",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	root.Flags().Bool("encode-check", false, "re-encode the song and report whether its length matches the input")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	buf, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	song, err := gp.Decode(buf)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	bold := color.New(color.Bold)
	bold.Printf("%s", song.Title)
	fmt.Printf("  (%s, tempo %d)\n", song.Version.Raw, song.Tempo)

	for _, t := range song.Tracks {
		swatch := trackcolor.Swatch(t.Color)
		name := midiname.Instrument(song.Channels[t.ChannelIndex].Instrument, t.Percussion)
		fmt.Printf("%s track %d: %-20s %d strings  %s\n", swatch, t.Number, t.Name, len(t.Strings), name)
	}

	fmt.Printf("measures: %d\n", len(song.MeasureHeaders))
	for _, g := range gp.BuildRepeatGroups(song.MeasureHeaders) {
		fmt.Printf("repeat group: headers=%v openings=%v closings=%v\n", g.Headers, g.Openings, g.Closings)
	}

	if checkEncode, _ := cmd.Flags().GetBool("encode-check"); checkEncode {
		out, err := gp.Encode(song)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if len(out) == len(buf) {
			color.Green("round-trip: %d bytes match length", len(out))
		} else {
			color.Red("round-trip: got %d bytes, want %d", len(out), len(buf))
		}
	}

	return nil
}
