package main

import (
	"fmt"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/sketchboard/internal/geom"
	"github.com/pstuifzand/sketchboard/internal/palette"
	"github.com/pstuifzand/sketchboard/internal/replay"
	"github.com/pstuifzand/sketchboard/internal/share"
)

func encodeCmd(c *cli) *cobra.Command {
	var origin string
	var copyLink bool
	var tokenOnly bool
	var normalizeColors bool
	cmd := &cobra.Command{
		Use:   "encode <session.json|session.yaml|->",
		Short: "Create a share link from a drawing session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := loadSession(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := palette.Validate(info.Options.DrawOptions); err != nil {
				return fmt.Errorf("invalid draw options: %w", err)
			}
			if normalizeColors {
				if err := palette.NormalizeOptions(&info.Options.DrawOptions); err != nil {
					return err
				}
			}
			applyCanvasDefaults(info, c.cfg)

			if origin == "" {
				origin = c.cfg.ShareOrigin()
			}

			var out string
			if tokenOnly {
				out, err = share.Encode(info.Lines, info.Options)
			} else {
				out, err = share.NewCodec(origin).CreateURL(info.Lines, info.Options)
			}
			if err != nil {
				return err
			}

			if copyLink {
				if err := clipboard.WriteAll(out); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				cmd.PrintErrln("Copied to clipboard")
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "", "Origin of the share link (default from config)")
	cmd.Flags().BoolVar(&copyLink, "copy", false, "Copy the result to the clipboard")
	cmd.Flags().BoolVar(&normalizeColors, "normalize-colors", false, "Write colours as #rrggbb")
	cmd.Flags().BoolVar(&tokenOnly, "token", false, "Print only the token instead of a full link")
	return cmd
}

func decodeCmd(c *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decode <link|token>",
		Short: "Print the drawing session carried by a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := share.Decode(tokenFromArg(args[0]))
			if err != nil {
				return fmt.Errorf("failed to decode share link: %w", err)
			}
			return writeSession(cmd.OutOrStdout(), info, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	return cmd
}

func statsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <link|token>",
		Short: "Summarize the strokes and replay timing of a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := share.Decode(tokenFromArg(args[0]))
			if err != nil {
				return fmt.Errorf("failed to decode share link: %w", err)
			}

			out := cmd.OutOrStdout()
			total := 0.0
			longest := 0.0
			for _, line := range info.Lines {
				l := geom.LineLength(line)
				total += l
				longest = math.Max(longest, l)
			}
			schedule := replay.NewSchedule(info.Lines, info.Options.ReplayOptions, c.cfg.ReplayBaseSpeed())

			fmt.Fprintf(out, "Canvas:   %gx%g\n", info.Options.Width, info.Options.Height)
			fmt.Fprintf(out, "Lines:    %d\n", len(info.Lines))
			fmt.Fprintf(out, "Points:   %d\n", info.PointCount())
			fmt.Fprintf(out, "Length:   %.1f (longest %.1f)\n", total, longest)
			if r, ok := geom.Bounds(info.Lines...); ok {
				fmt.Fprintf(out, "Bounds:   (%g,%g)-(%g,%g), %gx%g\n", r.MinX, r.MinY, r.MaxX, r.MaxY, r.Width(), r.Height())
			}
			fmt.Fprintf(out, "Replay:   %s at speed %g", schedule.Total.Round(time.Millisecond), info.Options.ReplayOptions.EffectiveSpeed())
			if schedule.Loop {
				fmt.Fprintf(out, ", looping every %s", schedule.Cycle().Round(time.Millisecond))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
