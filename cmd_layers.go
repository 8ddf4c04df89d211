package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/sketchboard/internal/layers"
	"github.com/pstuifzand/sketchboard/internal/model"
)

func layersCmd(c *cli) *cobra.Command {
	var find, where string
	var withSrc bool
	var format string
	var timeout time.Duration
	var opacity, rotation, scale float64
	cmd := &cobra.Command{
		Use:   "layers <image>...",
		Short: "Load images as layers and print the resulting layer stack",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			opacity, x, y := c.cfg.LayerDefaults()
			mgr := layers.NewManager(layers.WithDefaults(layers.Defaults{
				Opacity: opacity,
				X:       x,
				Y:       y,
			}))
			for _, path := range args {
				if _, err := mgr.AddLayer(ctx, layers.FileSource(path)); err != nil {
					return err
				}
			}

			patch, err := layerPatchFromFlags(cmd, opacity, rotation, scale)
			if err != nil {
				return err
			}
			if !patch.IsEmpty() {
				for _, l := range mgr.Layers() {
					mgr.UpdateLayer(l.ID, patch)
				}
			}

			result := mgr.FindByName(find)
			if where != "" {
				if result, err = mgr.Filter(where); err != nil {
					return err
				}
			}
			if !withSrc {
				for i := range result {
					result[i].Src = ""
				}
			}
			return writeLayers(cmd, result, format)
		},
	}
	cmd.Flags().StringVar(&find, "find", "", "Only show layers whose name fuzzy-matches this query")
	cmd.Flags().StringVar(&where, "where", "", `Only show layers matching a query, e.g. "opacity:>=50 -~draft"`)
	cmd.MarkFlagsMutuallyExclusive("find", "where")
	cmd.Flags().BoolVar(&withSrc, "with-src", false, "Include the data URI of each layer")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or yaml")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up loading images after this long")
	cmd.Flags().Float64Var(&opacity, "opacity", 0, "Set the opacity of every layer (0-100)")
	cmd.Flags().Float64Var(&rotation, "rotation", 0, "Set the rotation of every layer in degrees")
	cmd.Flags().Float64Var(&scale, "scale", 0, "Set the scale of every layer")
	return cmd
}

// layerPatchFromFlags builds a patch from the flags that were given
func layerPatchFromFlags(cmd *cobra.Command, opacity, rotation, scale float64) (model.LayerPatch, error) {
	var patch model.LayerPatch
	flags := cmd.Flags()
	if flags.Changed("opacity") {
		if opacity < 0 || opacity > 100 {
			return patch, fmt.Errorf("--opacity must be between 0 and 100, got %v", opacity)
		}
		patch.Opacity = model.Ptr(opacity)
	}
	if flags.Changed("rotation") {
		patch.Rotation = model.Ptr(rotation)
	}
	if flags.Changed("scale") {
		if scale <= 0 {
			return patch, fmt.Errorf("--scale must be positive, got %v", scale)
		}
		patch.Scale = model.Ptr(scale)
	}
	return patch, nil
}

func writeLayers(cmd *cobra.Command, result []model.ImageLayer, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml", "yml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Fprint(out, string(data))
	case "table":
		if len(result) == 0 {
			fmt.Fprintln(out, "No layers found.")
			return nil
		}
		for _, l := range result {
			fmt.Fprintf(out, "%d  %-24s %gx%g  opacity %g  %s\n", l.ZIndex, l.Name, l.Width, l.Height, l.Opacity, l.ID)
		}
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
	return nil
}
