package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"stadium-designer/internal/models"
	"stadium-designer/internal/request"
	"stadium-designer/internal/scene"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scenectl",
		Short:         "Inspect Grasshopper worker input and output files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newInputCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var file, format string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Build the 3D scene from a saved output.txt",
		Long:  `Parses output.txt exactly as the server does and prints the resulting geometry and data summary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open %s: %w", file, err)
				}
				defer f.Close()
				r = f
			}

			data, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("read output: %w", err)
			}

			lines, err := scene.DecodeOutput(data)
			if err != nil {
				return err
			}
			res, err := scene.Interpret(lines)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, res)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "path to output.txt (- for stdin)")
	cmd.Flags().StringVarP(&format, "format", "o", "json", "output format: json or yaml")
	return cmd
}

func newInputCmd() *cobra.Command {
	var p models.DesignParameters

	cmd := &cobra.Command{
		Use:   "input",
		Short: "Print the input.txt line for the given design parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), request.InputLine(p))
			return err
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&p.PitchWidth, "pitch-width", 0, "pitch width")
	flags.Float64Var(&p.Offset, "offset", 0, "offset")
	flags.StringVar(&p.Shape, "shape", "", "stand shape")
	flags.Float64Var(&p.Depth, "depth", 0, "stand depth")
	flags.Float64Var(&p.AsymmetryLength, "asymmetry-length", 0, "asymmetry along the length")
	flags.Float64Var(&p.AsymmetryWidth, "asymmetry-width", 0, "asymmetry along the width")
	flags.Float64Var(&p.Height, "height", 0, "stand height")
	return cmd
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
