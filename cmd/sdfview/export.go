package main

import (
	"bufio"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/zstd"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat/sdfeval"
	"github.com/soypat/sdfcat/sdfrender"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) evalCmd() *cobra.Command {
	var (
		output   string
		format   string
		compress bool
	)
	cmd := &cobra.Command{
		Use:   "eval <sdf_name>",
		Short: "Write grid samples of an SDF to a file",
		Long: `Evaluates the SDF on the node grid and writes the samples in node order,
x varying fastest. The raw format is little-endian float32 distances only.
The csv format writes x,y,z,distance rows with a header.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if _, err := a.resolve(name); err != nil {
				return err
			}
			if format != "raw" && format != "csv" {
				return fmt.Errorf("unknown format %q, want raw or csv", format)
			}
			points, dist, err := a.ev.EvaluateGrid(name, a.cfg.Grid(), a.cfg.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				if compress {
					enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
					if err != nil {
						return err
					}
					err = writeSamples(enc, format, points, dist)
					if err != nil {
						enc.Close()
						return err
					}
					return enc.Close()
				}
				return writeSamples(w, format, points, dist)
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file, - for standard output")
	flags.StringVar(&format, "format", "raw", "sample format: raw or csv")
	flags.BoolVar(&compress, "compress", false, "zstd compress the output")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func writeSamples(w io.Writer, format string, points []ms3.Vec, dist []float32) error {
	bw := bufio.NewWriter(w)
	switch format {
	case "raw":
		if err := binary.Write(bw, binary.LittleEndian, dist); err != nil {
			return err
		}
	case "csv":
		cw := csv.NewWriter(bw)
		if err := cw.Write([]string{"x", "y", "z", "distance"}); err != nil {
			return err
		}
		record := make([]string, 4)
		for i, p := range points {
			record[0] = formatFloat(p.X)
			record[1] = formatFloat(p.Y)
			record[2] = formatFloat(p.Z)
			record[3] = formatFloat(dist[i])
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// writeOutput calls write with the file named by output or the command's
// standard output when output is "-".
func writeOutput(cmd *cobra.Command, output string, write func(io.Writer) error) error {
	if output == "-" {
		return write(cmd.OutOrStdout())
	}
	fp, err := os.Create(output)
	if err != nil {
		return err
	}
	err = write(fp)
	if err != nil {
		fp.Close()
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return fp.Close()
}

func (a *app) sliceCmd() *cobra.Command {
	var (
		output    string
		axisName  string
		at        float32
		pixels    int
		scale     int
		colorMode string
	)
	cmd := &cobra.Command{
		Use:   "slice <sdf_name>",
		Short: "Render a planar slice of an SDF to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			fn, err := a.resolve(name)
			if err != nil {
				return err
			}
			axis, err := sdfrender.ParseAxis(axisName)
			if err != nil {
				return err
			}
			if pixels < 1 {
				return fmt.Errorf("invalid pixel count %d", pixels)
			} else if scale < 1 {
				return fmt.Errorf("invalid scale %d", scale)
			}
			bounds := a.cfg.Box()
			conv, err := colorConversion(colorMode, bounds)
			if err != nil {
				return err
			}
			sdf, err := sdfeval.NewSDF3(fn, a.cfg.Context(), bounds)
			if err != nil {
				return err
			}
			sr, err := sdfrender.NewSliceRenderer(axis, at, conv)
			if err != nil {
				return err
			}
			w, h := sr.ImageSize(bounds, pixels)
			var img image.Image
			rgba := image.NewRGBA(image.Rect(0, 0, w, h))
			err = sr.Render(sdf, rgba, nil)
			if err != nil {
				return err
			}
			img = rgba
			if scale > 1 {
				img, err = sdfrender.Upscale(rgba, scale)
				if err != nil {
					return err
				}
			}
			a.log.Debug("rendered slice",
				zap.String("sdf", name),
				zap.Stringer("axis", axis),
				zap.Float32("at", at),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()),
			)
			return writeOutput(cmd, output, func(w io.Writer) error {
				return png.Encode(w, img)
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output PNG file, - for standard output")
	flags.StringVar(&axisName, "axis", "z", "slicing plane normal: x, y or z")
	flags.Float32Var(&at, "at", 0, "plane offset along the axis")
	flags.IntVar(&pixels, "pixels", 256, "pixels along the longest image side")
	flags.IntVar(&scale, "scale", 1, "integer nearest-neighbour upscale factor")
	flags.StringVar(&colorMode, "color", "iq", "color scheme: iq, bw or gradient")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func colorConversion(mode string, bounds ms3.Box) (func(float32) color.Color, error) {
	diag := ms3.Norm(bounds.Size())
	switch mode {
	case "iq":
		return sdfrender.ColorConversionInigoQuilez(diag / 3), nil
	case "bw":
		return sdfrender.BlackAndWhite, nil
	case "gradient":
		return sdfrender.ColorConversionLinearGradient(diag/16, color.Black, color.White), nil
	}
	return nil, fmt.Errorf("unknown color scheme %q, want iq, bw or gradient", mode)
}
