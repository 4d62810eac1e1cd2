package cmd

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tiff "github.com/mdouchement/tiffcodec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewDecodeCmd decompresses a raw strip and reverses its predictor.
func NewDecodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "decode a raw strip into pixels",
		Long:  "Decompresses a raw strip and reverses the horizontal predictor, using the geometry given by the flags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(ctx, cmd, tiff.DecodeStrip)
		},
	}
	addGeometryFlags(cmd)
	return cmd
}

// NewEncodeCmd applies the predictor to pixels and compresses them as a strip.
func NewEncodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "encode pixels into a raw strip",
		Long:  "Applies the horizontal predictor and compresses pixels into a raw strip, using the geometry given by the flags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(ctx, cmd, tiff.EncodeStrip)
		},
	}
	addGeometryFlags(cmd)
	return cmd
}

func addGeometryFlags(cmd *cobra.Command) {
	pf := cmd.Flags()
	pf.Uint("width", 0, "ImageWidth in pixels")
	pf.Uint("height", 0, "ImageLength in rows")
	pf.Uint("bits", 8, "BitsPerSample")
	pf.Uint("samples", 1, "SamplesPerPixel")
	pf.Uint("planar", tiff.PlanarContig, "PlanarConfiguration (1 chunky, 2 planar)")
	pf.Uint("predictor", tiff.PredictorNone, "Predictor (1 none, 2 horizontal differencing)")
	pf.String("compression", "lzw", "Compression (none, lzw or a TIFF compression code)")
	pf.Bool("big-endian", false, "Samples are stored in big-endian (MM) order")
	pf.StringP("in", "i", "-", "Input file, - for stdin")
	pf.StringP("out", "o", "-", "Output file, - for stdout")
}

func directoryFromFlags(cmd *cobra.Command) (*tiff.IFD, error) {
	flags := cmd.Flags()
	width, _ := flags.GetUint("width")
	height, _ := flags.GetUint("height")
	bits, _ := flags.GetUint("bits")
	samples, _ := flags.GetUint("samples")
	planar, _ := flags.GetUint("planar")
	predictor, _ := flags.GetUint("predictor")
	compression, _ := flags.GetString("compression")
	bigEndian, _ := flags.GetBool("big-endian")

	if width == 0 || height == 0 {
		return nil, errors.New("--width and --height are required")
	}
	c, err := parseCompression(compression)
	if err != nil {
		return nil, err
	}

	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}

	bps := make([]uint, samples)
	for i := range bps {
		bps[i] = bits
	}

	d := tiff.NewIFD(order)
	d.Set(tiff.TagImageWidth, tiff.Long, width)
	d.Set(tiff.TagImageLength, tiff.Long, height)
	d.Set(tiff.TagBitsPerSample, tiff.Short, bps...)
	d.Set(tiff.TagSamplesPerPixel, tiff.Short, samples)
	d.Set(tiff.TagPlanarConfiguration, tiff.Short, planar)
	d.Set(tiff.TagPredictor, tiff.Short, predictor)
	d.Set(tiff.TagCompression, tiff.Short, uint(c))
	return d, nil
}

func parseCompression(s string) (tiff.Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return tiff.None, nil
	case "lzw":
		return tiff.LZW, nil
	}

	code, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid compression %q", s)
	}
	return tiff.LookupCompression(uint16(code))
}

func runStrip(ctx context.Context, cmd *cobra.Command, convert func(tiff.Directory, []byte) ([]byte, error)) error {
	d, err := directoryFromFlags(cmd)
	if err != nil {
		return err
	}
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	src, err := readInput(cmd, in)
	if err != nil {
		return err
	}
	dst, err := convert(d, src)
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, cmd.Name(),
		slog.String("compression", tiff.Compression(d.FirstVal(tiff.TagCompression)).Name()),
		slog.Uint64("predictor", uint64(d.FirstVal(tiff.TagPredictor))),
		slog.Int("in", len(src)),
		slog.Int("out", len(dst)),
	)
	return writeOutput(cmd, out, dst)
}

func readInput(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "could not read stdin")
	}
	data, err := os.ReadFile(filename)
	return data, errors.Wrap(err, "could not read input")
}

func writeOutput(cmd *cobra.Command, filename string, data []byte) error {
	if filename == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "could not write stdout")
	}
	return errors.Wrap(os.WriteFile(filename, data, 0o644), "could not write output")
}
