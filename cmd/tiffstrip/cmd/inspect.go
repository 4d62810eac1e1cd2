package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tiff "github.com/mdouchement/tiffcodec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewInspectCmd prints the first IFD of a TIFF file.
func NewInspectCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.tif>",
		Short: "print the first image file directory",
		Long:  "Prints the tags of the first image file directory of a TIFF file and, with --strips, decodes every strip (or tile).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strips, _ := cmd.Flags().GetBool("strips")
			return runInspect(ctx, cmd.OutOrStdout(), args[0], strips)
		},
	}

	pf := cmd.Flags()
	pf.Bool("strips", false, "decode every strip and print its raw and decoded sizes")
	return cmd
}

func runInspect(ctx context.Context, out io.Writer, filename string, strips bool) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "could not open file")
	}
	defer f.Close()

	d, err := tiff.ReadIFD(f)
	if err != nil {
		return err
	}
	fmt.Fprint(out, d)

	if _, err := d.Config(); err != nil {
		slog.DebugContext(ctx, "no image conversion available", "file", filename, "error", err)
	}

	if !strips {
		return nil
	}

	offsets, ok := d.Field(tiff.TagStripOffsets)
	if !ok {
		offsets, _ = d.Field(tiff.TagTileOffsets)
	}
	for i := range offsets {
		raw, err := tiff.ReadStrip(f, d, i)
		if err != nil {
			return err
		}
		pix, err := tiff.DecodeStrip(d, raw)
		if err != nil {
			return errors.Wrapf(err, "strip %d", i)
		}
		fmt.Fprintf(out, "Strip %d: %d -> %d bytes\n", i, len(raw), len(pix))
	}
	return nil
}
