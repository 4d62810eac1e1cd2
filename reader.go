package tiff

// Resources:
// https://www.awaresystems.be/imaging/tiff/specification/TIFF6.pdf
// https://www.awaresystems.be/imaging/tiff/specification/BigTIFF.html
// http://www.awaresystems.be/imaging/tiff.html

import (
	"fmt"
	"image"
	"io"

	"github.com/pkg/errors"
)

// maxBlockLen bounds the size of a single raw strip or tile.
const maxBlockLen = 1 << 30

// layout describes how the image data of a directory is split in strips or tiles.
type layout struct {
	padding      bool // tiles are padded to the full tile size
	blockWidth   int
	blockHeight  int
	blocksAcross int
	blocksDown   int
	offsets      []uint
	counts       []uint
}

func (d *IFD) layout() (l layout, err error) {
	width := int(d.FirstVal(tImageWidth))
	height := int(d.FirstVal(tImageLength))

	l.blockWidth = width
	l.blockHeight = height
	l.blocksAcross = 1
	l.blocksDown = 1

	if width == 0 {
		l.blocksAcross = 0
	}
	if height == 0 {
		l.blocksDown = 0
	}

	if int(d.FirstVal(tTileWidth)) != 0 {
		l.padding = true

		l.blockWidth = int(d.FirstVal(tTileWidth))
		l.blockHeight = int(d.FirstVal(tTileLength))

		if l.blockWidth != 0 {
			l.blocksAcross = (width + l.blockWidth - 1) / l.blockWidth
		}
		if l.blockHeight != 0 {
			l.blocksDown = (height + l.blockHeight - 1) / l.blockHeight
		}

		l.counts = d.features[tTileByteCounts].Val
		l.offsets = d.features[tTileOffsets].Val
	} else {
		if int(d.FirstVal(tRowsPerStrip)) != 0 {
			l.blockHeight = minInt(int(d.FirstVal(tRowsPerStrip)), height)
		}

		if l.blockHeight != 0 {
			l.blocksDown = (height + l.blockHeight - 1) / l.blockHeight
		}

		l.offsets = d.features[tStripOffsets].Val
		l.counts = d.features[tStripByteCounts].Val
	}

	// Check if we have the right number of strips/tiles, offsets and counts.
	if n := l.blocksAcross * l.blocksDown; len(l.offsets) < n || len(l.counts) < n {
		return l, FormatError("inconsistent header")
	}
	return l, nil
}

// ReadStrip returns the raw, still compressed, bytes of the strip
// (or tile) i of the image described by d.
func ReadStrip(r io.ReaderAt, d *IFD, i int) ([]byte, error) {
	l, err := d.layout()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(l.offsets) || i >= len(l.counts) {
		return nil, FormatError(fmt.Sprintf("strip %d out of range", i))
	}

	n := l.counts[i]
	if n > maxBlockLen {
		return nil, FormatError(fmt.Sprintf("strip %d too large (%d bytes)", i, n))
	}
	buf := make([]byte, n)
	if _, err = io.ReadFull(io.NewSectionReader(r, int64(l.offsets[i]), int64(n)), buf); err != nil {
		return nil, errors.Wrapf(err, "tiff: could not read strip %d", i)
	}
	return buf, nil
}

// DecodePixels decodes all the strips or tiles of the image described by d
// and returns its pixels, row after row, without padding.
// Only contiguous (chunky) images with whole-byte samples are handled.
func DecodePixels(r io.ReaderAt, d *IFD) ([]byte, error) {
	opts, err := BuildCodecOptions(d)
	if err != nil {
		return nil, err
	}
	if opts.BitsPerSample%8 != 0 {
		return nil, UnsupportedError(fmt.Sprintf("%d bits per sample", opts.BitsPerSample))
	}
	if d.FirstVal(tPlanarConfiguration) == PlanarSeparate && opts.Channels > 1 {
		return nil, UnsupportedError("planar image with several samples per pixel")
	}

	l, err := d.layout()
	if err != nil {
		return nil, err
	}

	bytesPerPixel := opts.Channels * opts.BitsPerSample / 8
	rowLen := opts.Width * bytesPerPixel
	if opts.Height > 0 && rowLen > maxBlockLen/opts.Height {
		return nil, FormatError("image too large")
	}
	dst := make([]byte, rowLen*opts.Height)

	for i := 0; i < l.blocksAcross; i++ {
		blkW := l.blockWidth
		if !l.padding && i == l.blocksAcross-1 && opts.Width%l.blockWidth != 0 {
			blkW = opts.Width % l.blockWidth
		}
		for j := 0; j < l.blocksDown; j++ {
			blkH := l.blockHeight
			if !l.padding && j == l.blocksDown-1 && opts.Height%l.blockHeight != 0 {
				blkH = opts.Height % l.blockHeight
			}

			n := j*l.blocksAcross + i
			raw, err := ReadStrip(r, d, n)
			if err != nil {
				return nil, err
			}
			pix, err := DecodeStrip(d, raw)
			if err != nil {
				return nil, errors.Wrapf(err, "strip %d", n)
			}

			// Padded tiles are stored with their full width.
			srcRowLen := blkW * bytesPerPixel
			xmin := i * l.blockWidth
			ymin := j * l.blockHeight
			xmax := minInt(xmin+blkW, opts.Width)
			ymax := minInt(ymin+blkH, opts.Height)
			visible := (xmax - xmin) * bytesPerPixel

			if len(pix) < (ymax-ymin-1)*srcRowLen+visible {
				return nil, FormatError(fmt.Sprintf("strip %d is too short", n))
			}
			for y := ymin; y < ymax; y++ {
				src := pix[(y-ymin)*srcRowLen:]
				copy(dst[y*rowLen+xmin*bytesPerPixel:], src[:visible])
			}
		}
	}
	return dst, nil
}

// Decode reads the first image of a TIFF file.
func Decode(r io.ReaderAt) (image.Image, *IFD, error) {
	d, err := ReadIFD(r)
	if err != nil {
		return nil, nil, err
	}
	pix, err := DecodePixels(r, d)
	if err != nil {
		return nil, d, err
	}
	m, err := d.Image(pix)
	return m, d, err
}

// DecodeConfig returns the color model and dimensions of the first image of
// a TIFF file without decoding its pixels.
func DecodeConfig(r io.ReaderAt) (image.Config, error) {
	d, err := ReadIFD(r)
	if err != nil {
		return image.Config{}, err
	}
	return d.Config()
}
