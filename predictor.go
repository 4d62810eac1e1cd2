package tiff

import "fmt"

// Horizontal differencing (TIFF 6.0, page 64-65).
//
// Samples are unsigned integers of 1 to 4 bytes and the arithmetic is done
// modulo 2^32, then truncated to the sample width on store, so results are
// those of a 32-bit accumulator. Wider samples are rejected, not widened.

// maxPredictorSampleLen is the widest sample handled by the predictor, in bytes.
const maxPredictorSampleLen = 4

// scanDirection is the order in which the predictor visits the samples of a buffer.
// Undifference must go forward so each left neighbour is already absolute,
// Difference must go backward so each left neighbour is still absolute.
type scanDirection int

const (
	forward scanDirection = iota
	backward
)

// predictorLayout is the geometry of a strip as seen by the predictor.
type predictorLayout struct {
	sampleLen    int  // bytes per sample
	stride       int  // bytes between a sample and the one it is predicted from
	width        int  // pixels per row
	littleEndian bool
}

// Undifference reverses horizontal differencing in place.
// It is a no-op when the Predictor tag is absent or 1.
// buf is left untouched when an error is returned.
func Undifference(buf []byte, d Directory) error {
	l, ok, err := newPredictorLayout(d)
	if err != nil || !ok {
		return err
	}

	l.walk(len(buf), forward, func(b int) {
		v := l.get(buf, b) + l.get(buf, b-l.stride)
		l.put(buf, b, v)
	})
	return nil
}

// Difference applies horizontal differencing in place.
// It is a no-op when the Predictor tag is absent or 1.
// buf is left untouched when an error is returned.
func Difference(buf []byte, d Directory) error {
	l, ok, err := newPredictorLayout(d)
	if err != nil || !ok {
		return err
	}

	l.walk(len(buf), backward, func(b int) {
		v := l.get(buf, b) - l.get(buf, b-l.stride)
		l.put(buf, b, v)
	})
	return nil
}

// newPredictorLayout validates the predictor of d and computes the strip geometry.
// ok is false when no predictor is applied.
func newPredictorLayout(d Directory) (l predictorLayout, ok bool, err error) {
	switch predictor := firstVal(d, tPredictor, PredictorNone); predictor {
	case PredictorNone:
		return l, false, nil
	case PredictorHorizontal:
	default:
		return l, false, &UnknownCodeError{Kind: "predictor", Code: predictor}
	}

	if d.ByteOrder() == nil {
		return l, false, FormatError("byte order missing")
	}
	l.littleEndian = isLittleEndian(d.ByteOrder())

	bps, exists := d.Field(tBitsPerSample)
	if !exists || len(bps) == 0 {
		return l, false, FormatError("BitsPerSample tag missing")
	}
	if bps[0] == 0 {
		return l, false, FormatError("BitsPerSample is zero")
	}
	l.sampleLen = int((bps[0] + 7) / 8)
	if l.sampleLen > maxPredictorSampleLen {
		return l, false, UnsupportedError(fmt.Sprintf("horizontal predictor with %d bits per sample", bps[0]))
	}

	samplesPerRow := 1
	planar := firstVal(d, tPlanarConfiguration, PlanarContig)
	switch planar {
	case PlanarContig:
		if bps[len(bps)-1] != 0 {
			samplesPerRow = int(firstVal(d, tSamplesPerPixel, 1))
		}
	case PlanarSeparate:
	default:
		return l, false, FormatError(fmt.Sprintf("PlanarConfiguration %d", planar))
	}
	if samplesPerRow == 0 {
		return l, false, FormatError("SamplesPerPixel is zero")
	}
	l.stride = samplesPerRow * l.sampleLen

	// Tiles are differenced row by row within the tile.
	width := firstVal(d, tTileWidth, 0)
	if width == 0 {
		width = firstVal(d, tImageWidth, 0)
	}
	if width == 0 {
		return l, false, FormatError("ImageWidth tag missing")
	}
	l.width = int(width)

	return l, true, nil
}

// walk calls fn with the offset of every sample of a buffer of n bytes,
// except the samples of the first pixel of each row, in the given direction.
// A trailing partial sample is ignored.
func (l predictorLayout) walk(n int, dir scanDirection, fn func(b int)) {
	steps := n / l.sampleLen
	if steps == 0 {
		return
	}

	switch dir {
	case forward:
		for b := 0; b < steps*l.sampleLen; b += l.sampleLen {
			if !l.rowStart(b) {
				fn(b)
			}
		}
	case backward:
		for b := (steps - 1) * l.sampleLen; b >= 0; b -= l.sampleLen {
			if !l.rowStart(b) {
				fn(b)
			}
		}
	}
}

// rowStart reports whether offset b belongs to the first pixel of a row.
func (l predictorLayout) rowStart(b int) bool {
	return (b/l.stride)%l.width == 0
}

// get decodes the unsigned sample stored at offset b.
func (l predictorLayout) get(buf []byte, b int) uint32 {
	var v uint32
	p := buf[b : b+l.sampleLen]
	if l.littleEndian {
		for i := len(p) - 1; i >= 0; i-- {
			v = v<<8 | uint32(p[i])
		}
		return v
	}
	for i := 0; i < len(p); i++ {
		v = v<<8 | uint32(p[i])
	}
	return v
}

// put encodes the low bytes of v at offset b.
func (l predictorLayout) put(buf []byte, b int, v uint32) {
	p := buf[b : b+l.sampleLen]
	if l.littleEndian {
		for i := 0; i < len(p); i++ {
			p[i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := len(p) - 1; i >= 0; i-- {
		p[i] = byte(v)
		v >>= 8
	}
}
