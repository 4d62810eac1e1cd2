package tiff

import (
	"fmt"
	"math"
	"math/big"
)

// A FormatError reports that the input is not a valid TIFF image.
type FormatError string

func (e FormatError) Error() string {
	return fmt.Sprintf("tiff: invalid format: %s", string(e))
}

// An UnsupportedError reports that the input uses a valid but
// unimplemented feature.
type UnsupportedError string

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("tiff: unsupported feature: %s", string(e))
}

// An InternalError reports that an internal error was encountered.
type InternalError string

func (e InternalError) Error() string {
	return fmt.Sprintf("tiff: internal error: %s", string(e))
}

// An UnknownCodeError reports a numeric code that is not part of a registry
// (data type, photometric interpretation, compression or predictor).
type UnknownCodeError struct {
	Kind string
	Code uint
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("tiff: unknown %s %d", e.Kind, e.Code)
}

// minInt returns the smaller of a or b.
func minInt(a, b int) int {
	if a <= b {
		return a
	}
	return b
}

func tagname(t uint16) string {
	switch t {
	case tNewSubFileType:
		return "NewSubFileType"
	case tImageWidth:
		return "ImageWidth"
	case tImageLength:
		return "ImageLength"
	case tBitsPerSample:
		return "BitsPerSample"
	case tCompression:
		return "Compression"
	case tPhotometricInterpretation:
		return "PhotometricInterpretation"
	case tStripOffsets:
		return "StripOffsets"
	case tSamplesPerPixel:
		return "SamplesPerPixel"
	case tRowsPerStrip:
		return "RowsPerStrip"
	case tStripByteCounts:
		return "StripByteCounts"
	case tXResolution:
		return "XResolution"
	case tYResolution:
		return "YResolution"
	case tPlanarConfiguration:
		return "PlanarConfiguration"
	case tResolutionUnit:
		return "ResolutionUnit"
	case tSoftware:
		return "Software"
	case tPredictor:
		return "Predictor"
	case tColorMap:
		return "ColorMap"
	case tTileWidth:
		return "TileWidth"
	case tTileLength:
		return "TileLength"
	case tTileOffsets:
		return "TileOffsets"
	case tTileByteCounts:
		return "TileByteCounts"
	case tExtraSamples:
		return "ExtraSamples"
	case tSampleFormat:
		return "SampleFormat"
	case tCZLSMInfo:
		return "CZ_LSMINFO"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

func valuename(t Tag) string {
	var v interface{}
	switch t.ID {
	case tPhotometricInterpretation:
		v = Photometric(t.FirstVal()).Name()
	case tCompression:
		v = Compression(t.FirstVal()).Name()
	case tPredictor:
		switch t.FirstVal() {
		case PredictorNone:
			v = "None"
		case PredictorHorizontal:
			v = "Horizontal differencing"
		default:
			v = t.FirstVal()
		}
	case tStripOffsets:
		v = fmt.Sprintf("contains %d offset entries", len(t.Val))
	case tStripByteCounts:
		v = fmt.Sprintf("contains %d byte-count entries", len(t.Val))
	case tTileOffsets:
		v = fmt.Sprintf("contains %d tile offset entries", len(t.Val))
	case tTileByteCounts:
		v = fmt.Sprintf("contains %d tile byte-count entries", len(t.Val))
	case tSamplesPerPixel,
		tRowsPerStrip,
		tTileWidth,
		tTileLength,
		tImageLength,
		tImageWidth:
		v = t.FirstVal()
	case tPlanarConfiguration:
		switch t.FirstVal() {
		case PlanarContig:
			v = "Contiguous (aka RGBRGBRGBRGB)"
		case PlanarSeparate:
			v = "Separate (aka RRRRGGGGBBBB)"
		default:
			v = t.FirstVal()
		}
	case tSampleFormat:
		switch t.FirstVal() {
		case sfUint:
			v = "Unsigned integer"
		case sfInt:
			v = "Signed integer"
		case sfFloat:
			v = "IEEE floating point"
		default:
			v = t.FirstVal()
		}
	case tSoftware:
		v = t.ASCII()
	default:
		v = formatDatatype(t)
	}
	return fmt.Sprintf("%v", v)
}

func formatDatatype(t Tag) interface{} {
	switch t.Type {
	case Rational:
		sl := make([]*big.Rat, 0, len(t.Val))
		for i := range t.Val {
			sl = append(sl, t.Rational(i))
		}
		return sl
	case SRational:
		sl := make([]*big.Rat, 0, len(t.Val))
		for i := range t.Val {
			sl = append(sl, t.SRational(i))
		}
		return sl
	case Double:
		sl := make([]float64, 0, len(t.Val))
		for i := range t.Val {
			sl = append(sl, t.Double(i))
		}
		return sl
	case Float:
		sl := make([]float32, 0, len(t.Val))
		for i := range t.Val {
			sl = append(sl, math.Float32frombits(uint32(t.Val[i])))
		}
		return sl
	case ASCII:
		return t.ASCII()
	default:
		if len(t.Val) > 16 {
			return fmt.Sprintf("%v... (%d values)", t.Val[:16], len(t.Val))
		}
		return t.Val
	}
}
