package tiff

import (
	"encoding/binary"
	"fmt"
)

// CodecOptions describe the strip or tile handed to a Codec.
// They are built per call from a Directory, see BuildCodecOptions.
type CodecOptions struct {
	Width         int
	Height        int
	BitsPerSample int // of the first channel
	Channels      int
	LittleEndian  bool
	Interleaved   bool
	Signed        bool
}

// A Codec compresses and decompresses one strip or tile.
// Implementations must be stateless so they can be shared between goroutines,
// and must not modify src.
type Codec interface {
	Compress(src []byte, opts CodecOptions) ([]byte, error)
	Decompress(src []byte, opts CodecOptions) ([]byte, error)
}

// Compression is a TIFF compression scheme (value of the Compression tag).
type Compression uint16

const (
	None Compression = cNone
	LZW  Compression = cLZW
)

type scheme struct {
	name  string
	codec Codec
}

// Only schemes with a codec can be used to compress or decompress;
// the others are known to exist but are not supported.
var compressions = map[Compression]scheme{
	cNone:           {"None", nopCodec{}},
	cCCITT:          {"CCITT", nil},
	cG3:             {"Group 3 Fax", nil},
	cG4:             {"Group 4 Fax", nil},
	cLZW:            {"LZW", lzwCodec{}},
	cJPEGOld:        {"Old JPEG", nil},
	cJPEG:           {"JPEG", nil},
	cDeflate:        {"Deflate (zlib compression)", nil},
	cPackBits:       {"PackBits", nil},
	cDeflateOld:     {"Old Deflate", nil},
	cSGILogRLE:      {"SGI Log Luminance RLE", nil},
	cSGILog24Packed: {"SGI Log 24-bits packed", nil},
	cLossyJPEG:      {"Lossy JPEG", nil},
}

// LookupCompression returns the scheme registered for code.
// A code known to TIFF but without codec returns an UnsupportedError,
// any other code an *UnknownCodeError.
func LookupCompression(code uint16) (Compression, error) {
	c := Compression(code)
	s, ok := compressions[c]
	switch {
	case !ok:
		return 0, &UnknownCodeError{Kind: "compression", Code: uint(code)}
	case s.codec == nil:
		return 0, c.unsupported()
	}
	return c, nil
}

// Name returns the display name of the scheme.
func (c Compression) Name() string {
	if s, ok := compressions[c]; ok {
		return s.name
	}
	return fmt.Sprintf("Compression(%d)", uint16(c))
}

func (c Compression) String() string {
	return c.Name()
}

// Codec returns the codec bound to the scheme.
func (c Compression) Codec() (Codec, bool) {
	s := compressions[c]
	return s.codec, s.codec != nil
}

// Supported reports whether the scheme has a codec.
func (c Compression) Supported() bool {
	_, ok := c.Codec()
	return ok
}

// Compress compresses src, which is left untouched.
func (c Compression) Compress(src []byte, opts CodecOptions) ([]byte, error) {
	codec, ok := c.Codec()
	if !ok {
		return nil, c.unsupported()
	}
	return codec.Compress(src, opts)
}

// Decompress decompresses src, which is left untouched.
func (c Compression) Decompress(src []byte, opts CodecOptions) ([]byte, error) {
	codec, ok := c.Codec()
	if !ok {
		return nil, c.unsupported()
	}
	return codec.Decompress(src, opts)
}

func (c Compression) unsupported() error {
	return UnsupportedError(fmt.Sprintf("compression mode not supported: %s (%d)", c.Name(), uint16(c)))
}

// BuildCodecOptions derives the codec options of a strip from d.
// ImageWidth, ImageLength and BitsPerSample are required.
func BuildCodecOptions(d Directory) (CodecOptions, error) {
	opts := CodecOptions{
		Interleaved: true,
		Signed:      false,
	}

	if d.ByteOrder() == nil {
		return opts, FormatError("byte order missing")
	}
	opts.LittleEndian = isLittleEndian(d.ByteOrder())

	width, ok := d.Field(tImageWidth)
	if !ok || len(width) == 0 {
		return opts, FormatError("ImageWidth tag missing")
	}
	height, ok := d.Field(tImageLength)
	if !ok || len(height) == 0 {
		return opts, FormatError("ImageLength tag missing")
	}
	bps, ok := d.Field(tBitsPerSample)
	if !ok || len(bps) == 0 {
		return opts, FormatError("BitsPerSample tag missing")
	}

	opts.Width = int(width[0])
	opts.Height = int(height[0])
	opts.BitsPerSample = int(bps[0])
	opts.Channels = int(firstVal(d, tSamplesPerPixel, 1))
	if opts.Channels == 0 {
		return opts, FormatError("SamplesPerPixel is zero")
	}
	return opts, nil
}

// isLittleEndian reports whether order stores the least significant byte first.
func isLittleEndian(order binary.ByteOrder) bool {
	return order.Uint16([]byte{1, 0}) == 1
}

// compressionOf returns the scheme recorded in d.
// In TIFF 6.0, Compression does not have a default value,
// but some tools interpret a missing Compression value as none so we do
// the same.
func compressionOf(d Directory) (Compression, error) {
	code := firstVal(d, tCompression, cNone)
	if code == 0 {
		code = cNone
	}
	if code > 0xFFFF {
		return 0, &UnknownCodeError{Kind: "compression", Code: code}
	}
	return LookupCompression(uint16(code))
}
