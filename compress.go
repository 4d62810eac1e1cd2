package tiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hhrutter/lzw"
	tifflzw "golang.org/x/image/tiff/lzw"
)

// maxPrealloc caps the output buffer allocated ahead of decompression,
// the geometry comes from untrusted data.
const maxPrealloc = 16 << 20

// expectedLen returns the size of the uncompressed strip described by opts, or 0.
func (opts CodecOptions) expectedLen() int {
	if opts.Width <= 0 || opts.Height <= 0 || opts.BitsPerSample <= 0 || opts.Channels <= 0 {
		return 0
	}
	rowLen := (opts.Width*opts.Channels*opts.BitsPerSample + 7) / 8
	n := rowLen * opts.Height
	if n < 0 || n > maxPrealloc {
		return maxPrealloc
	}
	return n
}

//------------------------//
// None                   //
//------------------------//

// nopCodec is the passthrough codec of uncompressed data.
type nopCodec struct{}

func (nopCodec) Compress(src []byte, _ CodecOptions) ([]byte, error) {
	return append([]byte{}, src...), nil
}

func (nopCodec) Decompress(src []byte, _ CodecOptions) ([]byte, error) {
	return append([]byte{}, src...), nil
}

//------------------------//
// LZW                    //
//------------------------//

// lzwCodec handles the TIFF flavour of LZW (TIFF 6.0, page 57-62):
// MSB first, 9 to 12 bits codes, ClearCode 256, EndOfInformation 257,
// the code width grows one code earlier than GIF's LZW does.
type lzwCodec struct{}

// An empty src still gives a valid stream made of ClearCode and EndOfInformation.
func (lzwCodec) Compress(src []byte, _ CodecOptions) ([]byte, error) {
	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, true) // oneOff is the TIFF early change.
	if _, err := w.Write(src); err != nil {
		w.Close()
		return nil, InternalError(fmt.Sprintf("LZW compression: %v", err))
	}
	if err := w.Close(); err != nil {
		return nil, InternalError(fmt.Sprintf("LZW compression: %v", err))
	}
	return buf.Bytes(), nil
}

func (lzwCodec) Decompress(src []byte, opts CodecOptions) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}

	r := tifflzw.NewReader(bytes.NewReader(src), tifflzw.MSB, 8)
	defer r.Close()

	dst := bytes.NewBuffer(make([]byte, 0, opts.expectedLen()))
	if _, err := io.Copy(dst, r); err != nil {
		return nil, FormatError(fmt.Sprintf("LZW data: %v", err))
	}
	return dst.Bytes(), nil
}
