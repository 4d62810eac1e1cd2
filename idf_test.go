package tiff_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"testing"

	tiff "github.com/mdouchement/tiffcodec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []entry {
	return []entry{
		{tiff.TagImageWidth, tiff.Short, []uint{4}},
		{tiff.TagImageLength, tiff.Short, []uint{2}},
		{tiff.TagBitsPerSample, tiff.Short, []uint{8, 8, 8}},
		{tiff.TagCompression, tiff.Short, []uint{5}},
		{tiff.TagPhotometricInterpretation, tiff.Short, []uint{2}},
		{tiff.TagSamplesPerPixel, tiff.Short, []uint{3}},
		{282, tiff.Rational, []uint{72 | 1<<32}},
		{305, tiff.ASCII, ascii("tiffcodec")},
		{34412, tiff.Undefined, []uint{1, 2, 3, 4, 5, 6}},
		{50000, tiff.Double, []uint{0x3FF8000000000000}}, // 1.5
	}
}

func TestReadIFD(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			data := encodeTIFF(order, sampleEntries(), nil)

			d, err := tiff.ReadIFD(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, order, d.ByteOrder())

			assert.Equal(t, uint(4), d.FirstVal(tiff.TagImageWidth))
			assert.Equal(t, uint(2), d.FirstVal(tiff.TagImageLength))

			bps, ok := d.Field(tiff.TagBitsPerSample)
			require.True(t, ok)
			assert.Equal(t, []uint{8, 8, 8}, bps)

			res, ok := d.Tag(282)
			require.True(t, ok)
			assert.Equal(t, tiff.Rational, res.Type)
			assert.Equal(t, 72.0, res.AsFloat(0))

			sw, ok := d.Tag(305)
			require.True(t, ok)
			assert.Equal(t, "tiffcodec", sw.ASCII())
			assert.Equal(t, "Software: tiffcodec", sw.String())

			lsm, ok := d.Tag(34412)
			require.True(t, ok)
			assert.Equal(t, []uint{1, 2, 3, 4, 5, 6}, lsm.Val)

			dbl, ok := d.Tag(50000)
			require.True(t, ok)
			assert.Equal(t, 1.5, dbl.Double(0))

			tags := d.Tags()
			require.Len(t, tags, 10)
			assert.Equal(t, uint16(tiff.TagImageWidth), tags[0].ID)
			assert.Equal(t, uint16(50000), tags[9].ID)

			assert.Contains(t, d.String(), "Compression: LZW")
			assert.Contains(t, d.String(), "PhotometricInterpretation: RGB")
		})
	}
}

func TestReadIFD_Header(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		check  func(t *testing.T, err error)
	}{
		{
			name:   "BadMarker",
			header: []byte{'X', 'X', 42, 0, 8, 0, 0, 0},
			check: func(t *testing.T, err error) {
				var ferr tiff.FormatError
				assert.True(t, errors.As(err, &ferr))
			},
		},
		{
			name:   "BadMagic",
			header: []byte{'I', 'I', 41, 0, 8, 0, 0, 0},
			check: func(t *testing.T, err error) {
				var ferr tiff.FormatError
				assert.True(t, errors.As(err, &ferr))
			},
		},
		{
			name:   "BigTIFF",
			header: []byte{'M', 'M', 0, 43, 0, 8, 0, 0, 0, 0, 0, 0, 0, 16},
			check: func(t *testing.T, err error) {
				var uerr tiff.UnsupportedError
				assert.True(t, errors.As(err, &uerr))
			},
		},
		{
			name:   "Truncated",
			header: []byte{'I', 'I', 42},
			check: func(t *testing.T, err error) {
				var ferr tiff.FormatError
				assert.True(t, errors.As(err, &ferr), "%v", err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tiff.ReadIFD(bytes.NewReader(tt.header))
			tt.check(t, err)
		})
	}
}

func TestReadIFD_UnknownDataType(t *testing.T) {
	data := encodeTIFF(binary.LittleEndian, []entry{
		{tiff.TagImageWidth, tiff.Short, []uint{4}},
	}, nil)
	// Patch the type of the single entry: header(8) + count(2) + tag(2).
	binary.LittleEndian.PutUint16(data[12:], 14)

	_, err := tiff.ReadIFD(bytes.NewReader(data))
	var uerr *tiff.UnknownCodeError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, uint(14), uerr.Code)
}

func TestDecode_HandMade(t *testing.T) {
	pix := []byte{
		10, 12, 15, 20,
		5, 5, 8, 9,
		255, 0, 255, 0,
	}

	for _, c := range []tiff.Compression{tiff.None, tiff.LZW} {
		for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
			t.Run(c.Name()+"/"+order.String(), func(t *testing.T) {
				entries := []entry{
					{tiff.TagImageWidth, tiff.Short, []uint{4}},
					{tiff.TagImageLength, tiff.Short, []uint{3}},
					{tiff.TagBitsPerSample, tiff.Short, []uint{8}},
					{tiff.TagCompression, tiff.Short, []uint{uint(c)}},
					{tiff.TagPhotometricInterpretation, tiff.Short, []uint{1}},
					{tiff.TagPredictor, tiff.Short, []uint{2}},
				}

				d := tiff.NewIFD(order)
				for _, e := range entries {
					d.Set(e.id, e.dt, e.val...)
				}
				strip, err := tiff.EncodeStrip(d, pix)
				require.NoError(t, err)

				entries = append(entries,
					entry{tiff.TagStripOffsets, tiff.Long, []uint{8}},
					entry{tiff.TagStripByteCounts, tiff.Long, []uint{uint(len(strip))}},
					entry{tiff.TagRowsPerStrip, tiff.Short, []uint{3}},
				)
				file := encodeTIFF(order, entries, strip)

				m, ifd, err := tiff.Decode(bytes.NewReader(file))
				require.NoError(t, err)
				assert.Equal(t, uint(2), ifd.FirstVal(tiff.TagPredictor))

				gray, ok := m.(*image.Gray)
				require.True(t, ok)
				assert.Equal(t, image.Rect(0, 0, 4, 3), gray.Bounds())
				assert.Equal(t, pix, gray.Pix)
			})
		}
	}
}

func TestDecodeConfig(t *testing.T) {
	data := encodeTIFF(binary.BigEndian, sampleEntries(), nil)

	c, err := tiff.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Width)
	assert.Equal(t, 2, c.Height)
}
