package tiff_test

import (
	"testing"

	tiff "github.com/mdouchement/tiffcodec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDataType(t *testing.T) {
	sizes := map[uint16]int{
		1: 1, 2: 1, 3: 2, 4: 4, 5: 8, 6: 1, 7: 1, 8: 2,
		9: 4, 10: 8, 11: 4, 12: 8, 13: 4, 16: 8, 17: 8, 18: 8,
	}

	for code, size := range sizes {
		dt, err := tiff.LookupDataType(code)
		require.NoError(t, err, "code %d", code)
		assert.Equal(t, code, uint16(dt))
		assert.Equal(t, size, dt.Size(), "code %d", code)
	}
}

func TestLookupDataType_Unknown(t *testing.T) {
	for _, code := range []uint16{0, 14, 15, 19, 42, 0xFFFF} {
		_, err := tiff.LookupDataType(code)

		var uerr *tiff.UnknownCodeError
		require.True(t, errors.As(err, &uerr), "code %d", code)
		assert.Equal(t, uint(code), uerr.Code)
		assert.Contains(t, err.Error(), "unknown IFD type")
	}
}

func TestDataType_BigTIFFWidths(t *testing.T) {
	assert.Equal(t, 2, tiff.Short.Size())
	assert.Equal(t, 4, tiff.Long.Size())
	assert.Equal(t, 4, tiff.IFDPointer.Size())
	assert.Equal(t, 8, tiff.Long8.Size())
	assert.Equal(t, 8, tiff.SLong8.Size())
	assert.Equal(t, 8, tiff.IFD8.Size())
}

func TestDataType_ByteLen(t *testing.T) {
	assert.Equal(t, uint64(0), tiff.Short.ByteLen(0))
	assert.Equal(t, uint64(6), tiff.Short.ByteLen(3))
	assert.Equal(t, uint64(16), tiff.Rational.ByteLen(2))
	assert.Equal(t, uint64(0), tiff.DataType(14).ByteLen(10))
}

func TestDataType_String(t *testing.T) {
	assert.Equal(t, "SHORT", tiff.Short.String())
	assert.Equal(t, "IFD8", tiff.IFD8.String())
	assert.Equal(t, "DataType(99)", tiff.DataType(99).String())
}
