package tiff_test

import (
	"encoding/binary"
	"sort"

	tiff "github.com/mdouchement/tiffcodec"
)

type entry struct {
	id  uint16
	dt  tiff.DataType
	val []uint
}

// encodeTIFF writes a single image classic TIFF file:
// header, data at offset 8, IFD, then the out-of-line values.
func encodeTIFF(order binary.ByteOrder, entries []entry, data []byte) []byte {
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	buf := make([]byte, 8, 1024)
	if order == binary.LittleEndian {
		copy(buf, "II")
	} else {
		copy(buf, "MM")
	}
	order.PutUint16(buf[2:], tiff.ClassicMagic)

	buf = append(buf, data...)
	ifdOffset := len(buf)
	order.PutUint32(buf[4:], uint32(ifdOffset))

	ifdLen := 2 + tiff.ClassicEntryLen*len(entries) + 4
	ifd := make([]byte, ifdLen)
	order.PutUint16(ifd, uint16(len(entries)))

	var extra []byte
	for i, e := range entries {
		p := ifd[2+i*tiff.ClassicEntryLen:]
		order.PutUint16(p[0:], e.id)
		order.PutUint16(p[2:], uint16(e.dt))
		order.PutUint32(p[4:], uint32(len(e.val)))

		raw := encodeValues(order, e.dt, e.val)
		if len(raw) <= 4 {
			copy(p[8:12], raw)
			continue
		}
		order.PutUint32(p[8:], uint32(ifdOffset+ifdLen+len(extra)))
		extra = append(extra, raw...)
	}

	buf = append(buf, ifd...)
	return append(buf, extra...)
}

func encodeValues(order binary.ByteOrder, dt tiff.DataType, vals []uint) []byte {
	size := dt.Size()
	raw := make([]byte, size*len(vals))
	for i, v := range vals {
		p := raw[i*size:]
		switch {
		case size == 1:
			p[0] = byte(v)
		case size == 2:
			order.PutUint16(p, uint16(v))
		case size == 4:
			order.PutUint32(p, uint32(v))
		case dt == tiff.Rational || dt == tiff.SRational:
			order.PutUint32(p, uint32(v))
			order.PutUint32(p[4:], uint32(uint64(v)>>32))
		default:
			order.PutUint64(p, uint64(v))
		}
	}
	return raw
}

func ascii(s string) []uint {
	u := make([]uint, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		u = append(u, uint(s[i]))
	}
	return append(u, 0)
}
