package tiff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// maxValueLen bounds the out-of-line value of a single IFD entry.
const maxValueLen = 64 << 20

// A Directory gives read access to the fields of an Image File Directory.
// It is implemented by *IFD and may be implemented by any external reader.
type Directory interface {
	// Field returns the values of the given tag and whether the tag is present.
	Field(tag uint16) ([]uint, bool)
	// ByteOrder returns the byte order of the file the directory comes from.
	ByteOrder() binary.ByteOrder
}

//------------------------//
// Directory              //
//------------------------//

// An IFD is an in-memory Image File Directory.
// It is not safe for concurrent mutation.
type IFD struct {
	byteOrder binary.ByteOrder
	features  map[uint16]Tag
}

// NewIFD returns an empty directory using the given byte order.
func NewIFD(order binary.ByteOrder) *IFD {
	return &IFD{
		byteOrder: order,
		features:  make(map[uint16]Tag),
	}
}

// Set adds or replaces the entry of the given tag.
func (d *IFD) Set(id uint16, dt DataType, vals ...uint) {
	d.features[id] = Tag{
		ID:   id,
		Type: dt,
		Val:  vals,
	}
}

// Delete removes the entry of the given tag.
func (d *IFD) Delete(id uint16) {
	delete(d.features, id)
}

// Tag returns the entry of the given tag.
func (d *IFD) Tag(id uint16) (Tag, bool) {
	t, ok := d.features[id]
	return t, ok
}

// Field implements Directory.
func (d *IFD) Field(id uint16) ([]uint, bool) {
	t, ok := d.features[id]
	return t.Val, ok
}

// ByteOrder implements Directory.
func (d *IFD) ByteOrder() binary.ByteOrder {
	return d.byteOrder
}

// FirstVal returns the first value of the given tag, or 0 if the tag does not exist.
func (d *IFD) FirstVal(id uint16) uint {
	return d.features[id].FirstVal()
}

// Tags returns all entries sorted by tag id.
func (d *IFD) Tags() []Tag {
	tags := make([]Tag, 0, len(d.features))
	for _, t := range d.features {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].ID < tags[j].ID
	})
	return tags
}

func (d *IFD) String() string {
	buf := bytes.NewBufferString("== TIFF ==\n")
	for _, t := range d.Tags() {
		buf.WriteString(fmt.Sprintf("%v\n", t))
	}
	buf.WriteString(fmt.Sprintf("ByteOrder: %v\n", d.byteOrder))
	buf.WriteString(fmt.Sprintf("BPP: %d\n", d.FirstVal(tBitsPerSample)))
	buf.WriteString(fmt.Sprintf("Bounds: %dx%d\n", d.FirstVal(tImageWidth), d.FirstVal(tImageLength)))
	return buf.String()
}

// firstVal returns the first value of tag in d, or def when the tag is absent or empty.
func firstVal(d Directory, tag uint16, def uint) uint {
	v, ok := d.Field(tag)
	if !ok || len(v) == 0 {
		return def
	}
	return v[0]
}

//------------------------//
// Header parser          //
//------------------------//

// ReadIFD parses the header and the first Image File Directory of a TIFF file.
// Following IFDs and SubIFDs are not visited.
func ReadIFD(r io.ReaderAt) (*IFD, error) {
	p := make([]byte, 8)
	if _, err := r.ReadAt(p, 0); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, FormatError("malformed header")
		}
		return nil, errors.Wrap(err, "tiff: could not read header")
	}

	var order binary.ByteOrder
	switch {
	case p[0] == LittleEndianMarker && p[1] == LittleEndianMarker:
		order = binary.LittleEndian
	case p[0] == BigEndianMarker && p[1] == BigEndianMarker:
		order = binary.BigEndian
	default:
		return nil, FormatError("malformed header")
	}

	switch order.Uint16(p[2:4]) {
	case ClassicMagic:
	case BigMagic:
		return nil, UnsupportedError("BigTIFF")
	default:
		return nil, FormatError("malformed header")
	}

	d := NewIFD(order)
	ifdOffset := int64(order.Uint32(p[4:8]))
	if err := d.parse(r, ifdOffset); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *IFD) parse(r io.ReaderAt, ifdOffset int64) error {
	p := make([]byte, 2)

	// The first two bytes contain the number of entries (12 bytes each).
	if _, err := r.ReadAt(p, ifdOffset); err != nil {
		return errors.Wrap(err, "tiff: could not read IFD entry count")
	}
	numItems := int(d.byteOrder.Uint16(p))

	// All IFD entries are read in one chunk.
	p = make([]byte, ClassicEntryLen*numItems)
	if _, err := r.ReadAt(p, ifdOffset+2); err != nil {
		return errors.Wrap(err, "tiff: could not read IFD entries")
	}

	for i := 0; i < len(p); i += ClassicEntryLen {
		t, err := d.parseEntry(r, p[i:i+ClassicEntryLen])
		if err != nil {
			return err
		}
		d.features[t.ID] = t
	}
	return nil
}

// parseEntry decodes the IFD entry in p, reading out-of-line values from r.
func (d *IFD) parseEntry(r io.ReaderAt, p []byte) (Tag, error) {
	tid := d.byteOrder.Uint16(p[0:2])
	dt, err := LookupDataType(d.byteOrder.Uint16(p[2:4]))
	if err != nil {
		return Tag{}, errors.Wrapf(err, "tiff: tag %d", tid)
	}
	count := uint64(d.byteOrder.Uint32(p[4:8]))

	var raw []byte
	datalen := dt.ByteLen(count)
	switch {
	case datalen > maxValueLen:
		return Tag{}, FormatError(fmt.Sprintf("tag %d value too large (%d bytes)", tid, datalen))
	case datalen > 4:
		// The IFD contains a pointer to the real value.
		raw = make([]byte, datalen)
		if _, err = r.ReadAt(raw, int64(d.byteOrder.Uint32(p[8:12]))); err != nil {
			return Tag{}, errors.Wrapf(err, "tiff: could not read value of tag %d", tid)
		}
	default:
		raw = p[8 : 8+datalen]
	}

	return Tag{
		ID:   tid,
		Type: dt,
		Val:  d.decodeValues(dt, raw, count),
	}, nil
}

func (d *IFD) decodeValues(dt DataType, raw []byte, count uint64) []uint {
	u := make([]uint, count)
	switch dt.Size() {
	case 1:
		for i := range u {
			u[i] = uint(raw[i])
		}
	case 2:
		for i := range u {
			u[i] = uint(d.byteOrder.Uint16(raw[2*i:]))
		}
	case 4:
		for i := range u {
			u[i] = uint(d.byteOrder.Uint32(raw[4*i:]))
		}
	case 8:
		for i := range u {
			if dt == Rational || dt == SRational {
				num := uint64(d.byteOrder.Uint32(raw[8*i:]))
				denom := uint64(d.byteOrder.Uint32(raw[8*i+4:]))
				u[i] = uint(num | denom<<32)
				continue
			}
			u[i] = uint(d.byteOrder.Uint64(raw[8*i:]))
		}
	}
	return u
}
