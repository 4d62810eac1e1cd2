package tiff

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// A Tag is one decoded IFD entry.
// Val holds the raw bits of each element: integers as is, floats as their
// IEEE 754 bits, rationals as numerator | denominator<<32.
type Tag struct {
	ID   uint16
	Type DataType
	Val  []uint
}

// FirstVal returns the first uint of the entry, or 0 if the entry is empty.
func (t Tag) FirstVal() uint {
	if len(t.Val) == 0 {
		return 0
	}
	return t.Val[0]
}

// Rational returns the unsigned rational at index,
// or 0 if the index is out of range or the denominator is zero.
func (t Tag) Rational(index int) *big.Rat {
	if len(t.Val) <= index {
		return new(big.Rat)
	}
	u64 := uint64(t.Val[index])
	num := int64(u64 & 0xFFFFFFFF)
	denom := int64(u64 >> 32)
	if denom == 0 {
		return new(big.Rat)
	}
	return big.NewRat(num, denom)
}

// SRational returns the signed rational at index,
// or 0 if the index is out of range or the denominator is zero.
func (t Tag) SRational(index int) *big.Rat {
	if len(t.Val) <= index {
		return new(big.Rat)
	}
	u64 := uint64(t.Val[index])
	num := int32(u64 & 0xFFFFFFFF)
	denom := int32(u64 >> 32)
	if denom == 0 {
		return new(big.Rat)
	}
	return big.NewRat(int64(num), int64(denom))
}

// Double returns the float64 at index, or 0 if the index is out of range.
func (t Tag) Double(index int) float64 {
	if len(t.Val) <= index {
		return 0
	}
	return math.Float64frombits(uint64(t.Val[index]))
}

// AsFloat returns the value at index converted to float64.
func (t Tag) AsFloat(index int) float64 {
	switch t.Type {
	case Rational:
		v, _ := t.Rational(index).Float64()
		return v
	case SRational:
		v, _ := t.SRational(index).Float64()
		return v
	case Double:
		return t.Double(index)
	case Float:
		if len(t.Val) <= index {
			return 0
		}
		return float64(math.Float32frombits(uint32(t.Val[index])))
	default:
		if len(t.Val) <= index {
			return 0
		}
		return float64(t.Val[index])
	}
}

// ASCII returns the entry as a string, dropping NUL terminators.
func (t Tag) ASCII() string {
	var sb strings.Builder
	for _, c := range t.Val {
		if c == 0 {
			continue
		}
		sb.WriteByte(byte(c))
	}
	return sb.String()
}

// Name returns the common name of the tag.
func (t Tag) Name() string {
	return tagname(t.ID)
}

// PrettyPrintedValue returns the formatted value.
func (t Tag) PrettyPrintedValue() string {
	return valuename(t)
}

// String implements Stringer.
func (t Tag) String() string {
	return fmt.Sprintf("%s: %s", t.Name(), t.PrettyPrintedValue())
}
