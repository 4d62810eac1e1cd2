package tiff

import "fmt"

// A DataType is the type of the values of an IFD entry.
type DataType uint16

// Field data types, BigTIFF adds Long8, SLong8 and IFD8.
const (
	Byte       DataType = dtByte
	ASCII      DataType = dtASCII
	Short      DataType = dtShort
	Long       DataType = dtLong
	Rational   DataType = dtRational
	SByte      DataType = dtSByte
	Undefined  DataType = dtUndefined
	SShort     DataType = dtSShort
	SLong      DataType = dtSLong
	SRational  DataType = dtSRational
	Float      DataType = dtFloat
	Double     DataType = dtDouble
	IFDPointer DataType = dtIFD
	Long8      DataType = dtLong8
	SLong8     DataType = dtSLong8
	IFD8       DataType = dtIFD8
)

type dataTypeInfo struct {
	name string
	size int
}

// The length of one instance of each data type in bytes, indexed by code.
// A zero size marks an unassigned code.
var dataTypes = [...]dataTypeInfo{
	dtByte:      {"BYTE", 1},
	dtASCII:     {"ASCII", 1},
	dtShort:     {"SHORT", 2},
	dtLong:      {"LONG", 4},
	dtRational:  {"RATIONAL", 8},
	dtSByte:     {"SBYTE", 1},
	dtUndefined: {"UNDEFINED", 1},
	dtSShort:    {"SSHORT", 2},
	dtSLong:     {"SLONG", 4},
	dtSRational: {"SRATIONAL", 8},
	dtFloat:     {"FLOAT", 4},
	dtDouble:    {"DOUBLE", 8},
	dtIFD:       {"IFD", 4},
	dtLong8:     {"LONG8", 8},
	dtSLong8:    {"SLONG8", 8},
	dtIFD8:      {"IFD8", 8},
}

// LookupDataType returns the DataType registered for code.
func LookupDataType(code uint16) (DataType, error) {
	if int(code) >= len(dataTypes) || dataTypes[code].size == 0 {
		return 0, &UnknownCodeError{Kind: "IFD type", Code: uint(code)}
	}
	return DataType(code), nil
}

// Size returns the number of bytes of one element, or 0 for an unknown type.
func (t DataType) Size() int {
	if int(t) >= len(dataTypes) {
		return 0
	}
	return dataTypes[t].size
}

// ByteLen returns the length in bytes of count elements.
func (t DataType) ByteLen(count uint64) uint64 {
	return count * uint64(t.Size())
}

func (t DataType) String() string {
	if t.Size() == 0 {
		return fmt.Sprintf("DataType(%d)", uint16(t))
	}
	return dataTypes[t].name
}
