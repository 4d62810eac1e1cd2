package tiff

import "fmt"

// Luma coefficients used by RGB <-> YCbCr conversions (CCIR 601-1, TIFF 6.0, p. 91).
const (
	LumaRed   = 0.299
	LumaGreen = 0.587
	LumaBlue  = 0.114
)

// Photometric is the color space of the image data.
type Photometric uint16

const (
	WhiteIsZero      Photometric = pWhiteIsZero
	BlackIsZero      Photometric = pBlackIsZero
	RGB              Photometric = pRGB
	Palette          Photometric = pPaletted
	TransparencyMask Photometric = pTransMask
	CMYK             Photometric = pCMYK
	YCbCr            Photometric = pYCbCr
	CIELab           Photometric = pCIELab
	ColorFilterArray Photometric = pColorFilterArray // Not part of baseline TIFF 6.0.
)

type photometricInfo struct {
	name     string
	category string
}

var photometrics = map[Photometric]photometricInfo{
	WhiteIsZero:      {"WhiteIsZero", "Monochrome"},
	BlackIsZero:      {"BlackIsZero", "Monochrome"},
	RGB:              {"RGB", "RGB"},
	Palette:          {"Palette", "Monochrome"},
	TransparencyMask: {"Transparency Mask", "RGB"},
	CMYK:             {"CMYK", "CMYK"},
	YCbCr:            {"YCbCr", "RGB"},
	CIELab:           {"CIELAB", "RGB"},
	ColorFilterArray: {"Color Filter Array", "RGB"},
}

// LookupPhotometric returns the Photometric registered for code.
func LookupPhotometric(code uint16) (Photometric, error) {
	p := Photometric(code)
	if _, ok := photometrics[p]; !ok {
		return 0, &UnknownCodeError{Kind: "photometric interpretation", Code: uint(code)}
	}
	return p, nil
}

// Name returns the display name.
func (p Photometric) Name() string {
	if info, ok := photometrics[p]; ok {
		return info.name
	}
	return fmt.Sprintf("Photometric(%d)", uint16(p))
}

// Category returns the broader metadata classification
// ("Monochrome", "RGB" or "CMYK"), or an empty string for an unknown value.
func (p Photometric) Category() string {
	return photometrics[p].category
}

func (p Photometric) String() string {
	return p.Name()
}
