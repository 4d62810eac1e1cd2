package tiff

import (
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/format"
	"github.com/mdouchement/hdr/hdrcolor"
)

// imageMode represents the mode of the image.
type imageMode int

const (
	mGray imageMode = iota
	mGrayInvert
	mRGB
	mRGBA  // associated alpha
	mNRGBA // unassociated alpha
	mRGBFloat
)

// mode determines the image mode and the bits per sample of d.
func (d *IFD) mode() (imageMode, int, error) {
	p, err := LookupPhotometric(uint16(d.FirstVal(tPhotometricInterpretation)))
	if err != nil {
		return 0, 0, err
	}
	if _, ok := d.features[tBitsPerSample]; !ok {
		return 0, 0, FormatError("BitsPerSample tag missing")
	}
	bpp := int(d.FirstVal(tBitsPerSample))
	samples := firstVal(d, tSamplesPerPixel, 1)
	sampleFormat := firstVal(d, tSampleFormat, sfUint)

	switch {
	case (p == BlackIsZero || p == WhiteIsZero) && samples == 1 && sampleFormat == sfUint && (bpp == 8 || bpp == 16):
		if p == WhiteIsZero {
			return mGrayInvert, bpp, nil
		}
		return mGray, bpp, nil
	case p == RGB && samples == 3 && sampleFormat == sfFloat && bpp == 32:
		return mRGBFloat, bpp, nil
	case p == RGB && sampleFormat == sfUint && (bpp == 8 || bpp == 16):
		switch samples {
		case 3:
			return mRGB, bpp, nil
		case 4:
			if d.FirstVal(tExtraSamples) == esAssociated {
				return mRGBA, bpp, nil
			}
			return mNRGBA, bpp, nil
		}
	}
	return 0, 0, UnsupportedError(fmt.Sprintf("color model %s with %d samples of %d bits", p.Name(), samples, bpp))
}

// Config returns the color model and dimensions of the image described by d.
func (d *IFD) Config() (image.Config, error) {
	mode, bpp, err := d.mode()
	if err != nil {
		return image.Config{}, err
	}

	c := image.Config{
		Width:  int(d.FirstVal(tImageWidth)),
		Height: int(d.FirstVal(tImageLength)),
	}
	switch mode {
	case mGray, mGrayInvert:
		c.ColorModel = color.GrayModel
		if bpp == 16 {
			c.ColorModel = color.Gray16Model
		}
	case mRGB, mRGBA:
		c.ColorModel = color.RGBAModel
		if bpp == 16 {
			c.ColorModel = color.RGBA64Model
		}
	case mNRGBA:
		c.ColorModel = color.NRGBAModel
		if bpp == 16 {
			c.ColorModel = color.NRGBA64Model
		}
	case mRGBFloat:
		c.ColorModel = hdrcolor.RGBModel
	}
	return c, nil
}

// Image converts the decoded pixels of the image described by d,
// as returned by DecodePixels, into an image.Image.
// 32 bits floating-point RGB images are returned as *hdr.RGB.
func (d *IFD) Image(pix []byte) (image.Image, error) {
	mode, bpp, err := d.mode()
	if err != nil {
		return nil, err
	}

	width := int(d.FirstVal(tImageWidth))
	height := int(d.FirstVal(tImageLength))
	samples := int(firstVal(d, tSamplesPerPixel, 1))
	if n := width * height * samples * bpp / 8; len(pix) < n {
		return nil, FormatError(fmt.Sprintf("not enough pixel data: %d < %d", len(pix), n))
	}

	bounds := image.Rect(0, 0, width, height)
	order := d.byteOrder

	switch mode {
	case mGray, mGrayInvert:
		if bpp == 16 {
			m := image.NewGray16(bounds)
			for i := 0; i < width*height; i++ {
				v := order.Uint16(pix[2*i:])
				if mode == mGrayInvert {
					v = 0xffff - v
				}
				m.Pix[2*i+0] = uint8(v >> 8)
				m.Pix[2*i+1] = uint8(v)
			}
			return m, nil
		}
		m := image.NewGray(bounds)
		copy(m.Pix, pix)
		if mode == mGrayInvert {
			for i := range m.Pix {
				m.Pix[i] = 0xff - m.Pix[i]
			}
		}
		return m, nil
	case mRGB, mRGBA, mNRGBA:
		return d.rgb(mode, bpp, samples, bounds, pix), nil
	case mRGBFloat:
		m := hdr.NewRGB(bounds)
		var offset int
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				R, G, B := format.FromBytes(order, pix[offset:offset+12])
				m.SetRGB(x, y, hdrcolor.RGB{R: R, G: G, B: B})
				offset += 12 // RGB is hold on 12 Bytes (4 Bytes per channel)
			}
		}
		return m, nil
	}
	return nil, InternalError("unhandled image mode")
}

func (d *IFD) rgb(mode imageMode, bpp, samples int, bounds image.Rectangle, pix []byte) image.Image {
	n := bounds.Dx() * bounds.Dy()

	if bpp == 8 {
		switch mode {
		case mNRGBA:
			m := image.NewNRGBA(bounds)
			copy(m.Pix, pix)
			return m
		case mRGBA:
			m := image.NewRGBA(bounds)
			copy(m.Pix, pix)
			return m
		default:
			m := image.NewRGBA(bounds)
			for i := 0; i < n; i++ {
				copy(m.Pix[4*i:4*i+3], pix[3*i:3*i+3])
				m.Pix[4*i+3] = 0xff
			}
			return m
		}
	}

	// 16 bits samples are stored in file order, image.RGBA64 wants big-endian.
	var dst []uint8
	var m image.Image
	if mode == mNRGBA {
		nm := image.NewNRGBA64(bounds)
		dst, m = nm.Pix, nm
	} else {
		rm := image.NewRGBA64(bounds)
		dst, m = rm.Pix, rm
	}
	for i := 0; i < n; i++ {
		for c := 0; c < 4; c++ {
			v := uint16(0xffff)
			if c < samples {
				v = d.byteOrder.Uint16(pix[2*(i*samples+c):])
			}
			dst[8*i+2*c+0] = uint8(v >> 8)
			dst[8*i+2*c+1] = uint8(v)
		}
	}
	return m
}
