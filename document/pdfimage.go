package document

import (
	"fmt"
	"image"
	"image/color"
)

// xobjImage holds the raw pixel data of a decoded image XObject.
type xobjImage struct {
	width      int
	height     int
	bpc        int
	colorSpace string
	data       []byte
}

// toImage converts the raw pixel data to an image.Image according to the
// declared color space and bit depth.
func (x *xobjImage) toImage() (image.Image, error) {
	switch x.colorSpace {
	case "DeviceRGB", "CalRGB":
		return x.toRGB()
	case "DeviceCMYK":
		return x.toCMYK()
	default:
		// DeviceGray, CalGray, ICCBased and anything unrecognized are
		// treated as grayscale.
		return x.toGray()
	}
}

func (x *xobjImage) toGray() (*image.Gray, error) {
	switch x.bpc {
	case 1:
		return x.toBilevelGray()
	case 4:
		return x.to4BitGray()
	case 8:
		expected := x.width * x.height
		if len(x.data) < expected {
			return nil, fmt.Errorf("insufficient data: got %d, expected %d", len(x.data), expected)
		}
		img := image.NewGray(image.Rect(0, 0, x.width, x.height))
		copy(img.Pix, x.data[:expected])
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported bits per component: %d", x.bpc)
	}
}

// toBilevelGray expands 1-bit bi-level data (CCITT and friends) to 8-bit
// grayscale. Rows are padded to whole bytes, MSB first; 0 means black
// unless BlackIs1 was applied during stream decoding.
func (x *xobjImage) toBilevelGray() (*image.Gray, error) {
	bytesPerRow := (x.width + 7) / 8
	expected := bytesPerRow * x.height
	if len(x.data) < expected {
		return nil, fmt.Errorf("insufficient data for 1-bit image: got %d, expected %d", len(x.data), expected)
	}

	img := image.NewGray(image.Rect(0, 0, x.width, x.height))
	for y := 0; y < x.height; y++ {
		rowStart := y * bytesPerRow
		for px := 0; px < x.width; px++ {
			bit := (x.data[rowStart+px/8] >> (7 - px%8)) & 1
			if bit == 0 {
				img.Pix[y*x.width+px] = 0
			} else {
				img.Pix[y*x.width+px] = 255
			}
		}
	}
	return img, nil
}

// to4BitGray expands 4-bit grayscale data (two pixels per byte, high
// nibble first) to 8-bit grayscale.
func (x *xobjImage) to4BitGray() (*image.Gray, error) {
	bytesPerRow := (x.width + 1) / 2
	expected := bytesPerRow * x.height
	if len(x.data) < expected {
		return nil, fmt.Errorf("insufficient data for 4-bit image: got %d, expected %d", len(x.data), expected)
	}

	img := image.NewGray(image.Rect(0, 0, x.width, x.height))
	for y := 0; y < x.height; y++ {
		rowStart := y * bytesPerRow
		for px := 0; px < x.width; px++ {
			var nibble byte
			if px%2 == 0 {
				nibble = (x.data[rowStart+px/2] >> 4) & 0x0F
			} else {
				nibble = x.data[rowStart+px/2] & 0x0F
			}
			img.Pix[y*x.width+px] = nibble * 17 // scale 0-15 to 0-255
		}
	}
	return img, nil
}

func (x *xobjImage) toRGB() (*image.RGBA, error) {
	if x.bpc != 8 {
		return nil, fmt.Errorf("unsupported bits per component for RGB: %d", x.bpc)
	}
	expected := x.width * x.height * 3
	if len(x.data) < expected {
		return nil, fmt.Errorf("insufficient data for RGB image: got %d, expected %d", len(x.data), expected)
	}

	img := image.NewRGBA(image.Rect(0, 0, x.width, x.height))
	for i := 0; i < x.width*x.height; i++ {
		img.Pix[i*4+0] = x.data[i*3+0]
		img.Pix[i*4+1] = x.data[i*3+1]
		img.Pix[i*4+2] = x.data[i*3+2]
		img.Pix[i*4+3] = 255
	}
	return img, nil
}

func (x *xobjImage) toCMYK() (*image.RGBA, error) {
	if x.bpc != 8 {
		return nil, fmt.Errorf("unsupported bits per component for CMYK: %d", x.bpc)
	}
	expected := x.width * x.height * 4
	if len(x.data) < expected {
		return nil, fmt.Errorf("insufficient data for CMYK image: got %d, expected %d", len(x.data), expected)
	}

	img := image.NewRGBA(image.Rect(0, 0, x.width, x.height))
	for i := 0; i < x.width*x.height; i++ {
		r, g, b := color.CMYKToRGB(x.data[i*4+0], x.data[i*4+1], x.data[i*4+2], x.data[i*4+3])
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = 255
	}
	return img, nil
}
