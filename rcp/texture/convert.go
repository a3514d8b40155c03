package texture

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

var ErrPaletteSize = errors.New("palette too large")

// Convert packs src into a texture of the given format.  For CI8 a
// palette is computed from src with median cut quantization.  When
// dither is set, quantization error is diffused with Floyd-Steinberg.
func Convert(src image.Image, f Format, dither bool) (*Texture, error) {
	var tex *Texture
	var err error
	switch f {
	case CI8:
		q := quantize.MedianCutQuantizer{}
		p := q.Quantize(make([]color.Color, 0, 256), src)
		tex, err = NewCI8(src.Bounds(), p)
		if err != nil {
			return nil, err
		}
	case RGBA32:
		tex = NewRGBA32(src.Bounds())
	default:
		tex = NewRGBA16(src.Bounds())
	}

	if dither {
		draw.FloydSteinberg.Draw(tex, tex.Bounds(), src, src.Bounds().Min)
	} else {
		draw.Draw(tex, tex.Bounds(), src, src.Bounds().Min, draw.Src)
	}
	return tex, nil
}
