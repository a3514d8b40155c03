// Package texture packs images into the texel formats understood by the
// RDP.  Textures are stored with big-endian texels, ready to be placed
// into cartridge memory and pointed at by a SetTextureImage or
// SetColorImage command.
package texture

import (
	"encoding/binary"
	"image"
	"image/color"
)

type Format uint8

const (
	RGBA16 Format = iota
	RGBA32
	CI8
)

func (f Format) String() string {
	switch f {
	case RGBA16:
		return "rgba16"
	case RGBA32:
		return "rgba32"
	case CI8:
		return "ci8"
	}
	return "unknown"
}

// BPP returns the size of a single texel in bits.
func (f Format) BPP() int {
	switch f {
	case RGBA32:
		return 32
	case RGBA16:
		return 16
	default:
		return 8
	}
}

// Texture is an image with texels laid out the way the RDP samples them.
// It implements draw.Image, so images can be converted by drawing onto
// it, optionally with dithering.
type Texture struct {
	format  Format
	rect    image.Rectangle
	stride  int
	pix     []byte
	palette color.Palette // CI8 only
}

func newTexture(f Format, r image.Rectangle) *Texture {
	stride := r.Dx() * f.BPP() / 8
	return &Texture{
		format: f,
		rect:   r,
		stride: stride,
		pix:    make([]byte, stride*r.Dy()),
	}
}

// NewRGBA32 returns a texture with 8 bits per channel.
func NewRGBA32(r image.Rectangle) *Texture { return newTexture(RGBA32, r) }

// NewRGBA16 returns a texture with 5 bits per color channel and a 1 bit
// alpha channel.
func NewRGBA16(r image.Rectangle) *Texture { return newTexture(RGBA16, r) }

// NewCI8 returns a palettized texture.  Texels are 8 bit indices into
// p, which may hold at most 256 colors.
func NewCI8(r image.Rectangle, p color.Palette) (*Texture, error) {
	if len(p) > 256 {
		return nil, ErrPaletteSize
	}
	tex := newTexture(CI8, r)
	tex.palette = p
	return tex, nil
}

func (t *Texture) Format() Format          { return t.format }
func (t *Texture) Bounds() image.Rectangle { return t.rect }
func (t *Texture) Stride() int             { return t.stride }

// Pix returns the raw texel data in big-endian order.
func (t *Texture) Pix() []byte { return t.pix }

func (t *Texture) ColorModel() color.Model {
	switch t.format {
	case RGBA32:
		return color.RGBAModel
	case RGBA16:
		return color.ModelFunc(rgba16Model)
	default:
		return t.palette
	}
}

func (t *Texture) pixOffset(x, y int) int {
	return (y-t.rect.Min.Y)*t.stride + (x-t.rect.Min.X)*t.format.BPP()/8
}

func (t *Texture) At(x, y int) color.Color {
	if !image.Pt(x, y).In(t.rect) {
		return color.RGBA{}
	}
	i := t.pixOffset(x, y)
	switch t.format {
	case RGBA32:
		return color.RGBA{t.pix[i], t.pix[i+1], t.pix[i+2], t.pix[i+3]}
	case RGBA16:
		return fromRGBA5551(binary.BigEndian.Uint16(t.pix[i:]))
	default:
		return t.palette[t.pix[i]]
	}
}

func (t *Texture) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(t.rect) {
		return
	}
	i := t.pixOffset(x, y)
	switch t.format {
	case RGBA32:
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		t.pix[i+0] = rgba.R
		t.pix[i+1] = rgba.G
		t.pix[i+2] = rgba.B
		t.pix[i+3] = rgba.A
	case RGBA16:
		binary.BigEndian.PutUint16(t.pix[i:], toRGBA5551(c))
	default:
		t.pix[i] = uint8(t.palette.Index(c))
	}
}

// TLUT returns the texture's palette packed as 256 big-endian RGBA16
// entries, the layout expected in RDP texture lookup memory.  It
// returns nil for non-palettized textures.
func (t *Texture) TLUT() []byte {
	if t.format != CI8 {
		return nil
	}
	tlut := make([]byte, 256*2)
	for i, c := range t.palette {
		binary.BigEndian.PutUint16(tlut[i*2:], toRGBA5551(c))
	}
	return tlut
}

// toRGBA5551 packs a color into the 16 bit texel layout, 5 bits per
// color channel and a single alpha bit.
func toRGBA5551(c color.Color) uint16 {
	r, g, b, a := c.RGBA()
	return uint16(r>>11)<<11 | uint16(g>>11)<<6 | uint16(b>>11)<<1 | uint16(a>>15)
}

func fromRGBA5551(v uint16) color.Color {
	r := uint8(v>>11) & 0x1f
	g := uint8(v>>6) & 0x1f
	b := uint8(v>>1) & 0x1f
	a := uint8(v) & 0x1
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<3 | g>>2,
		B: b<<3 | b>>2,
		A: a * 0xff,
	}
}

func rgba16Model(c color.Color) color.Color {
	return fromRGBA5551(toRGBA5551(c))
}
