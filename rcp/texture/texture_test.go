package texture_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/clktmr/n64rom/rcp/texture"
	"golang.org/x/image/colornames"
)

func TestRGBA16Packing(t *testing.T) {
	tests := map[string]struct {
		color    color.Color
		expected []byte
	}{
		"red":   {colornames.Red, []byte{0xf8, 0x01}},
		"green": {color.RGBA{0x00, 0xff, 0x00, 0xff}, []byte{0x07, 0xc1}},
		"blue":  {colornames.Blue, []byte{0x00, 0x3f}},
		"white": {colornames.White, []byte{0xff, 0xff}},
		"black": {color.RGBA{0x00, 0x00, 0x00, 0xff}, []byte{0x00, 0x01}},
		"clear": {color.RGBA{}, []byte{0x00, 0x00}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tex := texture.NewRGBA16(image.Rect(0, 0, 1, 1))
			tex.Set(0, 0, tc.color)
			if !bytes.Equal(tex.Pix(), tc.expected) {
				t.Errorf("got % x, expected % x", tex.Pix(), tc.expected)
			}
		})
	}
}

func TestRGBA32RoundTrip(t *testing.T) {
	tex := texture.NewRGBA32(image.Rect(0, 0, 2, 2))
	c := color.RGBA{0x11, 0x22, 0x33, 0xff}
	tex.Set(1, 1, c)
	if got := tex.At(1, 1); got != c {
		t.Errorf("got %v, expected %v", got, c)
	}
	expected := []byte{0x11, 0x22, 0x33, 0xff}
	if !bytes.Equal(tex.Pix()[12:], expected) {
		t.Errorf("got % x, expected % x", tex.Pix()[12:], expected)
	}
}

func TestCI8(t *testing.T) {
	p := color.Palette{colornames.Black, colornames.Red, colornames.White}
	tex, err := texture.NewCI8(image.Rect(0, 0, 4, 1), p)
	if err != nil {
		t.Fatal(err)
	}
	tex.Set(0, 0, colornames.Red)
	tex.Set(1, 0, colornames.White)
	expected := []byte{0x01, 0x02, 0x00, 0x00}
	if !bytes.Equal(tex.Pix(), expected) {
		t.Errorf("got % x, expected % x", tex.Pix(), expected)
	}

	tlut := tex.TLUT()
	if len(tlut) != 512 {
		t.Fatalf("tlut size %d", len(tlut))
	}
	if got := [2]byte{tlut[2], tlut[3]}; got != [2]byte{0xf8, 0x01} {
		t.Errorf("tlut entry 1: got % x", got)
	}
}

func TestCI8PaletteSize(t *testing.T) {
	p := make(color.Palette, 257)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	if _, err := texture.NewCI8(image.Rect(0, 0, 1, 1), p); err == nil {
		t.Error("expected error")
	}
}

func TestConvert(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			src.Set(x, y, color.RGBA{uint8(x * 32), uint8(y * 32), 0, 0xff})
		}
	}

	for _, format := range []texture.Format{texture.RGBA16, texture.RGBA32, texture.CI8} {
		t.Run(format.String(), func(t *testing.T) {
			tex, err := texture.Convert(src, format, false)
			if err != nil {
				t.Fatal(err)
			}
			if tex.Format() != format {
				t.Errorf("format %v", tex.Format())
			}
			expected := 8 * 8 * format.BPP() / 8
			if len(tex.Pix()) != expected {
				t.Errorf("pix size %d, expected %d", len(tex.Pix()), expected)
			}
		})
	}
}
