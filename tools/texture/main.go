// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texture

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/clktmr/n64rom/rcp/texture"
	"github.com/ericpauley/go-quantize/quantize"
)

const usageString = `Image to n64 texture converter.

Usage: %s [flags] <image>

`

var (
	flags = flag.NewFlagSet("texture", flag.ExitOnError)

	format  = flags.String("format", "RGBA32", "image format and bit depth")
	dither  = flags.Bool("dither", false, "enable Floyd-Steinberg error diffusion")
	palette = flags.Int("palette", 256, "number of colors in CI8 format")

	imagefile string
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "texture")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		imagefile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}

	r, err := os.Open(imagefile)
	if err != nil {
		log.Fatalln(err)
	}
	defer r.Close()

	src, _, err := image.Decode(r)
	if err != nil {
		log.Fatalln(err)
	}

	var dst *texture.Texture

	switch *format {
	case "RGBA32":
		dst = texture.NewRGBA32(src.Bounds())
	case "RGBA16":
		dst = texture.NewRGBA16(src.Bounds())
	case "CI8":
		q := quantize.MedianCutQuantizer{}
		p := q.Quantize(make([]color.Color, 0, *palette), src)
		dst, err = texture.NewCI8(src.Bounds(), p)
		if err != nil {
			log.Fatalln(err)
		}
	default:
		log.Fatalln("unsupported format:", *format)
	}

	var d draw.Drawer = draw.Src
	if *dither {
		d = draw.FloydSteinberg
	}
	d.Draw(dst, dst.Bounds(), src, image.Point{})

	outfile := strings.TrimSuffix(imagefile, filepath.Ext(imagefile))
	outfile += "." + strings.ToLower(*format)
	if err := os.WriteFile(outfile, dst.Pix(), 0o666); err != nil {
		log.Fatalln(err)
	}

	if tlut := dst.TLUT(); tlut != nil {
		if err := os.WriteFile(outfile+".tlut", tlut, 0o666); err != nil {
			log.Fatalln(err)
		}
	}
}
