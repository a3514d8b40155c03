// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clktmr/n64rom/tools/mkrom"
	"github.com/clktmr/n64rom/tools/texture"
)

const usageString = `n64rom is a tool for building Nintendo64 test ROMs.

Usage:

	%s <command> [arguments]

The commands are:

	mkrom    build a test ROM and optionally run it in an emulator
	texture  convert images to n64 texture formats
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "mkrom":
		mkrom.Main(flag.Args())
	case "texture":
		texture.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
