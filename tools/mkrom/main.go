// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mkrom

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/aymanbagabas/go-pty"
	"github.com/buildkite/shellwords"
	"github.com/clktmr/n64rom/fixture"
)

const usageString = `Test ROM builder.

Usage: %s [flags] <fixture>

The fixtures are:

	enhanced  RDP rectangle fills with VI interrupt polling
	pong3d    RSP graphics task rendering a 3d scene

`

var (
	flags = flag.NewFlagSet("mkrom", flag.ExitOnError)

	outfile = flags.String("o", "", "output file, defaults to <fixture>.z64")
	run     = flags.String("run", "", "run the ROM with command")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "mkrom")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}
	name := flags.Arg(0)

	var build func() ([]byte, error)
	switch name {
	case "enhanced":
		build = fixture.Enhanced
	case "pong3d":
		build = fixture.Pong3D
	default:
		log.Fatalln("unknown fixture:", name)
	}

	img, err := build()
	if err != nil {
		log.Fatalln(err)
	}

	out := *outfile
	if out == "" {
		out = name + ".z64"
	}
	if err := os.WriteFile(out, img, 0o666); err != nil {
		log.Fatalln(err)
	}

	if *run != "" {
		runROM(*run, out)
	}
}

// runROM hands the image to an emulator and scans its output for a test
// verdict.  The emulator runs on a pty so it keeps line buffering and
// doesn't suppress output when run from a pipeline.
func runROM(cmdline, rompath string) {
	args, err := shellwords.Split(cmdline)
	if err != nil {
		log.Fatalln("run:", err)
	}
	args = append(args, rompath)

	term, err := pty.New()
	if err != nil {
		log.Fatalln("open pty:", err)
	}
	defer term.Close()

	cmd := term.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		log.Fatalln("start command:", err)
	}

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)
	go func() {
		<-sigintr
		cmd.Process.Kill()
	}()

	scanner := bufio.NewScanner(term)
	exiting := false
	code := 0
	for scanner.Scan() {
		line := scanner.Text()
		log.Println(line)
		if exiting {
			continue
		}
		switch {
		case strings.HasPrefix(line, "fatal error:"), strings.HasPrefix(line, "panic:"):
			fallthrough
		case line == "FAIL":
			code = 1
			fallthrough
		case line == "PASS":
			exiting = true
			go func() {
				// give panic() time to print the stacktrace
				time.Sleep(500 * time.Millisecond)
				cmd.Process.Kill()
			}()
		}
	}
	cmd.Wait()
	os.Exit(code)
}
