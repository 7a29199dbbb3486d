// This file is part of mdptrace.
//
// mdptrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// mdptrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with mdptrace.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdptrace/mdptrace/convert"
	"github.com/mdptrace/mdptrace/logger"
	"github.com/mdptrace/mdptrace/mcpserve"
	"github.com/mdptrace/mdptrace/modalflag"
	"github.com/mdptrace/mdptrace/packets"
	"github.com/mdptrace/mdptrace/performance"
	"github.com/mdptrace/mdptrace/statsview"
	"github.com/mdptrace/mdptrace/symbols"
	"github.com/mdptrace/mdptrace/version"
)

// exit values
const (
	exitFlagError = 10
	exitModeError = 20
)

// number of log entries shown when a mode fails
const tailOnError = 10

// whether the full log is being echoed
var echoing bool

func main() {
	os.Exit(launch(os.Args[1:]))
}

// launch parses the arguments and runs the selected mode. returns the value
// to be used with os.Exit().
func launch(args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("CONVERT", "PACKETS", "SYMBOLS", "BREAKPOINTS", "SERVE", "VERSION")

	echoing = false

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return exitFlagError
	}

	switch md.Mode() {
	case "CONVERT":
		err = convertMode(md)

	case "PACKETS":
		err = packetsMode(md)

	case "SYMBOLS":
		err = symbolsMode(md)

	case "BREAKPOINTS":
		err = breakpointsMode(md)

	case "SERVE":
		err = serveMode(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		if !echoing {
			logger.Tail(logger.EchoWriter(os.Stderr), tailOnError)
		}
		return exitModeError
	}

	return 0
}

// echo the log to stderr. the log is always collected but only warnings are
// shown unless the full log is requested.
func echoLog(echo bool) {
	echoing = echo
	if echo {
		logger.SetEcho(logger.EchoWriter(os.Stderr), true)
	} else {
		logger.SetEcho(logger.NewWarningFilter(logger.EchoWriter(os.Stderr)), false)
	}
}

func convertMode(md *modalflag.Modes) error {
	md.NewMode()

	symbolsFile := md.AddString("symbols", "", "symbols file (asm68k, AS listing or nm output)")
	intervalsFile := md.AddString("intervals", "", "intervals file")
	output := md.AddString("o", "", "output file (default: trace file with .json extension)")
	compress := md.AddBool("compress", false, "compress output with snappy")
	process := md.AddString("process", "", "process name in the timeline (default: M68000)")
	workers := md.AddInt("workers", 1, "number of goroutines used to pair subroutine calls and returns")
	log := md.AddBool("log", false, "echo log to stderr")
	profile := md.AddBool("profile", false, "run conversion through the cpu and memory profilers")
	stats := new(bool)
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	memviz := md.AddString("memviz", "", "write interval registry to graphviz file")

	md.AdditionalHelp("Convert an mdp trace to a JSON timeline")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	args, err := md.Args(1, 1, "an mdp trace file")
	if err != nil {
		return err
	}

	echoLog(*log)

	if *stats {
		statsview.Launch(os.Stdout)
	}

	opts := convert.Options{
		TracePath:     args[0],
		SymbolsPath:   *symbolsFile,
		IntervalsPath: *intervalsFile,
		OutputPath:    *output,
		Compress:      *compress,
		ProcessName:   *process,
		Workers:       *workers,
		MemvizPath:    *memviz,
	}

	var res convert.Result
	err = performance.RunProfiler(*profile, version.ApplicationName, func() error {
		var err error
		res, err = convert.Run(opts)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d packets, %d events\n", res.OutputPath, res.Packets, res.Events)

	if *stats {
		fmt.Print("press enter to stop the stats server")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}

	return nil
}

func packetsMode(md *modalflag.Modes) error {
	md.NewMode()

	dump := md.AddBool("dump", false, "list every packet")
	log := md.AddBool("log", false, "echo log to stderr")

	md.AdditionalHelp("Summarise the contents of an mdp trace")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	args, err := md.Args(1, 1, "an mdp trace file")
	if err != nil {
		return err
	}

	echoLog(*log)

	c, err := packets.LoadFile(args[0])
	if err != nil {
		return err
	}

	c.Summary().Write(os.Stdout)

	if *dump {
		for _, p := range c.Packets {
			fmt.Println(p)
		}
	}

	return nil
}

func symbolsMode(md *modalflag.Modes) error {
	md.NewMode()

	format := md.AddString("format", "AUTO", "symbols file format: AUTO, ASM68K, AS, NM")
	search := md.AddString("search", "", "list only the symbols containing the search string")

	md.AdditionalHelp("List the contents of a symbols file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	args, err := md.Args(1, 1, "a symbols file")
	if err != nil {
		return err
	}

	echoLog(false)

	f, err := md.Choice("format", *format, "AUTO", "ASM68K", "AS", "NM")
	if err != nil {
		return err
	}

	var tbl *symbols.Table
	switch f {
	case "ASM68K":
		tbl, err = symbols.ReadFileFormat(args[0], symbols.FormatASM68K)
	case "AS":
		tbl, err = symbols.ReadFileFormat(args[0], symbols.FormatAS)
	case "NM":
		tbl, err = symbols.ReadFileFormat(args[0], symbols.FormatNM)
	default:
		tbl, err = symbols.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	if *search == "" {
		tbl.List(os.Stdout)
		return nil
	}

	for _, n := range tbl.Search(*search) {
		addr, _ := tbl.Address(n)
		fmt.Printf("%#08x -> %s\n", addr, n)
	}

	return nil
}

func breakpointsMode(md *modalflag.Modes) error {
	md.NewMode()

	symbolsFile := md.AddString("symbols", "", "symbols file (asm68k, AS listing or nm output)")
	output := md.AddString("o", "", "output file (default: intervals file with .bin extension)")

	md.AdditionalHelp("Write the breakpoints file for an intervals file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	args, err := md.Args(1, 1, "an intervals file")
	if err != nil {
		return err
	}

	echoLog(false)

	out := *output
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".bin"
	}

	n, err := convert.Breakpoints(*symbolsFile, args[0], out)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d breakpoints\n", out, n)

	return nil
}

func serveMode(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo log to stderr")

	md.AdditionalHelp("Serve the Model Context Protocol on stdin and stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	_, err = md.Args(0, 0, "no arguments")
	if err != nil {
		return err
	}

	echoLog(*log)

	return mcpserve.NewServer().Serve()
}
