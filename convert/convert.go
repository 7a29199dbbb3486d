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

package convert

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/golang/snappy"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mdptrace/mdptrace/chrometrace"
	"github.com/mdptrace/mdptrace/curated"
	"github.com/mdptrace/mdptrace/intervals"
	"github.com/mdptrace/mdptrace/logger"
	"github.com/mdptrace/mdptrace/packets"
	"github.com/mdptrace/mdptrace/performance"
	"github.com/mdptrace/mdptrace/symbols"
	"github.com/mdptrace/mdptrace/timeline"
)

// Sentinal patterns for errors created by the package.
const (
	NoTrace     = "convert: no trace file specified"
	OutputError = "convert: output: %v"
	MemvizError = "convert: memviz: %v"
)

// extensions given to output files
const (
	jsonExtension   = ".json"
	snappyExtension = ".sz"
)

// Options for a conversion.
type Options struct {
	// the trace to convert. required
	TracePath string

	// symbols and intervals files. both are optional
	SymbolsPath   string
	IntervalsPath string

	// the JSON file to create. if empty the output path is decided by
	// OutputPath()
	OutputPath string

	// compress the output with the snappy framing format
	Compress bool

	// the name of the process in the output
	ProcessName string

	// the number of goroutines used to reconstruct the timeline
	Workers int

	// if not empty, the interval registry is written to the named file as a
	// graphviz document
	MemvizPath string
}

// Result of a successful conversion.
type Result struct {
	OutputPath string

	Packets int
	Events  int

	ClockRate float64
	Divider   uint64

	// custom lanes created by the intervals file
	Lanes []timeline.Lane

	// size of the output file in bytes
	Bytes int64
}

// OutputPath returns the default output path for a trace.
func OutputPath(tracePath string, compress bool) string {
	out := strings.TrimSuffix(tracePath, filepath.Ext(tracePath)) + jsonExtension
	if compress {
		out += snappyExtension
	}
	return out
}

// LoadSymbols reads the named symbols file. An empty table is returned if
// filename is empty.
func LoadSymbols(filename string) (*symbols.Table, error) {
	if filename == "" {
		return symbols.NewTable(), nil
	}
	return symbols.ReadFile(filename)
}

// LoadIntervals parses the named intervals file. A nil registry is returned
// if filename is empty.
func LoadIntervals(filename string, syms *symbols.Table) (*intervals.Registry, error) {
	if filename == "" {
		return nil, nil
	}
	return intervals.ParseFile(filename, syms)
}

// count formats numbers for the log.
var count = message.NewPrinter(language.English)

// Run the conversion described by opts.
func Run(opts Options) (Result, error) {
	if opts.TracePath == "" {
		return Result{}, curated.Errorf(NoTrace)
	}

	syms, err := LoadSymbols(opts.SymbolsPath)
	if err != nil {
		return Result{}, err
	}

	reg, err := LoadIntervals(opts.IntervalsPath, syms)
	if err != nil {
		return Result{}, err
	}

	if opts.MemvizPath != "" && reg != nil {
		err = dumpRegistry(opts.MemvizPath, reg)
		if err != nil {
			return Result{}, err
		}
	}

	sw := performance.NewStopwatch()

	capture, err := packets.LoadFile(opts.TracePath)
	if err != nil {
		return Result{}, err
	}

	logger.Log(logger.Allow, "convert", count.Sprintf("Read %d packets in %.3f ms", len(capture.Packets), sw.Milliseconds()))

	res := Result{
		OutputPath: opts.OutputPath,
		Packets:    len(capture.Packets),
		ClockRate:  capture.ClockRate,
		Divider:    capture.Divider,
	}
	if res.OutputPath == "" {
		res.OutputPath = OutputPath(opts.TracePath, opts.Compress)
	}

	// a nil registry must not be passed to Reconstruct() as a non-nil
	// interface
	var bp timeline.BreakpointHandler
	if reg != nil {
		bp = reg
		res.Lanes = reg.Lanes()
	}

	sw = performance.NewStopwatch()
	events := timeline.Reconstruct(capture.Packets, bp, syms, timeline.Options{Workers: opts.Workers})
	res.Events = len(events)

	logger.Log(logger.Allow, "convert", count.Sprintf("Generated %d output events in %.3f ms", res.Events, sw.Milliseconds()))

	sw = performance.NewStopwatch()
	res.Bytes, err = write(res.OutputPath, opts.Compress, events, chrometrace.Options{
		ClockRate:   capture.ClockRate,
		ProcessName: opts.ProcessName,
		Lanes:       res.Lanes,
	})
	if err != nil {
		return Result{}, err
	}

	logger.Log(logger.Allow, "convert", count.Sprintf("Wrote %d MB of json in %.3f ms", res.Bytes/1000000, sw.Milliseconds()))

	return res, nil
}

// write events to the named file. the output file is removed if there is an
// error.
func write(filename string, compress bool, events []timeline.Event, opts chrometrace.Options) (n int64, rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, curated.Errorf(OutputError, err)
	}
	defer func() {
		err := f.Close()
		if rerr == nil && err != nil {
			rerr = curated.Errorf(OutputError, err)
		}
		if rerr != nil {
			os.Remove(filename)
		}
	}()

	var w io.Writer = f
	var sw *snappy.Writer
	if compress {
		sw = snappy.NewBufferedWriter(f)
		w = sw
	}

	n, err = chrometrace.Write(w, events, opts)
	if err != nil {
		return 0, err
	}

	if sw != nil {
		err = sw.Close()
		if err != nil {
			return 0, curated.Errorf(OutputError, err)
		}
	}

	return n, nil
}

func dumpRegistry(filename string, reg *intervals.Registry) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(MemvizError, err)
	}
	defer func() {
		err := f.Close()
		if rerr == nil && err != nil {
			rerr = curated.Errorf(MemvizError, err)
		}
	}()

	memviz.Map(f, reg)

	logger.Logf(logger.Allow, "convert", "interval registry written to %s", filename)

	return nil
}

// Breakpoints writes the breakpoints file for the intervals file.
func Breakpoints(symbolsPath string, intervalsPath string, outputPath string) (n int, rerr error) {
	syms, err := LoadSymbols(symbolsPath)
	if err != nil {
		return 0, err
	}

	reg, err := intervals.ParseFile(intervalsPath, syms)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return 0, curated.Errorf(OutputError, err)
	}
	defer func() {
		err := f.Close()
		if rerr == nil && err != nil {
			n = 0
			rerr = curated.Errorf(OutputError, err)
		}
		if rerr != nil {
			os.Remove(outputPath)
		}
	}()

	err = reg.WriteBreakpoints(f)
	if err != nil {
		return 0, err
	}

	return len(reg.Addresses()), nil
}
