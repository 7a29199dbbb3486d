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

package chrometrace

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/mdptrace/mdptrace/curated"
	"github.com/mdptrace/mdptrace/timeline"
)

// Sentinal patterns for errors created by the package.
const (
	InvalidClockRate = "chrometrace: invalid clock rate (%v)"
	WriteError       = "chrometrace: %v"
)

// DefaultProcessName is the name given to the process if Options.ProcessName
// is empty.
const DefaultProcessName = "M68000"

// names of the reserved lanes
const (
	mainLaneName      = "Main thread"
	interruptLaneName = "Interrupts"
)

// Options for Write().
type Options struct {
	// the clock rate in Hz of the cycles in the timeline events. must be
	// greater than zero
	ClockRate float64

	ProcessName string

	// custom lanes used in the timeline events. the main and interrupt lanes
	// are always named
	Lanes []timeline.Lane
}

// CycleToMicroseconds converts a cycle count to microseconds.
func CycleToMicroseconds(cycle uint64, clockRate float64) float64 {
	return float64(cycle) / clockRate * 1e6
}

func threadName(lane int, name string) Event {
	return Event{
		Name:     MetaThreadName,
		Phase:    PhaseMetadata,
		ThreadID: lane,
		Args:     &Args{Name: name},
	}
}

func threadSortIndex(lane int, idx int) Event {
	return Event{
		Name:     MetaThreadSortIndex,
		Phase:    PhaseMetadata,
		ThreadID: lane,
		Args:     &Args{SortIndex: &idx},
	}
}

// Metadata returns the metadata events that precede the timeline events.
func Metadata(opts Options) []Event {
	name := opts.ProcessName
	if name == "" {
		name = DefaultProcessName
	}

	meta := []Event{
		{
			Name:  MetaProcessName,
			Phase: PhaseMetadata,
			Args:  &Args{Name: name},
		},
		threadName(timeline.MainLane, mainLaneName),
		threadName(timeline.InterruptLane, interruptLaneName),
		threadSortIndex(timeline.MainLane, timeline.MainLane),
		threadSortIndex(timeline.InterruptLane, timeline.InterruptLane),
	}

	for _, l := range opts.Lanes {
		meta = append(meta, threadName(l.ID, l.Name), threadSortIndex(l.ID, l.ID))
	}

	return meta
}

// Convert a timeline event to a trace event.
func Convert(e timeline.Event, clockRate float64) Event {
	ev := Event{
		Name:      e.Name,
		Timestamp: CycleToMicroseconds(e.Start, clockRate),
		ThreadID:  e.Lane,
	}

	switch e.Kind {
	case timeline.Instant:
		ev.Phase = PhaseInstant
		ev.Scope = e.Scope
	default:
		ev.Phase = PhaseComplete
		ev.Duration = CycleToMicroseconds(e.Length, clockRate)
	}

	return ev
}

// counter counts the bytes written to the underlying writer.
type counter struct {
	w io.Writer
	n int64
}

func (c *counter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Write the timeline events to w. Returns the number of bytes written.
func Write(w io.Writer, events []timeline.Event, opts Options) (int64, error) {
	if !(opts.ClockRate > 0) {
		return 0, curated.Errorf(InvalidClockRate, opts.ClockRate)
	}

	c := &counter{w: w}
	bw := bufio.NewWriter(c)

	first := true
	writeEvent := func(ev Event) error {
		b, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if !first {
			bw.WriteByte(',')
		}
		first = false
		_, err = bw.Write(b)
		return err
	}

	bw.WriteString(`{"traceEvents":[`)

	for _, ev := range Metadata(opts) {
		if err := writeEvent(ev); err != nil {
			return c.n, curated.Errorf(WriteError, err)
		}
	}

	for _, e := range events {
		if err := writeEvent(Convert(e, opts.ClockRate)); err != nil {
			return c.n, curated.Errorf(WriteError, err)
		}
	}

	bw.WriteString(`],"displayTimeUnit":"` + DisplayTimeUnit + `"}`)

	if err := bw.Flush(); err != nil {
		return c.n, curated.Errorf(WriteError, err)
	}

	return c.n, nil
}
