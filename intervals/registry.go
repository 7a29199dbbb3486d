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

package intervals

import (
	"bytes"
	"encoding/binary"
	"io"

	"golang.org/x/exp/slices"

	"github.com/mdptrace/mdptrace/curated"
	"github.com/mdptrace/mdptrace/timeline"
)

// Sentinal pattern for errors writing the breakpoints file.
const WriteError = "intervals: %v"

// definition of a single interval.
type definition struct {
	name string
	lane int

	// open is true if a start address has been reached and an end address
	// has not yet been reached. since is the cycle of the start
	open  bool
	since uint64
}

// Registry of interval definitions. The definitions are fixed once the
// registry is created. Only the open/closed state of each interval changes.
type Registry struct {
	defs []definition

	// indexes into defs for each start and end address
	starts map[uint32][]int
	ends   map[uint32][]int

	// custom lanes in lane id order
	lanes []timeline.Lane
}

func newRegistry() *Registry {
	return &Registry{
		starts: make(map[uint32][]int),
		ends:   make(map[uint32][]int),
	}
}

// OnBreakpoint implements the timeline.BreakpointHandler interface.
//
// Intervals that end at pc and which are open are closed, adding a new event
// to the events slice. Intervals that start at pc are then opened if they
// are not already open. An interval that starts and ends at the same address
// is therefore measured from one breakpoint to the next.
func (reg *Registry) OnBreakpoint(events []timeline.Event, pc uint32, cycle uint64) []timeline.Event {
	for _, i := range reg.ends[pc] {
		d := &reg.defs[i]
		if !d.open {
			continue
		}
		// cycles are not guaranteed to be monotonic
		var length uint64
		if cycle > d.since {
			length = cycle - d.since
		}
		events = append(events, timeline.Event{
			Kind:   timeline.Duration,
			Name:   d.name,
			Lane:   d.lane,
			Start:  d.since,
			Length: length,
		})
		d.open = false
	}

	for _, i := range reg.starts[pc] {
		d := &reg.defs[i]
		if d.open {
			continue
		}
		d.open = true
		d.since = cycle
	}

	return events
}

// Reset closes every interval without creating any events.
func (reg *Registry) Reset() {
	for i := range reg.defs {
		reg.defs[i].open = false
		reg.defs[i].since = 0
	}
}

// Open returns the names of the intervals that are currently open.
func (reg *Registry) Open() []string {
	var open []string
	for _, d := range reg.defs {
		if d.open {
			open = append(open, d.name)
		}
	}
	return open
}

// Len returns the number of intervals in the registry.
func (reg *Registry) Len() int {
	return len(reg.defs)
}

// Lanes returns the custom lanes used by the intervals in lane id order.
func (reg *Registry) Lanes() []timeline.Lane {
	return slices.Clone(reg.lanes)
}

// Addresses returns every start and end address in ascending order. Each
// address appears only once.
func (reg *Registry) Addresses() []uint32 {
	addrs := make([]uint32, 0, len(reg.starts)+len(reg.ends))
	for a := range reg.starts {
		addrs = append(addrs, a)
	}
	for a := range reg.ends {
		addrs = append(addrs, a)
	}
	slices.Sort(addrs)
	return slices.Compact(addrs)
}

// WriteBreakpoints writes every start and end address to w as a native endian
// 32 bit value. This is the breakpoints file used by the capture emulator.
func (reg *Registry) WriteBreakpoints(w io.Writer) error {
	b := &bytes.Buffer{}
	for _, a := range reg.Addresses() {
		b.Write(binary.NativeEndian.AppendUint32(nil, a))
	}

	_, err := w.Write(b.Bytes())
	if err != nil {
		return curated.Errorf(WriteError, err)
	}
	return nil
}
