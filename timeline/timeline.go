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

package timeline

import (
	"fmt"
	"sync"

	"github.com/mdptrace/mdptrace/packets"
)

// BreakpointHandler is called for every ManualBreakpoint packet. The handler
// should append any events it creates to the events slice and return it.
type BreakpointHandler interface {
	OnBreakpoint(events []Event, pc uint32, cycle uint64) []Event
}

// Resolver gives names to addresses.
type Resolver interface {
	Label(addr uint32) (string, bool)
}

// Options for Reconstruct().
type Options struct {
	// the number of goroutines used to pair enter packets with exit packets.
	// values of one or less mean that pairing happens in the main loop
	Workers int
}

// the size of a stack frame pushed by a subroutine call
const returnAddressSize = 4

// unmatched indicates that an enter packet has no exit packet
const unmatched = -1

// match returns the index of the packet that ends the call or interrupt
// started by the packet at index i.
func match(pkts []packets.Packet, i int) int {
	enter := pkts[i]

	switch enter.Kind {
	case packets.SubroutineEnter:
		for j := i + 1; j < len(pkts); j++ {
			p := pkts[j]
			if p.Kind == packets.SubroutineExit && uint64(p.StackPointer)+returnAddressSize >= uint64(enter.StackPointer) {
				return j
			}
		}
	case packets.InterruptEnter:
		for j := i + 1; j < len(pkts); j++ {
			if pkts[j].Kind == packets.InterruptExit {
				return j
			}
		}
	}

	return unmatched
}

// matchAll pairs every enter packet using the specified number of
// goroutines. the result is indexed by packet.
func matchAll(pkts []packets.Packet, workers int) []int {
	matches := make([]int, len(pkts))

	chunk := (len(pkts) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(pkts); start += chunk {
		end := min(start+chunk, len(pkts))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				matches[i] = match(pkts, i)
			}
		}(start, end)
	}
	wg.Wait()

	return matches
}

// Reconstruct the timeline from the packets. The breakpoint handler and
// resolver can be nil.
func Reconstruct(pkts []packets.Packet, bp BreakpointHandler, res Resolver, opts Options) []Event {
	if len(pkts) == 0 {
		return nil
	}

	var matches []int
	if opts.Workers > 1 {
		matches = matchAll(pkts, opts.Workers)
	}

	end := pkts[len(pkts)-1].Cycle + 1

	// length of the call or interrupt started by packet i
	length := func(i int) uint64 {
		var j int
		if matches != nil {
			j = matches[i]
		} else {
			j = match(pkts, i)
		}
		e := end
		if j != unmatched {
			e = pkts[j].Cycle
		}
		if e < pkts[i].Cycle {
			return 0
		}
		return e - pkts[i].Cycle
	}

	name := func(addr uint32) string {
		if res != nil {
			if l, ok := res.Label(addr); ok {
				return l
			}
		}
		return fmt.Sprintf("%#x", addr)
	}

	var events []Event
	lane := MainLane

	for i, p := range pkts {
		switch p.Kind {
		case packets.SubroutineEnter:
			events = append(events, Event{
				Kind:   Duration,
				Name:   name(p.Address),
				Lane:   lane,
				Start:  p.Cycle,
				Length: length(i),
			})

		case packets.InterruptEnter:
			lane = InterruptLane
			events = append(events, Event{
				Kind:   Duration,
				Name:   name(p.Address),
				Lane:   InterruptLane,
				Start:  p.Cycle,
				Length: length(i),
			})

		case packets.InterruptExit:
			lane = MainLane

		case packets.VerticalBlank:
			events = append(events, Event{
				Kind:  Instant,
				Name:  VerticalBlankName,
				Lane:  InterruptLane,
				Start: p.Cycle,
				Scope: ScopeGlobal,
			})

		case packets.ManualBreakpoint:
			if bp != nil {
				events = bp.OnBreakpoint(events, p.Address, p.Cycle)
			}
		}
	}

	return events
}
