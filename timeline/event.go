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

import "fmt"

// Reserved lanes.
const (
	MainLane      = 0
	InterruptLane = 1

	// the first lane available for user defined events
	FirstCustomLane = 2
)

// Lane is a named lane.
type Lane struct {
	ID   int
	Name string
}

// Kind of event.
type Kind int

// List of valid Kind values.
const (
	Duration Kind = iota
	Instant
)

// Scope values for Instant events.
const (
	ScopeGlobal  = "g"
	ScopeProcess = "p"
	ScopeThread  = "t"
)

// Event is a single entry in the timeline. Cycles are absolute.
type Event struct {
	Kind  Kind
	Name  string
	Lane  int
	Start uint64

	// number of cycles covered by a Duration event. always zero for an
	// Instant event
	Length uint64

	// scope of an Instant event
	Scope string
}

// End returns the cycle at which the event ends.
func (e Event) End() uint64 {
	return e.Start + e.Length
}

func (e Event) String() string {
	if e.Kind == Instant {
		return fmt.Sprintf("%s @ %d [lane %d]", e.Name, e.Start, e.Lane)
	}
	return fmt.Sprintf("%s @ %d for %d [lane %d]", e.Name, e.Start, e.Length, e.Lane)
}

// VerticalBlankName is the name given to the Instant event created for a
// vertical blank.
const VerticalBlankName = "VInt"
