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

package packets

import "fmt"

// Kind identifies the type of a Packet.
type Kind byte

// List of valid packet kinds. The values are the type tags used in the
// binary trace.
const (
	SubroutineEnter Kind = iota
	SubroutineExit
	InterruptEnter
	InterruptExit
	HorizontalBlank
	VerticalBlank
	AdjustCycleOffset
	ManualBreakpoint

	NumKinds
)

func (k Kind) String() string {
	switch k {
	case SubroutineEnter:
		return "subroutine enter"
	case SubroutineExit:
		return "subroutine exit"
	case InterruptEnter:
		return "interrupt enter"
	case InterruptExit:
		return "interrupt exit"
	case HorizontalBlank:
		return "hblank"
	case VerticalBlank:
		return "vblank"
	case AdjustCycleOffset:
		return "adjust cycles"
	case ManualBreakpoint:
		return "manual breakpoint"
	}
	return fmt.Sprintf("unknown (%d)", byte(k))
}

// HasAddress returns true if packets of this kind carry an address payload.
func (k Kind) HasAddress() bool {
	return k == SubroutineEnter || k == InterruptEnter || k == ManualBreakpoint
}

// Packet is a single decoded entry from the trace.
type Packet struct {
	Kind Kind

	// absolute cycle count. the cycle offset has already been applied
	Cycle uint64

	StackPointer uint32

	// target of SubroutineEnter and InterruptEnter packets. program counter
	// of ManualBreakpoint packets. zero for all other kinds
	Address uint32
}

func (p Packet) String() string {
	if p.Kind.HasAddress() {
		return fmt.Sprintf("%12d  sp=%#08x  %s %#x", p.Cycle, p.StackPointer, p.Kind, p.Address)
	}
	return fmt.Sprintf("%12d  sp=%#08x  %s", p.Cycle, p.StackPointer, p.Kind)
}
