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

// Package timeline reconstructs a timeline of events from the packets of a
// decoded trace.
//
// A subroutine call becomes a duration event spanning the cycle of the
// SubroutineEnter packet to the cycle of the matching SubroutineExit packet.
// The exit matching an enter is the nearest following exit whose stack
// pointer shows that the stack has unwound to, or past, the stack frame of
// the call. Interrupts are paired in the same way, except that no stack
// condition applies. Calls and interrupts with no matching exit end one cycle
// after the last packet in the trace.
//
// Events are placed on lanes. Lane zero is the main thread of execution and
// lane one is for interrupts. Lanes from FirstCustomLane upwards are
// available to the BreakpointHandler for events of its own.
package timeline
