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

// Package symbols maps the addresses of a 68000 program to the names given to
// them by the assembler or linker.
//
// Three symbol file formats are understood. Read() detects the format from
// the first bytes of the file:
//
//	MND           binary symbol file written by asm68k
//	Segment CODE  listing written by the AS macro assembler
//	anything else the output of the nm tool
//
// An address may have more than one name. The most recently added name for an
// address is the one returned by Label() and is the name used when displaying
// the address in a timeline.
package symbols
