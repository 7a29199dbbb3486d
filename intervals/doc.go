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

// Package intervals measures the time between two or more points in a
// program.
//
// An interval is defined by a set of start addresses and a set of end
// addresses. The capture emulator emits a ManualBreakpoint packet whenever
// the program counter reaches one of these addresses. The Registry type
// tracks which intervals are open and creates a timeline event when an open
// interval is closed.
//
// Intervals are defined in a text file, one interval per line:
//
//	starts,ends[,name[,lane]]
//
// The starts and ends fields are lists of tokens separated by semicolons. A
// token is a symbol name or a hexadecimal address with no prefix. A token
// that is neither is a wildcard and stands for every symbol whose name begins
// with "mdp_label_" followed by the token. The name is the name of the
// timeline event and defaults to the entire line. If a lane is given then the
// events for the interval are placed on a lane of that name.
//
// A line with only one field is shorthand for a pair of tokens with the
// suffixes "_start" and "_end". For example, the line
//
//	frame
//
// is the same as
//
//	frame_start,frame_end
//
// Blank lines and lines beginning with // are ignored.
package intervals
