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

// Package chrometrace writes a timeline in the JSON trace event format
// understood by chrome://tracing, Perfetto and Speedscope.
//
// The file starts with metadata events that name the process and each lane
// of the timeline. Lanes appear as threads in the viewer. Timestamps and
// durations are in microseconds, converted from cycles with the clock rate
// recorded in the trace.
package chrometrace
