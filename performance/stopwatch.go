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

package performance

import "time"

// Stopwatch measures the time taken by one stage of a conversion.
type Stopwatch struct {
	start time.Time
}

// NewStopwatch is the preferred method of initialisation for the Stopwatch
// type. The stopwatch starts immediately.
func NewStopwatch() Stopwatch {
	return Stopwatch{start: time.Now()}
}

// Milliseconds returns the time since the stopwatch was started, in
// milliseconds with microsecond precision.
func (s Stopwatch) Milliseconds() float64 {
	return float64(time.Since(s.start).Microseconds()) / 1000.0
}
