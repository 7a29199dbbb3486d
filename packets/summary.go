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

import (
	"fmt"
	"io"
	"strings"
)

// Summary of a decoded capture.
type Summary struct {
	Version     uint8
	ClockRate   float64
	Divider     uint64
	Packets     int
	Adjustments int
	Counts      [NumKinds]int

	FirstCycle uint64
	LastCycle  uint64
}

// Summary counts the packets of each kind in the capture.
func (c *Capture) Summary() Summary {
	s := Summary{
		Version:     c.Version,
		ClockRate:   c.ClockRate,
		Divider:     c.Divider,
		Packets:     len(c.Packets),
		Adjustments: c.Adjustments,
	}
	s.Counts[AdjustCycleOffset] = c.Adjustments

	for _, p := range c.Packets {
		s.Counts[p.Kind]++
	}

	if len(c.Packets) > 0 {
		s.FirstCycle = c.Packets[0].Cycle
		s.LastCycle = c.Packets[len(c.Packets)-1].Cycle
	}

	return s
}

// Seconds returns the length of the capture in seconds.
func (s Summary) Seconds() float64 {
	if s.ClockRate <= 0 {
		return 0
	}
	return float64(s.LastCycle-s.FirstCycle) / s.ClockRate
}

func (s Summary) String() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("version: %d\n", s.Version))
	b.WriteString(fmt.Sprintf("clock rate: %.0f Hz\n", s.ClockRate))
	b.WriteString(fmt.Sprintf("divider: %d\n", s.Divider))
	b.WriteString(fmt.Sprintf("packets: %d\n", s.Packets))
	b.WriteString(fmt.Sprintf("cycles: %d to %d (%.6f seconds)\n", s.FirstCycle, s.LastCycle, s.Seconds()))
	for k := Kind(0); k < NumKinds; k++ {
		b.WriteString(fmt.Sprintf("  %-18s %d\n", k, s.Counts[k]))
	}
	return b.String()
}

// Write the summary to io.Writer.
func (s Summary) Write(w io.Writer) {
	io.WriteString(w, s.String())
}
