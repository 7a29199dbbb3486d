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
	"encoding/binary"

	"github.com/mdptrace/mdptrace/curated"
	"github.com/mdptrace/mdptrace/logger"
)

// Version is the trace format version understood by the decoder.
const Version = 1

// layout of the trace header.
const (
	versionOffset   = 3
	clockRateOffset = 4
	dividerOffset   = 8

	// offset of the first packet in the trace
	HeaderSize = 256
)

// the size of a packet without a payload: type tag, cycle and stack pointer
const fixedSize = 9

// the size of the address payload
const addressSize = 4

// Sentinal patterns for errors created by the decoder.
const (
	TruncatedHeader = "packets: truncated header (%d bytes)"
	TruncatedPacket = "packets: truncated %s packet at offset %#x"
	UnknownPacket   = "packets: unknown packet type (%d) at offset %#x"
)

// Capture is the result of decoding a trace.
type Capture struct {
	// format version found in the header
	Version uint8

	// master clock rate in Hz. cycles are divided by this value to convert
	// them into seconds
	ClockRate float64

	// auxiliary divider. the ratio of the master clock to the CPU clock
	Divider uint64

	// decoded packets in the order they appear in the trace
	Packets []Packet

	// number of AdjustCycleOffset packets consumed during decoding
	Adjustments int
}

// Decode the binary trace. The data must contain the entire trace,
// including the header.
func Decode(data []byte) (*Capture, error) {
	if len(data) < HeaderSize {
		return nil, curated.Errorf(TruncatedHeader, len(data))
	}

	c := &Capture{
		Version:   data[versionOffset],
		ClockRate: float64(binary.NativeEndian.Uint32(data[clockRateOffset:])),
		Divider:   uint64(binary.NativeEndian.Uint32(data[dividerOffset:])),
	}

	if c.Version != Version {
		logger.Logf(logger.Allow, "packets", "warning: trace is format version %d but mdptrace expects version %d", c.Version, Version)
	}

	// a rough estimate of the number of packets. most packets in a typical
	// trace carry an address
	c.Packets = make([]Packet, 0, (len(data)-HeaderSize)/(fixedSize+addressSize))

	var cycleOffset uint64

	i := HeaderSize
	for i < len(data) {
		kind := Kind(data[i])
		if kind >= NumKinds {
			return nil, curated.Errorf(UnknownPacket, data[i], i)
		}

		sz := fixedSize
		if kind.HasAddress() {
			sz += addressSize
		}
		if len(data)-i < sz {
			return nil, curated.Errorf(TruncatedPacket, kind, i)
		}

		cycle := binary.NativeEndian.Uint32(data[i+1:])
		sp := binary.NativeEndian.Uint32(data[i+5:])

		if kind == AdjustCycleOffset {
			// the delta is carried in the cycle field. there is no address
			// payload so the packet is always fixedSize bytes long
			cycleOffset += uint64(cycle)
			c.Adjustments++
			i += sz
			continue
		}

		p := Packet{
			Kind:         kind,
			Cycle:        cycleOffset + uint64(cycle),
			StackPointer: sp,
		}
		if kind.HasAddress() {
			p.Address = binary.NativeEndian.Uint32(data[i+fixedSize:])
		}

		c.Packets = append(c.Packets, p)
		i += sz
	}

	return c, nil
}

// LastCycle returns the cycle of the last packet in the capture. Returns
// false if there are no packets.
func (c *Capture) LastCycle() (uint64, bool) {
	if len(c.Packets) == 0 {
		return 0, false
	}
	return c.Packets[len(c.Packets)-1].Cycle, true
}
