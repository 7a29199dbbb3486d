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
	"io"
	"math"

	"github.com/mdptrace/mdptrace/curated"
)

// Sentinal patterns for errors created by the encoder.
const (
	EncodeError  = "packets: encode: %v"
	CycleReverse = "packets: encode: cycle of packet %d (%d) is earlier than the cycle offset (%d)"
	NotEncodable = "packets: encode: packet %d is a %s packet"
)

// Encode writes the capture in the binary trace format. It is the inverse of
// Decode().
//
// The cycle field of a packet is only 32 bits wide. An AdjustCycleOffset
// packet is inserted whenever the cycle of the next packet cannot be
// expressed relative to the current cycle offset.
func Encode(w io.Writer, c *Capture) error {
	hdr := make([]byte, HeaderSize)
	copy(hdr, "MDP")
	hdr[versionOffset] = c.Version
	binary.NativeEndian.PutUint32(hdr[clockRateOffset:], uint32(c.ClockRate))
	binary.NativeEndian.PutUint32(hdr[dividerOffset:], uint32(c.Divider))

	_, err := w.Write(hdr)
	if err != nil {
		return curated.Errorf(EncodeError, err)
	}

	var offset uint64
	var buf [fixedSize + addressSize]byte

	for i, p := range c.Packets {
		if p.Kind == AdjustCycleOffset || p.Kind >= NumKinds {
			return curated.Errorf(NotEncodable, i, p.Kind)
		}
		if p.Cycle < offset {
			return curated.Errorf(CycleReverse, i, p.Cycle, offset)
		}

		for p.Cycle-offset > math.MaxUint32 {
			const delta = math.MaxUint32
			buf[0] = byte(AdjustCycleOffset)
			binary.NativeEndian.PutUint32(buf[1:], uint32(delta))
			binary.NativeEndian.PutUint32(buf[5:], p.StackPointer)
			_, err = w.Write(buf[:fixedSize])
			if err != nil {
				return curated.Errorf(EncodeError, err)
			}
			offset += delta
		}

		sz := fixedSize
		buf[0] = byte(p.Kind)
		binary.NativeEndian.PutUint32(buf[1:], uint32(p.Cycle-offset))
		binary.NativeEndian.PutUint32(buf[5:], p.StackPointer)
		if p.Kind.HasAddress() {
			binary.NativeEndian.PutUint32(buf[fixedSize:], p.Address)
			sz += addressSize
		}

		_, err = w.Write(buf[:sz])
		if err != nil {
			return curated.Errorf(EncodeError, err)
		}
	}

	return nil
}
