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

package packets_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/google/go-cmp/cmp"

	"github.com/mdptrace/mdptrace/curated"
	"github.com/mdptrace/mdptrace/logger"
	"github.com/mdptrace/mdptrace/packets"
	"github.com/mdptrace/mdptrace/test"
)

// header returns a trace header with the supplied version, clock rate and
// divider.
func header(version uint8, clock uint32, divider uint32) []byte {
	hdr := make([]byte, packets.HeaderSize)
	hdr[3] = version
	binary.NativeEndian.PutUint32(hdr[4:], clock)
	binary.NativeEndian.PutUint32(hdr[8:], divider)
	return hdr
}

// raw returns the bytes for a single packet. a payload is appended if
// address is not nil.
func raw(kind packets.Kind, cycle uint32, sp uint32, address ...uint32) []byte {
	b := []byte{byte(kind)}
	b = binary.NativeEndian.AppendUint32(b, cycle)
	b = binary.NativeEndian.AppendUint32(b, sp)
	for _, a := range address {
		b = binary.NativeEndian.AppendUint32(b, a)
	}
	return b
}

func trace(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func TestDecodeHeader(t *testing.T) {
	c, err := packets.Decode(header(packets.Version, 53693175, 7))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.Version, uint8(packets.Version))
	test.ExpectEquality(t, c.ClockRate, 53693175.0)
	test.ExpectEquality(t, c.Divider, uint64(7))
	test.ExpectEquality(t, len(c.Packets), 0)

	_, ok := c.LastCycle()
	test.ExpectFailure(t, ok)
}

func TestTruncatedHeader(t *testing.T) {
	_, err := packets.Decode(make([]byte, 12))
	test.ExpectSuccess(t, curated.Is(err, packets.TruncatedHeader))
}

func TestVersionMismatch(t *testing.T) {
	logger.Clear()

	c, err := packets.Decode(trace(header(2, 1000000, 7), raw(packets.VerticalBlank, 5, 0)))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(c.Packets), 1)

	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "format version 2"))
}

func TestDecodePackets(t *testing.T) {
	data := trace(
		header(packets.Version, 1000000, 7),
		raw(packets.SubroutineEnter, 10, 0x2000, 0x100),
		raw(packets.InterruptEnter, 12, 0x1ff8, 0x200),
		raw(packets.InterruptExit, 20, 0x1ff8),
		raw(packets.HorizontalBlank, 21, 0x1ffc),
		raw(packets.VerticalBlank, 22, 0x1ffc),
		raw(packets.ManualBreakpoint, 30, 0x1ffc, 0x400),
		raw(packets.SubroutineExit, 50, 0x1ffc),
	)

	c, err := packets.Decode(data)
	test.DemandSuccess(t, err)

	expected := []packets.Packet{
		{Kind: packets.SubroutineEnter, Cycle: 10, StackPointer: 0x2000, Address: 0x100},
		{Kind: packets.InterruptEnter, Cycle: 12, StackPointer: 0x1ff8, Address: 0x200},
		{Kind: packets.InterruptExit, Cycle: 20, StackPointer: 0x1ff8},
		{Kind: packets.HorizontalBlank, Cycle: 21, StackPointer: 0x1ffc},
		{Kind: packets.VerticalBlank, Cycle: 22, StackPointer: 0x1ffc},
		{Kind: packets.ManualBreakpoint, Cycle: 30, StackPointer: 0x1ffc, Address: 0x400},
		{Kind: packets.SubroutineExit, Cycle: 50, StackPointer: 0x1ffc},
	}

	if diff := cmp.Diff(expected, c.Packets); diff != "" {
		t.Errorf("decoded packets mismatch (-want +got):\n%s", diff)
	}

	last, ok := c.LastCycle()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, last, uint64(50))
}

func TestAdjustCycleOffsetLayout(t *testing.T) {
	data := trace(
		header(packets.Version, 1000000, 7),
		raw(packets.AdjustCycleOffset, 0x10, 0),
		raw(packets.SubroutineEnter, 5, 0x2000, 0x100),
	)

	// the packet following the adjustment begins straight after the stack
	// pointer field
	c, err := packets.Decode(data)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(c.Packets), 1)
	test.ExpectEquality(t, c.Packets[0].Kind, packets.SubroutineEnter)
	test.ExpectEquality(t, c.Packets[0].Cycle, uint64(0x15))
	test.ExpectEquality(t, c.Packets[0].Address, uint32(0x100))
}

func TestAdjustCycleOffset(t *testing.T) {
	data := trace(
		header(packets.Version, 1000000, 7),
		raw(packets.VerticalBlank, 0xfffffff0, 0),
		raw(packets.AdjustCycleOffset, 0xffffffff, 0),
		raw(packets.VerticalBlank, 0x20, 0),
		raw(packets.AdjustCycleOffset, 0x10, 0),
		raw(packets.VerticalBlank, 0x20, 0),
	)

	c, err := packets.Decode(data)
	test.DemandSuccess(t, err)

	// adjustment packets are never emitted
	test.DemandEquality(t, len(c.Packets), 3)
	test.ExpectEquality(t, c.Adjustments, 2)
	for _, p := range c.Packets {
		test.ExpectInequality(t, p.Kind, packets.AdjustCycleOffset)
	}

	// but the cumulative offset is applied to subsequent packets
	test.ExpectEquality(t, c.Packets[0].Cycle, uint64(0xfffffff0))
	test.ExpectEquality(t, c.Packets[1].Cycle, uint64(0xffffffff)+0x20)
	test.ExpectEquality(t, c.Packets[2].Cycle, uint64(0xffffffff)+0x10+0x20)
}

func TestTruncatedPacket(t *testing.T) {
	full := trace(
		header(packets.Version, 1000000, 7),
		raw(packets.SubroutineEnter, 10, 0x2000, 0x100),
	)

	// every possible truncation of the last packet is an error
	for i := packets.HeaderSize + 1; i < len(full); i++ {
		_, err := packets.Decode(full[:i])
		test.ExpectSuccess(t, curated.Is(err, packets.TruncatedPacket), i)
	}

	// decoding ends exactly on the boundary of the last packet
	c, err := packets.Decode(full)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(c.Packets), 1)
}

func TestUnknownPacket(t *testing.T) {
	data := trace(
		header(packets.Version, 1000000, 7),
		raw(packets.VerticalBlank, 10, 0),
		raw(packets.Kind(8), 20, 0),
	)

	c, err := packets.Decode(data)
	test.ExpectSuccess(t, curated.Is(err, packets.UnknownPacket))
	test.ExpectEquality(t, c == nil, true)
	test.ExpectSuccess(t, strings.Contains(err.Error(), "offset 0x109"))
}

func TestEncodeRoundTrip(t *testing.T) {
	c := &packets.Capture{
		Version:   packets.Version,
		ClockRate: 7670454,
		Divider:   7,
		Packets: []packets.Packet{
			{Kind: packets.SubroutineEnter, Cycle: 100, StackPointer: 0xfffe00, Address: 0x200},
			{Kind: packets.ManualBreakpoint, Cycle: math.MaxUint32 + 5000, StackPointer: 0xfffdfc, Address: 0x210},
			{Kind: packets.SubroutineExit, Cycle: 3 * math.MaxUint32, StackPointer: 0xfffdfc},
		},
	}

	w := &bytes.Buffer{}
	test.DemandSuccess(t, packets.Encode(w, c))

	d, err := packets.Decode(w.Bytes())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.ClockRate, c.ClockRate)
	test.ExpectEquality(t, d.Divider, c.Divider)
	test.ExpectSuccess(t, d.Adjustments > 0)

	if diff := cmp.Diff(c.Packets, d.Packets); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRejectsAdjustment(t *testing.T) {
	c := &packets.Capture{
		Packets: []packets.Packet{{Kind: packets.AdjustCycleOffset}},
	}
	err := packets.Encode(&bytes.Buffer{}, c)
	test.ExpectSuccess(t, curated.Is(err, packets.NotEncodable))
}

func TestLoadSnappy(t *testing.T) {
	data := trace(
		header(packets.Version, 1000000, 7),
		raw(packets.SubroutineEnter, 10, 0x2000, 0x100),
		raw(packets.SubroutineExit, 50, 0x2000),
	)

	compressed := &bytes.Buffer{}
	sw := snappy.NewBufferedWriter(compressed)
	_, err := sw.Write(data)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, sw.Close())

	c, err := packets.Load(compressed)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(c.Packets), 2)

	// uncompressed data loads too
	c, err = packets.Load(bytes.NewReader(data))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(c.Packets), 2)
}

func TestSummary(t *testing.T) {
	data := trace(
		header(packets.Version, 1000, 7),
		raw(packets.SubroutineEnter, 10, 0x2000, 0x100),
		raw(packets.AdjustCycleOffset, 1000, 0),
		raw(packets.VerticalBlank, 0, 0x2000),
		raw(packets.SubroutineExit, 10, 0x2000),
	)

	c, err := packets.Decode(data)
	test.DemandSuccess(t, err)

	s := c.Summary()
	test.ExpectEquality(t, s.Packets, 3)
	test.ExpectEquality(t, s.Counts[packets.SubroutineEnter], 1)
	test.ExpectEquality(t, s.Counts[packets.AdjustCycleOffset], 1)
	test.ExpectEquality(t, s.FirstCycle, uint64(10))
	test.ExpectEquality(t, s.LastCycle, uint64(1010))
	test.ExpectEquality(t, s.Seconds(), 1.0)
	test.ExpectSuccess(t, strings.Contains(s.String(), "packets: 3"))
}
