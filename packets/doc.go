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

// Package packets decodes the binary trace captured by an instrumented
// emulator. The trace is a fixed size header followed by a stream of packets.
//
// The header contains the format version (at offset 3), the master clock rate
// (offset 4) and the CPU clock divider (offset 8). The packet stream begins
// at offset 256.
//
// Each packet is a one byte type tag, a four byte cycle count relative to the
// current cycle offset and a four byte stack pointer. Packets that carry an
// address (subroutine enter, interrupt enter and manual breakpoint) have a
// further four byte payload. All multi-byte values are native-endian.
//
// The AdjustCycleOffset packet is never returned by Decode(). It adds its
// cycle field to the running cycle offset, which is applied to the cycle of
// every subsequent packet. This means that the Cycle field of a decoded
// Packet is absolute and monotonic over the entire trace, even though the
// counter in the traced hardware is only 32 bits wide.
//
// Decoding is all-or-nothing. A truncated packet or an unknown packet type
// causes Decode() to fail and no packets are returned. A version mismatch is
// logged as a warning and decoding continues.
package packets
