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

package symbols_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mdptrace/mdptrace/curated"
	"github.com/mdptrace/mdptrace/symbols"
	"github.com/mdptrace/mdptrace/test"
)

// asm68k builds the binary symbol file format written by asm68k.
type asm68k struct {
	data []byte
}

func newASM68K() *asm68k {
	return &asm68k{data: []byte("MND\x01\x00\x00\x00\x00")}
}

func (a *asm68k) entry(addr uint32, typ byte, label string) *asm68k {
	a.data = binary.LittleEndian.AppendUint32(a.data, addr)
	a.data = append(a.data, typ, byte(len(label)))
	a.data = append(a.data, label...)
	return a
}

func TestDetectFormat(t *testing.T) {
	test.ExpectEquality(t, symbols.DetectFormat([]byte("MND\x00")), symbols.FormatASM68K)
	test.ExpectEquality(t, symbols.DetectFormat([]byte("Segment CODE\n")), symbols.FormatAS)
	test.ExpectEquality(t, symbols.DetectFormat([]byte("00000200 T main\n")), symbols.FormatNM)
	test.ExpectEquality(t, symbols.DetectFormat([]byte("MN")), symbols.FormatNM)
	test.ExpectEquality(t, symbols.DetectFormat(nil), symbols.FormatNM)
}

func TestASM68K(t *testing.T) {
	data := newASM68K().
		entry(0x200, 2, "Main").
		entry(0x300, 2, "Draw").
		entry(0x300, 2, "DrawSprites").
		entry(0x210, 6, ".loop").
		entry(0x340, 6, "@next").
		data

	tbl, err := symbols.Read(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tbl.Len(), 5)

	l, ok := tbl.Label(0x200)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, l, "Main")

	// the last name for an address is preferred
	l, ok = tbl.Label(0x300)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, l, "DrawSprites")
	if diff := cmp.Diff([]string{"Draw", "DrawSprites"}, tbl.Labels(0x300)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	// local labels are prefixed with the preferred name of the parent
	l, _ = tbl.Label(0x210)
	test.ExpectEquality(t, l, "Main.loop")
	l, _ = tbl.Label(0x340)
	test.ExpectEquality(t, l, "DrawSprites@next")

	addr, ok := tbl.Address("Main.loop")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0x210))
}

func TestASM68KLocalWithoutParent(t *testing.T) {
	data := newASM68K().
		entry(0x200, 2, "Main").
		entry(0x100, 6, ".early").
		data

	_, err := symbols.Read(data)
	test.ExpectSuccess(t, curated.Is(err, symbols.NoParent))

	// a local label at the same address as a global has no parent. the
	// parent must be at a strictly lower address
	data = newASM68K().
		entry(0x200, 2, "Main").
		entry(0x200, 6, ".same").
		data

	_, err = symbols.Read(data)
	test.ExpectSuccess(t, curated.Is(err, symbols.NoParent))
}

func TestASM68KErrors(t *testing.T) {
	data := newASM68K().entry(0x200, 3, "Main").data
	_, err := symbols.Read(data)
	test.ExpectSuccess(t, curated.Is(err, symbols.UnknownType))

	data = newASM68K().entry(0x200, 2, "Main").data
	for i := 9; i < len(data); i++ {
		_, err = symbols.Read(data[:i])
		test.ExpectSuccess(t, curated.Is(err, symbols.TruncatedEntry), i)
	}

	// header only
	tbl, err := symbols.Read(data[:8])
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tbl.Len(), 0)
}

const asListing = `Segment CODE
 some other listing text

Symbols in Segment NOTHING
 - header -

VBlank                          Int    000400   |
HBlank                          Int    000480   |
Counter                         Int    FF0010   |
Title                           String "hello"  |
Huge                            Int    1000000A0 |
Bad                             Int    xyz       |
`

func TestAS(t *testing.T) {
	tbl, err := symbols.Read([]byte(asListing))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tbl.Len(), 4)

	addr, ok := tbl.Address("VBlank")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0x400))

	addr, ok = tbl.Address("Counter")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0xff0010))

	// addresses are truncated to 32 bits
	addr, ok = tbl.Address("Huge")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0xa0))

	_, ok = tbl.Address("Title")
	test.ExpectFailure(t, ok)
	_, ok = tbl.Address("Bad")
	test.ExpectFailure(t, ok)
}

func TestASErrors(t *testing.T) {
	_, err := symbols.Read([]byte("Segment CODE\nno symbols\n"))
	test.ExpectSuccess(t, curated.Is(err, symbols.MissingSection))

	_, err = symbols.Read([]byte("Segment CODE\nSymbols in Segment\nheader\nLonely\n"))
	test.ExpectSuccess(t, curated.Is(err, symbols.MalformedLine))

	_, err = symbols.Read([]byte("Segment CODE\nSymbols in Segment\nheader\nLonely Int\n"))
	test.ExpectSuccess(t, curated.Is(err, symbols.MalformedLine))
}

func TestLongLine(t *testing.T) {
	long := strings.Repeat("x", 100000)

	_, err := symbols.ReadFormat([]byte("00000200 T main\n"+long+"\n"), symbols.FormatNM)
	test.ExpectSuccess(t, curated.Is(err, symbols.FileError))

	_, err = symbols.ReadFormat([]byte("Symbols in Segment\nheader\n"+long+"\n"), symbols.FormatAS)
	test.ExpectSuccess(t, curated.Is(err, symbols.FileError))
}

const nmOutput = `00000200 T main
00000300 t draw
00000300 T draw_alias
         U undefined
00ff0000 B buffer
zzzzzzzz T notanaddress
00000400 T too many fields
`

func TestNM(t *testing.T) {
	tbl, err := symbols.Read([]byte(nmOutput))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tbl.Len(), 4)

	l, ok := tbl.Label(0x300)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, l, "draw_alias")

	addr, ok := tbl.Address("buffer")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0xff0000))

	_, ok = tbl.Label(0x400)
	test.ExpectFailure(t, ok)

	if diff := cmp.Diff([]uint32{0x200, 0x300, 0xff0000}, tbl.Addresses()); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}
}

func TestNameReassigned(t *testing.T) {
	tbl := symbols.NewTable()
	tbl.Add(0x100, "loop")
	tbl.Add(0x200, "loop")

	// the last address for a name wins
	addr, ok := tbl.Address("loop")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0x200))
	test.ExpectEquality(t, tbl.Len(), 1)

	// but both addresses still carry the name
	l, ok := tbl.Label(0x100)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, l, "loop")
}

func TestWithPrefix(t *testing.T) {
	tbl := symbols.NewTable()
	tbl.Add(0x300, "mdp_label_frame_b")
	tbl.Add(0x100, "mdp_label_frame_a")
	tbl.Add(0x200, "mdp_label_other")
	tbl.Add(0x400, "frame")

	if diff := cmp.Diff([]uint32{0x100, 0x300}, tbl.WithPrefix("mdp_label_frame")); diff != "" {
		t.Errorf("prefix mismatch (-want +got):\n%s", diff)
	}

	test.ExpectEquality(t, len(tbl.WithPrefix("mdp_label_none")), 0)

	// the name index is rebuilt after new names are added
	tbl.Add(0x050, "mdp_label_frame_0")
	if diff := cmp.Diff([]uint32{0x050, 0x100, 0x300}, tbl.WithPrefix("mdp_label_frame")); diff != "" {
		t.Errorf("prefix mismatch after add (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"frame", "mdp_label_frame_0", "mdp_label_frame_a", "mdp_label_frame_b"}, tbl.Search("FRAME")); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestList(t *testing.T) {
	tbl := symbols.NewTable()
	tbl.Add(0x200, "draw")
	tbl.Add(0x100, "main")
	tbl.Add(0x200, "draw_alias")

	w := &strings.Builder{}
	tbl.List(w)

	expected := "Symbols (3)\n-------\n0x000100 -> main\n0x000200 -> draw, draw_alias\n"
	test.ExpectEquality(t, w.String(), expected)
}

func TestReadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "program.nm")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(nmOutput), 0o644))

	tbl, err := symbols.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tbl.Len(), 4)

	_, err = symbols.ReadFile(filepath.Join(t.TempDir(), "missing"))
	test.ExpectSuccess(t, curated.Is(err, symbols.FileError))
}

func TestReadFormat(t *testing.T) {
	// an AS listing read as nm output finds nothing
	tbl, err := symbols.ReadFormat([]byte(asListing), symbols.FormatNM)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tbl.Len(), 0)

	// nm output read as an AS listing has no symbols section
	_, err = symbols.ReadFormat([]byte(nmOutput), symbols.FormatAS)
	test.ExpectSuccess(t, curated.Is(err, symbols.MissingSection))

	test.ExpectEquality(t, symbols.FormatASM68K.String(), "asm68k")
}
