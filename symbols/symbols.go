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

package symbols

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"strconv"
	"strings"

	"github.com/mdptrace/mdptrace/curated"
	"github.com/mdptrace/mdptrace/logger"
)

// Sentinal patterns for errors created by the symbols package.
const (
	FileError      = "symbols: %v"
	TruncatedEntry = "symbols: truncated asm68k entry at offset %#x"
	UnknownType    = "symbols: unknown asm68k label type (%d) for %s"
	NoParent       = "symbols: local label %s has no parent"
	MissingSection = "symbols: AS listing has no symbols section"
	MalformedLine  = "symbols: malformed AS listing line: %q"
)

// Format of a symbols file.
type Format int

// List of valid Format values.
const (
	FormatNM Format = iota
	FormatASM68K
	FormatAS
)

func (f Format) String() string {
	switch f {
	case FormatNM:
		return "nm"
	case FormatASM68K:
		return "asm68k"
	case FormatAS:
		return "AS"
	}
	return "unknown"
}

// signatures of the symbol file formats.
var (
	asm68kMagic = []byte("MND")
	asMagic     = []byte("Segment CODE")
)

// DetectFormat returns the format of the symbols data.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, asm68kMagic) {
		return FormatASM68K
	}
	if bytes.HasPrefix(data, asMagic) {
		return FormatAS
	}
	return FormatNM
}

// Read symbols from data. The format of the data is detected automatically.
func Read(data []byte) (*Table, error) {
	return ReadFormat(data, DetectFormat(data))
}

// ReadFormat reads symbols from data in the specified format.
func ReadFormat(data []byte, f Format) (*Table, error) {
	tbl := NewTable()

	var err error

	switch f {
	case FormatASM68K:
		err = tbl.readASM68K(data)
	case FormatAS:
		err = tbl.readAS(data)
	default:
		err = tbl.readNM(data)
	}

	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "symbols", "%d symbols read from %s symbols file", tbl.Len(), f)

	return tbl, nil
}

// ReadFile reads symbols from the named file. The format of the file is
// detected automatically.
func ReadFile(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	return Read(data)
}

// ReadFileFormat reads symbols from the named file in the specified format.
func ReadFileFormat(filename string, f Format) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	return ReadFormat(data, f)
}

// layout of the asm68k symbols file.
const (
	asm68kHeaderSize = 8
	asm68kEntrySize  = 6

	asm68kGlobal = 2
	asm68kLocal  = 6
)

// each entry in an asm68k symbols file is a little-endian address, a label
// type and the length of the label. the label follows immediately.
//
// local labels follow their parent labels in the file.
func (tbl *Table) readASM68K(data []byte) error {
	i := asm68kHeaderSize
	for i < len(data) {
		if len(data)-i < asm68kEntrySize {
			return curated.Errorf(TruncatedEntry, i)
		}

		addr := binary.LittleEndian.Uint32(data[i:])
		typ := data[i+4]
		l := int(data[i+5])

		if len(data)-i-asm68kEntrySize < l {
			return curated.Errorf(TruncatedEntry, i)
		}
		label := string(data[i+asm68kEntrySize : i+asm68kEntrySize+l])

		switch typ {
		case asm68kGlobal:
		case asm68kLocal:
			parent, ok := tbl.parent(addr)
			if !ok {
				return curated.Errorf(NoParent, label)
			}
			label = parent + label
		default:
			return curated.Errorf(UnknownType, typ, label)
		}

		tbl.add(addr, label)
		i += asm68kEntrySize + l
	}

	return nil
}

// the line in an AS listing that precedes the symbol table
const asSymbolsSection = "Symbols in Segment"

// the symbol type for integer symbols in an AS listing
const asInteger = "Int"

func (tbl *Table) readAS(data []byte) error {
	_, section, ok := strings.Cut(string(data), asSymbolsSection)
	if !ok {
		return curated.Errorf(MissingSection)
	}

	scanner := bufio.NewScanner(strings.NewReader(section))

	// remainder of the section header
	scanner.Scan()

	for scanner.Scan() {
		ln := scanner.Text()
		if ln == "" {
			continue
		}

		p := strings.Fields(ln)
		if len(p) < 2 {
			return curated.Errorf(MalformedLine, ln)
		}
		if p[1] != asInteger {
			continue
		}
		if len(p) < 3 {
			return curated.Errorf(MalformedLine, ln)
		}

		addr, err := strconv.ParseUint(p[2], 16, 64)
		if err != nil {
			continue
		}

		tbl.add(uint32(addr), p[0])
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf(FileError, err)
	}

	return nil
}

// nm output is a three column table: address, type and name. lines that do
// not fit the pattern are ignored.
func (tbl *Table) readNM(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		p := strings.Fields(scanner.Text())
		if len(p) != 3 {
			continue
		}

		addr, err := strconv.ParseUint(p[0], 16, 32)
		if err != nil {
			continue
		}

		tbl.add(uint32(addr), p[2])
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf(FileError, err)
	}

	return nil
}
