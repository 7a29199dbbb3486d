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

package intervals

import (
	"os"
	"strconv"
	"strings"

	"github.com/mdptrace/mdptrace/curated"
	"github.com/mdptrace/mdptrace/logger"
	"github.com/mdptrace/mdptrace/timeline"
)

// Sentinal patterns for errors created by the parser.
const (
	FileError       = "intervals: %v"
	UnresolvedToken = "intervals: line %d: %s not found in the symbol file"
	EmptyToken      = "intervals: line %d: empty address"
)

// WildcardPrefix is prepended to a token that is not a symbol name or an
// address. Every symbol that begins with the result is used.
const WildcardPrefix = "mdp_label_"

// suffixes used to expand a line with a single field
const (
	startSuffix = "_start"
	endSuffix   = "_end"
)

// Symbols is used to resolve the tokens in an interval definition.
type Symbols interface {
	Address(name string) (uint32, bool)
	WithPrefix(prefix string) []uint32
}

// builder of a Registry.
type builder struct {
	reg  *Registry
	syms Symbols

	// lane ids by name. the next lane id to be allocated is nextLane
	laneIDs  map[string]int
	nextLane int
}

// resolve token to one or more addresses.
func (b *builder) resolve(lineNum int, tok string) ([]uint32, error) {
	if tok == "" {
		return nil, curated.Errorf(EmptyToken, lineNum)
	}

	if addr, ok := b.syms.Address(tok); ok {
		return []uint32{addr}, nil
	}

	if addr, err := strconv.ParseUint(tok, 16, 32); err == nil {
		return []uint32{uint32(addr)}, nil
	}

	addrs := b.syms.WithPrefix(WildcardPrefix + tok)
	if len(addrs) == 0 {
		return nil, curated.Errorf(UnresolvedToken, lineNum, tok)
	}

	return addrs, nil
}

// add every address the tokens resolve to the index.
func (b *builder) index(index map[uint32][]int, lineNum int, tokens []string, def int) error {
	for _, tok := range tokens {
		addrs, err := b.resolve(lineNum, strings.TrimSpace(tok))
		if err != nil {
			return err
		}
		for _, a := range addrs {
			index[a] = append(index[a], def)
		}
	}
	return nil
}

// lane returns the id of the named lane, allocating a new id if the name has
// not been seen before.
func (b *builder) lane(name string) int {
	if id, ok := b.laneIDs[name]; ok {
		return id
	}

	id := b.nextLane
	b.nextLane++
	b.laneIDs[name] = id
	b.reg.lanes = append(b.reg.lanes, timeline.Lane{ID: id, Name: name})

	return id
}

func (b *builder) line(lineNum int, ln string) error {
	fields := strings.Split(ln, ",")

	def := len(b.reg.defs)

	var starts, ends []string
	if len(fields) == 1 {
		tok := strings.TrimSpace(fields[0])
		starts = []string{tok + startSuffix}
		ends = []string{tok + endSuffix}
	} else {
		starts = strings.Split(strings.TrimSpace(fields[0]), ";")
		ends = strings.Split(strings.TrimSpace(fields[1]), ";")
	}

	err := b.index(b.reg.starts, lineNum, starts, def)
	if err != nil {
		return err
	}
	err = b.index(b.reg.ends, lineNum, ends, def)
	if err != nil {
		return err
	}

	d := definition{
		name: ln,
		lane: timeline.MainLane,
	}
	if len(fields) >= 3 {
		d.name = strings.TrimSpace(fields[2])
	}
	if len(fields) >= 4 {
		d.lane = b.lane(strings.TrimSpace(fields[3]))
	}

	b.reg.defs = append(b.reg.defs, d)

	return nil
}

// Parse interval definitions. Symbol names in the definitions are resolved
// with syms.
func Parse(text []byte, syms Symbols) (*Registry, error) {
	b := &builder{
		reg:      newRegistry(),
		syms:     syms,
		laneIDs:  make(map[string]int),
		nextLane: timeline.FirstCustomLane,
	}

	for i, ln := range strings.Split(string(text), "\n") {
		ln = strings.TrimSuffix(ln, "\r")

		if strings.HasPrefix(strings.TrimSpace(ln), "//") {
			continue
		}
		if strings.TrimSpace(strings.Split(ln, ",")[0]) == "" {
			continue
		}

		err := b.line(i+1, ln)
		if err != nil {
			return nil, err
		}
	}

	logger.Logf(logger.Allow, "intervals", "%d intervals on %d custom lanes", len(b.reg.defs), len(b.reg.lanes))

	return b.reg, nil
}

// ParseFile parses the interval definitions in the named file.
func ParseFile(filename string, syms Symbols) (*Registry, error) {
	text, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	return Parse(text, syms)
}
