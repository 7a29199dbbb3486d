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
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// Table maps addresses to names and names to addresses.
type Table struct {
	crit sync.Mutex

	// every name given to an address in the order they were added
	byAddr map[uint32][]string

	// the address of every name. if a name is added more than once then
	// the most recent address is used
	byName map[string]uint32

	// sorted list of addresses in byAddr
	addrs []uint32

	// sorted list of names in byName. the list is rebuilt on demand
	names      []string
	namesDirty bool
}

// NewTable is the preferred method of initialisation for the Table type.
func NewTable() *Table {
	return &Table{
		byAddr: make(map[uint32][]string),
		byName: make(map[string]uint32),
	}
}

// Add a name for the address. The name becomes the preferred label for the
// address.
func (tbl *Table) Add(addr uint32, name string) {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()
	tbl.add(addr, name)
}

func (tbl *Table) add(addr uint32, name string) {
	if _, ok := tbl.byAddr[addr]; !ok {
		i, _ := slices.BinarySearch(tbl.addrs, addr)
		tbl.addrs = slices.Insert(tbl.addrs, i, addr)
	}
	tbl.byAddr[addr] = append(tbl.byAddr[addr], name)

	if _, ok := tbl.byName[name]; !ok {
		tbl.namesDirty = true
	}
	tbl.byName[name] = addr
}

// parent returns the preferred label of the nearest address strictly lower
// than addr.
func (tbl *Table) parent(addr uint32) (string, bool) {
	i, _ := slices.BinarySearch(tbl.addrs, addr)
	if i == 0 {
		return "", false
	}
	l := tbl.byAddr[tbl.addrs[i-1]]
	return l[len(l)-1], true
}

// Label returns the preferred name for the address.
func (tbl *Table) Label(addr uint32) (string, bool) {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	l, ok := tbl.byAddr[addr]
	if !ok {
		return "", false
	}
	return l[len(l)-1], true
}

// Labels returns every name for the address in the order they were added.
func (tbl *Table) Labels(addr uint32) []string {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()
	return slices.Clone(tbl.byAddr[addr])
}

// Address returns the address of the named symbol.
func (tbl *Table) Address(name string) (uint32, bool) {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()
	addr, ok := tbl.byName[name]
	return addr, ok
}

// Len returns the number of distinct names in the table.
func (tbl *Table) Len() int {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()
	return len(tbl.byName)
}

// Addresses returns every address in the table in ascending order.
func (tbl *Table) Addresses() []uint32 {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()
	return slices.Clone(tbl.addrs)
}

func (tbl *Table) String() string {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	s := strings.Builder{}
	for _, addr := range tbl.addrs {
		s.WriteString(fmt.Sprintf("%#08x -> %s\n", addr, strings.Join(tbl.byAddr[addr], ", ")))
	}
	return s.String()
}
