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
	"strings"

	"golang.org/x/exp/slices"
)

// sortedNames must be called with the critical section locked.
func (tbl *Table) sortedNames() []string {
	if tbl.namesDirty || tbl.names == nil {
		tbl.names = tbl.names[:0]
		for n := range tbl.byName {
			tbl.names = append(tbl.names, n)
		}
		slices.Sort(tbl.names)
		tbl.namesDirty = false
	}
	return tbl.names
}

// WithPrefix returns the address of every name that begins with prefix. The
// addresses are ordered by name.
func (tbl *Table) WithPrefix(prefix string) []uint32 {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	names := tbl.sortedNames()

	var addrs []uint32
	i, _ := slices.BinarySearch(names, prefix)
	for ; i < len(names) && strings.HasPrefix(names[i], prefix); i++ {
		addrs = append(addrs, tbl.byName[names[i]])
	}
	return addrs
}

// Search returns the names that contain the search string. Matching is case
// insensitive. The names are returned in sorted order.
func (tbl *Table) Search(s string) []string {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	s = strings.ToUpper(s)

	var found []string
	for _, n := range tbl.sortedNames() {
		if strings.Contains(strings.ToUpper(n), s) {
			found = append(found, n)
		}
	}
	return found
}
