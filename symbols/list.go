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
	"io"
)

// List writes every address and its names to output. The preferred name for
// an address is the last name on the line.
func (tbl *Table) List(output io.Writer) {
	io.WriteString(output, fmt.Sprintf("Symbols (%d)\n", tbl.Len()))
	io.WriteString(output, "-------\n")
	io.WriteString(output, tbl.String())
}
