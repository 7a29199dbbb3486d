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

package test

import "bytes"

// CompareWriter is an io.Writer that keeps everything written to it so that
// it can be compared with the expected output.
type CompareWriter struct {
	buf bytes.Buffer
}

// Write implements the io.Writer interface.
func (cw *CompareWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// Clear the captured output.
func (cw *CompareWriter) Clear() {
	cw.buf.Reset()
}

// Compare returns true if the captured output is the same as s.
func (cw *CompareWriter) Compare(s string) bool {
	return cw.buf.String() == s
}

func (cw *CompareWriter) String() string {
	return cw.buf.String()
}
