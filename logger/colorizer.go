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

package logger

import (
	"io"
	"strings"

	"github.com/mdptrace/mdptrace/easyterm"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// entry is printed in a bold pen and entries tagged as warnings are printed
// in red.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	s := string(p)

	tag, detail, ok := strings.Cut(s, ": ")
	if !ok {
		return c.out.Write(p)
	}

	pen := easyterm.BoldPen
	if isWarning(detail) {
		pen = easyterm.Pens["red"]
	}

	var b strings.Builder
	b.WriteString(pen)
	b.WriteString(tag)
	b.WriteString(easyterm.NormalPen)
	b.WriteString(": ")
	b.WriteString(detail)

	_, err = c.out.Write([]byte(b.String()))
	if err != nil {
		return 0, err
	}

	return len(p), nil
}

// EchoWriter returns a writer suitable for SetEcho(). If the output is a
// terminal the writer will colorize the log entries.
func EchoWriter(output io.Writer) io.Writer {
	if easyterm.IsTerminal(output) {
		return NewColorizer(output)
	}
	return output
}

func isWarning(detail string) bool {
	return strings.Contains(strings.ToLower(detail), "warning")
}

// WarningFilter passes only those log entries that are warnings to the
// underlying writer. Other entries are discarded. The filter expects each
// call to Write() to be a single entry, which is how the logger echoes.
type WarningFilter struct {
	out io.Writer
}

// NewWarningFilter is the preferred method of initialisation for the
// WarningFilter type.
func NewWarningFilter(out io.Writer) WarningFilter {
	return WarningFilter{out: out}
}

// Write implements the io.Writer interface.
func (w WarningFilter) Write(p []byte) (n int, err error) {
	_, detail, ok := strings.Cut(string(p), ": ")
	if !ok || !isWarning(detail) {
		return len(p), nil
	}
	return w.out.Write(p)
}
