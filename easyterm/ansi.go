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

package easyterm

import (
	"fmt"
	"strings"
)

// ansi color.
const (
	colRed     = 1
	colGreen   = 2
	colYellow  = 3
	colBlue    = 4
	colMagenta = 5
	colCyan    = 6
	colWhite   = 7
)

// ansi target.
const (
	targetPen       = 3
	targetBrightPen = 9
)

// ansi attribute.
const (
	attrBold = 1
)

// Pens is the table of colors to be used for text.
var Pens map[string]string

// NormalPen is the CSI sequence for regular text.
var NormalPen = "\033[0m"

// BoldPen is the CSI sequence for bold text in the default color.
var BoldPen = fmt.Sprintf("\033[%dm", attrBold)

func init() {
	Pens = map[string]string{
		"red":     colorBuild(colRed, true),
		"green":   colorBuild(colGreen, true),
		"yellow":  colorBuild(colYellow, true),
		"blue":    colorBuild(colBlue, true),
		"magenta": colorBuild(colMagenta, true),
		"cyan":    colorBuild(colCyan, true),
		"white":   colorBuild(colWhite, true),
	}
}

// colorBuild creates the CSI sequence for a pen color.
func colorBuild(col int, bright bool) string {
	s := strings.Builder{}
	s.WriteString("\033[")
	if bright {
		s.WriteString(fmt.Sprintf("%d%d", targetBrightPen, col))
	} else {
		s.WriteString(fmt.Sprintf("%d%d", targetPen, col))
	}
	s.WriteString("m")
	return s.String()
}
