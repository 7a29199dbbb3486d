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

// Package convert ties together the packages that read a trace, reconstruct
// the timeline and write the timeline as JSON. It is used by both the command
// line and the MCP server.
package convert
