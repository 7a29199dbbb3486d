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

// Package mcpserve exposes trace conversion to AI assistants with the Model
// Context Protocol. The server communicates over stdin and stdout.
//
// Two tools are provided. The convert_trace tool converts a trace to JSON in
// the same way as the CONVERT mode of the command line. The describe_trace
// tool summarises the contents of a trace without converting it.
package mcpserve
