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

// Package logger is the central logging facility for mdptrace. Entries are
// made up of a tag and a detail string. The tag identifies the part of the
// program making the entry, for example "packets" or "intervals".
//
// Entries that are identical to the previous entry are not duplicated, a
// repeat count is incremented instead. The number of entries kept is bounded.
//
// Every call to Log() or Logf() requires a Permission. The Allow permission
// always allows logging. Other implementations can be used to silence
// logging in particular contexts.
//
// Entries can be echoed to an io.Writer as they are made with SetEcho(). The
// EchoWriter() function prepares a writer that colorizes the output if the
// writer is a terminal.
package logger
