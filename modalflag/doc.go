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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At it's simplest it can be used as a replacement for the flag package, with
// some differences. Whereas, with flag.FlagSet you call Parse() with the array
// of strings as the only argument, with modalflag you first NewArgs() with the
// array of arguments and then Parse() with no arguments. For example (note
// that no error handling of the Parse() function is shown here):
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// The reason for his difference is to allow effective parsing of modes and
// sub-modes.
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() function. The Args() function checks
// the number of arguments at the same time:
//
//	args, err := md.Args(1, 1, "a trace file")
//	if err != nil {
//		return err
//	}
//	Process(args[0])
//
// Adding flags is similar to the flag package. Adding a boolean flag:
//
//	verbose := md.AddBool("verbose", false, "print additional log messages")
//
// These flag functions return a pointer to a variable of the specified type.
// The Parse() function will set these values appropriately according what the
// user has requested.
//
// A mode is a special command line argument that when specified, puts the
// program into a different mode of operation. The go command is a good
// example: build, doc, get, test, etc. Each of these modes are different
// enough to require a different set of flags and expected arguments.
// mdptrace has modes for converting traces, listing symbols and so on.
//
// Sub-modes are added with the AddSubModes() function. The first sub-mode is
// the default mode. Sub-mode comparisons are case insensitive.
//
//	md.AddSubModes("convert", "packets", "symbols")
//	_, _ = md.Parse()
//	switch md.Mode() {
//	case "CONVERT":
//		md.NewMode()
//		output := md.AddString("o", "", "output file")
//		_, _ = md.Parse()
//		convert(*output, md.RemainingArgs())
//	case "PACKETS":
//		...
//	}
//
// Calling NewMode() before adding the flags of a mode is required. The Path()
// function returns the modes encountered so far, separated by a slash. For
// example, "CONVERT" or "SERVE/MCP".
package modalflag
