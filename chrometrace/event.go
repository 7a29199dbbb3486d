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

package chrometrace

// Phase of a trace event.
type Phase string

// List of phases used by the package.
const (
	PhaseComplete Phase = "X"
	PhaseInstant  Phase = "i"
	PhaseMetadata Phase = "M"
)

// Names of metadata events.
const (
	MetaProcessName     = "process_name"
	MetaThreadName      = "thread_name"
	MetaThreadSortIndex = "thread_sort_index"
)

// Args of a metadata event.
type Args struct {
	Name      string `json:"name,omitempty"`
	SortIndex *int   `json:"sort_index,omitempty"`
}

// Event is a single entry in the traceEvents array.
type Event struct {
	Name      string  `json:"name"`
	Phase     Phase   `json:"ph"`
	Timestamp float64 `json:"ts"`
	Duration  float64 `json:"dur"`
	ProcessID int     `json:"pid"`
	ThreadID  int     `json:"tid"`
	Args      *Args   `json:"args,omitempty"`
	Scope     string  `json:"s,omitempty"`
}

// File is the top level object of the trace event format.
type File struct {
	TraceEvents     []Event `json:"traceEvents"`
	DisplayTimeUnit string  `json:"displayTimeUnit"`
}

// DisplayTimeUnit is the display unit requested of the viewer.
const DisplayTimeUnit = "ms"
