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

package packets

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/golang/snappy"

	"github.com/mdptrace/mdptrace/curated"
)

// Sentinal pattern for errors reading a trace.
const ReadError = "packets: %v"

// the stream identifier chunk that begins every snappy framed stream
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

// Load reads the entire trace from the reader and decodes it. Traces that
// have been compressed with the snappy framing format are decompressed
// transparently.
func Load(r io.Reader) (*Capture, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(len(snappyMagic)); err == nil && bytes.Equal(magic, snappyMagic) {
		src = snappy.NewReader(br)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, curated.Errorf(ReadError, err)
	}

	return Decode(data)
}

// LoadFile opens the named file and decodes the trace.
func LoadFile(filename string) (*Capture, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(ReadError, err)
	}
	defer f.Close()

	return Load(f)
}
