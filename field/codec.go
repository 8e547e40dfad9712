/*
Copyright © 2026 the geofluid authors.
This file is part of geofluid.

geofluid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geofluid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geofluid.  If not, see <http://www.gnu.org/licenses/>.
*/

package field

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshot is the serialized form of a Field.
type snapshot struct {
	Name    string    `msgpack:"name"`
	Unit    string    `msgpack:"unit"`
	Comment string    `msgpack:"comment"`
	Ext     [4]int    `msgpack:"ext"`
	Order   Order     `msgpack:"order"`
	Undef   float64   `msgpack:"undef"`
	Start   [4]int    `msgpack:"start"`
	End     [4]int    `msgpack:"end"`
	Len     [4]int    `msgpack:"len"`
	Data    []float64 `msgpack:"data"`
}

// Encode writes f to w as zstd-compressed msgpack.
func (f *Field) Encode(w io.Writer) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("field: creating zstd writer: %w", err)
	}
	defer zw.Close()

	s := snapshot{
		Name:    f.Name,
		Unit:    f.Unit,
		Comment: f.Comment,
		Ext:     f.ext,
		Order:   f.order,
		Undef:   f.undef,
		Start:   f.region.Start,
		End:     f.region.End,
		Len:     f.region.Len,
		Data:    f.data.Elements,
	}
	if err := msgpack.NewEncoder(zw).Encode(&s); err != nil {
		return fmt.Errorf("field: encoding %s: %w", f.Name, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("field: closing zstd writer: %w", err)
	}
	return nil
}

// Decode reads a field written by Encode.
func Decode(r io.Reader) (*Field, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("field: creating zstd reader: %w", err)
	}
	defer zr.Close()

	var s snapshot
	if err := msgpack.NewDecoder(zr).Decode(&s); err != nil {
		return nil, fmt.Errorf("field: decoding snapshot: %w", err)
	}
	f, err := newField(s.Ext, s.Order)
	if err != nil {
		return nil, fmt.Errorf("field: decoding snapshot: %w", err)
	}
	if len(s.Data) != len(f.data.Elements) {
		return nil, fmt.Errorf("field: snapshot %s has %d elements but extents %v need %d: %w",
			s.Name, len(s.Data), s.Ext, len(f.data.Elements), ErrDimensionMismatch)
	}
	copy(f.data.Elements, s.Data)
	f.Name, f.Unit, f.Comment = s.Name, s.Unit, s.Comment
	f.undef = s.Undef
	f.region = Range{Start: s.Start, End: s.End, Len: s.Len}
	return f, nil
}
