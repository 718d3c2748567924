package program

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Marshal serializes a Program to its wire form. This is the only IR that
// crosses a process boundary: a backend process needs nothing but this byte
// stream and no knowledge of lumen's own syntax.
func Marshal(p *Program) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes a Program previously produced by Marshal.
func Unmarshal(data []byte) (*Program, error) {
	var p Program
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
