//
// buffer.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"github.com/cockroachdb/errors"

	"github.com/markkurossi/yao2pc/wire"
)

// Buffer implements the outgoing byte buffer. Gate processing appends
// garbled rows and selected input labels into it; the transport layer
// drains it with Extract.
type Buffer struct {
	buf []byte
}

// AppendByte appends a byte value.
func (b *Buffer) AppendByte(val byte) {
	b.buf = append(b.buf, val)
}

// AppendLabel appends a wire label.
func (b *Buffer) AppendLabel(val wire.Label) {
	var data wire.LabelData
	b.buf = append(b.buf, val.Bytes(&data)...)
}

// Len returns the number of staged bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Extract removes and returns all staged bytes, leaving the buffer
// empty. A second Extract yields an empty result until new bytes are
// staged.
func (b *Buffer) Extract() []byte {
	data := b.buf
	b.buf = nil
	return data
}

// Reader implements the cursor-based incoming byte buffer. Load
// replaces the content wholesale; gate processing advances the cursor
// as it consumes fixed-size rows. Reading past the end is a protocol
// desynchronization, not a recoverable condition.
type Reader struct {
	buf []byte
	pos int
}

// Load replaces the buffer content and resets the cursor.
func (r *Reader) Load(data []byte) {
	r.buf = data
	r.pos = 0
}

// Rem returns the number of unconsumed bytes.
func (r *Reader) Rem() int {
	return len(r.buf) - r.pos
}

// Byte consumes one byte.
func (r *Reader) Byte() (byte, error) {
	if r.pos+1 > len(r.buf) {
		return 0, errors.Wrapf(ErrDesync,
			"reading byte at offset %d of %d", r.pos, len(r.buf))
	}
	val := r.buf[r.pos]
	r.pos++
	return val, nil
}

// Label consumes one wire label.
func (r *Reader) Label(val *wire.Label) error {
	if r.pos+16 > len(r.buf) {
		return errors.Wrapf(ErrDesync,
			"reading label at offset %d of %d", r.pos, len(r.buf))
	}
	val.SetBytes(r.buf[r.pos : r.pos+16])
	r.pos += 16
	return nil
}
