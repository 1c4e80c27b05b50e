//
// label.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package wire implements 128-bit wire labels with point-and-permute
// tag bits.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Pair implements a wire with 0 and 1 labels. The labels of a pair
// always differ by the session's global offset R.
type Pair struct {
	L0 Label
	L1 Label
}

func (w Pair) String() string {
	return fmt.Sprintf("%s/%s", w.L0, w.L1)
}

// Select returns the label for the bit value v.
func (w Pair) Select(v bool) Label {
	if v {
		return w.L1
	}
	return w.L0
}

// NewPair creates a label pair from the base label. The 1 label is
// the base label offset by r.
func NewPair(base, r Label) Pair {
	l1 := base
	l1.Xor(r)
	return Pair{
		L0: base,
		L1: l1,
	}
}

// Label implements a 128 bit wire label. The low bit of the label is
// the point-and-permute tag; it is not part of the cryptographic key
// strength.
type Label struct {
	D0 uint64
	D1 uint64
}

// LabelData contains label data as a byte array.
type LabelData [16]byte

func (l Label) String() string {
	return fmt.Sprintf("%016x%016x", l.D0, l.D1)
}

// Equal tests if the labels are equal.
func (l Label) Equal(o Label) bool {
	return l.D0 == o.D0 && l.D1 == o.D1
}

// NewLabel creates a new random label.
func NewLabel(rand io.Reader) (Label, error) {
	var buf LabelData
	var label Label

	if _, err := rand.Read(buf[:]); err != nil {
		return label, err
	}
	label.SetData(&buf)
	return label, nil
}

// NewTweak creates a domain-separation label from the tweak value.
func NewTweak(tweak uint64) Label {
	return Label{
		D1: tweak,
	}
}

// Tag tests the label's point-and-permute tag bit.
func (l Label) Tag() bool {
	return (l.D1 & 1) != 0
}

// SetTag sets the label's point-and-permute tag bit.
func (l *Label) SetTag(set bool) {
	if set {
		l.D1 |= 1
	} else {
		l.D1 &^= 1
	}
}

// Mul2 multiplies the label by 2.
func (l *Label) Mul2() {
	l.D0 <<= 1
	l.D0 |= (l.D1 >> 63)
	l.D1 <<= 1
}

// Mul4 multiplies the label by 4.
func (l *Label) Mul4() {
	l.D0 <<= 2
	l.D0 |= (l.D1 >> 62)
	l.D1 <<= 2
}

// Xor xors the label with the argument label.
func (l *Label) Xor(o Label) {
	l.D0 ^= o.D0
	l.D1 ^= o.D1
}

// And masks the label with the argument label.
func (l *Label) And(o Label) {
	l.D0 &= o.D0
	l.D1 &= o.D1
}

// ClearMask creates the label mask that keeps the low k bits but
// clears the point-and-permute tag bit. It is applied to labels
// before they are used as hash inputs.
func ClearMask(k int) Label {
	var mask Label

	switch {
	case k >= 128:
		mask.D0 = ^uint64(0)
		mask.D1 = ^uint64(0)
	case k > 64:
		mask.D0 = ^uint64(0) >> (128 - k)
		mask.D1 = ^uint64(0)
	default:
		mask.D1 = ^uint64(0) >> (64 - k)
	}
	mask.D1 &^= 1
	return mask
}

// GetData gets the label as label data.
func (l Label) GetData(buf *LabelData) {
	binary.BigEndian.PutUint64(buf[0:8], l.D0)
	binary.BigEndian.PutUint64(buf[8:16], l.D1)
}

// SetData sets the label from label data.
func (l *Label) SetData(data *LabelData) {
	l.D0 = binary.BigEndian.Uint64((*data)[0:8])
	l.D1 = binary.BigEndian.Uint64((*data)[8:16])
}

// Bytes returns the label data as bytes.
func (l Label) Bytes(buf *LabelData) []byte {
	l.GetData(buf)
	return buf[:]
}

// SetBytes sets the label data from bytes.
func (l *Label) SetBytes(data []byte) {
	l.D0 = binary.BigEndian.Uint64(data[0:8])
	l.D1 = binary.BigEndian.Uint64(data[8:16])
}
