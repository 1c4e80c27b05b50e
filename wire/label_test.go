//
// label_test.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package wire

import (
	"crypto/rand"
	"testing"
)

func TestTag(t *testing.T) {
	label := &Label{
		D0: 0xffffffffffffffff,
		D1: 0xffffffffffffffff,
	}

	label.SetTag(true)
	if label.D1 != 0xffffffffffffffff {
		t.Fatal("Failed to set tag bit")
	}

	label.SetTag(false)
	if label.D1 != 0xfffffffffffffffe {
		t.Fatalf("Failed to clear tag bit: %x", label.D1)
	}
	if label.Tag() {
		t.Fatal("Tag() after clear")
	}
}

func TestClearMask(t *testing.T) {
	mask := ClearMask(128)
	if mask.D0 != 0xffffffffffffffff || mask.D1 != 0xfffffffffffffffe {
		t.Fatalf("ClearMask(128): %s", mask)
	}

	mask = ClearMask(80)
	if mask.D0 != 0xffff || mask.D1 != 0xfffffffffffffffe {
		t.Fatalf("ClearMask(80): %s", mask)
	}

	mask = ClearMask(64)
	if mask.D0 != 0 || mask.D1 != 0xfffffffffffffffe {
		t.Fatalf("ClearMask(64): %s", mask)
	}
}

func TestPair(t *testing.T) {
	r, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	r.SetTag(true)

	base, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	w := NewPair(base, r)

	diff := w.L0
	diff.Xor(w.L1)
	if !diff.Equal(r) {
		t.Fatalf("label pair offset %s != %s", diff, r)
	}
	if w.L0.Tag() == w.L1.Tag() {
		t.Fatal("pair labels have equal tags")
	}
	if !w.Select(true).Equal(w.L1) || !w.Select(false).Equal(w.L0) {
		t.Fatal("Select")
	}
}

func TestData(t *testing.T) {
	label, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	var data LabelData
	label.GetData(&data)

	var decoded Label
	decoded.SetData(&data)
	if !decoded.Equal(label) {
		t.Fatalf("data round trip: %s != %s", decoded, label)
	}

	decoded = Label{}
	decoded.SetBytes(label.Bytes(&data))
	if !decoded.Equal(label) {
		t.Fatalf("bytes round trip: %s != %s", decoded, label)
	}
}

func TestMul(t *testing.T) {
	label := Label{
		D1: 0x8000000000000001,
	}
	label.Mul2()
	if label.D0 != 1 || label.D1 != 2 {
		t.Fatalf("Mul2: %s", label)
	}

	label = Label{
		D1: 0x4000000000000001,
	}
	label.Mul4()
	if label.D0 != 1 || label.D1 != 4 {
		t.Fatalf("Mul4: %s", label)
	}
}
