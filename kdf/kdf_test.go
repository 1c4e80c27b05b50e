//
// kdf_test.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kdf

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/markkurossi/yao2pc/wire"
)

func TestKDF128Deterministic(t *testing.T) {
	in, err := wire.NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	key, err := wire.NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	first := KDF128(in, key)
	for i := 0; i < 10; i++ {
		if !KDF128(in, key).Equal(first) {
			t.Fatal("KDF128 is not deterministic")
		}
	}
}

func TestKDF128Keys(t *testing.T) {
	in, err := wire.NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	// Distinct keys must yield distinct outputs over a large sample.
	seen := make(map[wire.Label]bool)
	for i := 0; i < 10000; i++ {
		key, err := wire.NewLabel(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		out := KDF128(in, key)
		if seen[out] {
			t.Fatalf("KDF128 collision at trial %d", i)
		}
		seen[out] = true
	}
}

func TestKDF256(t *testing.T) {
	in, err := wire.NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	key, err := wire.NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	a0, a1 := KDF256(in, key)
	b0, b1 := KDF256(in, key)
	if !a0.Equal(b0) || !a1.Equal(b1) {
		t.Fatal("KDF256 is not deterministic")
	}
	if a0.Equal(a1) {
		t.Fatal("KDF256 blocks are equal")
	}
	if a0.Equal(KDF128(in, key)) || a1.Equal(KDF128(in, key)) {
		t.Fatal("KDF256 output collides with KDF128")
	}
}

func TestDigest(t *testing.T) {
	data := []byte("generator input decommitment")

	d := Digest(data, 128)
	if len(d) != 16 {
		t.Fatalf("digest length %d, expected 16", len(d))
	}
	if !bytes.Equal(d, Digest(data, 128)) {
		t.Fatal("Digest is not deterministic")
	}
	if bytes.Equal(d, Digest(data, 256)[:16]) {
		t.Fatal("digest sizes are not domain separated")
	}

	flipped := append([]byte{}, data...)
	flipped[0] ^= 0x01
	if bytes.Equal(d, Digest(flipped, 128)) {
		t.Fatal("digest ignores input bit flip")
	}
}
