//
// kdf.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package kdf implements the tweakable key derivation function for
// wire keys and the commitment digest.
//
// KDF128 and KDF256 derive one or two 128-bit blocks from an input
// label and a key label. The construction is the single-key
// Davies-Meyer mode E_key(in) ^ in over AES-128. The derivation is
// deterministic: identical (in, key) always yields identical output,
// and outputs under different keys are computationally independent.
// Callers select the width by their security context and never mix
// widths for the same value.
package kdf

import (
	"crypto/aes"

	"golang.org/x/crypto/blake2b"

	"github.com/markkurossi/yao2pc/wire"
)

// KDF128 derives one 128-bit block from the input label in under the
// key label key.
func KDF128(in, key wire.Label) wire.Label {
	var kd, d wire.LabelData

	block, err := aes.NewCipher(key.Bytes(&kd))
	if err != nil {
		// AES-128 accepts all 16-byte keys; this is a programming
		// error, not a runtime condition.
		panic(err)
	}

	in.GetData(&d)
	block.Encrypt(d[:], d[:])

	var out wire.Label
	out.SetData(&d)
	out.Xor(in)
	return out
}

// KDF256 derives two 128-bit blocks from the input label in under
// the key label key. The blocks are domain separated from each other
// and from KDF128 output for the same input.
func KDF256(in, key wire.Label) (wire.Label, wire.Label) {
	var kd, d0, d1 wire.LabelData

	block, err := aes.NewCipher(key.Bytes(&kd))
	if err != nil {
		panic(err)
	}

	in0 := in
	in0.D0 ^= 0x5555555555555555
	in1 := in
	in1.D0 ^= 0xaaaaaaaaaaaaaaaa

	in0.GetData(&d0)
	block.Encrypt(d0[:], d0[:])
	in1.GetData(&d1)
	block.Encrypt(d1[:], d1[:])

	var out0, out1 wire.Label
	out0.SetData(&d0)
	out0.Xor(in0)
	out1.SetData(&d1)
	out1.Xor(in1)
	return out0, out1
}

// Digest computes a k-bit digest over data. It is the commitment hash
// of the protocol: arbitrary-length input, fixed-size output selected
// by the security parameter k.
func Digest(data []byte, k int) []byte {
	h, err := blake2b.New(k/8, nil)
	if err != nil {
		panic(err)
	}
	h.Write(data)
	return h.Sum(nil)
}
