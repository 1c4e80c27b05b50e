//
// commit.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/markkurossi/yao2pc/kdf"
	"github.com/markkurossi/yao2pc/wire"
)

// commitRow computes the commitment binding one generator-input
// label: a k-bit digest of the double-width key derivation over the
// label, tweaked by the input index.
func commitRow(label wire.Label, ix uint32, k int) []byte {
	c0, c1 := kdf.KDF256(wire.NewTweak(uint64(ix)), label)

	var d wire.LabelData
	buf := make([]byte, 0, 32)
	buf = append(buf, c0.Bytes(&d)...)
	buf = append(buf, c1.Bytes(&d)...)

	return kdf.Digest(buf, k)
}

// commitInputs builds the commitment and decommitment vectors over
// the generator's masked input and accumulates the running input
// hash. It runs once at generator initialization.
func (g *Generator) commitInputs() {
	count := int(g.genInpCnt)
	g.coms = make([][]byte, count)
	g.decoms = make([][]byte, count)

	hash, err := blake2b.New(g.cfg.KeyBytes(), nil)
	if err != nil {
		panic(err)
	}

	for ix := 0; ix < count; ix++ {
		pair := wire.NewPair(g.otKeys[ix], g.r)
		label := pair.Select(getBit(g.genInp, uint32(ix)))

		var d wire.LabelData
		decom := append([]byte{}, label.Bytes(&d)...)

		g.decoms[ix] = decom
		g.coms[ix] = commitRow(label, uint32(ix), g.cfg.KeyBits())
		hash.Write(decom)
	}
	g.inputHash = hash.Sum(nil)
}

// VerifyDecommitments recomputes the commitment of every
// decommitment and requires bit-exact equality in index order. Any
// mismatch is a consistency violation of the audited replica: a
// malicious-generator abort condition for the cut-and-choose
// orchestrator.
func VerifyDecommitments(coms, decoms [][]byte, k int) error {
	if len(coms) != len(decoms) {
		return errors.Wrapf(ErrCommitment,
			"%d commitments, %d decommitments", len(coms), len(decoms))
	}
	for ix := 0; ix < len(coms); ix++ {
		if len(decoms[ix]) != 16 {
			return errors.Wrapf(ErrCommitment,
				"input %d: decommitment length %d", ix, len(decoms[ix]))
		}
		var label wire.Label
		label.SetBytes(decoms[ix])

		if !bytes.Equal(commitRow(label, uint32(ix), k), coms[ix]) {
			return errors.Wrapf(ErrCommitment, "input %d", ix)
		}
	}
	return nil
}
