//
// prg.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"golang.org/x/crypto/chacha20"

	"github.com/markkurossi/yao2pc/kdf"
	"github.com/markkurossi/yao2pc/wire"
)

// PRG implements the deterministic pseudo-random generator. It is
// seeded once at session initialization and produces the same byte
// stream for the same seed. Each session owns its PRG exclusively;
// replicas in a cut-and-choose batch must not share one.
type PRG struct {
	stream *chacha20.Cipher
}

// NewPRG creates a new generator from the seed. Seeds of any length
// are accepted; they are expanded to the cipher key size.
func NewPRG(seed []byte) *PRG {
	key := kdf.Digest(seed, 256)
	var nonce [chacha20.NonceSize]byte

	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce[:])
	if err != nil {
		panic(err)
	}
	return &PRG{
		stream: stream,
	}
}

// Read fills buf with pseudo-random bytes. It implements io.Reader
// and never fails.
func (prg *PRG) Read(buf []byte) (int, error) {
	clear(buf)
	prg.stream.XORKeyStream(buf, buf)
	return len(buf), nil
}

// Label returns the next pseudo-random wire label.
func (prg *PRG) Label() wire.Label {
	var data wire.LabelData
	prg.Read(data[:])

	var label wire.Label
	label.SetData(&data)
	return label
}
