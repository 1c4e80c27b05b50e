//
// buffer_test.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markkurossi/yao2pc/wire"
)

func TestBufferRoundTrip(t *testing.T) {
	label, err := wire.NewLabel(rand.Reader)
	require.NoError(t, err)

	var buf Buffer
	buf.AppendByte(0x42)
	buf.AppendLabel(label)
	require.Equal(t, 17, buf.Len())

	var reader Reader
	reader.Load(buf.Extract())
	require.Equal(t, 0, buf.Len())
	require.Empty(t, buf.Extract())

	b, err := reader.Byte()
	require.NoError(t, err)
	require.Equal(t, byte(0x42), b)

	var decoded wire.Label
	require.NoError(t, reader.Label(&decoded))
	require.Equal(t, label, decoded)
	require.Equal(t, 0, reader.Rem())
}

func TestReaderDesync(t *testing.T) {
	var reader Reader
	reader.Load(make([]byte, 15))

	var label wire.Label
	require.ErrorIs(t, reader.Label(&label), ErrDesync)

	// Load replaces the content wholesale and resets the cursor.
	reader.Load(make([]byte, 16))
	require.NoError(t, reader.Label(&label))

	_, err := reader.Byte()
	require.ErrorIs(t, err, ErrDesync)
}

func TestPRGDeterminism(t *testing.T) {
	a := NewPRG([]byte("seed"))
	b := NewPRG([]byte("seed"))
	c := NewPRG([]byte("other seed"))

	var prev wire.Label
	for i := 0; i < 16; i++ {
		la := a.Label()
		require.Equal(t, la, b.Label(), "streams diverge at %d", i)
		require.NotEqual(t, la, c.Label())
		require.NotEqual(t, prev, la, "stream repeats at %d", i)
		prev = la
	}
}
