//
// engine_test.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	gates := []Gate{
		{Op: GenInput, Output: 0},
		{Op: INV, Input0: 0, Output: 1},
	}
	script := NewScript(gates)

	for i := range gates {
		gate, err := script.NextGate()
		require.NoError(t, err)
		require.Equal(t, gates[i], *gate)
	}
	_, err := script.NextGate()
	require.ErrorIs(t, err, io.EOF)

	script.Reset()
	gate, err := script.NextGate()
	require.NoError(t, err)
	require.Equal(t, gates[0], *gate)
}

type failProc struct {
	err error
}

func (p *failProc) ProcessGate(gate *Gate) error {
	return p.err
}

func TestRunError(t *testing.T) {
	script := NewScript([]Gate{
		{Op: AND, Input0: 0, Input1: 1, Output: 2},
	})
	err := Run(script, &failProc{err: ErrDesync})
	require.ErrorIs(t, err, ErrDesync)
	require.Contains(t, err.Error(), "AND")
}
