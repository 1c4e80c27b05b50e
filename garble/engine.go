//
// engine.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Engine streams the gates of a circuit in a fixed topological
// order. Both parties must see the gates in identical order; that is
// an external protocol precondition the session does not re-verify.
// NextGate returns io.EOF when the circuit is exhausted.
type Engine interface {
	NextGate() (*Gate, error)
}

// Processor consumes one gate description at a time against the
// session state. Generator and Evaluator implement it.
type Processor interface {
	ProcessGate(gate *Gate) error
}

// Run drives the processor with all gates from the engine.
func Run(engine Engine, proc Processor) error {
	for {
		gate, err := engine.NextGate()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := proc.ProcessGate(gate); err != nil {
			return errors.Wrapf(err, "gate %v", gate)
		}
	}
}

// Script implements Engine over a fixed gate sequence.
type Script struct {
	gates []Gate
	pos   int
}

// NewScript creates an engine that streams the argument gates in
// order.
func NewScript(gates []Gate) *Script {
	return &Script{
		gates: gates,
	}
}

// NextGate implements Engine.
func (s *Script) NextGate() (*Gate, error) {
	if s.pos >= len(s.gates) {
		return nil, io.EOF
	}
	gate := &s.gates[s.pos]
	s.pos++
	return gate, nil
}

// Reset rewinds the script to the first gate.
func (s *Script) Reset() {
	s.pos = 0
}
