//
// gate.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"fmt"
)

// Operation specifies the gate type.
type Operation byte

// Gate types. XOR, XNOR, and INV are linear and transmit no garbled
// material. AND and OR are non-linear and produce garbled rows. The
// input and output operations move wire keys between the session
// state and the role-specific input/output vectors.
const (
	XOR Operation = iota
	XNOR
	AND
	OR
	INV
	Const
	GenInput
	EvlInput
	GenOutput
	EvlOutput
)

func (op Operation) String() string {
	switch op {
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case INV:
		return "INV"
	case Const:
		return "Const"
	case GenInput:
		return "GenInput"
	case EvlInput:
		return "EvlInput"
	case GenOutput:
		return "GenOutput"
	case EvlOutput:
		return "EvlOutput"
	default:
		return fmt.Sprintf("{Operation %d}", op)
	}
}

// Gate describes one gate of the circuit. Gates are owned by the
// circuit engine; the session never stores them beyond the callback
// invocation.
//
// The wire index fields are used as follows: binary gates read
// Input0 and Input1 and write Output; INV reads Input0 and writes
// Output; Const reads the constant bit value from Input0 and writes
// Output; the input operations write Output; the output operations
// read Input0.
type Gate struct {
	Op     Operation
	Input0 uint32
	Input1 uint32
	Output uint32
}

func (g Gate) String() string {
	switch g.Op {
	case INV, GenOutput, EvlOutput:
		return fmt.Sprintf("%s %d %d", g.Op, g.Input0, g.Output)
	case Const:
		return fmt.Sprintf("%s %d w%d", g.Op, g.Input0, g.Output)
	case GenInput, EvlInput:
		return fmt.Sprintf("%s w%d", g.Op, g.Output)
	default:
		return fmt.Sprintf("%s %d %d %d", g.Op, g.Input0, g.Input1, g.Output)
	}
}

// truth returns the gate's boolean function value for the input bits
// a and b.
func (g Gate) truth(a, b bool) bool {
	switch g.Op {
	case AND:
		return a && b
	case OR:
		return a || b
	case XOR:
		return a != b
	case XNOR:
		return a == b
	default:
		panic("truth: not a binary gate")
	}
}
