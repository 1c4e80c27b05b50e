//
// evaluator.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"github.com/cockroachdb/errors"

	"github.com/markkurossi/yao2pc/env"
	"github.com/markkurossi/yao2pc/wire"
)

// Evaluator implements the evaluating side of the protocol. It holds
// exactly one label per wire, never learns R or the boolean meaning
// of any label, and consumes garbled rows from the incoming buffer.
type Evaluator struct {
	Session

	wires     []wire.Label
	constKeys [2]wire.Label
}

// NewEvaluator creates the evaluator session. The keys vector is
// shaped like the generator's: one entry per input wire, generator
// inputs first. Only the evaluator-input entries are used; they are
// the labels the oblivious transfer selected for the evaluator's
// actual input bits. maskedGenInp holds the generator's masked input
// bits and evlInp the evaluator's own input bits.
func NewEvaluator(cfg *env.Config, id int, keys []wire.Label,
	maskedGenInp, evlInp []byte, seed []byte, genInputs, evlInputs int) (
	*Evaluator, error) {

	session, err := newSession(cfg, "evl", id, keys, seed,
		genInputs, evlInputs)
	if err != nil {
		return nil, err
	}
	if len(maskedGenInp) < (genInputs+7)/8 {
		return nil, errors.Wrapf(ErrSetup,
			"masked generator input %d bytes, expected %d bits",
			len(maskedGenInp), genInputs)
	}
	if len(evlInp) < (evlInputs+7)/8 {
		return nil, errors.Wrapf(ErrSetup,
			"evaluator input %d bytes, expected %d bits",
			len(evlInp), evlInputs)
	}

	evl := &Evaluator{
		Session: session,
	}
	evl.genInp = append([]byte{}, maskedGenInp...)
	evl.evlInp = append([]byte{}, evlInp...)

	return evl, nil
}

// SetConstKey sets the label of the constant wire c. The outer
// protocol transports the constant keys from the generator.
func (e *Evaluator) SetConstKey(c byte, label wire.Label) {
	e.constKeys[c&1] = label
}

func (e *Evaluator) ensureWires(w uint32) {
	if int(w) >= len(e.wires) {
		n := make([]wire.Label, w+1)
		copy(n, e.wires)
		e.wires = n
	}
}

// ProcessGate evaluates one gate. It is invoked once per gate by the
// circuit engine, in the same order the generator saw the gates.
func (e *Evaluator) ProcessGate(gate *Gate) error {
	if err := e.enterGate(); err != nil {
		return err
	}
	e.ensureWires(gate.Output)

	switch gate.Op {
	case XOR, XNOR:
		// Same label algebra as the generator, without knowing R.
		l := e.wires[gate.Input0]
		l.Xor(e.wires[gate.Input1])
		e.wires[gate.Output] = l

	case INV:
		e.wires[gate.Output] = e.wires[gate.Input0]

	case AND, OR:
		if err := e.evalNonLinear(gate); err != nil {
			return err
		}

	case Const:
		e.wires[gate.Output] = e.constKeys[gate.Input0&1]

	case GenInput:
		if e.genInpIx >= e.genInpCnt {
			return errors.Wrapf(ErrSetup,
				"generator input %d of %d", e.genInpIx, e.genInpCnt)
		}
		var label wire.Label
		if err := e.in.Label(&label); err != nil {
			return err
		}
		e.wires[gate.Output] = label
		e.genInpIx++

	case EvlInput:
		if e.evlInpIx >= e.evlInpCnt {
			return errors.Wrapf(ErrSetup,
				"evaluator input %d of %d", e.evlInpIx, e.evlInpCnt)
		}
		e.wires[gate.Output] = e.otKeys[e.genInpCnt+e.evlInpIx]
		e.evlInpIx++

	case GenOutput:
		// The held label's tag is the masked output bit; the
		// generator's mask unmasks it outside this core.
		e.genOut = setBit(e.genOut, e.genOutIx,
			e.wires[gate.Input0].Tag())
		e.genOutIx++

	case EvlOutput:
		mask, err := e.in.Byte()
		if err != nil {
			return err
		}
		bit := e.wires[gate.Input0].Tag() != (mask != 0)
		e.evlOut = setBit(e.evlOut, e.evlOutIx, bit)
		e.evlOutIx++

	default:
		return errors.Wrapf(ErrState, "unknown gate type %s", gate.Op)
	}
	return nil
}

// evalNonLinear consumes the three transmitted rows of a non-linear
// gate and recovers the output label from the row matching the input
// tag bits. The (0,0) tag combination uses the implicit zero row.
func (e *Evaluator) evalNonLinear(gate *Gate) error {
	a := e.wires[gate.Input0]
	b := e.wires[gate.Input1]

	mask := e.rowKDF(a, b)

	// All three rows must be consumed to keep the cursor aligned
	// with the gate stream.
	var rows [3]wire.Label
	for i := 0; i < 3; i++ {
		if err := e.in.Label(&rows[i]); err != nil {
			return err
		}
	}

	out := mask
	if a.Tag() || b.Tag() {
		var ix int
		if a.Tag() {
			ix |= 0x2
		}
		if b.Tag() {
			ix |= 0x1
		}
		out.Xor(rows[ix-1])
	}
	e.wires[gate.Output] = out

	e.gateIx++
	return nil
}
