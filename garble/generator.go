//
// generator.go
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

// Generator implements the garbling side of the protocol. It derives
// the global offset R and knows both labels of every wire; the gate
// stream produces garbled rows into the outgoing buffer.
type Generator struct {
	Session

	r          wire.Label
	wires      []wire.Pair
	constWires [2]wire.Pair
}

// NewGenerator creates the generator session. The keys vector holds
// one base label per input wire, from the oblivious-transfer
// collaborator; inputMask holds the generator's masked input bits,
// one per generator-input wire. The seed determines all session
// randomness: equal seeds garble identically, which the
// cut-and-choose audit relies on.
func NewGenerator(cfg *env.Config, id int, keys []wire.Label,
	inputMask []byte, seed []byte, genInputs, evlInputs int) (
	*Generator, error) {

	session, err := newSession(cfg, "gen", id, keys, seed,
		genInputs, evlInputs)
	if err != nil {
		return nil, err
	}
	if len(inputMask) < (genInputs+7)/8 {
		return nil, errors.Wrapf(ErrSetup,
			"input mask %d bytes, expected %d bits",
			len(inputMask), genInputs)
	}

	gen := &Generator{
		Session: session,
	}
	gen.genInp = append([]byte{}, inputMask...)

	// The global offset. Its tag bit is 1 for the whole session so
	// that the two labels of every pair carry opposite tags.
	gen.r = gen.prg.Label()
	gen.r.SetTag(true)

	for i := 0; i < 2; i++ {
		gen.constWires[i] = wire.NewPair(gen.prg.Label(), gen.r)
	}

	gen.commitInputs()

	return gen, nil
}

// R returns the session's global free-XOR offset.
func (g *Generator) R() wire.Label {
	return g.r
}

// InputPair returns the label pair of the generator-input wire ix.
func (g *Generator) InputPair(ix int) wire.Pair {
	return wire.NewPair(g.otKeys[ix], g.r)
}

// GetConstKey returns the label of the constant wire c for the bit
// value b.
func (g *Generator) GetConstKey(c, b byte) wire.Label {
	return g.constWires[c&1].Select(b&1 == 1)
}

// ConstKey returns the label the evaluator needs for the constant
// wire c: the label standing for the wire's fixed value.
func (g *Generator) ConstKey(c byte) wire.Label {
	return g.GetConstKey(c, c)
}

func (g *Generator) ensureWires(w uint32) {
	if int(w) >= len(g.wires) {
		n := make([]wire.Pair, w+1)
		copy(n, g.wires)
		g.wires = n
	}
}

// ProcessGate garbles one gate. It is invoked once per gate by the
// circuit engine.
func (g *Generator) ProcessGate(gate *Gate) error {
	if err := g.enterGate(); err != nil {
		return err
	}
	g.ensureWires(gate.Output)

	switch gate.Op {
	case XOR, XNOR:
		// Free XOR: the output pair differs by R automatically
		// because both input pairs do.
		a := g.wires[gate.Input0]
		b := g.wires[gate.Input1]

		l := a.L0
		l.Xor(b.L0)
		c := wire.NewPair(l, g.r)
		if gate.Op == XNOR {
			c.L0, c.L1 = c.L1, c.L0
		}
		g.wires[gate.Output] = c

	case INV:
		// The alternate value is reached by applying R; nothing is
		// transmitted.
		in := g.wires[gate.Input0]
		g.wires[gate.Output] = wire.Pair{
			L0: in.L1,
			L1: in.L0,
		}

	case AND, OR:
		g.garbleNonLinear(gate)

	case Const:
		g.wires[gate.Output] = g.constWires[gate.Input0&1]

	case GenInput:
		if g.genInpIx >= g.genInpCnt {
			return errors.Wrapf(ErrSetup,
				"generator input %d of %d", g.genInpIx, g.genInpCnt)
		}
		pair := wire.NewPair(g.otKeys[g.genInpIx], g.r)
		g.wires[gate.Output] = pair

		// Stage the label selected by the next masked input bit.
		g.out.AppendLabel(pair.Select(getBit(g.genInp, g.genInpIx)))
		g.genInpIx++

	case EvlInput:
		if g.evlInpIx >= g.evlInpCnt {
			return errors.Wrapf(ErrSetup,
				"evaluator input %d of %d", g.evlInpIx, g.evlInpCnt)
		}
		g.wires[gate.Output] =
			wire.NewPair(g.otKeys[g.genInpCnt+g.evlInpIx], g.r)
		g.evlInpIx++

	case GenOutput:
		// The false label's tag is the generator's output mask bit.
		pair := g.wires[gate.Input0]
		g.genOut = setBit(g.genOut, g.genOutIx, pair.L0.Tag())
		g.genOutIx++

	case EvlOutput:
		// Stage the mask bit so the evaluator can unmask its output
		// value.
		pair := g.wires[gate.Input0]
		mask := pair.L0.Tag()
		g.evlOut = setBit(g.evlOut, g.evlOutIx, mask)
		g.evlOutIx++

		var b byte
		if mask {
			b = 1
		}
		g.out.AppendByte(b)

	default:
		return errors.Wrapf(ErrState, "unknown gate type %s", gate.Op)
	}
	return nil
}

// byTag returns the pair's label carrying the argument tag bit, and
// the boolean value the label stands for.
func byTag(w wire.Pair, tag bool) (wire.Label, bool) {
	if w.L0.Tag() == tag {
		return w.L0, false
	}
	return w.L1, true
}

// garbleNonLinear derives the garbled table of a non-linear gate with
// garbled-row reduction: the row whose input tags are (0,0) is
// constructed to be zero and never transmitted. The remaining three
// rows are staged in tag order (0,1), (1,0), (1,1).
func (g *Generator) garbleNonLinear(gate *Gate) {
	a := g.wires[gate.Input0]
	b := g.wires[gate.Input1]

	a0, va0 := byTag(a, false)
	a1, va1 := byTag(a, true)
	b0, vb0 := byTag(b, false)
	b1, vb1 := byTag(b, true)

	// The (0,0) row mask becomes the output label for that row's
	// value; its ciphertext is zero by construction.
	m00 := g.rowKDF(a0, b0)

	var c wire.Pair
	if gate.truth(va0, vb0) {
		c.L1 = m00
		c.L0 = m00
		c.L0.Xor(g.r)
	} else {
		c.L0 = m00
		c.L1 = m00
		c.L1.Xor(g.r)
	}
	g.wires[gate.Output] = c

	row := g.rowKDF(a0, b1)
	row.Xor(c.Select(gate.truth(va0, vb1)))
	g.out.AppendLabel(row)

	row = g.rowKDF(a1, b0)
	row.Xor(c.Select(gate.truth(va1, vb0)))
	g.out.AppendLabel(row)

	row = g.rowKDF(a1, b1)
	row.Xor(c.Select(gate.truth(va1, vb1)))
	g.out.AppendLabel(row)

	g.gateIx++
}
