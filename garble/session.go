//
// session.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package garble implements the per-gate garbling and evaluation
// core of Yao's protocol with free XOR, point-and-permute wire tags,
// and generator-input commitments for cut-and-choose auditing.
//
// The package covers one circuit evaluation session per state
// instance. The circuit description engine, oblivious transfer, and
// the network transport are external collaborators: gates are pulled
// through the Engine capability, the evaluator's input keys arrive as
// a ready vector, and gate material moves through the session's
// outgoing and incoming byte buffers.
package garble

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/text/superscript"

	"github.com/markkurossi/yao2pc/env"
	"github.com/markkurossi/yao2pc/kdf"
	"github.com/markkurossi/yao2pc/wire"
)

// Session failure kinds. All of them are fatal for the session;
// recovery (re-running a replica, aborting the protocol) belongs to
// the cut-and-choose orchestrator.
var (
	// ErrSetup reports an initialization mismatch such as a wrong
	// key-vector or input-mask length.
	ErrSetup = errors.New("session setup mismatch")

	// ErrDesync reports that the incoming buffer cursor ran past the
	// available bytes: the parties disagree on gate order or garbled
	// row count.
	ErrDesync = errors.New("incoming buffer desynchronized")

	// ErrState reports a session state machine violation.
	ErrState = errors.New("invalid session state")

	// ErrCommitment reports a generator-input consistency violation
	// found during a cut-and-choose audit.
	ErrCommitment = errors.New("input commitment mismatch")
)

// State specifies the session state.
type State int

// Session states. A session becomes Ready after the role-specific
// initialization, consumes gates while Ready, and is Finalized by
// TrimOutputs after the last gate.
const (
	Uninitialized State = iota
	Ready
	Finalized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Finalized:
		return "finalized"
	default:
		return fmt.Sprintf("{State %d}", s)
	}
}

// IOStats counts the bytes moved through the session buffers.
type IOStats struct {
	Sent  uint64
	Recvd uint64
}

// Sum returns the sum of sent and received bytes.
func (stats IOStats) Sum() uint64 {
	return stats.Sent + stats.Recvd
}

// Session implements the state shared by both protocol roles:
// counters, input and output bit vectors, commitment vectors, and
// the byte buffers. The role-specific wire tables live in Generator
// and Evaluator.
type Session struct {
	cfg  *env.Config
	id   int
	role string

	state     State
	clearMask wire.Label
	gateIx    uint64

	genInpCnt uint32
	evlInpCnt uint32
	genInpIx  uint32
	evlInpIx  uint32
	genOutIx  uint32
	evlOutIx  uint32

	genInp []byte
	evlInp []byte
	genOut []byte
	evlOut []byte

	coms      [][]byte
	decoms    [][]byte
	inputHash []byte

	out   Buffer
	in    Reader
	prg   *PRG
	Stats IOStats

	// otKeys is borrowed from the oblivious-transfer collaborator,
	// indexed by generator inputs first, then evaluator inputs.
	otKeys []wire.Label
}

// newSession initializes the role-independent session state.
func newSession(cfg *env.Config, role string, id int, keys []wire.Label,
	seed []byte, genInputs, evlInputs int) (Session, error) {

	if cfg == nil {
		cfg = &env.Config{}
	}
	if len(keys) != genInputs+evlInputs {
		return Session{}, errors.Wrapf(ErrSetup,
			"key vector length %d, expected %d inputs",
			len(keys), genInputs+evlInputs)
	}
	return Session{
		cfg:       cfg,
		id:        id,
		role:      role,
		state:     Ready,
		clearMask: wire.ClearMask(cfg.KeyBits()),
		genInpCnt: uint32(genInputs),
		evlInpCnt: uint32(evlInputs),
		prg:       NewPRG(seed),
		otKeys:    keys,
	}, nil
}

// ID returns the session (replica) number.
func (s *Session) ID() int {
	return s.id
}

// IDString returns the role and replica number as string.
func (s *Session) IDString() string {
	return s.role + superscript.Itoa(s.id)
}

// State returns the session state.
func (s *Session) State() State {
	return s.state
}

// enterGate checks that the session can consume a gate.
func (s *Session) enterGate() error {
	if s.state != Ready {
		return errors.Wrapf(ErrState, "session %s is %s",
			s.IDString(), s.state)
	}
	return nil
}

// GateCount returns the non-linear gate counter. It advances by
// exactly one per non-linear gate and seeds key derivation as a
// domain separator; it is identical on both roles after the same
// gate stream.
func (s *Session) GateCount() uint64 {
	return s.gateIx
}

// rowKDF derives the masking value for one garbled row. The key
// combines the two input labels with the clear mask applied; the
// non-linear gate counter tweaks the derivation so that no ciphertext
// repeats across gates.
func (s *Session) rowKDF(a, b wire.Label) wire.Label {
	key := a
	key.Mul2()
	b.Mul4()
	key.Xor(b)
	key.And(s.clearMask)

	return kdf.KDF128(wire.NewTweak(s.gateIx), key)
}

// Extract removes and returns all staged outgoing bytes for the
// transport collaborator.
func (s *Session) Extract() []byte {
	data := s.out.Extract()
	s.Stats.Sent += uint64(len(data))
	return data
}

// Deliver replaces the incoming buffer with newly received bytes and
// resets its cursor.
func (s *Session) Deliver(data []byte) {
	s.Stats.Recvd += uint64(len(data))
	s.in.Load(data)
}

// Staged returns the number of currently staged outgoing bytes.
func (s *Session) Staged() int {
	return s.out.Len()
}

// TrimOutputs truncates both output byte vectors to the number of
// produced bits and finalizes the session. No gates can be processed
// afterwards.
func (s *Session) TrimOutputs() error {
	if s.state != Ready {
		return errors.Wrapf(ErrState, "session %s is %s",
			s.IDString(), s.state)
	}
	s.genOut = s.genOut[:(s.genOutIx+7)/8]
	s.evlOut = s.evlOut[:(s.evlOutIx+7)/8]
	s.state = Finalized
	return nil
}

// GenOut returns the generator-output bit vector. On the generator
// side the bits are the output masks; on the evaluator side they are
// the masked output values.
func (s *Session) GenOut() []byte {
	return s.genOut
}

// EvlOut returns the evaluator-output bit vector. On the evaluator
// side the bits are cleartext output values.
func (s *Session) EvlOut() []byte {
	return s.evlOut
}

// Commitments returns the generator-input commitment vector.
func (s *Session) Commitments() [][]byte {
	return s.coms
}

// Decommitments returns the generator-input decommitment vector.
func (s *Session) Decommitments() [][]byte {
	return s.decoms
}

// InputHash returns the accumulated digest over the generator's
// committed inputs.
func (s *Session) InputHash() []byte {
	return s.inputHash
}

// PassCheck verifies the stored decommitments against the stored
// commitments.
func (s *Session) PassCheck() bool {
	return VerifyDecommitments(s.coms, s.decoms, s.cfg.KeyBits()) == nil
}

// setBit sets the bit ix in the bit vector, growing it on demand.
// The vector is trimmed to its final size only by TrimOutputs, after
// the last output index is known.
func setBit(buf []byte, ix uint32, val bool) []byte {
	for uint32(len(buf)) <= ix/8 {
		buf = append(buf, 0)
	}
	if val {
		buf[ix/8] |= 1 << (ix % 8)
	} else {
		buf[ix/8] &^= 1 << (ix % 8)
	}
	return buf
}

// getBit returns the bit ix of the bit vector. Bits past the end
// read as zero.
func getBit(buf []byte, ix uint32) bool {
	if ix/8 >= uint32(len(buf)) {
		return false
	}
	return buf[ix/8]&(1<<(ix%8)) != 0
}
