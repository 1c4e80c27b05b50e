//
// main.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Command yao2pc runs the generator and the evaluator of the
// garbling core in process over a scripted ripple-carry adder,
// playing the external collaborators itself: it establishes the OT
// key vectors, transports the staged bytes, and audits the
// generator-input commitments afterwards.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"

	"github.com/markkurossi/yao2pc/env"
	"github.com/markkurossi/yao2pc/garble"
	"github.com/markkurossi/yao2pc/wire"
)

func main() {
	log.SetFlags(0)

	aFlag := flag.Uint64("a", 21, "generator input")
	bFlag := flag.Uint64("b", 21, "evaluator input")
	bits := flag.Int("bits", 32, "adder width in bits")
	seed := flag.String("seed", "yao2pc demo", "garbling seed")
	verbose := flag.Bool("v", false, "verbose output")
	flag.Parse()

	if *bits < 1 || *bits > 63 {
		log.Fatalf("invalid adder width %d", *bits)
	}

	timing := garble.NewTiming()
	cfg := &env.Config{}

	// The OT collaborator: one base key per input wire, generator
	// inputs first.
	keys := make([]wire.Label, 2**bits)
	for i := range keys {
		var err error
		keys[i], err = wire.NewLabel(rand.Reader)
		if err != nil {
			log.Fatal(err)
		}
	}

	gen, err := garble.NewGenerator(cfg, 0, keys, uint64Bits(*aFlag, *bits),
		[]byte(*seed), *bits, *bits)
	if err != nil {
		log.Fatal(err)
	}

	// The evaluator's OT output: the label for its actual input bit,
	// per evaluator-input wire.
	evlKeys := make([]wire.Label, len(keys))
	copy(evlKeys, keys)
	for i := 0; i < *bits; i++ {
		pair := wire.NewPair(keys[*bits+i], gen.R())
		evlKeys[*bits+i] = pair.Select(*bFlag&(1<<i) != 0)
	}

	evl, err := garble.NewEvaluator(cfg, 0, evlKeys,
		uint64Bits(*aFlag, *bits), uint64Bits(*bFlag, *bits),
		[]byte(*seed+"/evl"), *bits, *bits)
	if err != nil {
		log.Fatal(err)
	}
	evl.SetConstKey(0, gen.ConstKey(0))
	evl.SetConstKey(1, gen.ConstKey(1))
	timing.Sample("Init", nil)

	gates := adder(*bits)
	if *verbose {
		fmt.Printf(" - %s: garbling %d gates...\n", gen.IDString(),
			len(gates))
	}
	script := garble.NewScript(gates)
	if err := garble.Run(script, gen); err != nil {
		log.Fatal(err)
	}
	timing.Sample("Garble", nil)

	data := gen.Extract()
	evl.Deliver(data)
	timing.Sample("Xfer", []string{garble.FileSize(len(data)).String()})

	if *verbose {
		fmt.Printf(" - %s: evaluating...\n", evl.IDString())
	}
	script.Reset()
	if err := garble.Run(script, evl); err != nil {
		log.Fatal(err)
	}
	if err := gen.TrimOutputs(); err != nil {
		log.Fatal(err)
	}
	if err := evl.TrimOutputs(); err != nil {
		log.Fatal(err)
	}
	timing.Sample("Evaluate", nil)

	// The cut-and-choose audit of this replica.
	err = garble.VerifyDecommitments(gen.Commitments(),
		gen.Decommitments(), cfg.KeyBits())
	if err != nil {
		log.Fatalf("replica inconsistent: %s", err)
	}
	timing.Sample("Audit", nil)

	var sum uint64
	for i := 0; i <= *bits; i++ {
		if bit(evl.EvlOut(), i) {
			sum |= 1 << i
		}
	}
	fmt.Printf("%d + %d = %d\n", *aFlag, *bFlag, sum)

	if *verbose {
		timing.Print(garble.IOStats{
			Sent:  gen.Stats.Sent,
			Recvd: evl.Stats.Recvd,
		})
	}
}

// adder builds a ripple-carry adder: the generator's value in wires
// 0..n-1, the evaluator's in n..2n-1, carry-in from the constant 0
// wire, sum and carry-out to the evaluator.
func adder(n int) []garble.Gate {
	var gates []garble.Gate

	for i := 0; i < n; i++ {
		gates = append(gates, garble.Gate{
			Op: garble.GenInput, Output: uint32(i),
		})
	}
	for i := 0; i < n; i++ {
		gates = append(gates, garble.Gate{
			Op: garble.EvlInput, Output: uint32(n + i),
		})
	}

	next := uint32(2 * n)
	carry := next
	gates = append(gates, garble.Gate{
		Op: garble.Const, Input0: 0, Output: carry,
	})
	next++

	var sums []uint32
	for i := 0; i < n; i++ {
		a := uint32(i)
		b := uint32(n + i)

		axb := next
		next++
		sum := next
		next++
		ab := next
		next++
		cab := next
		next++
		cout := next
		next++

		gates = append(gates,
			garble.Gate{Op: garble.XOR, Input0: a, Input1: b, Output: axb},
			garble.Gate{Op: garble.XOR, Input0: axb, Input1: carry,
				Output: sum},
			garble.Gate{Op: garble.AND, Input0: a, Input1: b, Output: ab},
			garble.Gate{Op: garble.AND, Input0: axb, Input1: carry,
				Output: cab},
			garble.Gate{Op: garble.OR, Input0: ab, Input1: cab,
				Output: cout})
		sums = append(sums, sum)
		carry = cout
	}

	for _, sum := range sums {
		gates = append(gates, garble.Gate{
			Op: garble.EvlOutput, Input0: sum,
		})
	}
	gates = append(gates, garble.Gate{
		Op: garble.EvlOutput, Input0: carry,
	})
	return gates
}

func uint64Bits(val uint64, bits int) []byte {
	buf := make([]byte, (bits+7)/8)
	for i := 0; i < bits; i++ {
		if val&(1<<i) != 0 {
			buf[i/8] |= 1 << (i % 8)
		}
	}
	return buf
}

func bit(buf []byte, ix int) bool {
	if ix/8 >= len(buf) {
		return false
	}
	return buf[ix/8]&(1<<(ix%8)) != 0
}
