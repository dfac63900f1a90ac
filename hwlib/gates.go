// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable module generators for hdlgen.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package hwlib

import (
	"strconv"

	"github.com/db47h/hdlgen"
)

// common port names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
	pClk = "clk"
	pRst = "rst"
)

// ports returns signals of the given width for each name.
func ports(width uint, names ...string) []hdlgen.Signal {
	s := make([]hdlgen.Signal, len(names))
	for i, n := range names {
		s[i] = hdlgen.NewSignal(n, width)
	}
	return s
}

func suffix(name string, width uint) string {
	if width == 1 {
		return name
	}
	return name + strconv.FormatUint(uint64(width), 10)
}

// Gate returns a module applying the binary operator op bitwise on two
// inputs.
//
//	Inputs: a[width], b[width]
//	Outputs: out[width]
//	Function: out = a op b
//
func Gate(name string, op hdlgen.Op, width uint) *hdlgen.Module {
	return gate(name, width, func(a, b hdlgen.Expr) hdlgen.Expr { return hdlgen.Binary(op, a, b) })
}

func gate(name string, width uint, fn func(a, b hdlgen.Expr) hdlgen.Expr) *hdlgen.Module {
	m := hdlgen.NewModule(suffix(name, width))
	io := ports(width, pA, pB, pOut)
	m.Input(io[0], io[1])
	m.Output(io[2])
	m.Assign(io[2], fn(io[0], io[1]))
	return m
}

// Not returns an inverter.
//
//	Inputs: in[width]
//	Outputs: out[width]
//	Function: out = ~in
//
func Not(width uint) *hdlgen.Module {
	m := hdlgen.NewModule(suffix("Not", width))
	io := ports(width, pIn, pOut)
	m.Input(io[0])
	m.Output(io[1])
	m.Assign(io[1], hdlgen.Not(io[0]))
	return m
}

// And returns an AND gate.
//
//	Function: out = a & b
//
func And(width uint) *hdlgen.Module { return Gate("And", hdlgen.OpAnd, width) }

// Or returns an OR gate.
//
//	Function: out = a | b
//
func Or(width uint) *hdlgen.Module { return Gate("Or", hdlgen.OpOr, width) }

// Xor returns a XOR gate.
//
//	Function: out = a ^ b
//
func Xor(width uint) *hdlgen.Module { return Gate("Xor", hdlgen.OpXor, width) }

// Nand returns a NAND gate.
//
//	Function: out = ~(a & b)
//
func Nand(width uint) *hdlgen.Module {
	return gate("Nand", width, func(a, b hdlgen.Expr) hdlgen.Expr { return hdlgen.Not(hdlgen.And(a, b)) })
}

// Nor returns a NOR gate.
//
//	Function: out = ~(a | b)
//
func Nor(width uint) *hdlgen.Module {
	return gate("Nor", width, func(a, b hdlgen.Expr) hdlgen.Expr { return hdlgen.Not(hdlgen.Or(a, b)) })
}

// Xnor returns a XNOR gate.
//
//	Function: out = ~(a ^ b)
//
func Xnor(width uint) *hdlgen.Module {
	return gate("Xnor", width, func(a, b hdlgen.Expr) hdlgen.Expr { return hdlgen.Not(hdlgen.Xor(a, b)) })
}
