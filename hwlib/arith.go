// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/hdlgen"

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder() *hdlgen.Module {
	m := hdlgen.NewModule("HalfAdder")
	a, b, s, c := hdlgen.Bool(pA), hdlgen.Bool(pB), hdlgen.Bool("s"), hdlgen.Bool("c")
	m.Input(a, b)
	m.Output(s, c)
	m.Assign(s, hdlgen.Xor(a, b))
	m.Assign(c, hdlgen.And(a, b))
	return m
}

// FullAdder returns a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder() *hdlgen.Module {
	m := hdlgen.NewModule("FullAdder")
	a, b, cin := hdlgen.Bool(pA), hdlgen.Bool(pB), hdlgen.Bool("cin")
	s, cout := hdlgen.Bool("s"), hdlgen.Bool("cout")
	m.Input(a, b, cin)
	m.Output(s, cout)
	m.Assign(s, hdlgen.Xor(hdlgen.Xor(a, b), cin))
	m.Assign(cout, hdlgen.Or(hdlgen.And(a, b), hdlgen.And(cin, hdlgen.Xor(a, b))))
	return m
}

// Adder returns a width-bits adder.
//
//	Inputs: a[width], b[width]
//	Outputs: out[width]
//	Function: out = a + b
//
func Adder(width uint) *hdlgen.Module {
	return Gate("Adder", hdlgen.OpAdd, width)
}

// Inc returns a width-bits incrementer.
//
//	Inputs: in[width]
//	Outputs: out[width]
//	Function: out = in + 1
//
func Inc(width uint) *hdlgen.Module {
	m := hdlgen.NewModule(suffix("Inc", width))
	io := ports(width, pIn, pOut)
	m.Input(io[0])
	m.Output(io[1])
	m.Assign(io[1], hdlgen.Add(io[0], hdlgen.Int(1)))
	return m
}
