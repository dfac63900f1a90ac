// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/hdlgen"

// DFF returns a clocked data flip flop.
//
//	Inputs: clk, in[width]
//	Outputs: out[width]
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(width uint) *hdlgen.Module {
	m := hdlgen.NewModule(suffix("DFF", width))
	clk := hdlgen.Bool(pClk)
	io := ports(width, pIn, pOut)
	m.Input(clk, io[0])
	m.Output(io[1])
	m.On(clk, func(s *hdlgen.Scope) {
		s.Assign(io[1], io[0])
	})
	return m
}

// Register returns a register with synchronous reset and load enable.
//
//	Inputs: clk, rst, load, in[width]
//	Outputs: out[width]
//	Function: if rst { out(t) = 0 } else if load { out(t) = in(t-1) }
//
func Register(width uint) *hdlgen.Module {
	m := hdlgen.NewModule(suffix("Register", width))
	clk, rst, load := hdlgen.Bool(pClk), hdlgen.Bool(pRst), hdlgen.Bool("load")
	io := ports(width, pIn, pOut)
	m.Input(clk, rst, load, io[0])
	m.Output(io[1])
	m.On(clk, func(s *hdlgen.Scope) {
		s.When(hdlgen.Eq(rst, hdlgen.Int(1)), func(s *hdlgen.Scope) {
			s.Assign(io[1], hdlgen.Int(0))
		}).ElseWhen(hdlgen.Eq(load, hdlgen.Int(1)), func(s *hdlgen.Scope) {
			s.Assign(io[1], io[0])
		})
	})
	return m
}

// Counter returns a program counter.
//
//	Inputs: clk, rst, load, inc, in[width]
//	Outputs: out[width]
//	Function: if rst { out(t) = 0 }
//	          else if load { out(t) = in(t-1) }
//	          else if inc { out(t) = out(t-1) + 1 }
//
func Counter(width uint) *hdlgen.Module {
	m := hdlgen.NewModule(suffix("Counter", width))
	clk, rst, load, inc := hdlgen.Bool(pClk), hdlgen.Bool(pRst), hdlgen.Bool("load"), hdlgen.Bool("inc")
	io := ports(width, pIn, pOut)
	m.Input(clk, rst, load, inc, io[0])
	m.Output(io[1])
	m.On(clk, func(s *hdlgen.Scope) {
		s.When(hdlgen.Eq(rst, hdlgen.Int(1)), func(s *hdlgen.Scope) {
			s.Assign(io[1], hdlgen.Int(0))
		}).ElseWhen(hdlgen.Eq(load, hdlgen.Int(1)), func(s *hdlgen.Scope) {
			s.Assign(io[1], io[0])
		}).ElseWhen(hdlgen.Eq(inc, hdlgen.Int(1)), func(s *hdlgen.Scope) {
			s.Assign(io[1], hdlgen.Add(io[1], hdlgen.Int(1)))
		})
	})
	return m
}
