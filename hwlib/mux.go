// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"math/bits"
	"strconv"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

// Mux returns a multiplexer.
//
//	Inputs: a[width], b[width], sel
//	Outputs: out[width]
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(width uint) *hdlgen.Module {
	m := hdlgen.NewModule(suffix("Mux", width))
	io := ports(width, pA, pB, pOut)
	sel := hdlgen.Bool(pSel)
	m.Input(io[0], io[1], sel)
	m.Output(io[2])
	m.Comb(func(s *hdlgen.Scope) {
		s.When(hdlgen.Eq(sel, hdlgen.Int(0)), func(s *hdlgen.Scope) {
			s.Assign(io[2], io[0])
		}).Otherwise(func(s *hdlgen.Scope) {
			s.Assign(io[2], io[1])
		})
	})
	return m
}

// DMux returns a demultiplexer.
//
//	Inputs: in[width], sel
//	Outputs: a[width], b[width]
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(width uint) *hdlgen.Module {
	m := hdlgen.NewModule(suffix("DMux", width))
	io := ports(width, pIn, pA, pB)
	sel := hdlgen.Bool(pSel)
	m.Input(io[0], sel)
	m.Output(io[1], io[2])
	m.Comb(func(s *hdlgen.Scope) {
		s.When(hdlgen.Eq(sel, hdlgen.Int(0)), func(s *hdlgen.Scope) {
			s.Assign(io[1], io[0])
			s.Assign(io[2], hdlgen.Int(0))
		}).Otherwise(func(s *hdlgen.Scope) {
			s.Assign(io[1], hdlgen.Int(0))
			s.Assign(io[2], io[0])
		})
	})
	return m
}

// MuxNWay returns a n-way multiplexer. It panics if n is less than 2.
//
//	Inputs: in0[width] ... in<n-1>[width], sel[log2(n)]
//	Outputs: out[width]
//	Function: out = in<sel>
//
// The last input is selected for any out of range value of sel.
//
func MuxNWay(n int, width uint) *hdlgen.Module {
	if n < 2 {
		panic(errors.Errorf("MuxNWay: %d inputs, need at least 2", n))
	}
	m := hdlgen.NewModule(suffix("Mux"+strconv.Itoa(n)+"Way", width))
	ins := make([]hdlgen.Signal, n)
	for i := range ins {
		ins[i] = hdlgen.NewSignal(pIn+strconv.Itoa(i), width)
	}
	sel := hdlgen.NewSignal(pSel, uint(bits.Len(uint(n-1))))
	out := hdlgen.NewSignal(pOut, width)
	m.Input(ins...)
	m.Input(sel)
	m.Output(out)
	m.Comb(func(s *hdlgen.Scope) {
		s.When(hdlgen.Eq(sel, hdlgen.Int(0)), func(s *hdlgen.Scope) {
			s.Assign(out, ins[0])
		})
		for i := 1; i < n-1; i++ {
			in := ins[i]
			s.ElseWhen(hdlgen.Eq(sel, hdlgen.Int(int64(i))), func(s *hdlgen.Scope) {
				s.Assign(out, in)
			})
		}
		s.Otherwise(func(s *hdlgen.Scope) {
			s.Assign(out, ins[n-1])
		})
	})
	return m
}
