/*
Package hdlgen provides the necessary tools to describe digital logic modules
using Go as a hardware description language and render them as synthesizable
SystemVerilog text.

A module is built from Signals, combined into expressions with named builder
functions (Add, Sub, Eq, ...), bound to destinations by assignments and grouped
into scopes (always_comb, always_ff and if/else branches). Rendering walks the
resulting tree and only stringifies it: expressions are never evaluated.

The API is designed to mimmic a real hardware description language. As a
result, it relies heavily on closures:

	m := hdlgen.NewModule("counter")
	clk, rst, q := hdlgen.Bool("clk"), hdlgen.Bool("rst"), hdlgen.NewSignal("q", 8)
	m.Input(clk, rst)
	m.Output(q)
	m.On(clk, func(s *hdlgen.Scope) {
		s.When(hdlgen.Eq(rst, hdlgen.Int(1)), func(s *hdlgen.Scope) {
			s.Assign(q, hdlgen.Int(0))
		}).Otherwise(func(s *hdlgen.Scope) {
			s.Assign(q, hdlgen.Add(q, hdlgen.Int(1)))
		})
	})
	fmt.Println(m.Render())

Construction mistakes (duplicate ports or destinations, malformed identifiers,
zero-width signals) are programming errors and panic with an error value. Use
Catch to turn them into a returned error.

*/
package hdlgen
