// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// A Module is a described hardware block: a name, declared inputs and
// outputs, continuous assignments and always blocks.
//
// A Module is mutated only through Input, Output, Assign, Add, Begin, Comb and
// On. It can be rendered any number of times.
//
type Module struct {
	name    string
	inputs  map[string]Signal
	outputs map[string]Signal
	assigns assignments
	scopes  []*Scope
	log     *slog.Logger
}

// NewModule returns a new empty module. It panics with ErrInvalidName if name
// is not a valid identifier.
//
func NewModule(name string, opts ...Option) *Module {
	if !validName(name) {
		fail(ErrInvalidName, "module name %q", name)
	}
	m := &Module{
		name:    name,
		inputs:  make(map[string]Signal),
		outputs: make(map[string]Signal),
		assigns: make(assignments),
		log:     discard,
	}
	for _, o := range opts {
		o(m)
	}
	m.log = m.log.With("module", name)
	return m
}

// Name returns the module name.
//
func (m *Module) Name() string { return m.name }

func (m *Module) owner() string { return "module " + strconv.Quote(m.name) }

// Input declares the given signals as module inputs.
//
// It panics with ErrDuplicate if a signal is already declared as an input and
// with ErrConflict if it is declared as an output.
//
func (m *Module) Input(sigs ...Signal) {
	for _, s := range sigs {
		m.declare(s, m.inputs, m.outputs, "input")
	}
}

// Output declares the given signals as module outputs.
//
// It panics with ErrDuplicate if a signal is already declared as an output and
// with ErrConflict if it is declared as an input.
//
func (m *Module) Output(sigs ...Signal) {
	for _, s := range sigs {
		m.declare(s, m.outputs, m.inputs, "output")
	}
}

func (m *Module) declare(s Signal, set, other map[string]Signal, dir string) {
	if s.name == "" {
		fail(ErrInvalidName, "unnamed %s in %s", dir, m.owner())
	}
	if s.width == 0 {
		fail(ErrZeroWidth, "%s %q in %s", dir, s.name, m.owner())
	}
	if _, ok := set[s.name]; ok {
		fail(ErrDuplicate, "%s %q in %s", dir, s.name, m.owner())
	}
	if _, ok := other[s.name]; ok {
		fail(ErrConflict, "%s %q in %s is already declared with the opposite direction", dir, s.name, m.owner())
	}
	set[s.name] = s
	m.log.Debug("declare", "dir", dir, "signal", s.name, "width", s.width)
}

// Lookup returns the port with the given name.
//
func (m *Module) Lookup(name string) (Signal, bool) {
	if s, ok := m.inputs[name]; ok {
		return s, true
	}
	s, ok := m.outputs[name]
	return s, ok
}

// Inputs returns the module inputs sorted by name.
//
func (m *Module) Inputs() []Signal { return sortedSignals(m.inputs) }

// Outputs returns the module outputs sorted by name.
//
func (m *Module) Outputs() []Signal { return sortedSignals(m.outputs) }

func sortedSignals(set map[string]Signal) []Signal {
	out := make([]Signal, 0, len(set))
	for _, k := range slices.Sorted(maps.Keys(set)) {
		out = append(out, set[k])
	}
	return out
}

// Assign adds the continuous assignment "assign dest = e;" to the module.
// It panics with ErrDuplicate if dest is already assigned at module level and
// with ErrOperator if e is a Condition.
//
func (m *Module) Assign(dest Signal, e Expr) {
	checkValue(e, dest, m.owner())
	m.add(NewAssignment(dest, e, true))
}

// Add adds a as a continuous assignment. Module level assignments are always
// blocking.
//
func (m *Module) Add(a Assignment) {
	checkValue(a.Value, a.Dest, m.owner())
	a.Blocking = true
	m.add(a)
}

// Begin reserves dest for a continuous assignment whose value will be set by
// calling Finish on the returned Pending.
//
func (m *Module) Begin(dest Signal) Pending {
	return Pending{m.add(Assignment{Dest: dest, Blocking: true})}
}

func (m *Module) add(a Assignment) *Assignment {
	p := m.assigns.add(a, m.owner())
	m.log.Debug("assign", "dest", a.Dest.name)
	return p
}

// Comb opens an always_comb block. fn receives the new scope and populates it;
// the scope is attached to the module once fn returns. From then on, adding
// to the scope panics with ErrSealed.
//
func (m *Module) Comb(fn func(s *Scope)) {
	s := newScope(AlwaysComb, false, m.owner(), m.log)
	fn(s)
	s.done = true
	m.scopes = append(m.scopes, s)
	m.log.Debug("scope", "kind", AlwaysComb.String())
}

// On opens an always_ff block triggered on the rising edge of clk.
// All assignments within the block and its branches are non-blocking.
//
func (m *Module) On(clk Signal, fn func(s *Scope)) {
	if clk.name == "" {
		fail(ErrInvalidName, "unnamed clock in %s", m.owner())
	}
	s := newScope(Posedge, true, m.owner(), m.log)
	s.clock = clk
	fn(s)
	s.done = true
	m.scopes = append(m.scopes, s)
	m.log.Debug("scope", "kind", Posedge.String(), "clock", clk.name)
}

// Scopes returns the top-level scopes in construction order. They are sealed
// and can only be inspected.
//
func (m *Module) Scopes() []*Scope { return slices.Clone(m.scopes) }

// Render returns the SystemVerilog text of the module:
//
//	module <name>();
//	input logic [W-1:0] <name>;    // sorted by name
//	output logic [W-1:0] <name>;   // sorted by name
//	assign <dest> = <expr>;        // sorted by destination
//	                               // each always block, surrounded by blank lines
//	endmodule
//
// The output has no trailing newline.
//
func (m *Module) Render() string {
	var b strings.Builder
	m.write(&b)
	m.log.Debug("render", "bytes", b.Len(), "scopes", len(m.scopes))
	return b.String()
}

func (m *Module) write(b *strings.Builder) {
	b.WriteString("module ")
	b.WriteString(m.name)
	b.WriteString("();\n")
	for _, s := range m.Inputs() {
		b.WriteString("input ")
		b.WriteString(s.Decl())
		b.WriteString(";\n")
	}
	for _, s := range m.Outputs() {
		b.WriteString("output ")
		b.WriteString(s.Decl())
		b.WriteString(";\n")
	}
	for _, k := range slices.Sorted(maps.Keys(m.assigns)) {
		b.WriteString("assign ")
		m.assigns[k].write(b)
		b.WriteByte('\n')
	}
	for _, s := range m.scopes {
		b.WriteByte('\n')
		s.write(b)
		b.WriteByte('\n')
	}
	b.WriteString("endmodule")
}

// WriteTo writes the rendered module to w. The whole text is rendered before
// anything is written, so a rendering error never produces partial output.
//
func (m *Module) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.Render())
	return int64(n), err
}
