// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hcldesign builds hdlgen modules from HCL design files.
//
// A design file contains one or more module blocks:
//
//	module "adder" {
//		inputs  = "a[32], b[32], clk"
//		outputs = "o[32]"
//		wires   = "c[32]"
//
//		assign "o" { value = a + b }
//
//		comb {
//			assign "c" { value = a + 1 }
//			when {
//				cond = a == 1
//				assign "o" { value = shl(c, 2) }
//			}
//			otherwise {
//				assign "o" { value = c }
//			}
//		}
//
//		on "clk" { ... }
//	}
//
// Expressions use the HCL native syntax and are converted to hdlgen
// expressions without being evaluated. Arithmetic and comparison operators map
// directly, "!" maps to "~" and the functions shl, shr, and, or, xor and not
// provide the remaining operators. Numbers must be integers; strings are
// emitted verbatim, which allows sized literals like "8'hFF".
//
// Signals listed in wires can be used as operands and destinations but are
// not declared in the rendered module, which only declares its ports. The
// consumer of the generated text must declare them.
//
package hcldesign

import (
	"github.com/db47h/hdlgen"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

var (
	fileSchema = &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "module", LabelNames: []string{"name"}},
		},
	}
	moduleSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "inputs"},
			{Name: "outputs"},
			{Name: "wires"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "assign", LabelNames: []string{"dest"}},
			{Type: "comb"},
			{Type: "on", LabelNames: []string{"clock"}},
		},
	}
	scopeBlocks = []hcl.BlockHeaderSchema{
		{Type: "assign", LabelNames: []string{"dest"}},
		{Type: "when"},
		{Type: "else_when"},
		{Type: "otherwise"},
	}
	scopeSchema  = &hcl.BodySchema{Blocks: scopeBlocks}
	branchSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "cond", Required: true}},
		Blocks:     scopeBlocks,
	}
	assignSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "value", Required: true}},
	}
)

// Parse decodes the HCL design in src. filename is only used in diagnostics.
// The options are passed to every hdlgen.NewModule call.
//
// The returned error wraps the hcl.Diagnostics describing all problems found;
// use errors.Cause to get them.
//
func Parse(src []byte, filename string, opts ...hdlgen.Option) ([]*hdlgen.Module, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, "parse "+filename)
	}
	return decodeFile(f, filename, opts)
}

// LoadFile reads and decodes the HCL design file at path.
//
func LoadFile(path string, opts ...hdlgen.Option) ([]*hdlgen.Module, error) {
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, "parse "+path)
	}
	return decodeFile(f, path, opts)
}

func decodeFile(f *hcl.File, filename string, opts []hdlgen.Option) ([]*hdlgen.Module, error) {
	content, diags := f.Body.Content(fileSchema)
	var ms []*hdlgen.Module
	seen := make(map[string]*hcl.Block)
	for _, b := range content.Blocks {
		name := b.Labels[0]
		if prev := seen[name]; prev != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate module",
				Detail:   "Module " + name + " was already defined at " + prev.DefRange.String() + ".",
				Subject:  b.LabelRanges[0].Ptr(),
			})
			continue
		}
		seen[name] = b
		d := &decoder{symbols: make(map[string]hdlgen.Signal)}
		if m := d.module(b, opts); m != nil {
			ms = append(ms, m)
		}
		diags = append(diags, d.diags...)
	}
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, "decode "+filename)
	}
	return ms, nil
}

// decoder decodes a single module block.
//
type decoder struct {
	symbols map[string]hdlgen.Signal
	diags   hcl.Diagnostics
}

func (d *decoder) errorf(rng hcl.Range, summary, detail string) {
	d.diags = append(d.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	})
}

// guard runs fn and reports a construction error as a diagnostic.
//
func (d *decoder) guard(rng hcl.Range, fn func()) bool {
	if err := hdlgen.Catch(fn); err != nil {
		d.errorf(rng, "Invalid design", err.Error())
		return false
	}
	return true
}

func (d *decoder) module(b *hcl.Block, opts []hdlgen.Option) *hdlgen.Module {
	content, diags := b.Body.Content(moduleSchema)
	d.diags = append(d.diags, diags...)

	var m *hdlgen.Module
	if !d.guard(b.LabelRanges[0], func() { m = hdlgen.NewModule(b.Labels[0], opts...) }) {
		return nil
	}
	if attr := content.Attributes["inputs"]; attr != nil {
		if sigs := d.ports(attr); sigs != nil {
			d.guard(attr.Range, func() { m.Input(sigs...) })
		}
	}
	if attr := content.Attributes["outputs"]; attr != nil {
		if sigs := d.ports(attr); sigs != nil {
			d.guard(attr.Range, func() { m.Output(sigs...) })
		}
	}
	if attr := content.Attributes["wires"]; attr != nil {
		d.ports(attr)
	}

	for _, blk := range content.Blocks {
		switch blk.Type {
		case "assign":
			if dest, val, ok := d.assignment(blk); ok {
				d.guard(blk.DefRange, func() { m.Assign(dest, val) })
			}
		case "comb":
			d.guard(blk.DefRange, func() {
				m.Comb(func(s *hdlgen.Scope) { d.scope(s, blk.Body, scopeSchema) })
			})
		case "on":
			clk, ok := d.lookup(blk.Labels[0], blk.LabelRanges[0])
			if !ok {
				continue
			}
			d.guard(blk.DefRange, func() {
				m.On(clk, func(s *hdlgen.Scope) { d.scope(s, blk.Body, scopeSchema) })
			})
		}
	}
	return m
}

// ports decodes a port specification attribute and adds the signals to the
// symbol table.
//
func (d *decoder) ports(attr *hcl.Attribute) []hdlgen.Signal {
	var spec string
	if diags := gohcl.DecodeExpression(attr.Expr, nil, &spec); diags.HasErrors() {
		d.diags = append(d.diags, diags...)
		return nil
	}
	sigs, err := hdlgen.ParseIO(spec)
	if err != nil {
		d.errorf(attr.Expr.Range(), "Invalid port specification", err.Error())
		return nil
	}
	for _, s := range sigs {
		if _, ok := d.symbols[s.Name()]; ok {
			d.errorf(attr.Expr.Range(), "Duplicate signal", "Signal "+s.Name()+" is already declared.")
			return nil
		}
		d.symbols[s.Name()] = s
	}
	return sigs
}

func (d *decoder) lookup(name string, rng hcl.Range) (hdlgen.Signal, bool) {
	s, ok := d.symbols[name]
	if !ok {
		d.errorf(rng, "Undeclared signal", "Signal "+name+" is not declared in inputs, outputs or wires.")
	}
	return s, ok
}

func (d *decoder) assignment(b *hcl.Block) (hdlgen.Signal, hdlgen.Expr, bool) {
	content, diags := b.Body.Content(assignSchema)
	d.diags = append(d.diags, diags...)
	dest, ok := d.lookup(b.Labels[0], b.LabelRanges[0])
	attr := content.Attributes["value"]
	if !ok || attr == nil {
		return dest, nil, false
	}
	val := d.expr(attr.Expr)
	return dest, val, val != nil
}

// scope decodes the statements of body into s. Blocks are processed in source
// order so that branch chains render as written.
//
func (d *decoder) scope(s *hdlgen.Scope, body hcl.Body, schema *hcl.BodySchema) {
	content, diags := body.Content(schema)
	d.diags = append(d.diags, diags...)
	for _, blk := range content.Blocks {
		switch blk.Type {
		case "assign":
			if dest, val, ok := d.assignment(blk); ok {
				d.guard(blk.DefRange, func() { s.Assign(dest, val) })
			}
		case "when", "else_when":
			c, ok := d.branchCondition(blk)
			if !ok {
				continue
			}
			fn := func(sub *hdlgen.Scope) { d.scope(sub, blk.Body, branchSchema) }
			d.guard(blk.DefRange, func() {
				if blk.Type == "when" {
					s.When(c, fn)
				} else {
					s.ElseWhen(c, fn)
				}
			})
		case "otherwise":
			d.guard(blk.DefRange, func() {
				s.Otherwise(func(sub *hdlgen.Scope) { d.scope(sub, blk.Body, scopeSchema) })
			})
		}
	}
}

func (d *decoder) branchCondition(b *hcl.Block) (hdlgen.Condition, bool) {
	// only the cond attribute is needed here; the body is decoded again
	// with the same schema when the branch is populated.
	content, _, diags := b.Body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "cond", Required: true}},
	})
	if diags.HasErrors() {
		d.diags = append(d.diags, diags...)
		return hdlgen.Condition{}, false
	}
	attr := content.Attributes["cond"]
	e := d.expr(attr.Expr)
	if e == nil {
		return hdlgen.Condition{}, false
	}
	c, ok := e.(hdlgen.Condition)
	if !ok {
		d.errorf(attr.Expr.Range(), "Invalid condition", "A branch condition must be a comparison (==, !=, <, <=, >, >=).")
	}
	return c, ok
}
