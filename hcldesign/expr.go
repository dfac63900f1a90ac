// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hcldesign

import (
	"math/big"

	"github.com/db47h/hdlgen"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

var binaryOps = map[*hclsyntax.Operation]hdlgen.Op{
	hclsyntax.OpAdd:                hdlgen.OpAdd,
	hclsyntax.OpSubtract:           hdlgen.OpSub,
	hclsyntax.OpMultiply:           hdlgen.OpMul,
	hclsyntax.OpDivide:             hdlgen.OpDiv,
	hclsyntax.OpEqual:              hdlgen.OpEq,
	hclsyntax.OpNotEqual:           hdlgen.OpNe,
	hclsyntax.OpLessThan:           hdlgen.OpLt,
	hclsyntax.OpLessThanOrEqual:    hdlgen.OpLe,
	hclsyntax.OpGreaterThan:        hdlgen.OpGt,
	hclsyntax.OpGreaterThanOrEqual: hdlgen.OpGe,
}

// functions maps function names to the operator they apply and their arity.
var functions = map[string]struct {
	op    hdlgen.Op
	arity int
}{
	"shl": {hdlgen.OpShl, 2},
	"shr": {hdlgen.OpShr, 2},
	"and": {hdlgen.OpAnd, 2},
	"or":  {hdlgen.OpOr, 2},
	"xor": {hdlgen.OpXor, 2},
	"not": {hdlgen.OpNot, 1},
}

// expr converts an HCL native syntax expression into an hdlgen expression.
// It returns nil after recording a diagnostic if e cannot be converted.
//
func (d *decoder) expr(e hcl.Expression) hdlgen.Expr {
	switch e := e.(type) {
	case *hclsyntax.ParenthesesExpr:
		return d.expr(e.Expression)

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			d.errorf(e.SrcRange, "Unsupported reference", "Only plain signal names can be referenced.")
			return nil
		}
		s, ok := d.lookup(e.Traversal.RootName(), e.SrcRange)
		if !ok {
			return nil
		}
		return s

	case *hclsyntax.LiteralValueExpr:
		return d.literal(e.Val, e.SrcRange)

	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			d.errorf(e.SrcRange, "Unsupported template", "String templates cannot be used in expressions.")
			return nil
		}
		v, diags := e.Value(nil)
		if diags.HasErrors() {
			d.diags = append(d.diags, diags...)
			return nil
		}
		if v.AsString() == "" {
			d.errorf(e.SrcRange, "Empty literal", "A string literal must not be empty.")
			return nil
		}
		return hdlgen.Str(v.AsString())

	case *hclsyntax.UnaryOpExpr:
		x := d.expr(e.Val)
		if x == nil {
			return nil
		}
		switch e.Op {
		case hclsyntax.OpNegate:
			return hdlgen.Neg(x)
		case hclsyntax.OpLogicalNot:
			return hdlgen.Not(x)
		}

	case *hclsyntax.BinaryOpExpr:
		op, ok := binaryOps[e.Op]
		if !ok {
			break
		}
		x, y := d.expr(e.LHS), d.expr(e.RHS)
		if x == nil || y == nil {
			return nil
		}
		if op.Relational() {
			return hdlgen.Compare(op, x, y)
		}
		return hdlgen.Binary(op, x, y)

	case *hclsyntax.FunctionCallExpr:
		return d.call(e)
	}

	d.errorf(e.Range(), "Unsupported expression", "This kind of expression cannot be converted to a hardware description.")
	return nil
}

func (d *decoder) call(e *hclsyntax.FunctionCallExpr) hdlgen.Expr {
	fn, ok := functions[e.Name]
	if !ok {
		d.errorf(e.NameRange, "Unknown function", "There is no function named "+e.Name+".")
		return nil
	}
	if len(e.Args) != fn.arity || e.ExpandFinal {
		d.errorf(e.Range(), "Wrong number of arguments", "Function "+e.Name+" takes exactly "+plural(fn.arity)+".")
		return nil
	}
	args := make([]hdlgen.Expr, len(e.Args))
	for i, a := range e.Args {
		if args[i] = d.expr(a); args[i] == nil {
			return nil
		}
	}
	if fn.arity == 1 {
		return hdlgen.Unary(fn.op, args[0])
	}
	return hdlgen.Binary(fn.op, args[0], args[1])
}

func plural(n int) string {
	if n == 1 {
		return "one argument"
	}
	return "two arguments"
}

func (d *decoder) literal(v cty.Value, rng hcl.Range) hdlgen.Expr {
	switch {
	case v.IsNull() || !v.IsKnown():
	case v.Type() == cty.Number:
		bf := v.AsBigFloat()
		if !bf.IsInt() {
			d.errorf(rng, "Invalid number", "Only integer literals are supported.")
			return nil
		}
		i, acc := bf.Int64()
		if acc != big.Exact {
			d.errorf(rng, "Invalid number", "Integer literal out of range.")
			return nil
		}
		return hdlgen.Int(i)
	case v.Type() == cty.Bool:
		if v.True() {
			return hdlgen.Int(1)
		}
		return hdlgen.Int(0)
	}
	d.errorf(rng, "Unsupported literal", "Only numbers, booleans and strings can be used as literals.")
	return nil
}
