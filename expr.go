// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// An Expr is a node in the textual syntax tree of an expression. The set of
// node types is closed: Signal, Literal, UnaryOp, BinaryOp, Condition and
// pointers to them.
//
// Expressions are built bottom-up and never change afterwards. Rendering an
// expression only stringifies it; nothing is ever evaluated.
//
type Expr interface {
	expr()
}

// An Op is an operator token.
//
type Op string

// Supported operators.
//
const (
	OpAdd Op = "+"
	OpSub Op = "-" // also unary minus
	OpMul Op = "*"
	OpDiv Op = "/"
	OpShl Op = "<<"
	OpShr Op = ">>"
	OpAnd Op = "&"
	OpOr  Op = "|"
	OpXor Op = "^"
	OpNot Op = "~" // unary only
	OpEq  Op = "=="
	OpNe  Op = "!="
	OpLt  Op = "<"
	OpLe  Op = "<="
	OpGt  Op = ">"
	OpGe  Op = ">="
)

// Unary returns true if o can be applied to a single operand.
//
func (o Op) Unary() bool {
	return o == OpNot || o == OpSub
}

// Binary returns true if o can be applied to two operands.
//
func (o Op) Binary() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpShl, OpShr, OpAnd, OpOr, OpXor:
		return true
	}
	return o.Relational()
}

// Relational returns true for comparison operators.
//
func (o Op) Relational() bool {
	switch o {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// A Literal is a constant operand, rendered verbatim.
//
type Literal struct {
	Text string
}

// Int returns an integer literal.
//
func Int(v int64) Literal { return Literal{strconv.FormatInt(v, 10)} }

// Str returns a literal rendered as the raw text s, like "8'hFF" or "'0".
//
func Str(s string) Literal { return Literal{s} }

// Sized returns a sized decimal literal "<width>'d<v>".
//
func Sized(width uint, v uint64) Literal {
	if width == 0 {
		fail(ErrZeroWidth, "sized literal %d", v)
	}
	return Literal{strconv.FormatUint(uint64(width), 10) + "'d" + strconv.FormatUint(v, 10)}
}

func (l Literal) String() string { return Repr(l) }

// A UnaryOp applies a unary operator to a single operand.
// It renders as "(<op><x>)".
//
type UnaryOp struct {
	Op Op
	X  Expr
}

// A BinaryOp applies a binary operator to two operands.
// It renders as "(<x> <op> <y>)".
//
type BinaryOp struct {
	Op   Op
	X, Y Expr
}

// A Condition is a comparison used as the predicate of a When or ElseWhen
// branch. It renders exactly like a BinaryOp.
//
type Condition struct {
	Op   Op
	X, Y Expr
}

func (u UnaryOp) String() string   { return Repr(u) }
func (b BinaryOp) String() string  { return Repr(b) }
func (c Condition) String() string { return Repr(c) }

func (Literal) expr()   {}
func (UnaryOp) expr()   {}
func (BinaryOp) expr()  {}
func (Condition) expr() {}

// Unary returns the application of op to x.
// It panics with ErrOperator if op is not a unary operator.
//
func Unary(op Op, x Expr) UnaryOp {
	if !op.Unary() {
		fail(ErrOperator, "%q is not a unary operator", op)
	}
	if x == nil {
		fail(ErrUnfinished, "missing operand for %q", op)
	}
	return UnaryOp{op, x}
}

// Binary returns the application of op to x and y.
// It panics with ErrOperator if op is not a binary operator.
//
func Binary(op Op, x, y Expr) BinaryOp {
	if !op.Binary() {
		fail(ErrOperator, "%q is not a binary operator", op)
	}
	if x == nil || y == nil {
		fail(ErrUnfinished, "missing operand for %q", op)
	}
	return BinaryOp{op, x, y}
}

// Compare returns the comparison of x and y with the relational operator op.
// It panics with ErrOperator if op is not relational.
//
func Compare(op Op, x, y Expr) Condition {
	if !op.Relational() {
		fail(ErrOperator, "%q is not a comparison operator", op)
	}
	if x == nil || y == nil {
		fail(ErrUnfinished, "missing operand for %q", op)
	}
	return Condition{op, x, y}
}

// Add returns (x + y).
func Add(x, y Expr) BinaryOp { return Binary(OpAdd, x, y) }

// Sub returns (x - y).
func Sub(x, y Expr) BinaryOp { return Binary(OpSub, x, y) }

// Mul returns (x * y).
func Mul(x, y Expr) BinaryOp { return Binary(OpMul, x, y) }

// Div returns (x / y).
func Div(x, y Expr) BinaryOp { return Binary(OpDiv, x, y) }

// Shl returns (x << y).
func Shl(x, y Expr) BinaryOp { return Binary(OpShl, x, y) }

// Shr returns (x >> y).
func Shr(x, y Expr) BinaryOp { return Binary(OpShr, x, y) }

// And returns the bitwise (x & y).
func And(x, y Expr) BinaryOp { return Binary(OpAnd, x, y) }

// Or returns the bitwise (x | y).
func Or(x, y Expr) BinaryOp { return Binary(OpOr, x, y) }

// Xor returns the bitwise (x ^ y).
func Xor(x, y Expr) BinaryOp { return Binary(OpXor, x, y) }

// Not returns the bitwise complement (~x).
func Not(x Expr) UnaryOp { return Unary(OpNot, x) }

// Neg returns (-x).
func Neg(x Expr) UnaryOp { return Unary(OpSub, x) }

// Eq returns the condition (x == y).
func Eq(x, y Expr) Condition { return Compare(OpEq, x, y) }

// Ne returns the condition (x != y).
func Ne(x, y Expr) Condition { return Compare(OpNe, x, y) }

// Lt returns the condition (x < y).
func Lt(x, y Expr) Condition { return Compare(OpLt, x, y) }

// Le returns the condition (x <= y).
func Le(x, y Expr) Condition { return Compare(OpLe, x, y) }

// Gt returns the condition (x > y).
func Gt(x, y Expr) Condition { return Compare(OpGt, x, y) }

// Ge returns the condition (x >= y).
func Ge(x, y Expr) Condition { return Compare(OpGe, x, y) }

// Repr returns the textual form of e, fully parenthesized at every operator
// application.
//
// Pointers to nodes render like the nodes they point to.
// Rendering a placeholder (a nil Expr or node pointer, or a zero value of any
// node type) is a builder defect and panics with ErrUnfinished.
//
func Repr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case nil:
		fail(ErrUnfinished, "nil expression")
	case Signal:
		if e.name == "" {
			fail(ErrUnfinished, "unnamed signal")
		}
		b.WriteString(e.name)
	case Literal:
		if e.Text == "" {
			fail(ErrUnfinished, "empty literal")
		}
		b.WriteString(e.Text)
	case UnaryOp:
		if e.Op == "" {
			fail(ErrUnfinished, "unary operation without operator")
		}
		b.WriteByte('(')
		b.WriteString(string(e.Op))
		writeExpr(b, e.X)
		b.WriteByte(')')
	case BinaryOp:
		writeInfix(b, e.Op, e.X, e.Y)
	case Condition:
		writeInfix(b, e.Op, e.X, e.Y)
	case *Signal:
		if e == nil {
			fail(ErrUnfinished, "nil signal")
		}
		writeExpr(b, *e)
	case *Literal:
		if e == nil {
			fail(ErrUnfinished, "nil literal")
		}
		writeExpr(b, *e)
	case *UnaryOp:
		if e == nil {
			fail(ErrUnfinished, "nil unary operation")
		}
		writeExpr(b, *e)
	case *BinaryOp:
		if e == nil {
			fail(ErrUnfinished, "nil binary operation")
		}
		writeExpr(b, *e)
	case *Condition:
		if e == nil {
			fail(ErrUnfinished, "nil condition")
		}
		writeExpr(b, *e)
	default:
		panic(errors.Errorf("unsupported expression type %T", e))
	}
}

func writeInfix(b *strings.Builder, op Op, x, y Expr) {
	if op == "" {
		fail(ErrUnfinished, "binary operation without operator")
	}
	b.WriteByte('(')
	writeExpr(b, x)
	b.WriteByte(' ')
	b.WriteString(string(op))
	b.WriteByte(' ')
	writeExpr(b, y)
	b.WriteByte(')')
}
