// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import "strings"

// An Assignment binds a destination signal to an expression.
//
// Blocking assignments render as "<dest> = <expr>;", non-blocking ones as
// "<dest> <= <expr>;". The widths of the destination and expression are not
// checked.
//
type Assignment struct {
	Dest     Signal
	Value    Expr
	Blocking bool
}

// NewAssignment returns a new assignment of e to dest.
//
func NewAssignment(dest Signal, e Expr, blocking bool) Assignment {
	return Assignment{Dest: dest, Value: e, Blocking: blocking}
}

// Render returns the statement form of a, without a trailing newline.
// It panics with ErrUnfinished if the value of a has not been set.
//
func (a Assignment) Render() string {
	var b strings.Builder
	a.write(&b)
	return b.String()
}

func (a *Assignment) write(b *strings.Builder) {
	if a.Value == nil {
		fail(ErrUnfinished, "assignment to %q was never finished", a.Dest.name)
	}
	b.WriteString(a.Dest.name)
	if a.Blocking {
		b.WriteString(" = ")
	} else {
		b.WriteString(" <= ")
	}
	writeExpr(b, a.Value)
	b.WriteByte(';')
}

// A Pending is an assignment whose destination is reserved but whose value
// is not known yet. Rendering its container before Finish has been called
// panics with ErrUnfinished.
//
type Pending struct {
	a *Assignment
}

// Finish sets the value of the pending assignment. It panics if called twice.
//
func (p Pending) Finish(e Expr) {
	if p.a.Value != nil {
		fail(ErrDuplicate, "assignment to %q already finished", p.a.Dest.name)
	}
	checkValue(e, p.a.Dest, "pending assignment")
	p.a.Value = e
}

// checkValue panics if e cannot be the value of an assignment to dest.
// Conditions only guard branches.
//
func checkValue(e Expr, dest Signal, owner string) {
	switch e.(type) {
	case nil:
		fail(ErrUnfinished, "nil value for %q in %s", dest.name, owner)
	case Condition, *Condition:
		fail(ErrOperator, "condition assigned to %q in %s", dest.name, owner)
	}
}

// assignments is a set of assignments keyed by destination name.
//
type assignments map[string]*Assignment

// add adds a to the set. It panics with ErrDuplicate if the destination is
// already assigned. owner is used in error messages.
//
func (as assignments) add(a Assignment, owner string) *Assignment {
	if a.Dest.name == "" {
		fail(ErrInvalidName, "assignment without destination in %s", owner)
	}
	if _, ok := as[a.Dest.name]; ok {
		fail(ErrDuplicate, "destination %q in %s", a.Dest.name, owner)
	}
	p := &a
	as[a.Dest.name] = p
	return p
}
