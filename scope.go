// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// A Kind identifies the header of a Scope.
//
type Kind int

// Scope kinds.
//
const (
	AlwaysComb Kind = iota // always_comb begin
	Posedge                // always_ff @(posedge <clock>) begin
	When                   // if (<cond>) begin
	ElseWhen               // else if (<cond>) begin
	Otherwise              // else begin
)

var kindNames = [...]string{"always_comb", "always_ff", "if", "else if", "else"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// A Scope is a block of assignments guarded by a combinational, clocked or
// conditional header. Scopes are only created by Module.Comb, Module.On and the
// branching methods of Scope; the kind of a scope never changes after creation.
//
// Assignments within a clocked scope and all its descendants are
// non-blocking. Within a combinational scope, they are blocking.
//
// A scope can only be populated by the function it was passed to. Once that
// function returns, the scope is sealed: any further Assign, Add, Begin or
// branch panics with ErrSealed. Pending assignments reserved before can still
// be finished.
//
type Scope struct {
	kind    Kind
	clock   Signal
	cond    Condition
	sync    bool
	assigns assignments
	scopes  []*Scope
	owner   string
	log     *slog.Logger
	done    bool
}

func newScope(kind Kind, sync bool, owner string, log *slog.Logger) *Scope {
	return &Scope{
		kind:    kind,
		sync:    sync,
		assigns: make(assignments),
		owner:   owner,
		log:     log,
	}
}

// Kind returns the kind of s.
//
func (s *Scope) Kind() Kind { return s.kind }

// Sync returns true if s is within a clocked block.
//
func (s *Scope) Sync() bool { return s.sync }

// Scopes returns the child scopes of s in construction order.
//
func (s *Scope) Scopes() []*Scope { return slices.Clone(s.scopes) }

// Assign assigns e to dest. It panics with ErrDuplicate if dest has already
// been assigned in this scope and with ErrOperator if e is a Condition.
//
func (s *Scope) Assign(dest Signal, e Expr) {
	checkValue(e, dest, s.owner)
	s.add(NewAssignment(dest, e, !s.sync))
}

// Add adds the assignment a to s. Its Blocking flag is overridden to match
// the scope: non-blocking in clocked scopes, blocking otherwise.
//
func (s *Scope) Add(a Assignment) {
	checkValue(a.Value, a.Dest, s.owner)
	a.Blocking = !s.sync
	s.add(a)
}

// Begin reserves dest in s and returns a Pending assignment to be finished
// later.
//
func (s *Scope) Begin(dest Signal) Pending {
	return Pending{s.add(Assignment{Dest: dest, Blocking: !s.sync})}
}

func (s *Scope) add(a Assignment) *Assignment {
	s.check()
	p := s.assigns.add(a, s.owner)
	s.log.Debug("assign", "scope", s.kind.String(), "dest", a.Dest.name)
	return p
}

// When opens an "if" branch guarded by c. fn receives the new branch and
// populates it; the branch is attached to s once fn returns.
//
// When returns s so that ElseWhen and Otherwise calls can be chained.
//
func (s *Scope) When(c Condition, fn func(s *Scope)) *Scope {
	s.check()
	s.branch(When, c, fn)
	return s
}

// ElseWhen opens an "else if" branch guarded by c. It must follow a When or
// ElseWhen branch of the same scope. This is not enforced, but branches
// render in construction order.
//
func (s *Scope) ElseWhen(c Condition, fn func(s *Scope)) *Scope {
	s.check()
	s.checkChain(ElseWhen)
	s.branch(ElseWhen, c, fn)
	return s
}

// Otherwise opens the final "else" branch of a conditional chain.
//
func (s *Scope) Otherwise(fn func(s *Scope)) {
	s.check()
	s.checkChain(Otherwise)
	s.branch(Otherwise, Condition{}, fn)
}

func (s *Scope) branch(kind Kind, c Condition, fn func(s *Scope)) {
	if kind != Otherwise && (c.Op == "" || c.X == nil || c.Y == nil) {
		fail(ErrUnfinished, "%s branch without condition in %s", kind, s.owner)
	}
	sub := newScope(kind, s.sync, s.owner, s.log)
	sub.cond = c
	fn(sub)
	sub.done = true
	s.scopes = append(s.scopes, sub)
	s.log.Debug("scope", "kind", kind.String(), "owner", s.owner)
}

// check panics with ErrSealed once the function that built s has returned.
//
func (s *Scope) check() {
	if s.done {
		fail(ErrSealed, "%s block in %s", s.kind, s.owner)
	}
}

// checkChain logs a warning if a branch of the given kind does not follow a
// When or ElseWhen sibling.
//
func (s *Scope) checkChain(kind Kind) {
	if n := len(s.scopes); n > 0 {
		if k := s.scopes[n-1].kind; k == When || k == ElseWhen {
			return
		}
	}
	s.log.Warn("branch does not follow an if or else if", "kind", kind.String(), "owner", s.owner)
}

// Render returns the text of s and all its descendants.
// Assignments render sorted by destination name, followed by child scopes in
// construction order.
//
func (s *Scope) Render() string {
	var b strings.Builder
	s.write(&b)
	return b.String()
}

func (s *Scope) write(b *strings.Builder) {
	switch s.kind {
	case AlwaysComb:
		b.WriteString("always_comb begin\n")
	case Posedge:
		b.WriteString("always_ff @(posedge ")
		b.WriteString(s.clock.name)
		b.WriteString(") begin\n")
	case When:
		b.WriteString("if (")
		writeExpr(b, s.cond)
		b.WriteString(") begin\n")
	case ElseWhen:
		b.WriteString("else if (")
		writeExpr(b, s.cond)
		b.WriteString(") begin\n")
	case Otherwise:
		b.WriteString("else begin\n")
	}
	for _, k := range slices.Sorted(maps.Keys(s.assigns)) {
		s.assigns[k].write(b)
		b.WriteByte('\n')
	}
	for _, sub := range s.scopes {
		sub.write(b)
	}
	b.WriteString("end\n")
}
