// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import "strconv"

// A Signal is a named, fixed-width wire or register. Signals are values: they
// are copied wherever they are referenced and never change after creation.
//
// A Signal is also the simplest Expr.
//
type Signal struct {
	name  string
	width uint
}

// NewSignal returns a new signal with the given name and bit width.
//
// NewSignal panics with ErrInvalidName if name is not a valid identifier or is
// longer than 64 bytes, and with ErrZeroWidth if width is 0.
//
func NewSignal(name string, width uint) Signal {
	if !validName(name) {
		fail(ErrInvalidName, "signal name %q", name)
	}
	if width == 0 {
		fail(ErrZeroWidth, "signal %q", name)
	}
	return Signal{name: name, width: width}
}

// Bool returns a 1 bit signal.
//
func Bool(name string) Signal {
	return NewSignal(name, 1)
}

// Name returns the signal name.
//
func (s Signal) Name() string { return s.name }

// Width returns the signal width in bits.
//
func (s Signal) Width() uint { return s.width }

// Decl returns the declaration form of s: "logic [<width-1>:0] <name>".
// It panics with ErrZeroWidth for a zero-width signal (like the zero Signal).
//
func (s Signal) Decl() string {
	if s.width == 0 {
		fail(ErrZeroWidth, "declaration of signal %q", s.name)
	}
	return "logic [" + strconv.FormatUint(uint64(s.width-1), 10) + ":0] " + s.name
}

// String returns the operand form of s, its bare name.
//
func (s Signal) String() string { return s.name }

func (Signal) expr() {}
