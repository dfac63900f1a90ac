// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// Errors used as panic values by construction and rendering functions. Use
// errors.Cause on a recovered error to compare it against one of these.
//
var (
	ErrInvalidName = errors.New("invalid identifier")
	ErrZeroWidth   = errors.New("zero-width signal")
	ErrDuplicate   = errors.New("duplicate declaration")
	ErrConflict    = errors.New("conflicting declaration")
	ErrUnfinished  = errors.New("unfinished expression")
	ErrOperator    = errors.New("invalid operator")
	ErrSealed      = errors.New("scope already built")
)

// maxNameLen is the maximum length of an identifier in bytes.
const maxNameLen = 64

// failure wraps a sentinel with a message naming the offending identifier.
// The sentinel stays reachable through errors.Cause.
//
type failure struct {
	cause error
	msg   string
}

func (f *failure) Error() string { return f.msg + ": " + f.cause.Error() }
func (f *failure) Cause() error  { return f.cause }
func (f *failure) Unwrap() error { return f.cause }

func fail(cause error, format string, args ...interface{}) {
	panic(errors.WithStack(&failure{cause, fmt.Sprintf(format, args...)}))
}

// Catch calls fn and returns the construction or rendering error it panicked
// with, if any. Panics with non-error values are propagated.
//
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	fn()
	return nil
}

// validName returns true if name is a valid identifier: a letter or underscore
// followed by letters, digits, underscores or dollar signs.
//
func validName(name string) bool {
	if name == "" || len(name) > maxNameLen {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '$'):
		default:
			return false
		}
	}
	return true
}

// An Option configures a Module.
//
type Option func(m *Module)

// WithLogger sets the logger used to trace module construction and rendering.
// By default, nothing is logged.
//
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

var discard = slog.New(slog.DiscardHandler)
