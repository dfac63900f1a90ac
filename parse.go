// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"github.com/db47h/hdlgen/internal/hdl"
	"github.com/pkg/errors"
)

// ParseIO parses a port specification string and returns the corresponding
// signals in the order they appear. Each port is an identifier optionally
// followed by its width in brackets; the default width is 1:
//
//	ParseIO("a[32], b[32], clk") // a and b are 32 bits wide, clk is a single bit
//
func ParseIO(spec string) ([]Signal, error) {
	ps, err := hdl.ParsePorts(spec)
	if err != nil {
		return nil, err
	}
	sigs := make([]Signal, 0, len(ps))
	seen := make(map[string]bool, len(ps))
	for _, p := range ps {
		if seen[p.Name] {
			return nil, errors.Errorf("in %q at pos %d: port %q listed twice", spec, p.Pos+1, p.Name)
		}
		seen[p.Name] = true
		if !validName(p.Name) {
			return nil, errors.Wrapf(ErrInvalidName, "in %q at pos %d: port %q", spec, p.Pos+1, p.Name)
		}
		sigs = append(sigs, Signal{name: p.Name, width: p.Width})
	}
	return sigs, nil
}

// IO is like ParseIO but panics on error. It is intended for literal
// specifications:
//
//	m.Input(hdlgen.IO("a[32], b[32]")...)
//
func IO(spec string) []Signal {
	sigs, err := ParseIO(spec)
	if err != nil {
		panic(err)
	}
	return sigs
}
