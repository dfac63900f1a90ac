// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing module generators.
//
package hwtest

import (
	"strings"
	"testing"

	"github.com/db47h/hdlgen"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// Lines joins its arguments with newlines. It makes expected renderings
// readable in tests:
//
//	hwtest.Lines("module m();", "endmodule")
//
func Lines(lines ...string) string {
	return strings.Join(lines, "\n")
}

// RenderEqual compares got to want and reports a line by line diff on mismatch.
//
func RenderEqual(t testing.TB, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff := cmp.Diff(strings.Split(want, "\n"), strings.Split(got, "\n"))
	t.Errorf("rendered text mismatch (-want +got):\n%s", diff)
}

// CompareModule renders m twice, checks that both renderings are identical
// and compares the result to want.
//
func CompareModule(t testing.TB, want string, m *hdlgen.Module) {
	t.Helper()
	got := m.Render()
	if again := m.Render(); again != got {
		t.Fatalf("rendering %q is not stable:\n%s", m.Name(), cmp.Diff(got, again))
	}
	RenderEqual(t, want, got)
}

// Fatal calls fn and checks that it fails with the construction or rendering
// error want. It returns the error for further inspection.
//
func Fatal(t testing.TB, want error, fn func()) error {
	t.Helper()
	err := hdlgen.Catch(fn)
	if err == nil {
		t.Fatalf("expected %v, got no error", want)
		return nil
	}
	if errors.Cause(err) != want {
		t.Fatalf("expected %v, got %v", want, err)
	}
	return err
}
