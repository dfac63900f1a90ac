package hdlgen_test

import (
	"strconv"
	"strings"
	"testing"
	"testing/quick"

	hw "github.com/db47h/hdlgen"
	"github.com/db47h/hdlgen/hwtest"
)

func TestSignal(t *testing.T) {
	s := hw.NewSignal("data_in", 16)
	if s.Name() != "data_in" || s.Width() != 16 {
		t.Fatalf("got %s/%d", s.Name(), s.Width())
	}
	if got := s.Decl(); got != "logic [15:0] data_in" {
		t.Errorf("Decl() = %q", got)
	}
	if got := s.String(); got != "data_in" {
		t.Errorf("String() = %q", got)
	}
	if got := hw.Bool("clk").Decl(); got != "logic [0:0] clk" {
		t.Errorf("Bool Decl() = %q", got)
	}
}

func TestSignal_errors(t *testing.T) {
	for _, n := range []string{"", "0a", "a b", "a.b", "é", strings.Repeat("x", 65)} {
		hwtest.Fatal(t, hw.ErrInvalidName, func() { hw.NewSignal(n, 1) })
	}
	hw.NewSignal(strings.Repeat("x", 64), 1)
	hw.NewSignal("_a$1", 1)
	hwtest.Fatal(t, hw.ErrZeroWidth, func() { hw.NewSignal("a", 0) })
	hwtest.Fatal(t, hw.ErrZeroWidth, func() { _ = hw.Signal{}.Decl() })
}

// the upper bit index of a declaration is always width-1.
func TestSignal_declUpperBound(t *testing.T) {
	f := func(w uint16) bool {
		width := uint(w) + 1
		d := hw.NewSignal("s", width).Decl()
		return d == "logic ["+strconv.FormatUint(uint64(width-1), 10)+":0] s"
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// declaration order never changes the rendered text.
func TestModule_declarationOrder(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}
	f := func(seed uint8) bool {
		m := hw.NewModule("perm")
		n := len(names)
		for i := 0; i < n; i++ {
			m.Input(hw.Bool(names[(i+int(seed))%n]))
		}
		return m.Render() == "module perm();\ninput logic [0:0] a;\ninput logic [0:0] b;\ninput logic [0:0] c;\ninput logic [0:0] d;\ninput logic [0:0] e;\nendmodule"
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestParseIO(t *testing.T) {
	data := []struct {
		spec string
		want string
		err  string
	}{
		{"", "", ""},
		{"a", "a:1", ""},
		{"a[32], b[32], clk", "a:32 b:32 clk:1", ""},
		{" x_1 [ 4 ] ,y$ ", "x_1:4 y$:1", ""},
		{"a[0]", "", `in "a[0]" at pos 3: invalid port width, got integer "0"`},
		{"a[", "", `in "a[" at pos 3: expected port width, got end of input`},
		{"a[2", "", `in "a[2" at pos 4: missing close bracket, got end of input`},
		{"a b", "", `in "a b" at pos 3: expected comma or end of input, got identifier "b"`},
		{"a,", "", `in "a," at pos 3: expected port name, got end of input`},
		{"a, -b", "", `in "a, -b" at pos 4: expected port name, got character "-"`},
		{"a, a[2]", "", `in "a, a[2]" at pos 4: port "a" listed twice`},
	}
	for _, d := range data {
		t.Run(d.spec, func(t *testing.T) {
			sigs, err := hw.ParseIO(d.spec)
			if d.err != "" {
				if err == nil || err.Error() != d.err {
					t.Fatalf("got error %v, expected %q", err, d.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			var parts []string
			for _, s := range sigs {
				parts = append(parts, s.Name()+":"+strconv.FormatUint(uint64(s.Width()), 10))
			}
			if got := strings.Join(parts, " "); got != d.want {
				t.Errorf("got %q, expected %q", got, d.want)
			}
		})
	}
}
