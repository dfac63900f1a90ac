package hdlgen_test

import (
	"bytes"
	"testing"

	hw "github.com/db47h/hdlgen"
	"github.com/db47h/hdlgen/hwtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_adder(t *testing.T) {
	m := hw.NewModule("adder")
	a := hw.NewSignal("a", 32)
	b := hw.NewSignal("b", 32)
	o := hw.NewSignal("o", 32)

	m.Input(a, b)
	m.Output(o)
	m.Assign(o, hw.Add(a, b))

	hwtest.CompareModule(t, "module adder();\ninput logic [31:0] a;\ninput logic [31:0] b;\noutput logic [31:0] o;\nassign o = (a + b);\nendmodule", m)
}

func TestModule_ordering(t *testing.T) {
	m := hw.NewModule("order")
	m.Output(hw.IO("z[2], y")...)
	m.Input(hw.IO("c, b[4], a[8]")...)
	c, o := hw.NewSignal("c", 32), hw.NewSignal("o", 32)
	a, _ := m.Lookup("a")
	m.Assign(o, hw.Add(c, hw.Int(1)))
	m.Assign(c, hw.Add(a, a))

	hwtest.CompareModule(t, hwtest.Lines(
		"module order();",
		"input logic [7:0] a;",
		"input logic [3:0] b;",
		"input logic [0:0] c;",
		"output logic [0:0] y;",
		"output logic [1:0] z;",
		"assign c = (a + a);",
		"assign o = (c + 1);",
		"endmodule",
	), m)
}

func TestModule_comb(t *testing.T) {
	m := hw.NewModule("comb")
	a, b, c := hw.NewSignal("a", 32), hw.NewSignal("b", 32), hw.NewSignal("c", 32)

	m.Comb(func(s *hw.Scope) {
		s.Assign(c, hw.Add(a, hw.Int(1)))
		s.When(hw.Eq(a, hw.Int(1)), func(s *hw.Scope) {
			s.Assign(b, hw.Add(a, c))
		})
	})

	hwtest.CompareModule(t, "module comb();\n\nalways_comb begin\nc = (a + 1);\nif ((a == 1)) begin\nb = (a + c);\nend\nend\n\nendmodule", m)

	scopes := m.Scopes()
	require.Len(t, scopes, 1)
	assert.Equal(t, "always_comb begin\nc = (a + 1);\nif ((a == 1)) begin\nb = (a + c);\nend\nend\n", scopes[0].Render())
}

func TestModule_sync(t *testing.T) {
	m := hw.NewModule("sync")
	a, b, c := hw.NewSignal("a", 32), hw.NewSignal("b", 32), hw.NewSignal("c", 32)
	clk := hw.Bool("clk")

	m.On(clk, func(s *hw.Scope) {
		s.Assign(c, hw.Add(a, hw.Int(1)))
		s.When(hw.Eq(a, hw.Int(1)), func(s *hw.Scope) {
			s.Assign(b, hw.Add(a, c))
		}).ElseWhen(hw.Eq(a, hw.Int(2)), func(s *hw.Scope) {
			s.Assign(b, hw.Sub(a, c))
		}).Otherwise(func(s *hw.Scope) {
			s.Assign(b, hw.Add(hw.Add(a, c), hw.Int(2)))
		})
	})

	hwtest.CompareModule(t, hwtest.Lines(
		"module sync();",
		"",
		"always_ff @(posedge clk) begin",
		"c <= (a + 1);",
		"if ((a == 1)) begin",
		"b <= (a + c);",
		"end",
		"else if ((a == 2)) begin",
		"b <= (a - c);",
		"end",
		"else begin",
		"b <= ((a + c) + 2);",
		"end",
		"end",
		"",
		"endmodule",
	), m)

	top := m.Scopes()[0]
	assert.Equal(t, hw.Posedge, top.Kind())
	assert.True(t, top.Sync())
	var kinds []hw.Kind
	for _, s := range top.Scopes() {
		kinds = append(kinds, s.Kind())
		assert.True(t, s.Sync(), "branch %v", s.Kind())
	}
	assert.Equal(t, []hw.Kind{hw.When, hw.ElseWhen, hw.Otherwise}, kinds)
}

func TestModule_multipleScopes(t *testing.T) {
	m := hw.NewModule("multi")
	a, b, q := hw.Bool("a"), hw.Bool("b"), hw.Bool("q")
	clk := hw.Bool("clk")
	m.Input(clk, a)
	m.Output(q)
	m.Comb(func(s *hw.Scope) { s.Assign(b, hw.Not(a)) })
	m.On(clk, func(s *hw.Scope) { s.Assign(q, b) })

	hwtest.CompareModule(t, hwtest.Lines(
		"module multi();",
		"input logic [0:0] a;",
		"input logic [0:0] clk;",
		"output logic [0:0] q;",
		"",
		"always_comb begin",
		"b = (~a);",
		"end",
		"",
		"",
		"always_ff @(posedge clk) begin",
		"q <= b;",
		"end",
		"",
		"endmodule",
	), m)
}

func TestModule_pending(t *testing.T) {
	m := hw.NewModule("pending")
	a, o := hw.NewSignal("a", 4), hw.NewSignal("o", 4)
	p := m.Begin(o)

	err := hwtest.Fatal(t, hw.ErrUnfinished, func() { m.Render() })
	assert.Contains(t, err.Error(), `"o"`)

	// the destination is reserved while pending
	hwtest.Fatal(t, hw.ErrDuplicate, func() { m.Assign(o, a) })

	p.Finish(hw.Shl(a, hw.Int(1)))
	assert.Equal(t, "module pending();\nassign o = (a << 1);\nendmodule", m.Render())
	hwtest.Fatal(t, hw.ErrDuplicate, func() { p.Finish(a) })
}

func TestModule_errors(t *testing.T) {
	a, b, clk := hw.NewSignal("a", 8), hw.NewSignal("b", 8), hw.Bool("clk")
	cond := hw.Eq(a, b)
	var kept *hw.Scope
	keep := func(s *hw.Scope) { kept = s }
	data := []struct {
		name string
		err  error
		fn   func(m *hw.Module)
	}{
		{"dup_input", hw.ErrDuplicate, func(m *hw.Module) { m.Input(a, a) }},
		{"dup_output", hw.ErrDuplicate, func(m *hw.Module) { m.Output(b); m.Output(b) }},
		{"in_out", hw.ErrConflict, func(m *hw.Module) { m.Input(a); m.Output(a) }},
		{"out_in", hw.ErrConflict, func(m *hw.Module) { m.Output(a); m.Input(a) }},
		{"zero_signal", hw.ErrInvalidName, func(m *hw.Module) { m.Input(hw.Signal{}) }},
		{"dup_assign", hw.ErrDuplicate, func(m *hw.Module) { m.Assign(a, b); m.Add(hw.NewAssignment(a, b, false)) }},
		{"nil_assign", hw.ErrUnfinished, func(m *hw.Module) { m.Assign(a, nil) }},
		{"scope_dup", hw.ErrDuplicate, func(m *hw.Module) {
			m.Comb(func(s *hw.Scope) { s.Assign(a, b); s.Assign(a, b) })
		}},
		{"branch_dup", hw.ErrDuplicate, func(m *hw.Module) {
			m.Comb(func(s *hw.Scope) {
				s.When(hw.Eq(a, b), func(s *hw.Scope) { s.Assign(a, b); s.Add(hw.NewAssignment(a, b, true)) })
			})
		}},
		{"no_condition", hw.ErrUnfinished, func(m *hw.Module) {
			m.Comb(func(s *hw.Scope) { s.When(hw.Condition{}, func(*hw.Scope) {}) })
		}},
		{"no_clock", hw.ErrInvalidName, func(m *hw.Module) { m.On(hw.Signal{}, func(*hw.Scope) {}) }},
		{"condition_value", hw.ErrOperator, func(m *hw.Module) { m.Assign(a, cond) }},
		{"condition_add", hw.ErrOperator, func(m *hw.Module) { m.Add(hw.NewAssignment(a, &cond, true)) }},
		{"condition_scope", hw.ErrOperator, func(m *hw.Module) {
			m.On(clk, func(s *hw.Scope) { s.Assign(a, cond) })
		}},
		{"condition_pending", hw.ErrOperator, func(m *hw.Module) { m.Begin(a).Finish(cond) }},
		{"late_assign", hw.ErrSealed, func(m *hw.Module) {
			m.Comb(keep)
			kept.Assign(a, b)
		}},
		{"late_add", hw.ErrSealed, func(m *hw.Module) {
			m.On(clk, keep)
			kept.Add(hw.NewAssignment(a, b, false))
		}},
		{"late_begin", hw.ErrSealed, func(m *hw.Module) {
			m.Comb(keep)
			kept.Begin(a)
		}},
		{"late_when", hw.ErrSealed, func(m *hw.Module) {
			m.Comb(func(*hw.Scope) {})
			m.Scopes()[0].When(cond, func(*hw.Scope) {})
		}},
		{"late_else_when", hw.ErrSealed, func(m *hw.Module) {
			m.Comb(func(s *hw.Scope) { s.When(cond, func(*hw.Scope) {}) })
			m.Scopes()[0].ElseWhen(cond, func(*hw.Scope) {})
		}},
		{"late_otherwise", hw.ErrSealed, func(m *hw.Module) {
			m.On(clk, keep)
			kept.Otherwise(func(*hw.Scope) {})
		}},
		{"late_branch", hw.ErrSealed, func(m *hw.Module) {
			m.Comb(func(s *hw.Scope) { s.When(cond, keep) })
			kept.Assign(a, b)
		}},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			m := hw.NewModule(d.name)
			hwtest.Fatal(t, d.err, func() { d.fn(m) })
		})
	}
}

func TestScope_sealed(t *testing.T) {
	m := hw.NewModule("sealed")
	a, o := hw.NewSignal("a", 4), hw.NewSignal("o", 4)
	var (
		kept *hw.Scope
		p    hw.Pending
	)
	m.Comb(func(s *hw.Scope) {
		kept = s
		p = s.Begin(o)
	})
	hwtest.Fatal(t, hw.ErrUnfinished, func() { m.Render() })

	// slots reserved while building can still be filled
	p.Finish(hw.Not(a))
	want := "module sealed();\n\nalways_comb begin\no = (~a);\nend\n\nendmodule"
	require.Equal(t, want, m.Render())

	err := hwtest.Fatal(t, hw.ErrSealed, func() { kept.Assign(a, o) })
	assert.Contains(t, err.Error(), `always_comb block in module "sealed"`)
	assert.Equal(t, want, m.Render())
}

func TestModule_sameDestinationAcrossScopes(t *testing.T) {
	m := hw.NewModule("branches")
	sel, o := hw.Bool("sel"), hw.NewSignal("o", 2)
	m.Assign(o, hw.Int(0))
	m.Comb(func(s *hw.Scope) {
		s.When(hw.Eq(sel, hw.Int(1)), func(s *hw.Scope) {
			s.Assign(o, hw.Int(1))
		}).Otherwise(func(s *hw.Scope) {
			s.Assign(o, hw.Int(2))
		})
	})
	assert.NotPanics(t, func() { m.Render() })
}

func TestModule_addOverridesBlocking(t *testing.T) {
	m := hw.NewModule("flags")
	a, b, c, clk := hw.Bool("a"), hw.Bool("b"), hw.Bool("c"), hw.Bool("clk")
	m.Add(hw.NewAssignment(a, c, false))
	m.Comb(func(s *hw.Scope) { s.Add(hw.NewAssignment(b, c, false)) })
	m.On(clk, func(s *hw.Scope) { s.Add(hw.NewAssignment(c, a, true)) })

	got := m.Render()
	assert.Contains(t, got, "assign a = c;\n")
	assert.Contains(t, got, "\nb = c;\n")
	assert.Contains(t, got, "\nc <= a;\n")
}

func TestModule_WriteTo(t *testing.T) {
	m := hw.NewModule("empty")
	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("module empty();\nendmodule")), n)
	assert.Equal(t, "module empty();\nendmodule", buf.String())
}

func TestNewModule_invalidName(t *testing.T) {
	for _, n := range []string{"", "1abc", "a-b", "module name"} {
		hwtest.Fatal(t, hw.ErrInvalidName, func() { hw.NewModule(n) })
	}
}
