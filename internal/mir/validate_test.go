package mir_test

import (
	"strings"
	"testing"

	"borrowck/internal/mir"
	"borrowck/internal/testkit"
)

func TestValidateBody_Valid(t *testing.T) {
	b := testkit.NewBody("ok")
	s := b.Param("s", mir.StructType("S"))
	b.Block()
	b.Drop(s).Return()
	if err := mir.ValidateBody(b.Build()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBody_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body func() *mir.Body
		want string
	}{
		{
			name: "no_blocks",
			body: func() *mir.Body { return testkit.NewBody("empty").Build() },
			want: "no basic blocks",
		},
		{
			name: "unterminated",
			body: func() *mir.Body {
				b := testkit.NewBody("open")
				b.Block()
				return b.Build()
			},
			want: "bb0: unterminated block",
		},
		{
			name: "missing_target",
			body: func() *mir.Body {
				b := testkit.NewBody("jump")
				b.Block()
				b.Goto(4)
				return b.Build()
			},
			want: "target bb4 does not exist",
		},
		{
			name: "duplicate_case",
			body: func() *mir.Body {
				b := testkit.NewBody("dup")
				bb := b.Blocks(2)
				b.In(bb[0]).Term(mir.Terminator{
					Kind: mir.TermSwitchInt,
					SwitchInt: mir.SwitchIntTerm{
						Discr:     mir.IntConst(0),
						Cases:     []mir.SwitchCase{{Value: 1, Target: 1}, {Value: 1, Target: 1}},
						Otherwise: 1,
					},
				})
				b.In(bb[1]).Return()
				return b.Build()
			},
			want: "duplicate case 1",
		},
		{
			name: "unknown_local",
			body: func() *mir.Body {
				b := testkit.NewBody("ghost")
				b.Block()
				b.Drop(9).Return()
				return b.Build()
			},
			want: "local _9 does not exist",
		},
		{
			name: "missing_place",
			body: func() *mir.Body {
				b := testkit.NewBody("nowhere")
				b.Block()
				b.Drop(mir.NoLocalID).Return()
				return b.Build()
			},
			want: "bb0 stmt 0: place names no local",
		},
		{
			name: "params_without_locals",
			body: func() *mir.Body {
				body := testkit.NewBody("short").Build()
				body.Params = []mir.Type{mir.Scalar(mir.TypeI64)}
				body.Blocks = []mir.BasicBlock{{Term: mir.Return()}}
				return body
			},
			want: "cannot hold the return slot",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mir.ValidateBody(tt.body())
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_Module(t *testing.T) {
	ok := testkit.NewBody("f")
	ok.Block()
	ok.Return()
	m := testkit.Module("m", ok.Build(), ok.Build(), testkit.NewBody("g").Build(), nil)

	err := mir.Validate(m)
	if err == nil {
		t.Fatalf("expected errors")
	}
	msg := err.Error()
	for _, want := range []string{"body f: defined twice", "body g: no basic blocks", "nil body"} {
		if !strings.Contains(msg, want) {
			t.Errorf("%q missing from %q", want, msg)
		}
	}
	if mir.Validate(nil) != nil {
		t.Fatalf("nil module should validate")
	}
}
