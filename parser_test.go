// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package simpleon_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/simpleon"
	"github.com/google/go-cmp/cmp"
)

// feedLines feeds each line to p as one fragment, failing the test on a
// parse error.
func feedLines(t *testing.T, p *simpleon.Parser, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if err := p.FeedString(line); err != nil {
			t.Fatalf("Feed %#q: unexpected error: %v", line, err)
		}
	}
}

// drainDumps extracts all queued values from p and returns their dumped
// forms.
func drainDumps(p *simpleon.Parser) []string {
	var got []string
	for {
		v := p.Extract()
		if v == nil {
			return got
		}
		got = append(got, simpleon.DumpString(v))
	}
}

func TestParser(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		convert bool
		multi   bool
		want    []string
	}{
		{"Dict", []string{`{"a": 1, "b": [true, false, null]}`}, true, false,
			[]string{`{"a":1,"b":[true,false,null]}`}},

		{"ListNoCommas", []string{`[1 2 3 4]`}, true, false,
			[]string{`[1,2,3,4]`}},

		{"BareKeyAndValue", []string{`{ foo: bar, "k": 3.5 }`}, true, false,
			[]string{`{"foo":"bar","k":3.5}`}},

		{"MultiDocument", []string{`1 2 3`}, true, true,
			[]string{`1`, `2`, `3`}},

		{"Comments", []string{
			`# a config file`,
			`{a: 1  # trailing comment`,
			`}`,
		}, true, false, []string{`{"a":1}`}},

		{"KeyOrder", []string{`{b: 2, a: 1, c: 3}`}, true, false,
			[]string{`{"a":1,"b":2,"c":3}`}},

		{"RepeatedKey", []string{`{a: 1, a: 2}`}, true, false,
			[]string{`{"a":2}`}},

		{"DictNoCommas", []string{`{a: 1 b: 2 "c d": 3}`}, true, false,
			[]string{`{"a":1,"b":2,"c d":3}`}},

		{"Nested", []string{`[{x: [1, 2]}, {y: {}}]`}, true, false,
			[]string{`[{"x":[1,2]},{"y":{}}]`}},

		{"NoConvert", []string{`[1 true null x]`}, false, false,
			[]string{`["1","true","null","x"]`}},

		{"Numbers", []string{`[3.5 -2 +4 .5 1e3 12x]`}, true, false,
			[]string{`[3.5,-2,4,0.5,1000,"12x"]`}},

		{"BareWord", []string{`hello-world!`}, true, false,
			[]string{`"hello-world!"`}},

		{"KeysStayStrings", []string{`{true: 1, 2: two}`}, true, false,
			[]string{`{"2":"two","true":1}`}},

		{"EmptyContainers", []string{`[[] {} ""]`}, true, false,
			[]string{`[[],{},""]`}},

		{"DictAcrossLines", []string{
			`{`,
			`  name: gadget`,
			`  sizes: [1, 2,`,
			`          3]`,
			`}`,
		}, true, false, []string{`{"name":"gadget","sizes":[1,2,3]}`}},

		{"QuotedContinuation", []string{`"abc`, `def"`}, true, false,
			[]string{`"abcdef"`}},

		{"SingleDocumentStops", []string{`1 2`}, true, false,
			[]string{`1`}},

		{"MultiMixed", []string{`{a: 1} [2] "three"`}, true, true,
			[]string{`{"a":1}`, `[2]`, `"three"`}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := simpleon.NewParser(test.convert, test.multi)
			feedLines(t, p, test.lines...)
			if err := p.Seal(); err != nil {
				t.Errorf("Seal: unexpected error: %v", err)
			}
			if diff := cmp.Diff(test.want, drainDumps(p)); diff != "" {
				t.Errorf("Wrong values: (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestMultilineString(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"TwoLines", []string{`"""line one`, `line two"""`}, "line one\nline two"},
		{"EmptyLine", []string{`"""a`, ``, `b"""`}, "a\n\nb"},
		{"EmbeddedQuotes", []string{`"""say "hi" ok"""`}, `say "hi" ok`},
		{"LeadingNewline", []string{`"""`, `tail"""`}, "\ntail"},
		{"Escape", []string{`"""a\tb"""`}, "a\tb"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := simpleon.NewParser(true, false)
			feedLines(t, p, test.lines...)
			if err := p.Seal(); err != nil {
				t.Fatalf("Seal: unexpected error: %v", err)
			}
			v := p.Extract()
			want := simpleon.String{Text: test.want, Quoted: true}
			if diff := cmp.Diff(want, v); diff != "" {
				t.Errorf("Wrong value: (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestEscapes(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"Hex", []string{`"\x48\x69!\n"`}, "Hi!\n"},
		{"Named", []string{`"a\tb\rc\fd"`}, "a\tb\rc\fd"},
		{"Literal", []string{`"q\"w\\e\/r"`}, `q"w\e/r`},
		{"Unknown", []string{`"a\qb"`}, `a\qb`},
		{"SplitEscape", []string{`"ab\`, `ncd"`}, "ab\ncd"},
		{"SplitHexEscape", []string{`"a\x4`, `8b"`}, "aHb"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := simpleon.NewParser(true, false)
			feedLines(t, p, test.lines...)
			if err := p.Seal(); err != nil {
				t.Fatalf("Seal: unexpected error: %v", err)
			}
			if got := simpleon.AsString(p.Extract()); got != test.want {
				t.Errorf("Got %#q, want %#q", got, test.want)
			}
		})
	}
}

func TestChunking(t *testing.T) {
	// Inputs restricted to quoted strings and containers: a bare word or
	// a triple-quote ends at a fragment boundary by design, so splitting
	// inside one changes its meaning.
	inputs := []string{
		`{"alpha": ["beta\t", "g\x41mma", {"k": "v"}], "z": []}`,
		`["a", "b\\", "", {"x": "y"}]`,
	}
	for _, input := range inputs {
		whole := simpleon.NewParser(true, true)
		feedLines(t, whole, input)
		want := drainDumps(whole)

		bytewise := simpleon.NewParser(true, true)
		for i := 0; i < len(input); i++ {
			feedLines(t, bytewise, input[i:i+1])
		}
		if diff := cmp.Diff(want, drainDumps(bytewise)); diff != "" {
			t.Errorf("Input %#q: bytewise feed differs: (-want, +got)\n%s", input, diff)
		}

		for i := 1; i < len(input); i++ {
			split := simpleon.NewParser(true, true)
			feedLines(t, split, input[:i], input[i:])
			if diff := cmp.Diff(want, drainDumps(split)); diff != "" {
				t.Errorf("Input %#q split at %d: (-want, +got)\n%s", input, i, diff)
			}
		}
	}
}

func TestExtractOrder(t *testing.T) {
	p := simpleon.NewParser(true, true)
	feedLines(t, p, `1 `)
	if got := simpleon.AsInt(p.Extract()); got != 1 {
		t.Errorf("Extract: got %v, want 1", got)
	}
	if v := p.Extract(); v != nil {
		t.Errorf("Extract: got %v, want nil", v)
	}
	feedLines(t, p, `2 3 `)
	if got := simpleon.AsInt(p.Extract()); got != 2 {
		t.Errorf("Extract: got %v, want 2", got)
	}
	if got := simpleon.AsInt(p.Extract()); got != 3 {
		t.Errorf("Extract: got %v, want 3", got)
	}
}

func TestSeal(t *testing.T) {
	t.Run("OpenList", func(t *testing.T) {
		p := simpleon.NewParser(true, false)
		feedLines(t, p, `[1,`)
		var serr *simpleon.StructuralError
		if err := p.Seal(); !errors.As(err, &serr) {
			t.Errorf("Seal: got %v, want StructuralError", err)
		}
		if v := p.Extract(); v != nil {
			t.Errorf("Extract after seal: got %v, want nil", v)
		}
		if err := p.Seal(); err != nil {
			t.Errorf("Second seal: got %v, want nil", err)
		}
	})

	t.Run("OpenString", func(t *testing.T) {
		p := simpleon.NewParser(true, false)
		feedLines(t, p, `"abc`)
		var serr *simpleon.StructuralError
		if err := p.Seal(); !errors.As(err, &serr) {
			t.Errorf("Seal: got %v, want StructuralError", err)
		}
	})

	t.Run("FeedAfterSeal", func(t *testing.T) {
		p := simpleon.NewParser(true, true)
		feedLines(t, p, `1 `)
		if err := p.Seal(); err != nil {
			t.Errorf("Seal: unexpected error: %v", err)
		}
		if err := p.FeedString(`2 `); err != nil {
			t.Errorf("Feed after seal: got %v, want nil", err)
		}
		if diff := cmp.Diff([]string{`1`}, drainDumps(p)); diff != "" {
			t.Errorf("Wrong values: (-want, +got)\n%s", diff)
		}
	})

	t.Run("QueueSurvivesSeal", func(t *testing.T) {
		p := simpleon.NewParser(true, true)
		feedLines(t, p, `1 2 `)
		if err := p.Seal(); err != nil {
			t.Errorf("Seal: unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{`1`, `2`}, drainDumps(p)); diff != "" {
			t.Errorf("Wrong values: (-want, +got)\n%s", diff)
		}
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		like  string
	}{
		{"MissingColon", `{a 1}`, "expected ':'"},
		{"CommaForKey", `{,}`, "dict key"},
		{"StrayColon", `:`, "unexpected"},
		{"StrayColonInList", `[1 :]`, "unexpected"},
		{"StrayBraceForValue", `{a: }}`, "unexpected"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := simpleon.NewParser(true, false)
			err := p.FeedString(test.input)
			var serr *simpleon.StructuralError
			if !errors.As(err, &serr) {
				t.Fatalf("Feed: got %v, want StructuralError", err)
			}
			if !strings.Contains(serr.Message, test.like) {
				t.Errorf("Error %q does not mention %q", serr.Message, test.like)
			}

			// The parser is terminal: the same error comes back for any
			// further input.
			if err2 := p.FeedString(`1`); !errors.Is(err2, err) {
				t.Errorf("Feed after error: got %v, want %v", err2, err)
			}
		})
	}
}

func TestBadEscape(t *testing.T) {
	p := simpleon.NewParser(true, false)
	err := p.FeedString(`"\xZZ"`)
	var berr *simpleon.BadEscapeError
	if !errors.As(err, &berr) {
		t.Fatalf("Feed: got %v, want BadEscapeError", err)
	}
	if berr.Pos != 1 {
		t.Errorf("Error position: got %d, want 1", berr.Pos)
	}
}

func TestCompaction(t *testing.T) {
	// Drive the read cursor well past the compaction threshold and make
	// sure values still come out right.
	p := simpleon.NewParser(true, true)
	const record = `{name: "widget", tags: [a b c]} `
	const copies = 500 // ~16k bytes
	for i := 0; i < copies; i++ {
		feedLines(t, p, record)
	}
	if err := p.Seal(); err != nil {
		t.Fatalf("Seal: unexpected error: %v", err)
	}
	got := drainDumps(p)
	if len(got) != copies {
		t.Fatalf("Got %d values, want %d", len(got), copies)
	}
	const want = `{"name":"widget","tags":["a","b","c"]}`
	for i, g := range got {
		if g != want {
			t.Fatalf("Value %d: got %#q, want %#q", i, g, want)
		}
	}
}

func TestLongString(t *testing.T) {
	// A single string larger than the compaction threshold, fed in
	// pieces, must come through intact.
	piece := strings.Repeat("x", 1500)
	p := simpleon.NewParser(true, false)
	feedLines(t, p, `"`+piece, piece, piece+`"`)
	if err := p.Seal(); err != nil {
		t.Fatalf("Seal: unexpected error: %v", err)
	}
	want := strings.Repeat("x", 4500)
	if got := simpleon.AsString(p.Extract()); got != want {
		t.Errorf("Got %d bytes, want %d", len(got), len(want))
	}
}
