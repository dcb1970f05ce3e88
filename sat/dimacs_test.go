package sat

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseDIMACS(t *testing.T) {
	for _, tt := range []struct {
		name string
		text string
		want *Formula
	}{
		{
			name: "no vars or clauses",
			text: `
c empty problem
p cnf 0 0
`,
			want: &Formula{NumVars: 0, Clauses: []Clause{}},
		},
		{
			name: "single unit clause",
			text: `
p cnf 1 1
1 0
`,
			want: &Formula{NumVars: 1, Clauses: []Clause{{1}}},
		},
		{
			name: "comments anywhere",
			text: `
c preamble
p cnf 3 2
c between clauses
1 -3 0
c another
-2 3 0
`,
			want: &Formula{NumVars: 3, Clauses: []Clause{{1, -3}, {-2, 3}}},
		},
		{
			name: "empty clause",
			text: `
p cnf 2 2
1 2 0
0
`,
			want: &Formula{NumVars: 2, Clauses: []Clause{{1, 2}, {}}},
		},
		{
			name: "two clauses on one line",
			text: `
p cnf 3 2
1 3 0 -3 2 0
`,
			want: &Formula{NumVars: 3, Clauses: []Clause{{1, 3}, {-3, 2}}},
		},
		{
			name: "trailing clause without terminator",
			text: `
p cnf 2 2
1 2 0
-1 -2
`,
			want: &Formula{NumVars: 2, Clauses: []Clause{{1, 2}, {-1, -2}}},
		},
		{
			name: "percent trailer ignored",
			text: `
p cnf 2 2
1 2 0
-1 2 0
%
1 2 3
x y z
`,
			want: &Formula{NumVars: 2, Clauses: []Clause{{1, 2}, {-1, 2}}},
		},
		{
			name: "extra clauses beyond declared count",
			text: `
p cnf 2 1
1 0
2 0
-1 -2 0
`,
			want: &Formula{NumVars: 2, Clauses: []Clause{{1}, {2}, {-1, -2}}},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDIMACS(strings.NewReader(strings.TrimSpace(tt.text)))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("ParseDIMACS (-want, +got):\n%s", diff)
			}
			if err := got.Validate(); err != nil {
				t.Fatalf("parsed formula fails validation: %s", err)
			}
		})
	}
}

func TestParseDIMACSErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		text string
	}{
		{"missing header", "1 2 0\n"},
		{"clause before header", "1 0\np cnf 1 1\n"},
		{"duplicate header", "p cnf 1 1\np cnf 1 1\n1 0\n"},
		{"short header", "p cnf 1\n1 0\n"},
		{"non-cnf format", "p sat 1 1\n1 0\n"},
		{"unparseable var count", "p cnf x 1\n1 0\n"},
		{"unparseable clause count", "p cnf 1 x\n1 0\n"},
		{"negative var count", "p cnf -1 0\n"},
		{"negative clause count", "p cnf 0 -1\n"},
		{"literal out of range", "p cnf 2 1\n1 3 0\n"},
		{"non-integer literal", "p cnf 2 1\n1 z 0\n"},
		{"empty input", ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDIMACS(strings.NewReader(tt.text)); err == nil {
				t.Fatalf("ParseDIMACS(%q): expected error", tt.text)
			}
		})
	}
}

// Parsing, serializing, and re-parsing must reproduce the first parse.
func TestDIMACSRoundTrip(t *testing.T) {
	for _, text := range []string{
		"p cnf 0 0\n",
		"p cnf 1 1\n1 0\n",
		"p cnf 3 3\n1 0\n-1 2 0\n-2 3 0\n",
		"p cnf 4 3\n1 3 -4 0\n4 0\n2 -3 0\n",
	} {
		first, err := ParseDIMACS(strings.NewReader(text))
		if err != nil {
			t.Fatal(err)
		}
		var b strings.Builder
		if err := WriteDIMACS(&b, first); err != nil {
			t.Fatal(err)
		}
		second, err := ParseDIMACS(strings.NewReader(b.String()))
		if err != nil {
			t.Fatalf("re-parsing %q: %s", b.String(), err)
		}
		if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("round trip changed the formula (-first, +second):\n%s", diff)
		}
	}
}
