package weft_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/weftlang/weft"
	"github.com/weftlang/weft/sexp"
	"golang.org/x/tools/txtar"
)

// TestSimplify_Corpus runs the golden cases in testdata/simplify.txtar.
// Each case holds optional variable fact directives followed by an input
// expression and the expected simplified form.
func TestSimplify_Corpus(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/simplify.txtar")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range archive.Files {
		t.Run(file.Name, func(t *testing.T) {
			lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
			if len(lines) < 2 {
				t.Fatalf("case needs an input and an expected line, got %d", len(lines))
			}

			s := weft.NewSimplifier()
			for _, line := range lines[:len(lines)-2] {
				fields := strings.Fields(line)
				switch {
				case len(fields) == 4 && fields[0] == "bounds":
					s.SetVarBounds(fields[1], weft.NewBounds(
						parseCorpusInt(t, fields[2]),
						parseCorpusInt(t, fields[3]),
					))
				case len(fields) == 4 && fields[0] == "align":
					s.SetVarAlignment(fields[1], weft.NewModulusRemainder(
						parseCorpusInt(t, fields[2]),
						parseCorpusInt(t, fields[3]),
					))
				default:
					t.Fatalf("unknown directive %q", line)
				}
			}

			expr, err := sexp.Parse(lines[len(lines)-2])
			if err != nil {
				t.Fatal(err)
			}
			want := lines[len(lines)-1]
			if got := s.Simplify(expr).String(); got != want {
				t.Fatalf("Simplify()=%s, want %s", got, want)
			}
		})
	}
}

func parseCorpusInt(t *testing.T, s string) int64 {
	t.Helper()
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		t.Fatal(err)
	}
	return v
}
