package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"thompson/internal/nfa"
)

// words returns every string over alpha of length at most n.
func words(alpha []string, n int) []string {
	out := []string{""}
	prev := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range prev {
			for _, c := range alpha {
				next = append(next, w+c)
			}
		}
		out = append(out, next...)
		prev = next
	}
	return out
}

func char(s string) *nfa.Automaton { return nfa.Character(nfa.Symbol(s)) }

func TestClosure(t *testing.T) {
	s := nfa.Star(char("a"))
	require.Equal(t, []nfa.State{1, 2, 4}, Closure(s, s.StartState()))
	require.Equal(t, []nfa.State{2, 3, 4}, Closure(s, 3))
}

func TestAccepts(t *testing.T) {
	cases := []struct {
		name   string
		a      *nfa.Automaton
		accept []string
		reject []string
	}{
		{"char", char("a"), []string{"a"}, []string{"", "b", "aa"}},
		{"union", nfa.Union(char("a"), char("b")), []string{"a", "b"}, []string{"", "ab"}},
		{"concat", nfa.Concat(char("a"), char("b")), []string{"ab"}, []string{"a", "b", "ba", "abb"}},
		{"star", nfa.Star(char("a")), []string{"", "a", "aaaa"}, []string{"b", "ab"}},
		{"skip", nfa.Skip(char("a")), []string{"", "a"}, []string{"aa"}},
		{"plus", nfa.Plus(char("a")), []string{"a", "aaa"}, []string{""}},
		{"repeat 3", nfa.Repeat(char("a"), 3), []string{"aaa"}, []string{"", "a", "aa", "aaaa"}},
		// n <= 1 collapses to zero-or-one
		{"repeat 0", nfa.Repeat(char("a"), 0), []string{"", "a"}, []string{"aa"}},
		{"repeat 1", nfa.Repeat(char("a"), 1), []string{"", "a"}, []string{"aa"}},
		{"range 2..3", nfa.RepeatRange(char("a"), 2, 3), []string{"aa", "aaa"}, []string{"", "a", "aaaa"}},
		{"range 5..3", nfa.RepeatRange(char("a"), 5, 3), []string{"a"}, []string{"", "aaaaa"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, s := range tc.accept {
				require.True(t, AcceptsString(tc.a, s), "should accept %q", s)
			}
			for _, s := range tc.reject {
				require.False(t, AcceptsString(tc.a, s), "should reject %q", s)
			}
		})
	}
}

func TestAccepts_MultiRuneSymbols(t *testing.T) {
	a := nfa.Concat(nfa.Character("ab"), nfa.Character("c"))
	require.True(t, Accepts(a, []nfa.Symbol{"ab", "c"}))
	require.False(t, AcceptsString(a, "abc"))
}

func TestDeterminize_Equivalence(t *testing.T) {
	a, b, c := char("a"), char("b"), char("c")
	automata := map[string]*nfa.Automaton{
		"(ab|a)*c":   nfa.Concat(nfa.Star(nfa.Union(nfa.Concat(a, b), a)), c),
		"a(b|c)*":    nfa.Concat(a, nfa.Star(nfa.Union(b, c))),
		"(a|b){2,3}": nfa.RepeatRange(nfa.Union(a, b), 2, 3),
		"a?b+":       nfa.Concat(nfa.Skip(a), nfa.Plus(b)),
	}
	for name, n := range automata {
		d := Determinize(n)
		m := Minimize(d)
		require.LessOrEqual(t, len(m.States), len(d.States), name)
		for _, w := range words([]string{"a", "b", "c"}, 5) {
			want := AcceptsString(n, w)
			require.Equal(t, want, d.AcceptsString(w), "%s dfa on %q", name, w)
			require.Equal(t, want, m.AcceptsString(w), "%s min dfa on %q", name, w)
		}
	}
}

func TestDeterminize_StartSet(t *testing.T) {
	s := nfa.Star(char("a"))
	d := Determinize(s)

	require.Equal(t, 0, d.Start.ID)
	require.Equal(t, []nfa.State{1, 2, 4}, d.Start.NFA)
	require.True(t, d.Start.Accept)
	require.Equal(t, []nfa.Symbol{"a"}, d.Alphabet)
}

func TestMinimize_MergesEquivalentStates(t *testing.T) {
	u := nfa.Union(nfa.Star(char("a")), nfa.Star(char("a")))

	m := Minimize(Determinize(u))

	require.Len(t, m.States, 1)
	require.True(t, m.Start.Accept)
	require.Same(t, m.Start, m.Start.Next["a"])
}

func TestMinimize_DropsDeadStates(t *testing.T) {
	dead := &DState{ID: 2, Next: map[nfa.Symbol]*DState{}}
	acc := &DState{ID: 1, Accept: true, Next: map[nfa.Symbol]*DState{}}
	start := &DState{ID: 0, Next: map[nfa.Symbol]*DState{"a": acc, "b": dead}}
	d := &DFA{Start: start, States: []*DState{start, acc, dead}, Alphabet: []nfa.Symbol{"a", "b"}}

	m := Minimize(d)

	require.Len(t, m.States, 2)
	require.NotContains(t, m.Start.Next, nfa.Symbol("b"))
	require.True(t, m.AcceptsString("a"))
	require.False(t, m.AcceptsString("b"))
}

func TestMinimize_NothingAccepted(t *testing.T) {
	start := &DState{ID: 0, Next: map[nfa.Symbol]*DState{}}
	m := Minimize(&DFA{Start: start, States: []*DState{start}})
	require.Len(t, m.States, 1)
	require.False(t, m.AcceptsString(""))
	require.Nil(t, Minimize(nil))
}

func BenchmarkAccepts(b *testing.B) {
	a := nfa.Concat(char("a"), nfa.Star(char("b")))
	input := Symbols("a" + strings.Repeat("b", 1_000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Accepts(a, input)
	}
}
