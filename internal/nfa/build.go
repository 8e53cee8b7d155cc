package nfa

// Character builds start -sym-> final.
func Character(sym Symbol) *Automaton {
	al := NewAllocator(1)
	start, final := al.Fresh(), al.Fresh()

	basic := New()
	basic.SetStartState(start)
	basic.AddFinalStates(final)
	basic.AddTransition(start, final, sym)
	return basic
}

// Union builds "a or b": a new start forks into both operands by ε and both
// operands rejoin at one new final. Groups of a and b are dropped.
func Union(a, b *Automaton) *Automaton {
	al := NewAllocator(1)
	start := al.Fresh()
	a = al.Place(a)
	b = al.Place(b)
	final := al.Fresh()

	plus := New()
	plus.SetStartState(start)
	plus.AddFinalStates(final)
	plus.AddTransition(start, a.StartState(), Epsilon)
	plus.AddTransition(start, b.StartState(), Epsilon)
	plus.AddTransition(a.firstFinal(), final, Epsilon)
	plus.AddTransition(b.firstFinal(), final, Epsilon)
	plus.AddTransitionsFrom(a)
	plus.AddTransitionsFrom(b)
	return plus
}

// Concat joins every final of l to the start of r with an ε edge.
func Concat(l, r *Automaton) *Automaton {
	return ConcatOn(l, r, Epsilon)
}

// ConcatOn is Concat with an arbitrary join label. The result keeps l's start
// and exactly r's finals; groups are l's followed by r's.
func ConcatOn(l, r *Automaton, edge Symbol) *Automaton {
	al := NewAllocator(1)
	l = al.Place(l)
	r = al.Place(r)

	cat := New()
	cat.SetStartState(l.StartState())
	for _, f := range l.finals {
		cat.AddTransition(f, r.StartState(), edge)
	}
	cat.AddFinalStates(r.finals...)
	cat.AddTransitionsFrom(l)
	cat.AddTransitionsFrom(r)
	cat.AddGroups(l.groups...)
	cat.AddGroups(r.groups...)
	return cat
}

// Star is the Kleene closure of x.
func Star(x *Automaton) *Automaton {
	star, inner := optional(x)
	star.AddTransition(inner.firstFinal(), inner.StartState(), Epsilon)
	return star
}

// Skip accepts x zero or one time.
func Skip(x *Automaton) *Automaton {
	skip, _ := optional(x)
	return skip
}

// optional is the part shared by Star and Skip: state 1 is the new start, x
// sits at 2.., and one new final follows it. It also returns the placed x.
func optional(x *Automaton) (*Automaton, *Automaton) {
	al := NewAllocator(1)
	start := al.Fresh()
	x = al.Place(x)
	final := al.Fresh()

	out := New()
	out.SetStartState(start)
	out.AddFinalStates(final)
	out.AddTransition(start, x.StartState(), Epsilon)
	out.AddTransition(start, final, Epsilon)
	out.AddTransition(x.firstFinal(), final, Epsilon)
	out.AddTransitionsFrom(x)
	return out, x
}

// Plus accepts x one or more times.
func Plus(x *Automaton) *Automaton {
	return Concat(x, Star(x))
}

// Repeat chains n copies of x.
//
// For n <= 1 the result is Skip(x): Repeat(x, 0) does not mean "x must not
// occur" and Repeat(x, 1) does not force exactly one x. Callers that depend on
// this collapsing get it unchanged.
func Repeat(x *Automaton, n int) *Automaton {
	if n <= 1 {
		return Skip(x)
	}
	out, _ := x.WithNewStateNumber(1)
	for i := 1; i < n; i++ {
		out = Concat(out, x)
	}
	return out
}

// RepeatRange is the union of Repeat(x, k) for every k in [lo, hi], folded
// left to right. An empty range (lo > hi) yields a plain renumbered copy of x
// with no repetition applied.
func RepeatRange(x *Automaton, lo, hi int) *Automaton {
	var out *Automaton
	for k := lo; k <= hi; k++ {
		rep := Repeat(x, k)
		if out == nil {
			out = rep
			continue
		}
		out = Union(out, rep)
	}
	if out == nil {
		out, _ = x.WithNewStateNumber(1)
	}
	return out
}
