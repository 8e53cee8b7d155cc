// Package syntax turns a regex string into an ε-NFA by calling one
// combinator of package nfa per syntax-tree node, leaves first.
package syntax

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"thompson/internal/nfa"
)

const (
	// MaxRepeat bounds the counts accepted inside {}.
	MaxRepeat = 1000
	// MaxStates bounds the size of any automaton built for a pattern.
	// Expanding a range copies the accumulated automaton once per count, so
	// this also bounds the construction time.
	MaxStates = 4096
)

var (
	ErrEmptyPattern   = xerrors.New("empty pattern")
	ErrInvalidRange   = xerrors.New("repeat range max < min")
	ErrRepeatTooLarge = xerrors.New("repeat count too large")
	ErrTooManyStates  = xerrors.New("automaton too large")
)

type Option func(*compiler)

// WithLogger logs every combinator call at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *compiler) { c.logger = l }
}

func WithMaxRepeat(n int) Option {
	return func(c *compiler) { c.maxRepeat = n }
}

// WithMaxStates sets the state budget checked before every repetition is
// expanded and after every union or concatenation.
func WithMaxStates(n int) Option {
	return func(c *compiler) { c.maxStates = n }
}

type compiler struct {
	logger    *zap.Logger
	maxRepeat int
	maxStates int
	nextGroup int
}

// Compile parses pattern and builds its ε-NFA.
//
// Every parenthesized subexpression gets a group index in order of its
// opening parenthesis. The group is attached to the automaton of its body, so
// it only survives further composition through concatenation.
func Compile(pattern string, opts ...Option) (*nfa.Automaton, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	c := &compiler{logger: zap.NewNop(), maxRepeat: MaxRepeat, maxStates: MaxStates, nextGroup: 1}
	for _, opt := range opts {
		opt(c)
	}

	tree, err := Parse(pattern)
	if err != nil {
		return nil, xerrors.Errorf("parse %q: %w", pattern, err)
	}
	a, err := c.pattern(tree)
	if err != nil {
		return nil, xerrors.Errorf("compile %q: %w", pattern, err)
	}
	c.logger.Debug("compiled",
		zap.String("pattern", pattern),
		zap.Int("states", a.NumStates()),
		zap.Int("edges", len(a.Edges())),
	)
	return a, nil
}

func MustCompile(pattern string, opts ...Option) *nfa.Automaton {
	a, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

func (c *compiler) emit(op string, a *nfa.Automaton) *nfa.Automaton {
	c.logger.Debug("combinator", zap.String("op", op), zap.Int("states", a.NumStates()))
	return a
}

func (c *compiler) within(a *nfa.Automaton) error {
	if n := a.NumStates(); n > c.maxStates {
		return xerrors.Errorf("%d states exceed %d: %w", n, c.maxStates, ErrTooManyStates)
	}
	return nil
}

func (c *compiler) pattern(p *Pattern) (*nfa.Automaton, error) {
	out, err := c.sequence(p.First)
	if err != nil {
		return nil, err
	}
	for _, alt := range p.Rest {
		right, err := c.sequence(alt.Pieces)
		if err != nil {
			return nil, err
		}
		out = c.emit("union", nfa.Union(out, right))
		if err := c.within(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *compiler) sequence(pieces []*Piece) (*nfa.Automaton, error) {
	if len(pieces) == 0 {
		return c.emit("epsilon", nfa.Character(nfa.Epsilon)), nil
	}
	var out *nfa.Automaton
	for _, pc := range pieces {
		a, err := c.piece(pc)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = a
			continue
		}
		out = c.emit("concat", nfa.Concat(out, a))
		if err := c.within(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *compiler) atom(at *Atom) (*nfa.Automaton, error) {
	switch {
	case at.Char != nil:
		return c.emit("char", nfa.Character(nfa.Symbol(*at.Char))), nil
	case at.Escaped != nil:
		return c.emit("char", nfa.Character(nfa.Symbol(strings.TrimPrefix(*at.Escaped, `\`)))), nil
	case at.Group != nil:
		g := nfa.Group{Index: c.nextGroup}
		c.nextGroup++
		body, err := c.pattern(at.Group)
		if err != nil {
			return nil, err
		}
		body.AddGroups(g)
		return body, nil
	}
	return nil, xerrors.New("empty atom")
}

func (c *compiler) piece(pc *Piece) (*nfa.Automaton, error) {
	x, err := c.atom(pc.Atom)
	if err != nil {
		return nil, err
	}
	for _, q := range pc.Quantifiers {
		switch q {
		case "*":
			x = c.emit("star", nfa.Star(x))
		case "+":
			x = c.emit("plus", nfa.Plus(x))
		case "?":
			x = c.emit("skip", nfa.Skip(x))
		default:
			x, err = c.repeat(x, q)
			if err != nil {
				return nil, xerrors.Errorf("%s: %w", pc.Pos, err)
			}
		}
	}
	return x, nil
}

// repeat handles {n}, {lo,hi} and {lo,}.
func (c *compiler) repeat(x *nfa.Automaton, q string) (*nfa.Automaton, error) {
	lo, hi, open, err := parseRange(q)
	if err != nil {
		return nil, err
	}
	if lo > c.maxRepeat || hi > c.maxRepeat {
		return nil, xerrors.Errorf("%s exceeds %d: %w", q, c.maxRepeat, ErrRepeatTooLarge)
	}
	if !open && hi < lo {
		return nil, xerrors.Errorf("%s: %w", q, ErrInvalidRange)
	}
	if n := repeatStates(x.NumStates(), lo, hi, open, c.maxStates); n > c.maxStates {
		return nil, xerrors.Errorf("%s needs more than %d states: %w", q, c.maxStates, ErrRepeatTooLarge)
	}
	switch {
	case open && lo == 0:
		return c.emit("star", nfa.Star(x)), nil
	case open && lo == 1:
		return c.emit("plus", nfa.Plus(x)), nil
	case open:
		return c.emit("concat", nfa.Concat(nfa.Repeat(x, lo), nfa.Star(x))), nil
	case lo == hi:
		return c.emit("repeat", nfa.Repeat(x, lo)), nil
	default:
		return c.emit("repeat-range", nfa.RepeatRange(x, lo, hi)), nil
	}
}

// repeatStates is the state count of the automaton repeat would build for an
// operand of size states. Counting stops once it passes limit.
func repeatStates(states, lo, hi int, open bool, limit int) int {
	size := func(n int) int {
		if n <= 1 {
			return states + 2
		}
		return n * states
	}
	switch {
	case open && lo == 0:
		return states + 2
	case open && lo == 1:
		return 2*states + 2
	case open:
		return size(lo) + states + 2
	}
	total := 2 * (hi - lo)
	for k := lo; k <= hi && total <= limit; k++ {
		total += size(k)
	}
	return total
}

// parseRange reads a Range token. open is true for {lo,}.
func parseRange(q string) (lo, hi int, open bool, err error) {
	body := strings.TrimSuffix(strings.TrimPrefix(q, "{"), "}")
	loText, hiText, hasComma := strings.Cut(body, ",")
	if lo, err = strconv.Atoi(loText); err != nil {
		return 0, 0, false, xerrors.Errorf("repeat %s: %w", q, err)
	}
	if !hasComma {
		return lo, lo, false, nil
	}
	if hiText == "" {
		return lo, lo, true, nil
	}
	if hi, err = strconv.Atoi(hiText); err != nil {
		return 0, 0, false, xerrors.Errorf("repeat %s: %w", q, err)
	}
	return lo, hi, false, nil
}
