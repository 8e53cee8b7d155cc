package match

import (
	"fmt"

	"thompson/internal/nfa"
)

// Minimize merges equivalent states of d by partition refinement. Missing
// transitions count as moves into a dead sink, and states that can never
// reach an accepting state are dropped. The result is renumbered in BFS order
// from its start.
func Minimize(d *DFA) *DFA {
	if d == nil || d.Start == nil {
		return d
	}

	live := liveStates(d)

	// 1. accepting / non-accepting
	block := make(map[*DState]int, len(d.States))
	for _, s := range d.States {
		if !live[s] {
			continue
		}
		if s.Accept {
			block[s] = 1
		} else {
			block[s] = 0
		}
	}
	count := distinct(block)

	// 2. split blocks until the signatures stop telling states apart
	for {
		sigs := map[string]int{}
		next := make(map[*DState]int, len(block))
		for _, s := range d.States {
			if !live[s] {
				continue
			}
			sig := make([]int, 0, len(d.Alphabet)+1)
			sig = append(sig, block[s])
			for _, c := range d.Alphabet {
				if t, ok := s.Next[c]; ok && live[t] {
					sig = append(sig, block[t])
				} else {
					sig = append(sig, -1)
				}
			}
			k := fmt.Sprint(sig)
			id, ok := sigs[k]
			if !ok {
				id = len(sigs)
				sigs[k] = id
			}
			next[s] = id
		}
		block = next
		if len(sigs) == count {
			break
		}
		count = len(sigs)
	}

	// 3. one state per block, numbered as they are reached from the start
	reps := map[int]*DState{}
	var states []*DState
	var queue []*DState
	get := func(old *DState) *DState {
		b := block[old]
		if r, ok := reps[b]; ok {
			return r
		}
		r := &DState{ID: len(states), Accept: old.Accept, Next: map[nfa.Symbol]*DState{}}
		reps[b] = r
		states = append(states, r)
		queue = append(queue, old)
		return r
	}

	if !live[d.Start] {
		start := &DState{ID: 0, Next: map[nfa.Symbol]*DState{}}
		return &DFA{Start: start, States: []*DState{start}, Alphabet: d.Alphabet}
	}
	start := get(d.Start)
	for len(queue) > 0 {
		old := queue[0]
		queue = queue[1:]
		r := reps[block[old]]
		for _, c := range d.Alphabet {
			if t, ok := old.Next[c]; ok && live[t] {
				r.Next[c] = get(t)
			}
		}
	}
	return &DFA{Start: start, States: states, Alphabet: d.Alphabet}
}

// liveStates marks the states from which an accepting state is reachable.
func liveStates(d *DFA) map[*DState]bool {
	preds := map[*DState][]*DState{}
	var stack []*DState
	live := map[*DState]bool{}
	for _, s := range d.States {
		for _, t := range s.Next {
			preds[t] = append(preds[t], s)
		}
		if s.Accept {
			live[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range preds[s] {
			if !live[p] {
				live[p] = true
				stack = append(stack, p)
			}
		}
	}
	return live
}

func distinct(block map[*DState]int) int {
	seen := map[int]bool{}
	for _, b := range block {
		seen[b] = true
	}
	return len(seen)
}
