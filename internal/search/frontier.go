package search

import "container/heap"

// frontier is a min-heap of states keyed by cost. Equal costs pop in
// insertion order so runs are deterministic.
type frontier struct {
	items []entry
	seq   uint64
}

type entry struct {
	s   *State
	seq uint64
}

func (f *frontier) push(s *State) {
	heap.Push((*entries)(f), entry{s: s, seq: f.seq})
	f.seq++
}

func (f *frontier) pop() *State { return heap.Pop((*entries)(f)).(entry).s }

func (f *frontier) Len() int { return len(f.items) }

type entries frontier

func (e *entries) Len() int { return len(e.items) }

func (e *entries) Less(i, j int) bool {
	a, b := e.items[i], e.items[j]
	if a.s.Cost != b.s.Cost {
		return a.s.Less(b.s)
	}
	return a.seq < b.seq
}

func (e *entries) Swap(i, j int) { e.items[i], e.items[j] = e.items[j], e.items[i] }

func (e *entries) Push(x any) { e.items = append(e.items, x.(entry)) }

func (e *entries) Pop() any {
	last := len(e.items) - 1
	x := e.items[last]
	e.items[last] = entry{}
	e.items = e.items[:last]
	return x
}
