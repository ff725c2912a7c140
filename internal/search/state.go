// Package search plans cleaning routes with depth-first and uniform-cost
// graph search over (robot position, remaining dirt) states.
package search

import (
	"slices"

	"svw.info/cleanbot/internal/domain"
)

// Key is the identity of a search node. Two states reached by different
// routes share a Key when the robot stands on the same cell and the same
// dirty cells remain.
type Key struct {
	Robot domain.Cell
	Dirty string
}

// State is an immutable search node. The dirty set is a bitset over the
// world's initial dirty cells, held in a string so it compares and hashes
// by value. The action path is a parent chain, materialised by Path.
type State struct {
	Robot     domain.Cell
	Cost      int
	dirty     string
	remaining int
	action    domain.Action
	parent    *State
}

// Key returns the path-independent identity of s.
func (s *State) Key() Key { return Key{Robot: s.Robot, Dirty: s.dirty} }

// Goal reports whether no dirty cells remain.
func (s *State) Goal() bool { return s.remaining == 0 }

// Remaining is the number of dirty cells left.
func (s *State) Remaining() int { return s.remaining }

// Less orders states for the uniform-cost frontier.
func (s *State) Less(o *State) bool { return s.Cost < o.Cost }

// Path returns the actions taken from the start state, in order.
func (s *State) Path() []domain.Action {
	path := make([]domain.Action, 0, s.Cost)
	for n := s; n.parent != nil; n = n.parent {
		path = append(path, n.action)
	}
	slices.Reverse(path)
	return path
}

func (s *State) isDirty(i int) bool {
	return i >= 0 && s.dirty[i/8]&(1<<(i%8)) != 0
}

func (s *State) child(robot domain.Cell, a domain.Action) *State {
	return &State{
		Robot:     robot,
		Cost:      s.Cost + 1,
		dirty:     s.dirty,
		remaining: s.remaining,
		action:    a,
		parent:    s,
	}
}

func (s *State) clean(i int) *State {
	b := []byte(s.dirty)
	b[i/8] &^= 1 << (i % 8)
	n := s.child(s.Robot, domain.Vacuum)
	n.dirty = string(b)
	n.remaining--
	return n
}
