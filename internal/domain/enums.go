package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm selects the graph-search strategy used to plan.
type Algorithm int

const (
	DepthFirst Algorithm = iota
	UniformCost
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

func (a Algorithm) String() string {
	switch a {
	case DepthFirst:
		return "depth-first"
	case UniformCost:
		return "uniform-cost"
	default:
		return "unknown"
	}
}

func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAlgorithm accepts exactly the command-line tokens.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "depth-first":
		return DepthFirst, nil
	case "uniform-cost":
		return UniformCost, nil
	}
	return 0, UnknownAlgorithm(strings.TrimSpace(s))
}

// UnknownAlgorithm is the usage error for an algorithm name nothing implements.
func UnknownAlgorithm(name string) error {
	return &UsageError{Msg: "unknown algorithm: " + name, Err: ErrUnknownAlgorithm}
}

// Action is one atomic robot step. The value is the symbol printed for it.
type Action byte

const (
	North  Action = 'N'
	South  Action = 'S'
	East   Action = 'E'
	West   Action = 'W'
	Vacuum Action = 'V'
)

// Moves lists the directional actions in successor order.
var Moves = [4]Action{North, South, East, West}

// Delta returns the row/col offset of a move; Vacuum and unknown actions stay put.
func (a Action) Delta() (dr, dc int) {
	switch a {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	}
	return 0, 0
}

func (a Action) Valid() bool {
	switch a {
	case North, South, East, West, Vacuum:
		return true
	}
	return false
}

func (a Action) String() string { return string(rune(a)) }

func (a Action) MarshalText() ([]byte, error) { return []byte{byte(a)}, nil }

func (a *Action) UnmarshalText(b []byte) error {
	if len(b) != 1 || !Action(b[0]).Valid() {
		return fmt.Errorf("invalid action %q", b)
	}
	*a = Action(b[0])
	return nil
}

// ParseActions converts a symbol string such as "EEV" into actions.
func ParseActions(s string) ([]Action, error) {
	out := make([]Action, 0, len(s))
	for i := 0; i < len(s); i++ {
		a := Action(s[i])
		if !a.Valid() {
			return nil, fmt.Errorf("invalid action %q at %d", s[i], i)
		}
		out = append(out, a)
	}
	return out, nil
}
