package stats

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned by Grid.Validate.
var ErrInvalidGrid = errors.New("invalid grid")

// Grid is the parameter space the simulator was swept over, plus the values each
// dimension is held at while another one varies.
type Grid struct {
	BlockSizes   []int
	Assocs       []int
	Replacements []ReplacementPolicy
	Writes       []WritePolicy

	DefaultBlockSize   int
	DefaultAssoc       int
	DefaultReplacement ReplacementPolicy
	DefaultWrite       WritePolicy
}

// DefaultGrid returns the grid the simulation scripts produce stats files for.
func DefaultGrid() Grid {
	return Grid{
		BlockSizes:         []int{8, 32, 64},
		Assocs:             []int{1, 4, 8, 0},
		Replacements:       []ReplacementPolicy{BinaryTree, LRU, PseudoLRU},
		Writes:             []WritePolicy{WriteBackAlloc, WriteBackNoAlloc, WriteThroughAlloc, WriteThroughNoAlloc},
		DefaultBlockSize:   8,
		DefaultAssoc:       8,
		DefaultReplacement: BinaryTree,
		DefaultWrite:       WriteBackAlloc,
	}
}

// Defaults returns the parameter tuple with every dimension at its default.
func (g Grid) Defaults() Params {
	return Params{
		BlockSize:   g.DefaultBlockSize,
		Assoc:       g.DefaultAssoc,
		Replacement: g.DefaultReplacement,
		Write:       g.DefaultWrite,
	}
}

// Validate checks that every list is non-empty and every value is usable in a file name.
func (g Grid) Validate() error {
	if len(g.BlockSizes) == 0 || len(g.Assocs) == 0 || len(g.Replacements) == 0 || len(g.Writes) == 0 {
		return fmt.Errorf("%w: block sizes, assocs, replacement and write policies must all be non-empty", ErrInvalidGrid)
	}
	for _, bs := range append([]int{g.DefaultBlockSize}, g.BlockSizes...) {
		if bs <= 0 {
			return fmt.Errorf("%w: block size must be > 0, got %d", ErrInvalidGrid, bs)
		}
	}
	for _, a := range append([]int{g.DefaultAssoc}, g.Assocs...) {
		if a < 0 {
			return fmt.Errorf("%w: associativity must be >= 0, got %d", ErrInvalidGrid, a)
		}
	}
	for _, rp := range append([]ReplacementPolicy{g.DefaultReplacement}, g.Replacements...) {
		if _, err := ParseReplacementPolicy(string(rp)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidGrid, err)
		}
	}
	for _, wp := range append([]WritePolicy{g.DefaultWrite}, g.Writes...) {
		if _, err := ParseWritePolicy(string(wp)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidGrid, err)
		}
	}
	return nil
}
