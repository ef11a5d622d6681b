package stats

import (
	"errors"
	"fmt"
)

// ErrUnknownPolicy is returned when a replacement or write policy name is not recognized.
var ErrUnknownPolicy = errors.New("unknown policy")

// ReplacementPolicy names the simulator's replacement policy as it appears in file names.
type ReplacementPolicy string

const (
	BinaryTree ReplacementPolicy = "binTree"
	LRU        ReplacementPolicy = "LRU"
	PseudoLRU  ReplacementPolicy = "PLRU"
)

// validReplacementPolicies maps accepted names for O(1) lookup.
var validReplacementPolicies = map[ReplacementPolicy]bool{
	BinaryTree: true,
	LRU:        true,
	PseudoLRU:  true,
}

// ParseReplacementPolicy validates s against the known replacement policies.
func ParseReplacementPolicy(s string) (ReplacementPolicy, error) {
	p := ReplacementPolicy(s)
	if !validReplacementPolicies[p] {
		return "", fmt.Errorf("%w: replacement policy %q (valid: binTree, LRU, PLRU)", ErrUnknownPolicy, s)
	}
	return p, nil
}

// WritePolicy combines the write-hit policy (back/through) with the write-miss
// policy (allocate/no-allocate).
type WritePolicy string

const (
	WriteBackAlloc      WritePolicy = "back_alloc"
	WriteBackNoAlloc    WritePolicy = "back_noAlloc"
	WriteThroughAlloc   WritePolicy = "through_alloc"
	WriteThroughNoAlloc WritePolicy = "through_noAlloc"
)

var validWritePolicies = map[WritePolicy]bool{
	WriteBackAlloc:      true,
	WriteBackNoAlloc:    true,
	WriteThroughAlloc:   true,
	WriteThroughNoAlloc: true,
}

// ParseWritePolicy validates s against the known write policies.
func ParseWritePolicy(s string) (WritePolicy, error) {
	p := WritePolicy(s)
	if !validWritePolicies[p] {
		return "", fmt.Errorf("%w: write policy %q (valid: back_alloc, back_noAlloc, through_alloc, through_noAlloc)", ErrUnknownPolicy, s)
	}
	return p, nil
}

// Params identifies one simulated cache configuration and therefore one stats file.
type Params struct {
	BlockSize   int
	Assoc       int // 0 = fully associative
	Replacement ReplacementPolicy
	Write       WritePolicy
}

// Filename returns the stats file name the simulator writes for p.
func (p Params) Filename() string {
	return fmt.Sprintf("stats_%d_%d_%s_%s.tsv", p.BlockSize, p.Assoc, p.Replacement, p.Write)
}

func (p Params) String() string {
	return fmt.Sprintf("bs=%d assoc=%d replace=%s write=%s", p.BlockSize, p.Assoc, p.Replacement, p.Write)
}
