package vm

import (
	"fmt"
	"io"
	"sort"
)

// CodeCoverage tracks the set of fetch addresses executed at least once.
type CodeCoverage struct {
	hit map[uint32]uint64
}

func NewCodeCoverage() *CodeCoverage {
	return &CodeCoverage{hit: make(map[uint32]uint64)}
}

// Record marks pc as executed, incrementing its hit count.
func (c *CodeCoverage) Record(pc uint32) {
	c.hit[pc]++
}

// Count returns how many distinct addresses were executed.
func (c *CodeCoverage) Count() int { return len(c.hit) }

// WriteReport writes a sorted-by-address text report of pc -> hit count.
func (c *CodeCoverage) WriteReport(w io.Writer) error {
	addrs := make([]uint32, 0, len(c.hit))
	for pc := range c.hit {
		addrs = append(addrs, pc)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, pc := range addrs {
		if _, err := fmt.Fprintf(w, "0x%08x %d\n", pc, c.hit[pc]); err != nil {
			return err
		}
	}
	return nil
}
