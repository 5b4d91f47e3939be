package vm

// RegisterTrace tallies the register fields each executed instruction names,
// for hot-register analysis: rs1/rs2 reads and rd writes go to the integer
// counters whatever the register file, and rs3 reads to FReadCounts.
type RegisterTrace struct {
	ReadCounts  [32]uint64
	WriteCounts [32]uint64
	FReadCounts [32]uint64
	Cycles      uint64
}

func NewRegisterTrace() *RegisterTrace { return &RegisterTrace{} }

// RecordBefore tallies the registers an about-to-execute instruction reads.
// It is deliberately approximate: it counts rs1/rs2/rs3 as read regardless
// of whether the handler that runs actually consults them, the same
// coarse-grained accounting the ancestor's per-format dispatch would produce.
func (r *RegisterTrace) RecordBefore(in Instr) {
	r.Cycles++
	r.ReadCounts[in.Rs1]++
	r.ReadCounts[in.Rs2]++
	if in.Rs3 != 0 {
		r.FReadCounts[in.Rs3]++
	}
}

// RecordAfter tallies rd as written once the handler has run. It does not
// know the format, so every rd, including a float destination and rd==0, is
// credited to WriteCounts; float writes have no separate counter.
func (r *RegisterTrace) RecordAfter(in Instr, s *State) {
	r.WriteCounts[in.Rd]++
}

// HottestInt returns the integer register index with the most combined
// read+write activity.
func (r *RegisterTrace) HottestInt() int {
	best, bestCount := 0, uint64(0)
	for i := 0; i < 32; i++ {
		c := r.ReadCounts[i] + r.WriteCounts[i]
		if c > bestCount {
			best, bestCount = i, c
		}
	}
	return best
}
