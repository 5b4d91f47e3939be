package vm

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// PerformanceStatistics counts dispatches per key across a run, exportable
// as JSON, CSV, or a minimal HTML table.
type PerformanceStatistics struct {
	counts map[uint32]uint64
	total  uint64
}

func NewPerformanceStatistics() *PerformanceStatistics {
	return &PerformanceStatistics{counts: make(map[uint32]uint64)}
}

// Record tallies one dispatch of the given key.
func (p *PerformanceStatistics) Record(key uint32) {
	p.counts[key]++
	p.total++
}

// Total returns the number of cycles recorded.
func (p *PerformanceStatistics) Total() uint64 { return p.total }

func (p *PerformanceStatistics) sortedKeys() []uint32 {
	keys := make([]uint32, 0, len(p.counts))
	for k := range p.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return p.counts[keys[i]] > p.counts[keys[j]] })
	return keys
}

// ExportJSON writes {"key": "0x...", "count": n} entries ordered by count
// descending.
func (p *PerformanceStatistics) ExportJSON(w io.Writer) error {
	type row struct {
		Key   string `json:"key"`
		Count uint64 `json:"count"`
	}
	rows := make([]row, 0, len(p.counts))
	for _, k := range p.sortedKeys() {
		rows = append(rows, row{Key: fmt.Sprintf("0x%06x", k), Count: p.counts[k]})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// ExportCSV writes "key,count" rows ordered by count descending.
func (p *PerformanceStatistics) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "count"}); err != nil {
		return err
	}
	for _, k := range p.sortedKeys() {
		if err := cw.Write([]string{fmt.Sprintf("0x%06x", k), fmt.Sprintf("%d", p.counts[k])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportHTML writes a minimal <table> of key/count rows.
func (p *PerformanceStatistics) ExportHTML(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "<table><tr><th>key</th><th>count</th></tr>"); err != nil {
		return err
	}
	for _, k := range p.sortedKeys() {
		if _, err := fmt.Fprintf(w, "<tr><td>0x%06x</td><td>%d</td></tr>\n", k, p.counts[k]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</table>")
	return err
}
