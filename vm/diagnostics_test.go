package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionTrace_CapsAtMaxEntries(t *testing.T) {
	tr := NewExecutionTrace(2)
	tr.Record(0, 1)
	tr.Record(4, 1)
	tr.Record(8, 1) // dropped
	assert.Equal(t, 2, tr.Len())
}

func TestExecutionTrace_Flush(t *testing.T) {
	tr := NewExecutionTrace(0)
	tr.Record(0x100, 0x33)
	var buf bytes.Buffer
	require.NoError(t, tr.Flush(&buf))
	assert.Contains(t, buf.String(), "0x00000100")
}

func TestCodeCoverage_CountsDistinctAddresses(t *testing.T) {
	c := NewCodeCoverage()
	c.Record(0)
	c.Record(4)
	c.Record(0)
	assert.Equal(t, 2, c.Count())
}

func TestCodeCoverage_WriteReportSortedByAddress(t *testing.T) {
	c := NewCodeCoverage()
	c.Record(8)
	c.Record(0)
	var buf bytes.Buffer
	require.NoError(t, c.WriteReport(&buf))
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "0x00000000")
	assert.Contains(t, string(lines[1]), "0x00000008")
}

func TestRegisterTrace_HottestInt(t *testing.T) {
	r := NewRegisterTrace()
	r.RecordBefore(Instr{Rs1: 5, Rs2: 5})
	r.RecordBefore(Instr{Rs1: 5, Rs2: 5})
	assert.Equal(t, 5, r.HottestInt())
}

func TestStackTrace_ObservesWaterMarks(t *testing.T) {
	st := NewStackTrace(0x1000, 0x2000)
	st.Observe(0x1800)
	st.Observe(0x1900)
	st.Observe(0x1700)
	assert.Equal(t, uint32(0x1700), st.Low)
	assert.Equal(t, uint32(0x1900), st.High)
	assert.Equal(t, 0, st.Violations)
}

func TestStackTrace_FlagsViolations(t *testing.T) {
	st := NewStackTrace(0x1000, 0x2000)
	st.Observe(0x1800)
	st.Observe(0x0FFF) // below floor
	st.Observe(0x2001) // above ceiling
	assert.Equal(t, 2, st.Violations)
}

func TestPerformanceStatistics_ExportFormats(t *testing.T) {
	p := NewPerformanceStatistics()
	p.Record(key(opR, 0, 0))
	p.Record(key(opR, 0, 0))
	p.Record(key(opI, 0, 0))

	assert.Equal(t, uint64(3), p.Total())

	var jsonBuf, csvBuf, htmlBuf bytes.Buffer
	require.NoError(t, p.ExportJSON(&jsonBuf))
	require.NoError(t, p.ExportCSV(&csvBuf))
	require.NoError(t, p.ExportHTML(&htmlBuf))

	assert.Contains(t, jsonBuf.String(), `"count": 2`)
	assert.Contains(t, csvBuf.String(), "key,count")
	assert.Contains(t, htmlBuf.String(), "<table>")
}
