package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakpointManager_Add(t *testing.T) {
	bm := NewBreakpointManager()

	bp := bm.Add(0x1000, false, "")

	assert.Equal(t, 1, bp.ID)
	assert.Equal(t, uint32(0x1000), bp.Address)
	assert.True(t, bp.Enabled)
	assert.False(t, bp.Temporary)
	assert.Equal(t, 0, bp.HitCount)
}

func TestBreakpointManager_AddMultiple(t *testing.T) {
	bm := NewBreakpointManager()

	bp1 := bm.Add(0x1000, false, "")
	bp2 := bm.Add(0x2000, false, "")

	assert.NotEqual(t, bp1.ID, bp2.ID)
	assert.Equal(t, 2, bm.Count())
}

func TestBreakpointManager_AddDuplicateUpdatesExisting(t *testing.T) {
	bm := NewBreakpointManager()

	bp1 := bm.Add(0x1000, false, "")
	bp2 := bm.Add(0x1000, false, "x1 == 5")

	assert.Equal(t, bp1.ID, bp2.ID)
	assert.Equal(t, "x1 == 5", bm.At(0x1000).Condition)
	assert.Equal(t, 1, bm.Count())
}

func TestBreakpointManager_DeleteByID(t *testing.T) {
	bm := NewBreakpointManager()
	bp := bm.Add(0x1000, false, "")

	assert.NoError(t, bm.DeleteByID(bp.ID))
	assert.Nil(t, bm.At(0x1000))
	assert.Error(t, bm.DeleteByID(bp.ID))
}

func TestBreakpointManager_DeleteAt(t *testing.T) {
	bm := NewBreakpointManager()
	bm.Add(0x1000, false, "")

	assert.NoError(t, bm.DeleteAt(0x1000))
	assert.Error(t, bm.DeleteAt(0x1000))
}

func TestBreakpointManager_EnableDisable(t *testing.T) {
	bm := NewBreakpointManager()
	bp := bm.Add(0x1000, false, "")

	assert.NoError(t, bm.Disable(bp.ID))
	assert.False(t, bm.At(0x1000).Enabled)

	assert.NoError(t, bm.Enable(bp.ID))
	assert.True(t, bm.At(0x1000).Enabled)

	assert.Error(t, bm.Enable(999))
}

func TestBreakpointManager_TemporaryDeletedOnHit(t *testing.T) {
	bm := NewBreakpointManager()
	bm.Add(0x1000, true, "")

	snapshot := bm.Hit(0x1000)
	assert.NotNil(t, snapshot)
	assert.Equal(t, 1, snapshot.HitCount)
	assert.Nil(t, bm.At(0x1000))
}

func TestBreakpointManager_PermanentSurvivesHit(t *testing.T) {
	bm := NewBreakpointManager()
	bm.Add(0x1000, false, "")

	bm.Hit(0x1000)
	bm.Hit(0x1000)

	assert.Equal(t, 2, bm.At(0x1000).HitCount)
}

func TestBreakpointManager_ByID(t *testing.T) {
	bm := NewBreakpointManager()
	bp := bm.Add(0x1000, false, "")

	assert.Equal(t, bp, bm.ByID(bp.ID))
	assert.Nil(t, bm.ByID(999))
}

func TestBreakpointManager_AllAndClear(t *testing.T) {
	bm := NewBreakpointManager()
	bm.Add(0x1000, false, "")
	bm.Add(0x2000, false, "")

	assert.Len(t, bm.All(), 2)

	bm.Clear()
	assert.Equal(t, 0, bm.Count())
	assert.False(t, bm.Has(0x1000))
}
