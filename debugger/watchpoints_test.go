package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookbusy1344/rv32i-sim/vm"
)

func TestWatchpointManager_AddIntReg(t *testing.T) {
	wm := NewWatchpointManager()

	wp := wm.Add(WatchIntReg, "x5", 0, 5)

	assert.Equal(t, 1, wp.ID)
	assert.Equal(t, WatchIntReg, wp.Kind)
	assert.Equal(t, 5, wp.Register)
	assert.True(t, wp.Enabled)
}

func TestWatchpointManager_CheckDetectsIntRegChange(t *testing.T) {
	wm := NewWatchpointManager()
	s := vm.NewState()

	wp := wm.Add(WatchIntReg, "x5", 0, 5)
	assert.NoError(t, wm.Seed(wp.ID, s))

	_, changed := wm.Check(s)
	assert.False(t, changed, "unchanged value should not fire")

	s.SetReg(5, 42)
	hit, changed := wm.Check(s)
	assert.True(t, changed)
	assert.Equal(t, wp.ID, hit.ID)
	assert.Equal(t, 1, hit.HitCount)
}

func TestWatchpointManager_CheckDetectsMemoryChange(t *testing.T) {
	wm := NewWatchpointManager()
	s := vm.NewState()

	wp := wm.Add(WatchMemory, "[0x1000]", 0x1000, 0)
	assert.NoError(t, wm.Seed(wp.ID, s))

	s.Memory.StoreU32(0x1000, 0xDEADBEEF)
	hit, changed := wm.Check(s)
	assert.True(t, changed)
	assert.Equal(t, uint32(0xDEADBEEF), hit.LastValue)
}

func TestWatchpointManager_DisabledWatchpointDoesNotFire(t *testing.T) {
	wm := NewWatchpointManager()
	s := vm.NewState()

	wp := wm.Add(WatchIntReg, "x5", 0, 5)
	assert.NoError(t, wm.Seed(wp.ID, s))
	assert.NoError(t, wm.Disable(wp.ID))

	s.SetReg(5, 42)
	_, changed := wm.Check(s)
	assert.False(t, changed)
}

func TestWatchpointManager_DeleteAndEnableErrors(t *testing.T) {
	wm := NewWatchpointManager()
	wp := wm.Add(WatchIntReg, "x5", 0, 5)

	assert.NoError(t, wm.Delete(wp.ID))
	assert.Error(t, wm.Delete(wp.ID))
	assert.Error(t, wm.Enable(wp.ID))
	assert.Error(t, wm.Seed(wp.ID, vm.NewState()))
}

func TestWatchpointManager_FloatRegWatch(t *testing.T) {
	wm := NewWatchpointManager()
	s := vm.NewState()

	wp := wm.Add(WatchFloatReg, "f1", 0, 1)
	assert.NoError(t, wm.Seed(wp.ID, s))

	s.FRegs[1] = 0x3F800000 // 1.0f
	hit, changed := wm.Check(s)
	assert.True(t, changed)
	assert.Equal(t, uint32(0x3F800000), hit.LastValue)
}
