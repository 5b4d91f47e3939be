package debugger

import (
	"fmt"
	"sync"

	"github.com/lookbusy1344/rv32i-sim/vm"
)

// WatchKind distinguishes an integer-register watch, a float-register
// watch, and a memory-word watch. All three are implemented as
// value-change detection polled once per Step — there is no integration
// with Memory's access path to distinguish a true read from a write.
type WatchKind int

const (
	WatchMemory WatchKind = iota
	WatchIntReg
	WatchFloatReg
)

// Watchpoint monitors one location and fires when its value differs from
// the last time it was checked.
type Watchpoint struct {
	ID         int
	Kind       WatchKind
	Expression string
	Address    uint32 // meaningful when Kind == WatchMemory
	Register   int    // meaningful when Kind == WatchIntReg or WatchFloatReg
	Enabled    bool
	LastValue  uint32
	HitCount   int
}

type WatchpointManager struct {
	mu          sync.RWMutex
	watchpoints map[int]*Watchpoint
	nextID      int
}

func NewWatchpointManager() *WatchpointManager {
	return &WatchpointManager{watchpoints: make(map[int]*Watchpoint), nextID: 1}
}

func (wm *WatchpointManager) Add(kind WatchKind, expression string, address uint32, register int) *Watchpoint {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	wp := &Watchpoint{ID: wm.nextID, Kind: kind, Expression: expression, Address: address, Register: register, Enabled: true}
	wm.watchpoints[wp.ID] = wp
	wm.nextID++
	return wp
}

func (wm *WatchpointManager) Delete(id int) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	if _, exists := wm.watchpoints[id]; !exists {
		return fmt.Errorf("watchpoint %d not found", id)
	}
	delete(wm.watchpoints, id)
	return nil
}

func (wm *WatchpointManager) setEnabled(id int, enabled bool) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wp, exists := wm.watchpoints[id]
	if !exists {
		return fmt.Errorf("watchpoint %d not found", id)
	}
	wp.Enabled = enabled
	return nil
}

func (wm *WatchpointManager) Enable(id int) error  { return wm.setEnabled(id, true) }
func (wm *WatchpointManager) Disable(id int) error { return wm.setEnabled(id, false) }

func (wm *WatchpointManager) Get(id int) *Watchpoint {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.watchpoints[id]
}

func (wm *WatchpointManager) All() []*Watchpoint {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	out := make([]*Watchpoint, 0, len(wm.watchpoints))
	for _, wp := range wm.watchpoints {
		out = append(out, wp)
	}
	return out
}

func (wm *WatchpointManager) Clear() {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.watchpoints = make(map[int]*Watchpoint)
}

func (wm *WatchpointManager) Count() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return len(wm.watchpoints)
}

func currentValue(wp *Watchpoint, s *vm.State) uint32 {
	switch wp.Kind {
	case WatchIntReg:
		return s.Regs[wp.Register]
	case WatchFloatReg:
		return s.FRegs[wp.Register]
	default:
		return s.Memory.LoadU32(wp.Address)
	}
}

// Check polls every enabled watchpoint and returns the first whose value
// changed since the last check.
func (wm *WatchpointManager) Check(s *vm.State) (*Watchpoint, bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	for _, wp := range wm.watchpoints {
		if !wp.Enabled {
			continue
		}
		v := currentValue(wp, s)
		if v != wp.LastValue {
			wp.HitCount++
			wp.LastValue = v
			return wp, true
		}
	}
	return nil, false
}

// Seed records the current value of a freshly created watchpoint so the
// first Check call doesn't spuriously fire on its initial value.
func (wm *WatchpointManager) Seed(id int, s *vm.State) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wp, exists := wm.watchpoints[id]
	if !exists {
		return fmt.Errorf("watchpoint %d not found", id)
	}
	wp.LastValue = currentValue(wp, s)
	return nil
}
