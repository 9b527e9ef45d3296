package settable

import "sync"

// playerGate is the shared suspend/resume point between the dealer
// and every player goroutine (spec.md §9 Design Notes: "the dealer
// can enable or disable any player's action processing"). It is a
// single sync.Cond over a small set of per-player flags rather than
// one condition variable per player, because the dealer routinely
// flips many players at once (setAllEnabled) and a single
// Broadcast covers every waiter in one call.
//
// Lock order: playerGate.mu is never held while a Player's own mu or
// queueMu is acquired, so it cannot participate in a cycle with
// either of those.
type playerGate struct {
	mu          sync.Mutex
	cond        *sync.Cond
	enabledSet  map[int]bool
	terminating map[int]bool
}

func newPlayerGate(ids []int) *playerGate {
	g := &playerGate{
		enabledSet:  make(map[int]bool, len(ids)),
		terminating: make(map[int]bool, len(ids)),
	}
	g.cond = sync.NewCond(&g.mu)
	for _, id := range ids {
		g.enabledSet[id] = true
	}
	return g
}

// wait blocks until id is enabled or terminating, returning false in
// the terminating case so callers know to exit rather than proceed.
func (g *playerGate) wait(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for !g.enabledSet[id] && !g.terminating[id] {
		g.cond.Wait()
	}
	return !g.terminating[id]
}

func (g *playerGate) enabled(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabledSet[id]
}

func (g *playerGate) terminated(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.terminating[id]
}

func (g *playerGate) setEnabled(id int, val bool) {
	g.mu.Lock()
	g.enabledSet[id] = val
	g.cond.Broadcast()
	g.mu.Unlock()
}

// setAllEnabled flips every known player at once, used by the dealer
// at round start/end instead of N individual setEnabled calls so a
// single Broadcast wakes the whole roster.
func (g *playerGate) setAllEnabled(val bool) {
	g.mu.Lock()
	for id := range g.enabledSet {
		g.enabledSet[id] = val
	}
	g.cond.Broadcast()
	g.mu.Unlock()
}

func (g *playerGate) setTerminating(id int) {
	g.mu.Lock()
	g.terminating[id] = true
	g.cond.Broadcast()
	g.mu.Unlock()
}

func (g *playerGate) setAllTerminating() {
	g.mu.Lock()
	for id := range g.enabledSet {
		g.terminating[id] = true
	}
	g.cond.Broadcast()
	g.mu.Unlock()
}
