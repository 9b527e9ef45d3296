package settable

import (
	"math/rand"
	"sync"
	"time"
)

// AIPresser drives a Player's KeyPress the way a human would, picking
// a uniformly random slot in [0, tableSize) every AISleepBetweenKeypress
// (spec.md §4.3 step 2: "pick a uniformly random slot in [0, tableSize)")
// and leaving the empty/disabled/mid-freeze gating entirely to
// Player.KeyPress, same as a human's keystroke would be. It is
// grounded on the pokerlib actor runner's pattern of a dedicated
// goroutine that polls table state and issues one action per tick,
// rebuilt here around a plain ticker instead of that runner's
// per-move timebank task since an AI's pace is a steady cadence
// rather than a one-shot deadline.
type AIPresser struct {
	player *Player
	table  *Table
	rnd    *rand.Rand
	period time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func NewAIPresser(player *Player, table *Table, period time.Duration, seed int64) *AIPresser {
	return &AIPresser{
		player: player,
		table:  table,
		rnd:    rand.New(rand.NewSource(seed)),
		period: period,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (a *AIPresser) Start() {
	go a.run()
}

func (a *AIPresser) Stop() {
	a.stopOnce.Do(func() {
		close(a.stopCh)
	})
	<-a.done
}

func (a *AIPresser) run() {
	defer close(a.done)

	ticker := time.NewTicker(a.period)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.player.KeyPress(a.pickSlot())
		}
	}
}

// pickSlot samples uniformly over every slot index on the table,
// occupied or not; Player.KeyPress is what decides whether a given
// press is acted on.
func (a *AIPresser) pickSlot() int {
	return a.rnd.Intn(a.table.Size())
}
