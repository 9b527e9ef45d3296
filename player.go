package settable

import (
	"sync"
	"time"
)

// action is one key press queued for a player's own goroutine to
// consume (spec.md §4.2, §9 Design Notes). Only slot presses are
// queued; a player's own goroutine decides what each press means
// against current table state at dequeue time.
type action struct {
	slot int
}

// Player runs its own goroutine and owns two independent
// synchronization points, per spec.md §9's explicit rejection of a
// single monitor:
//
//   - queueMu/queueCond guards the bounded action queue. KeyPress is
//     the producer (called from outside, e.g. a human input thread or
//     an AIPresser); the player's own loop is the sole consumer.
//   - mu/cond is the dealer<->player verdict rendezvous used once per
//     submission: the player's loop blocks on it after handing a
//     submission to the dealer, and the dealer's checkSets wakes it
//     with the outcome.
//
// A third, shared synchronization point - the dealer's playerGate -
// is used to suspend/resume the whole roster between rounds. Its lock
// may be taken while queueMu is held (KeyPress and run check
// gate.terminated inside the queue wait), never the other way round.
type Player struct {
	id    int
	name  string
	table *Table
	cfg   Config
	cb    *DealerCallbacks
	oracle SetOracle

	gate   *playerGate
	dealer *Dealer

	queueMu   sync.Mutex
	queueCond *sync.Cond
	queue     []action
	queueCap  int

	mu           sync.Mutex
	cond         *sync.Cond
	score        int
	awaitVerdict bool
	verdict      verdict
	status       status
	done         chan struct{}
}

type verdict int

const (
	verdictNone verdict = iota
	verdictPoint
	verdictPenalty
	verdictTooFewCards
)

// status mirrors spec.md §4.2's player status field: "one of {Continue,
// Point, Penalty, Terminated}; written by the dealer, read by the
// player." The zero value is statusContinue, matching a freshly dealt
// player.
type status int

const (
	statusContinue status = iota
	statusPoint
	statusPenalty
	statusTerminated
)

func newPlayer(id int, name string, table *Table, cfg Config, cb *DealerCallbacks, oracle SetOracle, gate *playerGate, dealer *Dealer) *Player {
	p := &Player{
		id:       id,
		name:     name,
		table:    table,
		cfg:      cfg,
		cb:       cb,
		oracle:   oracle,
		gate:     gate,
		dealer:   dealer,
		queueCap: cfg.FeatureSize,
		done:     make(chan struct{}),
	}
	p.queueCond = sync.NewCond(&p.queueMu)
	p.cond = sync.NewCond(&p.mu)
	return p
}

// statusIsContinue reports whether the player's status is currently
// Continue, one of the four keyPress gating conditions (spec.md §4.2
// line "Dropped unless all of: not terminating, currently enabled,
// status is Continue, and slotToCard[slot] is non-empty").
func (p *Player) statusIsContinue() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status == statusContinue
}

// KeyPress is external (for humans) or internal-AI input (spec.md
// §4.2). It is dropped unless all of: the player is not terminating,
// currently enabled, status is Continue, and the pressed slot holds a
// card. Otherwise it blocks the caller until it can enqueue the slot
// into the action queue (capacity cfg.FeatureSize), then notifies the
// player loop that work is available.
func (p *Player) KeyPress(slot int) {
	if p.gate.terminated(p.id) || !p.gate.enabled(p.id) || !p.statusIsContinue() || !p.table.SlotOccupied(slot) {
		return
	}

	p.queueMu.Lock()
	for len(p.queue) >= p.queueCap {
		if p.gate.terminated(p.id) {
			p.queueMu.Unlock()
			return
		}
		p.queueCond.Wait()
	}
	p.queue = append(p.queue, action{slot: slot})
	p.queueCond.Broadcast()
	p.queueMu.Unlock()
}

// clearQueue drops every pending press, used by the dealer's
// startRound before it opens the gate for a round. It leaves tokens
// alone; a penalized player's tokens stay through its freeze, and
// they leave the table only with their cards (RemoveCard), as happens
// to every token when a forced reshuffle collects the table.
func (p *Player) clearQueue() {
	p.queueMu.Lock()
	p.queue = p.queue[:0]
	p.queueMu.Unlock()
}

// Hint returns the feature decomposition of every card currently held
// on the table, for a UI that honors cfg.Hints (spec.md §6's optional
// hint emitter). It is a pure read against the oracle, never called
// by the engine itself.
func (p *Player) Hint() [][]int {
	return p.oracle.CardsToFeatures(p.table.Cards())
}

// Score returns the player's current score under its own lock.
func (p *Player) Score() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.score
}

// run is the player's main loop (spec.md §4.2 Main Loop), one
// goroutine for the lifetime of the dealer.
func (p *Player) run() {
	defer close(p.done)

	for {
		if !p.gate.wait(p.id) {
			return
		}

		p.queueMu.Lock()
		for len(p.queue) == 0 {
			p.queueCond.Wait()
			if p.gate.terminated(p.id) {
				p.queueMu.Unlock()
				return
			}
		}
		next := p.queue[0]
		p.queue = p.queue[1:]
		p.queueCond.Broadcast()
		p.queueMu.Unlock()

		if !p.gate.enabled(p.id) {
			// Woke between the gate check and the dequeue; the press
			// stays dropped rather than acted on out of turn.
			continue
		}

		p.handleAction(next)
	}
}

// handleAction toggles a token on the pressed slot, or - if the press
// brings the player's token count to FeatureSize - submits to the
// dealer and blocks for the verdict.
func (p *Player) handleAction(a action) {
	if !p.table.SlotOccupied(a.slot) {
		return
	}

	if p.table.HasToken(p.id, a.slot) {
		p.table.RemoveToken(p.id, a.slot)
		return
	}

	if p.table.CountPlayerTokens(p.id) >= p.cfg.FeatureSize {
		// Already at the limit; a further distinct press is ignored
		// until a submission or a removal frees a slot.
		return
	}

	p.table.PlaceToken(p.id, a.slot)

	if p.table.CountPlayerTokens(p.id) != p.cfg.FeatureSize {
		return
	}

	p.submit()
}

// submit hands the player's current cards to the dealer's submission
// queue and blocks on the verdict rendezvous until checkSets answers.
func (p *Player) submit() {
	p.mu.Lock()
	p.awaitVerdict = true
	p.verdict = verdictNone
	p.mu.Unlock()

	p.dealer.enqueueSubmission(p.id)

	p.mu.Lock()
	for p.awaitVerdict {
		p.cond.Wait()
	}
	v := p.verdict
	p.mu.Unlock()

	p.handleFreeze(v)
}

// resolve is called by the dealer's checkSets from its own goroutine
// to deliver a verdict and wake the waiting player.
func (p *Player) resolve(v verdict) {
	p.mu.Lock()
	p.verdict = v
	switch v {
	case verdictPoint:
		p.status = statusPoint
	case verdictPenalty:
		p.status = statusPenalty
	case verdictTooFewCards, verdictNone:
		p.status = statusContinue
	}
	p.awaitVerdict = false
	p.cond.Broadcast()
	p.mu.Unlock()
}

// handleFreeze applies the scoring and freeze side effects of a
// verdict (spec.md §4.2 step 7). verdictTooFewCards is a no-op by
// design: the set vanished out from under the player (another
// player's simultaneous legal submission removed a shared card) and
// spec.md §9 leaves the cards-gone race unpenalized.
func (p *Player) handleFreeze(v verdict) {
	switch v {
	case verdictPoint:
		p.point()
	case verdictPenalty:
		p.penalty()
	case verdictTooFewCards, verdictNone:
	}
}

func (p *Player) point() {
	p.mu.Lock()
	p.score++
	score := p.score
	p.mu.Unlock()

	p.cb.OnScoreUpdated(p.id, score)
	p.freeze(p.cfg.PointFreeze)

	p.mu.Lock()
	p.status = statusContinue
	p.mu.Unlock()
}

func (p *Player) penalty() {
	p.freeze(p.cfg.PenaltyFreeze)

	p.mu.Lock()
	p.status = statusContinue
	p.mu.Unlock()
}

// freeze disables the player at the gate for d, then re-enables it.
// The wait is a task on the dealer's TimeBank; the round timer itself
// runs on time.After and is not tied to it.
func (p *Player) freeze(d time.Duration) {
	if d <= 0 {
		return
	}
	p.gate.setEnabled(p.id, false)
	p.cb.OnFreezeUpdated(p.id, d)

	var wg sync.WaitGroup
	wg.Add(1)
	p.dealer.tb.NewTask(d, func(isCancelled bool) {
		defer wg.Done()
	})
	wg.Wait()

	p.cb.OnFreezeUpdated(p.id, 0)
	p.gate.setEnabled(p.id, true)
}

// terminate marks the player as shutting down and wakes every wait
// point it might be blocked on.
func (p *Player) terminate() {
	p.gate.setTerminating(p.id)

	p.queueCond.Broadcast()

	p.mu.Lock()
	p.awaitVerdict = false
	p.verdict = verdictNone
	p.status = statusTerminated
	p.cond.Broadcast()
	p.mu.Unlock()

	<-p.done
}
