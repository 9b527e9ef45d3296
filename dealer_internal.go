package settable

import (
	"time"

	"github.com/d-protocol/syncsaga"
	"github.com/thoas/go-funk"
)

// startRound deals a fresh legal table (spec.md §4.1 step 1-3),
// resets every player's queue, re-enables the roster and arms the
// round-start acknowledgment tracker before opening the gate.
func (d *Dealer) startRound() {
	d.lock.Lock()
	d.roundID++
	d.deadline = time.Now().Add(d.cfg.TurnTimeout)
	d.stats.Rounds++
	d.lock.Unlock()

	d.noteSetAvailability(d.ensureSetOnTable())

	for _, p := range d.players {
		p.clearQueue()
	}

	d.armReadyGroup()

	d.gate.setAllEnabled(true)
	d.wakeMonitor()
}

// armReadyGroup resets syncsaga's ReadyGroup for the new round and
// uses OnCompleted purely as an observability counter: every player
// is marked ready the instant the round opens (spec.md defines no
// player "ready up" handshake of its own), so completion fires
// immediately and increments Stats.ReadyAcks. This never gates
// timerLoop - it layers a count on top of the Cond-based gate without
// altering the control flow spec.md defines.
func (d *Dealer) armReadyGroup() {
	d.rg.Stop()
	d.rg.ResetParticipants()
	for _, p := range d.players {
		d.rg.Add(int64(p.id), false)
	}
	d.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		d.lock.Lock()
		d.stats.ReadyAcks++
		d.lock.Unlock()
	})
	d.rg.Start()
	for _, p := range d.players {
		d.rg.Ready(int64(p.id))
	}
}

// ensureSetOnTable fills every empty slot from the deck (spec.md §9
// Open Question: the recommended "fill every empty slot until deck
// empty" loop bound) and keeps the table in a state that contains at
// least one legal set, reshuffling the whole table back into the deck
// and redealing when it doesn't. It returns ErrNoLegalSetRemains when
// no legal set exists anywhere in the table-plus-deck pool, since
// reshuffling a fixed pool can never manufacture one; the caller
// records this so shouldFinish can end the game even before the deck
// is literally empty.
func (d *Dealer) ensureSetOnTable() error {
	for {
		d.placeCardsOnTable()

		if len(d.oracle.FindSets(d.table.Cards(), 1)) > 0 {
			return nil
		}

		pool := append(append([]int{}, d.table.Cards()...), d.deck.Peek()...)
		if len(d.oracle.FindSets(pool, 1)) == 0 {
			return ErrNoLegalSetRemains
		}

		collected := d.table.RemoveAllCards()
		d.deck.Return(collected)
		d.lock.Lock()
		d.stats.Reshuffles++
		d.lock.Unlock()
	}
}

func (d *Dealer) placeCardsOnTable() {
	for _, slot := range d.table.EmptySlots() {
		if d.deck.Empty() {
			break
		}
		card := d.deck.Draw()
		_ = d.table.PlaceCard(card, slot)
	}
}

// enqueueSubmission is called from a player's goroutine (via
// Player.submit) to hand its pending cards to the dealer's FIFO.
func (d *Dealer) enqueueSubmission(playerID int) {
	d.subMu.Lock()
	d.subs = append(d.subs, playerID)
	d.subMu.Unlock()

	d.wakeMonitor()
}

// wakeMonitor nudges timerLoop out of its wait without blocking if
// nobody is listening yet, grounded on the teacher's runner pattern of
// a non-blocking notify channel ahead of an actual deadline check.
func (d *Dealer) wakeMonitor() {
	select {
	case d.wakeCh <- struct{}{}:
	default:
	}
}

// timerLoop is the dealer's own goroutine: it wakes on its own ticking
// schedule (spec.md §4.1's warn/non-warn tick cadence) or whenever
// enqueueSubmission signals a pending submission. It drains the
// submission queue on that signal (every enqueue sends one), reports
// the countdown on each tick, and forces a reshuffle when a tick finds
// the round deadline passed.
func (d *Dealer) timerLoop() {
	defer close(d.loopDone)

	for {
		d.lock.Lock()
		timeLeft := time.Until(d.deadline)
		d.lock.Unlock()

		tick := d.cfg.tick(timeLeft)

		select {
		case <-d.stopCh:
			return
		case <-d.wakeCh:
			d.checkSets()
			if d.shouldFinish() {
				d.finish()
				return
			}
		case <-time.After(tick):
			d.lock.Lock()
			expired := time.Now().After(d.deadline)
			warn := d.cfg.warn(timeLeft)
			d.lock.Unlock()

			d.cb.OnCountdown(int64(timeLeft/time.Millisecond), warn)

			if expired {
				if d.shouldFinish() {
					d.finish()
					return
				}
				d.forceReshuffle()
			}
		}
	}
}

// checkSets drains the submission queue in FIFO order (spec.md §4.1
// step 5-7), verifying each submitter's current cards against the
// oracle and resolving its rendezvous.
//
// Open Question resolution: when a submitter no longer holds exactly
// FeatureSize cards (another player's earlier-drained legal set
// removed a shared card from under it), checkSets still resolves with
// verdictTooFewCards rather than leaving the submitter parked. Never
// resolving would deadlock that player's goroutine forever under the
// two-lock design spec.md mandates; verdictTooFewCards carries no
// freeze (see Player.handleFreeze), so the only observable effect is
// that the player is not double-penalized for a race it did not
// cause.
func (d *Dealer) checkSets() {
	for {
		d.subMu.Lock()
		if len(d.subs) == 0 {
			d.subMu.Unlock()
			return
		}
		playerID := d.subs[0]
		d.subs = d.subs[1:]
		d.subMu.Unlock()

		p, ok := d.playerIdx[playerID]
		if !ok {
			continue
		}

		cards := d.table.GetPlayerCards(playerID)
		if len(cards) != d.cfg.FeatureSize {
			p.resolve(verdictTooFewCards)
			continue
		}

		if d.oracle.TestSet(cards) {
			d.removeSet(cards)
			d.lock.Lock()
			d.stats.SetsFound++
			d.lock.Unlock()
			p.resolve(verdictPoint)
			d.noteSetAvailability(d.ensureSetOnTable())
		} else {
			d.lock.Lock()
			d.stats.IllegalAttempts++
			d.lock.Unlock()
			p.resolve(verdictPenalty)
		}
	}
}

// removeSet takes the winning three cards off the table, clearing
// every token on their slots - including tokens other players happen
// to hold on the same cards. OnWinnersAnnounced is terminal-only
// (spec.md §4.4/§6); the per-round score change this produces is
// already reported through Player.point's OnScoreUpdated.
func (d *Dealer) removeSet(cards []int) {
	for _, wantCard := range cards {
		for _, slot := range d.table.OccupiedSlots() {
			if card, ok := d.table.CardAt(slot); ok && card == wantCard {
				d.table.RemoveCard(slot)
				break
			}
		}
	}
}

// forceReshuffle ends the round early when the deadline passes with
// no legal set resolved, suspending the roster while the table is
// rebuilt.
func (d *Dealer) forceReshuffle() {
	d.gate.setAllEnabled(false)

	collected := d.table.RemoveAllCards()
	d.deck.Return(collected)

	d.lock.Lock()
	d.stats.Reshuffles++
	d.lock.Unlock()

	d.startRound()
}

// noteSetAvailability latches noSetsRemain once ensureSetOnTable
// reports ErrNoLegalSetRemains; the condition is permanent for the
// rest of the game since the table-plus-deck pool only ever shrinks.
func (d *Dealer) noteSetAvailability(err error) {
	if err == nil {
		return
	}
	d.lock.Lock()
	d.noSetsRemain = true
	d.lock.Unlock()
}

// shouldFinish reports whether the game has reached its terminal state
// (spec.md §4.1 End Condition): the deck is exhausted and no legal set
// remains on the table, or ensureSetOnTable has already determined no
// legal set remains anywhere in the table-plus-deck pool.
func (d *Dealer) shouldFinish() bool {
	d.lock.Lock()
	noSets := d.noSetsRemain
	d.lock.Unlock()

	return noSets || (d.deck.Empty() && len(d.oracle.FindSets(d.table.Cards(), 1)) == 0)
}

// finish suspends every player for good and announces the winner(s)
// by top score, ties included. Grounded on the teacher's funk.Filter
// use in calcLeavePlayers for selecting a subset of the roster by
// predicate.
func (d *Dealer) finish() {
	d.gate.setAllEnabled(false)

	best := -1
	for _, p := range d.players {
		if s := p.Score(); s > best {
			best = s
		}
	}

	topScorers := funk.Filter(d.players, func(p *Player) bool {
		return p.Score() == best
	}).([]*Player)

	winners := funk.Map(topScorers, func(p *Player) int {
		return p.id
	}).([]int)

	d.cb.OnWinnersAnnounced(winners)
}
