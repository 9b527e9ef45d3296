package settable

import (
	"sync"
	"time"

	"github.com/d-protocol/timebank"
)

const unsetCard = -1

// Table owns the slot<->card bidirection and the per-slot token lists
// (spec.md §3/§4.1). It is the dealer's exclusive domain for the card
// maps and a shared, lock-protected domain for tokens: any player
// goroutine and the dealer itself may mutate a slot's token list.
//
// A single mutex serializes every operation, matching the teacher's
// allowance of "one global lock over tokens" (spec.md §5) extended to
// the card maps for simplicity; no operation here spans two slots
// atomically, so lock granularity finer than "whole table" is never
// observable.
type Table struct {
	mu sync.Mutex

	slotToCard []int   // slotToCard[s] == unsetCard means empty
	cardToSlot []int   // cardToSlot[c] == unsetCard means not on table
	tokens     [][]int // tokens[s] is the ordered list of player ids tokened on s

	delay time.Duration
	tb    *timebank.TimeBank

	cb *DealerCallbacks
}

func NewTable(cfg Config, cb *DealerCallbacks) *Table {
	slotToCard := make([]int, cfg.TableSize)
	for i := range slotToCard {
		slotToCard[i] = unsetCard
	}
	cardToSlot := make([]int, cfg.DeckSize)
	for i := range cardToSlot {
		cardToSlot[i] = unsetCard
	}
	return &Table{
		slotToCard: slotToCard,
		cardToSlot: cardToSlot,
		tokens:     make([][]int, cfg.TableSize),
		delay:      cfg.TableDelay,
		tb:         timebank.NewTimeBank(),
		cb:         cb,
	}
}

// delayed runs fn after the table's configured animation delay, making
// the timebank's async task callback synchronous for the caller -
// grounded on tableEngine.delay's wrap of tbForOpenGame.NewTask in a
// sync.WaitGroup.
func (t *Table) delayed(fn func()) {
	if t.delay <= 0 {
		fn()
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	t.tb.NewTask(t.delay, func(isCancelled bool) {
		defer wg.Done()
		if isCancelled {
			return
		}
		fn()
	})
	wg.Wait()
}

// PlaceCard is dealer-only: precondition slotToCard[slot] empty and
// cardToSlot[card] empty.
func (t *Table) PlaceCard(card, slot int) error {
	t.mu.Lock()
	if slot < 0 || slot >= len(t.slotToCard) {
		t.mu.Unlock()
		return ErrSlotOutOfRange
	}
	if t.slotToCard[slot] != unsetCard {
		t.mu.Unlock()
		return ErrSlotOccupied
	}
	if card < 0 || card >= len(t.cardToSlot) || t.cardToSlot[card] != unsetCard {
		t.mu.Unlock()
		return ErrCardAlreadyOnTable
	}
	t.mu.Unlock()

	t.delayed(func() {
		t.mu.Lock()
		t.slotToCard[slot] = card
		t.cardToSlot[card] = slot
		t.mu.Unlock()
	})

	t.cb.OnPlaceCard(card, slot)
	return nil
}

// RemoveCard is dealer-only. It clears every token on the slot (each
// emitting its own UI update) before the card-removal UI event, and
// the tokens[slot] == empty invariant holds on return.
func (t *Table) RemoveCard(slot int) (int, bool) {
	t.mu.Lock()
	if slot < 0 || slot >= len(t.slotToCard) {
		t.mu.Unlock()
		return unsetCard, false
	}
	card := t.slotToCard[slot]
	if card == unsetCard {
		t.mu.Unlock()
		return unsetCard, false
	}
	t.mu.Unlock()

	t.delayed(func() {
		t.mu.Lock()
		t.slotToCard[slot] = unsetCard
		t.cardToSlot[card] = unsetCard
		t.mu.Unlock()
	})

	t.mu.Lock()
	removed := t.tokens[slot]
	t.tokens[slot] = nil
	t.mu.Unlock()

	for _, player := range removed {
		t.cb.OnRemoveToken(player, slot)
	}
	t.cb.OnRemoveCard(slot)

	return card, true
}

// PlaceToken is a no-op if slot is empty; otherwise it appends player
// to tokens[slot]. It is idempotent against a duplicate call only if
// the caller checks HasToken first - the Player does.
func (t *Table) PlaceToken(player, slot int) {
	t.mu.Lock()
	if slot < 0 || slot >= len(t.slotToCard) || t.slotToCard[slot] == unsetCard {
		t.mu.Unlock()
		return
	}
	t.tokens[slot] = append(t.tokens[slot], player)
	t.mu.Unlock()

	t.cb.OnPlaceToken(player, slot)
}

// RemoveToken removes one occurrence of player from tokens[slot] and
// reports whether a removal occurred.
func (t *Table) RemoveToken(player, slot int) bool {
	t.mu.Lock()
	if slot < 0 || slot >= len(t.slotToCard) {
		t.mu.Unlock()
		return false
	}
	list := t.tokens[slot]
	for i, p := range list {
		if p == player {
			t.tokens[slot] = append(list[:i], list[i+1:]...)
			t.mu.Unlock()
			t.cb.OnRemoveToken(player, slot)
			return true
		}
	}
	t.mu.Unlock()
	return false
}

func (t *Table) HasToken(player, slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if slot < 0 || slot >= len(t.slotToCard) {
		return false
	}
	for _, p := range t.tokens[slot] {
		if p == player {
			return true
		}
	}
	return false
}

// Size returns the number of slots on the table. slotToCard's length
// is fixed at construction, so this needs no lock.
func (t *Table) Size() int {
	return len(t.slotToCard)
}

// SlotOccupied reports whether slot currently holds a card. Players
// must tolerate a slot becoming empty between a key press and its
// dequeue; this is the read they use to make that check.
func (t *Table) SlotOccupied(slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if slot < 0 || slot >= len(t.slotToCard) {
		return false
	}
	return t.slotToCard[slot] != unsetCard
}

// GetPlayerCards returns the cards (not slots) currently tokened by
// player, in slot order.
func (t *Table) GetPlayerCards(player int) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cards := make([]int, 0, 4)
	for slot, list := range t.tokens {
		for _, p := range list {
			if p == player {
				cards = append(cards, t.slotToCard[slot])
				break
			}
		}
	}
	return cards
}

func (t *Table) CountPlayerTokens(player int) int {
	return len(t.GetPlayerCards(player))
}

// RemoveAllCards clears every occupied slot and returns the cards it
// removed, in slot order.
func (t *Table) RemoveAllCards() []int {
	removed := make([]int, 0, len(t.slotToCard))
	for slot := range t.slotToCard {
		if card, ok := t.RemoveCard(slot); ok {
			removed = append(removed, card)
		}
	}
	return removed
}

// EmptySlots returns the currently unoccupied slot indices, in order.
func (t *Table) EmptySlots() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	empty := make([]int, 0, len(t.slotToCard))
	for slot, card := range t.slotToCard {
		if card == unsetCard {
			empty = append(empty, slot)
		}
	}
	return empty
}

// OccupiedSlots returns the currently occupied slot indices, in order.
func (t *Table) OccupiedSlots() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	occupied := make([]int, 0, len(t.slotToCard))
	for slot, card := range t.slotToCard {
		if card != unsetCard {
			occupied = append(occupied, slot)
		}
	}
	return occupied
}

// SlotOf returns the slot currently holding card, if it is on the
// table.
func (t *Table) SlotOf(card int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if card < 0 || card >= len(t.cardToSlot) || t.cardToSlot[card] == unsetCard {
		return unsetCard, false
	}
	return t.cardToSlot[card], true
}

// CardAt returns the card at slot, if any.
func (t *Table) CardAt(slot int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if slot < 0 || slot >= len(t.slotToCard) || t.slotToCard[slot] == unsetCard {
		return unsetCard, false
	}
	return t.slotToCard[slot], true
}

// Cards returns every card currently on the table, in slot order.
func (t *Table) Cards() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cards := make([]int, 0, len(t.slotToCard))
	for _, card := range t.slotToCard {
		if card != unsetCard {
			cards = append(cards, card)
		}
	}
	return cards
}
