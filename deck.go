package settable

import "math/rand"

// Deck is the dealer's private draw pile: cards not yet placed on the
// table. It is only ever touched by the dealer goroutine, so it needs
// no lock of its own.
type Deck struct {
	cards []int
	rnd   *rand.Rand
}

// NewDeck builds a full, shuffled deck of size cfg.DeckSize. seed is
// exposed so tests can reproduce a specific shuffle.
func NewDeck(size int, seed int64) *Deck {
	cards := make([]int, size)
	for i := range cards {
		cards[i] = i
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards, rnd: rnd}
}

func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}

// Draw removes and returns the top card. Callers must check Empty
// first.
func (d *Deck) Draw() int {
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

// Return puts cards back into the deck and reshuffles, used when the
// dealer collects the table back into the draw pile: on a forced
// reshuffle after the round deadline, and in ensureSetOnTable when the
// dealt table holds no legal set.
func (d *Deck) Return(cards []int) {
	d.cards = append(d.cards, cards...)
	d.rnd.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Peek exposes the remaining cards without drawing them, used by the
// oracle when searching for a legal set across deck plus table.
func (d *Deck) Peek() []int {
	out := make([]int, len(d.cards))
	copy(out, d.cards)
	return out
}
