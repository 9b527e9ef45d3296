package settable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAIPresser_PickSlotSamplesFullRange asserts pickSlot is a uniform
// draw over the whole table, not restricted to occupied slots
// (spec.md §4.3 step 2).
func TestAIPresser_PickSlotSamplesFullRange(t *testing.T) {
	cfg := DefaultConfig()
	tb := NewTable(cfg, NewDealerCallbacks())
	require.NoError(t, tb.PlaceCard(1, 0))
	require.NoError(t, tb.PlaceCard(2, 1))

	p := newPlayer(0, "ai", tb, cfg, NewDealerCallbacks(), NewNativeOracle(cfg.DeckSize), newPlayerGate([]int{0}), nil)
	ai := NewAIPresser(p, tb, 5*time.Millisecond, 99)

	sawEmptySlot := false
	for i := 0; i < 500; i++ {
		picked := ai.pickSlot()
		require.True(t, picked >= 0 && picked < cfg.TableSize)
		if picked >= 2 {
			sawEmptySlot = true
		}
	}
	assert.True(t, sawEmptySlot, "pickSlot never sampled outside the two occupied slots")
}

// TestAIPresser_KeyPressDropsPressesOnEmptySlots asserts that, even
// though pickSlot samples the full table uniformly, Player.KeyPress's
// own gating (slotToCard[slot] non-empty) keeps unoccupied-slot
// presses out of the queue.
func TestAIPresser_KeyPressDropsPressesOnEmptySlots(t *testing.T) {
	cfg := DefaultConfig()
	tb := NewTable(cfg, NewDealerCallbacks())
	require.NoError(t, tb.PlaceCard(1, 0))
	require.NoError(t, tb.PlaceCard(2, 1))

	p := newPlayer(0, "ai", tb, cfg, NewDealerCallbacks(), NewNativeOracle(cfg.DeckSize), newPlayerGate([]int{0}), nil)
	ai := NewAIPresser(p, tb, 5*time.Millisecond, 99)

	ai.Start()
	time.Sleep(40 * time.Millisecond)
	ai.Stop()

	p.queueMu.Lock()
	defer p.queueMu.Unlock()
	for _, a := range p.queue {
		assert.True(t, a.slot == 0 || a.slot == 1)
	}
}

func TestAIPresser_NoPressesWhenTableEmpty(t *testing.T) {
	cfg := DefaultConfig()
	tb := NewTable(cfg, NewDealerCallbacks())
	p := newPlayer(0, "ai", tb, cfg, NewDealerCallbacks(), NewNativeOracle(cfg.DeckSize), newPlayerGate([]int{0}), nil)
	ai := NewAIPresser(p, tb, 5*time.Millisecond, 1)

	ai.Start()
	time.Sleep(30 * time.Millisecond)
	ai.Stop()

	p.queueMu.Lock()
	defer p.queueMu.Unlock()
	assert.Empty(t, p.queue)
}
