package settable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TableDelay = 0
	return NewTable(cfg, NewDealerCallbacks())
}

func TestTable_PlaceAndRemoveCard(t *testing.T) {
	tb := newTestTable(t)

	require.NoError(t, tb.PlaceCard(5, 0))
	assert.True(t, tb.SlotOccupied(0))

	card, ok := tb.CardAt(0)
	require.True(t, ok)
	assert.Equal(t, 5, card)

	removed, ok := tb.RemoveCard(0)
	require.True(t, ok)
	assert.Equal(t, 5, removed)
	assert.False(t, tb.SlotOccupied(0))
}

func TestTable_PlaceCard_RejectsOccupiedSlotAndDuplicateCard(t *testing.T) {
	tb := newTestTable(t)

	require.NoError(t, tb.PlaceCard(1, 0))
	assert.ErrorIs(t, tb.PlaceCard(2, 0), ErrSlotOccupied)
	assert.ErrorIs(t, tb.PlaceCard(1, 1), ErrCardAlreadyOnTable)
}

func TestTable_TokensFollowSlotRemoval(t *testing.T) {
	tb := newTestTable(t)
	cb := tb.cb

	var removedPlayer, removedSlot int
	cb.OnRemoveToken = func(player, slot int) {
		removedPlayer, removedSlot = player, slot
	}

	require.NoError(t, tb.PlaceCard(7, 3))
	tb.PlaceToken(2, 3)
	assert.True(t, tb.HasToken(2, 3))

	tb.RemoveCard(3)
	assert.False(t, tb.HasToken(2, 3))
	assert.Equal(t, 2, removedPlayer)
	assert.Equal(t, 3, removedSlot)
}

func TestTable_PlaceToken_NoOpOnEmptySlot(t *testing.T) {
	tb := newTestTable(t)
	tb.PlaceToken(0, 4)
	assert.False(t, tb.HasToken(0, 4))
}

func TestTable_GetPlayerCards_OrdersBySlot(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.PlaceCard(10, 5))
	require.NoError(t, tb.PlaceCard(20, 1))

	tb.PlaceToken(0, 5)
	tb.PlaceToken(0, 1)

	cards := tb.GetPlayerCards(0)
	assert.Equal(t, []int{20, 10}, cards)
	assert.Equal(t, 2, tb.CountPlayerTokens(0))
}

func TestTable_RemoveAllCards(t *testing.T) {
	tb := newTestTable(t)
	require.NoError(t, tb.PlaceCard(1, 0))
	require.NoError(t, tb.PlaceCard(2, 1))

	removed := tb.RemoveAllCards()
	assert.ElementsMatch(t, []int{1, 2}, removed)
	assert.Empty(t, tb.Cards())
	assert.Len(t, tb.EmptySlots(), len(tb.slotToCard))
}
