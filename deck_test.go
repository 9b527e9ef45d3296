package settable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeck_DrawExhaustsAndCoversEveryCard(t *testing.T) {
	d := NewDeck(81, 42)
	require.Equal(t, 81, d.Len())

	seen := make(map[int]bool, 81)
	for !d.Empty() {
		seen[d.Draw()] = true
	}
	assert.Len(t, seen, 81)
	assert.True(t, d.Empty())
}

func TestDeck_ReturnReshufflesAndRestoresCount(t *testing.T) {
	d := NewDeck(12, 7)
	drawn := []int{d.Draw(), d.Draw(), d.Draw()}
	require.Equal(t, 9, d.Len())

	d.Return(drawn)
	assert.Equal(t, 12, d.Len())

	peeked := d.Peek()
	assert.Len(t, peeked, 12)
}
