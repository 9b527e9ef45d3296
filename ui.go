package settable

import "time"

// Dealer UI sink callbacks (spec.md §6), fire-and-forget. Every
// callback defaults to a no-op; NewDealerCallbacks mirrors the
// teacher's NewTableEngineCallbacks constructor for the same reason:
// callers register only the events they care about.
type DealerCallbacks struct {
	OnPlaceCard        func(card, slot int)
	OnRemoveCard       func(slot int)
	OnPlaceToken       func(player, slot int)
	OnRemoveToken      func(player, slot int)
	OnScoreUpdated     func(player, score int)
	OnFreezeUpdated    func(player int, remaining time.Duration)
	OnCountdown        func(millisLeft int64, warn bool)
	OnWinnersAnnounced func(playerIDs []int)
}

func NewDealerCallbacks() *DealerCallbacks {
	return &DealerCallbacks{
		OnPlaceCard:        func(card, slot int) {},
		OnRemoveCard:       func(slot int) {},
		OnPlaceToken:       func(player, slot int) {},
		OnRemoveToken:      func(player, slot int) {},
		OnScoreUpdated:     func(player, score int) {},
		OnFreezeUpdated:    func(player int, remaining time.Duration) {},
		OnCountdown:        func(millisLeft int64, warn bool) {},
		OnWinnersAnnounced: func(playerIDs []int) {},
	}
}
