package settable

import (
	"fmt"
	"time"
)

const debugTimeFormat = "2006-01-02 15:04:05"

// DebugPrintRoundStart is an opt-in narration helper, grounded on the
// teacher's DebugPrintTableGameOpened: a plain fmt print of the
// table's state, never called by the engine itself. Wire it into a
// DealerCallbacks.OnCountdown or similar hook when you want to watch a
// game play out on stdout.
func DebugPrintRoundStart(d *Dealer) {
	fmt.Printf("---------- round %d ----------\n", d.roundID)
	fmt.Println("[time]", time.Now().Format(debugTimeFormat))
	fmt.Println("[dealer]", d.id)
	fmt.Println("[table cards]", d.table.Cards())
	for _, p := range d.players {
		fmt.Printf("player %d (%s): score=%d\n", p.id, p.name, p.Score())
	}
}

// DebugPrintVerdict narrates a single submission's outcome.
func DebugPrintVerdict(playerID int, cards []int, v verdict) {
	label := map[verdict]string{
		verdictNone:        "none",
		verdictPoint:       "point",
		verdictPenalty:     "penalty",
		verdictTooFewCards: "too-few-cards",
	}[v]
	fmt.Printf("[submission] player=%d cards=%v verdict=%s\n", playerID, cards, label)
}

// DebugPrintStats narrates the dealer's running counters.
func DebugPrintStats(s DealerStats) {
	fmt.Printf("[stats] rounds=%d sets=%d illegal=%d reshuffles=%d readyAcks=%d\n",
		s.Rounds, s.SetsFound, s.IllegalAttempts, s.Reshuffles, s.ReadyAcks)
}
