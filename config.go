package settable

import "time"

// Config carries every tunable the dealer, table and players need.
// Loading it from a file or the environment is an outer-layer concern;
// the core only consumes the already-parsed struct.
type Config struct {
	DeckSize    int // total distinct cards, 0..DeckSize-1
	TableSize   int // number of slots on the table
	FeatureSize int // SET_SIZE: tokens that constitute a submitted set

	TurnTimeout   time.Duration // round length before a forced reshuffle
	TableDelay    time.Duration // simulated animation delay for placeCard/removeCard
	PointFreeze   time.Duration // freeze duration after a legal set
	PenaltyFreeze time.Duration // freeze duration after an illegal set

	AISleepBetweenKeypress time.Duration // pace of the AI presser loop
	FastWakeUp             time.Duration // dealer tick while warn == true
	WakeUpTime             time.Duration // dealer tick while warn == false

	PlayerNames []string // thread labels; also implicitly sizes the player roster
	Hints       bool     // carried for an embedding UI; the engine never reads it and emits no hints itself
}

// DefaultConfig mirrors the literal values used throughout spec.md's
// end-to-end scenarios: SET_SIZE=3, tableSize=12, deckSize=81,
// turnTimeout=60s, pointFreeze=1s, penaltyFreeze=3s.
func DefaultConfig() Config {
	return Config{
		DeckSize:               81,
		TableSize:              12,
		FeatureSize:            3,
		TurnTimeout:            60 * time.Second,
		TableDelay:             0,
		PointFreeze:            1 * time.Second,
		PenaltyFreeze:          3 * time.Second,
		AISleepBetweenKeypress: time.Second,
		FastWakeUp:             10 * time.Millisecond,
		WakeUpTime:             time.Second,
	}
}

// Validate checks the configuration is internally consistent, mirroring
// tableEngine.CreateTable's up-front validation of TableSetting.
func (c Config) Validate() error {
	if c.DeckSize <= 0 || c.TableSize <= 0 || c.FeatureSize <= 0 {
		return ErrInvalidTableSetting
	}
	if c.TableSize > c.DeckSize {
		return ErrInvalidTableSetting
	}
	if len(c.PlayerNames) == 0 {
		return ErrInvalidTableSetting
	}
	if c.TurnTimeout <= 0 || c.PointFreeze < 0 || c.PenaltyFreeze < 0 {
		return ErrInvalidTableSetting
	}
	if c.FastWakeUp <= 0 || c.WakeUpTime <= 0 {
		return ErrInvalidTableSetting
	}
	return nil
}

// warn reports whether timeLeft has crossed into the urgency window that
// selects the fast tick; with the default configuration turnTimeout ==
// TurnTimeout so warn is true throughout the round.
func (c Config) warn(timeLeft time.Duration) bool {
	return timeLeft <= c.TurnTimeout
}

func (c Config) tick(timeLeft time.Duration) time.Duration {
	if c.warn(timeLeft) {
		return c.FastWakeUp
	}
	return c.WakeUpTime
}
