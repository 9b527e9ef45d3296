package settable

import (
	"sync"
	"time"

	"github.com/d-protocol/syncsaga"
	"github.com/d-protocol/timebank"
	"github.com/google/uuid"
	"github.com/thoas/go-funk"
)

// DealerOption configures a Dealer at construction time, mirroring
// the teacher's TableEngineOpt functional-option idiom.
type DealerOption func(*Dealer)

// WithOracle overrides the default classic-Set oracle, e.g. to plug in
// a table with a different feature encoding.
func WithOracle(o SetOracle) DealerOption {
	return func(d *Dealer) { d.oracle = o }
}

// WithCallbacks overrides the default no-op DealerCallbacks.
func WithCallbacks(cb *DealerCallbacks) DealerOption {
	return func(d *Dealer) { d.cb = cb }
}

// Dealer runs the single authoritative goroutine that owns round
// timing, set verification and scoring (spec.md §4.1 Dealer Main
// Loop). It is the public entry point of the package, mirroring the
// teacher's TableEngine/tableEngine split between an exported facade
// and its unexported implementation.
type Dealer struct {
	id  string
	cfg Config

	table  *Table
	deck   *Deck
	oracle SetOracle
	cb     *DealerCallbacks

	players   []*Player
	playerIdx map[int]*Player
	gate      *playerGate

	tb *timebank.TimeBank
	rg *syncsaga.ReadyGroup

	lock         sync.Mutex
	started      bool
	released     bool
	roundID      int
	deadline     time.Time
	wakeCh       chan struct{}
	stopCh       chan struct{}
	loopDone     chan struct{}
	noSetsRemain bool

	subMu sync.Mutex
	subs  []int

	stats DealerStats
}

// DealerStats exposes counters useful to an embedding UI or test,
// grounded on the teacher's game_statistics.go concept of a
// side-channel stat block separate from the authoritative state.
type DealerStats struct {
	Rounds          int
	SetsFound       int
	IllegalAttempts int
	Reshuffles      int
	ReadyAcks       int
}

// NewDealer builds a Dealer for cfg.PlayerNames, validating cfg first.
func NewDealer(cfg Config, opts ...DealerOption) (*Dealer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cb := NewDealerCallbacks()

	d := &Dealer{
		id:        uuid.New().String(),
		cfg:       cfg,
		cb:        cb,
		oracle:    NewNativeOracle(cfg.DeckSize),
		playerIdx: make(map[int]*Player),
		tb:        timebank.NewTimeBank(),
		wakeCh:    make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		loopDone:  make(chan struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.table = NewTable(cfg, d.cb)
	d.deck = NewDeck(cfg.DeckSize, 1)

	ids := make([]int, len(cfg.PlayerNames))
	for i := range cfg.PlayerNames {
		ids[i] = i
	}
	d.gate = newPlayerGate(ids)
	d.rg = syncsaga.NewReadyGroup()

	for i, name := range cfg.PlayerNames {
		p := newPlayer(i, name, d.table, cfg, d.cb, d.oracle, d.gate, d)
		d.players = append(d.players, p)
		d.playerIdx[i] = p
	}

	return d, nil
}

// Start launches the dealer's round-timer goroutine and every
// player's goroutine, then starts the first round.
func (d *Dealer) Start() error {
	d.lock.Lock()
	if d.started {
		d.lock.Unlock()
		return ErrDealerAlreadyStarted
	}
	if d.released {
		d.lock.Unlock()
		return ErrDealerAlreadyReleased
	}
	d.started = true
	d.lock.Unlock()

	for _, p := range d.players {
		go p.run()
	}

	d.startRound()

	go d.timerLoop()

	return nil
}

// Release stops the round timer, terminates every player goroutine
// and waits for them to exit, mirroring TableEngine.ReleaseTable.
func (d *Dealer) Release() error {
	d.lock.Lock()
	if d.released {
		d.lock.Unlock()
		return ErrDealerAlreadyReleased
	}
	d.released = true
	d.lock.Unlock()

	close(d.stopCh)
	<-d.loopDone

	d.gate.setAllTerminating()
	for _, p := range d.players {
		p.terminate()
	}

	return nil
}

// PressKey routes a key press to one roster player. It surfaces the
// gating conditions spec.md's keyPress itself has no return value for
// - unknown player, out-of-range slot, a currently disabled player,
// and an empty slot - as errors before handing the press to
// Player.KeyPress, which re-checks all of the same conditions (plus
// status and terminating) against the current state at enqueue time.
func (d *Dealer) PressKey(playerID, slot int) error {
	p, ok := d.playerIdx[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if slot < 0 || slot >= d.table.Size() {
		return ErrSlotOutOfRange
	}
	if !d.gate.enabled(playerID) {
		return ErrPlayerDisabled
	}
	if !d.table.SlotOccupied(slot) {
		return ErrSlotEmpty
	}

	p.KeyPress(slot)
	return nil
}

// Scores returns every player's score keyed by player id.
func (d *Dealer) Scores() map[int]int {
	out := make(map[int]int, len(d.players))
	for id, p := range d.playerIdx {
		out[id] = p.Score()
	}
	return out
}

// Stats returns a snapshot of the dealer's running counters.
func (d *Dealer) Stats() DealerStats {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.stats
}

// Table exposes the underlying Table for read-only UI queries.
func (d *Dealer) Table() *Table {
	return d.table
}

// Player returns the roster player with the given id, for wiring an
// AIPresser or inspecting state directly in tests.
func (d *Dealer) Player(id int) (*Player, bool) {
	p, ok := d.playerIdx[id]
	return p, ok
}

// AlivePlayers returns the ids of players that have not been
// terminated, mirroring the teacher's Table.AlivePlayers filter over
// bankroll in spirit: here "alive" means "still part of the running
// game" rather than "still funded".
func (d *Dealer) AlivePlayers() []int {
	alive := funk.Filter(d.players, func(p *Player) bool {
		return !d.gate.terminated(p.id)
	}).([]*Player)

	return funk.Map(alive, func(p *Player) int {
		return p.id
	}).([]int)
}

// ID returns the dealer's generated identifier.
func (d *Dealer) ID() string {
	return d.id
}
