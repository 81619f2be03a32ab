package rules

// InitState gates the one-time team assignment pass.
type InitState int

const (
	Uninitialized InitState = iota
	Initialized
)

func (s InitState) String() string {
	if s == Initialized {
		return "initialized"
	}
	return "uninitialized"
}

// MatchState is everything the controller remembers between ticks. It is
// created empty when a match starts and lives until the connection closes.
// Every field is append-only or write-once, and all writes happen inside
// Engine.Evaluate in unit order.
type MatchState struct {
	Init       InitState
	Ledger     *Ledger
	Rendezvous *Rendezvous
	Scouts     *Scouts
}

func NewMatchState() *MatchState {
	return &MatchState{
		Init:       Uninitialized,
		Ledger:     NewLedger(),
		Rendezvous: NewRendezvous(),
		Scouts:     NewScouts(),
	}
}
