package ipc

import "github.com/nstehr/vimy/arena-core/model"

// These constants must stay in sync with the arena host bridge.
const (
	TypeHello    = "hello"
	TypeAck      = "ack"
	TypeTick     = "tick"
	TypeCommands = "commands"
)

type HelloMessage struct {
	Player  string       `json:"player"`
	Arena   string       `json:"arena"`
	Terrain *TerrainData `json:"terrain,omitempty"`
}

// TerrainData carries the arena terrain mask.
// Optional: without it the sidecar has no local flee search.
type TerrainData struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Cells  []int `json:"cells"`
}

// Grid converts the wire form into a model grid.
func (t TerrainData) Grid() *model.TerrainGrid {
	cells := make([]model.TerrainType, len(t.Cells))
	for i, c := range t.Cells {
		cells[i] = model.TerrainType(c)
	}
	return &model.TerrainGrid{Width: t.Width, Height: t.Height, Cells: cells}
}

type AckMessage struct {
	Status  string `json:"status"`
	MatchID string `json:"matchId,omitempty"`
}

// CommandsMessage is the reply to a tick: every command decided for it, in
// the order they were issued.
type CommandsMessage struct {
	Tick     int        `json:"tick"`
	Commands []Envelope `json:"commands"`
}
