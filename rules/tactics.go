package rules

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/vimy/arena-core/model"
)

// Tactics is the fixed tactical posture for a match. The compiler turns it
// into concrete rules; behaviors read the radii and thresholds from it.
type Tactics struct {
	Name       string     `yaml:"name"`
	Capacities Capacities `yaml:"capacities"`

	StagingRed       model.Position `yaml:"staging_red"`
	StagingBlue      model.Position `yaml:"staging_blue"`
	RendezvousRadius int            `yaml:"rendezvous_radius"`

	MeleeEngageRange  int `yaml:"melee_engage_range"`
	RangedEngageRange int `yaml:"ranged_engage_range"`
	HealRange         int `yaml:"heal_range"`
	ScoutPickupRadius int `yaml:"scout_pickup_radius"`

	RangedEvasion       bool `yaml:"ranged_evasion"`
	RangedEvasionRadius int  `yaml:"ranged_evasion_radius"`
	HealerEvasion       bool `yaml:"healer_evasion"`
	HealerEvasionRadius int  `yaml:"healer_evasion_radius"`

	TowerCriticalHits int `yaml:"tower_critical_hits"`
	TowerTriageRadius int `yaml:"tower_triage_radius"`

	HitsLabel         bool `yaml:"hits_label"`
	UnitCountInterval int  `yaml:"unit_count_interval"`
}

// DefaultTactics returns the standard capture-the-flag posture.
func DefaultTactics() Tactics {
	return Tactics{
		Name:                "Rendezvous",
		Capacities:          Capacities{Melee: 1, Ranged: 3, Healer: 3},
		StagingRed:          model.Position{X: 68, Y: 37},
		StagingBlue:         model.Position{X: 37, Y: 68},
		RendezvousRadius:    3,
		MeleeEngageRange:    10,
		RangedEngageRange:   10,
		HealRange:           3,
		ScoutPickupRadius:   3,
		RangedEvasion:       false,
		RangedEvasionRadius: 3,
		HealerEvasion:       false,
		HealerEvasionRadius: 7,
		TowerCriticalHits:   150,
		TowerTriageRadius:   5,
		HitsLabel:           true,
		UnitCountInterval:   10,
	}
}

// Staging returns a team's rendezvous point.
func (t Tactics) Staging(team Team) model.Position {
	if team == TeamBlue {
		return t.StagingBlue
	}
	return t.StagingRed
}

// Validate clamps every parameter to its usable range.
func (t *Tactics) Validate() {
	t.Capacities.Melee = clampInt(t.Capacities.Melee, 0, 50)
	t.Capacities.Ranged = clampInt(t.Capacities.Ranged, 0, 50)
	t.Capacities.Healer = clampInt(t.Capacities.Healer, 0, 50)
	t.StagingRed = clampPos(t.StagingRed)
	t.StagingBlue = clampPos(t.StagingBlue)
	t.RendezvousRadius = clampInt(t.RendezvousRadius, 1, 20)
	t.MeleeEngageRange = clampInt(t.MeleeEngageRange, 1, 50)
	t.RangedEngageRange = clampInt(t.RangedEngageRange, 1, 50)
	t.HealRange = clampInt(t.HealRange, 1, 10)
	t.ScoutPickupRadius = clampInt(t.ScoutPickupRadius, 1, 20)
	t.RangedEvasionRadius = clampInt(t.RangedEvasionRadius, 1, 20)
	t.HealerEvasionRadius = clampInt(t.HealerEvasionRadius, 1, 20)
	t.TowerCriticalHits = clampInt(t.TowerCriticalHits, 0, 10000)
	t.TowerTriageRadius = clampInt(t.TowerTriageRadius, 0, 50)
	t.UnitCountInterval = clampInt(t.UnitCountInterval, 1, 1000)
}

// LoadTactics reads a YAML preset on top of DefaultTactics, so a preset only
// needs the fields it changes.
func LoadTactics(path string) (Tactics, error) {
	t := DefaultTactics()
	data, err := os.ReadFile(path)
	if err != nil {
		return Tactics{}, fmt.Errorf("reading tactics %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tactics{}, fmt.Errorf("parsing tactics %s: %w", path, err)
	}
	if t.Name == "" {
		return Tactics{}, errors.New("tactics: name must not be empty")
	}
	t.Validate()
	return t, nil
}

// arenaSize is the side length of the capture-the-flag map.
const arenaSize = 100

func clampPos(p model.Position) model.Position {
	return model.Position{X: clampInt(p.X, 0, arenaSize-1), Y: clampInt(p.Y, 0, arenaSize-1)}
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
