package rules

import (
	"go.uber.org/zap"

	"github.com/nstehr/vimy/arena-core/model"
	"github.com/nstehr/vimy/arena-core/pathing"
)

// Flee asks the path finder for a way out of range of every threat and
// steps once along it. A unit already outside range of every threat, or one
// with nowhere to go, holds position.
func Flee(env RuleEnv, in *Intent, threats []model.Unit, radius int) {
	self := env.Self
	if env.Finder == nil {
		return
	}

	goals := make([]pathing.Goal, 0, len(threats))
	exposed := false
	for _, t := range threats {
		goals = append(goals, pathing.Goal{Pos: t.Pos(), Range: radius})
		if model.Range(t.Pos(), self.Pos()) < radius {
			exposed = true
		}
	}
	if !exposed {
		return
	}

	path := env.Finder.Flee(self.Pos(), goals)
	if len(path) == 0 {
		env.log().Debug("no flee path", zap.String("unit", self.ID), zap.Int("threats", len(threats)))
		return
	}
	d := model.DirectionTo(path[0].X-self.X, path[0].Y-self.Y)
	in.Step(d, "evade")
	env.log().Debug("evading", zap.String("unit", self.ID), zap.Stringer("direction", d), zap.Int("threats", len(threats)))
}
