package rules

import (
	"slices"

	"github.com/nstehr/vimy/arena-core/model"
)

// Role is the behavioral classification derived from a unit's body.
type Role string

const (
	RoleMelee        Role = "melee"
	RoleRanged       Role = "ranged"
	RoleHealer       Role = "healer"
	RoleUnclassified Role = "unclassified"
)

// roleParts is the classification order: the first matching part decides the
// primary role.
var roleParts = []struct {
	role Role
	part string
}{
	{RoleMelee, model.PartAttack},
	{RoleRanged, model.PartRangedAttack},
	{RoleHealer, model.PartHeal},
}

// Classify returns every combat role the body qualifies for, in
// classification order. A unit with attack and heal parts is both a melee
// unit and a healer and runs both behaviors each tick.
func Classify(body []model.BodyPart) []Role {
	var out []Role
	for _, rp := range roleParts {
		if slices.ContainsFunc(body, func(p model.BodyPart) bool { return p.Type == rp.part }) {
			out = append(out, rp.role)
		}
	}
	return out
}

// PrimaryRole is the first-match classification used for team quotas.
func PrimaryRole(body []model.BodyPart) Role {
	if roles := Classify(body); len(roles) > 0 {
		return roles[0]
	}
	return RoleUnclassified
}

// positioned is a generic constraint for any snapshot object on the grid.
type positioned interface {
	Pos() model.Position
}

// withinRange keeps items strictly closer than r to from, preserving order.
func withinRange[T positioned](items []T, from model.Position, r int) []T {
	var out []T
	for _, item := range items {
		if model.Range(item.Pos(), from) < r {
			out = append(out, item)
		}
	}
	return out
}

// withinRadius keeps items at range r or less from from, preserving order.
func withinRadius[T positioned](items []T, from model.Position, r int) []T {
	var out []T
	for _, item := range items {
		if model.Range(item.Pos(), from) <= r {
			out = append(out, item)
		}
	}
	return out
}

// sortByRange returns a copy ordered nearest first. The sort is stable so
// equally distant items keep snapshot order.
func sortByRange[T positioned](items []T, from model.Position) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return model.Range(a.Pos(), from) - model.Range(b.Pos(), from)
	})
	return out
}

// sortByHits returns a copy ordered by ascending hit points, stable.
func sortByHits(units []model.Unit) []model.Unit {
	out := slices.Clone(units)
	slices.SortStableFunc(out, func(a, b model.Unit) int {
		return a.Hits - b.Hits
	})
	return out
}

// countWithin counts items strictly closer than r to from.
func countWithin[T positioned](items []T, from model.Position, r int) int {
	n := 0
	for _, item := range items {
		if model.Range(item.Pos(), from) < r {
			n++
		}
	}
	return n
}
