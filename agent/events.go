package agent

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nstehr/vimy/arena-core/model"
	"github.com/nstehr/vimy/arena-core/rules"
)

// EventKind identifies the category of a match event worth surfacing to the
// operator.
type EventKind string

const (
	EventFirstContact     EventKind = "first_contact"
	EventSquadDevastated  EventKind = "squad_devastated"
	EventEnemyFlagSighted EventKind = "enemy_flag_sighted"
	EventEnemyFlagLost    EventKind = "enemy_flag_lost"
	EventTowerLost        EventKind = "tower_lost"
	EventPickupSpawned    EventKind = "pickup_spawned"
	EventRoleCountered    EventKind = "role_countered"
)

// Event is a significant change detected by diffing consecutive ticks.
type Event struct {
	Kind   EventKind
	Tick   int
	Detail string
}

// stateSnapshot captures the diffable fields from a tick.
// The agent stores one and compares against the next tick to detect events.
type stateSnapshot struct {
	tick        int
	combatCount int // my units with at least one combat role
	towerIDs    map[string]bool
	pickupIDs   map[string]bool
	enemiesSeen bool
	flagSeen    bool

	// Per-role unit tracking for role_countered detection.
	roleIDs map[rules.Role]map[string]bool

	// Cooldown: tick of the last role_countered event, carried forward.
	lastCounterTick int

	// lossBaselineTick is when the role ID accumulation window started.
	// Within the window role ID sets only grow, so dead units stay in the
	// set and countMissing reflects accumulated losses.
	lossBaselineTick int
}

// counterCooldownTicks is the minimum gap between role_countered events and
// the length of the loss accumulation window.
const counterCooldownTicks = 200

// counterLossThresholds is the minimum units lost per role to trigger
// role_countered. The melee slot is a single unit, so one loss is enough.
var counterLossThresholds = map[rules.Role]int{
	rules.RoleMelee:  1,
	rules.RoleRanged: 2,
	rules.RoleHealer: 2,
}

// counteredBy lists the enemy roles that punish each of my roles: ranged
// units kite melee, melee dives ranged, and everything picks off healers.
var counteredBy = map[rules.Role][]rules.Role{
	rules.RoleMelee:  {rules.RoleRanged},
	rules.RoleRanged: {rules.RoleMelee},
	rules.RoleHealer: {rules.RoleMelee, rules.RoleRanged},
}

// takeSnapshot captures the current diffable state for next tick's comparison.
func takeSnapshot(gs model.GameState) stateSnapshot {
	snap := stateSnapshot{
		tick:      gs.Tick,
		towerIDs:  make(map[string]bool),
		pickupIDs: make(map[string]bool, len(gs.Pickups)),
		roleIDs: map[rules.Role]map[string]bool{
			rules.RoleMelee:  {},
			rules.RoleRanged: {},
			rules.RoleHealer: {},
		},
	}

	for _, u := range gs.Units {
		if !u.My {
			snap.enemiesSeen = true
			continue
		}
		roles := rules.Classify(u.Body)
		if len(roles) > 0 {
			snap.combatCount++
		}
		for _, r := range roles {
			snap.roleIDs[r][u.ID] = true
		}
	}
	for _, t := range gs.Towers {
		if t.My {
			snap.towerIDs[t.ID] = true
		}
	}
	for _, p := range gs.Pickups {
		snap.pickupIDs[p.ID] = true
	}
	for _, f := range gs.Flags {
		if !f.My {
			snap.flagSeen = true
			break
		}
	}
	return snap
}

// detectEvents compares the current game state against the previous snapshot
// and returns any triggered events. Returns nil if prev is nil (first tick).
func detectEvents(gs model.GameState, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	cur := takeSnapshot(gs)

	// 1. first_contact: enemies visible for the first time
	if !prev.enemiesSeen && cur.enemiesSeen {
		n := 0
		for _, u := range gs.Units {
			if !u.My {
				n++
			}
		}
		events = append(events, Event{
			Kind:   EventFirstContact,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("First contact: %d enemies now visible", n),
		})
	}

	// 2. squad_devastated: >50% combat units lost (floor of 4 to avoid noise)
	if prev.combatCount >= 4 && cur.combatCount > 0 {
		lost := prev.combatCount - cur.combatCount
		if lost > 0 && float64(lost)/float64(prev.combatCount) > 0.5 {
			events = append(events, Event{
				Kind:   EventSquadDevastated,
				Tick:   gs.Tick,
				Detail: fmt.Sprintf("Squad devastated: %d→%d combat units (lost %d%%)", prev.combatCount, cur.combatCount, 100*lost/prev.combatCount),
			})
		}
	}

	// 3. enemy flag sighted or lost from view
	if !prev.flagSeen && cur.flagSeen {
		events = append(events, Event{Kind: EventEnemyFlagSighted, Tick: gs.Tick, Detail: "Enemy flag sighted"})
	} else if prev.flagSeen && !cur.flagSeen {
		events = append(events, Event{Kind: EventEnemyFlagLost, Tick: gs.Tick, Detail: "Enemy flag no longer visible"})
	}

	// 4. tower_lost: a tower present last tick is now gone
	for _, id := range slices.Sorted(maps.Keys(prev.towerIDs)) {
		if !cur.towerIDs[id] {
			events = append(events, Event{
				Kind:   EventTowerLost,
				Tick:   gs.Tick,
				Detail: fmt.Sprintf("Lost tower %s", id),
			})
		}
	}

	// 5. pickup_spawned: pickups that were not on the ground last tick
	if spawned := countMissing(cur.pickupIDs, prev.pickupIDs); spawned > 0 {
		events = append(events, Event{
			Kind:   EventPickupSpawned,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("%d new pickups on the ground", spawned),
		})
	}

	// 6. role_countered: a role is taking losses while the enemy fields
	// what counters it. Cooldown prevents spam during a prolonged brawl.
	if prev.lastCounterTick == 0 || gs.Tick-prev.lastCounterTick >= counterCooldownTicks {
		threats := enemyRoles(gs.Units)
		var countered []string
		for _, role := range []rules.Role{rules.RoleMelee, rules.RoleRanged, rules.RoleHealer} {
			lost := countMissing(prev.roleIDs[role], cur.roleIDs[role])
			threshold := counterLossThresholds[role]
			if threshold == 0 {
				threshold = 2
			}
			if lost < threshold {
				continue
			}
			seen := make(map[rules.Role]int)
			for _, c := range counteredBy[role] {
				if threats[c] > 0 {
					seen[c] = threats[c]
				}
			}
			if len(seen) == 0 {
				continue
			}
			countered = append(countered, fmt.Sprintf("%s taking heavy losses (%d killed); enemy has %s",
				role, lost, formatThreats(seen)))
		}

		if len(countered) > 0 {
			events = append(events, Event{
				Kind:   EventRoleCountered,
				Tick:   gs.Tick,
				Detail: strings.Join(countered, "; "),
			})
		}
	}

	return events
}

// advance turns cur into the snapshot stored for the next tick. Role ID
// sets accumulate across ticks within the loss window so gradual attrition
// adds up; the window restarts when it expires or when role_countered fires.
func advance(prev *stateSnapshot, cur stateSnapshot, events []Event) stateSnapshot {
	if prev == nil {
		cur.lossBaselineTick = cur.tick
		return cur
	}
	cur.lastCounterTick = prev.lastCounterTick
	cur.lossBaselineTick = prev.lossBaselineTick

	fired := slices.ContainsFunc(events, func(e Event) bool { return e.Kind == EventRoleCountered })
	switch {
	case fired:
		cur.lastCounterTick = cur.tick
		cur.lossBaselineTick = cur.tick
	case cur.tick-prev.lossBaselineTick >= counterCooldownTicks:
		cur.lossBaselineTick = cur.tick
	default:
		for role, ids := range cur.roleIDs {
			cur.roleIDs[role] = mergeIDSets(prev.roleIDs[role], ids)
		}
	}
	return cur
}

// countMissing returns how many IDs in prev are absent from cur.
func countMissing(prev, cur map[string]bool) int {
	n := 0
	for id := range prev {
		if !cur[id] {
			n++
		}
	}
	return n
}

// enemyRoles counts visible enemy units by primary role.
func enemyRoles(units []model.Unit) map[rules.Role]int {
	counts := make(map[rules.Role]int)
	for _, u := range units {
		if u.My {
			continue
		}
		counts[rules.PrimaryRole(u.Body)]++
	}
	return counts
}

// formatThreats renders a threat count map as "2x melee, 1x ranged".
func formatThreats(threats map[rules.Role]int) string {
	parts := make([]string, 0, len(threats))
	for _, r := range slices.Sorted(maps.Keys(threats)) {
		parts = append(parts, fmt.Sprintf("%dx %s", threats[r], r))
	}
	return strings.Join(parts, ", ")
}

// mergeIDSets returns the union of two ID sets.
func mergeIDSets(a, b map[string]bool) map[string]bool {
	merged := make(map[string]bool, len(a)+len(b))
	for id := range a {
		merged[id] = true
	}
	for id := range b {
		merged[id] = true
	}
	return merged
}

// formatEvents renders accumulated events as a "Recent Events" section for
// the end-of-match summary.
func formatEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent Events:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "- [tick %d] %s: %s\n", e.Tick, e.Kind, e.Detail)
	}
	return b.String()
}
