// Package quality derives resuscitation quality metrics and a debrief
// summary from a case's event sequence.
package quality

import (
	"github.com/medresus/medresus/internal/domain/caselog"
)

// CPRRatio is the compression:ventilation classification for a case.
type CPRRatio string

const (
	Ratio30to2      CPRRatio = "30:2"
	RatioContinuous CPRRatio = "continuous"
)

// Metrics is the fixed-shape summary computed from a case's events.
// Nil timing fields mean the corresponding milestone never occurred.
type Metrics struct {
	TimeToFirstShockSec      *int64           `json:"time_to_first_shock_sec"`
	TimeToFirstIVIOSec       *int64           `json:"time_to_first_iv_io_sec"`
	TimeToAdvancedAirwaySec  *int64           `json:"time_to_advanced_airway_sec"`
	CompressionInterruptions int              `json:"compression_interruptions"`
	TeamActionsByActor       map[string]int   `json:"team_actions_by_actor"`
	ResourcesUsed            map[string]int   `json:"resources_used"`
	ActionCount              int              `json:"action_count"`
	DurationSec              *int64           `json:"duration_sec"`
	CPRRatio                 CPRRatio         `json:"cpr_ratio"`

	actorOrder []string // first-appearance order, for stable debrief ranking
}

// ActorOrder returns actor names in order of first appearance.
func (m *Metrics) ActorOrder() []string {
	out := make([]string, len(m.actorOrder))
	copy(out, m.actorOrder)
	return out
}

// Compute walks the event sequence once and derives the metrics summary.
// Input is the stored newest-first order; iteration reverses it so first
// occurrences are resolved chronologically. Compute is pure: it never
// mutates its input and never fails; malformed events degrade to defaults.
func Compute(events []caselog.Event) Metrics {
	m := Metrics{
		TeamActionsByActor: map[string]int{},
		ResourcesUsed:      map[string]int{},
		CPRRatio:           Ratio30to2,
		ActionCount:        len(events),
	}

	var startSec, endSec *int64
	for i := len(events) - 1; i >= 0; i-- {
		ev := &events[i]
		t := ev.Seconds()
		if startSec == nil {
			v := t
			startSec = &v
		}
		v := t
		endSec = &v

		if m.TimeToFirstShockSec == nil && caselog.IsShockAction(ev.Action) {
			ts := t
			m.TimeToFirstShockSec = &ts
		}
		if m.TimeToFirstIVIOSec == nil && caselog.IsIVIOAction(ev.Action) {
			ts := t
			m.TimeToFirstIVIOSec = &ts
		}
		if caselog.IsContinuousRatioAction(ev.Action) {
			m.CPRRatio = RatioContinuous
		}

		if caselog.IsAdvancedAirway(ev) && m.TimeToAdvancedAirwaySec == nil {
			ts := t
			m.TimeToAdvancedAirwaySec = &ts
			m.CPRRatio = RatioContinuous
		}

		if ev.Type == caselog.EventTeamAction {
			actor := "Unknown"
			if ev.TeamAction != nil && ev.TeamAction.Actor != "" {
				actor = ev.TeamAction.Actor
			} else if ev.Who != "" {
				actor = ev.Who
			}
			if _, seen := m.TeamActionsByActor[actor]; !seen {
				m.actorOrder = append(m.actorOrder, actor)
			}
			m.TeamActionsByActor[actor]++
		}

		if ev.Type == caselog.EventResourceUse {
			resource := "Unknown"
			qty := 1
			if ev.ResourceUse != nil {
				if ev.ResourceUse.Resource != "" {
					resource = ev.ResourceUse.Resource
				}
				if ev.ResourceUse.Quantity != 0 {
					qty = ev.ResourceUse.Quantity
				}
			}
			m.ResourcesUsed[resource] += qty
		}

		if ev.Section == caselog.SectionCirculation && caselog.IsPauseAction(ev.Action) {
			m.CompressionInterruptions++
		}
	}

	if startSec != nil && endSec != nil {
		d := *endSec - *startSec
		if d < 0 {
			d = 0
		}
		m.DurationSec = &d
	}
	return m
}
