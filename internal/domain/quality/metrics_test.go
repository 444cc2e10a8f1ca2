package quality

import (
	"reflect"
	"testing"

	"github.com/medresus/medresus/internal/domain/caselog"
)

// newestFirst reverses a chronological sequence into the stored order.
func newestFirst(events []caselog.Event) []caselog.Event {
	out := make([]caselog.Event, len(events))
	for i, ev := range events {
		out[len(events)-1-i] = ev
	}
	return out
}

func sec(v int64) *int64 { return &v }

func basicEvent(tSec int64, section caselog.Section, action string) caselog.Event {
	return caselog.Event{
		ID:      action,
		TSec:    sec(tSec),
		Section: section,
		Action:  action,
	}
}

func TestCompute_Empty(t *testing.T) {
	m := Compute(nil)
	if m.ActionCount != 0 {
		t.Errorf("expected 0 actions, got %d", m.ActionCount)
	}
	if m.DurationSec != nil {
		t.Errorf("expected nil duration for empty input, got %d", *m.DurationSec)
	}
	if m.CPRRatio != Ratio30to2 {
		t.Errorf("expected default ratio 30:2, got %s", m.CPRRatio)
	}
}

func TestCompute_Scenario(t *testing.T) {
	chrono := []caselog.Event{
		basicEvent(0, caselog.SectionCirculation, "CPR started"),
		basicEvent(95, caselog.SectionDefibrillation, "Shock delivered"),
		basicEvent(110, caselog.SectionCirculation, "IV/IO access obtained"),
		{
			ID:      "airway",
			TSec:    sec(300),
			Section: caselog.SectionAirway,
			Action:  "Advanced airway placed (ETT)",
			Type:    caselog.EventAirway,
			Airway:  &caselog.AirwayDetail{Technique: caselog.AirwayAdvanced, Step: "ETT"},
		},
	}
	m := Compute(newestFirst(chrono))

	if m.TimeToFirstShockSec == nil || *m.TimeToFirstShockSec != 95 {
		t.Errorf("expected time to first shock 95, got %v", m.TimeToFirstShockSec)
	}
	if m.TimeToFirstIVIOSec == nil || *m.TimeToFirstIVIOSec != 110 {
		t.Errorf("expected time to IV/IO 110, got %v", m.TimeToFirstIVIOSec)
	}
	if m.TimeToAdvancedAirwaySec == nil || *m.TimeToAdvancedAirwaySec != 300 {
		t.Errorf("expected time to advanced airway 300, got %v", m.TimeToAdvancedAirwaySec)
	}
	if m.CPRRatio != RatioContinuous {
		t.Errorf("expected continuous ratio, got %s", m.CPRRatio)
	}
	if m.DurationSec == nil || *m.DurationSec != 300 {
		t.Errorf("expected duration 300, got %v", m.DurationSec)
	}
	if m.ActionCount != 4 {
		t.Errorf("expected 4 actions, got %d", m.ActionCount)
	}
	if m.CompressionInterruptions != 0 {
		t.Errorf("expected 0 interruptions, got %d", m.CompressionInterruptions)
	}
}

func TestCompute_Pure(t *testing.T) {
	events := newestFirst([]caselog.Event{
		basicEvent(0, caselog.SectionCirculation, "CPR started"),
		basicEvent(30, caselog.SectionDefibrillation, "Shock delivered"),
	})
	first := Compute(events)
	second := Compute(events)
	if !reflect.DeepEqual(first, second) {
		t.Error("Compute is not deterministic on identical input")
	}
	if events[0].Action != "Shock delivered" {
		t.Error("Compute mutated its input")
	}
}

func TestCompute_ActionCountIsInputLength(t *testing.T) {
	events := newestFirst([]caselog.Event{
		basicEvent(0, caselog.SectionExposure, "Adrenaline"),
		basicEvent(5, "", "unmatched action"),
		{ID: "x", TSec: sec(9)}, // no action at all
	})
	m := Compute(events)
	if m.ActionCount != 3 {
		t.Errorf("expected action count 3, got %d", m.ActionCount)
	}
}

func TestCompute_FirstOccurrenceWins(t *testing.T) {
	events := newestFirst([]caselog.Event{
		basicEvent(40, caselog.SectionDefibrillation, "Shock delivered"),
		basicEvent(70, caselog.SectionDefibrillation, "Shock delivered"),
		basicEvent(90, caselog.SectionDefibrillation, "Defibrillation repeated"),
	})
	m := Compute(events)
	if m.TimeToFirstShockSec == nil || *m.TimeToFirstShockSec != 40 {
		t.Errorf("expected first shock at 40, got %v", m.TimeToFirstShockSec)
	}
}

func TestCompute_ContinuousRatioSticky(t *testing.T) {
	events := newestFirst([]caselog.Event{
		basicEvent(0, caselog.SectionCirculation, "CPR started"),
		{
			ID:      "airway",
			TSec:    sec(60),
			Type:    caselog.EventAirway,
			Airway:  &caselog.AirwayDetail{Technique: caselog.AirwayAdvanced},
			Action:  "Airway placed",
			Section: caselog.SectionAirway,
		},
		basicEvent(120, caselog.SectionCirculation, "Compressions resumed"),
	})
	m := Compute(events)
	if m.CPRRatio != RatioContinuous {
		t.Errorf("advanced airway must force continuous ratio, got %s", m.CPRRatio)
	}
}

func TestCompute_BasicAirwayDoesNotSetTiming(t *testing.T) {
	events := newestFirst([]caselog.Event{
		{
			ID:      "opa",
			TSec:    sec(20),
			Type:    caselog.EventAirway,
			Airway:  &caselog.AirwayDetail{Technique: caselog.AirwayBasic, Step: "OPA"},
			Action:  "OPA inserted",
			Section: caselog.SectionAirway,
		},
	})
	m := Compute(events)
	if m.TimeToAdvancedAirwaySec != nil {
		t.Errorf("basic airway must not set advanced timing, got %v", *m.TimeToAdvancedAirwaySec)
	}
	if m.CPRRatio != Ratio30to2 {
		t.Errorf("basic airway must not change ratio, got %s", m.CPRRatio)
	}
}

func TestCompute_TeamActionsAndResources(t *testing.T) {
	events := newestFirst([]caselog.Event{
		{ID: "1", TSec: sec(10), Type: caselog.EventTeamAction, Action: "Compressions",
			TeamAction: &caselog.TeamActionDetail{Actor: "Asha"}},
		{ID: "2", TSec: sec(20), Type: caselog.EventTeamAction, Action: "Bagging", Who: "Ben"},
		{ID: "3", TSec: sec(30), Type: caselog.EventTeamAction, Action: "Compressions",
			TeamAction: &caselog.TeamActionDetail{Actor: "Asha"}},
		{ID: "4", TSec: sec(35), Type: caselog.EventTeamAction, Action: "Unattributed"},
		{ID: "5", TSec: sec(40), Type: caselog.EventResourceUse, Action: "Pads applied",
			ResourceUse: &caselog.ResourceUseDetail{Resource: "Defib pads", Quantity: 2}},
		{ID: "6", TSec: sec(50), Type: caselog.EventResourceUse, Action: "Pads applied",
			ResourceUse: &caselog.ResourceUseDetail{Resource: "Defib pads"}},
		{ID: "7", TSec: sec(55), Type: caselog.EventResourceUse, Action: "Used something"},
	})
	m := Compute(events)

	if m.TeamActionsByActor["Asha"] != 2 {
		t.Errorf("expected Asha=2, got %d", m.TeamActionsByActor["Asha"])
	}
	if m.TeamActionsByActor["Ben"] != 1 {
		t.Errorf("expected Ben=1 via who fallback, got %d", m.TeamActionsByActor["Ben"])
	}
	if m.TeamActionsByActor["Unknown"] != 1 {
		t.Errorf("expected Unknown=1, got %d", m.TeamActionsByActor["Unknown"])
	}
	if m.ResourcesUsed["Defib pads"] != 3 {
		t.Errorf("expected quantity default 1 summed to 3, got %d", m.ResourcesUsed["Defib pads"])
	}
	if m.ResourcesUsed["Unknown"] != 1 {
		t.Errorf("expected unnamed resource under Unknown, got %d", m.ResourcesUsed["Unknown"])
	}
	order := m.ActorOrder()
	if len(order) != 3 || order[0] != "Asha" || order[1] != "Ben" || order[2] != "Unknown" {
		t.Errorf("unexpected first-appearance order: %v", order)
	}
}

func TestCompute_Interruptions(t *testing.T) {
	events := newestFirst([]caselog.Event{
		basicEvent(10, caselog.SectionCirculation, "CPR paused for rhythm check"),
		basicEvent(20, caselog.SectionDefibrillation, "Pause for shock"), // not C section
		basicEvent(30, caselog.SectionCirculation, "Pause"),
	})
	m := Compute(events)
	if m.CompressionInterruptions != 2 {
		t.Errorf("expected 2 interruptions in C section, got %d", m.CompressionInterruptions)
	}
}

func TestCompute_DurationNeverNegative(t *testing.T) {
	// Clock skew: later event carries an earlier offset.
	events := []caselog.Event{ // stored newest-first
		basicEvent(5, caselog.SectionCirculation, "second"),
		basicEvent(50, caselog.SectionCirculation, "first"),
	}
	m := Compute(events)
	if m.DurationSec == nil || *m.DurationSec != 0 {
		t.Errorf("expected clamped duration 0, got %v", m.DurationSec)
	}
}

func TestEventSeconds_RoundsFromMillis(t *testing.T) {
	ev := caselog.Event{TRelMs: 1500}
	if got := ev.Seconds(); got != 2 {
		t.Errorf("expected 1500ms to round to 2s, got %d", got)
	}
	ev = caselog.Event{TRelMs: 1499}
	if got := ev.Seconds(); got != 1 {
		t.Errorf("expected 1499ms to round to 1s, got %d", got)
	}
	ev = caselog.Event{TRelMs: 99000, TSec: sec(42)}
	if got := ev.Seconds(); got != 42 {
		t.Errorf("expected precomputed tSec to win, got %d", got)
	}
}
