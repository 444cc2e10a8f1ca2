package report

import (
	"github.com/medresus/medresus/internal/domain/caselog"
	"github.com/medresus/medresus/pkg/csvtab"
)

// EventToRow flattens one event into a tabular record. Each variant has its
// own fixed column shape; unrecognized variants degrade to a placeholder row
// instead of failing the export.
func EventToRow(ev caselog.Event, index int) *csvtab.Row {
	row := csvtab.NewRow().Set("index", index)

	switch ev.Type {
	case caselog.EventBasic:
		return row.Set("time", ev.Seconds()).
			Set("type", "basic_event").
			Set("section", string(ev.Section)).
			Set("action", ev.Action).
			Set("details", ev.Details)

	case caselog.EventRoleTransition:
		row.Set("time", ev.Seconds()).Set("type", string(ev.Type))
		if rt := ev.RoleTransition; rt != nil {
			return row.Set("name", rt.Name).
				Set("from_role", string(rt.FromRole)).
				Set("to_role", string(rt.ToRole))
		}
		return row.Set("name", "").Set("from_role", "").Set("to_role", "")

	case caselog.EventRescEnded:
		row.Set("time", ev.Seconds()).Set("type", string(ev.Type))
		if re := ev.RescEnded; re != nil {
			return row.Set("reason", re.Reason).
				Set("cause", re.Cause).
				Set("notes", re.Notes)
		}
		return row.Set("reason", "").Set("cause", "").Set("notes", "")

	case caselog.EventROSC:
		row.Set("time", ev.Seconds()).Set("type", string(ev.Type))
		if r := ev.ROSC; r != nil {
			return row.Set("cause", r.Cause).
				Set("team", r.Team).
				Set("notes", r.Notes)
		}
		return row.Set("cause", "").Set("team", "").Set("notes", "")

	case caselog.EventReversibleCause:
		row.Set("time", ev.Seconds()).Set("type", string(ev.Type))
		intervention := ""
		cause, discussion := "", ""
		if rc := ev.ReversibleCause; rc != nil {
			cause, discussion = rc.Cause, rc.Discussion
			intervention = rc.Intervention
		}
		if intervention == "" {
			intervention = ev.Action
		}
		return row.Set("cause", cause).
			Set("discussion", discussion).
			Set("intervention", intervention)

	case caselog.EventRhythmAnalysis:
		row.Set("time", ev.Seconds()).Set("type", string(ev.Type))
		if ra := ev.RhythmAnalysis; ra != nil {
			return row.Set("rhythm", ra.Rhythm).
				Set("analysis", ra.Analysis).
				Set("plan", ra.Plan)
		}
		return row.Set("rhythm", "").Set("analysis", "").Set("plan", "")

	case caselog.EventAirway:
		row.Set("time", ev.Seconds()).Set("type", string(ev.Type))
		technique, step := "", ""
		if a := ev.Airway; a != nil {
			technique, step = string(a.Technique), a.Step
		}
		return row.Set("technique", technique).
			Set("step", step).
			Set("action", ev.Action).
			Set("details", ev.Details)

	case caselog.EventTeamAction:
		row.Set("time", ev.Seconds()).Set("type", string(ev.Type))
		actor, roleName := "", ""
		if ta := ev.TeamAction; ta != nil {
			actor, roleName = ta.Actor, ta.RoleName
		}
		if actor == "" {
			actor = ev.Who
		}
		if roleName == "" {
			roleName = string(ev.Role)
		}
		return row.Set("actor", actor).
			Set("role", roleName).
			Set("action", ev.Action).
			Set("details", ev.Details)

	case caselog.EventResourceUse:
		row.Set("time", ev.Seconds()).Set("type", string(ev.Type))
		if ru := ev.ResourceUse; ru != nil {
			var qty interface{} = ""
			if ru.Quantity != 0 {
				qty = ru.Quantity
			}
			return row.Set("resource", ru.Resource).
				Set("quantity", qty).
				Set("purpose", ru.Purpose)
		}
		return row.Set("resource", "").Set("quantity", "").Set("purpose", "")

	case caselog.EventQualityMetric:
		row.Set("time", ev.Seconds()).Set("type", string(ev.Type))
		if qm := ev.QualityMetric; qm != nil {
			return row.Set("metric", qm.Metric).
				Set("value", qm.Value).
				Set("benchmark", qm.Benchmark)
		}
		return row.Set("metric", "").Set("value", "").Set("benchmark", "")

	default:
		var t interface{} = ""
		if ev.TSec != nil {
			t = *ev.TSec
		}
		return row.Set("time", t).
			Set("type", "unknown_event").
			Set("description", "Unhandled event type")
	}
}

// CaseRows projects a chronological event sequence into export rows.
func CaseRows(events []caselog.Event) []*csvtab.Row {
	rows := make([]*csvtab.Row, len(events))
	for i, ev := range events {
		rows[i] = EventToRow(ev, i)
	}
	return rows
}
