package quality

import "github.com/medresus/medresus/pkg/csvtab"

// SummaryRows projects a metrics snapshot into key/value rows for the
// summary section of exports.
func SummaryRows(m Metrics) []*csvtab.Row {
	secOrEmpty := func(v *int64) interface{} {
		if v == nil {
			return ""
		}
		return *v
	}
	rows := []*csvtab.Row{
		csvtab.NewRow().Set("key", "Duration (s)").Set("value", secOrEmpty(m.DurationSec)),
		csvtab.NewRow().Set("key", "Total actions").Set("value", m.ActionCount),
		csvtab.NewRow().Set("key", "CPR ratio").Set("value", string(m.CPRRatio)),
		csvtab.NewRow().Set("key", "Time to first shock (s)").Set("value", secOrEmpty(m.TimeToFirstShockSec)),
		csvtab.NewRow().Set("key", "Time to IV/IO (s)").Set("value", secOrEmpty(m.TimeToFirstIVIOSec)),
		csvtab.NewRow().Set("key", "Time to advanced airway (s)").Set("value", secOrEmpty(m.TimeToAdvancedAirwaySec)),
		csvtab.NewRow().Set("key", "CPR interruptions").Set("value", m.CompressionInterruptions),
	}
	return rows
}
