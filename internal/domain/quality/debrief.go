package quality

import (
	"fmt"
	"sort"
	"strings"
)

// Threshold seconds for timing rules.
const (
	shockThresholdSec = 120
	ivioThresholdSec  = 180
)

// Headline is the fixed debrief headline; it is not templated from content.
const Headline = "Debrief summary based on timeline and actions"

// Debrief is the rule-derived summary of a metrics snapshot.
type Debrief struct {
	Strengths   []string `json:"strengths"`
	Suggestions []string `json:"suggestions"`
	Headline    string   `json:"headline"`
}

// BuildDebrief evaluates the closed rule set against a metrics snapshot.
// Rules are evaluated in a fixed order; each appends to one list. New rules
// are additive only.
func BuildDebrief(m Metrics) Debrief {
	var strengths, suggestions []string

	if m.TimeToFirstShockSec != nil {
		if *m.TimeToFirstShockSec <= shockThresholdSec {
			strengths = append(strengths, fmt.Sprintf("Early defibrillation (%ds)", *m.TimeToFirstShockSec))
		} else {
			suggestions = append(suggestions, fmt.Sprintf("Time to first shock was %ds — consider earlier rhythm check/defibrillation.", *m.TimeToFirstShockSec))
		}
	} else {
		suggestions = append(suggestions, "No shock delivered — verify defibrillator readiness and rhythm detection.")
	}

	if m.TimeToFirstIVIOSec != nil {
		if *m.TimeToFirstIVIOSec <= ivioThresholdSec {
			strengths = append(strengths, fmt.Sprintf("Early IV/IO access (%ds)", *m.TimeToFirstIVIOSec))
		} else {
			suggestions = append(suggestions, fmt.Sprintf("IV/IO access at %ds — consider earlier access planning.", *m.TimeToFirstIVIOSec))
		}
	} else {
		suggestions = append(suggestions, "No IV/IO recorded — ensure access attempts are documented.")
	}

	if m.TimeToAdvancedAirwaySec != nil {
		strengths = append(strengths, fmt.Sprintf("Advanced airway placed at %ds; switched to %s compressions.", *m.TimeToAdvancedAirwaySec, m.CPRRatio))
	}

	if m.CompressionInterruptions > 0 {
		suggestions = append(suggestions, fmt.Sprintf("%d noted CPR pauses — minimize interruptions and coordinate rhythm checks.", m.CompressionInterruptions))
	} else {
		strengths = append(strengths, "Minimal CPR interruptions recorded.")
	}

	if top := topActors(m, 3); len(top) > 0 {
		strengths = append(strengths, "Active participation: "+strings.Join(top, ", "))
	}

	return Debrief{
		Strengths:   strengths,
		Suggestions: suggestions,
		Headline:    Headline,
	}
}

// topActors ranks actors by action count descending, tie-broken by first
// appearance order, and formats the top n as "Name (count)".
func topActors(m Metrics, n int) []string {
	names := m.ActorOrder()
	sort.SliceStable(names, func(i, j int) bool {
		return m.TeamActionsByActor[names[i]] > m.TeamActionsByActor[names[j]]
	})
	if len(names) > n {
		names = names[:n]
	}
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = fmt.Sprintf("%s (%d)", name, m.TeamActionsByActor[name])
	}
	return out
}

// Text renders the debrief as a plain-text report for export.
func (d Debrief) Text() string {
	var b strings.Builder
	b.WriteString(d.Headline)
	b.WriteString("\n\nStrengths:\n")
	for _, s := range d.Strengths {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("\nSuggestions:\n")
	for _, s := range d.Suggestions {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String()
}
