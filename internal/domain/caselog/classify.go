package caselog

import "strings"

// Action classification is case-insensitive substring matching on the action
// label only, never on details. The matching rules are load-bearing for the
// quality metrics and must stay compatible with historical case logs, so
// they live behind named functions instead of inline checks.

// IsShockAction reports whether the action documents a delivered shock.
func IsShockAction(action string) bool {
	a := strings.ToLower(action)
	return strings.Contains(a, "shock") || strings.Contains(a, "defibrill")
}

// IsIVIOAction reports whether the action documents IV or IO access.
func IsIVIOAction(action string) bool {
	a := strings.ToLower(action)
	return strings.Contains(a, "iv") || strings.Contains(a, "io")
}

// IsEpinephrineAction reports whether the action documents an epinephrine
// (adrenaline) dose.
func IsEpinephrineAction(action string) bool {
	a := strings.ToLower(action)
	return strings.Contains(a, "adrenaline") || strings.Contains(a, "epinephrine")
}

// IsContinuousRatioAction reports whether the action switches CPR to
// continuous compressions.
func IsContinuousRatioAction(action string) bool {
	a := strings.ToLower(action)
	return strings.Contains(a, "ratio changed") || strings.Contains(a, "continuous")
}

// IsPauseAction reports whether the action documents a compression pause.
func IsPauseAction(action string) bool {
	return strings.Contains(strings.ToLower(action), "pause")
}

// IsAdvancedAirway reports whether the event places an advanced airway.
func IsAdvancedAirway(ev *Event) bool {
	return ev.Type == EventAirway && ev.Airway != nil && ev.Airway.Technique == AirwayAdvanced
}
