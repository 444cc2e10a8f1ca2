package caselog

// Rhythm is the last documented cardiac rhythm for a case.
type Rhythm string

const (
	RhythmVF       Rhythm = "VF"
	RhythmPVT      Rhythm = "pVT"
	RhythmPEA      Rhythm = "PEA"
	RhythmAsystole Rhythm = "Asystole"
	RhythmUnknown  Rhythm = "Unknown"
	RhythmROSC     Rhythm = "ROSC"
)

// RoleID identifies a resuscitation team role.
type RoleID string

const (
	RoleCompressor1 RoleID = "compressor1"
	RoleCompressor2 RoleID = "compressor2"
	RoleAirway      RoleID = "airway"
	RoleDrugs       RoleID = "drugs"
	RoleIVIO        RoleID = "ivio"
	RoleDefib       RoleID = "defib"
	RoleLead        RoleID = "lead"
	RoleRecorder    RoleID = "recorder"
)

// RoleLabels maps role ids to human-readable labels for debrief and export.
var RoleLabels = map[RoleID]string{
	RoleCompressor1: "Compressor 1",
	RoleCompressor2: "Compressor 2",
	RoleAirway:      "Airway",
	RoleDrugs:       "Drugs",
	RoleIVIO:        "IV/IO Access",
	RoleDefib:       "Defibrillation",
	RoleLead:        "Team Lead",
	RoleRecorder:    "Recorder",
}

// RoleAssignment records who held a role and since when.
type RoleAssignment struct {
	RoleID     RoleID `json:"role_id"`
	Name       string `json:"name"`
	AssignedAt int64  `json:"assigned_at"`
	Notes      string `json:"notes,omitempty"`
}

// CaseState is the aggregate for one resuscitation episode. Events are
// stored newest-first; chronological order is the reverse.
type CaseState struct {
	CaseID         string                    `json:"case_id"`
	StartedAt      int64                     `json:"started_at"` // ms since epoch
	Events         []Event                   `json:"events"`
	ShockCount     int                       `json:"shock_count"`
	LastEpiTS      *int64                    `json:"last_epi_ts,omitempty"`
	Location       string                    `json:"location,omitempty"`
	UHID           string                    `json:"uhid,omitempty"`
	AirwayAdvanced bool                      `json:"airway_advanced"`
	CycleCount     int                       `json:"cycle_count"`
	Rhythm         Rhythm                    `json:"rhythm,omitempty"`
	WeightKg       float64                   `json:"weight_kg,omitempty"`
	Roles          map[RoleID]RoleAssignment `json:"roles,omitempty"`
	Closed         bool                      `json:"closed"`
}

// Chronological returns the events oldest-first without mutating the stored
// newest-first order.
func (cs *CaseState) Chronological() []Event {
	out := make([]Event, len(cs.Events))
	for i, ev := range cs.Events {
		out[len(cs.Events)-1-i] = ev
	}
	return out
}
