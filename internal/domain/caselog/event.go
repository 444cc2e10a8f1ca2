package caselog

// Section is the clinical category tag for a logged action.
type Section string

const (
	SectionCirculation    Section = "C"
	SectionAirway         Section = "A"
	SectionBreathing      Section = "B"
	SectionDefibrillation Section = "D"
	SectionExposure       Section = "E"
)

// EventType discriminates the event variants. The zero value is a basic
// event carrying only the common fields.
type EventType string

const (
	EventBasic           EventType = ""
	EventRoleTransition  EventType = "role_transition"
	EventAirway          EventType = "airway"
	EventRescEnded       EventType = "resuscitation_ended"
	EventROSC            EventType = "rosc_achieved"
	EventReversibleCause EventType = "reversible_cause_note"
	EventRhythmAnalysis  EventType = "rhythm_analysis"
	EventTeamAction      EventType = "team_action"
	EventResourceUse     EventType = "resource_use"
	EventQualityMetric   EventType = "quality_metric"
)

// AirwayTechnique distinguishes basic from advanced airway management.
type AirwayTechnique string

const (
	AirwayBasic    AirwayTechnique = "basic"
	AirwayAdvanced AirwayTechnique = "advanced"
)

// Event is one logged occurrence in a case. Common fields are immutable
// after creation except Details; the variant payload matching Type holds
// the extra typed fields, all other payload pointers are nil.
type Event struct {
	ID      string    `json:"id"`
	TS      int64     `json:"ts"`                 // ms since epoch
	TRelMs  int64     `json:"t_rel_ms"`           // offset from case start
	TSec    *int64    `json:"t_sec,omitempty"`    // precomputed seconds, if recorded
	Who     string    `json:"who,omitempty"`      // actor name
	Section Section   `json:"section,omitempty"`
	Action  string    `json:"action"`
	Details string    `json:"details,omitempty"`
	Role    RoleID    `json:"role,omitempty"`
	Type    EventType `json:"type,omitempty"`

	RoleTransition  *RoleTransitionDetail  `json:"role_transition,omitempty"`
	Airway          *AirwayDetail          `json:"airway_detail,omitempty"`
	RescEnded       *RescEndedDetail       `json:"resc_ended,omitempty"`
	ROSC            *ROSCDetail            `json:"rosc,omitempty"`
	ReversibleCause *ReversibleCauseDetail `json:"reversible_cause,omitempty"`
	RhythmAnalysis  *RhythmAnalysisDetail  `json:"rhythm_analysis,omitempty"`
	TeamAction      *TeamActionDetail      `json:"team_action,omitempty"`
	ResourceUse     *ResourceUseDetail     `json:"resource_use,omitempty"`
	QualityMetric   *QualityMetricDetail   `json:"quality_metric,omitempty"`
}

// RoleTransitionDetail records a handover between team roles.
type RoleTransitionDetail struct {
	Name     string `json:"name"`
	FromRole RoleID `json:"from_role,omitempty"`
	ToRole   RoleID `json:"to_role"`
}

// AirwayDetail records an airway management step.
type AirwayDetail struct {
	Technique AirwayTechnique `json:"technique"`
	Step      string          `json:"step"`
}

// RescEndedDetail records the decision to stop resuscitation.
type RescEndedDetail struct {
	Reason string `json:"reason"`
	Cause  string `json:"cause"`
	Notes  string `json:"notes,omitempty"`
}

// ROSCDetail records return of spontaneous circulation.
type ROSCDetail struct {
	Cause string `json:"cause"`
	Team  string `json:"team"`
	Notes string `json:"notes,omitempty"`
}

// ReversibleCauseDetail records a 4H/4T reversible-cause discussion.
type ReversibleCauseDetail struct {
	Cause        string `json:"cause"`
	Discussion   string `json:"discussion"`
	Intervention string `json:"intervention"`
}

// RhythmAnalysisDetail records a rhythm check and the resulting plan.
type RhythmAnalysisDetail struct {
	Rhythm   string `json:"rhythm"`
	Analysis string `json:"analysis"`
	Plan     string `json:"plan"`
}

// TeamActionDetail records an action attributed to a named team member.
type TeamActionDetail struct {
	Actor    string `json:"actor"`
	RoleName string `json:"role_name,omitempty"`
}

// ResourceUseDetail records consumption of equipment or supplies.
type ResourceUseDetail struct {
	Resource string `json:"resource"`
	Quantity int    `json:"quantity,omitempty"`
	Purpose  string `json:"purpose,omitempty"`
}

// QualityMetricDetail records an ad hoc quality observation.
type QualityMetricDetail struct {
	Metric    string `json:"metric"`
	Value     string `json:"value"`
	Benchmark string `json:"benchmark,omitempty"`
}

// Seconds returns the event's time offset in whole seconds, preferring the
// precomputed TSec when present.
func (e *Event) Seconds() int64 {
	if e.TSec != nil {
		return *e.TSec
	}
	return (e.TRelMs + 500) / 1000
}
