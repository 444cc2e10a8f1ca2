// Package reference serves the static clinical lookup data used at the
// bedside: resuscitation drug guidance, procedure chips, and the 4H/4T
// reversible cause checklist. Doses follow guideline patterns; sites adapt
// them to local protocols.
package reference

import "fmt"

// Drug is one guidance entry for a resuscitation or crash-cart drug.
type Drug struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	AdultDose      string   `json:"adult_dose"`
	PaediatricDose string   `json:"paediatric_dose,omitempty"`
	Reconstitution string   `json:"reconstitution,omitempty"`
	Indications    []string `json:"indications,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// ReversibleCause is one entry in the 4H/4T checklist.
type ReversibleCause struct {
	Key string `json:"key"`
	Tip string `json:"tip"`
}

// ProcedureChip is a quick-log shortcut grouped by clinical category.
type ProcedureChip struct {
	Group string `json:"group"`
	Label string `json:"label"`
}

// Drugs lists arrest-focused drug guidance followed by crash-cart and RSI
// agents.
var Drugs = []Drug{
	{
		ID:             "adrenaline",
		Name:           "Adrenaline (Epinephrine)",
		AdultDose:      "1 mg IV/IO every 3–5 min (cardiac arrest)",
		PaediatricDose: "0.01 mg/kg IV/IO (0.1 mL/kg of 1:10,000); max single 1 mg",
		Reconstitution: "If only 1:1000 available: draw 1 mL (1 mg) and dilute into 9 mL saline to make 10 mL of 1:10,000 (0.1 mg/mL).",
		Indications:    []string{"Hypoxia", "Cardiac arrest algorithm", "Toxins where indicated"},
		Notes:          "IV/IO preferred; intraosseous if no IV access. Endotracheal route less reliable.",
	},
	{
		ID:             "amiodarone",
		Name:           "Amiodarone",
		AdultDose:      "300 mg IV bolus for shock-refractory VF/VT; additional 150 mg if required",
		PaediatricDose: "5 mg/kg IV/IO (may repeat; max single 300 mg)",
		Reconstitution: "For bolus, dilute in 50–100 mL D5W. Avoid mixing in saline for infusion.",
		Indications:    []string{"Tachyarrhythmia (VF/VT)"},
		Notes:          "Can cause hypotension; give slowly if concerned.",
	},
	{
		ID:             "lidocaine",
		Name:           "Lidocaine",
		AdultDose:      "1–1.5 mg/kg IV/IO bolus for VF/VT; repeat 0.5–0.75 mg/kg",
		PaediatricDose: "1 mg/kg IV/IO (1–1.5 mg/kg per protocol)",
		Indications:    []string{"Tachyarrhythmia (alternative to amiodarone)"},
	},
	{
		ID:             "magnesium",
		Name:           "Magnesium sulfate",
		AdultDose:      "1–2 g IV bolus for torsades de pointes or suspected hypomagnesaemia",
		PaediatricDose: "25–50 mg/kg IV (max 2 g)",
		Indications:    []string{"Torsades de pointes", "Electrolyte disturbance (H)"},
	},
	{
		ID:             "calcium_chloride",
		Name:           "Calcium chloride (10%)",
		AdultDose:      "1 g IV (10 mL of 10% solution) for hyperkalaemia or calcium-channel blocker overdose",
		PaediatricDose: "20 mg/kg IV (10% solution) slow IV",
		Indications:    []string{"Hyperkalaemia (H)", "Calcium-channel blocker overdose (T)"},
		Notes:          "Do not mix with bicarbonate in same line (precipitation).",
	},
	{
		ID:             "bicarbonate",
		Name:           "Sodium bicarbonate",
		AdultDose:      "50 mEq IV (or 1–2 mEq/kg in severe acidosis/hyperkalaemia)",
		PaediatricDose: "1–2 mEq/kg IV in severe metabolic acidosis",
		Indications:    []string{"Severe metabolic acidosis (H)", "TCA overdose (T)", "Hyperkalaemia (H)"},
		Notes:          "Not routinely indicated in arrest absent specific cause.",
	},
	{
		ID:             "insulin_dextrose",
		Name:           "Insulin + Dextrose (for hyperkalaemia)",
		AdultDose:      "10 units IV regular insulin + 25–50 g 50% dextrose; monitor glucose closely",
		PaediatricDose: "0.1 U/kg IV insulin with appropriate dextrose bolus (check local protocol)",
		Indications:    []string{"Hyperkalaemia (H)"},
		Notes:          "Temporary shift of K+ intracellularly; consider definitive measures as needed.",
	},
	{
		ID:          "alteplase",
		Name:        "Alteplase (tPA)",
		AdultDose:   "Protocols vary; for suspected massive PE in arrest some centres use 50 mg IV bolus. Follow local thrombolysis protocol.",
		Indications: []string{"Massive pulmonary embolism (T)"},
		Notes:       "High bleeding risk; consult local guidelines.",
	},
	{
		ID:          "naloxone",
		Name:        "Naloxone",
		AdultDose:   "0.4 mg IV/IM/IN (400 mcg) titrated up to 2 mg IV for opioid overdose",
		Indications: []string{"Opioid overdose (T)"},
		Notes:       "May precipitate acute withdrawal.",
	},
	{
		ID:             "calcium_gluconate",
		Name:           "Calcium gluconate (10%)",
		AdultDose:      "10 mL IV of 10% solution (slow IV bolus); may repeat if indicated",
		PaediatricDose: "20 mg/kg IV slow (10% solution)",
		Indications:    []string{"Hyperkalaemia (H)", "Calcium-channel blocker overdose (T)"},
		Notes:          "Less irritant peripherally than calcium chloride.",
	},
	{
		ID:             "atropine",
		Name:           "Atropine",
		AdultDose:      "0.5 mg IV bolus for symptomatic bradycardia; repeat every 3–5 min to a total of 3 mg",
		PaediatricDose: "20 mcg/kg IV/IM (0.02 mg/kg), minimum dose 0.1 mg",
		Indications:    []string{"Bradycardia", "Organophosphate poisoning (higher dosing protocols)"},
	},
	{
		ID:             "tranexamic_acid",
		Name:           "Tranexamic acid (TXA)",
		AdultDose:      "1 g IV bolus over 10 min (for trauma/bleeding); followed by infusion per protocol",
		Indications:    []string{"Major haemorrhage (H)"},
		Notes:          "Early administration in trauma is beneficial.",
	},
	{
		ID:             "ketamine",
		Name:           "Ketamine",
		AdultDose:      "1–2 mg/kg IV for induction (lower doses for analgesia 0.5–1 mg/kg)",
		PaediatricDose: "1–2 mg/kg IV for induction",
		Indications:    []string{"Induction for RSI; useful in hypotension as it supports blood pressure"},
		Notes:          "Can increase secretions and intracranial pressure.",
	},
	{
		ID:             "succinylcholine",
		Name:           "Succinylcholine (Suxamethonium)",
		AdultDose:      "1–1.5 mg/kg IV bolus for paralysis (rapid onset, short duration)",
		PaediatricDose: "1–2 mg/kg IV/IM depending on age",
		Indications:    []string{"Neuromuscular blockade for RSI"},
		Notes:          "Contraindicated in hyperkalaemia; check indications.",
	},
	{
		ID:             "rocuronium",
		Name:           "Rocuronium",
		AdultDose:      "0.6–1.2 mg/kg IV bolus for rapid sequence intubation (1 mg/kg for rapid onset)",
		PaediatricDose: "0.6–1.2 mg/kg IV depending on age",
		Indications:    []string{"Neuromuscular blockade for RSI; alternative to succinylcholine"},
		Notes:          "Longer duration than succinylcholine; consider reversal strategies if needed.",
	},
}

// ReversibleCauses is the 4H/4T checklist with bedside tips.
var ReversibleCauses = []ReversibleCause{
	{Key: "Hypoxia", Tip: "Bag-mask, 100% O2, verify ETCO2/SpO2"},
	{Key: "Hypovolemia", Tip: "Bolus fluids, FAST, hemorrhage control"},
	{Key: "Hydrogen ions (Acidosis)", Tip: "ABG/VBG, ventilate; consider HCO3- in severe"},
	{Key: "Hypo/Hyperkalemia", Tip: "ECG, CaCl, Insulin+Dextrose, Neb Salbutamol"},
	{Key: "Hypothermia", Tip: "Warm IV fluids, active rewarming"},
	{Key: "Tension pneumothorax", Tip: "Needle decompression, chest tube"},
	{Key: "Tamponade (cardiac)", Tip: "POCUS, pericardiocentesis"},
	{Key: "Toxins", Tip: "Antidotes, tox consult, charcoal if indicated"},
	{Key: "Thrombosis (pulmonary)", Tip: "Thrombolysis if massive PE"},
	{Key: "Thrombosis (coronary)", Tip: "STEMI pathway, PCI"},
}

// ProcedureChips lists quick-log shortcuts for common bedside procedures.
var ProcedureChips = []ProcedureChip{
	{Group: "Airway", Label: "OPA Size 0 (neonate)"},
	{Group: "Airway", Label: "OPA Size 1 (infant)"},
	{Group: "Airway", Label: "OPA Size 2 (child)"},
	{Group: "Airway", Label: "OPA Size 3 (small adult)"},
	{Group: "Airway", Label: "OPA Size 4 (adult)"},
	{Group: "Airway", Label: "OPA Size 5 (large adult)"},
	{Group: "Airway", Label: "NPA 6.0 mm"},
	{Group: "Airway", Label: "NPA 6.5 mm"},
	{Group: "Airway", Label: "NPA 7.0 mm"},
	{Group: "Airway", Label: "NPA 7.5 mm"},
	{Group: "Airway", Label: "NPA 8.0 mm"},
	{Group: "Airway", Label: "LMA Size 1 (≤5 kg)"},
	{Group: "Airway", Label: "LMA Size 2 (10–20 kg)"},
	{Group: "Airway", Label: "LMA Size 3 (30–50 kg)"},
	{Group: "Airway", Label: "LMA Size 4 (50–70 kg)"},
	{Group: "Airway", Label: "LMA Size 5 (70–100 kg)"},
	{Group: "Airway", Label: "ETT 6.5 mm"},
	{Group: "Airway", Label: "ETT 7.0 mm"},
	{Group: "Airway", Label: "ETT 7.5 mm"},
	{Group: "Airway", Label: "ETT 8.0 mm"},
	{Group: "Airway", Label: "ETT 8.5 mm"},
	{Group: "Access", Label: "IV 18G"},
	{Group: "Access", Label: "IV 16G"},
	{Group: "Access", Label: "IV 14G"},
	{Group: "Access", Label: "IO Tibia (adult)"},
	{Group: "Access", Label: "IO Tibia (peds)"},
	{Group: "Access", Label: "IO Humerus"},
	{Group: "Breathing", Label: "Chest tube 20 Fr"},
	{Group: "Breathing", Label: "Chest tube 28 Fr"},
	{Group: "Breathing", Label: "Chest tube 32 Fr"},
	{Group: "Defib", Label: "Pads placed (AP/AL)"},
	{Group: "Defib", Label: "O2 away from chest"},
	{Group: "Defib", Label: "Everyone clear"},
	{Group: "Defib", Label: "Shock delivered"},
}

// DrugByID looks up a drug entry, returning nil when unknown.
func DrugByID(id string) *Drug {
	for i := range Drugs {
		if Drugs[i].ID == id {
			return &Drugs[i]
		}
	}
	return nil
}

// ETTSize returns the uncuffed and cuffed endotracheal tube sizes estimated
// from age in years.
func ETTSize(ageYears float64) (uncuffed, cuffed float64) {
	return 4 + ageYears/4, 3.5 + ageYears/4
}

// PaediatricDoses renders weight-based doses for the core arrest drugs. A
// missing or non-positive weight falls back to 20 kg.
func PaediatricDoses(weightKg float64) map[string]string {
	w := weightKg
	if w <= 0 {
		w = 20
	}
	return map[string]string{
		"adrenaline": fmt.Sprintf("Adrenaline %.2f mg IV/IO (0.1 mL/kg of 1:10,000) — repeat every 3–5 min", 0.01*w),
		"amiodarone": fmt.Sprintf("%.0f mg IV/IO (5 mg/kg) — max single 300 mg", 5*w),
		"lidocaine":  fmt.Sprintf("%.0f–%.0f mg IV/IO (1–1.5 mg/kg)", 1*w, 1.5*w),
		"magnesium":  fmt.Sprintf("%.0f–%.0f mg IV (25–50 mg/kg) — max 2 g", 25*w, 50*w),
		"calcium":    fmt.Sprintf("%.0f mg IV (20 mg/kg of 10%% solution)", 20*w),
	}
}
