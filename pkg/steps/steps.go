// pkg/steps/steps.go
package steps

// Step describes one wizard stage: its number, the title shown to the
// candidate, and the wire field names its submission carries.
type Step struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	WireNames []string `json:"wireNames"`
}

var registry = []Step{
	{
		Number: 1,
		Title:  "Contact & Business Info",
		WireNames: []string{
			"full_name", "company_name", "company_address", "owner_name", "ein",
			"phone", "email", "website", "business_structure", "mc_dot_number",
			"referral_source",
		},
	},
	{
		Number: 2,
		Title:  "Equipment",
		WireNames: []string{
			"ownership_status", "equipment_type", "truck_year", "truck_make_model",
			"truck_vin", "gvwr", "has_tarp", "has_additional_trucks",
			"has_dot_certificate", "has_backup_plan",
		},
	},
	{
		Number: 3,
		Title:  "CDL & Credentials",
		WireNames: []string{
			"cdl_class", "cdl_suspended", "experience_years", "materials_hauled",
			"has_gov_contracts",
		},
	},
	{
		Number: 4,
		Title:  "Operational Capacity",
		WireNames: []string{
			"employee_count", "work_radius", "shift_flexibility", "preferred_states",
			"start_availability", "weekly_availability",
		},
	},
	{
		Number: 5,
		Title:  "Insurance",
		WireNames: []string{
			"liability_coverage", "cargo_coverage", "insurance_expiry",
			"has_worker_comp", "allow_cert_holder",
		},
	},
	{
		Number: 6,
		Title:  "Screening",
		WireNames: []string{
			"has_felony", "willing_drug_test", "enrolled_random_testing",
			"has_safety_violations", "has_legal_issues",
		},
	},
	{
		Number: 7,
		Title:  "Additional Info",
		WireNames: []string{
			"current_contract_status", "using_dispatch_services", "using_telematics",
			"interested_in_maintenance_discount", "additional_comments",
		},
	},
}

// All returns the seven wizard steps in order.
func All() []Step {
	out := make([]Step, len(registry))
	copy(out, registry)
	return out
}

// Count is the number of wizard steps.
func Count() int {
	return len(registry)
}

// Title returns the display title for a step number, or "" if out of range.
func Title(number int) string {
	for _, s := range registry {
		if s.Number == number {
			return s.Title
		}
	}
	return ""
}
