// internal/wizard/validator/validator.go

// Package validator holds the per-step rule tables for the application
// wizard. Validation is pure: no side effects, nothing cached, and rules for
// one step never read another step's fields, so steps can be validated in any
// order on resumption.
package validator

import (
	"regexp"
	"strconv"
	"strings"

	"carrier-portal/internal/models"
)

var (
	nameRegex  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\s\-'.]{1,99}$`)
	einRegex   = regexp.MustCompile(`^\d{2}-?\d{7}$`)
	digitRegex = regexp.MustCompile(`\d`)
	yearRegex  = regexp.MustCompile(`^(19|20)\d{2}$`)
)

// rule is one check within a step's table. Rules run in declaration order and
// the first failure wins; its message is the single error the UI surfaces.
type rule struct {
	field   string
	message string
	ok      func(f *models.ApplicationForm) bool
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// nonNegativeInt reports whether s parses as an integer >= 0. Malformed and
// negative values both fall through to the owning rule's generic message;
// there is no dedicated out-of-range message.
func nonNegativeInt(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= 0
}

func phoneDigits(s string) int {
	return len(digitRegex.FindAllString(s, -1))
}

var businessStructures = map[string]bool{
	"LLC":                 true,
	"Corporation":         true,
	"Partnership":         true,
	"Sole Proprietorship": true,
	"Other":               true,
}

func answered(s string) bool {
	return s == "Yes" || s == "No"
}

var stepRules = map[int][]rule{
	1: {
		{"fullName", "Please enter your full name", func(f *models.ApplicationForm) bool {
			return nameRegex.MatchString(strings.TrimSpace(f.FullName))
		}},
		{"companyAddress", "Please enter your company address", func(f *models.ApplicationForm) bool {
			return present(f.CompanyAddress)
		}},
		{"businessEIN", "Please enter a valid EIN (XX-XXXXXXX)", func(f *models.ApplicationForm) bool {
			return einRegex.MatchString(strings.TrimSpace(f.BusinessEIN))
		}},
		{"phone", "Please enter a valid phone number", func(f *models.ApplicationForm) bool {
			return phoneDigits(f.Phone) >= 10
		}},
		{"businessStructure", "Please select your business structure", func(f *models.ApplicationForm) bool {
			return businessStructures[f.BusinessStructure]
		}},
	},
	2: {
		{"ownershipStatus", "Please select your ownership status", func(f *models.ApplicationForm) bool {
			return present(f.OwnershipStatus)
		}},
		{"equipmentType", "Please select your equipment type", func(f *models.ApplicationForm) bool {
			return present(f.EquipmentType)
		}},
		{"truckYear", "Please enter a valid truck year", func(f *models.ApplicationForm) bool {
			return yearRegex.MatchString(strings.TrimSpace(f.TruckYear))
		}},
		{"truckMakeModel", "Please enter the truck make and model", func(f *models.ApplicationForm) bool {
			return present(f.TruckMakeModel)
		}},
		{"vins", "Please add at least one VIN", func(f *models.ApplicationForm) bool {
			return len(f.Vins) > 0
		}},
		{"gvwr", "Please enter the GVWR", func(f *models.ApplicationForm) bool {
			return present(f.GVWR)
		}},
	},
	3: {
		{"cdlClass", "Please select your CDL class", func(f *models.ApplicationForm) bool {
			return present(f.CDLClass)
		}},
		{"cdlSuspended", "Please answer the CDL suspension question", func(f *models.ApplicationForm) bool {
			return answered(f.CDLSuspended)
		}},
		{"yearsExperience", "Please enter your years of experience", func(f *models.ApplicationForm) bool {
			return nonNegativeInt(f.YearsExperience)
		}},
		{"materialsHauled", "Please select at least one material you haul", func(f *models.ApplicationForm) bool {
			return len(f.MaterialsHauled) > 0
		}},
	},
	4: {
		{"numEmployees", "Please enter your number of employees", func(f *models.ApplicationForm) bool {
			return nonNegativeInt(f.NumEmployees)
		}},
		{"workRadius", "Please select your work radius", func(f *models.ApplicationForm) bool {
			return present(f.WorkRadius)
		}},
		{"shiftFlexibility", "Please select your shift flexibility", func(f *models.ApplicationForm) bool {
			return present(f.ShiftFlexibility)
		}},
		{"startAvailability", "Please select your start availability", func(f *models.ApplicationForm) bool {
			return present(f.StartAvailability)
		}},
	},
	5: {
		{"liabilityCoverage", "Please enter your liability coverage", func(f *models.ApplicationForm) bool {
			return present(f.LiabilityCoverage)
		}},
		{"cargoCoverage", "Please answer the cargo coverage question", func(f *models.ApplicationForm) bool {
			return answered(f.CargoCoverage)
		}},
		{"insuranceExpiry", "Please enter your insurance expiry date", func(f *models.ApplicationForm) bool {
			return present(f.InsuranceExpiry)
		}},
		{"hasWorkerComp", "Please answer the workers' comp question", func(f *models.ApplicationForm) bool {
			return answered(f.HasWorkerComp)
		}},
	},
	6: {
		{"hasFelony", "Please answer the felony question", func(f *models.ApplicationForm) bool {
			return answered(f.HasFelony)
		}},
		{"willingDrugTest", "Please answer the drug test question", func(f *models.ApplicationForm) bool {
			return answered(f.WillingDrugTest)
		}},
		{"enrolledRandomTesting", "Please answer the random testing question", func(f *models.ApplicationForm) bool {
			return answered(f.EnrolledRandomTesting)
		}},
		{"hasSafetyViolations", "Please answer the safety violations question", func(f *models.ApplicationForm) bool {
			return answered(f.HasSafetyViolations)
		}},
		{"hasLegalIssues", "Please answer the legal issues question", func(f *models.ApplicationForm) bool {
			return answered(f.HasLegalIssues)
		}},
	},
	7: {
		{"currentContractStatus", "Please select your current contract status", func(f *models.ApplicationForm) bool {
			return present(f.CurrentContractStatus)
		}},
		{"usingDispatchServices", "Please answer the dispatch services question", func(f *models.ApplicationForm) bool {
			return answered(f.UsingDispatchServices)
		}},
		{"usingTelematics", "Please answer the telematics question", func(f *models.ApplicationForm) bool {
			return answered(f.UsingTelematics)
		}},
	},
}

// Validate runs the step's rules in declaration order and stops at the first
// failure, so at most one error is returned per attempt.
func Validate(step int, form *models.ApplicationForm) models.ValidationResult {
	for _, r := range stepRules[step] {
		if !r.ok(form) {
			return models.ValidationResult{
				Valid: false,
				Errors: []models.ValidationError{{
					Field:   r.field,
					Message: r.message,
				}},
			}
		}
	}
	return models.ValidationResult{Valid: true}
}

// importantField names a form field surfaced by the pre-finalization gap
// check. The check is informational only; the candidate may submit anyway.
type importantField struct {
	label string
	ok    func(f *models.ApplicationForm) bool
}

var importantFields = []importantField{
	{"Company name", func(f *models.ApplicationForm) bool { return present(f.CompanyName) }},
	{"MC/DOT number", func(f *models.ApplicationForm) bool { return present(f.MCDOTNumber) }},
	{"Truck photos", func(f *models.ApplicationForm) bool { return len(f.TruckPhotos) > 0 }},
	{"CDL upload", func(f *models.ApplicationForm) bool { return f.CDLUpload != nil }},
	{"Medical card upload", func(f *models.ApplicationForm) bool { return f.MedCardUpload != nil }},
	{"Certificate of insurance upload", func(f *models.ApplicationForm) bool { return f.COIUpload != nil }},
	{"Preferred states", func(f *models.ApplicationForm) bool { return present(f.PreferredStates) }},
}

// MissingImportantFields lists optional-but-valuable fields still empty at
// the end of the wizard. Never blocks submission.
func MissingImportantFields(form *models.ApplicationForm) []string {
	var missing []string
	for _, fld := range importantFields {
		if !fld.ok(form) {
			missing = append(missing, fld.label)
		}
	}
	return missing
}
