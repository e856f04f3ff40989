// internal/models/application.go
package models

// ApplicationForm aggregates every field collected across the seven wizard
// steps. It is the unvalidated superset: validity is only ever judged
// per-step by the validator, never globally.
type ApplicationForm struct {
	// Step 1 — contact and business info
	FullName          string `json:"fullName"`
	CompanyName       string `json:"companyName"`
	CompanyAddress    string `json:"companyAddress"`
	OwnerName         string `json:"ownerName"`
	BusinessEIN       string `json:"businessEIN"`
	Phone             string `json:"phone"`
	Email             string `json:"email"` // sourced from the authenticated identity
	Website           string `json:"website"`
	BusinessStructure string `json:"businessStructure"`
	MCDOTNumber       string `json:"mcDotNumber"`
	ReferralSource    string `json:"referralSource"`

	// Step 2 — equipment
	OwnershipStatus     string       `json:"ownershipStatus"`
	EquipmentType       string       `json:"equipmentType"`
	TruckYear           string       `json:"truckYear"`
	TruckMakeModel      string       `json:"truckMakeModel"`
	Vins                []string     `json:"vins"`
	GVWR                string       `json:"gvwr"`
	HasTarp             string       `json:"hasTarp"`
	HasAdditionalTrucks string       `json:"hasAdditionalTrucks"`
	HasDOTCertificate   string       `json:"hasDotCertificate"`
	HasBackupPlan       string       `json:"hasBackupPlan"`
	TruckPhotos         []Attachment `json:"truckPhotos,omitempty"`

	// Step 3 — CDL and credentials
	CDLClass        string      `json:"cdlClass"`
	CDLSuspended    string      `json:"cdlSuspended"`
	YearsExperience string      `json:"yearsExperience"`
	MaterialsHauled []string    `json:"materialsHauled"`
	HasGovContracts string      `json:"hasGovContracts"`
	CDLUpload       *Attachment `json:"cdlUpload,omitempty"`
	MedCardUpload   *Attachment `json:"medCardUpload,omitempty"`

	// Step 4 — operational capacity
	NumEmployees       string `json:"numEmployees"`
	WorkRadius         string `json:"workRadius"`
	ShiftFlexibility   string `json:"shiftFlexibility"`
	PreferredStates    string `json:"preferredStates"`
	StartAvailability  string `json:"startAvailability"`
	WeeklyAvailability string `json:"weeklyAvailability"`

	// Step 5 — insurance
	LiabilityCoverage string      `json:"liabilityCoverage"`
	CargoCoverage     string      `json:"cargoCoverage"`
	InsuranceExpiry   string      `json:"insuranceExpiry"`
	HasWorkerComp     string      `json:"hasWorkerComp"`
	AllowCertHolder   string      `json:"allowCertHolder"`
	COIUpload         *Attachment `json:"coiUpload,omitempty"`

	// Step 6 — screening
	HasFelony             string `json:"hasFelony"`
	WillingDrugTest       string `json:"willingDrugTest"`
	EnrolledRandomTesting string `json:"enrolledRandomTesting"`
	HasSafetyViolations   string `json:"hasSafetyViolations"`
	HasLegalIssues        string `json:"hasLegalIssues"`

	// Step 7 — additional info
	CurrentContractStatus           string       `json:"currentContractStatus"`
	UsingDispatchServices           string       `json:"usingDispatchServices"`
	UsingTelematics                 string       `json:"usingTelematics"`
	InterestedInMaintenanceDiscount string       `json:"interestedInMaintenanceDiscount"`
	AdditionalComments              string       `json:"additionalComments"`
	BusinessDocs                    []Attachment `json:"businessDocs,omitempty"`
}

// AddVIN appends a VIN entry. Duplicates are allowed; entries keep
// insertion order.
func (f *ApplicationForm) AddVIN(vin string) {
	f.Vins = append(f.Vins, vin)
}

// RemoveVIN removes the VIN at index. Out-of-range indexes are ignored.
func (f *ApplicationForm) RemoveVIN(index int) {
	if index < 0 || index >= len(f.Vins) {
		return
	}
	f.Vins = append(f.Vins[:index], f.Vins[index+1:]...)
}

// Clone returns a copy with its own backing storage for every slice and
// attachment field. The copy stays stable while the original keeps mutating,
// which is what an in-flight submission needs.
func (f ApplicationForm) Clone() ApplicationForm {
	out := f
	out.Vins = append([]string(nil), f.Vins...)
	out.MaterialsHauled = append([]string(nil), f.MaterialsHauled...)
	out.TruckPhotos = append([]Attachment(nil), f.TruckPhotos...)
	out.BusinessDocs = append([]Attachment(nil), f.BusinessDocs...)
	out.CDLUpload = cloneAttachment(f.CDLUpload)
	out.MedCardUpload = cloneAttachment(f.MedCardUpload)
	out.COIUpload = cloneAttachment(f.COIUpload)
	return out
}

func cloneAttachment(a *Attachment) *Attachment {
	if a == nil {
		return nil
	}
	copied := *a
	return &copied
}

// YesNo converts the UI's "Yes"/"No"/"Maybe" option strings to the wire
// boolean: only the literal "Yes" is true.
func YesNo(value string) bool {
	return value == "Yes"
}
