package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrier-portal/internal/models"
)

// ==========================
// Test Helpers
// ==========================

func validStep1Form() *models.ApplicationForm {
	return &models.ApplicationForm{
		FullName:          "John Carter",
		CompanyAddress:    "100 Main St, Dallas TX",
		BusinessEIN:       "12-3456789",
		Phone:             "(555) 123-4567",
		BusinessStructure: "LLC",
	}
}

func validStep2Form() *models.ApplicationForm {
	return &models.ApplicationForm{
		OwnershipStatus: "Owned",
		EquipmentType:   "End dump",
		TruckYear:       "2019",
		TruckMakeModel:  "Kenworth T880",
		Vins:            []string{"1XKZD49X1KJ123456"},
		GVWR:            "66000",
	}
}

func validStep3Form() *models.ApplicationForm {
	return &models.ApplicationForm{
		CDLClass:        "Class A",
		CDLSuspended:    "No",
		YearsExperience: "8",
		MaterialsHauled: []string{"Sand", "Gravel"},
	}
}

// ==========================
// Per-Step Rule Tests
// ==========================

func TestValidate_Step1(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *models.ApplicationForm)
		wantField string
		wantMsg   string
	}{
		{
			name:   "valid form passes",
			mutate: func(f *models.ApplicationForm) {},
		},
		{
			name:      "missing full name",
			mutate:    func(f *models.ApplicationForm) { f.FullName = "" },
			wantField: "fullName",
			wantMsg:   "Please enter your full name",
		},
		{
			name:      "full name with digits",
			mutate:    func(f *models.ApplicationForm) { f.FullName = "John 2 Carter" },
			wantField: "fullName",
			wantMsg:   "Please enter your full name",
		},
		{
			name:      "single character name",
			mutate:    func(f *models.ApplicationForm) { f.FullName = "J" },
			wantField: "fullName",
			wantMsg:   "Please enter your full name",
		},
		{
			name:      "missing company address",
			mutate:    func(f *models.ApplicationForm) { f.CompanyAddress = "   " },
			wantField: "companyAddress",
			wantMsg:   "Please enter your company address",
		},
		{
			name:      "EIN too short",
			mutate:    func(f *models.ApplicationForm) { f.BusinessEIN = "12-34567" },
			wantField: "businessEIN",
			wantMsg:   "Please enter a valid EIN (XX-XXXXXXX)",
		},
		{
			name:   "EIN without dash accepted",
			mutate: func(f *models.ApplicationForm) { f.BusinessEIN = "123456789" },
		},
		{
			name:      "phone with too few digits",
			mutate:    func(f *models.ApplicationForm) { f.Phone = "555-1234" },
			wantField: "phone",
			wantMsg:   "Please enter a valid phone number",
		},
		{
			name:      "unknown business structure",
			mutate:    func(f *models.ApplicationForm) { f.BusinessStructure = "Co-op" },
			wantField: "businessStructure",
			wantMsg:   "Please select your business structure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validStep1Form()
			tt.mutate(form)

			result := Validate(1, form)

			if tt.wantField == "" {
				assert.True(t, result.Valid)
				assert.Empty(t, result.Errors)
				return
			}

			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
			assert.Equal(t, tt.wantMsg, result.Errors[0].Message)
		})
	}
}

func TestValidate_Step2(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *models.ApplicationForm)
		wantField string
	}{
		{name: "valid form passes", mutate: func(f *models.ApplicationForm) {}},
		{name: "missing ownership status", mutate: func(f *models.ApplicationForm) { f.OwnershipStatus = "" }, wantField: "ownershipStatus"},
		{name: "truck year out of pattern", mutate: func(f *models.ApplicationForm) { f.TruckYear = "1899" }, wantField: "truckYear"},
		{name: "truck year not numeric", mutate: func(f *models.ApplicationForm) { f.TruckYear = "new" }, wantField: "truckYear"},
		{name: "no VINs", mutate: func(f *models.ApplicationForm) { f.Vins = nil }, wantField: "vins"},
		{name: "missing GVWR", mutate: func(f *models.ApplicationForm) { f.GVWR = "" }, wantField: "gvwr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validStep2Form()
			tt.mutate(form)

			result := Validate(2, form)
			if tt.wantField == "" {
				assert.True(t, result.Valid)
				return
			}
			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
		})
	}
}

func TestValidate_Step3(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *models.ApplicationForm)
		wantField string
		wantMsg   string
	}{
		{name: "valid form passes", mutate: func(f *models.ApplicationForm) {}},
		{
			name:      "unanswered suspension question",
			mutate:    func(f *models.ApplicationForm) { f.CDLSuspended = "" },
			wantField: "cdlSuspended",
		},
		{
			name:      "negative years of experience",
			mutate:    func(f *models.ApplicationForm) { f.YearsExperience = "-1" },
			wantField: "yearsExperience",
			wantMsg:   "Please enter your years of experience",
		},
		{
			name:      "non-numeric years of experience shares the generic message",
			mutate:    func(f *models.ApplicationForm) { f.YearsExperience = "several" },
			wantField: "yearsExperience",
			wantMsg:   "Please enter your years of experience",
		},
		{
			name:   "zero years of experience is valid",
			mutate: func(f *models.ApplicationForm) { f.YearsExperience = "0" },
		},
		{
			name:      "no materials selected",
			mutate:    func(f *models.ApplicationForm) { f.MaterialsHauled = nil },
			wantField: "materialsHauled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validStep3Form()
			tt.mutate(form)

			result := Validate(3, form)
			if tt.wantField == "" {
				assert.True(t, result.Valid)
				return
			}
			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, result.Errors[0].Message)
			}
		})
	}
}

// ==========================
// First-Failure-Wins Tests
// ==========================

func TestValidate_FirstFailureWins(t *testing.T) {
	// Everything on step 1 is wrong; only the first rule's error surfaces.
	form := &models.ApplicationForm{}

	result := Validate(1, form)

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "fullName", result.Errors[0].Field)
}

func TestValidate_StepsAreIndependent(t *testing.T) {
	// A form valid for step 3 stays valid for step 3 regardless of the state
	// of every other step's fields.
	form := validStep3Form()

	for step := 1; step <= 7; step++ {
		_ = Validate(step, form)
	}

	result := Validate(3, form)
	assert.True(t, result.Valid)
}

func TestValidate_UnknownStepIsValid(t *testing.T) {
	result := Validate(99, &models.ApplicationForm{})
	assert.True(t, result.Valid)
}

// ==========================
// Important Field Gap Check
// ==========================

func TestMissingImportantFields(t *testing.T) {
	form := &models.ApplicationForm{}

	missing := MissingImportantFields(form)
	assert.Equal(t, []string{
		"Company name",
		"MC/DOT number",
		"Truck photos",
		"CDL upload",
		"Medical card upload",
		"Certificate of insurance upload",
		"Preferred states",
	}, missing)

	form.CompanyName = "Carter Hauling LLC"
	form.MCDOTNumber = "MC-123456"
	form.TruckPhotos = []models.Attachment{{ID: "a1", Filename: "cab.jpg"}}
	form.CDLUpload = &models.Attachment{ID: "a2", Filename: "cdl.pdf"}
	form.MedCardUpload = &models.Attachment{ID: "a3", Filename: "med.pdf"}
	form.COIUpload = &models.Attachment{ID: "a4", Filename: "coi.pdf"}
	form.PreferredStates = "TX, OK"

	assert.Empty(t, MissingImportantFields(form))
}
