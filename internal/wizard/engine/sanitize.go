// internal/wizard/engine/sanitize.go

package engine

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"carrier-portal/internal/models"
)

var (
	phoneAllowed = regexp.MustCompile(`[^0-9()+\-.\s]`)
	nameAllowed  = regexp.MustCompile(`[^a-zA-Z\s\-'.]`)
	einAllowed   = regexp.MustCompile(`[^0-9\-]`)
)

func sanitizePhone(value string) string {
	return phoneAllowed.ReplaceAllString(value, "")
}

func sanitizeName(value string) string {
	return nameAllowed.ReplaceAllString(value, "")
}

func sanitizeEIN(value string) string {
	return einAllowed.ReplaceAllString(value, "")
}

// Edit sets a single form field by wire name, applying the field's sanitizer
// before assignment, and persists the updated record. Editing a field never
// triggers validation; that happens on Next.
func (e *Engine) Edit(ctx context.Context, field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := applyField(&e.state.Form, field, value); err != nil {
		return err
	}
	return e.persistLocked(ctx)
}

// AddVIN appends a VIN entry. Duplicates are allowed.
func (e *Engine) AddVIN(ctx context.Context, vin string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Form.AddVIN(strings.TrimSpace(vin))
	return e.persistLocked(ctx)
}

// RemoveVIN removes the VIN at index. Out-of-range indices are ignored.
func (e *Engine) RemoveVIN(ctx context.Context, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Form.RemoveVIN(index)
	return e.persistLocked(ctx)
}

// AttachFile records file metadata against an upload field and returns the
// generated attachment identifier.
func (e *Engine) AttachFile(ctx context.Context, field, filename string, size int64, contentType string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	att := models.Attachment{
		ID:          uuid.New().String(),
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
	}

	form := &e.state.Form
	switch field {
	case "truckPhotos":
		form.TruckPhotos = append(form.TruckPhotos, att)
	case "cdlUpload":
		form.CDLUpload = &att
	case "medCardUpload":
		form.MedCardUpload = &att
	case "coiUpload":
		form.COIUpload = &att
	case "businessDocs":
		form.BusinessDocs = append(form.BusinessDocs, att)
	default:
		return "", ErrUnknownField
	}

	if err := e.persistLocked(ctx); err != nil {
		return "", err
	}
	return att.ID, nil
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func applyField(form *models.ApplicationForm, field, value string) error {
	switch field {
	// Step 1
	case "fullName":
		form.FullName = sanitizeName(value)
	case "companyName":
		form.CompanyName = value
	case "companyAddress":
		form.CompanyAddress = value
	case "ownerName":
		form.OwnerName = sanitizeName(value)
	case "businessEin":
		form.BusinessEIN = sanitizeEIN(value)
	case "phone":
		form.Phone = sanitizePhone(value)
	case "email":
		// Email comes from the authenticated identity and is not editable
		// once set.
		if form.Email == "" {
			form.Email = strings.TrimSpace(value)
		}
	case "website":
		form.Website = strings.TrimSpace(value)
	case "businessStructure":
		form.BusinessStructure = value
	case "mcDotNumber":
		form.MCDOTNumber = strings.TrimSpace(value)
	case "referralSource":
		form.ReferralSource = value

	// Step 2
	case "ownershipStatus":
		form.OwnershipStatus = value
	case "equipmentType":
		form.EquipmentType = value
	case "truckYear":
		form.TruckYear = strings.TrimSpace(value)
	case "truckMakeModel":
		form.TruckMakeModel = value
	case "gvwr":
		form.GVWR = strings.TrimSpace(value)
	case "hasTarp":
		form.HasTarp = value
	case "hasAdditionalTrucks":
		form.HasAdditionalTrucks = value
	case "hasDotCertificate":
		form.HasDOTCertificate = value
	case "hasBackupPlan":
		form.HasBackupPlan = value

	// Step 3
	case "cdlClass":
		form.CDLClass = value
	case "cdlSuspended":
		form.CDLSuspended = value
	case "yearsExperience":
		form.YearsExperience = strings.TrimSpace(value)
	case "materialsHauled":
		form.MaterialsHauled = splitList(value)
	case "hasGovContracts":
		form.HasGovContracts = value

	// Step 4
	case "numEmployees":
		form.NumEmployees = strings.TrimSpace(value)
	case "workRadius":
		form.WorkRadius = value
	case "shiftFlexibility":
		form.ShiftFlexibility = value
	case "preferredStates":
		form.PreferredStates = value
	case "startAvailability":
		form.StartAvailability = value
	case "weeklyAvailability":
		form.WeeklyAvailability = value

	// Step 5
	case "liabilityCoverage":
		form.LiabilityCoverage = strings.TrimSpace(value)
	case "cargoCoverage":
		form.CargoCoverage = strings.TrimSpace(value)
	case "insuranceExpiry":
		form.InsuranceExpiry = strings.TrimSpace(value)
	case "hasWorkerComp":
		form.HasWorkerComp = value
	case "allowCertHolder":
		form.AllowCertHolder = value

	// Step 6
	case "hasFelony":
		form.HasFelony = value
	case "willingDrugTest":
		form.WillingDrugTest = value
	case "enrolledRandomTesting":
		form.EnrolledRandomTesting = value
	case "hasSafetyViolations":
		form.HasSafetyViolations = value
	case "hasLegalIssues":
		form.HasLegalIssues = value

	// Step 7
	case "currentContractStatus":
		form.CurrentContractStatus = value
	case "usingDispatchServices":
		form.UsingDispatchServices = value
	case "usingTelematics":
		form.UsingTelematics = value
	case "interestedInMaintenanceDiscount":
		form.InterestedInMaintenanceDiscount = value
	case "additionalComments":
		form.AdditionalComments = value

	default:
		return ErrUnknownField
	}
	return nil
}
