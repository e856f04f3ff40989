// internal/wizard/submitter/payload.go
package submitter

import (
	"strings"

	"carrier-portal/internal/models"
)

// payloadForStep serializes the step's fields into the exact wire shape the
// upstream API expects. Key names are load-bearing; the UI's "Yes"/"No"
// strings become booleans, list fields become comma-joined strings.
func payloadForStep(step int, form *models.ApplicationForm) map[string]interface{} {
	switch step {
	case 1:
		return map[string]interface{}{
			"full_name":          form.FullName,
			"company_name":       form.CompanyName,
			"company_address":    form.CompanyAddress,
			"owner_name":         form.OwnerName,
			"ein":                form.BusinessEIN,
			"phone":              form.Phone,
			"email":              form.Email,
			"website":            form.Website,
			"business_structure": form.BusinessStructure,
			"mc_dot_number":      form.MCDOTNumber,
			"referral_source":    form.ReferralSource,
		}
	case 2:
		return map[string]interface{}{
			"ownership_status":      form.OwnershipStatus,
			"equipment_type":        form.EquipmentType,
			"truck_year":            form.TruckYear,
			"truck_make_model":      form.TruckMakeModel,
			"truck_vin":             strings.Join(form.Vins, ","),
			"gvwr":                  form.GVWR,
			"has_tarp":              models.YesNo(form.HasTarp),
			"has_additional_trucks": models.YesNo(form.HasAdditionalTrucks),
			"has_dot_certificate":   models.YesNo(form.HasDOTCertificate),
			"has_backup_plan":       models.YesNo(form.HasBackupPlan),
		}
	case 3:
		return map[string]interface{}{
			"cdl_class":         form.CDLClass,
			"cdl_suspended":     models.YesNo(form.CDLSuspended),
			"experience_years":  form.YearsExperience,
			"materials_hauled":  strings.Join(form.MaterialsHauled, ","),
			"has_gov_contracts": models.YesNo(form.HasGovContracts),
		}
	case 4:
		return map[string]interface{}{
			"employee_count":      form.NumEmployees,
			"work_radius":         form.WorkRadius,
			"shift_flexibility":   form.ShiftFlexibility,
			"preferred_states":    form.PreferredStates,
			"start_availability":  form.StartAvailability,
			"weekly_availability": form.WeeklyAvailability,
		}
	case 5:
		return map[string]interface{}{
			"liability_coverage": form.LiabilityCoverage,
			"cargo_coverage":     models.YesNo(form.CargoCoverage),
			"insurance_expiry":   form.InsuranceExpiry,
			"has_worker_comp":    models.YesNo(form.HasWorkerComp),
			"allow_cert_holder":  models.YesNo(form.AllowCertHolder),
		}
	case 6:
		return map[string]interface{}{
			"has_felony":              models.YesNo(form.HasFelony),
			"willing_drug_test":       models.YesNo(form.WillingDrugTest),
			"enrolled_random_testing": models.YesNo(form.EnrolledRandomTesting),
			"has_safety_violations":   models.YesNo(form.HasSafetyViolations),
			"has_legal_issues":        models.YesNo(form.HasLegalIssues),
		}
	case 7:
		return map[string]interface{}{
			"current_contract_status":            form.CurrentContractStatus,
			"using_dispatch_services":            models.YesNo(form.UsingDispatchServices),
			"using_telematics":                   models.YesNo(form.UsingTelematics),
			"interested_in_maintenance_discount": models.YesNo(form.InterestedInMaintenanceDiscount),
			"additional_comments":                form.AdditionalComments,
		}
	default:
		return nil
	}
}

// stepCarriesFiles reports whether the step's submission includes document
// uploads and therefore gets the longer timeout bound.
func stepCarriesFiles(step int, form *models.ApplicationForm) bool {
	switch step {
	case 2:
		return len(form.TruckPhotos) > 0
	case 3:
		return form.CDLUpload != nil || form.MedCardUpload != nil
	case 5:
		return form.COIUpload != nil
	case 7:
		return len(form.BusinessDocs) > 0
	default:
		return false
	}
}
