// Package intake drives the membership application form in the console.
package intake

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"sesi-membership/internal/domain/application"

	"github.com/go-playground/validator/v10"
)

type Address struct {
	Line       string `yaml:"address"     validate:"required"`
	StateID    string `yaml:"state_id"    validate:"required"`
	DistrictID string `yaml:"district_id" validate:"required"`
	Pincode    string `yaml:"pincode"     validate:"required,pincode6"`
}

// Form holds everything the applicant enters. Files maps a document type
// (for example "mbbs_certificate") to a local file path.
type Form struct {
	RegionMembership string `yaml:"region_membership" validate:"required,oneof=National International"`
	Title            string `yaml:"title"             validate:"required"`
	FirstName        string `yaml:"first_name"        validate:"required"`
	MiddleName       string `yaml:"middle_name"`
	LastName         string `yaml:"last_name"         validate:"required"`
	Gender           string `yaml:"gender"            validate:"required,oneof=Male Female Other"`
	Mobile           string `yaml:"mobile"            validate:"required,mobile10"`
	Email            string `yaml:"email"             validate:"required,email"`

	MedicalCouncilRegNo string `yaml:"medical_council_reg_no" validate:"required"`
	Qualification       string `yaml:"qualification"          validate:"required"`
	YearsExperience     int    `yaml:"years_experience"       validate:"gte=0"`
	CurrentAppointments string `yaml:"current_appointments"   validate:"required"`
	SpecialisedPractice string `yaml:"specialised_practice"   validate:"required"`
	ProposalName1       string `yaml:"proposal_name_1"        validate:"required"`
	ProposalName2       string `yaml:"proposal_name_2"        validate:"required"`

	CommAddress  Address `yaml:"communication_address"`
	WorkAddress  Address `yaml:"work_address"`
	WorkHospital string  `yaml:"work_hospital"`

	Files map[string]string `yaml:"files"`
}

// FieldError names one invalid field by its form name.
type FieldError struct {
	Field   string
	Message string
}

type ValidationError []FieldError

func (v ValidationError) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + " " + fe.Message
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (v ValidationError) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

var (
	mobileRe  = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
		return mobileRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pincode6", func(fl validator.FieldLevel) bool {
		return pincodeRe.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks the form locally so no request is sent for input the
// server would refuse.
func (f *Form) Validate() error {
	var out ValidationError
	if err := validate.Struct(f); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return err
		}
		for _, fe := range ves {
			out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
		}
	}
	for _, t := range application.RequiredDocuments {
		if strings.TrimSpace(f.Files[string(t)]) == "" {
			out = append(out, FieldError{Field: string(t), Message: "is required"})
		}
	}
	if len(out) > 0 {
		return out
	}
	return nil
}

// fieldPath turns Form.work_address.pincode into work_address.pincode.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "mobile10":
		return "must be exactly 10 digits"
	case "pincode6":
		return "must be exactly 6 digits"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	}
	return "is invalid"
}

// fields renders the scalar part of the multipart request.
func (f *Form) fields() map[string]string {
	return map[string]string{
		"region_membership":      f.RegionMembership,
		"membership_type":        application.MembershipTypeLife,
		"title":                  f.Title,
		"first_name":             f.FirstName,
		"middle_name":            f.MiddleName,
		"last_name":              f.LastName,
		"gender":                 f.Gender,
		"mobile":                 f.Mobile,
		"email":                  f.Email,
		"medical_council_reg_no": f.MedicalCouncilRegNo,
		"qualification":          f.Qualification,
		"years_experience":       strconv.Itoa(f.YearsExperience),
		"current_appointments":   f.CurrentAppointments,
		"specialised_practice":   f.SpecialisedPractice,
		"proposal_name_1":        f.ProposalName1,
		"proposal_name_2":        f.ProposalName2,
		"comm_address":           f.CommAddress.Line,
		"comm_state_id":          f.CommAddress.StateID,
		"comm_district_id":       f.CommAddress.DistrictID,
		"comm_pincode":           f.CommAddress.Pincode,
		"work_address":           f.WorkAddress.Line,
		"work_state_id":          f.WorkAddress.StateID,
		"work_district_id":       f.WorkAddress.DistrictID,
		"work_pincode":           f.WorkAddress.Pincode,
		"work_hospital":          f.WorkHospital,
	}
}
