package http

import (
	"errors"
	"io"
	"net/http"

	"sesi-membership/internal/domain/application"
	"sesi-membership/internal/usecase/intake"

	"github.com/labstack/echo/v4"
)

// maxMultipartMemory is how much of a form is buffered before spilling to disk.
const maxMultipartMemory = 32 << 20

type MembershipHandler struct{ uc *intake.Usecase }

func NewMembershipHandler(uc *intake.Usecase) *MembershipHandler { return &MembershipHandler{uc: uc} }

type applyReq struct {
	RegionMembership string `form:"region_membership" validate:"required,oneof=National International"`
	MembershipType   string `form:"membership_type"`

	Title      string `form:"title"       validate:"required,max=16"`
	FirstName  string `form:"first_name"  validate:"required,max=128"`
	MiddleName string `form:"middle_name" validate:"max=128"`
	LastName   string `form:"last_name"   validate:"required,max=128"`
	Mobile     string `form:"mobile"      validate:"required,mobile10"`
	Email      string `form:"email"       validate:"required,email"`
	Gender     string `form:"gender"      validate:"required,oneof=Male Female Other"`

	MedicalCouncilRegNo string `form:"medical_council_reg_no" validate:"required,max=64"`
	Qualification       string `form:"qualification"          validate:"required"`
	CurrentAppointments string `form:"current_appointments"   validate:"required"`
	SpecialisedPractice string `form:"specialised_practice"   validate:"required"`
	YearsExperience     int    `form:"years_experience"       validate:"gte=0,lte=80"`
	ProposalName1       string `form:"proposal_name_1"        validate:"required"`
	ProposalName2       string `form:"proposal_name_2"        validate:"required"`

	CommAddress    string `form:"comm_address"     validate:"required"`
	CommStateID    string `form:"comm_state_id"    validate:"required"`
	CommDistrictID string `form:"comm_district_id" validate:"required"`
	CommPincode    string `form:"comm_pincode"     validate:"required,pincode6"`

	WorkAddress    string `form:"work_address"     validate:"required"`
	WorkStateID    string `form:"work_state_id"    validate:"required"`
	WorkDistrictID string `form:"work_district_id" validate:"required"`
	WorkPincode    string `form:"work_pincode"     validate:"required,pincode6"`
	WorkHospital   string `form:"work_hospital"`
}

func (r applyReq) toInput() intake.SubmitInput {
	return intake.SubmitInput{
		RegionMembership:    r.RegionMembership,
		Title:               r.Title,
		FirstName:           r.FirstName,
		MiddleName:          r.MiddleName,
		LastName:            r.LastName,
		Gender:              r.Gender,
		Mobile:              r.Mobile,
		Email:               r.Email,
		MedicalCouncilRegNo: r.MedicalCouncilRegNo,
		Qualification:       r.Qualification,
		YearsExperience:     r.YearsExperience,
		CurrentAppointments: r.CurrentAppointments,
		SpecialisedPractice: r.SpecialisedPractice,
		ProposalName1:       r.ProposalName1,
		ProposalName2:       r.ProposalName2,
		CommAddress:         intake.AddressInput{Line: r.CommAddress, StateID: r.CommStateID, DistrictID: r.CommDistrictID, Pincode: r.CommPincode},
		WorkAddress:         intake.AddressInput{Line: r.WorkAddress, StateID: r.WorkStateID, DistrictID: r.WorkDistrictID, Pincode: r.WorkPincode},
		WorkHospital:        r.WorkHospital,
	}
}

// Apply accepts the multipart intake form.
func (h *MembershipHandler) Apply(c echo.Context) error {
	if err := c.Request().ParseMultipartForm(maxMultipartMemory); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart/form-data body"})
	}
	var req applyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	in := req.toInput()
	docs := append(append([]application.DocumentType{}, application.RequiredDocuments...), application.OptionalDocuments...)
	for _, t := range docs {
		fh, err := c.FormFile(string(t))
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file field " + string(t)})
		}
		in.Files = append(in.Files, intake.Upload{
			Type:     t,
			FileName: fh.Filename,
			Size:     fh.Size,
			Open:     func() (io.ReadCloser, error) { return fh.Open() },
		})
	}

	receipt, err := h.uc.Submit(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *MembershipHandler) GetApplication(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return missingParam(c, "id")
	}
	v, err := h.uc.GetPublic(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}
