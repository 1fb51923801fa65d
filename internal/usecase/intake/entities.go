package intake

import (
	"io"
	"time"

	"sesi-membership/internal/domain/application"
)

type AddressInput struct {
	Line       string
	StateID    string
	DistrictID string
	Pincode    string
}

// Upload is one applicant document as received from the transport.
type Upload struct {
	Type     application.DocumentType
	FileName string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type SubmitInput struct {
	RegionMembership string

	Title      string
	FirstName  string
	MiddleName string
	LastName   string
	Gender     string
	Mobile     string
	Email      string

	MedicalCouncilRegNo string
	Qualification       string
	YearsExperience     int
	CurrentAppointments string
	SpecialisedPractice string
	ProposalName1       string
	ProposalName2       string

	CommAddress  AddressInput
	WorkAddress  AddressInput
	WorkHospital string

	Files []Upload
}

type Receipt struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ApplicationID string `json:"application_id"`
	Email         string `json:"email"`
}

// PublicView is what an applicant may see about their own application.
type PublicView struct {
	ID          string             `json:"id"`
	FullName    string             `json:"full_name"`
	Email       string             `json:"email"`
	Status      application.Status `json:"status"`
	SubmittedAt time.Time          `json:"submitted_at"`
}
