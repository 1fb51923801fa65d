package client

import (
	"io"
	"time"
)

type User struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type State struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type District struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StateID string `json:"state_id"`
}

type Address struct {
	Line         string `json:"address"`
	Country      string `json:"country"`
	StateID      string `json:"state_id"`
	StateName    string `json:"state_name"`
	DistrictID   string `json:"district_id"`
	DistrictName string `json:"district_name"`
	Pincode      string `json:"pincode"`
}

type Document struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// Application is the full record as administrators see it.
type Application struct {
	ID               string `json:"id"`
	RegionMembership string `json:"region_membership"`
	MembershipType   string `json:"membership_type"`

	Title      string `json:"title"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	Gender     string `json:"gender"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`

	MedicalCouncilRegNo string `json:"medical_council_reg_no"`
	Qualification       string `json:"qualification"`
	YearsExperience     int    `json:"years_experience"`
	CurrentAppointments string `json:"current_appointments"`
	SpecialisedPractice string `json:"specialised_practice"`
	ProposalName1       string `json:"proposal_name_1"`
	ProposalName2       string `json:"proposal_name_2"`

	CommAddress  Address `json:"communication_address"`
	WorkAddress  Address `json:"work_address"`
	WorkHospital string  `json:"work_hospital,omitempty"`

	Documents []Document `json:"documents"`

	Status           string     `json:"status"`
	AdminNotes       *string    `json:"admin_notes"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy       string     `json:"reviewed_by,omitempty"`
	MembershipNumber string     `json:"membership_number,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	CertificatePath  string     `json:"certificate_path,omitempty"`
}

// Notes returns the admin notes or "".
func (a *Application) Notes() string {
	if a.AdminNotes == nil {
		return ""
	}
	return *a.AdminNotes
}

type StatusChange struct {
	ApplicationID string    `json:"application_id"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	ChangedBy     string    `json:"changed_by"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ApplicationDetail struct {
	Application
	History []StatusChange `json:"history"`
}

// PublicApplication is what the applicant can look up by id.
type PublicApplication struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Receipt struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ApplicationID string `json:"application_id"`
	Email         string `json:"email"`
}

type UpdateResult struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message"`
	Application      *Application `json:"application"`
	MembershipNumber string       `json:"membership_number,omitempty"`
	CertificatePath  string       `json:"certificate_path,omitempty"`
	MemberID         string       `json:"member_id,omitempty"`
}

type Member struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email,omitempty"`
	Mobile           string    `json:"mobile,omitempty"`
	Qualification    string    `json:"qualification"`
	Specialization   string    `json:"specialization"`
	Hospital         string    `json:"hospital"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	MembershipType   string    `json:"membership_type"`
	MembershipNumber string    `json:"membership_number"`
	JoinedDate       time.Time `json:"joined_date"`
	Status           string    `json:"status,omitempty"`
	CertificatePath  string    `json:"certificate_path,omitempty"`
	YearsExperience  int       `json:"years_experience"`
}

type DirectoryQuery struct {
	State  string
	City   string
	Search string
}

type Stats struct {
	TotalMembers        int64            `json:"total_members"`
	ActiveMembers       int64            `json:"active_members"`
	TotalApplications   int64            `json:"total_applications"`
	PendingApplications int64            `json:"pending_applications"`
	ByStatus            map[string]int64 `json:"applications_by_status"`
}

// File is one document attached to an application.
type File struct {
	Field  string
	Name   string
	Reader io.Reader
}

// ApplyRequest is the multipart intake submission. IdempotencyKey is sent
// as the Idempotency-Key header when set.
type ApplyRequest struct {
	Fields         map[string]string
	Files          []File
	IdempotencyKey string
}
