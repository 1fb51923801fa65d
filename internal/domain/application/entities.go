package application

import (
	"strings"
	"time"
)

const (
	RegionNational      = "National"
	RegionInternational = "International"

	MembershipTypeLife = "Life Member"

	CountryIndia = "India"
)

type DocumentType string

const (
	DocAadhar                DocumentType = "aadhar"
	DocMBBSCertificate       DocumentType = "mbbs_certificate"
	DocOrthopedicCertificate DocumentType = "orthopedic_certificate"
	DocSpecialisationCert    DocumentType = "specialisation_certificate"
	DocStateRegistrationCert DocumentType = "state_registration_certificate"
)

// RequiredDocuments and OptionalDocuments are in storage order.
var (
	RequiredDocuments = []DocumentType{DocMBBSCertificate, DocOrthopedicCertificate, DocStateRegistrationCert}
	OptionalDocuments = []DocumentType{DocAadhar, DocSpecialisationCert}
)

func (d DocumentType) Required() bool {
	for _, r := range RequiredDocuments {
		if r == d {
			return true
		}
	}
	return false
}

type Document struct {
	Type DocumentType `json:"type"`
	Path string       `json:"path"`
}

// Address is stored inline on the application with a column prefix.
type Address struct {
	Line         string `gorm:"column:address;type:text" json:"address"`
	Country      string `gorm:"column:country;size:64" json:"country"`
	StateID      string `gorm:"column:state_id;size:64" json:"state_id"`
	StateName    string `gorm:"column:state_name;size:128" json:"state_name"`
	DistrictID   string `gorm:"column:district_id;size:64" json:"district_id"`
	DistrictName string `gorm:"column:district_name;size:128" json:"district_name"`
	Pincode      string `gorm:"column:pincode;size:6" json:"pincode"`
}

// Table: membership_applications
type MembershipApplication struct {
	ID string `gorm:"column:id;primaryKey;size:36" json:"id"`

	RegionMembership string `gorm:"column:region_membership;size:32;not null" json:"region_membership"`
	MembershipType   string `gorm:"column:membership_type;size:64;not null" json:"membership_type"`

	Title      string `gorm:"column:title;size:16" json:"title"`
	FirstName  string `gorm:"column:first_name;size:128;not null" json:"first_name"`
	MiddleName string `gorm:"column:middle_name;size:128" json:"middle_name,omitempty"`
	LastName   string `gorm:"column:last_name;size:128;not null" json:"last_name"`
	FullName   string `gorm:"column:full_name;size:400;not null" json:"full_name"`
	Gender     string `gorm:"column:gender;size:16" json:"gender"`
	Mobile     string `gorm:"column:mobile;size:10;not null" json:"mobile"`
	Email      string `gorm:"column:email;size:255;not null;index" json:"email"`

	MedicalCouncilRegNo string `gorm:"column:medical_council_reg_no;size:64;not null;index" json:"medical_council_reg_no"`
	Qualification       string `gorm:"column:qualification;size:255" json:"qualification"`
	YearsExperience     int    `gorm:"column:years_experience" json:"years_experience"`
	CurrentAppointments string `gorm:"column:current_appointments;type:text" json:"current_appointments"`
	SpecialisedPractice string `gorm:"column:specialised_practice;type:text" json:"specialised_practice"`
	ProposalName1       string `gorm:"column:proposal_name_1;size:255" json:"proposal_name_1"`
	ProposalName2       string `gorm:"column:proposal_name_2;size:255" json:"proposal_name_2"`

	CommAddress  Address `gorm:"embedded;embeddedPrefix:comm_" json:"communication_address"`
	WorkAddress  Address `gorm:"embedded;embeddedPrefix:work_" json:"work_address"`
	WorkHospital string  `gorm:"column:work_hospital;size:255" json:"work_hospital,omitempty"`

	Documents []Document `gorm:"column:documents;type:text;serializer:json" json:"documents"`

	Status           Status     `gorm:"column:status;size:16;not null;index;default:'submitted'" json:"status"`
	AdminNotes       *string    `gorm:"column:admin_notes;type:text" json:"admin_notes"`
	SubmittedAt      time.Time  `gorm:"column:submitted_at;not null;index" json:"submitted_at"`
	ReviewedAt       *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy       string     `gorm:"column:reviewed_by;size:255" json:"reviewed_by,omitempty"`
	MembershipNumber *string    `gorm:"column:membership_number;size:32;uniqueIndex" json:"membership_number,omitempty"`
	ApprovedAt       *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CertificatePath  string     `gorm:"column:certificate_path;size:512" json:"certificate_path,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (MembershipApplication) TableName() string { return "membership_applications" }

// ComposeFullName joins title, first, optional middle and last names.
func ComposeFullName(title, first, middle, last string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{title, first, middle, last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Document returns the stored path for a document type.
func (a *MembershipApplication) Document(t DocumentType) (string, bool) {
	for _, d := range a.Documents {
		if d.Type == t {
			return d.Path, true
		}
	}
	return "", false
}

// Number returns the membership number or "" when not approved.
func (a *MembershipApplication) Number() string {
	if a.MembershipNumber == nil {
		return ""
	}
	return *a.MembershipNumber
}

// StatusChange is one row of an application's review history.
type StatusChange struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID string    `gorm:"column:application_id;size:36;not null;index" json:"application_id"`
	FromStatus    Status    `gorm:"column:from_status;size:16;not null" json:"from_status"`
	ToStatus      Status    `gorm:"column:to_status;size:16;not null" json:"to_status"`
	ChangedBy     string    `gorm:"column:changed_by;size:255;not null" json:"changed_by"`
	Notes         *string   `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StatusChange) TableName() string { return "application_status_changes" }
