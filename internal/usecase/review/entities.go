package review

import "sesi-membership/internal/domain/application"

// Detail is an application with its review history, oldest first.
type Detail struct {
	*application.MembershipApplication
	History []application.StatusChange `json:"history"`
}

type UpdateStatusInput struct {
	ID     string
	Status string
	// Notes replaces admin_notes when non-nil; nil keeps the stored notes.
	Notes    *string
	Reviewer string
}

type UpdateResult struct {
	Success          bool                               `json:"success"`
	Message          string                             `json:"message"`
	Application      *application.MembershipApplication `json:"application"`
	MembershipNumber string                             `json:"membership_number,omitempty"`
	CertificatePath  string                             `json:"certificate_path,omitempty"`
	MemberID         string                             `json:"member_id,omitempty"`
}
