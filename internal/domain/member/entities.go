package member

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("member not found")

const StatusActive = "active"

// Table: members
type Member struct {
	ID                  string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	FullName            string    `gorm:"column:full_name;size:400;not null;index" json:"full_name"`
	Email               string    `gorm:"column:email;size:255;not null" json:"email"`
	Mobile              string    `gorm:"column:mobile;size:10" json:"mobile"`
	Qualification       string    `gorm:"column:qualification;size:255" json:"qualification"`
	Specialization      string    `gorm:"column:specialization;type:text" json:"specialization"`
	Hospital            string    `gorm:"column:hospital;size:255" json:"hospital"`
	City                string    `gorm:"column:city;size:128;index" json:"city"`
	State               string    `gorm:"column:state;size:128;index" json:"state"`
	MembershipType      string    `gorm:"column:membership_type;size:64" json:"membership_type"`
	MembershipNumber    string    `gorm:"column:membership_number;size:32;not null;uniqueIndex" json:"membership_number"`
	JoinedDate          time.Time `gorm:"column:joined_date;not null" json:"joined_date"`
	Status              string    `gorm:"column:status;size:16;not null;index" json:"status"`
	CertificatePath     string    `gorm:"column:certificate_path;size:512" json:"certificate_path,omitempty"`
	ApplicationID       string    `gorm:"column:application_id;size:36;uniqueIndex" json:"application_id"`
	YearsExperience     int       `gorm:"column:years_experience" json:"years_experience"`
	MedicalCouncilRegNo string    `gorm:"column:medical_council_reg_no;size:64" json:"medical_council_reg_no"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Member) TableName() string { return "members" }
