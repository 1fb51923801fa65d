package mysql

import (
	"testing"
	"time"

	appDomain "sesi-membership/internal/domain/application"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with every table migrated.
// A single connection keeps all statements on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeApplication(id, regNo string, status appDomain.Status, submitted time.Time) *appDomain.MembershipApplication {
	return &appDomain.MembershipApplication{
		ID:                  id,
		RegionMembership:    appDomain.RegionNational,
		MembershipType:      appDomain.MembershipTypeLife,
		Title:               "Dr.",
		FirstName:           "Asha",
		LastName:            "Rao",
		FullName:            "Dr. Asha Rao",
		Gender:              "Female",
		Mobile:              "9876543210",
		Email:               id + "@example.com",
		MedicalCouncilRegNo: regNo,
		Qualification:       "MS Ortho",
		YearsExperience:     8,
		CommAddress: appDomain.Address{
			Line: "12 MG Road", Country: appDomain.CountryIndia,
			StateID: "MH", StateName: "Maharashtra", DistrictID: "MH-PUN", DistrictName: "Pune", Pincode: "411001",
		},
		WorkAddress: appDomain.Address{
			Line: "City Hospital", Country: appDomain.CountryIndia,
			StateID: "MH", StateName: "Maharashtra", DistrictID: "MH-MUM", DistrictName: "Mumbai", Pincode: "400001",
		},
		WorkHospital: "City Hospital",
		Documents: []appDomain.Document{
			{Type: appDomain.DocMBBSCertificate, Path: "/uploads/membership_applications/" + id + "/a.pdf"},
		},
		Status:      status,
		SubmittedAt: submitted.UTC(),
	}
}
