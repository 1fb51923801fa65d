package mailer

import (
	"fmt"

	"sesi-membership/internal/domain/application"
)

const signature = "Best regards,\nSESI Admin Team\nShoulder & Elbow Society of India\nWebsite: https://sesi.co.in"

func receiptBody(a *application.MembershipApplication) string {
	return fmt.Sprintf(`Dear %s,

Thank you for applying for membership with the
Shoulder & Elbow Society of India (SESI).

Your application has been received and is now awaiting review.

Application ID: %s
Application Date: %s

You will receive a confirmation email once our team has reviewed it.

%s
`, a.FullName, a.ID, a.SubmittedAt.Format("January 02, 2006"), signature)
}

func adminNoticeBody(a *application.MembershipApplication, siteURL string) string {
	return fmt.Sprintf(`New membership application received:

Application ID: %s
Name: %s
Email: %s
Mobile: %s
Membership Type: %s
Region: %s

Review it in the admin panel:
%s/admin/applications/%s

SESI System
`, a.ID, a.FullName, a.Email, a.Mobile, a.MembershipType, a.RegionMembership, siteURL, a.ID)
}

func approvalBody(a *application.MembershipApplication) string {
	return fmt.Sprintf(`Dear %s,

Congratulations! Your application for membership with the
Shoulder & Elbow Society of India has been approved.

Membership Number: %s
Membership Type: %s

Your membership certificate is attached to this email.

%s
`, a.FullName, a.Number(), a.MembershipType, signature)
}
