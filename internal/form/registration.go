package form

import (
	"fmt"
	"strings"
	"time"
)

// Registration is an application to join the event as a speaker, sponsor, or
// media partner. The landing page offers all three through one modal form.
type Registration struct {
	FullName          string   `json:"fullName"`
	Company           string   `json:"company"`
	JobTitle          string   `json:"jobTitle"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Website           string   `json:"website"`
	ParticipationType []string `json:"participationType"`
}

func (r *Registration) Kind() string { return "registration" }

func (r *Registration) Missing() []string {
	missing := missingOf(
		field{"fullName", r.FullName},
		field{"company", r.Company},
		field{"jobTitle", r.JobTitle},
		field{"email", r.Email},
		field{"phone", r.Phone},
	)
	if len(r.ParticipationType) == 0 {
		missing = append(missing, "participationType")
	}
	return missing
}

func (r *Registration) participation() string {
	return strings.Join(r.ParticipationType, ", ")
}

func (r *Registration) AdminNotice() AdminNotice {
	var b strings.Builder
	fmt.Fprintf(&b, `<h2>New Event Registration</h2>
<p><strong>Participation:</strong> %s</p>
<p><strong>Full Name:</strong> %s</p>
<p><strong>Company:</strong> %s</p>
<p><strong>Job Title:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
`,
		esc(r.participation()), esc(r.FullName), esc(r.Company), esc(r.JobTitle),
		esc(r.Email), esc(r.Phone))
	if r.Website != "" {
		fmt.Fprintf(&b, "<p><strong>Website:</strong> %s</p>\n", esc(r.Website))
	}
	fmt.Fprintf(&b, "<hr>\n<p><em>Sent from %s</em></p>", sourceTag)

	return AdminNotice{
		Subject: "TingNect Registration: " + r.participation(),
		HTML:    b.String(),
	}
}

func (r *Registration) AutoReply() AutoReply {
	body := fmt.Sprintf(`<h2>Registration Received!</h2>
<p>Dear %s,</p>
<p>Thank you for applying to take part in TingNect - Build for Billions as: <strong>%s</strong></p>
<p>Our team will review your application and get back to you within 24 hours.</p>
<br>
<p>Best regards,<br>TingNect Team</p>
<hr>
<p><em>This is an automated response. Please do not reply to this email.</em></p>`,
		esc(r.FullName), esc(r.participation()))

	return AutoReply{
		To:      r.Email,
		Subject: "Thank you for registering for TingNect",
		HTML:    body,
	}
}

func (r *Registration) Row(submittedAt time.Time) SheetRow {
	return SheetRow{
		Sheet: "Registrations",
		Header: []string{
			"Timestamp", "Full Name", "Company", "Job Title", "Email", "Phone",
			"Website", "Participation",
		},
		Values: []string{
			timestamp(submittedAt), r.FullName, r.Company, r.JobTitle, r.Email,
			r.Phone, r.Website, r.participation(),
		},
	}
}

func (r *Registration) ChatText() string {
	var b strings.Builder
	fmt.Fprintf(&b, `🎟 <b>New Event Registration</b>

<b>Participation:</b> %s
<b>Name:</b> %s
<b>Company:</b> %s
<b>Job Title:</b> %s
<b>Email:</b> %s
<b>Phone:</b> %s
`,
		esc(r.participation()), esc(r.FullName), esc(r.Company), esc(r.JobTitle),
		esc(r.Email), esc(r.Phone))
	if r.Website != "" {
		fmt.Fprintf(&b, "<b>Website:</b> %s\n", esc(r.Website))
	}
	fmt.Fprintf(&b, "\n<i>From: %s</i>", sourceTag)
	return b.String()
}

func (r *Registration) SuccessMessage() string {
	return "Registration submitted successfully"
}
