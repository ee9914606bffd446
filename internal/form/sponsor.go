package form

import (
	"fmt"
	"strings"
	"time"
)

// Sponsor is a sponsorship inquiry. Website and message are optional.
type Sponsor struct {
	CompanyName     string `json:"companyName"`
	ContactName     string `json:"contactName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Website         string `json:"website"`
	SponsorshipType string `json:"sponsorshipType"`
	Message         string `json:"message"`
}

func (s *Sponsor) Kind() string { return "sponsor" }

func (s *Sponsor) Missing() []string {
	return missingOf(
		field{"companyName", s.CompanyName},
		field{"contactName", s.ContactName},
		field{"email", s.Email},
		field{"phone", s.Phone},
		field{"sponsorshipType", s.SponsorshipType},
	)
}

func (s *Sponsor) AdminNotice() AdminNotice {
	var b strings.Builder
	fmt.Fprintf(&b, `<h2>New Sponsorship Inquiry</h2>
<p><strong>Company:</strong> %s</p>
<p><strong>Contact Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Website:</strong> %s</p>
<p><strong>Sponsorship Type:</strong> %s</p>
`,
		esc(s.CompanyName), esc(s.ContactName), esc(s.Email), esc(s.Phone),
		esc(s.websiteOrPlaceholder()), esc(s.SponsorshipType))
	if s.Message != "" {
		fmt.Fprintf(&b, "<p><strong>Message:</strong></p>\n<p>%s</p>\n", nl2br(s.Message))
	}
	fmt.Fprintf(&b, "<hr>\n<p><em>Sent from %s</em></p>", sourceTag)

	return AdminNotice{
		Subject: "TingNect Sponsorship Inquiry: " + s.SponsorshipType,
		HTML:    b.String(),
	}
}

func (s *Sponsor) websiteOrPlaceholder() string {
	if s.Website == "" {
		return "Not provided"
	}
	return s.Website
}

func (s *Sponsor) AutoReply() AutoReply {
	body := fmt.Sprintf(`<h2>Sponsorship Inquiry Received!</h2>
<p>Dear %s,</p>
<p>Thank you for your interest in sponsoring TingNect - Build for Billions!</p>
<p>We have received your inquiry for: <strong>%s</strong></p>
<p>Our partnerships team will review your inquiry and get back to you within 24 hours with detailed information about our sponsorship packages.</p>
<br>
<p>Best regards,<br>TingNect Partnerships Team</p>
<hr>
<p><em>This is an automated response. Please do not reply to this email.</em></p>`,
		esc(s.ContactName), esc(s.SponsorshipType))

	return AutoReply{
		To:      s.Email,
		Subject: "Thank you for your sponsorship inquiry",
		HTML:    body,
	}
}

func (s *Sponsor) Row(submittedAt time.Time) SheetRow {
	return SheetRow{
		Sheet: "Sponsors",
		Header: []string{
			"Timestamp", "Company Name", "Contact Name", "Email", "Phone",
			"Website", "Sponsorship Type", "Message",
		},
		Values: []string{
			timestamp(submittedAt), s.CompanyName, s.ContactName, s.Email, s.Phone,
			s.Website, s.SponsorshipType, s.Message,
		},
	}
}

func (s *Sponsor) ChatText() string {
	var b strings.Builder
	fmt.Fprintf(&b, `💰 <b>New Sponsorship Inquiry</b>

<b>Company:</b> %s
<b>Contact:</b> %s
<b>Email:</b> %s
<b>Phone:</b> %s
<b>Type:</b> %s
`,
		esc(s.CompanyName), esc(s.ContactName), esc(s.Email), esc(s.Phone), esc(s.SponsorshipType))
	if s.Website != "" {
		fmt.Fprintf(&b, "<b>Website:</b> %s\n", esc(s.Website))
	}
	if s.Message != "" {
		fmt.Fprintf(&b, "<b>Message:</b> %s\n", esc(s.Message))
	}
	fmt.Fprintf(&b, "\n<i>From: %s</i>", sourceTag)
	return b.String()
}

func (s *Sponsor) SuccessMessage() string {
	return "Sponsorship inquiry submitted successfully"
}
