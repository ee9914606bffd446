package form

import (
	"fmt"
	"time"
)

// Contact is a general inquiry from the landing page contact form. All
// fields are required.
type Contact struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	InquiryType string `json:"inquiryType"`
}

func (c *Contact) Kind() string { return "contact" }

func (c *Contact) Missing() []string {
	return missingOf(
		field{"name", c.Name},
		field{"email", c.Email},
		field{"subject", c.Subject},
		field{"message", c.Message},
		field{"inquiryType", c.InquiryType},
	)
}

func (c *Contact) AdminNotice() AdminNotice {
	body := fmt.Sprintf(`<h2>New Contact Form Submission</h2>
<p><strong>Type:</strong> %s</p>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>
<hr>
<p><em>Sent from %s</em></p>`,
		esc(c.InquiryType), esc(c.Name), esc(c.Email), esc(c.Subject), nl2br(c.Message), sourceTag)

	return AdminNotice{
		Subject: "TingNect Contact: " + c.Subject,
		HTML:    body,
	}
}

func (c *Contact) AutoReply() AutoReply {
	body := fmt.Sprintf(`<h2>Thank you for your message!</h2>
<p>Dear %s,</p>
<p>We have received your inquiry regarding: <strong>%s</strong></p>
<p>Our team will get back to you within 24 hours.</p>
<br>
<p>Best regards,<br>TingNect Team</p>
<hr>
<p><em>This is an automated response. Please do not reply to this email.</em></p>`,
		esc(c.Name), esc(c.Subject))

	return AutoReply{
		To:      c.Email,
		Subject: "Thank you for contacting TingNect",
		HTML:    body,
	}
}

func (c *Contact) Row(submittedAt time.Time) SheetRow {
	return SheetRow{
		Sheet:  "Contact",
		Header: []string{"Timestamp", "Name", "Email", "Inquiry Type", "Subject", "Message"},
		Values: []string{timestamp(submittedAt), c.Name, c.Email, c.InquiryType, c.Subject, c.Message},
	}
}

func (c *Contact) ChatText() string {
	return fmt.Sprintf(`🔔 <b>New Contact Form Submission</b>

<b>Type:</b> %s
<b>Name:</b> %s
<b>Email:</b> %s
<b>Subject:</b> %s

<b>Message:</b>
%s

<i>From: %s</i>`,
		esc(c.InquiryType), esc(c.Name), esc(c.Email), esc(c.Subject), esc(c.Message), sourceTag)
}

func (c *Contact) SuccessMessage() string {
	return "Contact form submitted successfully"
}
