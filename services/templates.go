package services

import (
	"fmt"
	"html"
)

// EmailTemplate is a rendered subject/body pair ready to send.
type EmailTemplate struct {
	Subject string
	HTML    string
}

// EmailTemplates builds the transactional templates. WebsiteURL feeds the
// call-to-action links.
type EmailTemplates struct {
	WebsiteURL string
}

const templateFooter = `<hr style="border: none; border-top: 1px solid #2a4a6f; margin: 20px 0;">
<p style="text-align: center; color: rgba(255,255,255,0.5); font-size: 12px;">UCSC Penpals - Connect with fellow Banana Slugs, one letter at a time!</p>`

func (t EmailTemplates) wrap(body string) string {
	return fmt.Sprintf(`<div style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; max-width: 500px; margin: 0 auto; padding: 30px; background: #0a1929; color: #ffffff; border-radius: 8px;">%s%s</div>`, body, templateFooter)
}

func (t EmailTemplates) button(label string) string {
	return fmt.Sprintf(`<div style="text-align: center; margin: 25px 0;"><a href="%s" style="display: inline-block; padding: 14px 28px; background: #1565c0; color: white; text-decoration: none; border-radius: 4px; font-weight: 500;">%s</a></div>`, t.WebsiteURL, label)
}

// Verification carries the one-time code.
func (t EmailTemplates) Verification(code string) EmailTemplate {
	body := fmt.Sprintf(`<h1 style="color: #ffd54f; text-align: center;">Your Verification Code</h1>
<p style="text-align: center;">Enter this code to verify your UCSC email:</p>
<div style="background: #1a2332; padding: 20px; text-align: center; margin: 20px 0; border-radius: 4px;">
<span style="font-size: 36px; font-family: monospace; letter-spacing: 8px; color: #ffd54f;">%s</span>
</div>
<p style="text-align: center; font-size: 14px;">This code expires in 15 minutes.</p>`, html.EscapeString(code))
	return EmailTemplate{
		Subject: "Your Verification Code - UCSC Penpals",
		HTML:    t.wrap(body),
	}
}

// MatchNotification tells a user they were paired, quoting the partner's
// introduction verbatim.
func (t EmailTemplates) MatchNotification(partnerIntro string) EmailTemplate {
	body := fmt.Sprintf(`<h1 style="color: #ffd54f; text-align: center;">You've Been Matched!</h1>
<p style="text-align: center;">Great news! You've been paired with a fellow Banana Slug.</p>
<div style="background: #1a2332; padding: 20px; margin: 20px 0; border-radius: 4px;">
<p style="color: #ffd54f; font-size: 14px;">Your Penpal's Introduction:</p>
<p style="font-style: italic;">"%s"</p>
</div>
%s
<p style="text-align: center; font-size: 14px;">Remember: Messages take 12 hours to deliver, just like real letters!</p>`,
		html.EscapeString(partnerIntro), t.button("Write Your First Letter"))
	return EmailTemplate{
		Subject: "You've Been Matched! - UCSC Penpals",
		HTML:    t.wrap(body),
	}
}

// MessageDelivered announces that a letter is ready to read. It carries no
// message content.
func (t EmailTemplates) MessageDelivered() EmailTemplate {
	body := fmt.Sprintf(`<h1 style="color: #ffd54f; text-align: center;">You Have a New Letter!</h1>
<p style="text-align: center;">Your penpal's message has arrived and is ready to read!</p>
%s`, t.button("Read Your Letter"))
	return EmailTemplate{
		Subject: "You Have a New Letter! - UCSC Penpals",
		HTML:    t.wrap(body),
	}
}

// AdminNewSignup alerts the admin that a user submitted an introduction and
// is waiting to be matched.
func (t EmailTemplates) AdminNewSignup(email, intro string) EmailTemplate {
	body := fmt.Sprintf(`<h1 style="color: #ffd54f; text-align: center;">New User Waiting for Match</h1>
<div style="background: #1a2332; padding: 20px; margin: 20px 0; border-radius: 4px;">
<p style="color: #2196f3; font-size: 14px;">Email:</p>
<p>%s</p>
<p style="color: #ffd54f; font-size: 14px;">Introduction:</p>
<p style="font-style: italic;">"%s"</p>
</div>
%s`, html.EscapeString(email), html.EscapeString(intro), t.button("Go to Admin Panel"))
	return EmailTemplate{
		Subject: "New User Signup - UCSC Penpals",
		HTML:    t.wrap(body),
	}
}
