package report

import (
	"fmt"
	"strings"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

const draftSubject = "Interest in 3D In-Vitro Models for Drug Safety Research"

const draftBody = `Dear %s,

I hope this email finds you well. My name is %s, and I'm reaching out from %s, where we specialize in advanced 3D in-vitro models for drug safety and toxicology research.

Given your expertise in %s at %s, I believe our solutions could greatly enhance your work on hepatic models and investigative toxicology.

Would you be interested in learning more about how our technology can support your research?

Best regards,
%s
%s
%s
%s`

// Sender identifies who an outreach draft is from.
type Sender struct {
	Name    string
	Title   string
	Company string
	Contact string
}

// Draft is a rendered outreach email.
type Draft struct {
	Subject string
	Body    string
}

// DraftEmail renders the outreach template for one lead. Unknown
// sentinel values read as generic phrases instead of leaking into the
// message.
func DraftEmail(lead model.ScoredLead, sender Sender) Draft {
	expertise := lead.Title
	if expertise == model.Unknown {
		expertise = "research"
	}
	employer := lead.Company
	if employer == model.Unknown {
		employer = "your institution"
	}

	body := fmt.Sprintf(draftBody,
		lead.Name,
		sender.Name, sender.Company,
		expertise, employer,
		sender.Name, sender.Title, sender.Contact, sender.Company)
	return Draft{Subject: draftSubject, Body: body}
}

// Mailto builds a mailto link carrying the draft, suitable for opening
// in an email client.
func Mailto(email string, d Draft) string {
	enc := strings.NewReplacer("\n", "%0A", " ", "%20")
	return "mailto:" + email + "?subject=" + enc.Replace(d.Subject) + "&body=" + enc.Replace(d.Body)
}
