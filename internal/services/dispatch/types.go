package dispatch

import (
	"context"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// Result counts the outcome of one batch
type Result struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// Batch is one run of a campaign against its recipients
type Batch struct {
	CampaignID string
	Category   string
	LogoURL    string
	Subject    models.SubjectLine
	Recipients []models.Recipient
}

// Attachment is a file attached to an outgoing message
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a fully composed e-mail
type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Mailer transmits a composed message
type Mailer interface {
	Send(msg *Message) error
}

// ComposeRequest carries everything a composer may put in a body
type ComposeRequest struct {
	Category    string
	Subject     string
	Purpose     string
	Recipient   models.Recipient
	LogoURL     string
	TrackingURL string
}

// Composer renders the HTML body of one message
type Composer interface {
	Compose(req ComposeRequest) (string, error)
}

// SubjectSource picks the subject and purpose of a category's messages
type SubjectSource interface {
	Subject(ctx context.Context, category string) models.SubjectLine
}
