package models

import "strings"

// Recipient is one row of an uploaded recipient list
type Recipient struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Department string `json:"department"`
}

// UserID is the local part of the e-mail address. Click events are keyed by it.
func (r Recipient) UserID() string {
	local, _, _ := strings.Cut(r.Email, "@")
	return local
}

// ClickReportEntry is the click status of one recipient
type ClickReportEntry struct {
	Email     string `json:"email"`
	Clicked   bool   `json:"clicked"`
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip"`
}

// ClickReport is the live click-through report of a campaign
type ClickReport struct {
	CampaignID string             `json:"campaign_id"`
	Total      int                `json:"total"`
	Clicked    int                `json:"clicked"`
	Entries    []ClickReportEntry `json:"entries"`
}

// DemoRequest asks for the two canned demo messages
type DemoRequest struct {
	Email1 string `json:"email1" validate:"required,email"`
	Email2 string `json:"email2" validate:"required,email"`
}

// SubjectLine is the subject and stated purpose shared by one batch of messages
type SubjectLine struct {
	Subject string `json:"subject"`
	Purpose string `json:"purpose"`
}
