package repository

import "errors"

var (
	// ErrCampaignNotFound is returned when a campaign id matches no row
	ErrCampaignNotFound = errors.New("campaign not found")
)
