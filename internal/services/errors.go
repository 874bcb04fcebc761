package services

import "errors"

var (
	ErrAlreadyRun        = errors.New("this one-time campaign has already been run")
	ErrRunInProgress     = errors.New("a run of this campaign is already in progress")
	ErrUnsupportedFile   = errors.New("unsupported file type")
	ErrRecipientsMissing = errors.New("recipient file is required")
	ErrReportUnavailable = errors.New("click report is unavailable")
	ErrSentEmailNotFound = errors.New("no sent e-mail archived for this recipient")
)
