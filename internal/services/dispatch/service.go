package dispatch

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// DefaultWorkers bounds the number of concurrent SMTP sessions of one batch
const DefaultWorkers = 5

// Service composes and sends campaign batches
type Service struct {
	mailer      Mailer
	composer    Composer
	subjects    SubjectSource
	archive     *Archive
	trackingURL string
	workers     int
}

// Config holds dispatch configuration
type Config struct {
	TrackingBaseURL string
	Workers         int
}

func NewService(mailer Mailer, composer Composer, subjects SubjectSource, archive *Archive, cfg Config) *Service {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Service{
		mailer:      mailer,
		composer:    composer,
		subjects:    subjects,
		archive:     archive,
		trackingURL: cfg.TrackingBaseURL,
		workers:     workers,
	}
}

// DispatchCampaign loads the campaign's recipients and sends one batch.
// It fails only when the recipient list cannot be read.
func (s *Service) DispatchCampaign(ctx context.Context, c *models.Campaign) (Result, error) {
	recipients, err := LoadRecipients(c.RecipientFile)
	if err != nil {
		return Result{}, err
	}
	if len(recipients) == 0 {
		logrus.WithField("campaign_id", c.ID).Warn("Recipient list has no valid rows")
		return Result{}, nil
	}

	batch := Batch{
		CampaignID: c.ID,
		Category:   c.Category,
		LogoURL:    c.LogoURL,
		Subject:    s.subjects.Subject(ctx, c.Category),
		Recipients: recipients,
	}
	return s.SendBatch(ctx, batch), nil
}

// SendBatch sends to every recipient with bounded parallelism. A failed
// recipient is counted and never stops the rest of the batch.
func (s *Service) SendBatch(ctx context.Context, batch Batch) Result {
	outcomes := make([]error, len(batch.Recipients))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, r := range batch.Recipients {
		g.Go(func() error {
			outcomes[i] = s.sendOne(batch, r)
			return nil
		})
	}
	_ = g.Wait()

	var res Result
	for i, err := range outcomes {
		email := batch.Recipients[i].Email
		if err != nil {
			logrus.WithField("campaign_id", batch.CampaignID).Errorf("Failed to send email to %s: %v", email, err)
			res.Failed++
			continue
		}
		res.Success++
	}
	return res
}

func (s *Service) sendOne(batch Batch, r models.Recipient) error {
	trackingURL := TrackingURL(s.trackingURL, r.UserID())

	body, err := s.composer.Compose(ComposeRequest{
		Category:    batch.Category,
		Subject:     batch.Subject.Subject,
		Purpose:     batch.Subject.Purpose,
		Recipient:   r,
		LogoURL:     batch.LogoURL,
		TrackingURL: trackingURL,
	})
	if err != nil {
		return err
	}

	if s.archive != nil {
		if err := s.archive.Save(batch.CampaignID, r.Email, body); err != nil {
			return fmt.Errorf("failed to archive body: %w", err)
		}
	}

	return s.mailer.Send(&Message{
		To:          r.Email,
		Subject:     batch.Subject.Subject,
		HTMLBody:    body,
		Attachments: []Attachment{TrackingAttachment(trackingURL)},
	})
}

var demoMessages = []Message{
	{Subject: "Demo Subject 1", HTMLBody: "<html><body><h1>Demo Email 1</h1></body></html>"},
	{Subject: "Demo Subject 2", HTMLBody: "<html><body><h1>Demo Email 2</h1></body></html>"},
}

// SendDemo sends the two demo messages, in random order, to two addresses
func (s *Service) SendDemo(first, second string) error {
	order := rand.Perm(len(demoMessages))
	for i, to := range []string{first, second} {
		msg := demoMessages[order[i]]
		msg.To = to
		if err := s.mailer.Send(&msg); err != nil {
			return err
		}
	}
	return nil
}

// Archive exposes the sent-body archive
func (s *Service) Archive() *Archive {
	return s.archive
}
