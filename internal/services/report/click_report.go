package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// Click is the latest click of one user
type Click struct {
	Timestamp string
	IP        string
}

// EventLogClient reads click events from a Loggly-compatible event API
type EventLogClient struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewEventLogClient creates a client for the event iterate endpoint at url
func NewEventLogClient(url, token string) *EventLogClient {
	return &EventLogClient{
		url:        url,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type eventsResponse struct {
	Events []struct {
		Event struct {
			JSON struct {
				UserID    string `json:"userID"`
				Timestamp string `json:"timestamp"`
				IP        string `json:"ip"`
			} `json:"json"`
		} `json:"event"`
	} `json:"events"`
}

// LatestClicks returns the most recent click per user id
func (c *EventLogClient) LatestClicks(ctx context.Context) (map[string]Click, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch click events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event log returned status %d", resp.StatusCode)
	}

	var body eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode click events: %w", err)
	}

	latest := make(map[string]Click)
	for _, e := range body.Events {
		ev := e.Event.JSON
		if ev.UserID == "" || ev.Timestamp == "" {
			continue
		}
		// ISO-8601 timestamps of one source compare correctly as strings
		if prev, ok := latest[ev.UserID]; !ok || ev.Timestamp > prev.Timestamp {
			latest[ev.UserID] = Click{Timestamp: ev.Timestamp, IP: ev.IP}
		}
	}
	return latest, nil
}

// Build maps clicks onto recipients by the local part of their address
func Build(campaignID string, recipients []models.Recipient, clicks map[string]Click) *models.ClickReport {
	report := &models.ClickReport{
		CampaignID: campaignID,
		Total:      len(recipients),
		Entries:    make([]models.ClickReportEntry, 0, len(recipients)),
	}
	for _, r := range recipients {
		entry := models.ClickReportEntry{Email: r.Email}
		if click, ok := clicks[r.UserID()]; ok {
			entry.Clicked = true
			entry.Timestamp = click.Timestamp
			entry.IP = click.IP
			report.Clicked++
		}
		report.Entries = append(report.Entries, entry)
	}
	return report
}
