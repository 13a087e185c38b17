package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // completed
	colorOrange = 0xE67E22 // partially failed
	colorRed    = 0xE74C3C // failed
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// JobFinished sends one embed describing the finished job.
func (d *DiscordNotifier) JobFinished(ctx context.Context, s *JobSummary) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	payload := discordWebhookPayload{Embeds: []discordEmbed{buildEmbed(s)}}
	return d.post(ctx, payload)
}

func buildEmbed(s *JobSummary) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("Import %s: %s", statusLabel(s.Status), s.ShopDomain),
		Color: statusColor(s.Status),
		Fields: []discordEmbedField{
			{Name: "Seller", Value: s.SellerUsername, Inline: true},
			{Name: "Imported", Value: fmt.Sprintf("%d/%d", s.ItemsImported, s.TotalItems), Inline: true},
			{Name: "Failed items", Value: fmt.Sprintf("%d", s.ItemsFailed), Inline: true},
			{Name: "Failed pages", Value: fmt.Sprintf("%d", s.PagesFailed), Inline: true},
			{Name: "Duration", Value: s.Duration.Round(time.Second).String(), Inline: true},
			{Name: "Job", Value: s.JobID, Inline: false},
		},
	}

	if s.Error != "" {
		embed.Description = s.Error
	}

	return embed
}

func statusLabel(s domain.JobStatus) string {
	switch s {
	case domain.JobCompleted:
		return "completed"
	case domain.JobPartiallyFailed:
		return "partially failed"
	default:
		return "failed"
	}
}

func statusColor(s domain.JobStatus) int {
	switch s {
	case domain.JobCompleted:
		return colorGreen
	case domain.JobPartiallyFailed:
		return colorOrange
	default:
		return colorRed
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
