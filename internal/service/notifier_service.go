package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	config "github.com/jemert1992/socialcontrol/configs"
)

// DeploymentPayload is what the deployment webhook receives for a due item.
type DeploymentPayload struct {
	ContentID        int64      `json:"content_id"`
	Filename         string     `json:"filename"`
	FilePath         string     `json:"file_path"`
	ContentType      string     `json:"content_type"`
	Caption          string     `json:"caption"`
	OriginalFilename string     `json:"original_filename"`
	ScheduledTime    *time.Time `json:"scheduled_time"`
}

// NotifyResult classifies the webhook response. An HTTP error code is an
// ordinary result, not a Go error; only transport faults surface as errors.
type NotifyResult struct {
	Success    bool
	StatusCode int
}

type DeploymentNotifier interface {
	Notify(ctx context.Context, payload *DeploymentPayload) (*NotifyResult, error)
}

type webhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(cfg config.Config) DeploymentNotifier {
	return &webhookNotifier{
		url:    cfg.DeployWebhookURL,
		client: &http.Client{Timeout: cfg.WebhookTimeout},
	}
}

func (n *webhookNotifier) Notify(ctx context.Context, payload *DeploymentPayload) (*NotifyResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return &NotifyResult{
		Success:    resp.StatusCode >= 200 && resp.StatusCode < 300,
		StatusCode: resp.StatusCode,
	}, nil
}
