package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"slot-booking/pkg/utils"
)

// LinePusher delivers one text message to a LINE recipient.
type LinePusher interface {
	Push(ctx context.Context, to, text string) error
}

type lineClient struct {
	cfg  utils.LineConfig
	http *http.Client
}

func NewLineClient(cfg utils.LineConfig) LinePusher {
	return &lineClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type linePushRequest struct {
	To       string        `json:"to"`
	Messages []lineMessage `json:"messages"`
}

type lineMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (c *lineClient) Push(ctx context.Context, to, text string) error {
	body, err := json.Marshal(linePushRequest{
		To:       to,
		Messages: []lineMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("marshal line push: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.PushURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build line push request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.ChannelToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send line push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("line push returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
