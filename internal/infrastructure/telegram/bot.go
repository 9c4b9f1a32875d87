// Package telegram probes the Telegram Bot API token used for notifications.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/pkg/httpprobe"
)

const (
	resultName = "telegram_api"
	// DefaultAPIBase is the Bot API root; the token is embedded in the path.
	DefaultAPIBase = "https://api.telegram.org"
)

type getMeResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	} `json:"result"`
}

// BotProbe calls getMe with the configured bot token.
type BotProbe struct {
	Token   string
	APIBase string
	Client  *httpprobe.Client
}

// NewBotProbe builds the probe for the resolved token.
func NewBotProbe(cfg domain.Config, token string) *BotProbe {
	return &BotProbe{
		Token:   token,
		APIBase: DefaultAPIBase,
		Client:  httpprobe.New(cfg.HTTPTimeoutDuration()),
	}
}

// Probe returns exactly one result; a missing token is a skip.
func (p *BotProbe) Probe(ctx context.Context) domain.CheckResult {
	if p.Token == "" {
		return domain.Skip(resultName, "Telegram bot token not configured")
	}

	url := fmt.Sprintf("%s/bot%s/getMe", strings.TrimRight(p.APIBase, "/"), p.Token)
	resp, err := p.Client.Get(ctx, url, nil)
	if err != nil {
		return domain.Fail(resultName, fmt.Sprintf("Telegram API error: %s", p.redact(err.Error())))
	}

	if resp.StatusCode != http.StatusOK {
		return domain.Fail(resultName, fmt.Sprintf("Telegram API returned %d", resp.StatusCode)).
			WithDetails(domain.NewDetails().With("status_code", domain.Int(resp.StatusCode))).
			WithDuration(resp.Duration)
	}

	var me getMeResponse
	if err := json.Unmarshal(resp.Body, &me); err != nil || !me.OK {
		return domain.Fail(resultName, "Telegram API returned error in response").
			WithDuration(resp.Duration)
	}

	return domain.Pass(resultName, fmt.Sprintf("Telegram Bot API accessible - @%s", me.Result.Username)).
		WithDetails(domain.NewDetails().
			With("bot_username", domain.Text(me.Result.Username)).
			With("bot_id", domain.Int(me.Result.ID))).
		WithDuration(resp.Duration)
}

// redact removes the token from transport errors, which quote the request URL.
func (p *BotProbe) redact(text string) string {
	return strings.ReplaceAll(text, p.Token, "<redacted>")
}
