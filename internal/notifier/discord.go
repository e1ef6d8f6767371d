package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pizza_this_backend/internal/config"
	"pizza_this_backend/pkg/utils"
)

// Notifier pushes short operational messages to an external channel.
// Implementations must never block request handling on delivery.
type Notifier interface {
	Notify(content string)
}

// DiscordNotifier posts messages to a Discord webhook. An empty webhook URL
// disables delivery entirely.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a notifier from the Discord configuration.
func NewDiscordNotifier(cfg config.DiscordConfig) *DiscordNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DiscordNotifier{
		webhookURL: cfg.WebhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// Notify delivers the message. Failures are logged and swallowed; a broken
// webhook must never surface to API clients.
func (n *DiscordNotifier) Notify(content string) {
	if n.webhookURL == "" {
		return
	}

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		utils.LogError(err, "failed to encode discord payload")
		return
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		utils.LogError(err, "failed to deliver discord notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		utils.LogError(fmt.Errorf("discord webhook returned status %d", resp.StatusCode),
			"failed to deliver discord notification")
	}
}

// NopNotifier discards every message.
type NopNotifier struct{}

func (NopNotifier) Notify(string) {}
