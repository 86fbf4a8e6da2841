package notifications

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lathe/internal/config"
	"lathe/internal/events"
	"lathe/internal/logging"
	"lathe/internal/records"
)

const userAgent = "Lathe-Go/0.1.0"

// NewListener builds an events.Listener that pushes to ntfy when a topic is
// configured. Without a topic a noop listener is returned so callers can
// subscribe it unconditionally.
func NewListener(cfg *config.Config, logger *slog.Logger) events.Listener {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopListener{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if logger == nil {
		logger = logging.NewNop()
	}

	return &ntfyListener{
		endpoint:   topic,
		client:     &http.Client{Timeout: timeout},
		renditions: cfg.Notifications.Renditions,
		errors:     cfg.Notifications.Errors,
		logger:     logger,
		titler:     cases.Title(language.English),
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyListener struct {
	endpoint   string
	client     *http.Client
	renditions bool
	errors     bool
	logger     *slog.Logger
	titler     cases.Caser
}

func (n *ntfyListener) EncodingStarted(context.Context, records.OwnerRef) {}

func (n *ntfyListener) FormatStarted(context.Context, records.OwnerRef, records.Record) {}

func (n *ntfyListener) FormatFinished(ctx context.Context, outcome events.FormatOutcome) {
	switch outcome.Result {
	case events.ResultSucceeded:
		if !n.renditions {
			return
		}
		data := payload{
			title:   "Lathe - Rendition Ready",
			message: fmt.Sprintf("🎞️ %s ready for %s", n.displayFormat(outcome.Format), outcome.Owner),
			tags:    []string{"lathe", "rendition", "completed"},
		}
		n.send(ctx, data)
	case events.ResultFailed:
		if !n.errors {
			return
		}
		reason := "unknown"
		if outcome.Err != nil {
			reason = strings.TrimSpace(outcome.Err.Error())
		}
		data := payload{
			title:    "Lathe - Encoding Error",
			message:  fmt.Sprintf("❌ %s failed for %s: %s", n.displayFormat(outcome.Format), outcome.Owner, reason),
			tags:     []string{"lathe", "error", "alert"},
			priority: "high",
		}
		n.send(ctx, data)
	}
}

func (n *ntfyListener) EncodingFinished(ctx context.Context, owner records.OwnerRef) {
	if !n.renditions {
		return
	}
	data := payload{
		title:   "Lathe - Encoding Complete",
		message: fmt.Sprintf("✅ All renditions processed for %s", n.displayOwner(owner)),
		tags:    []string{"lathe", "encode", "completed"},
	}
	n.send(ctx, data)
}

func (n *ntfyListener) displayFormat(format string) string {
	return n.titler.String(strings.ReplaceAll(format, "_", " "))
}

func (n *ntfyListener) displayOwner(owner records.OwnerRef) string {
	kind := n.titler.String(strings.TrimSpace(owner.Kind))
	if kind == "" {
		return owner.String()
	}
	return fmt.Sprintf("%s %s", kind, owner.ID)
}

func (n *ntfyListener) send(ctx context.Context, data payload) {
	if n == nil || n.client == nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		n.logger.Warn("build ntfy request failed", "error", err)
		return
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("ntfy notification failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		n.logger.Warn("ntfy rejected notification",
			"status", resp.StatusCode,
			"body", strings.TrimSpace(string(body)))
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
}

type noopListener struct{}

func (noopListener) EncodingStarted(context.Context, records.OwnerRef)               {}
func (noopListener) FormatStarted(context.Context, records.OwnerRef, records.Record) {}
func (noopListener) FormatFinished(context.Context, events.FormatOutcome)            {}
func (noopListener) EncodingFinished(context.Context, records.OwnerRef)              {}
