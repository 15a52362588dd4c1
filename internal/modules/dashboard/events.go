package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	dash "github.com/nfrund/dashview/internal/dashboard"
	"github.com/nfrund/dashview/internal/pubsub"
)

// TopicFetch carries one FetchEvent per settled dashboard fetch.
const TopicFetch = "dashboard.fetch"

// FetchEvent reports the outcome of a dashboard fetch.
type FetchEvent struct {
	ViewID     string `json:"view_id"`
	State      string `json:"state"`
	ErrorKind  string `json:"error_kind,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// FetchSettled is the typed event published on TopicFetch.
var FetchSettled = pubsub.NewEvent[FetchEvent](TopicFetch)

// NewFetchEvent builds the event for a settlement.
func NewFetchEvent(s dash.Settlement) FetchEvent {
	ev := FetchEvent{
		ViewID:     s.ViewID,
		State:      s.Snapshot.State.String(),
		DurationMS: s.Duration.Milliseconds(),
	}
	if s.Snapshot.Err != nil {
		ev.ErrorKind = dash.KindOf(s.Snapshot.Err).String()
		var fe *dash.FetchError
		if errors.As(s.Snapshot.Err, &fe) {
			ev.StatusCode = fe.StatusCode
		}
	}
	return ev
}

func publishSettlement(pub pubsub.Publisher, logger *slog.Logger) dash.SettleHook {
	return func(s dash.Settlement) {
		ev := NewFetchEvent(s)
		meta := map[string]string{"state": ev.State}
		if ev.StatusCode != 0 {
			meta["status_code"] = strconv.Itoa(ev.StatusCode)
		}
		if err := FetchSettled.Publish(context.Background(), pub, ev, meta); err != nil {
			logger.Error("failed to publish dashboard fetch event", "error", err)
		}
	}
}

func logFetchEvent(ctx context.Context, ev FetchEvent, _ pubsub.Message) error {
	attrs := []any{"view_id", ev.ViewID, "state", ev.State, "duration_ms", ev.DurationMS}
	if ev.ErrorKind != "" {
		attrs = append(attrs, "error_kind", ev.ErrorKind, "status_code", ev.StatusCode)
	}
	slog.InfoContext(ctx, "dashboard fetch settled", attrs...)
	return nil
}
