package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tidyhome/tidyhome-api/internal/pkg/logger"
)

func TestLogPublisher_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background(), &l)

	event := map[string]string{"booking_id": "b-1"}
	if err := (LogPublisher{}).PublishJSON(ctx, "booking.confirmed", event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON log line, got %q", buf.String())
	}
	if line["queue"] != "booking.confirmed" {
		t.Fatalf("expected queue booking.confirmed, got %v", line["queue"])
	}
	if !strings.Contains(buf.String(), `"booking_id":"b-1"`) {
		t.Fatalf("expected event body in log, got %q", buf.String())
	}
}

func TestLogPublisher_RejectsUnencodable(t *testing.T) {
	err := (LogPublisher{}).PublishJSON(context.Background(), "q", make(chan int))
	if err == nil {
		t.Fatal("expected marshal error")
	}
}
