package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestContextHandlerAddsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(NewJSONHandler(&buf, "debug")))

	ctx := WithAttrs(context.Background(), slog.String("request_id", "r-1"))
	ctx = WithAttrs(ctx, slog.String("user_id", "u-1"))
	logger.InfoContext(ctx, "hello", "action", "test")

	line := lastLine(t, &buf)
	assert.Equal(t, "r-1", line["request_id"])
	assert.Equal(t, "u-1", line["user_id"])
	assert.Equal(t, "test", line["action"])

	logger.Info("plain")
	line = lastLine(t, &buf)
	assert.NotContains(t, line, "request_id")
}

func TestWithAttrsDoesNotMutateParent(t *testing.T) {
	parent := WithAttrs(context.Background(), slog.String("a", "1"))
	_ = WithAttrs(parent, slog.String("b", "2"))
	assert.Len(t, attrsFrom(parent), 1)
}

type recordingHandler struct {
	level   slog.Level
	records []slog.Record
	err     error
}

func (h *recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }
func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return h.err
}
func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerFanOut(t *testing.T) {
	info := &recordingHandler{level: slog.LevelInfo}
	errOnly := &recordingHandler{level: slog.LevelError, err: errors.New("sink down")}
	logger := slog.New(NewMultiHandler(info, nil, errOnly))

	logger.Info("one")
	assert.Len(t, info.records, 1)
	assert.Empty(t, errOnly.records)

	h := logger.Handler()
	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "two", 0))
	assert.ErrorContains(t, err, "sink down")
	assert.Len(t, info.records, 2, "a failing sink does not block the others")
	assert.Len(t, errOnly.records, 1)

	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

func TestSetupInstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Setup("debug")
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	Setup("error")
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestDBHandlerBuffersErrorRecords(t *testing.T) {
	h := &DBHandler{state: &dbState{}}
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("request_id", "r-9")}))
	logger.Error("save failed",
		"user_id", "u-1",
		"report_id", "rep-1",
		"action", "updateReport",
		"error", "boom",
		"attempt", 2,
	)

	require.Len(t, h.state.buffer, 1)
	entry := h.state.buffer[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "save failed", entry.Message)
	assert.Equal(t, "r-9", entry.RequestID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-1", *entry.UserID)
	require.NotNil(t, entry.ReportID)
	assert.Equal(t, "rep-1", *entry.ReportID)
	assert.Equal(t, "updateReport", entry.Action)
	assert.Equal(t, "boom", entry.Error)
	assert.JSONEq(t, `{"attempt":2}`, string(entry.Extra))
}

func TestSentryHandlerCapturesErrors(t *testing.T) {
	var events []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events = append(events, event)
			return nil
		},
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	logger := slog.New(NewSentryHandler(hub))
	logger.Warn("ignored")
	logger.Error("delete failed", "user_id", "u-7", "action", "deleteReport", "report_id", "rep-7")

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "delete failed", ev.Message)
	assert.Equal(t, "u-7", ev.User.ID)
	assert.Equal(t, "deleteReport", ev.Tags["action"])
	assert.Equal(t, "rep-7", ev.Extra["report_id"])
}
