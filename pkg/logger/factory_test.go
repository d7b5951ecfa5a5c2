package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsonloc/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("writes json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("strings extracted", logger.Count(3))

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "strings extracted", entry["msg"])
		assert.EqualValues(t, 3, entry["count"])
	})

	t.Run("text formatter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Warn("could not read file", logger.Path("app/appinfo.json"))

		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "path=app/appinfo.json")
	})

	t.Run("last formatter wins", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithJSONFormatter())
		log.Info("hello")
		assert.Equal(t, "hello", decode(t, buf)["msg"])
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("command", "localize")))
		log.Info("msg")
		assert.Equal(t, "localize", decode(t, buf)["command"])
	})

	t.Run("color formatter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithColor())
		log.Info("manifest written", logger.Count(2))

		out := buf.String()
		assert.Contains(t, out, "INF")
		assert.Contains(t, out, "manifest written")
		assert.Contains(t, out, "count")
	})

	t.Run("color format by name", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logger.New(logger.WithFormat(logger.FormatColor))
		})
	})
}

func TestContextExtractors(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(logger.DocumentExtractor(), nil, logger.LocaleExtractor()),
	)

	ctx := logger.WithLocale(logger.WithDocument(context.Background(), "app/appinfo.json"), "de-CH")
	log.With(logger.Component("appinfo")).InfoContext(ctx, "localized file written")

	entry := decode(t, buf)
	assert.Equal(t, "app/appinfo.json", entry["document"])
	assert.Equal(t, "de-CH", entry["target_locale"])
	assert.Equal(t, "appinfo", entry["component"])

	buf.Reset()
	log.Info("no context values")
	entry = decode(t, buf)
	assert.NotContains(t, entry, "document")
	assert.NotContains(t, entry, "target_locale")
}

func TestContextValue(t *testing.T) {
	type key string
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithContextValue("batch", key("batch")))

	log.InfoContext(context.WithValue(context.Background(), key("batch"), "nightly"), "msg")
	assert.Equal(t, "nightly", decode(t, buf)["batch"])
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")
	assert.Equal(t, "default", decode(t, buf)["msg"])
}

func TestWithFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}
