package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsonloc/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("res", slog.String("key", "1"), slog.Int("n", 2))
	require.Equal(t, "res", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "key", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want any
	}{
		{logger.Path("a/appinfo.json"), "path", "a/appinfo.json"},
		{logger.Locale("fr-CA"), "locale", "fr-CA"},
		{logger.Property("title"), "property", "title"},
		{logger.Project("sample"), "project", "sample"},
		{logger.Tier("common"), "tier", "common"},
		{logger.Count(3), "count", int64(3)},
		{logger.Component("extract"), "component", "extract"},
		{logger.RunID("abc"), "run_id", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}

	assert.True(t, logger.RunID(nil).Equal(slog.Attr{}))
}
