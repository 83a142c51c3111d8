package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText_WritesLevelsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf, slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "k", "v")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err")

	out := buf.String()
	assert.Contains(t, out, "dbg")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "inf")
	assert.Contains(t, out, "wrn")
	assert.Contains(t, out, "err")
}

func TestNewText_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf, slog.LevelInfo)

	log.Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}

func TestWith_CarriesPairs(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, slog.LevelInfo)

	child := log.With("role", "admin")
	require.NotNil(t, child)
	child.Info(context.Background(), "hello")

	line := buf.String()
	assert.True(t, strings.Contains(line, `"role":"admin"`), "expected role attr in %q", line)
}
