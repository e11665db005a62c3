// SPDX-License-Identifier: MIT
package ctxlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/katalvlaran/bspgraph/ctxlog"
	"github.com/stretchr/testify/assert"
)

func TestFromContext_Default(t *testing.T) {
	assert.Same(t, slog.Default(), ctxlog.FromContext(context.Background()))
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	ctx = ctxlog.With(ctx, "round", 3)
	ctxlog.FromContext(ctx).Info("hello")

	assert.Contains(t, buf.String(), "round=3")
	assert.Contains(t, buf.String(), "msg=hello")
}
