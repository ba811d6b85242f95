// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type TracingInterface interface {
	// Start creates a span and a context containing the newly created span.
	Start(ctx context.Context, name string) (context.Context, trace.Span)
}
