package server

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/octobak/pkg/utils/logging"
)

// Trigger names what started a backup run
type Trigger string

const (
	TriggerSchedule Trigger = "schedule"
	TriggerStartup  Trigger = "startup"
	TriggerHTTP     Trigger = "http"
)

// WithTrigger tags the context logger with the trigger of the run
func WithTrigger(ctx context.Context, trigger Trigger) context.Context {
	return logging.With(ctx, logging.From(ctx).With(slog.String("trigger", string(trigger))))
}

// DetachContext returns a context that is not cancelled with ctx. Logger, request ID, run ID and
// clock of ctx are kept, so a run started by a request can outlive the response.
func DetachContext(ctx context.Context) context.Context {
	bgCtx := logging.With(context.Background(), logging.From(ctx))
	return logging.InheritContextValues(bgCtx, ctx)
}
