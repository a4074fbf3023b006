package webhook

import (
	"context"

	"caligold/internal/domain/event"
)

// SyncProcessor dispatches events inline on the request goroutine.
type SyncProcessor struct {
	router *event.Router
}

func NewSyncProcessor(router *event.Router) *SyncProcessor {
	return &SyncProcessor{router: router}
}

func (p *SyncProcessor) ProcessEvent(ctx context.Context, ev event.Event) error {
	p.router.Dispatch(ctx, ev)
	return nil
}
