package reporter

import (
	"context"

	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/model"
)

// Multi forwards every event to all reporters in order
type Multi []interfaces.Reporter

var _ interfaces.Reporter = Multi(nil)

func NewMulti(reporters ...interfaces.Reporter) Multi {
	var m Multi
	for _, r := range reporters {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

func (x Multi) Record(ctx context.Context, ev *model.Event) {
	for _, r := range x {
		r.Record(ctx, ev)
	}
}
