package infra

import (
	"context"

	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/model"
)

// Clients bundles the external dependencies of the use cases. Mirror is optional; Reporter always
// has a value.
type Clients struct {
	github   interfaces.GitHub
	mirror   interfaces.Mirror
	reporter interfaces.Reporter
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		reporter: nopReporter{},
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) Mirror() interfaces.Mirror {
	return x.mirror
}
func (x *Clients) Reporter() interfaces.Reporter {
	return x.reporter
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithMirror(mirror interfaces.Mirror) Option {
	return func(x *Clients) {
		x.mirror = mirror
	}
}

func WithReporter(reporter interfaces.Reporter) Option {
	return func(x *Clients) {
		if reporter != nil {
			x.reporter = reporter
		}
	}
}

type nopReporter struct{}

func (nopReporter) Record(context.Context, *model.Event) {}
