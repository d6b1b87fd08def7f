// Package lifecycle exposes glossary change events as a lifecycle.Source so
// that hosts built on github.com/aretw0/lifecycle can route them with their
// other event sources.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/lexicon/pkg/core"
)

type glossarySource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps the channel returned by core.Service.Watch. core.Event
// satisfies lifecycle.Event through its String method.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &glossarySource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *glossarySource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx is done or the upstream channel closes,
// then closes Events.
func (s *glossarySource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
