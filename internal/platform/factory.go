package platform

import (
	"github.com/aretw0/lexicon/pkg/core"
)

// New initializes the storage at uri and returns a glossary service on it.
// The index is not loaded; call Service.Load.
//
//	svc, err := lexicon.New("./vault", lexicon.WithVersioning(false))
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := parseOptions(opts)
	var svcOpts []core.ServiceOption
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithLogger(o.logger))
	}
	if o.notifier != nil {
		svcOpts = append(svcOpts, core.WithNotifier(o.notifier))
	}
	if doc, ok := o.config["document"].(string); ok {
		svcOpts = append(svcOpts, core.WithDocument(doc))
	}
	if size, ok := o.config["event_buffer"].(int); ok {
		svcOpts = append(svcOpts, core.WithEventBuffer(size))
	}

	return core.NewService(repo, svcOpts...), nil
}
