package session

import (
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pg_console/internal/core/ports/services"
	"github.com/SscSPs/pg_console/internal/core/fetch"
	"github.com/SscSPs/pg_console/internal/core/services"
	"github.com/SscSPs/pg_console/internal/metrics"
)

// Backend is one remote store together with the fetcher and services every
// session on that store shares.
type Backend struct {
	Name     string
	Repos    portsrepo.RepositoryProvider
	Fetcher  *fetch.Fetcher
	Services *portssvc.ServiceContainer
}

// NewBackend wires a fetcher and a service container over repos.
func NewBackend(name string, repos portsrepo.RepositoryProvider, opts fetch.Options, m *metrics.Metrics, svcOpts ...services.ServiceOption) *Backend {
	return &Backend{
		Name:     name,
		Repos:    repos,
		Fetcher:  fetch.NewFetcher(repos, opts, m),
		Services: services.NewServiceContainer(repos, svcOpts...),
	}
}
