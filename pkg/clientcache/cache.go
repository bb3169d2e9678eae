// Package clientcache owns the process-wide map of live gateway clients,
// one per registered endpoint.
package clientcache

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/tmarchal/s3console/pkg/dto"
	"github.com/tmarchal/s3console/pkg/s3svc"
)

// Resolver looks up an endpoint record by id. Satisfied by *store.Store.
type Resolver interface {
	Get(id int) (dto.Endpoint, error)
}

// Cache maps endpoint ids to constructed gateway clients. First use of an
// id constructs the client exactly once; Invalidate drops the entry so the
// next use rebuilds it from the current credentials.
type Cache struct {
	mu       sync.Mutex
	resolver Resolver
	clients  map[int]*s3svc.Service
	log      *slog.Logger
}

// New creates an empty cache backed by the given endpoint resolver.
func New(resolver Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		clients:  make(map[int]*s3svc.Service),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger
func (c *Cache) SetLogger(log *slog.Logger) {
	c.log = log
}

// GetOrCreate returns the cached gateway for the endpoint id, constructing
// and caching it on first use. Construction reads at most local config
// files, so holding the lock across it keeps initialization exactly-once
// without blocking on any network call.
func (c *Cache) GetOrCreate(id int) (*s3svc.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if svc, ok := c.clients[id]; ok {
		return svc, nil
	}

	ep, err := c.resolver.Get(id)
	if err != nil {
		return nil, err
	}

	svc, err := s3svc.New(context.Background(), ep)
	if err != nil {
		return nil, err
	}
	svc.SetLogger(c.log)
	c.clients[id] = svc
	c.log.Debug("gateway client constructed", slog.Int("endpoint", id))
	return svc, nil
}

// Invalidate drops the cached client for the endpoint id. Called via the
// store's invalidation hook whenever a record is updated or deleted.
func (c *Cache) Invalidate(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.clients[id]; ok {
		delete(c.clients, id)
		c.log.Debug("gateway client invalidated", slog.Int("endpoint", id))
	}
}
