// Package store persists registered storage endpoints and their per-bucket
// CDN overrides as keyed records in a flat JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/tmarchal/s3console/pkg/dto"
)

// ErrNotFound is returned when no endpoint exists for the given id.
var ErrNotFound = errors.New("endpoint not found")

const storeFileMode = 0o600

type fileData struct {
	Servers []dto.Endpoint `json:"servers"`
}

// Store is a flat-file record store for endpoint credentials. All
// mutations are serialized by an internal mutex and written back to disk
// immediately (last write wins).
type Store struct {
	mu           sync.Mutex
	path         string
	data         fileData
	log          *slog.Logger
	onInvalidate func(id int)
}

// New loads the store from path. A missing or unreadable file starts an
// empty store, matching record-store semantics where the file is created
// on first write.
func New(path string) *Store {
	s := &Store{
		path: path,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.log.Warn("ignoring corrupt store file", slog.String("path", path))
		s.data = fileData{}
	}
	return s
}

// SetLogger sets the logger
func (s *Store) SetLogger(log *slog.Logger) {
	s.log = log
}

// OnInvalidate registers a hook invoked with the endpoint id whenever a
// record is updated or deleted. Used to drop cached gateway clients whose
// credentials may have changed.
func (s *Store) OnInvalidate(fn func(id int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = fn
}

func (s *Store) invalidate(id int) {
	if s.onInvalidate != nil {
		s.onInvalidate(id)
	}
}

// save writes the current records back to disk. Callers must hold s.mu.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(&s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("save: error marshaling store: %w", err)
	}
	if err := os.WriteFile(s.path, raw, storeFileMode); err != nil {
		return fmt.Errorf("save: error writing %s: %w", s.path, err)
	}
	return nil
}

// cloneEndpoint returns a copy whose CdnURLs map is detached from the
// live record. Records handed out of the store must not alias internal
// state: SetCdnURL mutates the live map under the mutex, and callers
// read their copies after the mutex is released.
func cloneEndpoint(ep dto.Endpoint) dto.Endpoint {
	if ep.CdnURLs != nil {
		urls := make(map[string]string, len(ep.CdnURLs))
		for bucket, url := range ep.CdnURLs {
			urls[bucket] = url
		}
		ep.CdnURLs = urls
	}
	return ep
}

// List returns all registered endpoints.
func (s *Store) List() []dto.Endpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.Endpoint, 0, len(s.data.Servers))
	for _, ep := range s.data.Servers {
		out = append(out, cloneEndpoint(ep))
	}
	return out
}

// Get returns the endpoint with the given id.
func (s *Store) Get(id int) (dto.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ep := range s.data.Servers {
		if ep.ID == id {
			return cloneEndpoint(ep), nil
		}
	}
	return dto.Endpoint{}, ErrNotFound
}

// Add registers a new endpoint and assigns it the next id. Ids are
// monotonic for the lifetime of the store file and never reused after a
// delete.
func (s *Store) Add(name, accessKey, secretKey, endpointURL, region string) (dto.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nextID := 1
	for _, ep := range s.data.Servers {
		if ep.ID >= nextID {
			nextID = ep.ID + 1
		}
	}

	ep := dto.Endpoint{
		ID:          nextID,
		Name:        name,
		AccessKey:   accessKey,
		SecretKey:   secretKey,
		EndpointURL: endpointURL,
		Region:      region,
	}
	s.data.Servers = append(s.data.Servers, ep)
	if err := s.save(); err != nil {
		s.data.Servers = s.data.Servers[:len(s.data.Servers)-1]
		return dto.Endpoint{}, err
	}
	s.log.Info("endpoint registered", slog.Int("id", ep.ID), slog.String("name", ep.Name))
	return ep, nil
}

// Update mutates an endpoint record in place. The id and the CDN override
// map are kept; credentials and connection details come from upd.
func (s *Store) Update(id int, upd dto.Endpoint) (dto.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ep := range s.data.Servers {
		if ep.ID != id {
			continue
		}
		upd.ID = id
		upd.CdnURLs = ep.CdnURLs
		s.data.Servers[i] = upd
		if err := s.save(); err != nil {
			s.data.Servers[i] = ep
			return dto.Endpoint{}, err
		}
		s.invalidate(id)
		s.log.Info("endpoint updated", slog.Int("id", id))
		return cloneEndpoint(upd), nil
	}
	return dto.Endpoint{}, ErrNotFound
}

// Delete removes an endpoint record.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ep := range s.data.Servers {
		if ep.ID != id {
			continue
		}
		s.data.Servers = append(s.data.Servers[:i], s.data.Servers[i+1:]...)
		if err := s.save(); err != nil {
			return err
		}
		s.invalidate(id)
		s.log.Info("endpoint deleted", slog.Int("id", id))
		return nil
	}
	return ErrNotFound
}
