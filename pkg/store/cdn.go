package store

import "log/slog"

// GetCdnURL returns the CDN base URL configured for a bucket under the
// given endpoint, if any. Resolution is always bucket-scoped: an endpoint
// with no override for the bucket reports ok=false and callers fall back
// to the application's own download route.
func (s *Store) GetCdnURL(endpointID int, bucket string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ep := range s.data.Servers {
		if ep.ID == endpointID {
			url, ok := ep.CdnURLs[bucket]
			return url, ok && url != ""
		}
	}
	return "", false
}

// SetCdnURL sets or replaces the CDN base URL for a bucket under the
// given endpoint.
func (s *Store) SetCdnURL(endpointID int, bucket, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ep := range s.data.Servers {
		if ep.ID != endpointID {
			continue
		}
		if ep.CdnURLs == nil {
			ep.CdnURLs = make(map[string]string)
		}
		prev, had := ep.CdnURLs[bucket]
		ep.CdnURLs[bucket] = url
		s.data.Servers[i] = ep
		if err := s.save(); err != nil {
			if had {
				ep.CdnURLs[bucket] = prev
			} else {
				delete(ep.CdnURLs, bucket)
			}
			return err
		}
		s.log.Info("cdn override set",
			slog.Int("id", endpointID), slog.String("bucket", bucket))
		return nil
	}
	return ErrNotFound
}

// DeleteCdnURL removes the CDN override for a bucket under the given
// endpoint. Removing an override that does not exist is not an error.
func (s *Store) DeleteCdnURL(endpointID int, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ep := range s.data.Servers {
		if ep.ID != endpointID {
			continue
		}
		prev, had := ep.CdnURLs[bucket]
		if !had {
			return nil
		}
		delete(ep.CdnURLs, bucket)
		s.data.Servers[i] = ep
		if err := s.save(); err != nil {
			ep.CdnURLs[bucket] = prev
			return err
		}
		return nil
	}
	return ErrNotFound
}
