package clientcache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarchal/s3console/pkg/clientcache"
	"github.com/tmarchal/s3console/pkg/dto"
	"github.com/tmarchal/s3console/pkg/store"
)

type fakeResolver struct {
	mu    sync.Mutex
	calls int
	eps   map[int]dto.Endpoint
}

func (f *fakeResolver) Get(id int) (dto.Endpoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	ep, ok := f.eps[id]
	if !ok {
		return dto.Endpoint{}, store.ErrNotFound
	}
	return ep, nil
}

func TestGetOrCreateCachesClient(t *testing.T) {
	resolver := &fakeResolver{eps: map[int]dto.Endpoint{
		1: {ID: 1, AccessKey: "AK", SecretKey: "SK", EndpointURL: "http://localhost:9000", Region: "us-east-1"},
	}}
	cache := clientcache.New(resolver)

	first, err := cache.GetOrCreate(1)
	require.NoError(t, err)
	second, err := cache.GetOrCreate(1)
	require.NoError(t, err)

	assert.Same(t, first, second, "second lookup must return the cached client")
	assert.Equal(t, 1, resolver.calls, "endpoint record resolved exactly once")
}

func TestGetOrCreateUnknownEndpoint(t *testing.T) {
	cache := clientcache.New(&fakeResolver{eps: map[int]dto.Endpoint{}})

	_, err := cache.GetOrCreate(99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestInvalidateForcesRebuild(t *testing.T) {
	resolver := &fakeResolver{eps: map[int]dto.Endpoint{
		1: {ID: 1, AccessKey: "AK", SecretKey: "SK", EndpointURL: "http://localhost:9000"},
	}}
	cache := clientcache.New(resolver)

	first, err := cache.GetOrCreate(1)
	require.NoError(t, err)

	cache.Invalidate(1)

	second, err := cache.GetOrCreate(1)
	require.NoError(t, err)

	assert.NotSame(t, first, second, "invalidation must drop the cached client")
	assert.Equal(t, 2, resolver.calls)
}

func TestConcurrentFirstUseConstructsOnce(t *testing.T) {
	resolver := &fakeResolver{eps: map[int]dto.Endpoint{
		1: {ID: 1, AccessKey: "AK", SecretKey: "SK", EndpointURL: "http://localhost:9000"},
	}}
	cache := clientcache.New(resolver)

	const goroutines = 16
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.GetOrCreate(1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, resolver.calls, "concurrent first use must construct exactly once")
}

func TestStoreHookWiresInvalidation(t *testing.T) {
	// End to end: updating a record through the store drops the cached
	// client registered via OnInvalidate.
	s := store.New(t.TempDir() + "/servers.json")
	ep, err := s.Add("srv", "AK", "SK", "http://localhost:9000", "us-east-1")
	require.NoError(t, err)

	cache := clientcache.New(s)
	s.OnInvalidate(cache.Invalidate)

	first, err := cache.GetOrCreate(ep.ID)
	require.NoError(t, err)

	_, err = s.Update(ep.ID, dto.Endpoint{
		Name: "srv", AccessKey: "AK2", SecretKey: "SK2",
		EndpointURL: "http://localhost:9000", Region: "us-east-1",
	})
	require.NoError(t, err)

	second, err := cache.GetOrCreate(ep.ID)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}
