package request_test

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver() *request.Resolver {
	return request.NewResolver(request.ResolverConfig{
		BaseURL: "https://mobile.example.com",
		APIKey:  "app-code-123",
		Properties: map[string]string{
			"platform.type": "GCM",
		},
	})
}

func TestResolve_SubstitutesProperties(t *testing.T) {
	r := newResolver()

	d, err := r.Resolve(request.Definition{
		Name:   "sync",
		Method: "post",
		Path:   "/mobile/5/messages",
		Headers: []request.Binding{
			request.Static("Authorization", "App ${api.key}"),
			request.Static("X-Platform", "${platform.type}"),
		},
		Body: &request.BodyBinding{Param: "body"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, d.Method())
	assert.Equal(t, "https://mobile.example.com/mobile/5/messages", d.URLTemplate())
	assert.Equal(t, request.APIKeyToken, d.APIKeyToken())
	assert.True(t, d.HasBody())
	assert.Equal(t, []request.Binding{
		{Name: "Authorization", Value: "App app-code-123"},
		{Name: "X-Platform", Value: "GCM"},
	}, d.Headers())
}

func TestResolve_APIKeyInBasePath(t *testing.T) {
	r := request.NewResolver(request.ResolverConfig{
		BaseURL: "https://mobile.example.com/${api.key}/",
		APIKey:  "k-1",
	})

	d, err := r.Resolve(request.Definition{Name: "version", Method: http.MethodGet, Path: "mobile/3/version"})
	require.NoError(t, err)
	assert.Equal(t, "https://mobile.example.com/k-1/mobile/3/version", d.URLTemplate())
	assert.Equal(t, "${api.key}", d.APIKeyToken())
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  request.ResolverConfig
		def  request.Definition
	}{
		{
			name: "GET with body",
			cfg:  request.ResolverConfig{BaseURL: "https://x"},
			def: request.Definition{
				Name: "bad", Method: http.MethodGet, Path: "/a",
				Body: &request.BodyBinding{Param: "body"},
			},
		},
		{
			name: "unresolved property",
			cfg:  request.ResolverConfig{BaseURL: "https://x"},
			def: request.Definition{
				Name: "bad", Method: http.MethodPost, Path: "/a",
				Headers: []request.Binding{request.Static("X-Unknown", "${nope}")},
			},
		},
		{
			name: "api key not configured",
			cfg:  request.ResolverConfig{BaseURL: "https://x/${api.key}"},
			def:  request.Definition{Name: "bad", Method: http.MethodPost, Path: "/a"},
		},
		{
			name: "malformed placeholder",
			cfg:  request.ResolverConfig{BaseURL: "https://x"},
			def:  request.Definition{Name: "bad", Method: http.MethodGet, Path: "/a/${oops"},
		},
		{
			name: "unknown method",
			cfg:  request.ResolverConfig{BaseURL: "https://x"},
			def:  request.Definition{Name: "bad", Method: "FETCH", Path: "/a"},
		},
		{
			name: "no path and no full url",
			cfg:  request.ResolverConfig{BaseURL: "https://x"},
			def:  request.Definition{Name: "bad", Method: http.MethodGet},
		},
		{
			name: "relative base url",
			cfg:  request.ResolverConfig{BaseURL: "mobile.example.com"},
			def:  request.Definition{Name: "bad", Method: http.MethodGet, Path: "/a"},
		},
		{
			name: "missing name",
			cfg:  request.ResolverConfig{BaseURL: "https://x"},
			def:  request.Definition{Method: http.MethodGet, Path: "/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := request.NewResolver(tt.cfg)

			d, err := r.Resolve(tt.def)

			require.Error(t, err)
			assert.Nil(t, d)
			assert.True(t, errors.Is(err, domain.ErrConfiguration), "got %v", err)
			_, cached := r.Cached(tt.def.Name)
			assert.False(t, cached)
		})
	}
}

func TestResolve_CachesDescriptor(t *testing.T) {
	r := newResolver()
	def := request.Definition{Name: "baseurl", Method: http.MethodGet, Path: "/mobile/1/baseurl"}

	first, err := r.Resolve(def)
	require.NoError(t, err)

	def.Path = "/changed"
	second, err := r.Resolve(def)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "https://mobile.example.com/mobile/1/baseurl", second.URLTemplate())
}

func TestResolve_DescriptorIsIsolatedFromDefinition(t *testing.T) {
	r := newResolver()
	headers := []request.Binding{request.Static("A", "1")}

	d, err := r.Resolve(request.Definition{Name: "iso", Method: http.MethodGet, Path: "/x", Headers: headers})
	require.NoError(t, err)

	headers[0].Value = "mutated"
	got := d.Headers()
	got[0].Value = "mutated too"

	assert.Equal(t, "1", d.Headers()[0].Value)
}

func TestResolve_ConcurrentCallsShareOneDescriptor(t *testing.T) {
	r := newResolver()
	def := request.Definition{Name: "concurrent", Method: http.MethodGet, Path: "/x"}

	var wg sync.WaitGroup
	results := make([]*request.Descriptor, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := r.Resolve(def)
			assert.NoError(t, err)
			results[i] = d
		}(i)
	}
	wg.Wait()

	cached, ok := r.Cached("concurrent")
	require.True(t, ok)
	for _, d := range results {
		assert.Same(t, cached, d)
	}
}

func TestResolveAll(t *testing.T) {
	r := newResolver()

	err := r.ResolveAll(
		request.Definition{Name: "a", Method: http.MethodGet, Path: "/a"},
		request.Definition{Name: "b", Method: http.MethodGet, Path: "/b", Body: &request.BodyBinding{Param: "x"}},
	)

	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	_, ok := r.Cached("a")
	assert.True(t, ok)
}
