package request

import (
	"fmt"
	"maps"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
)

var (
	propertyPattern  = regexp.MustCompile(`\$\{([^}]+)\}`)
	pathParamPattern = regexp.MustCompile(`\{([A-Za-z0-9_.-]+)\}`)
)

// Descriptor is a resolved Definition. It is immutable and safe to share
// between goroutines.
type Descriptor struct {
	name         string
	method       string
	urlTemplate  string
	pathParams   []string
	fullURLParam string
	headers      []Binding
	queries      []Binding
	body         *BodyBinding
	apiKeyToken  string
}

func (d *Descriptor) Name() string         { return d.name }
func (d *Descriptor) Method() string       { return d.method }
func (d *Descriptor) URLTemplate() string  { return d.urlTemplate }
func (d *Descriptor) FullURLParam() string { return d.fullURLParam }
func (d *Descriptor) HasBody() bool        { return d.body != nil }

// APIKeyToken returns the API key marker when any template of the operation
// referenced it, or "".
func (d *Descriptor) APIKeyToken() string { return d.apiKeyToken }

// Headers returns the resolved header bindings in declaration order.
func (d *Descriptor) Headers() []Binding {
	return slices.Clone(d.headers)
}

type ResolverConfig struct {
	BaseURL    string
	APIKey     string
	Properties map[string]string
}

// Resolver resolves Definitions into Descriptors and caches them by name.
type Resolver struct {
	baseURL    string
	apiKey     string
	properties map[string]string

	mu    sync.RWMutex
	cache map[string]*Descriptor
}

func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		properties: maps.Clone(cfg.Properties),
		cache:      make(map[string]*Descriptor),
	}
}

// Resolve returns the cached Descriptor for def.Name, resolving it on first use.
// Operation names must be unique per Resolver.
func (r *Resolver) Resolve(def Definition) (*Descriptor, error) {
	r.mu.RLock()
	d, ok := r.cache[def.Name]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}

	d, err := r.resolve(def)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.cache[def.Name]; ok {
		return existing, nil
	}
	r.cache[def.Name] = d
	return d, nil
}

// ResolveAll resolves every definition and reports the first failure.
func (r *Resolver) ResolveAll(defs ...Definition) error {
	for _, def := range defs {
		if _, err := r.Resolve(def); err != nil {
			return err
		}
	}
	return nil
}

// Cached returns the descriptor for name if it has been resolved.
func (r *Resolver) Cached(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.cache[name]
	return d, ok
}

func (r *Resolver) resolve(def Definition) (*Descriptor, error) {
	if def.Name == "" {
		return nil, domain.NewConfigurationError("request", "operation name is required")
	}
	op := def.Name

	method := strings.ToUpper(def.Method)
	if !knownMethods[method] {
		return nil, domain.NewConfigurationError(op, fmt.Sprintf("unsupported HTTP method %q", def.Method))
	}
	if def.Body != nil && !allowsBody(method) {
		return nil, domain.NewConfigurationError(op, method+" operation cannot declare a body")
	}
	if def.Path == "" && def.FullURLParam == "" {
		return nil, domain.NewConfigurationError(op, "either a path or a full URL parameter is required")
	}

	d := &Descriptor{
		name:         op,
		method:       method,
		fullURLParam: def.FullURLParam,
	}
	usesKey := false
	sub := func(s string) (string, error) {
		if strings.Contains(s, APIKeyToken) {
			usesKey = true
		}
		return r.substitute(op, s)
	}

	if def.Path != "" {
		base, err := sub(r.baseURL)
		if err != nil {
			return nil, err
		}
		if err := validateBaseURL(op, base); err != nil {
			return nil, err
		}
		path, err := sub(def.Path)
		if err != nil {
			return nil, err
		}
		d.urlTemplate = strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
		for _, m := range pathParamPattern.FindAllStringSubmatch(path, -1) {
			d.pathParams = append(d.pathParams, m[1])
		}
	}

	var err error
	if d.headers, err = resolveBindings(op, def.Headers, sub); err != nil {
		return nil, err
	}
	if d.queries, err = resolveBindings(op, def.Queries, sub); err != nil {
		return nil, err
	}

	if def.Body != nil {
		body := *def.Body
		if body.Param == "" {
			return nil, domain.NewConfigurationError(op, "body binding needs a parameter name")
		}
		if body.ContentType == "" {
			body.ContentType = "application/json"
		}
		d.body = &body
	}

	if usesKey {
		d.apiKeyToken = APIKeyToken
	}
	return d, nil
}

func resolveBindings(op string, in []Binding, sub func(string) (string, error)) ([]Binding, error) {
	out := make([]Binding, 0, len(in))
	for _, b := range in {
		if b.Name == "" {
			return nil, domain.NewConfigurationError(op, "binding without a name")
		}
		if b.isStatic() {
			v, err := sub(b.Value)
			if err != nil {
				return nil, err
			}
			b.Value = v
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *Resolver) substitute(op, s string) (string, error) {
	var missing []string
	out := propertyPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := m[2 : len(m)-1]
		v, ok := r.lookup(name)
		if !ok {
			missing = append(missing, name)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		return "", domain.NewConfigurationError(op, "unresolved placeholder ${"+strings.Join(missing, "}, ${")+"}")
	}
	if strings.Contains(out, "${") {
		return "", domain.NewConfigurationError(op, "malformed placeholder in "+s)
	}
	return out, nil
}

func (r *Resolver) lookup(name string) (string, bool) {
	if name == APIKeyProperty {
		return r.apiKey, r.apiKey != ""
	}
	v, ok := r.properties[name]
	return v, ok
}

func validateBaseURL(op, base string) error {
	if base == "" {
		return domain.NewConfigurationError(op, "base URL is not configured")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.NewConfigurationError(op, "base URL must be absolute: "+base)
	}
	return nil
}
