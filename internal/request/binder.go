package request

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/serialization"
)

// Values are the call arguments of one operation invocation, keyed by
// parameter name.
type Values map[string]any

// Header is a single request header. Order and duplicates are preserved.
type Header struct {
	Name  string
	Value string
}

// BoundRequest is a fully substituted request ready for a transport. It is not
// modified after Bind returns it.
type BoundRequest struct {
	Operation string
	Method    string
	URL       string
	Headers   []Header
	// Body is nil when the request carries no body.
	Body *string
}

// Header returns the first value for name, matched case-insensitively.
func (r *BoundRequest) Header(name string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// Binder fills Descriptors with call arguments.
type Binder struct {
	serializer *serialization.Serializer
}

func NewBinder(serializer *serialization.Serializer) *Binder {
	return &Binder{serializer: serializer}
}

// Bind builds a request from d and args. A missing required argument fails
// with ErrMissingRequiredParameter and no request is returned.
func (b *Binder) Bind(d *Descriptor, args Values) (*BoundRequest, error) {
	target, err := b.bindURL(d, args)
	if err != nil {
		return nil, err
	}

	headers := make([]Header, 0, len(d.headers)+1)
	for _, h := range d.headers {
		v, ok, err := bindingValue(d.name, h, args)
		if err != nil {
			return nil, err
		}
		if ok {
			headers = append(headers, Header{Name: h.Name, Value: v})
		}
	}

	req := &BoundRequest{
		Operation: d.name,
		Method:    d.method,
		URL:       target,
	}

	if d.body != nil {
		raw, present := args[d.body.Param]
		if isMissing(raw) {
			if d.body.Required {
				return nil, domain.NewMissingRequiredParameterError(d.name, d.body.Param)
			}
			present = false
		}
		if present {
			body, err := b.serializer.Serialize(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: encode body: %w", d.name, err)
			}
			req.Body = &body
			if !hasHeader(headers, "Content-Type") {
				headers = append(headers, Header{Name: "Content-Type", Value: d.body.ContentType})
			}
		}
	}

	req.Headers = headers
	return req, nil
}

func (b *Binder) bindURL(d *Descriptor, args Values) (string, error) {
	if d.fullURLParam != "" {
		if full := stringValue(args[d.fullURLParam]); full != "" {
			u, err := url.Parse(full)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return "", domain.NewInvalidArgumentError(d.name, d.fullURLParam, fmt.Sprintf("%q is not an absolute URL", full))
			}
			return full, nil
		}
		if d.urlTemplate == "" {
			return "", domain.NewMissingRequiredParameterError(d.name, d.fullURLParam)
		}
	}

	target := d.urlTemplate
	for _, p := range d.pathParams {
		v := stringValue(args[p])
		if v == "" {
			return "", domain.NewMissingRequiredParameterError(d.name, p)
		}
		target = strings.ReplaceAll(target, "{"+p+"}", url.PathEscape(v))
	}

	var query []string
	for _, q := range d.queries {
		v, ok, err := bindingValue(d.name, q, args)
		if err != nil {
			return "", err
		}
		if ok {
			query = append(query, url.QueryEscape(q.Name)+"="+url.QueryEscape(v))
		}
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + strings.Join(query, "&")
	}
	return target, nil
}

func bindingValue(op string, b Binding, args Values) (string, bool, error) {
	if b.isStatic() {
		return b.Value, true, nil
	}
	raw := args[b.Param]
	if isMissing(raw) {
		if b.Required {
			return "", false, domain.NewMissingRequiredParameterError(op, b.Param)
		}
		return "", false, nil
	}
	return stringValue(raw), true, nil
}

// isMissing treats nil of any kind, including typed nil pointers, maps and
// slices, and the empty string as unbound.
func isMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case *string:
		return t == nil || *t == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func hasHeader(headers []Header, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}
