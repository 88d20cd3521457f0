// Package request turns statically declared operation definitions into
// concrete wire requests.
//
// A Definition describes an operation once: method, path template, header,
// query and body bindings. A Resolver validates it against configuration and
// caches the resulting immutable Descriptor. A Binder combines a Descriptor with
// per-call argument Values into a BoundRequest that a transport can execute.
//
// Templates use two placeholder forms:
//
//	${name}  configuration property, substituted once at resolution time
//	{name}   path argument, substituted from call arguments at bind time
//
// ${api.key} always refers to the configured API key.
package request

import "net/http"

// APIKeyProperty is the property name reserved for the configured API key.
const APIKeyProperty = "api.key"

// APIKeyToken is the placeholder marker for the API key.
const APIKeyToken = "${" + APIKeyProperty + "}"

// Definition declares one logical operation.
type Definition struct {
	Name   string
	Method string
	// Path is appended to the configured base URL. It may be empty when
	// FullURLParam is set.
	Path string
	// FullURLParam names an argument that, when supplied, replaces base URL and
	// path entirely.
	FullURLParam string
	Headers      []Binding
	Queries      []Binding
	Body         *BodyBinding
}

// Binding maps one header or query parameter. Exactly one of Value (a static
// template) or Param (the argument name) is set.
type Binding struct {
	Name     string
	Value    string
	Param    string
	Required bool
}

// Static declares a binding with a fixed value template.
func Static(name, value string) Binding {
	return Binding{Name: name, Value: value}
}

// Arg declares a binding filled from the named call argument.
func Arg(name, param string, required bool) Binding {
	return Binding{Name: name, Param: param, Required: required}
}

type BodyBinding struct {
	Param    string
	Required bool
	// ContentType defaults to application/json.
	ContentType string
}

func (b Binding) isStatic() bool {
	return b.Param == ""
}

var knownMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodHead:   true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

func allowsBody(method string) bool {
	return method != http.MethodGet && method != http.MethodHead
}
