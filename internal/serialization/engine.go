// Package serialization converts between Go values and JSON text.
//
// Mapping code depends on the Engine interface only. Two engines ship with the
// package: StdEngine on encoding/json and ParserEngine, which reads with
// buger/jsonparser.
package serialization

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Object is a decoded JSON object. Numbers are held as json.Number.
type Object = map[string]any

// Array is a decoded JSON array.
type Array = []any

// Engine is the capability set required from a concrete JSON implementation.
type Engine interface {
	ReadObject(data []byte) (Object, error)
	ReadArray(data []byte) (Array, error)
	WriteObject(obj Object) ([]byte, error)
	WriteArray(arr Array) ([]byte, error)
}

var (
	errNotObject = errors.New("expected a JSON object")
	errNotArray  = errors.New("expected a JSON array")
)

// StdEngine implements Engine with encoding/json.
type StdEngine struct{}

var _ Engine = StdEngine{}

func (StdEngine) ReadObject(data []byte) (Object, error) {
	v, err := decodeStrict(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

func (StdEngine) ReadArray(data []byte) (Array, error) {
	v, err := decodeStrict(data)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, errNotArray
	}
	return arr, nil
}

func (StdEngine) WriteObject(obj Object) ([]byte, error) {
	if obj == nil {
		obj = Object{}
	}
	return encode(obj)
}

func (StdEngine) WriteArray(arr Array) ([]byte, error) {
	if arr == nil {
		arr = Array{}
	}
	return encode(arr)
}

// decodeStrict decodes exactly one JSON value and rejects trailing data.
func decodeStrict(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
