package serialization

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/domain"
)

// Serializer turns Go values into JSON text and back through an Engine.
// It is safe for concurrent use.
type Serializer struct {
	engine        Engine
	preserveNulls bool
	logger        *slog.Logger
}

type Option func(*Serializer)

// WithPreserveNulls keeps explicit nulls in serialized objects instead of
// dropping the keys that hold them.
func WithPreserveNulls(preserve bool) Option {
	return func(s *Serializer) {
		s.preserveNulls = preserve
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) {
		s.logger = logger
	}
}

func New(engine Engine, opts ...Option) *Serializer {
	s := &Serializer{
		engine: engine,
		logger: slog.Default(),
	}
	if s.engine == nil {
		s.engine = StdEngine{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EngineByName returns the engine configured under name ("std" or "parser").
func EngineByName(name string) (Engine, error) {
	switch name {
	case "", "std":
		return StdEngine{}, nil
	case "parser":
		return ParserEngine{}, nil
	default:
		return nil, domain.NewConfigurationError("serialization", "unknown JSON engine "+name)
	}
}

func (s *Serializer) PreservesNulls() bool {
	return s.preserveNulls
}

// Serialize encodes v as JSON text.
func (s *Serializer) Serialize(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", domain.NewSerializationError("failed to encode value", err)
	}

	var out []byte
	switch firstByte(data) {
	case '{':
		obj, err := s.engine.ReadObject(data)
		if err != nil {
			return "", domain.NewSerializationError("failed to read encoded object", err)
		}
		if !s.preserveNulls {
			dropNulls(obj)
		}
		out, err = s.engine.WriteObject(obj)
		if err != nil {
			return "", domain.NewSerializationError("failed to write object", err)
		}
	case '[':
		arr, err := s.engine.ReadArray(data)
		if err != nil {
			return "", domain.NewSerializationError("failed to read encoded array", err)
		}
		if !s.preserveNulls {
			for _, item := range arr {
				dropNulls(item)
			}
		}
		out, err = s.engine.WriteArray(arr)
		if err != nil {
			return "", domain.NewSerializationError("failed to write array", err)
		}
	default:
		out = data
	}

	return string(out), nil
}

// DeserializeInto decodes raw into target. Only a payload that is not JSON at
// all fails; absent nested values leave target fields at their zero value and
// mistyped ones are skipped.
func (s *Serializer) DeserializeInto(raw string, target any) error {
	data := []byte(raw)
	if err := s.validate(data); err != nil {
		return err
	}

	err := json.Unmarshal(data, target)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		s.logger.Debug("skipping mistyped field",
			"field", typeErr.Field,
			"json_type", typeErr.Value,
			"go_type", typeErr.Type.String(),
		)
		return nil
	}
	if err != nil {
		return domain.NewSerializationError("failed to decode payload", err)
	}
	return nil
}

// Deserialize decodes raw into a new T.
func Deserialize[T any](s *Serializer, raw string) (T, error) {
	var v T
	if err := s.DeserializeInto(raw, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ReadObject parses raw as a top-level JSON object.
func (s *Serializer) ReadObject(raw string) (Object, error) {
	obj, err := s.engine.ReadObject([]byte(raw))
	if err != nil {
		return nil, domain.NewSerializationError("payload is not a JSON object", err)
	}
	return obj, nil
}

// ReadArray parses raw as a top-level JSON array.
func (s *Serializer) ReadArray(raw string) (Array, error) {
	arr, err := s.engine.ReadArray([]byte(raw))
	if err != nil {
		return nil, domain.NewSerializationError("payload is not a JSON array", err)
	}
	return arr, nil
}

func (s *Serializer) validate(data []byte) error {
	var err error
	switch firstByte(data) {
	case '{':
		_, err = s.engine.ReadObject(data)
	case '[':
		_, err = s.engine.ReadArray(data)
	case 0:
		return domain.NewSerializationError("empty payload", nil)
	default:
		if !json.Valid(data) {
			err = errors.New("invalid JSON value")
		}
	}
	if err != nil {
		return domain.NewSerializationError("malformed payload", err)
	}
	return nil
}

func firstByte(data []byte) byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

func dropNulls(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if child == nil {
				delete(t, k)
				continue
			}
			dropNulls(child)
		}
	case []any:
		for _, child := range t {
			dropNulls(child)
		}
	}
}
