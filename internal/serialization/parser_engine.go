package serialization

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// ParserEngine reads with buger/jsonparser and writes with encoding/json.
type ParserEngine struct{}

var _ Engine = ParserEngine{}

func (ParserEngine) ReadObject(data []byte) (Object, error) {
	data = bytes.TrimSpace(data)
	// jsonparser does not validate the parts of a document it skips over.
	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	if len(data) == 0 || data[0] != '{' {
		return nil, errNotObject
	}
	return parseObject(data)
}

func (ParserEngine) ReadArray(data []byte) (Array, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	if len(data) == 0 || data[0] != '[' {
		return nil, errNotArray
	}
	return parseArray(data)
}

func (ParserEngine) WriteObject(obj Object) ([]byte, error) {
	return StdEngine{}.WriteObject(obj)
}

func (ParserEngine) WriteArray(arr Array) ([]byte, error) {
	return StdEngine{}.WriteArray(arr)
}

func parseObject(data []byte) (Object, error) {
	obj := Object{}
	err := jsonparser.ObjectEach(data, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		v, err := convertValue(value, dt)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		obj[string(key)] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(data []byte) (Array, error) {
	arr := Array{}
	var itemErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dt jsonparser.ValueType, _ int, err error) {
		if itemErr != nil {
			return
		}
		if err != nil {
			itemErr = err
			return
		}
		v, err := convertValue(value, dt)
		if err != nil {
			itemErr = err
			return
		}
		arr = append(arr, v)
	})
	if err != nil {
		return nil, err
	}
	if itemErr != nil {
		return nil, itemErr
	}
	return arr, nil
}

func convertValue(value []byte, dt jsonparser.ValueType) (any, error) {
	switch dt {
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		return json.Number(string(value)), nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Object:
		return parseObject(value)
	case jsonparser.Array:
		return parseArray(value)
	default:
		return nil, fmt.Errorf("unsupported value type %s", dt)
	}
}
