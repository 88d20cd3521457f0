// Package enginetest is a conformance suite every serialization.Engine must pass.
package enginetest

import (
	"encoding/json"
	"testing"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// EngineFactory creates the engine under test.
type EngineFactory func(t *testing.T) serialization.Engine

// RunEngineTests runs the complete engine suite against the provided factory.
func RunEngineTests(t *testing.T, factory EngineFactory) {
	t.Run("ReadObjectScalars", func(t *testing.T) {
		testReadObjectScalars(t, factory(t))
	})
	t.Run("ReadObjectNested", func(t *testing.T) {
		testReadObjectNested(t, factory(t))
	})
	t.Run("ReadObjectEscapes", func(t *testing.T) {
		testReadObjectEscapes(t, factory(t))
	})
	t.Run("ReadObjectRejectsMalformed", func(t *testing.T) {
		testReadObjectRejectsMalformed(t, factory(t))
	})
	t.Run("ReadArray", func(t *testing.T) {
		testReadArray(t, factory(t))
	})
	t.Run("ReadArrayRejectsObject", func(t *testing.T) {
		_, err := factory(t).ReadArray([]byte(`{"a":1}`))
		assert.Error(t, err)
	})
	t.Run("WriteObjectRoundTrip", func(t *testing.T) {
		testWriteObjectRoundTrip(t, factory(t))
	})
	t.Run("WriteArrayRoundTrip", func(t *testing.T) {
		testWriteArrayRoundTrip(t, factory(t))
	})
	t.Run("WriteNilContainers", func(t *testing.T) {
		e := factory(t)
		out, err := e.WriteObject(nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(out))

		out, err = e.WriteArray(nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(out))
	})
}

func testReadObjectScalars(t *testing.T, e serialization.Engine) {
	obj, err := e.ReadObject([]byte(`{"s":"text","n":42,"f":1.5,"t":true,"z":null}`))
	require.NoError(t, err)

	assert.Equal(t, "text", obj["s"])
	assert.Equal(t, json.Number("42"), obj["n"])
	assert.Equal(t, json.Number("1.5"), obj["f"])
	assert.Equal(t, true, obj["t"])

	v, present := obj["z"]
	assert.True(t, present, "explicit null keeps its key")
	assert.Nil(t, v)
}

func testReadObjectNested(t *testing.T, e serialization.Engine) {
	obj, err := e.ReadObject([]byte(`{"silent":{},"atts":[{"url":"https://x/1.png"}],"inner":{"deep":{"k":"v"}}}`))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{}, obj["silent"])
	assert.Equal(t, []any{map[string]any{"url": "https://x/1.png"}}, obj["atts"])
	assert.Equal(t, "v", serialization.String(serialization.Child(serialization.Child(obj, "inner"), "deep"), "k"))
}

func testReadObjectEscapes(t *testing.T, e serialization.Engine) {
	obj, err := e.ReadObject([]byte(`{"q\"key":"line\nbreak ü","url":"a&b"}`))
	require.NoError(t, err)

	assert.Equal(t, "line\nbreak ü", obj["q\"key"])
	assert.Equal(t, "a&b", obj["url"])
}

func testReadObjectRejectsMalformed(t *testing.T, e serialization.Engine) {
	for _, in := range []string{``, `not json`, `{"a":`, `{"a" 1}`, `[1,2]`, `"string"`, `{"a":1} trailing`} {
		_, err := e.ReadObject([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func testReadArray(t *testing.T, e serialization.Engine) {
	arr, err := e.ReadArray([]byte(`[1,"two",{"three":3},[4],null,false]`))
	require.NoError(t, err)

	require.Len(t, arr, 6)
	assert.Equal(t, json.Number("1"), arr[0])
	assert.Equal(t, "two", arr[1])
	assert.Equal(t, map[string]any{"three": json.Number("3")}, arr[2])
	assert.Equal(t, []any{json.Number("4")}, arr[3])
	assert.Nil(t, arr[4])
	assert.Equal(t, false, arr[5])

	empty, err := e.ReadArray([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testWriteObjectRoundTrip(t *testing.T, e serialization.Engine) {
	in := `{"id":"m1","count":12345678901234,"ratio":0.25,"nested":{"ok":true,"none":null},"url":"https://a/b?c=1&d=2"}`

	obj, err := e.ReadObject([]byte(in))
	require.NoError(t, err)

	out, err := e.WriteObject(obj)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
	assert.Contains(t, string(out), "c=1&d=2", "HTML characters are not escaped")
}

func testWriteArrayRoundTrip(t *testing.T, e serialization.Engine) {
	in := `[{"a":1},"b",[true,null]]`

	arr, err := e.ReadArray([]byte(in))
	require.NoError(t, err)

	out, err := e.WriteArray(arr)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}
