package fingerprint_test

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/fingerprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compositeKey = "d404b3e8b1880f773854f47235bdd964-8178fbd4-0e92-46cd-aac6-0dec2b58e5df"

var lowerHex = regexp.MustCompile(`^[0-9a-f]+$`)

func TestCalc_KnownVectors(t *testing.T) {
	t.Run("sha1", func(t *testing.T) {
		assert.Equal(t, "0066265d53fd2a9e46c73abddb4393ed25b94c05", fingerprint.SHA1.Calc(compositeKey))
	})

	t.Run("sha256", func(t *testing.T) {
		assert.Equal(t,
			"0bc177ab1ee9c7433e7649b185ae1b8921971a34f17e284bdc5835cb39499ead",
			fingerprint.SHA256.Calc(compositeKey),
		)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", fingerprint.SHA1.Calc(""))
		assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", fingerprint.SHA256.Calc(""))
	})

	t.Run("non-ascii input", func(t *testing.T) {
		assert.Equal(t, "e3165be081665fbe321cc334c71a8409b312e692", fingerprint.SHA1.Calc("ünïcødé"))
		assert.Equal(t, "5713bed303ece8e42dd4838ae3d04fcd246c7ceb4468bdf39aa433fafdccff77", fingerprint.SHA256.Calc("ünïcødé"))
	})
}

func TestCalc_FixedLengthLowercaseHex(t *testing.T) {
	inputs := []string{"", "a", compositeKey, strings.Repeat("x", 10_000), "日本語のテキスト"}

	for _, h := range []fingerprint.Hasher{fingerprint.SHA1, fingerprint.SHA256} {
		for _, in := range inputs {
			out := h.Calc(in)
			assert.Len(t, out, h.Size(), "%s(%q)", h.Name(), in)
			assert.Regexp(t, lowerHex, out)
		}
	}
	assert.Equal(t, 40, fingerprint.SHA1.Size())
	assert.Equal(t, 64, fingerprint.SHA256.Size())
}

func TestCalc_Deterministic(t *testing.T) {
	for _, h := range []fingerprint.Hasher{fingerprint.SHA1, fingerprint.SHA256} {
		first := h.Calc(compositeKey)

		var wg sync.WaitGroup
		results := make([]string, 32)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = h.Calc(compositeKey)
			}(i)
		}
		wg.Wait()

		for _, r := range results {
			assert.Equal(t, first, r)
		}
	}
}

func TestByName(t *testing.T) {
	h, err := fingerprint.ByName("SHA256")
	require.NoError(t, err)
	assert.Equal(t, "sha256", h.Name())

	h, err = fingerprint.ByName("sha1")
	require.NoError(t, err)
	assert.Equal(t, "sha1", h.Name())

	_, err = fingerprint.ByName("md5")
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	got := fingerprint.Key(fingerprint.SHA1, "d404b3e8b1880f773854f47235bdd964", "8178fbd4-0e92-46cd-aac6-0dec2b58e5df")
	assert.Equal(t, "0066265d53fd2a9e46c73abddb4393ed25b94c05", got)
}
