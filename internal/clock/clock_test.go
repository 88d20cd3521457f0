package clock_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestStub_ResetIsExact(t *testing.T) {
	t.Parallel()
	c := clock.NewStub(0)

	c.Reset(12345)
	for i := 0; i < 5; i++ {
		assert.Equal(t, int64(12345), c.Now())
	}

	c.Reset(1_700_000_000_123)
	assert.Equal(t, int64(1_700_000_000_123), c.Now())
	assert.Equal(t, int64(1_700_000_000_123), c.Now())
}

func TestStub_Advance(t *testing.T) {
	t.Parallel()
	c := clock.NewStub(1000)

	c.Advance(2500 * time.Millisecond)
	assert.Equal(t, int64(3500), c.Now())
}

func TestStub_InstancesAreIndependent(t *testing.T) {
	t.Parallel()
	a := clock.NewStub(1)
	b := clock.NewStub(2)

	a.Reset(100)
	assert.Equal(t, int64(100), a.Now())
	assert.Equal(t, int64(2), b.Now())
}

func TestReal_TracksWallClock(t *testing.T) {
	t.Parallel()
	before := time.Now().UnixMilli()
	now := clock.Real{}.Now()
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, now, before)
	assert.LessOrEqual(t, now, after)
}

func TestDeltaSeconds(t *testing.T) {
	t.Parallel()
	c := clock.NewStub(10_999)

	assert.Equal(t, int64(10), clock.DeltaSeconds(c, 0))
	assert.Equal(t, int64(0), clock.DeltaSeconds(c, 10_500))
	assert.Equal(t, int64(0), clock.DeltaSeconds(c, 20_000), "future timestamps clamp to zero")
}

func TestOrDefault(t *testing.T) {
	t.Parallel()
	assert.Equal(t, clock.Default, clock.OrDefault(nil))

	stub := clock.NewStub(5)
	assert.Same(t, stub, clock.OrDefault(stub))
}
