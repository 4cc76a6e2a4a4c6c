package rate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter(t *testing.T) {
	interval := 50 * time.Millisecond
	l := NewLimiter(2, interval, time.Hour)
	defer l.Close()

	agent := "agent@realty.mx"
	assert.True(t, l.Check(agent))
	assert.True(t, l.Check(agent))
	assert.False(t, l.Check(agent), "burst exhausted")

	assert.True(t, l.Check("other@realty.mx"), "keys are independent")

	time.Sleep(interval + 20*time.Millisecond)
	assert.True(t, l.Check(agent), "refilled after one interval")
	assert.False(t, l.Check(agent))
}

func TestLimiterSweep(t *testing.T) {
	l := NewLimiter(1, time.Hour, time.Minute)
	defer l.Close()

	agent := "agent@realty.mx"
	assert.True(t, l.Check(agent))
	assert.False(t, l.Check(agent))

	l.sweep(time.Now().Add(2 * time.Minute))
	assert.True(t, l.Check(agent), "expired bucket starts full")
}
