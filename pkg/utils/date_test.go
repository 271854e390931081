package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	ts, ok := ParseTimestamp("2015-02-24 11:35:52 -0800")
	require.True(t, ok)
	assert.Equal(t, 2015, ts.Year())
	assert.Equal(t, time.February, ts.Month())
	_, offset := ts.Zone()
	assert.Equal(t, -8*3600, offset)

	ts, ok = ParseTimestamp("2015-02-24T11:35:52Z")
	require.True(t, ok)
	assert.Equal(t, 11, ts.Hour())

	_, ok = ParseTimestamp("")
	assert.False(t, ok)

	_, ok = ParseTimestamp("yesterday")
	assert.False(t, ok)
}

func TestGoSafeRecoversPanic(t *testing.T) {
	done := make(chan struct{})
	GoSafe(func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}
