package lib

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPingSummaryCacheWithoutServer(t *testing.T) {
	os.Unsetenv("REDIS_HOST")
	NewRedisClient(nil)

	assert.Nil(t, GetRedisClient())
	assert.NotPanics(t, PingSummaryCache)
}
