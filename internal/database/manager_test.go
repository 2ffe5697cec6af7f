package database

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStat(t *testing.T) {
	info := "# Stats\r\nkeyspace_hits:42\r\nkeyspace_misses:7\r\n"

	assert.Equal(t, "42", extractStat(info, "keyspace_hits"))
	assert.Equal(t, "7", extractStat(info, "keyspace_misses"))
	assert.Equal(t, "0", extractStat(info, "used_memory"))
}

func TestNewManager_NothingConfigured(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m, err := NewManager(&Config{}, logger)
	require.NoError(t, err)
	assert.Nil(t, m.DB)
	assert.Nil(t, m.Redis)
	assert.Error(t, m.Migrate())
	assert.NoError(t, m.Close())
}

func TestNewManager_InvalidRedisURL(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := NewManager(&Config{RedisURL: "not a url"}, logger)
	assert.Error(t, err)
}
