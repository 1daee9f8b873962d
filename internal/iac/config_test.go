package iac

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStackConfig(t *testing.T) {
	path := writeConfig(t, "queue: ancas-message-queue\nbucket: ancas-message-bucket\n")

	cfg, err := LoadStackConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "ancas-message-queue", cfg.Queue)
	assert.Equal(t, "ancas-message-bucket", cfg.Bucket)
	assert.Equal(t, "ancas-message-queue.fifo", cfg.QueueName())
	assert.Equal(t, "ancas-message-queue-dlq.fifo", cfg.DeadLetterQueueName())
}

func TestLoadStackConfig_MissingFields(t *testing.T) {
	path := writeConfig(t, "queue: only-queue\n")
	_, err := LoadStackConfig(path)
	assert.Error(t, err)
}

func TestLoadStackConfig_BadYAML(t *testing.T) {
	path := writeConfig(t, "queue: [unclosed\n")
	_, err := LoadStackConfig(path)
	assert.Error(t, err)
}

func TestLoadStackConfig_MissingFile(t *testing.T) {
	_, err := LoadStackConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
