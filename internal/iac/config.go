// Package iac holds configuration for the provisioning program. Resource
// names come from application.yml so the deploy-time stack and the runtime
// configuration agree on the physical queue and bucket names.
package iac

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StackConfig names the resources the stack provisions.
type StackConfig struct {
	Queue  string `yaml:"queue"`
	Bucket string `yaml:"bucket"`
}

// LoadStackConfig reads and validates the YAML stack configuration at path.
func LoadStackConfig(path string) (*StackConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stack config: %w", err)
	}
	var cfg StackConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse stack config %s: %w", path, err)
	}
	if cfg.Queue == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("stack config %s: queue and bucket are required", path)
	}
	return &cfg, nil
}

// QueueName returns the FIFO queue name for the main ingestion queue.
func (c *StackConfig) QueueName() string {
	return c.Queue + ".fifo"
}

// DeadLetterQueueName returns the FIFO queue name for dead-lettered messages.
func (c *StackConfig) DeadLetterQueueName() string {
	return c.Queue + "-dlq.fifo"
}
