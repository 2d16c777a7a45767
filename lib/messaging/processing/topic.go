package processing

import (
	"time"
)

// TopicConfig defines the configuration for a topic
type TopicConfig struct {
	QueueName          string
	MinWorkers         int
	MaxWorkers         int
	DesiredWorkers     int
	PrefetchCount      int
	ScaleUpThreshold   int
	ScaleDownThreshold int
	ScaleUpPercent     float64
	ScaleDownPercent   float64
	ScaleCheckInterval time.Duration

	ScaleCooldown         time.Duration // Minimum time between scaling decisions
	MaxWorkersPerStep     int           // Maximum workers to add/remove per scaling action
	MinWorkersPerStep     int           // Minimum workers to add/remove per scaling action
	ConsecutiveChecksUp   int           // Consecutive checks above threshold before scaling up
	ConsecutiveChecksDown int           // Consecutive checks below threshold before scaling down
}

// withDefaults fills every unset scaling parameter
func (c TopicConfig) withDefaults() TopicConfig {
	if c.MinWorkers == 0 {
		c.MinWorkers = 1
	}
	if c.MaxWorkers < c.MinWorkers {
		c.MaxWorkers = c.MinWorkers
	}
	if c.DesiredWorkers == 0 {
		c.DesiredWorkers = c.MinWorkers
	}
	if c.PrefetchCount == 0 {
		c.PrefetchCount = 1
	}
	if c.ScaleUpThreshold == 0 {
		c.ScaleUpThreshold = 100 // Scale up when queue has 100+ messages
	}
	if c.ScaleDownThreshold == 0 {
		c.ScaleDownThreshold = 10 // Scale down when queue has <10 messages
	}
	if c.ScaleUpPercent == 0 {
		c.ScaleUpPercent = 0.2
	}
	if c.ScaleDownPercent == 0 {
		c.ScaleDownPercent = 0.1
	}
	if c.ScaleCheckInterval == 0 {
		c.ScaleCheckInterval = time.Minute
	}
	if c.ScaleCooldown == 0 {
		c.ScaleCooldown = 2 * time.Minute
	}
	if c.MaxWorkersPerStep == 0 {
		c.MaxWorkersPerStep = 5
	}
	if c.MinWorkersPerStep == 0 {
		c.MinWorkersPerStep = 1
	}
	if c.ConsecutiveChecksUp == 0 {
		c.ConsecutiveChecksUp = 2
	}
	if c.ConsecutiveChecksDown == 0 {
		c.ConsecutiveChecksDown = 3 // scale-down is more conservative
	}
	return c
}

// Topic represents a queue processing topic with self-scaling
type Topic struct {
	Config    TopicConfig
	Processor ProcessorFunc
}

// NewTopic creates a new topic with the given config and processor
func NewTopic(config TopicConfig, processor ProcessorFunc) Topic {
	return Topic{
		Config:    config,
		Processor: processor,
	}
}
