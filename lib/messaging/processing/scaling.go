package processing

import (
	"time"
)

const (
	scaleUp   = "up"
	scaleDown = "down"
	scaleNone = "none"
)

// scaler decides worker counts from queue depth with a dead zone, a cooldown and
// a number of consecutive checks required in each direction
type scaler struct {
	config TopicConfig

	lastScaleTime         time.Time
	lastDirection         string
	consecutiveChecksUp   int
	consecutiveChecksDown int
}

func newScaler(config TopicConfig) *scaler {
	return &scaler{
		config:        config,
		lastDirection: scaleNone,
	}
}

// decide returns whether to scale, the direction, and the target worker count
func (s *scaler) decide(queueDepth, currentWorkers int, now time.Time) (bool, string, int) {
	if now.Sub(s.lastScaleTime) < s.config.ScaleCooldown {
		return false, scaleNone, currentWorkers
	}

	if queueDepth > s.config.ScaleUpThreshold && currentWorkers < s.config.MaxWorkers {
		if s.lastDirection == scaleUp {
			s.consecutiveChecksUp++
		} else {
			s.consecutiveChecksUp = 1
		}
		s.consecutiveChecksDown = 0
		s.lastDirection = scaleUp

		if s.consecutiveChecksUp < s.config.ConsecutiveChecksUp {
			return false, scaleUp, currentWorkers
		}
		step := max(s.config.MinWorkersPerStep, int(float64(currentWorkers)*s.config.ScaleUpPercent))
		step = min(step, s.config.MaxWorkersPerStep)
		return true, scaleUp, min(currentWorkers+step, s.config.MaxWorkers)
	}

	if queueDepth < s.config.ScaleDownThreshold && currentWorkers > s.config.MinWorkers {
		if s.lastDirection == scaleDown {
			s.consecutiveChecksDown++
		} else {
			s.consecutiveChecksDown = 1
		}
		s.consecutiveChecksUp = 0
		s.lastDirection = scaleDown

		if s.consecutiveChecksDown < s.config.ConsecutiveChecksDown {
			return false, scaleDown, currentWorkers
		}
		step := max(s.config.MinWorkersPerStep, int(float64(currentWorkers)*s.config.ScaleDownPercent))
		step = min(step, s.config.MaxWorkersPerStep)
		return true, scaleDown, max(currentWorkers-step, s.config.MinWorkers)
	}

	// Dead zone
	s.consecutiveChecksUp = 0
	s.consecutiveChecksDown = 0
	s.lastDirection = scaleNone
	return false, scaleNone, currentWorkers
}

// scaled records a completed scaling action and restarts the check counters
func (s *scaler) scaled(now time.Time) {
	s.lastScaleTime = now
	s.consecutiveChecksUp = 0
	s.consecutiveChecksDown = 0
	s.lastDirection = scaleNone
}
