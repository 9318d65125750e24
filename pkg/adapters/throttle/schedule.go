package throttle

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/bodyflow/pkg/common/validation"
)

// RateRule binds a cron expression to a target byte rate. When the
// expression fires, the rate takes effect and stays in force until
// another rule fires.
type RateRule struct {
	// Spec is a standard cron expression, e.g. "0 22 * * *" or
	// "@hourly".
	Spec string

	// BytesPerSecond is the rate applied when the rule fires.
	BytesPerSecond float64
}

// Scheduler adjusts a throttled body's rate on a time-of-day schedule,
// e.g. to open up bandwidth during off-peak windows and clamp it back
// down during business hours.
type Scheduler struct {
	cron *cron.Cron
	body *Body
}

// NewScheduler validates the rules and binds them to b. The scheduler
// does not fire until Start is called.
func NewScheduler(b *Body, rules []RateRule) (*Scheduler, error) {
	c := cron.New()
	for _, rule := range rules {
		if err := validation.ValidatePositiveFloat("throttle", "rate", rule.BytesPerSecond); err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Spec, err)
		}
		rate := rule.BytesPerSecond
		if _, err := c.AddFunc(rule.Spec, func() { b.SetRate(rate) }); err != nil {
			return nil, fmt.Errorf("throttle: rule %q: %w", rule.Spec, err)
		}
	}
	return &Scheduler{cron: c, body: b}, nil
}

// Start begins firing rules on their cron schedule.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the schedule. Rules already applied stay in force.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
