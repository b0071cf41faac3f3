package usecase

import "time"

const (
	defaultTTL         = 5 * time.Minute
	defaultCooldown    = time.Minute
	defaultMaxAttempts = 3
	defaultMaxResends  = 3
)

type otpPolicy struct {
	ttl              time.Duration
	cooldown         time.Duration
	maxAttempts      int
	maxResends       int
	blockImmediately bool
}

// policy reads the limits on every call so a config reload applies to the
// next request.
func (s *Usecase) policy() otpPolicy {
	p := otpPolicy{
		ttl:              s.cfg.GetMinute("modules.login.otp.ttl_minutes"),
		cooldown:         s.cfg.GetMinute("modules.login.otp.cooldown_minutes"),
		maxAttempts:      s.cfg.GetInt("modules.login.otp.max_attempts"),
		maxResends:       s.cfg.GetInt("modules.login.otp.max_resends"),
		blockImmediately: s.cfg.GetBool("modules.login.otp.block_immediately"),
	}

	if p.ttl <= 0 {
		p.ttl = defaultTTL
	}
	if p.cooldown <= 0 {
		p.cooldown = defaultCooldown
	}
	if p.maxAttempts <= 0 {
		p.maxAttempts = defaultMaxAttempts
	}
	if p.maxResends <= 0 {
		p.maxResends = defaultMaxResends
	}

	return p
}
