package config

import (
	"errors"
	"fmt"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Scheduler.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}
	return nil
}

func (c *SchedulerConfig) Validate() error {
	var errs []error

	if c.MoveDuration <= 0 {
		errs = append(errs, ErrInvalidMoveDuration)
	}
	if c.ContainerWidth <= 0 {
		errs = append(errs, ErrInvalidContainerWidth)
	}
	if c.CharWidth < 0 {
		errs = append(errs, ErrInvalidCharWidth)
	}
	if c.LookaheadWindow < 0 {
		errs = append(errs, ErrInvalidLookaheadWindow)
	}

	return errors.Join(errs...)
}
