package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning means TriggerNow was called before Start
	// or after Stop.
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrInvalidConfig means the scheduler settings cannot work, for
	// example a zero interval with the scheduler enabled.
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)
