package billing

import "errors"

var (
	ErrPlanNotFound       = errors.New("billing: plan not found")
	ErrSubscriberNotFound = errors.New("billing: subscriber not found")
	ErrInvalidInput       = errors.New("billing: invalid input")
	ErrFailedToLoadPlans  = errors.New("billing: failed to load plans")
	ErrNoPlansConfigured  = errors.New("billing: no plans configured")
)
