package punch

import "errors"

var (
	ErrInvalidEventType = errors.New("event type must be CheckIn or CheckOut")
	ErrPunchNotFound    = errors.New("punch event not found")
)
