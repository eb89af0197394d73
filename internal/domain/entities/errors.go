package entities

import "errors"

// Domain errors
var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidJudgment = errors.New("invalid judgment")
	ErrInvalidTimes    = errors.New("meeting must end after it starts")
	ErrMissingTitle    = errors.New("meeting title is required")
)
