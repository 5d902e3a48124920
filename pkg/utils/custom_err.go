package utils

import "errors"

var (
	ErrPlanNotFound           = errors.New("travel plan not found")
	ErrTourNotFound           = errors.New("tour not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrShareLinkNotFound      = errors.New("share link not found")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrForbidden              = errors.New("forbidden")
	ErrTourSoldOut            = errors.New("tour sold out")
	ErrDatabaseError          = errors.New("database error")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected AI behavior")
)
