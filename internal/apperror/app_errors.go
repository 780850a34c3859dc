package apperror

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrUnknownAction  = errors.New("unknown action")
	ErrUnknownAdapter = errors.New("unknown adapter")
	ErrUnknownStorage = errors.New("unknown storage")
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrInputClosed    = errors.New("input is closed")
	ErrInvalidSession = errors.New("invalid session id")
	ErrInvalidControl = errors.New("invalid control")
	ErrInvalidCell    = errors.New("invalid cell")
)
