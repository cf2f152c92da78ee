package repository

import "errors"

var (
	ErrNotFound      = errors.New("task not found")
	ErrNoActiveTimer = errors.New("no active timer")
)
