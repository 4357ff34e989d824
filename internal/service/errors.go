package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrSecretKeyIsEmpty      = errors.New("secret key is empty")
	ErrNoSessionStorage      = errors.New("sessions module is installed but no session storage is configured")

	ErrLoadingSession  = errors.New("error loading session")
	ErrSavingSession   = errors.New("error saving session")
	ErrDeletingSession = errors.New("error deleting session")
	ErrCleaningUp      = errors.New("error deleting expired sessions")
)
