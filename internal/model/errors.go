package model

import "errors"

// Common errors used across the application
var (
	// Reconciliation precondition errors
	ErrNoCredential     = errors.New("credential is empty")
	ErrNothingToResolve = errors.New("no players with unresolved discord ids")

	// Remote identity service errors
	ErrAuthInvalid = errors.New("authentication rejected by identity service")

	// Sync errors
	ErrSyncInProgress = errors.New("full sync already in progress")
)
