package engine

import "errors"

// Every failure in this package is a rejected operation, never a crash.
// The session is left untouched when any of these is returned.
var (
	ErrInvalidTransition   = errors.New("operation not valid in current session state")
	ErrEmptyResponse       = errors.New("response text must not be empty")
	ErrEmptyQuestionList   = errors.New("question list must not be empty")
	ErrSessionNotCompleted = errors.New("session is not completed")
	ErrRecordingActive     = errors.New("text edits are disabled while recording")
)
