package models

import "fmt"

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string {
	return e.Message
}

type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string {
	return e.Message
}

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	return e.Message
}

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string {
	return e.Message
}

type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string {
	return e.Message
}

// ErrorPartialWrite reports a cross-store operation that completed some of
// its steps before failing. Stage names which step failed; everything before
// it has committed and stays committed. The caller retries the failed stage,
// nothing gets rolled back.
type ErrorPartialWrite struct {
	Stage string
	Err   error
}

func (e ErrorPartialWrite) Error() string {
	return fmt.Sprintf("partial write: stage %q failed: %v", e.Stage, e.Err)
}

func (e ErrorPartialWrite) Unwrap() error {
	return e.Err
}
