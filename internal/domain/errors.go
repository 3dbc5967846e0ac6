package domain

import "errors"

var (
	// ErrEmptyCategory is returned when a category has no stored questions.
	ErrEmptyCategory = errors.New("no questions found for category")
	// ErrFetchFailure wraps backend or network faults while loading questions.
	ErrFetchFailure = errors.New("failed to fetch questions")
	// ErrPersistence wraps store failures on insert, update or delete.
	ErrPersistence = errors.New("failed to persist questions")
	// ErrValidation marks input rejected before any store call.
	ErrValidation = errors.New("validation failed")
	// ErrNothingToExport is returned when an export selection is empty.
	ErrNothingToExport = errors.New("no questions to export")
	// ErrSessionNotFound is returned when a quiz session does not exist or was abandoned.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionNotFinished is returned when a result is requested before the session finished.
	ErrSessionNotFinished = errors.New("quiz session not finished")
	// ErrQuestionNotFound indicates a question ID unknown to the store.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrUnauthorized is returned for bad admin credentials or tokens.
	ErrUnauthorized = errors.New("unauthorized")
)
