package db

import "errors"

// ErrInvalidOutcome is returned when an outcome is missing its source or stage.
var ErrInvalidOutcome = errors.New("outcome requires a source and a stage")
