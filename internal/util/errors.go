package util

import "errors"

var (
	ErrPaperNotFound         = errors.New("paper not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrChildNotFound         = errors.New("question child not found")
	ErrUnknownQuestionType   = errors.New("unknown question type")
	ErrInvalidResponseStatus = errors.New("invalid response status")
)

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPaperNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrChildNotFound)
}
