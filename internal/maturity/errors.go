package maturity

import "errors"

var (
	// ErrUnknownQuestion is returned when an answer references a question that is not in the questionnaire
	ErrUnknownQuestion = errors.New("unknown maturity question")
	// ErrRatingOutOfRange is returned when a rating is outside 0..3
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 3")
	// ErrEmptyCategory is returned when a category has no questions
	ErrEmptyCategory = errors.New("category must have at least one question")
	// ErrDuplicateQuestion is returned when a question id appears twice in a questionnaire
	ErrDuplicateQuestion = errors.New("duplicate maturity question")
)
