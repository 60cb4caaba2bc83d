// Package maturity scores a compliance self-assessment into per-category and
// overall percentages and a letter grade.
package maturity

import (
	"fmt"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

// Rating is an answer on the 0..3 scale. RatingNotApplicable excludes the
// question from scoring instead of counting it as the worst answer.
type Rating int

const (
	RatingNotApplicable Rating = 0
	RatingNotInPlace    Rating = 1
	RatingPartial       Rating = 2
	RatingInPlace       Rating = 3

	// MaxRating is the best possible rating of a single question
	MaxRating = RatingInPlace
)

// Answers maps question ids to ratings; missing questions count as not applicable
type Answers map[QuestionID]Rating

// CategoryScore is the result of one category
type CategoryScore struct {
	ID         CategoryID `json:"id"`
	Title      string     `json:"title"`
	Score      int        `json:"score"`
	MaxScore   int        `json:"maxScore"`
	Percentage int        `json:"percentage"`
	// Applicable is false when every question was rated not applicable; such
	// categories are left out of the overall percentage
	Applicable bool `json:"applicable"`
}

// Assessment is the scored questionnaire
type Assessment struct {
	Categories        []CategoryScore `json:"categoryScores"`
	OverallPercentage int             `json:"overallPercentage"`
	Grade             Grade           `json:"grade"`
}

// Level maps the grade onto the maturity level used for cost discounts
func (a Assessment) Level() types.MaturityLevel {
	switch a.Grade.Letter {
	case "A", "B":
		return types.MaturityAdvanced
	case "C", "D":
		return types.MaturityBasic
	default:
		return types.MaturityNone
	}
}

// Scorer scores answers against a fixed questionnaire
type Scorer struct {
	categories []Category
	questions  map[QuestionID]CategoryID
}

// NewScorer builds a scorer for the given categories. Every category needs at
// least one question and question ids must be unique across categories.
func NewScorer(categories []Category) (*Scorer, error) {
	s := &Scorer{
		categories: make([]Category, 0, len(categories)),
		questions:  map[QuestionID]CategoryID{},
	}

	for _, c := range categories {
		if len(c.Questions) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyCategory, c.ID)
		}

		for _, q := range c.Questions {
			if _, exists := s.questions[q.ID]; exists {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestion, q.ID)
			}

			s.questions[q.ID] = c.ID
		}

		c.Questions = append([]Question(nil), c.Questions...)
		s.categories = append(s.categories, c)
	}

	return s, nil
}

var defaultScorer *Scorer

func init() {
	s, err := NewScorer(DefaultCategories)
	if err != nil {
		panic(err)
	}

	defaultScorer = s
}

// Default returns the scorer for DefaultCategories
func Default() *Scorer {
	return defaultScorer
}

// Categories returns the questionnaire of the scorer
func (s *Scorer) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)

	return out
}

// ParseAnswers validates raw answers from the request boundary
func (s *Scorer) ParseAnswers(raw map[string]int) (Answers, error) {
	answers := make(Answers, len(raw))

	for id, value := range raw {
		qid := QuestionID(id)
		if _, ok := s.questions[qid]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
		}

		if value < int(RatingNotApplicable) || value > int(MaxRating) {
			return nil, fmt.Errorf("%w: %s=%d", ErrRatingOutOfRange, id, value)
		}

		answers[qid] = Rating(value)
	}

	return answers, nil
}

// ParseAnswers validates raw answers against the default questionnaire
func ParseAnswers(raw map[string]int) (Answers, error) {
	return defaultScorer.ParseAnswers(raw)
}

// Score computes the assessment. Ratings outside 0..3 and unknown question ids
// are ignored.
func (s *Scorer) Score(answers Answers) Assessment {
	result := Assessment{Categories: make([]CategoryScore, 0, len(s.categories))}

	var totalScore, totalMax int

	for _, c := range s.categories {
		cs := CategoryScore{ID: c.ID, Title: c.Title}

		for _, q := range c.Questions {
			rating := answers[q.ID]
			if rating <= RatingNotApplicable || rating > MaxRating {
				continue
			}

			cs.Score += int(rating)
			cs.MaxScore += int(MaxRating)
		}

		if cs.MaxScore > 0 {
			cs.Applicable = true
			cs.Percentage = percent(cs.Score, cs.MaxScore)
			totalScore += cs.Score
			totalMax += cs.MaxScore
		}

		result.Categories = append(result.Categories, cs)
	}

	if totalMax > 0 {
		result.OverallPercentage = percent(totalScore, totalMax)
	}

	result.Grade = GradeFor(result.OverallPercentage)

	return result
}

// Score computes the assessment against the default questionnaire
func Score(answers Answers) Assessment {
	return defaultScorer.Score(answers)
}

// percent returns round(100*part/whole) with halves rounded up; whole must be positive
func percent(part, whole int) int {
	return (200*part + whole) / (2 * whole)
}
