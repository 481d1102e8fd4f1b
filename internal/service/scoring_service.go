package service

import (
	"fmt"
	"math"

	"github.com/kotoba-lab/mogi/internal/model"
)

// NormalizedScoreMax is the fixed per-section scale every raw score is
// rescaled onto, so sections with different question counts stay
// comparable. TotalScoreMax is the three sections combined.
const (
	NormalizedScoreMax = 60
	TotalScoreMax      = 3 * NormalizedScoreMax
)

// SectionScoreResult is the outcome of scoring one section.
type SectionScoreResult struct {
	Section         model.SectionType
	RawScore        int
	RawMaxScore     int
	NormalizedScore int
	Accuracy        float64
	ReferenceGrade  string
	Passed          bool
}

// PassFailResult is the whole-test verdict.
type PassFailResult struct {
	Passed         bool
	SectionsPassed map[model.SectionType]bool
}

// ScoringEngine computes section and total scores. All methods are pure.
type ScoringEngine interface {
	ScoreSection(level model.Level, section model.SectionType, answers []model.UserAnswer, key map[uint]string) (SectionScoreResult, error)
	ScoreTotal(results []SectionScoreResult) int
	EvaluatePassFail(level model.Level, results []SectionScoreResult, totalScore int) (PassFailResult, error)
}

type scoringEngine struct{}

func NewScoringEngine() ScoringEngine {
	return &scoringEngine{}
}

// ScoreSection grades the answered questions of one section against the
// correct-answer key. RawMaxScore is the number of answered questions, not
// the pool or snapshot size; a section with no answers scores 0 and fails
// without dividing by zero.
func (e *scoringEngine) ScoreSection(level model.Level, section model.SectionType, answers []model.UserAnswer, key map[uint]string) (SectionScoreResult, error) {
	threshold, err := SectionPassThreshold(level, section)
	if err != nil {
		return SectionScoreResult{}, err
	}

	result := SectionScoreResult{Section: section}
	for _, answer := range answers {
		correct, ok := key[answer.QuestionID]
		if !ok {
			return SectionScoreResult{}, fmt.Errorf("no answer key for question %d in section %s", answer.QuestionID, section)
		}
		result.RawMaxScore++
		if answer.SelectedChoice == correct {
			result.RawScore++
		}
	}

	if result.RawMaxScore == 0 {
		result.ReferenceGrade = "C"
		return result, nil
	}

	result.Accuracy = float64(result.RawScore) / float64(result.RawMaxScore)
	result.NormalizedScore = clampNormalized(int(math.Round(result.Accuracy * NormalizedScoreMax)))
	result.ReferenceGrade = referenceGrade(result.Accuracy)
	result.Passed = result.NormalizedScore >= threshold
	return result, nil
}

// ScoreTotal sums the normalized section scores onto the 0-180 scale.
func (e *scoringEngine) ScoreTotal(results []SectionScoreResult) int {
	total := 0
	for _, r := range results {
		total += r.NormalizedScore
	}
	if total > TotalScoreMax {
		total = TotalScoreMax
	}
	return total
}

// EvaluatePassFail applies the conjunctive rule: the candidate passes only
// when the total clears the level threshold AND every individual section
// passed. Clearing the total with one failed section is still a fail.
func (e *scoringEngine) EvaluatePassFail(level model.Level, results []SectionScoreResult, totalScore int) (PassFailResult, error) {
	totalThreshold, err := TotalPassThreshold(level)
	if err != nil {
		return PassFailResult{}, err
	}

	verdict := PassFailResult{
		Passed:         totalScore >= totalThreshold,
		SectionsPassed: make(map[model.SectionType]bool, len(results)),
	}
	for _, r := range results {
		verdict.SectionsPassed[r.Section] = r.Passed
		if !r.Passed {
			verdict.Passed = false
		}
	}
	return verdict, nil
}

// referenceGrade bands accuracy: A at 80%+, B at 60%+, else C. Lower
// bounds are inclusive.
func referenceGrade(accuracy float64) string {
	switch {
	case accuracy >= 0.8:
		return "A"
	case accuracy >= 0.6:
		return "B"
	default:
		return "C"
	}
}

func clampNormalized(score int) int {
	if score < 0 {
		return 0
	}
	if score > NormalizedScoreMax {
		return NormalizedScoreMax
	}
	return score
}
