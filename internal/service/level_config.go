package service

import (
	"fmt"

	"github.com/kotoba-lab/mogi/internal/model"
)

// Per-level exam configuration: how many questions each section draws from
// the pool, the 0-60 pass threshold per section, and the 0-180 pass
// threshold for the whole test. Section thresholds follow the published
// JLPT rule of 19/60 at every level; total thresholds differ per level.
// Kept as explicit tables rather than constants so a deployment can be
// audited against the official figures level by level.

var requiredQuestionCounts = map[model.Level]map[model.SectionType]int{
	model.LevelN5: {model.SectionVocabulary: 20, model.SectionGrammarReading: 20, model.SectionListening: 15},
	model.LevelN4: {model.SectionVocabulary: 25, model.SectionGrammarReading: 25, model.SectionListening: 20},
	model.LevelN3: {model.SectionVocabulary: 30, model.SectionGrammarReading: 30, model.SectionListening: 25},
	model.LevelN2: {model.SectionVocabulary: 35, model.SectionGrammarReading: 35, model.SectionListening: 30},
	model.LevelN1: {model.SectionVocabulary: 35, model.SectionGrammarReading: 40, model.SectionListening: 35},
}

var sectionPassThresholds = map[model.Level]map[model.SectionType]int{
	model.LevelN5: {model.SectionVocabulary: 19, model.SectionGrammarReading: 19, model.SectionListening: 19},
	model.LevelN4: {model.SectionVocabulary: 19, model.SectionGrammarReading: 19, model.SectionListening: 19},
	model.LevelN3: {model.SectionVocabulary: 19, model.SectionGrammarReading: 19, model.SectionListening: 19},
	model.LevelN2: {model.SectionVocabulary: 19, model.SectionGrammarReading: 19, model.SectionListening: 19},
	model.LevelN1: {model.SectionVocabulary: 19, model.SectionGrammarReading: 19, model.SectionListening: 19},
}

var totalPassThresholds = map[model.Level]int{
	model.LevelN5: 80,
	model.LevelN4: 90,
	model.LevelN3: 95,
	model.LevelN2: 90,
	model.LevelN1: 100,
}

// RequiredQuestionCount is the number of questions the snapshot assigns to
// a section at the given level.
func RequiredQuestionCount(level model.Level, section model.SectionType) (int, error) {
	counts, ok := requiredQuestionCounts[level]
	if !ok {
		return 0, fmt.Errorf("no question counts configured for level %s", level)
	}
	count, ok := counts[section]
	if !ok {
		return 0, fmt.Errorf("no question count configured for level %s section %s", level, section)
	}
	return count, nil
}

// SectionPassThreshold is the minimum normalized score (0-60) a section
// needs at the given level.
func SectionPassThreshold(level model.Level, section model.SectionType) (int, error) {
	thresholds, ok := sectionPassThresholds[level]
	if !ok {
		return 0, fmt.Errorf("no section thresholds configured for level %s", level)
	}
	threshold, ok := thresholds[section]
	if !ok {
		return 0, fmt.Errorf("no threshold configured for level %s section %s", level, section)
	}
	return threshold, nil
}

// TotalPassThreshold is the minimum total score (0-180) for the level.
func TotalPassThreshold(level model.Level) (int, error) {
	threshold, ok := totalPassThresholds[level]
	if !ok {
		return 0, fmt.Errorf("no total threshold configured for level %s", level)
	}
	return threshold, nil
}
