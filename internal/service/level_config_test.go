package service

import (
	"testing"

	"github.com/kotoba-lab/mogi/internal/model"
)

func TestLevelConfigCoversEveryLevelAndSection(t *testing.T) {
	for _, level := range model.AllLevels() {
		if _, err := TotalPassThreshold(level); err != nil {
			t.Errorf("TotalPassThreshold(%s) returned error: %v", level, err)
		}
		for _, section := range model.AllSectionTypes() {
			if _, err := RequiredQuestionCount(level, section); err != nil {
				t.Errorf("RequiredQuestionCount(%s, %s) returned error: %v", level, section, err)
			}
			threshold, err := SectionPassThreshold(level, section)
			if err != nil {
				t.Errorf("SectionPassThreshold(%s, %s) returned error: %v", level, section, err)
				continue
			}
			if threshold != 19 {
				t.Errorf("SectionPassThreshold(%s, %s) = %d, want 19", level, section, threshold)
			}
		}
	}
}

func TestTotalPassThresholdValues(t *testing.T) {
	tests := []struct {
		level model.Level
		want  int
	}{
		{model.LevelN5, 80},
		{model.LevelN4, 90},
		{model.LevelN3, 95},
		{model.LevelN2, 90},
		{model.LevelN1, 100},
	}
	for _, tt := range tests {
		got, err := TotalPassThreshold(tt.level)
		if err != nil {
			t.Errorf("TotalPassThreshold(%s) returned error: %v", tt.level, err)
			continue
		}
		if got != tt.want {
			t.Errorf("TotalPassThreshold(%s) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelConfigUnknownLevel(t *testing.T) {
	unknown := model.Level("N0")
	if _, err := RequiredQuestionCount(unknown, model.SectionVocabulary); err == nil {
		t.Error("RequiredQuestionCount accepted unknown level")
	}
	if _, err := SectionPassThreshold(unknown, model.SectionVocabulary); err == nil {
		t.Error("SectionPassThreshold accepted unknown level")
	}
	if _, err := TotalPassThreshold(unknown); err == nil {
		t.Error("TotalPassThreshold accepted unknown level")
	}
}
