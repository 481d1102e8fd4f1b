package service

import (
	"fmt"

	"github.com/kotoba-lab/mogi/internal/model"
)

// SnapshotBuilder turns per-section question pools into the immutable
// ordering an attempt will use for its whole lifetime.
type SnapshotBuilder interface {
	Build(level model.Level, seed string, pools map[model.SectionType][]uint) (model.QuestionSnapshot, error)
}

type snapshotBuilder struct{}

func NewSnapshotBuilder() SnapshotBuilder {
	return &snapshotBuilder{}
}

// Build shuffles each section's pool independently with the one shared
// seed, which ties the whole snapshot to a single audit value without
// letting sections influence each other's ordering. Pools must already be
// trimmed to the level's required count by the caller; an empty pool for
// an expected section is a caller error.
func (b *snapshotBuilder) Build(level model.Level, seed string, pools map[model.SectionType][]uint) (model.QuestionSnapshot, error) {
	if !level.Valid() {
		return model.QuestionSnapshot{}, fmt.Errorf("invalid level %q", level)
	}
	if seed == "" {
		return model.QuestionSnapshot{}, fmt.Errorf("empty shuffle seed")
	}

	sections := make(map[model.SectionType][]uint, len(model.AllSectionTypes()))
	for _, section := range model.AllSectionTypes() {
		pool := pools[section]
		if len(pool) == 0 {
			return model.QuestionSnapshot{}, fmt.Errorf("empty question pool for section %s", section)
		}
		// Section identity is mixed into the seed so equal pools in two
		// sections would still order differently.
		sections[section] = ShuffleQuestionIDs(pool, seed+":"+section.String())
	}

	return model.QuestionSnapshot{
		Level:    level,
		Seed:     seed,
		Sections: sections,
	}, nil
}
