package service

import (
	"testing"
)

func TestShuffleQuestionIDsDeterministic(t *testing.T) {
	ids := []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	first := ShuffleQuestionIDs(ids, "seed-a")
	second := ShuffleQuestionIDs(ids, "seed-a")

	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different order at index %d: %v vs %v", i, first, second)
		}
	}
}

func TestShuffleQuestionIDsIsPermutation(t *testing.T) {
	ids := []uint{11, 22, 33, 44, 55, 66, 77}

	out := ShuffleQuestionIDs(ids, "permutation-check")

	if len(out) != len(ids) {
		t.Fatalf("expected %d ids, got %d", len(ids), len(out))
	}
	seen := make(map[uint]int, len(ids))
	for _, id := range out {
		seen[id]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Errorf("id %d appears %d times in output %v", id, seen[id], out)
		}
	}
}

func TestShuffleQuestionIDsDistinctSeeds(t *testing.T) {
	ids := make([]uint, 50)
	for i := range ids {
		ids[i] = uint(i + 1)
	}

	a := ShuffleQuestionIDs(ids, "seed-a")
	b := ShuffleQuestionIDs(ids, "seed-b")

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical order for 50 ids")
	}
}

func TestShuffleQuestionIDsDoesNotMutateInput(t *testing.T) {
	ids := []uint{1, 2, 3, 4, 5, 6, 7, 8}
	original := append([]uint(nil), ids...)

	ShuffleQuestionIDs(ids, "mutation-check")

	for i := range ids {
		if ids[i] != original[i] {
			t.Fatalf("input slice mutated at index %d: %v", i, ids)
		}
	}
}

func TestShuffleQuestionIDsEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		ids  []uint
	}{
		{"empty", []uint{}},
		{"nil", nil},
		{"single", []uint{42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ShuffleQuestionIDs(tt.ids, "edge")
			if len(out) != len(tt.ids) {
				t.Fatalf("expected %d ids, got %d", len(tt.ids), len(out))
			}
			for i := range tt.ids {
				if out[i] != tt.ids[i] {
					t.Fatalf("short input reordered: %v", out)
				}
			}
		})
	}
}

func TestGenerateSeedUnique(t *testing.T) {
	a := GenerateSeed()
	b := GenerateSeed()
	if a == "" || b == "" {
		t.Fatal("GenerateSeed returned empty seed")
	}
	if a == b {
		t.Fatalf("two generated seeds collided: %s", a)
	}
}
