// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package intent

import (
	"log/slog"
	"testing"

	"github.com/MindloftHQ/mindloft/services/journal/config"
)

func newTestClassifier(t *testing.T) *ModeClassifier {
	t.Helper()
	lexicon, err := config.LoadLexicon()
	if err != nil {
		t.Fatalf("LoadLexicon() error = %v", err)
	}
	classifier, err := NewModeClassifier(lexicon, 2, 3, slog.Default())
	if err != nil {
		t.Fatalf("NewModeClassifier() error = %v", err)
	}
	return classifier
}

func TestClassify(t *testing.T) {
	classifier := newTestClassifier(t)

	tests := []struct {
		name string
		text string
		want Category
	}{
		{
			name: "dream entry scores vision",
			text: "I dreamed about flying over mountains",
			want: CategoryVision,
		},
		{
			name: "idea entry scores build",
			text: "I have an idea for an app",
			want: CategoryBuild,
		},
		{
			name: "startup entry scores build",
			text: "I need to build a startup app",
			want: CategoryBuild,
		},
		{
			name: "activity entry scores log",
			text: "went to the gym today",
			want: CategoryLog,
		},
		{
			name: "reflection scores think",
			text: "wondering why I feel so anxious",
			want: CategoryThink,
		},
		{
			name: "no keywords defaults to think",
			text: "lorem ipsum dolor sit amet",
			want: CategoryThink,
		},
		{
			name: "single weak keyword is below threshold",
			text: "we should make something",
			want: CategoryThink,
		},
		{
			name: "too short defaults to think",
			text: "ok",
			want: CategoryThink,
		},
		{
			name: "empty defaults to think",
			text: "",
			want: CategoryThink,
		},
		{
			name: "matching is case insensitive",
			text: "DREAMED of FLYING again",
			want: CategoryVision,
		},
		{
			name: "repeated keyword counts every occurrence",
			text: "gym gym gym",
			want: CategoryLog,
		},
		{
			name: "keyword inside a longer word does not match",
			text: "the appendix mentions gymnasiums",
			want: CategoryThink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.text)
			if got.Category != tt.want {
				t.Errorf("Classify(%q) = %v (scores %v), want %v",
					tt.text, got.Category, got.Scores, tt.want)
			}
		})
	}
}

func TestClassifyScores(t *testing.T) {
	classifier := newTestClassifier(t)

	// dreamed(3) + flying(1) = 4 for vision, nothing else matches.
	got := classifier.Classify("I dreamed about flying over mountains")
	if got.Scores[CategoryVision] != 4 {
		t.Errorf("vision score = %d, want 4", got.Scores[CategoryVision])
	}
	for _, category := range []Category{CategoryBuild, CategoryLog, CategoryThink} {
		if got.Scores[category] != 0 {
			t.Errorf("%s score = %d, want 0", category, got.Scores[category])
		}
	}

	// Scores carries an entry for every category even when nothing matched.
	got = classifier.Classify("ok")
	if len(got.Scores) != len(Categories()) {
		t.Errorf("Scores has %d entries, want %d", len(got.Scores), len(Categories()))
	}
}

func TestClassifyTieBreak(t *testing.T) {
	classifier := newTestClassifier(t)

	// lucid (vision, 2) vs project (build, 2): an exact tie at the threshold
	// must go to the category declared first.
	got := classifier.Classify("lucid project")
	if got.Scores[CategoryVision] != got.Scores[CategoryBuild] {
		t.Fatalf("test input is not a tie: vision=%d build=%d",
			got.Scores[CategoryVision], got.Scores[CategoryBuild])
	}
	if got.Category != CategoryVision {
		t.Errorf("tie broke to %v, want %v", got.Category, CategoryVision)
	}
}

func TestNewModeClassifierValidation(t *testing.T) {
	t.Run("unknown category is rejected", func(t *testing.T) {
		lexicon := config.Lexicon{
			"vision": {"dream": 3},
			"sports": {"football": 2},
		}
		if _, err := NewModeClassifier(lexicon, 2, 3, slog.Default()); err == nil {
			t.Error("NewModeClassifier() accepted unknown category, want error")
		}
	})

	t.Run("legacy chat table merges into think", func(t *testing.T) {
		lexicon := config.Lexicon{
			"chat": {"zen": 3},
		}
		classifier, err := NewModeClassifier(lexicon, 2, 3, slog.Default())
		if err != nil {
			t.Fatalf("NewModeClassifier() error = %v", err)
		}
		got := classifier.Classify("zen and calm")
		if got.Category != CategoryThink {
			t.Errorf("Classify() = %v, want %v", got.Category, CategoryThink)
		}
		if got.Scores[CategoryThink] != 3 {
			t.Errorf("think score = %d, want 3", got.Scores[CategoryThink])
		}
	})
}

func TestClassifyIdempotent(t *testing.T) {
	classifier := newTestClassifier(t)

	text := "went to the gym today and finished a workout"
	first := classifier.Classify(text)
	second := classifier.Classify(text)
	if first.Category != second.Category {
		t.Errorf("repeated Classify disagrees: %v vs %v", first.Category, second.Category)
	}
	for category, score := range first.Scores {
		if second.Scores[category] != score {
			t.Errorf("score for %s drifted: %d vs %d", category, score, second.Scores[category])
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   Category
		want Category
	}{
		{CategoryVision, CategoryVision},
		{CategoryBuild, CategoryBuild},
		{CategoryLog, CategoryLog},
		{CategoryThink, CategoryThink},
		{Category("chat"), CategoryThink},
		{Category("bogus"), CategoryThink},
		{Category(""), CategoryThink},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
