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

import "testing"

func TestMatchTask(t *testing.T) {
	tasks := []Task{
		{ID: "1", Content: "Go to the gym", Status: StatusTodo},
		{ID: "2", Content: "Buy gym shoes", Status: StatusTodo},
		{ID: "3", Content: "Call the bank", Status: StatusInProgress},
		{ID: "4", Content: "Gym membership renewal", Status: StatusDone},
	}

	tests := []struct {
		name   string
		query  string
		wantID string // "" means nil
	}{
		{"first match in caller order", "gym", "1"},
		{"case insensitive query", "GYM", "1"},
		{"case insensitive content", "call", "3"},
		{"in progress tasks are matchable", "bank", "3"},
		{"whitespace trimmed", "  gym  ", "1"},
		{"no match", "dentist", ""},
		{"empty query", "", ""},
		{"whitespace query", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchTask(tt.query, tasks)
			if tt.wantID == "" {
				if got != nil {
					t.Errorf("MatchTask(%q) = %+v, want nil", tt.query, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("MatchTask(%q) = nil, want task %s", tt.query, tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("MatchTask(%q).ID = %s, want %s", tt.query, got.ID, tt.wantID)
			}
		})
	}
}

func TestMatchTaskSkipsDone(t *testing.T) {
	tasks := []Task{
		{ID: "1", Content: "Renew gym membership", Status: StatusDone},
	}
	if got := MatchTask("gym", tasks); got != nil {
		t.Errorf("MatchTask matched a done task: %+v", got)
	}
}

func TestMatchTaskPrefersOpenDuplicate(t *testing.T) {
	tasks := []Task{
		{ID: "done", Content: "go to gym", Status: StatusDone},
		{ID: "open", Content: "go to gym", Status: StatusTodo},
	}
	got := MatchTask("gym", tasks)
	if got == nil || got.ID != "open" {
		t.Errorf("MatchTask() = %+v, want the open duplicate", got)
	}
}

func TestMatchTaskEmptyList(t *testing.T) {
	if got := MatchTask("anything", nil); got != nil {
		t.Errorf("MatchTask on nil slice = %+v, want nil", got)
	}
	if got := MatchTask("anything", []Task{}); got != nil {
		t.Errorf("MatchTask on empty slice = %+v, want nil", got)
	}
}

func TestMatchTaskReturnsCopy(t *testing.T) {
	tasks := []Task{{ID: "1", Content: "Water the plants", Status: StatusTodo}}
	got := MatchTask("plants", tasks)
	if got == nil {
		t.Fatal("MatchTask() = nil, want match")
	}
	got.Content = "mutated"
	if tasks[0].Content != "Water the plants" {
		t.Error("mutating the returned task changed the caller's slice")
	}
}
