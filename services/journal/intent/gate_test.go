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

func TestIsCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		// Imperative openings.
		{"add task", "add task buy milk", true},
		{"add with article", "Add a task to call mom", true},
		{"add task to buy milk", "Add a task to buy milk", true},
		{"dream about buying milk", "I had a dream about buying milk", false},
		{"create todo", "create a todo finish the report", true},
		{"new reminder", "new reminder water the plants", true},
		{"schedule task", "schedule a task dentist appointment", true},
		{"log task uppercase", "LOG A TASK clean the garage", true},
		{"leading whitespace", "   add task trim hedges", true},

		// Reminder phrases anywhere in the text.
		{"remind me to", "remind me to stretch", true},
		{"remind me mid-sentence", "hey can you remind me to pay rent", true},
		{"dont forget", "don't forget to buy eggs", true},
		{"dont forget no apostrophe", "dont forget to buy eggs", true},

		// Urgency prefixes.
		{"urgent colon", "urgent: fix the build", true},
		{"p1 colon", "P1: server is down", true},
		{"priority colon", "priority: review the PR", true},

		// Obligation phrases.
		{"i need to", "I need to buy groceries", true},
		{"i have to", "i have to submit the form", true},
		{"i must to", "I must to confess", true},

		// Reflective entries must pass through.
		{"plain entry", "today I went to the gym", false},
		{"dream entry", "I dreamed about flying", false},
		{"verb not at start", "yesterday I decided to add a task", false},
		{"prefix word only", "adding tasks is fun", false},
		{"noun without verb", "my tasks are piling up", false},
		{"urgent without colon", "the urgent matter can wait", false},
		{"need without i", "people need to rest", false},
		{"empty", "", false},
		{"whitespace", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCommand(tt.text); got != tt.want {
				t.Errorf("IsCommand(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
