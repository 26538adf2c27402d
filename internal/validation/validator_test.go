// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package validation

import (
	"strings"
	"testing"
)

type songIDParams struct {
	SpotifyID string `validate:"required,alphanum,min=10,max=40"`
}

func TestValidateStructAccepts(t *testing.T) {
	if err := ValidateStruct(&songIDParams{SpotifyID: "7tFiyTwD0nx5a1eklYtX2J"}); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}
}

func TestValidateStructRejects(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"too short", "abc"},
		{"non alphanumeric", "abc-123-def-456"},
		{"too long", strings.Repeat("a", 41)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&songIDParams{SpotifyID: tt.id})
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if len(verr.Errors()) == 0 {
				t.Error("expected at least one field error")
			}
			if verr.Error() == "" {
				t.Error("expected non-empty error string")
			}
		})
	}
}

func TestValidationErrorMessages(t *testing.T) {
	verr := ValidateStruct(&songIDParams{SpotifyID: ""})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("unexpected code %q", apiErr.Code)
	}
	if apiErr.Message == "" {
		t.Error("expected human-readable message")
	}
}
