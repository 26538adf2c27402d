// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recognize", "200"))
	RecordAPIRequest("POST", "/api/v1/recognize", "200", 50*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recognize", "200"))

	if after != before+1 {
		t.Errorf("expected counter to increment, got %v -> %v", before, after)
	}
}

func TestRecordUpstreamRequestOutcomes(t *testing.T) {
	RecordUpstreamRequest("lastfm", "track_info", 10*time.Millisecond, nil)
	if got := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("lastfm", "track_info", "success")); got < 1 {
		t.Errorf("expected success outcome recorded, got %v", got)
	}

	RecordUpstreamRequest("lastfm", "track_info", 10*time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("lastfm", "track_info", "failure")); got < 1 {
		t.Errorf("expected failure outcome recorded, got %v", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("expected gauge %v, got %v", base+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("expected gauge back to %v, got %v", base, got)
	}
}

func TestRecordRecognition(t *testing.T) {
	before := testutil.ToFloat64(RecognitionsTotal.WithLabelValues("no_match"))
	RecordRecognition("no_match")
	if got := testutil.ToFloat64(RecognitionsTotal.WithLabelValues("no_match")); got != before+1 {
		t.Errorf("expected recognition counter to increment, got %v", got)
	}
}

func TestRecordEnrichmentDegradation(t *testing.T) {
	before := testutil.ToFloat64(EnrichmentDegradations.WithLabelValues("deezer_preview"))
	RecordEnrichmentDegradation("deezer_preview")
	if got := testutil.ToFloat64(EnrichmentDegradations.WithLabelValues("deezer_preview")); got != before+1 {
		t.Errorf("expected degradation counter to increment, got %v", got)
	}
}
