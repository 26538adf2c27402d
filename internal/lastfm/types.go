// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

package lastfm

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Last.fm serializes numbers inconsistently: playcounts arrive as JSON
// strings, match scores switch between string and number depending on
// endpoint version, and similar-track artists are sometimes a bare name
// string instead of an object. The flex types below absorb all variants.

// flexInt64 decodes a JSON number or numeric string.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Tolerate fractional playcounts seen in the wild.
		fl, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return err
		}
		n = int64(fl)
	}
	*f = flexInt64(n)
	return nil
}

// flexFloat decodes a JSON number or numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(n)
	return nil
}

// flexArtist decodes either {"name": "..."} or a bare "..." string.
type flexArtist struct {
	Name string
}

func (f *flexArtist) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	f.Name = obj.Name
	return nil
}

// apiError is the embedded error envelope Last.fm returns with HTTP 200.
type apiError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

type trackInfoResponse struct {
	Track struct {
		Name      string    `json:"name"`
		Playcount flexInt64 `json:"playcount"`
		TopTags   struct {
			Tags []struct {
				Name string `json:"name"`
			} `json:"tag"`
		} `json:"toptags"`
	} `json:"track"`
}

type similarResponse struct {
	SimilarTracks struct {
		Tracks []struct {
			Name   string     `json:"name"`
			Match  flexFloat  `json:"match"`
			Artist flexArtist `json:"artist"`
		} `json:"track"`
	} `json:"similartracks"`
}

// decodeAndCapture reads the full body once so it can be decoded twice:
// first into the error envelope, then into the caller's payload type.
func decodeAndCapture(resp *http.Response, envelope *apiError) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// Error envelope decode failures are ignored; a payload without an
	// "error" key simply leaves Code at zero.
	_ = json.Unmarshal(body, envelope)
	return body, nil
}
