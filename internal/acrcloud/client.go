// Tebaklagu - Song Recognition and Recommendation Service
// Copyright 2026 Roosevelttt
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Roosevelttt/tebaklagu

/*
client.go - ACRCloud identification API client

Implements the ACRCloud Identification Protocol V1: every request carries
an HMAC-SHA1 signature over a fixed newline-joined string, and the
timestamp used for signing must be sent verbatim in the multipart body or
the service rejects the signature.

API Reference: https://docs.acrcloud.com/reference/identification-api
*/

package acrcloud

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Roosevelttt/tebaklagu/internal/config"
	"github.com/Roosevelttt/tebaklagu/internal/metrics"
	"github.com/Roosevelttt/tebaklagu/internal/models"
)

// Protocol constants for the identification endpoint. All of them
// participate in the signature, so they must match the multipart fields
// exactly.
const (
	identifyPath     = "/v1/identify"
	dataType         = "audio"
	signatureVersion = "1"
)

// ErrNotConfigured indicates the ACRCloud credentials are missing.
// No network call is attempted in this case.
var ErrNotConfigured = errors.New("acrcloud credentials are not configured")

// Client calls the ACRCloud identification API.
type Client struct {
	host         string
	accessKey    string
	accessSecret string
	httpClient   *http.Client

	// now is the timestamp source for request signing. Tests override it
	// to get reproducible signatures.
	now func() time.Time
}

// NewClient creates a new ACRCloud client. Missing credentials are not an
// error here; Identify reports ErrNotConfigured per call so the server
// can run with a partial provider set.
func NewClient(cfg *config.ACRCloudConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		host:         strings.TrimSuffix(cfg.Host, "/"),
		accessKey:    cfg.AccessKey,
		accessSecret: cfg.AccessSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// Identify submits an audio sample for recognition.
//
// Returns (match, nil) when the service classified the sample, with the
// "music" branch preferred over "humming". Returns (nil, nil) when the
// service answered but found no match; that outcome is distinct from an
// error. Returns ErrNotConfigured without touching the network when
// credentials are missing.
//
// A single attempt is made; there is no retry with a refreshed timestamp.
func (c *Client) Identify(ctx context.Context, sample []byte, filename string) (*models.RecognitionMatch, error) {
	if c.host == "" || c.accessKey == "" || c.accessSecret == "" {
		return nil, ErrNotConfigured
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signature := c.sign(timestamp)

	body, contentType, err := buildMultipartBody(sample, filename, c.accessKey, signature, timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to build identify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create identify request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordUpstreamRequest("acrcloud", "identify", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("acrcloud identify request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("acrcloud identify returned status %d (failed to read body)", resp.StatusCode)
		}
		return nil, fmt.Errorf("acrcloud identify returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result identifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode acrcloud response: %w", err)
	}

	return result.match(), nil
}

// sign computes the protocol V1 signature for the given timestamp:
// base64(HMAC-SHA1(secret, "POST\n/v1/identify\n<key>\naudio\n1\n<ts>")).
func (c *Client) sign(timestamp string) string {
	stringToSign := strings.Join([]string{
		http.MethodPost,
		identifyPath,
		c.accessKey,
		dataType,
		signatureVersion,
		timestamp,
	}, "\n")

	mac := hmac.New(sha1.New, []byte(c.accessSecret))
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// endpoint returns the full identify URL. Hosts without a scheme get
// https, which is what ACRCloud's regional hostnames expect.
func (c *Client) endpoint() string {
	if strings.HasPrefix(c.host, "http://") || strings.HasPrefix(c.host, "https://") {
		return c.host + identifyPath
	}
	return "https://" + c.host + identifyPath
}

// buildMultipartBody assembles the identify form. Every field here is
// part of the signed payload contract.
func buildMultipartBody(sample []byte, filename, accessKey, signature, timestamp string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("sample", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(sample); err != nil {
		return nil, "", err
	}

	fields := map[string]string{
		"sample_bytes":      strconv.Itoa(len(sample)),
		"access_key":        accessKey,
		"data_type":         dataType,
		"signature_version": signatureVersion,
		"signature":         signature,
		"timestamp":         timestamp,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
