// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package token extracts the transcript API access token from the local
// Granola credential file. The file holds one of two named token
// bundles, each stored either as an inline object or as a JSON-encoded
// string. A missing file or bundle yields an empty token, not an error:
// without a token the transcript fetch is skipped.
package token

import (
	"encoding/json"
	"os"
)

// bundleKeys lists the known token bundle names, tried in order.
var bundleKeys = []string{"workos_tokens", "cognito_tokens"}

// bundle is the decoded token bundle shape.
type bundle struct {
	AccessToken string `json:"access_token"`
}

// Load reads the credential file at path and returns the first access
// token found. Every failure mode (missing file, unparseable JSON,
// absent bundles, empty token) returns "".
func Load(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ""
	}

	for _, key := range bundleKeys {
		enc, ok := raw[key]
		if !ok {
			continue
		}
		if t := decodeBundle(enc); t != "" {
			return t
		}
	}
	return ""
}

// decodeBundle handles both bundle encodings: an inline object, or an
// object double-encoded as a JSON string.
func decodeBundle(enc json.RawMessage) string {
	var b bundle
	if err := json.Unmarshal(enc, &b); err == nil && b.AccessToken != "" {
		return b.AccessToken
	}

	var inner string
	if err := json.Unmarshal(enc, &inner); err != nil {
		return ""
	}
	if err := json.Unmarshal([]byte(inner), &b); err != nil {
		return ""
	}
	return b.AccessToken
}
