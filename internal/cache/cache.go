// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache decodes the Granola application cache into a document
// store. The cache file is JSON whose top-level "cache" field is itself a
// JSON-encoded blob holding the document table and the optional side
// tables.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/kllymx/Breakfast/pkg/types"
)

// Store is the decoded document store: all meeting records plus the
// optional metadata and transcript side tables, keyed by meeting id.
type Store struct {
	Documents        map[string]*types.Document
	MeetingsMetadata map[string]*types.MeetingMetadata
	Transcripts      map[string][]types.TranscriptEntry
}

// outer is the top-level cache file shape.
type outer struct {
	Cache string `json:"cache"`
}

// inner is the decoded cache blob.
type inner struct {
	State state `json:"state"`
}

type state struct {
	Documents        map[string]*types.Document        `json:"documents"`
	MeetingsMetadata map[string]*types.MeetingMetadata `json:"meetingsMetadata"`
	Transcripts      map[string][]types.TranscriptEntry `json:"transcripts"`
}

// Load reads and decodes the cache file at path. A missing file, an
// unparseable layer, or a store without a document table are all fatal
// setup errors for the pipeline.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("cache file not found: %s", path)
		}
		return nil, fmt.Errorf("reading cache file %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses the double-encoded cache blob.
func Decode(data []byte) (*Store, error) {
	var o outer
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing cache file: %w", err)
	}

	var i inner
	if err := json.Unmarshal([]byte(o.Cache), &i); err != nil {
		return nil, fmt.Errorf("parsing embedded cache blob: %w", err)
	}

	if i.State.Documents == nil {
		return nil, fmt.Errorf("invalid cache structure: missing documents")
	}

	s := &Store{
		Documents:        i.State.Documents,
		MeetingsMetadata: i.State.MeetingsMetadata,
		Transcripts:      i.State.Transcripts,
	}
	if s.MeetingsMetadata == nil {
		s.MeetingsMetadata = map[string]*types.MeetingMetadata{}
	}
	if s.Transcripts == nil {
		s.Transcripts = map[string][]types.TranscriptEntry{}
	}
	return s, nil
}

// DocumentList returns the documents in a deterministic order: by
// creation timestamp, ties broken by id. The source table is a map, so
// an explicit order keeps repeated runs byte-stable.
func (s *Store) DocumentList() []*types.Document {
	docs := make([]*types.Document, 0, len(s.Documents))
	for _, d := range s.Documents {
		docs = append(docs, d)
	}
	sort.SliceStable(docs, func(a, b int) bool {
		if docs[a].CreatedAt != docs[b].CreatedAt {
			return docs[a].CreatedAt < docs[b].CreatedAt
		}
		return docs[a].ID < docs[b].ID
	})
	return docs
}

// Metadata returns the side metadata record for id, or nil.
func (s *Store) Metadata(id string) *types.MeetingMetadata {
	return s.MeetingsMetadata[id]
}

// Transcript returns the cached transcript entries for id. A missing
// entry yields an empty slice.
func (s *Store) Transcript(id string) []types.TranscriptEntry {
	return s.Transcripts[id]
}
