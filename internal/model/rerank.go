package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RerankKey joins reranked patches back to a mutant location. Its text form is
// <project>-<bugId>-<path>-<start>-<end>.
type RerankKey struct {
	Project string
	BugID   MutantID
	Path    string
	Start   int
	End     int
}

// String formats the key the way the reranker writes it.
func (k RerankKey) String() string {
	return fmt.Sprintf("%s-%s-%s-%d-%d", k.Project, k.BugID, k.Path, k.Start, k.End)
}

// Midpoint is the line used to collect the literal pool.
func (k RerankKey) Midpoint() int {
	return (k.Start + k.End) / 2
}

// ParseRerankKey splits a key. The project and bug id are the first two
// fields and the locations the last two, so paths may contain '-'.
func ParseRerankKey(s string) (RerankKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 5 {
		return RerankKey{}, fmt.Errorf("malformed rerank key %q", s)
	}

	start, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return RerankKey{}, fmt.Errorf("malformed start location in %q: %w", s, err)
	}

	end, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return RerankKey{}, fmt.Errorf("malformed end location in %q: %w", s, err)
	}

	return RerankKey{
		Project: parts[0],
		BugID:   MutantID(parts[1]),
		Path:    strings.Join(parts[2:len(parts)-2], "-"),
		Start:   start,
		End:     end,
	}, nil
}

// ScoredPatch is one tokenized patch with its fused score.
type ScoredPatch struct {
	Patch string  `json:"patch"`
	Score float64 `json:"score"`
}

// Tokens splits the tokenized patch on single spaces.
func (p ScoredPatch) Tokens() []string {
	return strings.Split(p.Patch, " ")
}

// RerankedEntry holds the reranked patches of one mutant location in
// descending score order.
type RerankedEntry struct {
	Key     RerankKey
	Patches []ScoredPatch
}

// RerankedPatches is the durable checkpoint written by the reranker. Entry
// order is the order in which keys appear in the file.
type RerankedPatches []RerankedEntry

type rerankedValue struct {
	Patches []ScoredPatch `json:"patches"`
}

// UnmarshalJSON decodes the reranker output preserving key order and sorting
// each entry's patches by descending score.
func (r *RerankedPatches) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("reranked patches: expected object, got %v", tok)
	}

	entries := RerankedPatches{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		rawKey, ok := tok.(string)
		if !ok {
			return fmt.Errorf("reranked patches: expected key, got %v", tok)
		}

		key, err := ParseRerankKey(rawKey)
		if err != nil {
			return err
		}

		var value rerankedValue
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("reranked patches: decode %q: %w", rawKey, err)
		}

		sort.SliceStable(value.Patches, func(i, j int) bool {
			return value.Patches[i].Score > value.Patches[j].Score
		})

		entries = append(entries, RerankedEntry{Key: key, Patches: value.Patches})
	}

	*r = entries

	return nil
}

// MarshalJSON writes the entries as an ordered JSON object.
func (r RerankedPatches) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, entry := range r {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(entry.Key.String())
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(rerankedValue{Patches: entry.Patches})
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
