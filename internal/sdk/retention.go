package sdk

import (
	"fmt"
	"sort"
)

// Action says what the retention policy decided for one candidate.
type Action string

const (
	ActionKeep   Action = "KEEP"
	ActionRemove Action = "REMOVE"
)

// Decision is the retention verdict for a single SDK candidate.
type Decision struct {
	Candidate Candidate

	Action Action

	// Rank is the candidate's 1-based position within its platform group
	// after descending-version sort.
	Rank int
}

// Decide partitions candidates into keep/remove sets under a
// keep-newest-N-per-platform policy. Within each platform group candidates
// are sorted by version descending, ties broken by ascending lexical order
// of the raw bundle name; the top keepCount ranks are kept.
//
// Pure function: no I/O, no filesystem state. Groups are emitted in
// ascending platform order and rank order within a group, so the output is
// fully deterministic regardless of input ordering.
func Decide(candidates []Candidate, keepCount int) ([]Decision, error) {
	if keepCount < 0 {
		return nil, fmt.Errorf("keep count must be non-negative, got %d", keepCount)
	}

	groups := make(map[string][]Candidate)
	for _, c := range candidates {
		groups[c.Platform] = append(groups[c.Platform], c)
	}

	platforms := make([]string, 0, len(groups))
	for p := range groups {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	decisions := make([]Decision, 0, len(candidates))
	for _, p := range platforms {
		group := groups[p]
		sort.Slice(group, func(i, j int) bool {
			if c := group[i].Version.Compare(group[j].Version); c != 0 {
				return c > 0
			}
			return group[i].RawName < group[j].RawName
		})

		for i, c := range group {
			action := ActionRemove
			if i < keepCount {
				action = ActionKeep
			}
			decisions = append(decisions, Decision{
				Candidate: c,
				Action:    action,
				Rank:      i + 1,
			})
		}
	}

	return decisions, nil
}
