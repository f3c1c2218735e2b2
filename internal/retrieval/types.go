// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package retrieval

import (
	"context"
	"sort"
	"strings"
)

// ScoreOrder tags how a ranked list's scores should be read.
type ScoreOrder int

const (
	// Descending means higher scores are better (similarities, graph scores).
	Descending ScoreOrder = iota
	// Ascending means lower scores are better (ANN distances).
	Ascending
)

// String returns the order name.
func (o ScoreOrder) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// Candidate is one ranked item.
type Candidate struct {
	// ID is the item's index into the embedding table and keyframe catalog.
	ID int64 `json:"id"`

	// Score is a distance or a similarity depending on the list's Order.
	Score float64 `json:"score"`
}

// RankedList is an ordered sequence of candidates with unique ids.
type RankedList struct {
	Items []Candidate `json:"items"`
	Order ScoreOrder  `json:"order"`
}

// NewRankedList zips ids and scores into a list. Extra entries in the longer
// slice are dropped.
func NewRankedList(ids []int64, scores []float64, order ScoreOrder) RankedList {
	n := min(len(ids), len(scores))
	items := make([]Candidate, n)
	for i := 0; i < n; i++ {
		items[i] = Candidate{ID: ids[i], Score: scores[i]}
	}
	return RankedList{Items: items, Order: order}
}

// Len returns the number of candidates.
func (l RankedList) Len() int {
	return len(l.Items)
}

// IDs returns the candidate ids in ranking order.
func (l RankedList) IDs() []int64 {
	ids := make([]int64, len(l.Items))
	for i, c := range l.Items {
		ids[i] = c.ID
	}
	return ids
}

// Scores returns the candidate scores in ranking order.
func (l RankedList) Scores() []float64 {
	scores := make([]float64, len(l.Items))
	for i, c := range l.Items {
		scores[i] = c.Score
	}
	return scores
}

// Clone returns a deep copy of the list.
func (l RankedList) Clone() RankedList {
	items := make([]Candidate, len(l.Items))
	copy(items, l.Items)
	return RankedList{Items: items, Order: l.Order}
}

// Top returns the first n candidates. A non-positive n yields an empty list.
func (l RankedList) Top(n int) RankedList {
	if n <= 0 {
		return RankedList{Items: []Candidate{}, Order: l.Order}
	}
	if n > len(l.Items) {
		n = len(l.Items)
	}
	items := make([]Candidate, n)
	copy(items, l.Items[:n])
	return RankedList{Items: items, Order: l.Order}
}

// SortByScore orders candidates best-first for the list's Order. Equal
// scores keep their current relative order.
func (l RankedList) SortByScore() {
	if l.Order == Ascending {
		sort.SliceStable(l.Items, func(i, j int) bool { return l.Items[i].Score < l.Items[j].Score })
		return
	}
	sort.SliceStable(l.Items, func(i, j int) bool { return l.Items[i].Score > l.Items[j].Score })
}

// Action is a user's reaction to a single candidate.
type Action int

const (
	// ActionNeutral carries no signal. Unknown action strings map here.
	ActionNeutral Action = iota
	// ActionLike marks a relevant candidate.
	ActionLike
	// ActionDislike marks an irrelevant candidate.
	ActionDislike
)

// ParseAction maps a wire value to an Action. Anything other than "like" or
// "dislike" is neutral.
func ParseAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "like":
		return ActionLike
	case "dislike":
		return ActionDislike
	default:
		return ActionNeutral
	}
}

// String returns the wire value of the action.
func (a Action) String() string {
	switch a {
	case ActionLike:
		return "like"
	case ActionDislike:
		return "dislike"
	default:
		return "neutral"
	}
}

// Sign returns +1 for like, -1 for dislike and 0 otherwise.
func (a Action) Sign() float64 {
	switch a {
	case ActionLike:
		return 1
	case ActionDislike:
		return -1
	default:
		return 0
	}
}

// FeedbackEntry is one committed reaction.
type FeedbackEntry struct {
	ItemID int64  `json:"db_idx"`
	Action Action `json:"action"`
}

// Feedback is a session's committed reactions in insertion order.
// Item ids are unique.
type Feedback []FeedbackEntry

// Lookup returns the reactions keyed by item id.
func (f Feedback) Lookup() map[int64]Action {
	m := make(map[int64]Action, len(f))
	for _, e := range f {
		m[e.ItemID] = e.Action
	}
	return m
}

// Liked returns liked item ids in insertion order.
func (f Feedback) Liked() []int64 {
	return f.filter(ActionLike)
}

// Disliked returns disliked item ids in insertion order.
func (f Feedback) Disliked() []int64 {
	return f.filter(ActionDislike)
}

func (f Feedback) filter(a Action) []int64 {
	var ids []int64
	for _, e := range f {
		if e.Action == a {
			ids = append(ids, e.ItemID)
		}
	}
	return ids
}

// SignVector returns, for each candidate of list, +1 if liked, -1 if
// disliked and 0 otherwise.
func (f Feedback) SignVector(list RankedList) []float64 {
	lookup := f.Lookup()
	signs := make([]float64, len(list.Items))
	for i, c := range list.Items {
		signs[i] = lookup[c.ID].Sign()
	}
	return signs
}

// Embedder returns the stored embedding of an item.
type Embedder interface {
	Embedding(ctx context.Context, id int64) ([]float32, error)
}

// TextEncoder embeds free text into the same space as item embeddings.
type TextEncoder interface {
	EncodeText(ctx context.Context, text string) ([]float32, error)
}
