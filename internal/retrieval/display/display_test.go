// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package display

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/framescout/internal/models"
	"github.com/tomtom215/framescout/internal/retrieval"
)

func testCatalog() map[int64]models.Keyframe {
	return map[int64]models.Keyframe{
		1: {DBIdx: 1, FrameID: "001", VideoID: "L01_V001", FramePath: "kf/L01_V001/001.jpg", Timestamp: "00:00:01"},
		2: {DBIdx: 2, FrameID: "002", VideoID: "L01_V002", FramePath: "kf/L01_V002/002.jpg", Timestamp: "00:00:02"},
		3: {DBIdx: 3, FrameID: "003", VideoID: "L01_V001", FramePath: "kf/L01_V001/003.jpg", Timestamp: "00:00:03"},
		4: {DBIdx: 4, FrameID: "004", VideoID: "L01_V003", FramePath: "kf/L01_V003/004.jpg", Timestamp: "00:00:04"},
	}
}

func TestParseOption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Option
		wantErr bool
	}{
		{"", SortByFrameIndex, false},
		{"group_by_videoid", GroupByVideo, false},
		{"sort_by_frame_index", SortByFrameIndex, false},
		{"by_color", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOption(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedOption) {
				t.Errorf("ParseOption(%q) error = %v, want ErrUnsupportedOption", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseOption(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestGroupByVideoID_HigherIsBetter(t *testing.T) {
	t.Parallel()

	list := retrieval.NewRankedList([]int64{1, 2, 3, 4}, []float64{0.9, 0.8, 0.7, 0.1}, retrieval.Descending)
	groups := GroupByVideoID(list, testCatalog(), true)

	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}

	// V001: frames at pos 1 and 3, mean((3/4)*0.9, (1/4)*0.7) * log2(3).
	wantV001 := ((0.75*0.9 + 0.25*0.7) / 2) * math.Log2(3)
	// V002: pos 2, (2/4)*0.8 * log2(2).
	wantV002 := 0.5 * 0.8
	if groups[0].VideoID != "L01_V001" || math.Abs(groups[0].Score-wantV001) > 1e-12 {
		t.Errorf("groups[0] = %s/%v, want L01_V001/%v", groups[0].VideoID, groups[0].Score, wantV001)
	}
	if groups[1].VideoID != "L01_V002" || math.Abs(groups[1].Score-wantV002) > 1e-12 {
		t.Errorf("groups[1] = %s/%v, want L01_V002/%v", groups[1].VideoID, groups[1].Score, wantV002)
	}
	if groups[2].VideoID != "L01_V003" || groups[2].Score != 0 {
		t.Errorf("groups[2] = %s/%v, want L01_V003/0", groups[2].VideoID, groups[2].Score)
	}

	frames := groups[0].Frames
	if frames[0].DBIdx != 1 || frames[1].DBIdx != 3 {
		t.Errorf("V001 frame order = [%d %d], want [1 3]", frames[0].DBIdx, frames[1].DBIdx)
	}
	if frames[0].ImagePath != "kf/L01_V001/001.webp" {
		t.Errorf("ImagePath = %q, want .webp", frames[0].ImagePath)
	}
}

func TestGroupByVideoID_LowerIsBetter(t *testing.T) {
	t.Parallel()

	// Distances: ascending, lower is better.
	list := retrieval.NewRankedList([]int64{2, 1, 3}, []float64{0.1, 0.2, 0.5}, retrieval.Ascending)
	groups := GroupByVideoID(list, testCatalog(), false)

	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	// V001: pos 2 and 3 of k=3, -(mean((1/3)*0.2, 0*0.5)/log2(3)).
	wantV001 := -(((1.0/3)*0.2 + 0) / 2) / math.Log2(3)
	// V002: pos 1, -((2/3)*0.1/log2(2)).
	wantV002 := -((2.0 / 3) * 0.1)
	if groups[0].VideoID != "L01_V002" || math.Abs(groups[0].Score-wantV002) > 1e-12 {
		t.Errorf("groups[0] = %s/%v, want L01_V002/%v", groups[0].VideoID, groups[0].Score, wantV002)
	}
	if groups[1].VideoID != "L01_V001" || math.Abs(groups[1].Score-wantV001) > 1e-12 {
		t.Errorf("groups[1] = %s/%v, want L01_V001/%v", groups[1].VideoID, groups[1].Score, wantV001)
	}
	if f := groups[1].Frames; f[0].DBIdx != 1 || f[1].DBIdx != 3 {
		t.Errorf("V001 frames = [%d %d], want ascending scores [1 3]", f[0].DBIdx, f[1].DBIdx)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	list := retrieval.NewRankedList([]int64{3, 99, 1}, []float64{0.9, 0.8, 0.7}, retrieval.Descending)

	got, err := Render(SortByFrameIndex, list, testCatalog(), true)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(got) != 2 || got[0].DBIdx != 3 || got[1].DBIdx != 1 {
		t.Errorf("Render(sort_by_frame_index) = %+v, want [3 1] with 99 skipped", got)
	}

	if _, err := Render("nope", list, testCatalog(), true); !errors.Is(err, ErrUnsupportedOption) {
		t.Errorf("Render(nope) error = %v, want ErrUnsupportedOption", err)
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := make([]int, 120)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		page      int
		perPage   int
		wantFirst int
		wantLen   int
		wantPage  int
		wantPages int
	}{
		{"first page", 1, 50, 0, 50, 1, 3},
		{"last partial page", 3, 50, 100, 20, 3, 3},
		{"page clamped high", 9, 50, 100, 20, 3, 3},
		{"page clamped low", 0, 50, 0, 50, 1, 3},
		{"default per page", 2, 0, 50, 50, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, info := Paginate(items, tt.page, tt.perPage)
			if len(got) != tt.wantLen || got[0] != tt.wantFirst {
				t.Errorf("Paginate() = len %d first %d, want len %d first %d", len(got), got[0], tt.wantLen, tt.wantFirst)
			}
			if info.Page != tt.wantPage || info.TotalPages != tt.wantPages || info.Total != 120 {
				t.Errorf("Paginate() info = %+v", info)
			}
		})
	}

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		got, info := Paginate([]int{}, 1, 50)
		if len(got) != 0 || info.TotalPages != 0 || info.Page != 1 {
			t.Errorf("Paginate(empty) = %v, %+v", got, info)
		}
	})
}
