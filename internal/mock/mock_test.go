// ABOUTME: Tests for the demo-data synthesizer.
// ABOUTME: Covers seed determinism, per-call randomness, sorting, and author pinning.
package mock

import (
	"strconv"
	"testing"
	"time"
)

func newSynth(t *testing.T) *Synthesizer {
	t.Helper()
	s, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestSynthesizeDeterministicSelection(t *testing.T) {
	s := newSynth(t)

	a := s.Synthesize("AI agents", 5, 0)
	b := s.Synthesize("AI agents", 5, 0)

	if len(a) != 5 || len(b) != 5 {
		t.Fatalf("expected 5 records each, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Author.Username != b[i].Author.Username {
			t.Errorf("record %d: username %q vs %q", i, a[i].Author.Username, b[i].Author.Username)
		}
		if a[i].Text != b[i].Text {
			t.Errorf("record %d: texts differ between calls", i)
		}
	}
}

func TestSynthesizeIDsAndTimestampsVary(t *testing.T) {
	s := newSynth(t)

	a := s.Synthesize("golang", 3, 0)
	b := s.Synthesize("golang", 3, 0)

	same := 0
	for i := range a {
		if a[i].ID == b[i].ID {
			same++
		}
	}
	if same == len(a) {
		t.Error("expected generated ids to differ between calls")
	}
}

func TestSynthesizeDifferentSeedsDiffer(t *testing.T) {
	s := newSynth(t)

	a := s.Synthesize("kubernetes", 4, 0)
	b := s.Synthesize("vim motions", 4, 0)

	diff := false
	for i := range a {
		if a[i].Text != b[i].Text {
			diff = true
			break
		}
	}
	if !diff {
		t.Error("expected different seeds to select different templates")
	}
}

func TestSynthesizeSortedByLikes(t *testing.T) {
	s := newSynth(t)

	tweets := s.Synthesize("observability", 6, 0)
	for i := 1; i < len(tweets); i++ {
		if tweets[i].Metrics.Likes > tweets[i-1].Metrics.Likes {
			t.Errorf("likes not non-increasing at %d: %d > %d", i, tweets[i].Metrics.Likes, tweets[i-1].Metrics.Likes)
		}
	}
}

func TestSynthesizeViewsAtLeastLikes(t *testing.T) {
	s := newSynth(t)

	for _, tw := range s.Synthesize("AI agents", 3, 0) {
		if tw.Metrics.Views < tw.Metrics.Likes {
			t.Errorf("views %d < likes %d for %q", tw.Metrics.Views, tw.Metrics.Likes, tw.Author.Username)
		}
	}
}

func TestSynthesizeNoTemplateRepeats(t *testing.T) {
	s := newSynth(t)

	n := s.PoolSize()
	tweets := s.Synthesize("unique check", n, 0)
	seen := map[string]bool{}
	for _, tw := range tweets {
		if seen[tw.Text] {
			t.Errorf("template repeated within one call: %q", tw.Text)
		}
		seen[tw.Text] = true
	}
}

func TestSynthesizeLimitBeyondPoolWraps(t *testing.T) {
	s := newSynth(t)

	n := s.PoolSize()
	tweets := s.Synthesize("wrap", n+3, 0)
	if len(tweets) != n+3 {
		t.Errorf("expected %d records, got %d", n+3, len(tweets))
	}
}

func TestSynthesizeZeroLimit(t *testing.T) {
	s := newSynth(t)
	if got := s.Synthesize("anything", 0, 0); len(got) != 0 {
		t.Errorf("expected no records for limit 0, got %d", len(got))
	}
}

func TestSynthesizeRepliesPinParent(t *testing.T) {
	s := newSynth(t)

	for _, tw := range s.SynthesizeReplies("123", 4, 0) {
		if tw.ReplyToID != "123" {
			t.Errorf("expected replyToId 123, got %q", tw.ReplyToID)
		}
	}
}

func TestSynthesizeTimelinePinsUnknownUsername(t *testing.T) {
	s := newSynth(t)

	tweets := s.SynthesizeTimeline("some_stranger", 4, 0)
	for _, tw := range tweets {
		if tw.Author.Username != "some_stranger" {
			t.Errorf("expected pinned author, got %q", tw.Author.Username)
		}
	}
	if tweets[0].Author.DisplayName != "Some Stranger" {
		t.Errorf("expected derived display name, got %q", tweets[0].Author.DisplayName)
	}
}

func TestSynthesizeTimelineKeepsPoolMember(t *testing.T) {
	s := newSynth(t)

	tweets := s.SynthesizeTimeline("quietcoder", 3, 0)
	for _, tw := range tweets {
		if tw.Author.Username != "quietcoder" {
			t.Errorf("expected pool member author, got %q", tw.Author.Username)
		}
	}
	if !tweets[0].Author.Verified && tweets[0].Author.Followers == 0 {
		t.Error("expected pool member profile to be carried over")
	}
}

func TestSynthesizeTimestampsWithinWindow(t *testing.T) {
	s := newSynth(t)

	window := time.Hour
	cutoff := time.Now().Add(-window - time.Minute)
	for _, tw := range s.Synthesize("recent", 5, window) {
		if tw.CreatedAt.Before(cutoff) {
			t.Errorf("timestamp %v older than window", tw.CreatedAt)
		}
		if tw.CreatedAt.After(time.Now()) {
			t.Errorf("timestamp %v in the future", tw.CreatedAt)
		}
	}
}

func TestNumericLookingIDs(t *testing.T) {
	s := newSynth(t)

	for _, tw := range s.Synthesize("ids", 3, 0) {
		if _, err := strconv.ParseUint(tw.ID, 10, 64); err != nil {
			t.Errorf("id %q is not numeric-looking", tw.ID)
		}
	}
}
