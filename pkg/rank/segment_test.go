package rank

import (
	"reflect"
	"testing"

	"github.com/toolsuggest/core/pkg/tokenizer"
)

func tokensOf(words ...string) []tokenizer.Token {
	out := make([]tokenizer.Token, len(words))
	for i, w := range words {
		out[i] = tokenizer.Token{Text: w, Pos: i}
	}
	return out
}

func texts(windows [][]tokenizer.Token) [][]string {
	out := make([][]string, len(windows))
	for i, w := range windows {
		row := make([]string, len(w))
		for j, tk := range w {
			row[j] = tk.Text
		}
		out[i] = row
	}
	return out
}

func TestSegmentSingleIntentReturnsOneWindow(t *testing.T) {
	s := NewSegmenter(nil)
	got := s.Segment(tokensOf("export", "data", "to", "csv"), 1)
	want := [][]string{{"export", "data", "to", "csv"}}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Segment = %v, want %v", texts(got), want)
	}
}

func TestSegmentSplitsOnSeparator(t *testing.T) {
	s := NewSegmenter(nil)
	got := s.Segment(tokensOf("export", "data", "and", "send", "email"), 3)
	want := [][]string{{"export", "data"}, {"send", "email"}}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Segment = %v, want %v", texts(got), want)
	}
}

func TestSegmentAbsorbsExcessSeparatorsOnceBudgetExhausted(t *testing.T) {
	s := NewSegmenter(nil)
	got := s.Segment(tokensOf("a", "and", "b", "and", "c", "and", "d"), 2)
	want := [][]string{{"a"}, {"b", "and", "c", "and", "d"}}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Segment = %v, want %v", texts(got), want)
	}
}

func TestSegmentSkipsLeadingSeparators(t *testing.T) {
	s := NewSegmenter(nil)
	got := s.Segment(tokensOf("and", "export", "data"), 3)
	want := [][]string{{"export", "data"}}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Segment = %v, want %v", texts(got), want)
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	s := NewSegmenter(nil)
	if got := s.Segment(nil, 3); got != nil {
		t.Errorf("Segment(nil) = %v, want nil", got)
	}
}

func TestSegmentCustomSeparators(t *testing.T) {
	s := NewSegmenter([]string{"then"})
	got := s.Segment(tokensOf("export", "data", "and", "then", "send", "email"), 3)
	want := [][]string{{"export", "data", "and"}, {"send", "email"}}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Segment = %v, want %v", texts(got), want)
	}
}
