package index

import (
	"math"
	"testing"
)

func TestAddPostingAccumulatesDocFreq(t *testing.T) {
	idx := New()
	idx.AddPosting("export", "export_csv", FieldKeywords, 1)
	idx.AddPosting("export", "export_csv", FieldDescription, 1)
	idx.AddPosting("export", "send_email", FieldDescription, 1)

	if got := idx.DocFreq("export"); got != 2 {
		t.Errorf("DocFreq(export) = %d, want 2", got)
	}
	if got := idx.N(); got != 2 {
		t.Errorf("N() = %d, want 2", got)
	}
	postings := idx.Postings("export")
	if len(postings) != 3 {
		t.Fatalf("expected 3 postings, got %d", len(postings))
	}
}

func TestIDFMonotonicWithDocFreq(t *testing.T) {
	idx := New()
	idx.AddPosting("common", "a", FieldDescription, 1)
	idx.AddPosting("common", "b", FieldDescription, 1)
	idx.AddPosting("rare", "a", FieldDescription, 1)

	if idx.IDF("rare") <= idx.IDF("common") {
		t.Errorf("expected rarer term to have higher IDF: rare=%v common=%v", idx.IDF("rare"), idx.IDF("common"))
	}
}

func TestIDFUnseenTermAtLeastOne(t *testing.T) {
	idx := New()
	idx.AddPosting("known", "a", FieldDescription, 1)
	if got := idx.IDF("never-seen"); got < 1 {
		t.Errorf("IDF(unseen) = %v, want >= 1", got)
	}
}

func TestIDFFormula(t *testing.T) {
	idx := New()
	idx.AddPosting("t", "a", FieldDescription, 1)
	idx.AddPosting("t", "b", FieldDescription, 1)
	// N=2, docFreq(t)=2
	want := math.Log(3.0/3.0) + 1
	if got := idx.IDF("t"); math.Abs(got-want) > 1e-9 {
		t.Errorf("IDF = %v, want %v", got, want)
	}
}

func TestRemoveToolDrainsPostingsAndDocFreq(t *testing.T) {
	idx := New()
	idx.AddPosting("export", "export_csv", FieldKeywords, 1)
	idx.AddPosting("export", "other_tool", FieldDescription, 1)
	idx.AddPosting("unique", "export_csv", FieldKeywords, 1)

	drained := idx.RemoveTool("export_csv")

	if idx.HasTerm("unique") {
		t.Error("expected 'unique' term to be gone after removing its only tool")
	}
	if !idx.HasTerm("export") {
		t.Error("expected 'export' term to remain (still posted by other_tool)")
	}
	if idx.DocFreq("export") != 1 {
		t.Errorf("DocFreq(export) = %d, want 1", idx.DocFreq("export"))
	}
	found := false
	for _, term := range drained {
		if term == "unique" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'unique' in drained terms, got %v", drained)
	}
	if idx.N() != 1 {
		t.Errorf("N() = %d, want 1", idx.N())
	}
}

func TestFieldWeightsPinned(t *testing.T) {
	want := map[Field]float64{
		FieldName:        3.0,
		FieldAliases:     2.5,
		FieldKeywords:    2.0,
		FieldDescription: 1.0,
	}
	for field, weight := range want {
		if FieldWeight[field] != weight {
			t.Errorf("FieldWeight[%s] = %v, want %v", field, FieldWeight[field], weight)
		}
	}
}
