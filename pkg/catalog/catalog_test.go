package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/toolsuggest/core/pkg/suggest"
)

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	contents := `
tools:
  - name: export_csv
    description: Export data to CSV format
    keywords: [export, csv, file, download]
  - name: send_email
    description: Send email notifications
    keywords: [email, send, notify, message]
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tools, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tools) != 2 || tools[0].Name != "export_csv" {
		t.Errorf("tools = %+v, want export_csv, send_email", tools)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	contents := `
[[tools]]
name = "db_query"
description = "Query database records"
keywords = ["database", "query", "search"]
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tools, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tools) != 1 || tools[0].Name != "db_query" {
		t.Errorf("tools = %+v, want db_query", tools)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	os.WriteFile(path, []byte("{}"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap := Snapshot{
		Tools:     []suggest.ToolSpec{{Name: "export_csv", Description: "Export data to CSV format"}},
		TermCount: 4,
	}
	data, err := DumpSnapshot(snap)
	if err != nil {
		t.Fatalf("DumpSnapshot: %v", err)
	}
	got, err := LoadSnapshot(data)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if got.TermCount != 4 || len(got.Tools) != 1 || got.Tools[0].Name != "export_csv" {
		t.Errorf("round-tripped snapshot = %+v", got)
	}
}
