package tokenizer

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Export CSV", "export csv"},
		{"diacritics", "café é ótimo", "cafe e otimo"},
		{"punctuation collapse", "export, data!! to---csv", "export data to csv"},
		{"trim", "  padded  ", "padded"},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Normalize(c.in); got != c.want {
				t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestTokensDropsStopwords(t *testing.T) {
	tok := New([]string{"en"})
	got := tok.Tokens("export data to csv", false)
	var words []string
	for _, tk := range got {
		words = append(words, tk.Text)
	}
	want := []string{"export", "data", "csv"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Tokens = %v, want %v", words, want)
	}
}

func TestTokensKeepsLastPartialStopword(t *testing.T) {
	tok := New([]string{"en"})
	got := tok.Tokens("send an", true)
	var words []string
	for _, tk := range got {
		words = append(words, tk.Text)
	}
	want := []string{"send", "an"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Tokens = %v, want %v", words, want)
	}
}

func TestTokensStopwordOnlyInput(t *testing.T) {
	tok := New([]string{"en"})
	got := tok.Tokens("the of to", false)
	if len(got) != 0 {
		t.Errorf("expected no tokens from stopword-only input, got %v", got)
	}
}

func TestTokensPortuguese(t *testing.T) {
	tok := New([]string{"pt"})
	got := tok.Tokens("exportar dados para csv", false)
	var words []string
	for _, tk := range got {
		words = append(words, tk.Text)
	}
	want := []string{"exportar", "dados", "csv"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Tokens = %v, want %v", words, want)
	}
}

func TestEmptyInput(t *testing.T) {
	tok := New(nil)
	if got := tok.Tokens("", false); got != nil {
		t.Errorf("expected nil tokens for empty input, got %v", got)
	}
}
