package ui

import (
	"testing"

	"github.com/five82/loupe/internal/highlight"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Dracula", "Slate", "Classic"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Dracula": "Slate",
		"Slate":   "Classic",
		"Classic": "Dracula",
		"Unknown": "Dracula",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestGetTheme_FallsBackToDracula(t *testing.T) {
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula", got)
	}
	if got := GetTheme("Classic").Name; got != "Classic" {
		t.Fatalf("GetTheme(Classic).Name = %q, want Classic", got)
	}
}

func TestPalette_CoversEveryCategory(t *testing.T) {
	for _, name := range ThemeNames() {
		p := GetTheme(name).Palette()
		for _, c := range highlight.Categories() {
			if _, ok := p[c]; !ok {
				t.Fatalf("theme %s has no style for %s", name, c)
			}
		}
	}
}

func TestPalette_SeverityBold(t *testing.T) {
	p := GetTheme("Classic").Palette()
	if !p[highlight.CategoryError].GetBold() || !p[highlight.CategoryWarning].GetBold() {
		t.Fatalf("error and warning should be bold")
	}
	if p[highlight.CategoryInfo].GetBold() || p[highlight.CategoryDebug].GetBold() {
		t.Fatalf("info and debug should not be bold")
	}
}
