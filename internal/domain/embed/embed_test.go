package embed

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestToWireBasic(t *testing.T) {
	e := Embed{Title: "Hello", Description: "World", Color: 0xFF0000}
	w := e.ToWire()

	if w.Title != "Hello" {
		t.Fatalf("expected title 'Hello', got %q", w.Title)
	}
	if w.Color != 0xFF0000 {
		t.Fatalf("expected color 0xFF0000, got %#x", w.Color)
	}
}

func TestToWireCeilings(t *testing.T) {
	long := strings.Repeat("a", 5000)
	e := Embed{
		Title:       long,
		Description: long,
		Fields:      []Field{{Name: long, Value: long}},
		FooterText:  long,
	}
	w := e.ToWire()

	tests := []struct {
		name  string
		got   int
		limit int
	}{
		{"title", len([]rune(w.Title)), MaxTitleLen},
		{"description", len([]rune(w.Description)), MaxDescLen},
		{"field name", len([]rune(w.Fields[0].Name)), MaxFieldNameLen},
		{"field value", len([]rune(w.Fields[0].Value)), MaxFieldValueLen},
		{"footer", len([]rune(w.Footer.Text)), MaxFooterLen},
	}
	for _, tt := range tests {
		if tt.got != tt.limit {
			t.Errorf("%s: expected %d runes, got %d", tt.name, tt.limit, tt.got)
		}
	}
}

func TestToWireFieldCountCap(t *testing.T) {
	fields := make([]Field, 30)
	for i := range fields {
		fields[i] = Field{Name: "n", Value: string(rune('a' + i))}
	}
	w := Embed{Fields: fields}.ToWire()

	if len(w.Fields) != MaxFields {
		t.Fatalf("expected %d fields, got %d", MaxFields, len(w.Fields))
	}
	// Order preserved, excess dropped from the tail.
	if w.Fields[0].Value != "a" || w.Fields[24].Value != "y" {
		t.Fatalf("field order not preserved: first %q last %q", w.Fields[0].Value, w.Fields[24].Value)
	}
}

func TestToWireEmptyFieldValuePlaceholder(t *testing.T) {
	w := Embed{Fields: []Field{{Name: "Subject", Value: ""}}}.ToWire()

	if w.Fields[0].Value != "​" {
		t.Fatalf("expected zero-width placeholder, got %q", w.Fields[0].Value)
	}
	if w.Fields[0].Name != "Subject" {
		t.Fatalf("expected name kept, got %q", w.Fields[0].Name)
	}
}

func TestToWireOmitsEmptyKeys(t *testing.T) {
	w := Embed{}.ToWire()

	if w.Title != "" || w.Description != "" || w.Color != 0 || w.Timestamp != "" {
		t.Fatalf("expected zero wire values, got %+v", w)
	}
	if w.Fields != nil {
		t.Fatal("expected no fields slice for empty embed")
	}
	if w.Footer != nil {
		t.Fatal("expected no footer for empty embed")
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	s := strings.Repeat("é", 300)
	got := Truncate(s, MaxTitleLen)

	if !utf8.ValidString(got) {
		t.Fatal("truncation produced invalid UTF-8")
	}
	if n := len([]rune(got)); n != MaxTitleLen {
		t.Fatalf("expected %d runes, got %d", MaxTitleLen, n)
	}
}

func TestTruncateShortStringUntouched(t *testing.T) {
	if got := Truncate("short", 256); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
}
