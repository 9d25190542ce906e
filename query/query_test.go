package query_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gridword/puzzlesearch/query"
)

func TestDecodeValidQueries(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want query.Query
	}{
		{
			name: "wheel of fortune basic",
			raw:  "mode=WheelOfFortune&pattern=t%3Fe&absent_letters=",
			want: query.Query{Mode: query.WheelOfFortune, Pattern: "t?e", AbsentLetters: ""},
		},
		{
			name: "crossword with absents",
			raw:  "mode=Crossword&pattern=t%3Fe%3F&absent_letters=XY",
			want: query.Query{Mode: query.Crossword, Pattern: "t?e?", AbsentLetters: "xy"},
		},
		{
			name: "cryptogram no wildcards allowed",
			raw:  "mode=Cryptogram&pattern=TBC",
			want: query.Query{Mode: query.Cryptogram, Pattern: "TBC", AbsentLetters: ""},
		},
		{
			name: "absent_letters omitted defaults empty",
			raw:  "mode=WheelOfFortune&pattern=is",
			want: query.Query{Mode: query.WheelOfFortune, Pattern: "is", AbsentLetters: ""},
		},
		{
			name: "last value wins",
			raw:  "mode=Crossword&mode=WheelOfFortune&pattern=is",
			want: query.Query{Mode: query.WheelOfFortune, Pattern: "is", AbsentLetters: ""},
		},
		{
			name: "unknown keys ignored",
			raw:  "mode=WheelOfFortune&pattern=is&bogus=1",
			want: query.Query{Mode: query.WheelOfFortune, Pattern: "is", AbsentLetters: ""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := query.Decode(tc.raw)
			if err != nil {
				t.Fatalf("Decode(%q): unexpected error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDecodeRejectsInvalidQueries(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing mode", "pattern=is"},
		{"unrecognized mode", "mode=Anagram&pattern=is"},
		{"missing pattern", "mode=WheelOfFortune"},
		{"pattern too long", "mode=WheelOfFortune&pattern=" + strings.Repeat(".", 21)},
		{"disallowed char in wheel pattern", "mode=WheelOfFortune&pattern=t%2Ae"},
		{"question mark in cryptogram pattern", "mode=Cryptogram&pattern=T%3FC"},
		{"non-letter absent_letters", "mode=WheelOfFortune&pattern=is&absent_letters=a1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := query.Decode(tc.raw)
			if err == nil {
				t.Fatalf("Decode(%q): expected error, got nil", tc.raw)
			}
			if !errors.Is(err, query.ErrValidation) {
				t.Errorf("Decode(%q): error %v does not wrap ErrValidation", tc.raw, err)
			}
		})
	}
}

func TestDecodeScenario11TwentyOneDots(t *testing.T) {
	raw := "mode=WheelOfFortune&pattern=" + strings.Repeat(".", 21)
	if _, err := query.Decode(raw); err == nil {
		t.Fatal("expected rejection for 21-character pattern")
	}
}

func TestDecodeScenario12MissingMode(t *testing.T) {
	raw := "pattern=is"
	if _, err := query.Decode(raw); err == nil {
		t.Fatal("expected rejection for missing mode")
	}
}
