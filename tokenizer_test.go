package minnow

import (
	"fmt"
	"reflect"
	"testing"
)

func TestStandardTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		text     string
		expected TokenStream
	}{
		{
			text:     "",
			expected: TokenStream{Tokens: []Token{}},
		},
		{
			text:     "...!?",
			expected: TokenStream{Tokens: []Token{}},
		},
		{
			text:     "quick brown fox",
			expected: TokenStream{Tokens: []Token{{Term: "quick"}, {Term: "brown"}, {Term: "fox"}}},
		},
		{
			text:     "quick,brown--fox. 42!",
			expected: TokenStream{Tokens: []Token{{Term: "quick"}, {Term: "brown"}, {Term: "fox"}, {Term: "42"}}},
		},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("text = %v, expected = %v", tt.text, tt.expected), func(t *testing.T) {
			tr := StandardTokenizer{}
			if got := tr.Tokenize(tt.text); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("StandardTokenizer.Tokenize() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestNgramTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		n        int
		text     string
		expected TokenStream
	}{
		{
			n:        1,
			text:     "hoge",
			expected: TokenStream{Tokens: []Token{{Term: "h"}, {Term: "o"}, {Term: "g"}, {Term: "e"}}},
		},
		{
			n:        2,
			text:     "hogefuga",
			expected: TokenStream{Tokens: []Token{{Term: "ho"}, {Term: "og"}, {Term: "ge"}, {Term: "ef"}, {Term: "fu"}, {Term: "ug"}, {Term: "ga"}}},
		},
		{
			n:        4,
			text:     "hoge",
			expected: TokenStream{Tokens: []Token{{Term: "hoge"}}},
		},
		{
			n:        5,
			text:     "hoge",
			expected: TokenStream{Tokens: []Token{}},
		},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n = %v, text = %v, expected = %v", tt.n, tt.text, tt.expected), func(t *testing.T) {
			tr := NewNgramTokenizer(tt.n)
			if got := tr.Tokenize(tt.text); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NgramTokenizer.Tokenize() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
