package parser

import (
	"reflect"
	"testing"
)

func TestMetaHelpers(t *testing.T) {
	meta := map[string]any{
		"description": "text",
		"flag":        true,
		"flagString":  "true",
		"list":        []any{"a", 2, nil, "b"},
		"single":      "*.go",
		"empty":       "",
		"comma":       " *.ts, ,*.tsx ,",
		"braces":      "src/**/*.{ts,tsx}, docs/*.md",
		"unbalanced":  "a}, b",
		"null":        nil,
		"emptyList":   []any{},
	}

	t.Run("String", func(t *testing.T) {
		if s, ok := String(meta, "description"); !ok || s != "text" {
			t.Errorf("String(description) = %q, %v", s, ok)
		}
		if _, ok := String(meta, "flag"); ok {
			t.Error("String(flag) should not accept a bool")
		}
	})

	t.Run("IsTrue", func(t *testing.T) {
		if !IsTrue(meta, "flag") {
			t.Error("IsTrue(flag) = false, want true")
		}
		if IsTrue(meta, "flagString") {
			t.Error("IsTrue(flagString) = true, want false")
		}
		if IsTrue(meta, "missing") {
			t.Error("IsTrue(missing) = true, want false")
		}
	})

	t.Run("Truthy", func(t *testing.T) {
		tests := map[string]bool{
			"description": true,
			"empty":       false,
			"null":        false,
			"missing":     false,
			"emptyList":   false,
			"list":        true,
		}
		for key, want := range tests {
			if got := Truthy(meta, key); got != want {
				t.Errorf("Truthy(%s) = %v, want %v", key, got, want)
			}
		}
	})

	t.Run("lists", func(t *testing.T) {
		tests := map[string]struct {
			fn   func(map[string]any, string) []string
			key  string
			want []string
		}{
			"StringList sequence":   {fn: StringList, key: "list", want: []string{"a", "2", "b"}},
			"StringList scalar":     {fn: StringList, key: "single", want: nil},
			"StringOrList scalar":   {fn: StringOrList, key: "single", want: []string{"*.go"}},
			"StringOrList empty":    {fn: StringOrList, key: "empty", want: nil},
			"StringOrList sequence": {fn: StringOrList, key: "list", want: []string{"a", "2", "b"}},
			"CommaList string":      {fn: CommaList, key: "comma", want: []string{"*.ts", "*.tsx"}},
			"CommaList sequence":    {fn: CommaList, key: "list", want: []string{"a", "2", "b"}},
			"CommaList missing":     {fn: CommaList, key: "missing", want: nil},
			"CommaList braces":      {fn: CommaList, key: "braces", want: []string{"src/**/*.{ts,tsx}", "docs/*.md"}},
			"CommaList unbalanced":  {fn: CommaList, key: "unbalanced", want: []string{"a}", "b"}},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				got := tt.fn(meta, tt.key)
				if len(got) == 0 && len(tt.want) == 0 {
					return
				}
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("got %#v, want %#v", got, tt.want)
				}
			})
		}
	})
}
