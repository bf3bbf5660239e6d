package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize_MissingOptionalFieldsUseDefaults(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
	}{
		{
			name:      "absent",
			raw:       `{"kind":"books#volumes","totalItems":1,"items":[{"id":"abc","volumeInfo":{"title":"Dune"}}]}`,
			wantTitle: "Dune",
		},
		{
			name:      "null",
			raw:       `{"kind":"books#volumes","totalItems":1,"items":[{"id":"abc","volumeInfo":{"title":null,"authors":null,"publishedDate":null,"description":null,"imageLinks":null}}]}`,
			wantTitle: DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Normalize([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Normalize returned error: %v", err)
			}
			if resp.Kind != "books#volumes" || resp.ResultCount != 1 {
				t.Fatalf("envelope = %q/%d, want books#volumes/1", resp.Kind, resp.ResultCount)
			}
			if len(resp.Entries) != 1 {
				t.Fatalf("entries = %d, want 1", len(resp.Entries))
			}
			vol := resp.Entries[0].Volume
			if vol.Title != tt.wantTitle {
				t.Fatalf("Title = %q, want %q", vol.Title, tt.wantTitle)
			}
			if len(vol.Authors) != 1 || vol.Authors[0] != DefaultAuthor {
				t.Fatalf("Authors = %#v, want [%q]", vol.Authors, DefaultAuthor)
			}
			if vol.PublishedDate != DefaultPublishedDate {
				t.Fatalf("PublishedDate = %q, want %q", vol.PublishedDate, DefaultPublishedDate)
			}
			if vol.Description != DefaultDescription {
				t.Fatalf("Description = %q, want %q", vol.Description, DefaultDescription)
			}
			if vol.ImageLinks == nil || len(vol.ImageLinks) != 0 {
				t.Fatalf("ImageLinks = %#v, want empty non-nil map", vol.ImageLinks)
			}
		})
	}
}

func TestNormalize_MissingVolumeInfoUsesAllDefaults(t *testing.T) {
	resp, err := Normalize([]byte(`{"items":[{"id":"x"},{"id":"y","volumeInfo":null}]}`))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	for _, entry := range resp.Entries {
		if entry.Volume.Title != DefaultTitle {
			t.Fatalf("entry %s Title = %q, want %q", entry.ID, entry.Volume.Title, DefaultTitle)
		}
	}
}

func TestNormalize_PreservesPresentFieldsAndIgnoresUnknown(t *testing.T) {
	raw := []byte(`{
		"kind": "books#volumes",
		"totalItems": 2,
		"somethingNew": {"nested": true},
		"items": [{
			"id": "1",
			"etag": "zzz",
			"volumeInfo": {
				"title": "Matilda",
				"authors": ["Roald Dahl", "Quentin Blake"],
				"publishedDate": "1988",
				"description": "A girl and her books.",
				"pageCount": 240,
				"imageLinks": {"thumbnail": "http://books.example/t.jpg", "smallThumbnail": "http://books.example/s.jpg"}
			}
		}]
	}`)
	resp, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	vol := resp.Entries[0].Volume
	if vol.AuthorLine() != "Roald Dahl, Quentin Blake" {
		t.Fatalf("AuthorLine = %q", vol.AuthorLine())
	}
	if vol.PublishedDate != "1988" || vol.Description != "A girl and her books." {
		t.Fatalf("volume = %#v, want present fields kept", vol)
	}
	if vol.ImageLinks["smallThumbnail"] != "http://books.example/s.jpg" {
		t.Fatalf("ImageLinks = %#v, want links kept verbatim", vol.ImageLinks)
	}
}

func TestNormalize_MissingItemsIsEmpty(t *testing.T) {
	resp, err := Normalize([]byte(`{"kind":"books#volumes","totalItems":0}`))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if resp.Entries == nil || len(resp.Entries) != 0 {
		t.Fatalf("Entries = %#v, want empty non-nil slice", resp.Entries)
	}
}

func TestNormalize_StructuralFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing id", `{"items":[{"volumeInfo":{"title":"x"}}]}`, "item 0 has no id"},
		{"empty id", `{"items":[{"id":"ok"},{"id":""}]}`, "item 1 has no id"},
		{"numeric id", `{"items":[{"id":7}]}`, "decode response"},
		{"null item", `{"items":[null]}`, "item 0 is null"},
		{"array envelope", `[]`, "not a JSON object"},
		{"null envelope", `null`, "not a JSON object"},
		{"empty body", `  `, "empty body"},
		{"malformed", `{not-json`, "decode response"},
		{"wrong authors type", `{"items":[{"id":"a","volumeInfo":{"authors":"solo"}}]}`, "decode response"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize([]byte(tc.body))
			if err == nil {
				t.Fatalf("Normalize returned nil error, want DecodeError")
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("Normalize error = %T, want *DecodeError", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Normalize error = %q, want it to mention %q", err.Error(), tc.want)
			}
		})
	}
}
