package catalog

import (
	"errors"
	"fmt"
	"testing"
)

func TestVolumeThumbnail(t *testing.T) {
	cases := []struct {
		name  string
		links map[string]string
		want  string
	}{
		{"none", map[string]string{}, ""},
		{"upgrades http", map[string]string{"thumbnail": "http://x/t.jpg"}, "https://x/t.jpg"},
		{"keeps https", map[string]string{"thumbnail": "https://x/t.jpg"}, "https://x/t.jpg"},
		{"falls back to small", map[string]string{"smallThumbnail": "http://x/s.jpg"}, "https://x/s.jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Volume{ImageLinks: tc.links}
			if got := v.Thumbnail(); got != tc.want {
				t.Fatalf("Thumbnail = %q, want %q", got, tc.want)
			}
			if v.HasCover() != (tc.want != "") {
				t.Fatalf("HasCover = %v, want %v", v.HasCover(), tc.want != "")
			}
		})
	}
}

func TestResponseCloneIsDeep(t *testing.T) {
	orig := Response{Entries: []Entry{{
		ID:     "a",
		Volume: Volume{Authors: []string{"A"}, ImageLinks: map[string]string{"thumbnail": "t"}},
	}}}
	dup := orig.Clone()
	dup.Entries[0].ID = "b"
	dup.Entries[0].Volume.Authors[0] = "B"
	dup.Entries[0].Volume.ImageLinks["thumbnail"] = "changed"

	if orig.Entries[0].ID != "a" || orig.Entries[0].Volume.Authors[0] != "A" || orig.Entries[0].Volume.ImageLinks["thumbnail"] != "t" {
		t.Fatalf("Clone shares state with original: %#v", orig)
	}
}

func TestFilterParsingAndQuery(t *testing.T) {
	cases := []struct {
		in   string
		want Filter
	}{
		{"", FilterTitle},
		{"Title", FilterTitle},
		{"intitle", FilterTitle},
		{" author ", FilterAuthor},
		{"inpublisher", FilterPublisher},
		{"ISBN", FilterISBN},
	}
	for _, tc := range cases {
		got, err := ParseFilter(tc.in)
		if err != nil {
			t.Fatalf("ParseFilter(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFilter(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseFilter("genre"); err == nil {
		t.Fatalf("ParseFilter(genre) returned nil error, want error")
	}

	req := Request{Term: "9780140328721", Filter: FilterISBN}
	if got := req.Query(); got != "isbn:9780140328721" {
		t.Fatalf("Query = %q, want isbn:9780140328721", got)
	}
	if !(Request{Filter: FilterAuthor}).Empty() {
		t.Fatalf("Empty() = false for blank term, want true")
	}
}

func TestFilterNextCycles(t *testing.T) {
	f := FilterTitle
	seen := []Filter{}
	for i := 0; i < 4; i++ {
		seen = append(seen, f)
		f = f.Next()
	}
	if f != FilterTitle {
		t.Fatalf("Next did not wrap: got %v", f)
	}
	if seen[3] != FilterISBN {
		t.Fatalf("cycle = %v, want ISBN last", seen)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{nil, KindUnknown},
		{errors.New("plain"), KindUnknown},
		{&TransportError{Op: "execute request", Err: errors.New("refused")}, KindTransport},
		{fmt.Errorf("wrapped: %w", &HTTPStatusError{StatusCode: 503}), KindHTTPStatus},
		{&DecodeError{Reason: "bad"}, KindDecode},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
