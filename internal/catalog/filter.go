package catalog

import (
	"fmt"
	"strings"
)

// Filter selects which volume field a search term is matched against.
type Filter int

const (
	FilterTitle Filter = iota
	FilterAuthor
	FilterPublisher
	FilterISBN
)

var filterOrder = []Filter{FilterTitle, FilterAuthor, FilterPublisher, FilterISBN}

// Filters returns every filter in selector order.
func Filters() []Filter {
	out := make([]Filter, len(filterOrder))
	copy(out, filterOrder)
	return out
}

// String returns the query prefix for the filter.
func (f Filter) String() string {
	switch f {
	case FilterAuthor:
		return "author"
	case FilterPublisher:
		return "publisher"
	case FilterISBN:
		return "isbn"
	default:
		return "title"
	}
}

// Label returns the display name used by the filter selector.
func (f Filter) Label() string {
	switch f {
	case FilterAuthor:
		return "Author"
	case FilterPublisher:
		return "Publisher"
	case FilterISBN:
		return "ISBN"
	default:
		return "Title"
	}
}

// Next cycles to the following filter, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range filterOrder {
		if candidate == f {
			return filterOrder[(i+1)%len(filterOrder)]
		}
	}
	return FilterTitle
}

// ParseFilter accepts the filter names and the upstream qualifier spellings.
func ParseFilter(value string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "title", "intitle":
		return FilterTitle, nil
	case "author", "inauthor":
		return FilterAuthor, nil
	case "publisher", "inpublisher":
		return FilterPublisher, nil
	case "isbn":
		return FilterISBN, nil
	default:
		return FilterTitle, fmt.Errorf("unknown search filter %q", value)
	}
}

// MarshalText implements encoding.TextMarshaler so filters round-trip through TOML.
func (f Filter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Filter) UnmarshalText(text []byte) error {
	parsed, err := ParseFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Request is a single search invocation: a term matched against one filter.
type Request struct {
	Term   string
	Filter Filter
}

// Empty reports whether the request has no term and must not be sent.
func (r Request) Empty() bool {
	return r.Term == ""
}

// Query formats the request as the upstream q parameter.
func (r Request) Query() string {
	return r.Filter.String() + ":" + r.Term
}
