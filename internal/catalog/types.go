package catalog

import "strings"

// Fallback values substituted for fields missing from the upstream payload.
const (
	DefaultTitle         = "Title not available"
	DefaultAuthor        = "Author not available"
	DefaultPublishedDate = "Publication date not available"
	DefaultDescription   = "Description not available"
)

// Response mirrors the volumes search payload after normalization.
type Response struct {
	Kind        string  `json:"kind" yaml:"kind"`
	ResultCount int     `json:"totalItems" yaml:"totalItems"`
	Entries     []Entry `json:"items" yaml:"items"`
}

// Entry is one volume in a search response. IDs are unique within a single
// response only.
type Entry struct {
	ID     string `json:"id" yaml:"id"`
	Volume Volume `json:"volumeInfo" yaml:"volumeInfo"`
}

// Volume holds the bibliographic fields shown for an entry. Every field is
// populated after normalization.
type Volume struct {
	Title         string            `json:"title" yaml:"title"`
	Authors       []string          `json:"authors" yaml:"authors"`
	PublishedDate string            `json:"publishedDate" yaml:"publishedDate"`
	Description   string            `json:"description" yaml:"description"`
	ImageLinks    map[string]string `json:"imageLinks" yaml:"imageLinks"`
}

// AuthorLine joins the authors for single-line display.
func (v Volume) AuthorLine() string {
	return strings.Join(v.Authors, ", ")
}

// HasCover reports whether the volume carries a usable thumbnail link.
func (v Volume) HasCover() bool {
	return v.Thumbnail() != ""
}

// Thumbnail returns the cover thumbnail upgraded to https, preferring the
// regular thumbnail over the small one.
func (v Volume) Thumbnail() string {
	link := strings.TrimSpace(v.ImageLinks["thumbnail"])
	if link == "" {
		link = strings.TrimSpace(v.ImageLinks["smallThumbnail"])
	}
	if link == "" {
		return ""
	}
	if strings.HasPrefix(link, "http://") {
		return "https://" + strings.TrimPrefix(link, "http://")
	}
	return link
}

// Clone returns a deep copy so callers can hand out a response without
// sharing slices or maps.
func (r Response) Clone() Response {
	out := r
	if r.Entries == nil {
		return out
	}
	out.Entries = make([]Entry, len(r.Entries))
	for i, entry := range r.Entries {
		out.Entries[i] = entry.clone()
	}
	return out
}

func (e Entry) clone() Entry {
	out := e
	if e.Volume.Authors != nil {
		out.Volume.Authors = append([]string(nil), e.Volume.Authors...)
	}
	if e.Volume.ImageLinks != nil {
		links := make(map[string]string, len(e.Volume.ImageLinks))
		for k, v := range e.Volume.ImageLinks {
			links[k] = v
		}
		out.Volume.ImageLinks = links
	}
	return out
}
