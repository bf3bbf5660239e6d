package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type rawEnvelope struct {
	Kind       *string     `json:"kind"`
	TotalItems *int        `json:"totalItems"`
	Items      []*rawEntry `json:"items"`
}

type rawEntry struct {
	ID         *string    `json:"id"`
	VolumeInfo *rawVolume `json:"volumeInfo"`
}

type rawVolume struct {
	Title         *string           `json:"title"`
	Authors       []string          `json:"authors"`
	PublishedDate *string           `json:"publishedDate"`
	Description   *string           `json:"description"`
	ImageLinks    map[string]string `json:"imageLinks"`
}

// Normalize decodes a volumes payload and fills every optional field with its
// fallback. Unknown fields are ignored. Only a non-object envelope, a missing
// or non-string entry id, or malformed JSON produce a *DecodeError.
func Normalize(raw []byte) (Response, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Response{}, &DecodeError{Reason: "empty body"}
	}
	if trimmed[0] != '{' {
		return Response{}, &DecodeError{Reason: "envelope is not a JSON object"}
	}

	var env rawEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Response{}, &DecodeError{Err: err}
	}

	resp := Response{Entries: make([]Entry, 0, len(env.Items))}
	if env.Kind != nil {
		resp.Kind = *env.Kind
	}
	if env.TotalItems != nil {
		resp.ResultCount = *env.TotalItems
	}

	for i, item := range env.Items {
		if item == nil {
			return Response{}, &DecodeError{Reason: fmt.Sprintf("item %d is null", i)}
		}
		if item.ID == nil || *item.ID == "" {
			return Response{}, &DecodeError{Reason: fmt.Sprintf("item %d has no id", i)}
		}
		resp.Entries = append(resp.Entries, Entry{
			ID:     *item.ID,
			Volume: normalizeVolume(item.VolumeInfo),
		})
	}
	return resp, nil
}

func normalizeVolume(raw *rawVolume) Volume {
	vol := Volume{
		Title:         DefaultTitle,
		Authors:       []string{DefaultAuthor},
		PublishedDate: DefaultPublishedDate,
		Description:   DefaultDescription,
		ImageLinks:    map[string]string{},
	}
	if raw == nil {
		return vol
	}
	if raw.Title != nil {
		vol.Title = *raw.Title
	}
	if len(raw.Authors) > 0 {
		vol.Authors = append([]string(nil), raw.Authors...)
	}
	if raw.PublishedDate != nil {
		vol.PublishedDate = *raw.PublishedDate
	}
	if raw.Description != nil {
		vol.Description = *raw.Description
	}
	for kind, link := range raw.ImageLinks {
		vol.ImageLinks[kind] = link
	}
	return vol
}
