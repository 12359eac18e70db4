package fzf

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/knobase/kb/internal/markdown"
	"github.com/knobase/kb/internal/repository"
)

// FuzzyFinder wraps interactive note selection with a markdown preview pane.
type FuzzyFinder struct {
	Header string
	notes  []*repository.Note
}

func NewFuzzyFinder(header string) *FuzzyFinder {
	return &FuzzyFinder{Header: header}
}

// Run lets the user pick one note out of the given collection.
func (f *FuzzyFinder) Run(notes []*repository.Note) (*repository.Note, error) {
	return f.RunWithQuery(notes, "")
}

// RunWithQuery pre-fills the finder's query line.
func (f *FuzzyFinder) RunWithQuery(notes []*repository.Note, query string) (*repository.Note, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("no notes to select from")
	}

	f.notes = notes

	idx, err := f.fuzzySelectNote(query)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return nil, fmt.Errorf("no note selected")
		}
		return nil, err
	}

	return f.notes[idx], nil
}

func (f *FuzzyFinder) fuzzySelectNote(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderNotePreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	labels := make([]string, len(f.notes))
	for i, note := range f.notes {
		labels[i] = fmt.Sprintf("%s [%s] (%s)", note.Title, note.FolderName(), note.Permission)
	}

	return fuzzyfinder.Find(f.notes, func(i int) string {
		return labels[i]
	}, options...)
}

func (f *FuzzyFinder) renderNotePreview(i, w, h int) string {
	if i == -1 {
		return ""
	}
	return markdown.RenderPreview(f.notes[i].Content, w)
}
