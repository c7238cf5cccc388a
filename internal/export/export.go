// Package export renders a finished script into downloadable documents.
// Every renderer reproduces all scenes, in order, with their text verbatim.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/thywilljoshua/scriptgen/internal/script"
)

// Document is the logical structure shared by all export formats:
// a title block followed by one section per scene.
type Document struct {
	Title    string
	Author   string
	Duration string
	Sections []Section
}

type Section struct {
	Number       int
	Scene        string
	Narration    string
	KeySentences []string
	VisualPrompt string
}

// Renderer turns a Document into file bytes.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension, e.g. ".pdf".
	Extension() string
}

// Build lays out scenes for export. userName is optional.
func Build(scenes []script.Scene, userName string) Document {
	doc := Document{
		Title:  "Skrip Video Edukasi",
		Author: strings.TrimSpace(userName),
	}
	if d, ok := script.Estimate(scenes); ok {
		doc.Duration = fmt.Sprintf("%d menit %d detik", d.Minutes, d.Seconds)
	}
	doc.Sections = make([]Section, len(scenes))
	for i, s := range scenes {
		doc.Sections[i] = Section{
			Number:       i + 1,
			Scene:        s.Scene,
			Narration:    s.Narration,
			KeySentences: append([]string(nil), s.KeySentences...),
			VisualPrompt: s.VisualPrompt,
		}
	}
	return doc
}

// ForFormat returns the renderer for "pdf", "xlsx" or "json".
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "pdf":
		return NewPDFRenderer(), nil
	case "xlsx":
		return NewXLSXRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	}
	return nil, fmt.Errorf("unknown export format %q (want pdf|xlsx|json)", format)
}

// Render builds and renders scenes in one step.
func Render(r Renderer, scenes []script.Scene, userName string) ([]byte, error) {
	if len(scenes) == 0 {
		return nil, fmt.Errorf("nothing to export: script has no scenes")
	}
	return r.Render(Build(scenes, userName))
}

var nonSlug = regexp.MustCompile(`[^a-z0-9\-]+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlug.ReplaceAllString(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// Filename derives the download name from the teacher name.
func Filename(userName, ext string) string {
	if slug := slugify(userName); slug != "" {
		return "skrip-video-" + slug + ext
	}
	return "skrip-video" + ext
}
