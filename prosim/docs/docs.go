// Package docs is the static keyword-documentation database consumed
// by hover and completion. The data is compiled in; nothing here
// depends on a parsed document.
package docs

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Entry documents one keyword of the input language.
type Entry struct {
	Keyword string `yaml:"keyword"`
	Section string `yaml:"section"`
	Syntax  string `yaml:"syntax"`
	Summary string `yaml:"summary"`
}

// Markdown renders the entry the way hover popups expect it.
func (e *Entry) Markdown() string {
	var sb strings.Builder
	sb.WriteString("**")
	sb.WriteString(e.Keyword)
	sb.WriteString("**")
	if e.Section != "" {
		sb.WriteString(" · ")
		sb.WriteString(e.Section)
	}
	sb.WriteString("\n\n")
	if e.Syntax != "" {
		sb.WriteString("```\n")
		sb.WriteString(e.Syntax)
		sb.WriteString("\n```\n\n")
	}
	sb.WriteString(e.Summary)
	return sb.String()
}

//go:embed keywords.yaml
var keywordData []byte

var (
	loadOnce sync.Once
	index    map[string]*Entry
	ordered  []*Entry
)

func load() {
	var file struct {
		Keywords []*Entry `yaml:"keywords"`
	}
	index = make(map[string]*Entry)
	if err := yaml.Unmarshal(keywordData, &file); err != nil {
		return
	}
	ordered = file.Keywords
	for _, entry := range file.Keywords {
		index[strings.ToUpper(entry.Keyword)] = entry
	}
}

// Lookup finds the documentation entry for a keyword, ignoring case.
func Lookup(keyword string) *Entry {
	loadOnce.Do(load)
	return index[strings.ToUpper(keyword)]
}

// All returns every documented keyword in table order.
func All() []*Entry {
	loadOnce.Do(load)
	return ordered
}

// ForSection returns the keywords that belong in a given section
// context. General keywords (section openers) belong everywhere;
// passing "" returns only those.
func ForSection(section string) []*Entry {
	loadOnce.Do(load)
	var result []*Entry
	for _, entry := range ordered {
		if entry.Section == "" || strings.EqualFold(entry.Section, section) {
			result = append(result, entry)
		}
	}
	return result
}
