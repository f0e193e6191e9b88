// Package history derives continuity signals from the short transcript the
// client sends with each turn. Lines are ordered oldest first and prefixed by
// speaker, e.g. "Usuario: ..." or "Asistente: ...".
package history

import (
	"regexp"
	"strings"

	"github.com/ashureev/spiritual-guide/internal/shared"
)

// Defaults used by the orchestrator.
const (
	DefaultMaxQuestions = 5
	DefaultMaxRefs      = 3
	DefaultKeep         = 10
	DefaultMaxLen       = 240
)

const bookChapterVerse = `((?:[1-3]\s*)?[A-Za-zÁÉÍÓÚÜÑáéíóúüñ]+\s+\d+:\d+)`

var (
	assistantPrefix = regexp.MustCompile(`(?i)^Asistente:\s*`)
	questionTail    = regexp.MustCompile(`(?m)([^?]*\?)\s*$`)

	// Checked in order; the first format found on a line wins.
	refPatterns = []*regexp.Regexp{
		regexp.MustCompile(`—\s*` + bookChapterVerse),
		regexp.MustCompile(`-\s*` + bookChapterVerse),
		regexp.MustCompile(`\(\s*` + bookChapterVerse + `\s*\)`),
	}
)

// RecentAssistantQuestions returns the normalized trailing question of the
// most recent assistant lines, newest first and without duplicates. At most
// max assistant lines are inspected, whether or not they contain a question.
func RecentAssistantQuestions(history []string, max int) []string {
	var questions []string
	seen := 0
	for i := len(history) - 1; i >= 0 && seen < max; i-- {
		line := history[i]
		loc := assistantPrefix.FindStringIndex(line)
		if loc == nil {
			continue
		}
		seen++

		text := strings.TrimSpace(line[loc[1]:])
		m := questionTail.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		q := shared.NormalizeQuestion(trailingClause(m[1]))
		if q != "" && !contains(questions, q) {
			questions = append(questions, q)
		}
	}
	return questions
}

// trailingClause narrows a segment ending in '?' to the interrogative clause:
// from the last '¿' when present, otherwise after the last sentence break.
func trailingClause(seg string) string {
	if i := strings.LastIndex(seg, "¿"); i >= 0 {
		return seg[i:]
	}
	if i := strings.LastIndexAny(seg, ".!\n"); i >= 0 {
		return seg[i+1:]
	}
	return seg
}

// RecentBibleRefs returns up to maxRefs distinct verse references cited in
// the transcript, newest first. A reference follows an em dash, a hyphen, or
// sits in parentheses: "— Juan 3:16", "- Salmos 23:1", "(Mateo 11:28)".
func RecentBibleRefs(history []string, maxRefs int) []string {
	if maxRefs <= 0 {
		return nil
	}
	var refs []string
	for i := len(history) - 1; i >= 0; i-- {
		ref := findRef(history[i])
		if ref == "" || contains(refs, ref) {
			continue
		}
		refs = append(refs, ref)
		if len(refs) >= maxRefs {
			break
		}
	}
	return refs
}

func findRef(line string) string {
	for _, p := range refPatterns {
		if m := p.FindStringSubmatch(line); m != nil {
			return shared.CleanRef(m[1])
		}
	}
	return ""
}

// Compact returns the last keep lines, each cut to maxLen runes.
func Compact(history []string, keep, maxLen int) []string {
	if keep <= 0 {
		return nil
	}
	if len(history) > keep {
		history = history[len(history)-keep:]
	}
	out := make([]string, 0, len(history))
	for _, line := range history {
		out = append(out, shared.Truncate(line, maxLen))
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
