package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/benv/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "env", "trace", "clear", "quit"}

// isWordBoundary reports whether r delimits words for completion. The
// transcript grammar only forms identifiers from letters, digits, and
// underscores, so everything else is a boundary.
func isWordBoundary(r rune) bool {
	switch {
	case r == '_':
		return false
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}

	return true
}

// wordBounds returns the word surrounding the cursor and its byte
// boundaries within input. An empty word is returned when the cursor
// sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidateNames returns the completion candidates for eval mode: every
// name bound in the global frame, which covers defined functions,
// builtins, and globals created by prior evaluations.
func candidateNames(sandbox *lang.Sandbox) []string {
	return sandbox.Global().Keys()
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. An empty word yields no matches so the hint line stays
// visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if m.mode == modeCtrl {
		candidates = ctrlCommands
	} else {
		candidates = candidateNames(m.sandbox)
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized
// to fit within the given terminal width. The selected candidate (when
// tabbing) uses the selected style.
func renderCandidateBar(
	m model,
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(m, match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Names bound to functions display with a "()" suffix.
func renderCandidate(m model, match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	if m.mode == modeEval && isFunction(m.sandbox, match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}

// isFunction reports whether name is bound to a callable in the global
// frame.
func isFunction(sandbox *lang.Sandbox, name string) bool {
	value, err := sandbox.Global().Lookup(name)
	if err != nil {
		return false
	}

	_, ok := value.(*lang.Function)

	return ok
}

// formatPreview generates a one-line preview for a global binding: the
// parameter list for functions, the formatted value otherwise.
func formatPreview(sandbox *lang.Sandbox, name string) string {
	value, err := sandbox.Global().Lookup(name)
	if err != nil {
		return ""
	}

	if fn, ok := value.(*lang.Function); ok {
		return describeParams(fn.Params)
	}

	const maxPreview = 40

	preview := lang.FormatValue(value)
	if len(preview) > maxPreview {
		preview = preview[:maxPreview-3] + "..."
	}

	return preview
}

// describeParams renders a parameter list, showing defaults inline.
func describeParams(params lang.Params) string {
	names := make([]string, len(params))

	for i, p := range params {
		if p.HasDefault {
			names[i] = p.Name + "=" + lang.QuoteValue(p.Default)
		} else {
			names[i] = p.Name
		}
	}

	return "(" + strings.Join(names, ", ") + ")"
}
