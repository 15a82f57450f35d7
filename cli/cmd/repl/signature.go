package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/benv/lang"
)

// Signature hint styles.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
	signatureSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// functionCall describes a call site detected around the cursor.
type functionCall struct {
	name     string // callee identifier
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside the argument list
}

// detectFunctionCall reports whether the cursor sits inside a call's
// argument list, and if so which call and which argument. Nested calls
// resolve to the innermost unclosed paren.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Scan backward from cursor for the innermost unmatched open paren.
	parenDepth := 0
	openParenPos := -1

scan:
	for i := cursor; i > 0; {
		ch, size := utf8.DecodeLastRuneInString(input[:i])

		switch ch {
		case ')':
			parenDepth++
		case '(':
			if parenDepth == 0 {
				openParenPos = i - size

				break scan
			}

			parenDepth--
		}

		i -= size
	}

	if openParenPos == -1 {
		return functionCall{}
	}

	// Collect the identifier immediately before the paren.
	nameEnd := openParenPos
	nameStart := openParenPos

	for nameStart > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:nameStart])
		if isWordBoundary(r) {
			break
		}

		nameStart -= size
	}

	name := strings.TrimSpace(input[nameStart:nameEnd])
	if name == "" {
		return functionCall{}
	}

	// The argument index is the count of top-level commas before the
	// cursor within this argument list.
	argIndex := 0
	depth := 0

	for i := openParenPos + 1; i < cursor; {
		ch, size := utf8.DecodeRuneInString(input[i:])

		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}

		i += size
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// getSignature resolves name in the global frame and returns its
// rendered signature and parameter labels. Builtins and user-defined
// functions resolve identically since both live in the global frame.
// Returns an empty signature when name is not bound to a function.
func getSignature(
	sandbox *lang.Sandbox,
	name string,
) (signature string, params []string) {
	value, err := sandbox.Global().Lookup(name)
	if err != nil {
		return "", nil
	}

	fn, ok := value.(*lang.Function)
	if !ok {
		return "", nil
	}

	labels := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		if p.HasDefault {
			labels[i] = p.Name + "=" + lang.QuoteValue(p.Default)
		} else {
			labels[i] = p.Name
		}
	}

	return fn.Name + "(" + strings.Join(labels, ", ") + ")", labels
}

// renderSignatureHint renders the signature with the current parameter
// highlighted. Arguments beyond the declared parameters leave nothing
// highlighted.
func renderSignatureHint(
	signature string,
	params []string,
	currentArgIdx int,
) string {
	if signature == "" {
		return ""
	}

	openParen := strings.Index(signature, "(")
	if openParen == -1 {
		return signatureStyle.Render(signature)
	}

	funcName := signature[:openParen]

	if len(params) == 0 {
		return signatureNameStyle.Render(funcName) +
			signatureStyle.Render("()")
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(funcName))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(", "))
		}

		if currentArgIdx == i {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
