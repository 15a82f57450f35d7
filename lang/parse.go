package lang

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse reads a single transcript-syntax expression, e.g.
//
//	add(add(2, add(5, 7)), 9)
//	greet("world", end="!")
//	counter
//	42
//
// Literals are integers, floats, quoted strings, true, false, and none.
// Keyword arguments use name=expr. Positional arguments may not follow
// keyword arguments.
func Parse(source string) (Expr, error) {
	p := &parser{src: source}
	p.next()

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokEOF {
		return nil, p.errorf("trailing input", p.tok)
	}

	return e, nil
}

// token kinds.
type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokString
	tokLParen
	tokRParen
	tokComma
	tokEquals
)

func (k tokKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokEquals:
		return "'='"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokKind
	text string
	pos  int // byte offset in source
}

type parser struct {
	src string
	off int
	tok token
}

func (p *parser) errorf(msg string, tok token) error {
	return ErrParse.
		With(
			slog.String("reason", msg),
			slog.String("got", tok.kind.String()),
			slog.Int("pos", tok.pos),
			slog.String("input", p.src),
		)
}

// next scans the following token into p.tok.
func (p *parser) next() {
	for p.off < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.off:])
		if !unicode.IsSpace(r) {
			break
		}

		p.off += size
	}

	start := p.off

	if p.off >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}

		return
	}

	c := p.src[p.off]

	switch {
	case c == '(':
		p.off++
		p.tok = token{kind: tokLParen, text: "(", pos: start}

	case c == ')':
		p.off++
		p.tok = token{kind: tokRParen, text: ")", pos: start}

	case c == ',':
		p.off++
		p.tok = token{kind: tokComma, text: ",", pos: start}

	case c == '=':
		p.off++
		p.tok = token{kind: tokEquals, text: "=", pos: start}

	case c == '"' || c == '\'':
		p.scanString(c, start)

	case c == '-' || (c >= '0' && c <= '9'):
		p.scanNumber(start)

	default:
		p.scanIdent(start)
	}
}

func (p *parser) scanString(quote byte, start int) {
	p.off++ // opening quote

	var sb strings.Builder

	for p.off < len(p.src) {
		c := p.src[p.off]

		if c == '\\' && p.off+1 < len(p.src) {
			p.off += 2

			switch esc := p.src[p.off-1]; esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}

			continue
		}

		if c == quote {
			p.off++
			p.tok = token{kind: tokString, text: sb.String(), pos: start}

			return
		}

		sb.WriteByte(c)
		p.off++
	}

	// Unterminated string: report via an EOF token at the opening quote.
	p.tok = token{kind: tokEOF, pos: start}
}

func (p *parser) scanNumber(start int) {
	p.off++ // sign or first digit

	for p.off < len(p.src) {
		c := p.src[p.off]
		if (c < '0' || c > '9') && c != '.' && c != 'e' &&
			c != 'E' && c != '_' {
			break
		}

		p.off++
	}

	p.tok = token{kind: tokNumber, text: p.src[start:p.off], pos: start}
}

func (p *parser) scanIdent(start int) {
	for p.off < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.off:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}

		p.off += size
	}

	if p.off == start {
		// Not a legal identifier character: consume one rune so the
		// parser cannot loop, and surface it as an identifier token the
		// grammar will reject.
		_, size := utf8.DecodeRuneInString(p.src[p.off:])
		p.off += size
	}

	p.tok = token{kind: tokIdent, text: p.src[start:p.off], pos: start}
}

// parseExpr parses a primary expression followed by any number of call
// suffixes, so a call result can itself be called.
func (p *parser) parseExpr() (Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokLParen {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}

		e = &Call{Callee: e, Args: args}
	}

	return e, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.tok

	switch tok.kind {
	case tokNumber:
		p.next()

		return numberLit(tok.text)

	case tokString:
		p.next()

		return NewLit(tok.text), nil

	case tokIdent:
		p.next()

		switch tok.text {
		case "true":
			return NewLit(true), nil
		case "false":
			return NewLit(false), nil
		case "none":
			return NewLit(NoValue), nil
		}

		if !isIdent(tok.text) {
			return nil, p.errorf("unexpected character", tok)
		}

		return NewRef(tok.text), nil

	default:
		return nil, p.errorf("expected expression", tok)
	}
}

// parseArgs parses '(' [arg {',' arg}] ')'. All positional arguments
// must precede all keyword arguments.
func (p *parser) parseArgs() ([]CallArg, error) {
	p.next() // consume '('

	var (
		args    []CallArg
		keyword bool
	)

	if p.tok.kind == tokRParen {
		p.next()

		return args, nil
	}

	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}

		if arg.Name != "" {
			keyword = true
		} else if keyword {
			return nil, p.errorf(
				"positional argument after keyword argument",
				p.tok,
			)
		}

		args = append(args, arg)

		switch p.tok.kind {
		case tokComma:
			p.next()

		case tokRParen:
			p.next()

			return args, nil

		default:
			return nil, p.errorf("expected ',' or ')'", p.tok)
		}
	}
}

func (p *parser) parseArg() (CallArg, error) {
	// Lookahead for ident '=': a keyword argument.
	if p.tok.kind == tokIdent && isIdent(p.tok.text) {
		name := p.tok.text
		save := *p

		p.next()

		if p.tok.kind == tokEquals {
			p.next()

			e, err := p.parseExpr()
			if err != nil {
				return CallArg{}, err
			}

			return Kw(name, e), nil
		}

		*p = save
	}

	e, err := p.parseExpr()
	if err != nil {
		return CallArg{}, err
	}

	return Pos(e), nil
}

// numberLit converts a scanned number to int64, falling back to float64.
func numberLit(text string) (Expr, error) {
	text = strings.ReplaceAll(text, "_", "")

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return NewLit(i), nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, ErrParse.
			With(
				slog.String("reason", "invalid number"),
				slog.String("text", text),
			)
	}

	return NewLit(f), nil
}

// isIdent reports whether s is a legal identifier: a letter or
// underscore followed by letters, digits, or underscores.
func isIdent(s string) bool {
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}

		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return s != ""
}
