package lang

import "strings"

// Expr is a node of an expression tree: a literal, a name reference, or
// a call. The reducer evaluates trees depth-first, innermost calls first,
// with left-to-right argument evaluation.
type Expr interface {
	// Render returns the transcript-syntax form of the expression.
	Render() string

	exprNode()
}

// Lit is a literal value node.
type Lit struct {
	Value any
}

// Ref is a name reference node, resolved against the evaluating frame.
type Ref struct {
	Name string
}

// Call is a call node: a callee expression plus ordered argument
// expressions, some positional, some keyword.
type Call struct {
	Callee Expr
	Args   []CallArg
}

// CallArg is a single argument expression. An empty Name marks a
// positional argument; otherwise the argument is matched by keyword.
type CallArg struct {
	Name string
	Expr Expr
}

func (Lit) exprNode()   {}
func (Ref) exprNode()   {}
func (*Call) exprNode() {}

// NewLit returns a literal node.
func NewLit(value any) Lit { return Lit{Value: value} }

// NewRef returns a name reference node.
func NewRef(name string) Ref { return Ref{Name: name} }

// NewCall returns a call node invoking the named function.
func NewCall(name string, args ...CallArg) *Call {
	return &Call{Callee: NewRef(name), Args: args}
}

// Pos returns a positional call argument.
func Pos(e Expr) CallArg { return CallArg{Expr: e} }

// Kw returns a keyword call argument.
func Kw(name string, e Expr) CallArg { return CallArg{Name: name, Expr: e} }

// Render returns the literal in transcript syntax, with strings quoted.
func (l Lit) Render() string { return QuoteValue(l.Value) }

// Render returns the referenced name.
func (r Ref) Render() string { return r.Name }

// Render returns the call in transcript syntax, e.g. add(3, y=7).
func (c *Call) Render() string {
	var sb strings.Builder

	sb.WriteString(c.Callee.Render())
	sb.WriteByte('(')

	for i, arg := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}

		if arg.Name != "" {
			sb.WriteString(arg.Name)
			sb.WriteByte('=')
		}

		sb.WriteString(arg.Expr.Render())
	}

	sb.WriteByte(')')

	return sb.String()
}
