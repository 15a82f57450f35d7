package lang

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/goccy/go-yaml"
)

// Script is the YAML document format for sandbox programs: global
// bindings, function definitions, and an optional entry call.
//
// Example:
//
//	globals:
//	  counter: 0
//	funcs:
//	  - name: add
//	    params: [x, {name: y, default: 1}]
//	    expr: x + y
//	  - name: bump
//	    steps:
//	      - global: counter
//	      - assign: {name: counter, value: "add(counter)"}
//	main:
//	  call: add
//	  args: [3, 7]
type Script struct {
	Globals map[string]any `json:"globals,omitempty" yaml:"globals,omitempty"`
	Funcs   []ScriptFunc   `json:"funcs"             yaml:"funcs"`
	Main    *ScriptCall    `json:"main,omitempty"    yaml:"main,omitempty"`
}

// ScriptFunc declares one function. Exactly one of Expr (an expr-lang
// program over the parameters and globals) or Steps may be set; a
// function with neither completes immediately with no value.
type ScriptFunc struct {
	Name   string        `json:"name"             yaml:"name"`
	Params []ScriptParam `json:"params,omitempty" yaml:"params,omitempty"`
	Expr   string        `json:"expr,omitempty"   yaml:"expr,omitempty"`
	Steps  []ScriptStep  `json:"steps,omitempty"  yaml:"steps,omitempty"`
}

// ScriptParam declares one parameter. In YAML it is either a bare name
// or a mapping with name and default keys.
type ScriptParam struct {
	Name       string `json:"name"`
	Default    any    `json:"default,omitempty"`
	HasDefault bool   `json:"-"`
}

// UnmarshalYAML accepts either a scalar name or a name/default mapping.
func (p *ScriptParam) UnmarshalYAML(b []byte) error {
	var name string

	if err := yaml.Unmarshal(b, &name); err == nil {
		p.Name = name
		p.Default = nil
		p.HasDefault = false

		return nil
	}

	var raw map[string]any

	err := yaml.Unmarshal(b, &raw)
	if err != nil {
		return err
	}

	if name, ok := raw["name"].(string); ok {
		p.Name = name
	}

	if def, ok := raw["default"]; ok {
		p.Default = normalizeValue(def)
		p.HasDefault = true
	}

	return nil
}

// MarshalYAML renders a bare name when the parameter has no default.
func (p ScriptParam) MarshalYAML() ([]byte, error) {
	if !p.HasDefault {
		return yaml.Marshal(p.Name)
	}

	return yaml.Marshal(map[string]any{
		"name":    p.Name,
		"default": p.Default,
	})
}

// ScriptStep is one statement of a steps body. Exactly one field is set.
// Expression fields hold transcript-syntax source parsed with [Parse].
// A return with an empty expression yields [NoValue].
type ScriptStep struct {
	Assign *ScriptAssign `json:"assign,omitempty" yaml:"assign,omitempty"`
	Global string        `json:"global,omitempty" yaml:"global,omitempty"`
	Eval   string        `json:"eval,omitempty"   yaml:"eval,omitempty"`
	Return *string       `json:"return,omitempty" yaml:"return,omitempty"`
}

// ScriptAssign names a binding target and the expression producing its
// value.
type ScriptAssign struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ScriptCall is the entry invocation: a function name with pre-reduced
// argument values. Keyword arguments are applied in sorted name order.
type ScriptCall struct {
	Call   string         `json:"call"             yaml:"call"`
	Args   []any          `json:"args,omitempty"   yaml:"args,omitempty"`
	Kwargs map[string]any `json:"kwargs,omitempty" yaml:"kwargs,omitempty"`
}

// LoadScript decodes a YAML script document.
func LoadScript(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrBadScript.Wrap(err)
	}

	var script Script

	err = yaml.Unmarshal(data, &script)
	if err != nil {
		return nil, ErrBadScript.Wrap(err)
	}

	script.Globals = normalizeMap(script.Globals)

	if script.Main != nil {
		for i, v := range script.Main.Args {
			script.Main.Args[i] = normalizeValue(v)
		}

		script.Main.Kwargs = normalizeMap(script.Main.Kwargs)
	}

	return &script, nil
}

// Install binds the script's globals and defines its functions in the
// sandbox.
func (s *Sandbox) Install(ctx context.Context, script *Script) error {
	for _, name := range sortedKeys(script.Globals) {
		s.global.Bind(name, script.Globals[name])
	}

	for _, sf := range script.Funcs {
		fn, err := sf.compile()
		if err != nil {
			return err
		}

		err = s.Define(fn)
		if err != nil {
			return err
		}
	}

	s.logger.DebugContext(
		ctx,
		"script installed",
		slog.Int("globals", len(script.Globals)),
		slog.Int("funcs", len(script.Funcs)),
	)

	return nil
}

// RunMain invokes the script's entry call, if any. Scripts without a
// main section reduce to [NoValue].
func (s *Sandbox) RunMain(ctx context.Context, script *Script) (any, error) {
	if script.Main == nil {
		return NoValue, nil
	}

	args := NewArgs(script.Main.Args...)

	for _, name := range sortedKeys(script.Main.Kwargs) {
		args = args.Keyword(name, script.Main.Kwargs[name])
	}

	return s.Call(ctx, script.Main.Call, args)
}

// compile translates the declaration into a Function.
func (sf ScriptFunc) compile() (*Function, error) {
	if sf.Name == "" {
		return nil, ErrBadScript.
			With(slog.String("reason", "function missing name"))
	}

	if sf.Expr != "" && len(sf.Steps) > 0 {
		return nil, ErrBadScript.
			With(
				slog.String("reason", "function has both expr and steps"),
				slog.String("function", sf.Name),
			)
	}

	params := make(Params, 0, len(sf.Params))

	for _, p := range sf.Params {
		if p.HasDefault {
			params = append(params, Defaulted(p.Name, p.Default))
		} else {
			params = append(params, Required(p.Name))
		}
	}

	body, err := sf.compileBody()
	if err != nil {
		return nil, err
	}

	return &Function{
		Name:   sf.Name,
		Params: params,
		Body:   body,
	}, nil
}

func (sf ScriptFunc) compileBody() (Body, error) {
	if sf.Expr != "" {
		return CompileExprBody(sf.Expr)
	}

	steps := make(Steps, 0, len(sf.Steps))

	for _, ss := range sf.Steps {
		step, err := ss.compile(sf.Name)
		if err != nil {
			return nil, err
		}

		steps = append(steps, step)
	}

	return steps, nil
}

func (ss ScriptStep) compile(fname string) (Step, error) {
	switch {
	case ss.Assign != nil:
		e, err := Parse(ss.Assign.Value)
		if err != nil {
			return nil, err
		}

		return AssignStep{Name: ss.Assign.Name, Expr: e}, nil

	case ss.Global != "":
		return GlobalStep{Name: ss.Global}, nil

	case ss.Eval != "":
		e, err := Parse(ss.Eval)
		if err != nil {
			return nil, err
		}

		return EvalStep{Expr: e}, nil

	case ss.Return != nil:
		if *ss.Return == "" {
			return ReturnStep{}, nil
		}

		e, err := Parse(*ss.Return)
		if err != nil {
			return nil, err
		}

		return ReturnStep{Expr: e}, nil

	default:
		return nil, ErrBadScript.
			With(
				slog.String("reason", "empty step"),
				slog.String("function", fname),
			)
	}
}

// normalizeValue canonicalizes decoded YAML scalars: all integer types
// become int64 and nested containers are normalized recursively, so
// script values compare equal to parser and expr results.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)

	case uint64:
		return int64(n) //nolint:gosec

	case map[string]any:
		return normalizeMap(n)

	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = normalizeValue(e)
		}

		return out

	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}

	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
