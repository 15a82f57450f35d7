package lang

import "log/slog"

// Param declares a single function parameter, optionally carrying a
// default value used when no argument is supplied at call time.
type Param struct {
	Name       string
	Default    any
	HasDefault bool
}

// Required returns a parameter with no default value.
func Required(name string) Param {
	return Param{Name: name}
}

// Defaulted returns a parameter whose default is used when the call
// supplies no argument for it.
func Defaulted(name string, value any) Param {
	return Param{Name: name, Default: value, HasDefault: true}
}

// Params is an ordered parameter list.
//
// Invariant: once a parameter has a default, all subsequent parameters
// must also have defaults. [Params.Validate] enforces this along with
// name uniqueness.
type Params []Param

// Validate checks the structural invariants of the parameter list.
func (p Params) Validate() error {
	seen := make(map[string]struct{}, len(p))
	defaulted := false

	for _, param := range p {
		if param.Name == "" {
			return ErrInvalidParams.
				With(slog.String("reason", "empty parameter name"))
		}

		if _, ok := seen[param.Name]; ok {
			return ErrInvalidParams.
				With(
					slog.String("reason", "duplicate parameter name"),
					slog.String("name", param.Name),
				)
		}

		seen[param.Name] = struct{}{}

		if param.HasDefault {
			defaulted = true
		} else if defaulted {
			return ErrInvalidParams.
				With(
					slog.String("reason", "non-default parameter after default"),
					slog.String("name", param.Name),
				)
		}
	}

	return nil
}

// Names returns the declared parameter names in order.
func (p Params) Names() []string {
	names := make([]string, len(p))
	for i, param := range p {
		names[i] = param.Name
	}

	return names
}

// index returns the position of name in the list, or -1 if absent.
func (p Params) index(name string) int {
	for i, param := range p {
		if param.Name == name {
			return i
		}
	}

	return -1
}
