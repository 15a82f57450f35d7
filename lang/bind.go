package lang

import "log/slog"

// Keyword is a single keyword argument: a call argument matched to a
// parameter by explicit name rather than by position.
type Keyword struct {
	Name  string
	Value any
}

// Args carries the arguments of a single call: positional values in call
// order plus keyword arguments in the order they were written.
type Args struct {
	Positional []any
	Keywords   []Keyword
}

// NewArgs returns an Args with the given positional values.
func NewArgs(positional ...any) Args {
	return Args{Positional: positional}
}

// Keyword returns a copy of the receiver with an additional keyword
// argument appended.
func (a Args) Keyword(name string, value any) Args {
	kw := make([]Keyword, len(a.Keywords), len(a.Keywords)+1)
	copy(kw, a.Keywords)

	a.Keywords = append(kw, Keyword{Name: name, Value: value})

	return a
}

// BindArgs resolves args against params and produces the locals map that
// becomes the contents of a new call frame. It is a pure function of its
// inputs, independent of any call site.
//
// Resolution proceeds in declared order:
//
//  1. More positional arguments than declared parameters fails with
//     [ErrTooManyArguments].
//  2. Positional arguments fill parameters in declared order.
//  3. A keyword targeting an already-filled parameter fails with
//     [ErrDuplicateArgument].
//  4. A keyword naming no declared parameter fails with
//     [ErrUnknownKeyword].
//  5. Any parameter still unfilled uses its default if present, otherwise
//     the binding fails with [ErrMissingArgument].
//
// On success the result holds exactly one value per declared parameter
// name: no extras, no gaps.
func BindArgs(params Params, args Args) (map[string]any, error) {
	if len(args.Positional) > len(params) {
		return nil, ErrTooManyArguments.
			With(
				slog.Int("declared", len(params)),
				slog.Int("got", len(args.Positional)),
			)
	}

	bound := make(map[string]any, len(params))
	filled := make([]bool, len(params))

	for i, v := range args.Positional {
		bound[params[i].Name] = v
		filled[i] = true
	}

	for _, kw := range args.Keywords {
		i := params.index(kw.Name)
		if i < 0 {
			return nil, ErrUnknownKeyword.
				With(slog.String("name", kw.Name))
		}

		if filled[i] {
			return nil, ErrDuplicateArgument.
				With(slog.String("name", kw.Name))
		}

		bound[kw.Name] = kw.Value
		filled[i] = true
	}

	for i, param := range params {
		if filled[i] {
			continue
		}

		if !param.HasDefault {
			return nil, ErrMissingArgument.
				With(slog.String("name", param.Name))
		}

		bound[param.Name] = param.Default
	}

	return bound, nil
}
