package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textranger/internal/engine/annotate"
)

// ReplaceFunc is the global function a script must define.
const ReplaceFunc = "replace"

// Script is a loaded Lua replacement script.
type Script struct {
	state   *State
	onError func(error)

	stateOpts []StateOption
}

// ScriptOption configures a Script.
type ScriptOption func(*Script)

// WithErrorHandler sets the function told about errors raised while
// rendering through Replacement.
func WithErrorHandler(fn func(error)) ScriptOption {
	return func(s *Script) {
		s.onError = fn
	}
}

// WithStateOptions configures the Lua state the script runs in.
func WithStateOptions(opts ...StateOption) ScriptOption {
	return func(s *Script) {
		s.stateOpts = append(s.stateOpts, opts...)
	}
}

// NewScript loads src into a new sandboxed state. src must define a global
// function replace.
func NewScript(src string, opts ...ScriptOption) (*Script, error) {
	s := &Script{onError: func(error) {}}
	for _, opt := range opts {
		opt(s)
	}
	s.state = NewState(s.stateOpts...)

	if err := s.state.DoString(src); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	if s.state.GetGlobal(ReplaceFunc).Type() != lua.LTFunction {
		s.state.Close()
		return nil, ErrNoReplaceFunc
	}
	return s, nil
}

// Replace calls replace(text, id) and returns its result.
func (s *Script) Replace(text, id string) (string, error) {
	results, err := s.state.Call(ReplaceFunc, lua.LString(text), lua.LString(id))
	if err != nil {
		return "", fmt.Errorf("call %s: %w", ReplaceFunc, err)
	}
	if len(results) == 0 {
		return "", ErrBadReturn
	}
	str, ok := results[0].(lua.LString)
	if !ok {
		return "", fmt.Errorf("%w, got %s", ErrBadReturn, results[0].Type())
	}
	return string(str), nil
}

// Replacement returns a computed replacement that renders mentions of id
// through the script. When the script fails, the matched text is rendered
// unchanged and the error goes to the error handler.
func (s *Script) Replacement(id string) annotate.Computed {
	return func(matched string) string {
		out, err := s.Replace(matched, id)
		if err != nil {
			s.onError(err)
			return matched
		}
		return out
	}
}

// Close releases the script's Lua state.
func (s *Script) Close() error {
	return s.state.Close()
}
