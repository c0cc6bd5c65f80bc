package shellout

import (
	"context"
	"strings"
	"sync"
)

type (
	// Call is one recorded subprocess invocation.
	Call struct {
		Dir  string
		Name string
		Args []string
	}

	// Stubber is a Runner that records calls and plays back canned
	// results instead of executing anything. Tests across packages use
	// it to assert the exact command sequence a pipeline issues.
	Stubber struct {
		Calls   []Call
		Outputs map[string]string
		Errs    map[string]error
		// Hook, when set, runs after each call is recorded. Tests use
		// it to fake side effects such as "git init" creating .git.
		Hook func(Call) error

		mux sync.Mutex
	}
)

// CommandLine is the key format for Outputs and Errs.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (s *Stubber) record(ctx context.Context, dir, name string, args []string) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	call := Call{Dir: dir, Name: name, Args: args}

	s.Calls = append(s.Calls, call)

	key := CommandLine(name, args...)

	if s.Hook != nil {
		if err := s.Hook(call); err != nil {
			return "", err
		}
	}

	if err := s.Errs[key]; err != nil {
		return "", err
	}

	return s.Outputs[key], nil
}

func (s *Stubber) Run(ctx context.Context, dir, name string, args ...string) error {
	_, err := s.record(ctx, dir, name, args)

	return err
}

func (s *Stubber) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	return s.record(ctx, dir, name, args)
}

// CommandLines flattens the recorded calls for order assertions.
func (s *Stubber) CommandLines() []string {
	s.mux.Lock()
	defer s.mux.Unlock()

	lines := make([]string, len(s.Calls))

	for i := range s.Calls {
		lines[i] = CommandLine(s.Calls[i].Name, s.Calls[i].Args...)
	}

	return lines
}
