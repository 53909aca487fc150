// Package scenario replays scripted engage/remove steps onto a diagram.
//
// A script is a YAML document:
//
//	name: cross
//	steps:
//	  - engage: {x: 0, y: 0, shape: box}
//	  - engage: {x: 1, y: 0, shape: circle}
//	  - remove: {x: 0, y: 0}
//	  - remove: {x: 4, y: 4}
//	    reject: true
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/ports"
	"gopkg.in/yaml.v3"
)

// ErrUnexpectedOutcome is returned when a step succeeds while marked as
// rejected, or fails while expected to succeed.
var ErrUnexpectedOutcome = errors.New("unexpected step outcome")

// Target addresses a grid cell.
type Target struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Shape string `yaml:"shape,omitempty"`
}

// Step is one operation. Exactly one of Engage or Remove is set.
type Step struct {
	Engage *Target `yaml:"engage,omitempty"`
	Remove *Target `yaml:"remove,omitempty"`

	// Reject marks a step the diagram is expected to refuse.
	Reject bool `yaml:"reject,omitempty"`
}

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Result records what one step did.
type Result struct {
	Index   int
	Step    Step
	Changes domain.ChangeSet
	Err     error
}

// Resolver maps a shape name to its descriptor.
type Resolver func(name string) string

// Parse decodes a script and checks that every step names one operation.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	for i, step := range s.Steps {
		switch {
		case step.Engage != nil && step.Remove != nil:
			return nil, fmt.Errorf("step %d: engage and remove are exclusive", i+1)
		case step.Engage == nil && step.Remove == nil:
			return nil, fmt.Errorf("step %d: missing engage or remove", i+1)
		case step.Engage != nil && step.Engage.Shape == "":
			return nil, fmt.Errorf("step %d: engage needs a shape", i+1)
		}
	}
	return &s, nil
}

// Load reads a script file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Run applies every step to d in order. It stops at the first step whose
// outcome differs from its Reject flag and returns the results so far.
func (s *Script) Run(d ports.Dispatcher, resolve Resolver) ([]Result, error) {
	if resolve == nil {
		resolve = func(name string) string { return name }
	}

	results := make([]Result, 0, len(s.Steps))
	for i, step := range s.Steps {
		res := Result{Index: i + 1, Step: step}
		if step.Engage != nil {
			res.Changes, res.Err = d.RequestEngage(step.Engage.X, step.Engage.Y, resolve(step.Engage.Shape))
		} else {
			res.Changes, res.Err = d.RequestRemove(step.Remove.X, step.Remove.Y)
		}
		results = append(results, res)

		switch {
		case step.Reject && res.Err == nil:
			return results, fmt.Errorf("%w: step %d (%s) was accepted", ErrUnexpectedOutcome, res.Index, step)
		case !step.Reject && res.Err != nil:
			return results, fmt.Errorf("%w: step %d (%s): %w", ErrUnexpectedOutcome, res.Index, step, res.Err)
		}
	}
	return results, nil
}

func (s Step) String() string {
	if s.Engage != nil {
		return fmt.Sprintf("engage %d,%d %s", s.Engage.X, s.Engage.Y, s.Engage.Shape)
	}
	if s.Remove != nil {
		return fmt.Sprintf("remove %d,%d", s.Remove.X, s.Remove.Y)
	}
	return "empty"
}
