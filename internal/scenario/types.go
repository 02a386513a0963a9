package scenario

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"memberlink/config"
)

var (
	ErrNoTargets     = errors.New("scenario declares no targets")
	ErrDuplicate     = errors.New("duplicate target name")
	ErrUnknownTarget = errors.New("unknown target")
	ErrStepAction    = errors.New("step must have exactly one action")
	ErrNoMember      = errors.New("step has no member")
)

// Record is a scenario target.
type Record map[string]any

// Scenario is a parsed scenario file.
type Scenario struct {
	Name    string        `yaml:"name"`
	Config  config.Config `yaml:"config,omitempty"`
	Targets []TargetDef   `yaml:"targets"`
	Steps   []Step        `yaml:"steps"`
}

// TargetDef declares one target.
type TargetDef struct {
	Name   string         `yaml:"name"`
	Values map[string]any `yaml:"values"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Set     *SetStep      `yaml:"set,omitempty"`
	Poke    *PokeStep     `yaml:"poke,omitempty"`
	Expect  *ExpectStep   `yaml:"expect,omitempty"`
	Undo    bool          `yaml:"undo,omitempty"`
	Redo    bool          `yaml:"redo,omitempty"`
	Advance time.Duration `yaml:"advance,omitempty"`
	Tick    bool          `yaml:"tick,omitempty"`
	// Host moves the persisted undo position, as a host undo system would.
	Host *HostStep `yaml:"host,omitempty"`
}

// SetStep writes through a handle. Values, when given, holds one value per target.
type SetStep struct {
	Member  string   `yaml:"member"`
	Targets []string `yaml:"targets,omitempty"`
	Value   any      `yaml:"value,omitempty"`
	Values  []any    `yaml:"values,omitempty"`
}

// PokeStep changes a target behind the handles' back.
type PokeStep struct {
	Target string `yaml:"target"`
	Member string `yaml:"member"`
	Value  any    `yaml:"value"`
}

// ExpectStep checks the state seen through a handle.
type ExpectStep struct {
	Member  string   `yaml:"member"`
	Targets []string `yaml:"targets,omitempty"`
	Values  []any    `yaml:"values,omitempty"`
	Mixed   *bool    `yaml:"mixed,omitempty"`
}

// HostStep sets the persisted undo position.
type HostStep struct {
	Position int `yaml:"position"`
}

// Action returns the name of the step action.
func (s Step) Action() string {
	actions := s.actions()
	if len(actions) != 1 {
		return "invalid"
	}

	return actions[0]
}

func (s Step) actions() []string {
	var out []string
	if s.Set != nil {
		out = append(out, "set")
	}

	if s.Poke != nil {
		out = append(out, "poke")
	}

	if s.Expect != nil {
		out = append(out, "expect")
	}

	if s.Undo {
		out = append(out, "undo")
	}

	if s.Redo {
		out = append(out, "redo")
	}

	if s.Advance != 0 {
		out = append(out, "advance")
	}

	if s.Tick {
		out = append(out, "tick")
	}

	if s.Host != nil {
		out = append(out, "host")
	}

	return out
}

// LoadFile loads and parses a scenario file from the given path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Scenario and validates it.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario

	err := yaml.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	s.Config = s.Config.WithDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks target names and steps.
func (s *Scenario) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}

	if len(s.Targets) == 0 {
		return ErrNoTargets
	}

	names := make([]string, 0, len(s.Targets))
	for _, t := range s.Targets {
		if t.Name == "" || slices.Contains(names, t.Name) {
			return fmt.Errorf("%w: %q", ErrDuplicate, t.Name)
		}

		names = append(names, t.Name)
	}

	known := func(list ...string) error {
		for _, n := range list {
			if !slices.Contains(names, n) {
				return fmt.Errorf("%w: %q", ErrUnknownTarget, n)
			}
		}

		return nil
	}

	for i, step := range s.Steps {
		if n := len(step.actions()); n != 1 {
			return fmt.Errorf("step %d: %w, got %d", i+1, ErrStepAction, n)
		}

		var err error
		switch {
		case step.Set != nil:
			err = requireMember(step.Set.Member)
			if err == nil {
				err = known(step.Set.Targets...)
			}
		case step.Poke != nil:
			err = requireMember(step.Poke.Member)
			if err == nil {
				err = known(step.Poke.Target)
			}
		case step.Expect != nil:
			err = requireMember(step.Expect.Member)
			if err == nil {
				err = known(step.Expect.Targets...)
			}
		}

		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	return nil
}

func requireMember(name string) error {
	if name == "" {
		return ErrNoMember
	}

	return nil
}
