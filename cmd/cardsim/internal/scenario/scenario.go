// Package scenario loads and plays scripted card presentations.
package scenario

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/cardsheet/pkg/card"
	"github.com/go-drift/cardsheet/pkg/errors"
	"github.com/go-drift/cardsheet/pkg/graphics"
)

// SupportedMajor is the scenario format major version this build reads.
const SupportedMajor = "v1"

// Scenario is a scripted presentation read from YAML.
type Scenario struct {
	Version   string          `yaml:"version"`
	Name      string          `yaml:"name,omitempty"`
	Container ContainerConfig `yaml:"container"`
	Card      CardConfig      `yaml:"card"`
	Steps     []Step          `yaml:"steps"`
}

// ContainerConfig describes the simulated host window.
type ContainerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	SafeTop      float64 `yaml:"safeTop"`
	DisplayScale float64 `yaml:"displayScale"`
}

// CardConfig mirrors card.Config. Unset fields keep their defaults.
type CardConfig struct {
	Scale            *bool    `yaml:"scale,omitempty"`
	Friction         *bool    `yaml:"friction,omitempty"`
	SwipeToDismiss   *bool    `yaml:"swipeToDismiss,omitempty"`
	TapToDismiss     *bool    `yaml:"tapToDismiss,omitempty"`
	Indicator        *bool    `yaml:"indicator,omitempty"`
	CustomHeight     *float64 `yaml:"customHeight,omitempty"`
	DismissThreshold *float64 `yaml:"dismissThreshold,omitempty"`
	CornerRadius     *float64 `yaml:"cornerRadius,omitempty"`
	DimAlpha         *float64 `yaml:"dimAlpha,omitempty"`
}

// Action names a scenario step.
type Action string

const (
	ActionPresent Action = "present"
	ActionAdvance Action = "advance"
	ActionDrag    Action = "drag"
	ActionHeight  Action = "height"
	ActionDismiss Action = "dismiss"
	ActionScroll  Action = "scroll"
	ActionResize  Action = "resize"
	ActionTap     Action = "tap"
	// ActionRefresh re-captures the presenting view into the background.
	ActionRefresh Action = "refresh"
)

// Step is one scripted action. Which fields apply depends on Action.
type Step struct {
	Action Action `yaml:"action"`
	// Duration is how long advance runs.
	Duration time.Duration `yaml:"duration,omitempty"`
	// X and Y locate drag starts and taps in container coordinates.
	X float64 `yaml:"x,omitempty"`
	Y float64 `yaml:"y,omitempty"`
	// DY is the vertical drag distance.
	DY float64 `yaml:"dy,omitempty"`
	// Moves is the number of pointer moves in a drag. Zero means 10.
	Moves int `yaml:"moves,omitempty"`
	// Value is the custom height for height steps and the content offset
	// for scroll steps.
	Value *float64 `yaml:"value,omitempty"`
	// Width and Height are the new container size for resize steps.
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, &errors.ConfigError{Path: path, Err: err}
	}
	return s, nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the version and fills container defaults.
func (s *Scenario) Validate() error {
	version := strings.TrimSpace(s.Version)
	if version == "" {
		version = SupportedMajor
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("invalid scenario version %q", s.Version)
	}
	if major := semver.Major(version); major != SupportedMajor {
		return fmt.Errorf("scenario version %s is not supported (want %s.x)", version, SupportedMajor)
	}
	s.Version = semver.Canonical(version)

	if s.Container.Width == 0 {
		s.Container.Width = 390
	}
	if s.Container.Height == 0 {
		s.Container.Height = 844
	}
	if s.Container.Width < 0 || s.Container.Height < 0 {
		return fmt.Errorf("container size %vx%v is negative", s.Container.Width, s.Container.Height)
	}

	for i, step := range s.Steps {
		switch step.Action {
		case ActionPresent, ActionDismiss, ActionTap, ActionRefresh:
		case ActionAdvance:
			if step.Duration <= 0 {
				return fmt.Errorf("step %d: advance needs a positive duration", i+1)
			}
		case ActionDrag:
			if step.DY == 0 {
				return fmt.Errorf("step %d: drag needs dy", i+1)
			}
		case ActionHeight, ActionScroll:
			if step.Value == nil {
				return fmt.Errorf("step %d: %s needs a value", i+1, step.Action)
			}
		case ActionResize:
			if step.Width <= 0 || step.Height <= 0 {
				return fmt.Errorf("step %d: resize needs a positive width and height", i+1)
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, step.Action)
		}
	}
	return nil
}

// Size returns the container size.
func (s *Scenario) Size() graphics.Size {
	return graphics.Size{Width: s.Container.Width, Height: s.Container.Height}
}

// Metrics returns the host metrics.
func (s *Scenario) Metrics() card.HostMetrics {
	return card.HostMetrics{SafeAreaTop: s.Container.SafeTop, DisplayScale: s.Container.DisplayScale}
}

// Options converts the card section into configuration options.
func (s *Scenario) Options() []card.Option {
	c := s.Card
	var opts []card.Option
	if c.Scale != nil {
		opts = append(opts, card.WithScale(*c.Scale))
	}
	if c.Friction != nil {
		opts = append(opts, card.WithFriction(*c.Friction))
	}
	if c.SwipeToDismiss != nil {
		opts = append(opts, card.WithSwipeToDismiss(*c.SwipeToDismiss))
	}
	if c.TapToDismiss != nil {
		opts = append(opts, card.WithTapToDismiss(*c.TapToDismiss))
	}
	if c.Indicator != nil {
		opts = append(opts, card.WithIndicator(*c.Indicator))
	}
	if c.CustomHeight != nil {
		opts = append(opts, card.WithCustomHeight(*c.CustomHeight))
	}
	if c.DismissThreshold != nil {
		opts = append(opts, card.WithDismissThreshold(*c.DismissThreshold))
	}
	if c.CornerRadius != nil {
		opts = append(opts, card.WithCornerRadius(*c.CornerRadius))
	}
	if c.DimAlpha != nil {
		opts = append(opts, card.WithDimAlpha(*c.DimAlpha))
	}
	return opts
}
