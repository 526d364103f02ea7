// Package content loads the embedded quiz, preset and demo definitions.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/agentshift/internal/score"
	"github.com/verte-zerg/agentshift/internal/timer"
)

//go:embed data/*.yaml
var embedded embed.FS

// ErrInvalidContent is returned when a bundle fails validation.
var ErrInvalidContent = errors.New("invalid content")

// Bundle groups all static content.
type Bundle struct {
	Quiz    Quiz
	Presets []Preset
	Demos   []Demo
}

// Quiz is the self-assessment question bank.
type Quiz struct {
	Title     string             `yaml:"title"`
	Intro     string             `yaml:"intro"`
	Questions []Question         `yaml:"questions"`
	Profiles  map[string]Profile `yaml:"profiles"`
}

// Question is a single quiz prompt.
type Question struct {
	ID      string   `yaml:"id"`
	Prompt  string   `yaml:"prompt"`
	Options []Option `yaml:"options"`
}

// Option is an answer tagged with the archetype it signals.
type Option struct {
	Label    string `yaml:"label"`
	Category string `yaml:"category"`
}

// Profile describes the result for one archetype.
type Profile struct {
	Title    string    `yaml:"title"`
	Summary  string    `yaml:"summary"`
	Sections []Section `yaml:"sections"`
}

// Preset is a task type with a typical savings percentage.
type Preset struct {
	ID      string  `yaml:"id"`
	Label   string  `yaml:"label"`
	Savings float64 `yaml:"savings"`
}

// Demo is an animated comparison made of independent lanes.
type Demo struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Lanes       []Lane `yaml:"lanes"`
}

// Lane is one timed workflow inside a demo.
type Lane struct {
	Name     string      `yaml:"name"`
	Duration Duration    `yaml:"duration"`
	Phases   []PhaseSpec `yaml:"phases"`
}

// PhaseSpec names a phase and where it starts as a fraction of the lane.
type PhaseSpec struct {
	Name string  `yaml:"name"`
	At   float64 `yaml:"at"`
}

// Duration decodes Go duration strings such as "8s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// TimerConfig converts the lane into a timer configuration.
func (l Lane) TimerConfig(interval time.Duration) (timer.Config, error) {
	total := time.Duration(l.Duration)
	names := make([]string, 0, len(l.Phases))
	fractions := make([]float64, 0, len(l.Phases))
	for _, p := range l.Phases {
		names = append(names, p.Name)
		fractions = append(fractions, p.At)
	}
	phases, err := timer.PhasesAt(total, names, fractions)
	if err != nil {
		return timer.Config{}, err
	}
	cfg := timer.Config{Total: total, Interval: interval, Phases: phases}
	if err := cfg.Validate(); err != nil {
		return timer.Config{}, fmt.Errorf("lane %q: %w", l.Name, err)
	}
	return cfg, nil
}

// Load reads the embedded bundle.
func Load() (*Bundle, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads quiz.yaml, presets.yaml and demos.yaml from fsys.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	var b Bundle
	if err := decodeFile(fsys, "quiz.yaml", &b.Quiz); err != nil {
		return nil, err
	}
	var presets struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := decodeFile(fsys, "presets.yaml", &presets); err != nil {
		return nil, err
	}
	b.Presets = presets.Presets
	var demos struct {
		Demos []Demo `yaml:"demos"`
	}
	if err := decodeFile(fsys, "demos.yaml", &demos); err != nil {
		return nil, err
	}
	b.Demos = demos.Demos
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// LoadQuizFile reads a replacement quiz bank from disk.
func LoadQuizFile(path string) (Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Quiz{}, fmt.Errorf("failed to read quiz bank: %w", err)
	}
	var q Quiz
	if err := yaml.Unmarshal(data, &q); err != nil {
		return Quiz{}, fmt.Errorf("failed to decode quiz bank %s: %w", path, err)
	}
	if err := q.Validate(); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Preset returns the preset with the given id.
func (b *Bundle) Preset(id string) (Preset, bool) {
	for _, p := range b.Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Demo returns the demo with the given id.
func (b *Bundle) Demo(id string) (Demo, bool) {
	for _, d := range b.Demos {
		if d.ID == id {
			return d, true
		}
	}
	return Demo{}, false
}

// Profile returns the result profile for a category.
func (q Quiz) Profile(c score.Category) (Profile, bool) {
	p, ok := q.Profiles[string(c)]
	return p, ok
}

// ParsedCategory returns the archetype the option counts toward.
func (o Option) ParsedCategory() (score.Category, error) {
	return score.ParseCategory(o.Category)
}
