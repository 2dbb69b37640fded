// Package replay drives the accent controller headlessly from YAML scripts.
// Each script describes an initial buffer, a list of input steps and the
// expected final text and status.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/accentflow/internal/core/cycle"
)

// Step is one scripted input. Exactly one of the action fields is set.
type Step struct {
	Down      string   `yaml:"down,omitempty"`
	Up        string   `yaml:"up,omitempty"`
	Mods      []string `yaml:"mods,omitempty"`
	Blur      bool     `yaml:"blur,omitempty"`
	Hidden    *bool    `yaml:"hidden,omitempty"`
	Type      string   `yaml:"type,omitempty"`
	Detach    bool     `yaml:"detach,omitempty"`
	SelectAll bool     `yaml:"select_all,omitempty"`
}

// Script is a single replay scenario.
type Script struct {
	Name     string              `yaml:"name"`
	Text     string              `yaml:"text"`
	Editable *bool               `yaml:"editable,omitempty"`
	Accents  map[string][]string `yaml:"accents,omitempty"`
	Events   []Step              `yaml:"events"`

	Expect       *string `yaml:"expect,omitempty"`
	ExpectStatus string  `yaml:"expect_status,omitempty"`

	// Path is the file the script was loaded from.
	Path string `yaml:"-"`
}

// IsEditable reports whether the buffer starts with an insertion point.
func (s Script) IsEditable() bool {
	return s.Editable == nil || *s.Editable
}

func (st Step) kind() (string, error) {
	var set []string
	if st.Down != "" {
		set = append(set, "down")
	}
	if st.Up != "" {
		set = append(set, "up")
	}
	if st.Blur {
		set = append(set, "blur")
	}
	if st.Hidden != nil {
		set = append(set, "hidden")
	}
	if st.Type != "" {
		set = append(set, "type")
	}
	if st.Detach {
		set = append(set, "detach")
	}
	if st.SelectAll {
		set = append(set, "select_all")
	}

	switch len(set) {
	case 0:
		return "", errors.New("step has no action")
	case 1:
		return set[0], nil
	default:
		return "", fmt.Errorf("step has several actions: %v", set)
	}
}

// Validate checks the script's structure without running it.
func (s Script) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if len(s.Events) == 0 {
		errs = append(errs, errors.New("events must not be empty"))
	}
	for i, st := range s.Events {
		if _, err := st.kind(); err != nil {
			errs = append(errs, fmt.Errorf("events[%d]: %w", i, err))
			continue
		}
		if st.Down != "" {
			if _, err := parseKey(st.Down); err != nil {
				errs = append(errs, fmt.Errorf("events[%d]: %w", i, err))
			}
		}
		if st.Up != "" {
			if _, err := parseKey(st.Up); err != nil {
				errs = append(errs, fmt.Errorf("events[%d]: %w", i, err))
			}
		}
		if _, err := parseMods(st.Mods); err != nil {
			errs = append(errs, fmt.Errorf("events[%d]: %w", i, err))
		}
	}
	if s.ExpectStatus != "" {
		if _, ok := cycle.ParseStatus(s.ExpectStatus); !ok {
			errs = append(errs, fmt.Errorf("expect_status %q is not one of idle, armed, cycling", s.ExpectStatus))
		}
	}
	return errors.Join(errs...)
}

func decode(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	return s, nil
}

// Parse decodes a script and validates it. Unknown fields are rejected.
func Parse(r io.Reader) (Script, error) {
	s, err := decode(r)
	if err != nil {
		return Script{}, err
	}
	if err := s.Validate(); err != nil {
		return Script{}, fmt.Errorf("invalid script: %w", err)
	}
	return s, nil
}

// Load reads a script file. A missing name defaults to the file's base name.
func Load(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("open script: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := decode(f)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.Validate(); err != nil {
		return Script{}, fmt.Errorf("%s: invalid script: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// LoadScripts expands doublestar patterns and loads every matching file in
// sorted order. A pattern without matches is an error.
func LoadScripts(patterns ...string) ([]Script, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no scripts match %q", pattern)
		}
		paths = append(paths, matches...)
	}

	slices.Sort(paths)
	paths = slices.Compact(paths)

	scripts := make([]Script, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}
