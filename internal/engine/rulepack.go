package engine

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"netdiag/internal/layer"
)

// Rule packs let operators replace the built-in root-cause table with a
// YAML file. Layers are named by their canonical name or "N - Name"
// label. Entry order in the file is priority order.
//
//	rules:
//	  - id: dns-only
//	    match:
//	      failed_exactly: ["Application"]
//	    explanation: ...
//	    recovery: ...
//	    advice: ...

type rulePackFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	ID          string    `yaml:"id"`
	Match       matchSpec `yaml:"match"`
	Explanation string    `yaml:"explanation"`
	Recovery    string    `yaml:"recovery"`
	Advice      string    `yaml:"advice"`
}

type matchSpec struct {
	FailedExactly  []string `yaml:"failed_exactly"`
	FailedContains []string `yaml:"failed_contains"`
	PassedContains []string `yaml:"passed_contains"`
}

// LoadRules reads a rule pack from path. An empty path or a missing
// file yields (nil, nil) so callers fall through to the built-in table.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var file rulePackFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("rule pack %s: %w", path, err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		if spec.ID == "" {
			return nil, fmt.Errorf("rule pack %s: rule %d has no id", path, i)
		}
		m, err := spec.Match.toMatch()
		if err != nil {
			return nil, fmt.Errorf("rule pack %s: rule %q: %w", path, spec.ID, err)
		}
		rules = append(rules, Rule{
			ID:          spec.ID,
			Match:       m,
			Explanation: spec.Explanation,
			Recovery:    spec.Recovery,
			Advice:      spec.Advice,
		})
	}
	return rules, nil
}

func (m matchSpec) toMatch() (Match, error) {
	out := Match{}
	var err error
	if out.FailedExactly, err = parseLayers(m.FailedExactly); err != nil {
		return Match{}, err
	}
	if out.FailedContains, err = parseLayers(m.FailedContains); err != nil {
		return Match{}, err
	}
	if out.PassedContains, err = parseLayers(m.PassedContains); err != nil {
		return Match{}, err
	}
	return out, nil
}

func parseLayers(names []string) ([]layer.Layer, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]layer.Layer, 0, len(names))
	for _, n := range names {
		l, err := layer.Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
