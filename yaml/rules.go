// Package yaml loads extraction rules from YAML files.
//
// Every section is optional. Allow-list entries are merged over the
// defaults by tag name and the tags named under remove are dropped. Clutter
// lists and scoring values replace their defaults only when present.
//
//	allow_list:
//	  tags:
//	    span: {attributes: [lang]}
//	    pre: {preserve_whitespace: true}
//	  remove: [u, small]
//	clutter:
//	  patterns: [advert, sidebar, cookie]
//	scoring:
//	  min_score: 25
//	  container_tags: [article, main, section]
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/distill"
	"gopkg.in/yaml.v3"
)

type rulesFile struct {
	AllowList *allowListSection `yaml:"allow_list"`
	Clutter   *clutterSection   `yaml:"clutter"`
	Scoring   *scoringSection   `yaml:"scoring"`
}

type allowListSection struct {
	Tags   map[string]allowListEntry `yaml:"tags"`
	Remove []string                  `yaml:"remove"`
}

type allowListEntry struct {
	Attributes         []string `yaml:"attributes"`
	KeepEmpty          bool     `yaml:"keep_empty"`
	PreserveWhitespace bool     `yaml:"preserve_whitespace"`
}

type clutterSection struct {
	Tags       []string `yaml:"tags"`
	Attributes []string `yaml:"attributes"`
	Patterns   []string `yaml:"patterns"`
	Tokens     []string `yaml:"tokens"`
}

type scoringSection struct {
	ClutterPenalty    *float64 `yaml:"clutter_penalty"`
	LinkDensity       *float64 `yaml:"link_density"`
	LinkPenalty       *float64 `yaml:"link_penalty"`
	ContainerBonus    *float64 `yaml:"container_bonus"`
	ContainerTags     []string `yaml:"container_tags"`
	ContainerPatterns []string `yaml:"container_patterns"`
	MinScore          *float64 `yaml:"min_score"`
}

// LoadRules reads the rules file at path and merges it over
// distill.DefaultRules. A missing file returns ENOTFOUND.
func LoadRules(path string) (distill.Rules, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return distill.Rules{}, distill.Errorf(distill.ENOTFOUND, "rules file not found: %s", path)
	}
	if err != nil {
		return distill.Rules{}, err
	}
	return ParseRules(data)
}

// ParseRules decodes YAML rules and merges them over distill.DefaultRules.
// Unknown keys and invalid values return EINVALID.
func ParseRules(data []byte) (distill.Rules, error) {
	rules := distill.DefaultRules()

	var f rulesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return distill.Rules{}, distill.Errorf(distill.EINVALID, "invalid rules: %v", err)
	}

	if f.AllowList != nil {
		mergeAllowList(rules.AllowList, f.AllowList)
	}
	if f.Clutter != nil {
		mergeClutter(&rules.Clutter, f.Clutter)
	}
	if f.Scoring != nil {
		if err := mergeScoring(&rules.Scoring, f.Scoring); err != nil {
			return distill.Rules{}, err
		}
	}
	return rules, nil
}

func mergeAllowList(list distill.AllowList, s *allowListSection) {
	for tag, e := range s.Tags {
		list[strings.ToLower(tag)] = distill.AllowListEntry{
			Attributes:         lower(e.Attributes),
			KeepEmpty:          e.KeepEmpty,
			PreserveWhitespace: e.PreserveWhitespace,
		}
	}
	for _, tag := range s.Remove {
		delete(list, strings.ToLower(tag))
	}
}

func mergeClutter(sig *distill.ClutterSignature, s *clutterSection) {
	if s.Tags != nil {
		sig.Tags = lower(s.Tags)
	}
	if s.Attributes != nil {
		sig.Attributes = lower(s.Attributes)
	}
	if s.Patterns != nil {
		sig.Patterns = lower(s.Patterns)
	}
	if s.Tokens != nil {
		sig.Tokens = lower(s.Tokens)
	}
}

func mergeScoring(sc *distill.Scoring, s *scoringSection) error {
	for name, v := range map[string]*float64{
		"clutter_penalty": s.ClutterPenalty,
		"link_density":    s.LinkDensity,
		"link_penalty":    s.LinkPenalty,
		"container_bonus": s.ContainerBonus,
	} {
		if v != nil && *v < 0 {
			return distill.Errorf(distill.EINVALID, "scoring %s must not be negative", name)
		}
	}

	if s.ClutterPenalty != nil {
		sc.ClutterPenalty = *s.ClutterPenalty
	}
	if s.LinkDensity != nil {
		sc.LinkDensity = *s.LinkDensity
	}
	if s.LinkPenalty != nil {
		sc.LinkPenalty = *s.LinkPenalty
	}
	if s.ContainerBonus != nil {
		sc.ContainerBonus = *s.ContainerBonus
	}
	if s.ContainerTags != nil {
		sc.ContainerTags = lower(s.ContainerTags)
	}
	if s.ContainerPatterns != nil {
		sc.ContainerPatterns = lower(s.ContainerPatterns)
	}
	if s.MinScore != nil {
		sc.MinScore = *s.MinScore
	}
	return nil
}

func lower(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
