// Package targets describes the bus conventions of supported chip families,
// in particular the atomic write alias offsets of their register fabric.
package targets

import (
	_ "embed"
	"errors"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/mmreg/reg"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets

var ErrTargetNotFound = errors.New("target not found")

// All returns every known target.
func All() Targets {
	return targets
}

type Targets []TargetInfo

// TargetInfo describes one chip series. Alias offsets are a convention of
// the series' bus fabric; series without atomic write aliases leave them
// out and registers on those targets fall back to read-modify-write.
type TargetInfo struct {
	Series  string        `yaml:"series"`
	Chips   []string      `yaml:"chips"`
	Aliases *AliasOffsets `yaml:"atomicAliases"`
	Tags    []string      `yaml:"tags"`
}

// AliasOffsets holds the per-series atomic alias address offsets.
type AliasOffsets struct {
	XOR   uint64 `yaml:"xor"`
	Set   uint64 `yaml:"set"`
	Clear uint64 `yaml:"clear"`
}

// HasAtomicAliases reports whether the series provides atomic write aliases.
func (t TargetInfo) HasAtomicAliases() bool {
	return t.Aliases != nil
}

// Alias returns the series' alias offsets in the form the reg builder
// takes. It is only meaningful when HasAtomicAliases reports true.
func (t TargetInfo) Alias() reg.AtomicAlias {
	if t.Aliases == nil {
		return reg.AtomicAlias{}
	}
	return reg.AtomicAlias{
		XOR:   uintptr(t.Aliases.XOR),
		Set:   uintptr(t.Aliases.Set),
		Clear: uintptr(t.Aliases.Clear),
	}
}

func (t Targets) FindBySeries(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Series == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, ErrTargetNotFound
}

func (t Targets) FindByChip(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Chips, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, ErrTargetNotFound
}

func init() {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(rawTargets, &t); err != nil {
		panic(err)
	}

	targets = t.Elements
}
