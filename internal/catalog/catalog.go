package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"innervation/internal/core/model"
	"innervation/resources"
)

var (
	// ErrUnknownSection is returned for a section key or name that is not in the catalog.
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownRoutine is returned for a routine key that the section does not define.
	ErrUnknownRoutine = errors.New("unknown routine")
)

// Custom random routines use this key and name.
const (
	CustomKey  = "CUSTOM"
	CustomName = "Custom Random"
)

// sectionOrder is the menu order of the embedded catalogs.
var sectionOrder = []string{"upper", "legs", "head", "eyes"}

// Entry is one asset of a routine and its position.
type Entry struct {
	File  string `yaml:"file"`
	Order int    `yaml:"order"`
}

// Routine is a named, ordered list of entries.
type Routine struct {
	Key   string  `yaml:"key"`
	Name  string  `yaml:"name"`
	Steps []Entry `yaml:"steps"`
}

// Sorted returns the entries ordered by Order. Ties keep file order.
func (routine Routine) Sorted() []Entry {
	entries := slices.Clone(routine.Steps)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return entries
}

// Section is one practice category with its routines.
type Section struct {
	Key       string            `yaml:"key"`
	Name      string            `yaml:"name"`
	Noun      string            `yaml:"noun"`
	Tagline   string            `yaml:"tagline"`
	CustomMin int               `yaml:"custom_min"`
	CustomMax int               `yaml:"custom_max"`
	Routines  []Routine         `yaml:"routines"`
	Labels    map[string]string `yaml:"labels"`
}

// Routine looks up a routine by key, case-insensitively.
func (section Section) Routine(key string) (Routine, error) {
	for _, routine := range section.Routines {
		if strings.EqualFold(routine.Key, key) {
			return routine, nil
		}
	}
	return Routine{}, fmt.Errorf("%w: %s in %s", ErrUnknownRoutine, key, section.Name)
}

// Label returns the display label for an asset file.
func (section Section) Label(file string) string {
	if section.Labels != nil {
		if label, ok := section.Labels[file]; ok {
			return label
		}
		return strings.ReplaceAll(file, "_", " ")
	}
	return LabelFromFile(file)
}

// Steps converts a routine into sequencer steps in play order.
func (section Section) Steps(routine Routine) []model.Step {
	entries := routine.Sorted()
	steps := make([]model.Step, 0, len(entries))
	for _, entry := range entries {
		steps = append(steps, model.Step{ID: entry.File, Label: section.Label(entry.File)})
	}
	return steps
}

// UniqueFiles lists every asset used by the section's routines, once each,
// in first-seen order.
func (section Section) UniqueFiles() []string {
	seen := make(map[string]struct{})
	var files []string
	for _, routine := range section.Routines {
		for _, entry := range routine.Steps {
			if _, ok := seen[entry.File]; ok {
				continue
			}
			seen[entry.File] = struct{}{}
			files = append(files, entry.File)
		}
	}
	return files
}

// CustomBounds returns the accepted size range of a custom random routine.
func (section Section) CustomBounds() (int, int) {
	unique := len(section.UniqueFiles())
	high := min(section.CustomMax, unique)
	low := min(section.CustomMin, high)
	return low, high
}

// CustomRandom builds a routine of n distinct assets drawn from all routines.
// n is clamped to CustomBounds.
func (section Section) CustomRandom(n int, rng *rand.Rand) Routine {
	low, high := section.CustomBounds()
	n = max(low, min(n, high))

	files := section.UniqueFiles()
	rng.Shuffle(len(files), func(i, j int) {
		files[i], files[j] = files[j], files[i]
	})

	routine := Routine{Key: CustomKey, Name: CustomName, Steps: make([]Entry, 0, n)}
	for i, file := range files[:n] {
		routine.Steps = append(routine.Steps, Entry{File: file, Order: i + 1})
	}
	return routine
}

// RandomRoutine picks one of the section's routines.
func (section Section) RandomRoutine(rng *rand.Rand) Routine {
	if len(section.Routines) == 0 {
		return Routine{}
	}
	return section.Routines[rng.IntN(len(section.Routines))]
}

// Catalog holds all sections in menu order.
type Catalog struct {
	sections []Section
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default parses the embedded catalogs once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load()
	})
	return defaultCatalog, defaultErr
}

// Load parses the embedded catalogs.
func Load() (*Catalog, error) {
	catalog := &Catalog{}
	for _, key := range sectionOrder {
		raw, err := resources.Catalog(key)
		if err != nil {
			return nil, err
		}
		section, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", key, err)
		}
		catalog.sections = append(catalog.sections, section)
	}
	return catalog, nil
}

// Parse decodes one section document.
func Parse(raw []byte) (Section, error) {
	var section Section
	if err := yaml.Unmarshal(raw, &section); err != nil {
		return Section{}, err
	}
	if section.Name == "" {
		return Section{}, errors.New("section name is empty")
	}
	for _, routine := range section.Routines {
		if len(routine.Steps) == 0 {
			return Section{}, fmt.Errorf("routine %s has no steps", routine.Key)
		}
	}
	return section, nil
}

// Sections returns the sections in menu order.
func (catalog *Catalog) Sections() []Section {
	return slices.Clone(catalog.sections)
}

// Section finds a section by key or name, case-insensitively.
func (catalog *Catalog) Section(keyOrName string) (Section, error) {
	for _, section := range catalog.sections {
		if strings.EqualFold(section.Key, keyOrName) || strings.EqualFold(section.Name, keyOrName) {
			return section, nil
		}
	}
	return Section{}, fmt.Errorf("%w: %s", ErrUnknownSection, keyOrName)
}
