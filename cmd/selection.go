package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"innervation/internal/catalog"
	"innervation/internal/core/model"
	"innervation/internal/ui/preferences"
)

const (
	randomRoutine = "random"
	mudraRoutine  = "Mudra Session"
)

// selection is a routine ready to load into a controller.
type selection struct {
	section     string
	routineKey  string
	routineName string
	steps       []model.Step
	config      model.SequenceConfig
}

// resolveRoutine picks a routine from the catalog. An empty or "random"
// routine draws one of the section's routines; "custom" builds a random
// sequence of customCount steps, or a random length when customCount is 0.
func resolveRoutine(cat *catalog.Catalog, settings preferences.Settings, sectionArg, routineArg string, customCount int, rng *rand.Rand) (selection, error) {
	if isMudras(sectionArg) {
		count := settings.MudraCount
		if customCount > 0 {
			count = customCount
		}
		return selection{
			section:     catalog.MudraSectionName,
			routineName: mudraRoutine,
			steps:       catalog.MudraSequence(count, rng),
			config:      settings.MudraConfig(),
		}, nil
	}

	section, err := cat.Section(sectionArg)
	if err != nil {
		return selection{}, err
	}

	var routine catalog.Routine
	switch {
	case routineArg == "" || strings.EqualFold(routineArg, randomRoutine):
		routine = section.RandomRoutine(rng)
	case strings.EqualFold(routineArg, catalog.CustomKey):
		if customCount <= 0 {
			low, high := section.CustomBounds()
			customCount = low + rng.IntN(high-low+1)
		}
		routine = section.CustomRandom(customCount, rng)
	default:
		routine, err = section.Routine(routineArg)
		if err != nil {
			return selection{}, fmt.Errorf("%s: %w", section.Name, err)
		}
	}

	return selection{
		section:     section.Name,
		routineKey:  routine.Key,
		routineName: routine.Name,
		steps:       section.Steps(routine),
		config:      settings.SequenceConfig(),
	}, nil
}

func isMudras(name string) bool {
	return strings.EqualFold(name, "mudras") || strings.EqualFold(name, catalog.MudraSectionName)
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
