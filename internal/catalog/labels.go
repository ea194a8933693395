package catalog

import (
	"strings"
	"unicode"
)

// LabelFromFile derives a label from an asset name such as
// 2_PALMOPEN_UP_IMG.svg ("Palmopen Up"). Cross routines name the direction
// and angle instead: 2_CROSSPALM_DOWN_45L_IMG.svg is "Down 45l".
func LabelFromFile(file string) string {
	base := strings.TrimSuffix(file, ".svg")
	parts := strings.Split(base, "_")

	category := part(parts, 1)
	variation := part(parts, 2)

	if category == "CROSSPALM" || category == "CROSSFIST" {
		label := variation
		if angle := part(parts, 3); angle != "" {
			label += " " + angle
		}
		return titleWords(label)
	}
	return titleWords(category + " " + variation)
}

func part(parts []string, index int) string {
	if index < len(parts) {
		return parts[index]
	}
	return ""
}

func titleWords(text string) string {
	words := strings.Fields(strings.ToLower(text))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
