package model

import (
	"fmt"
	"strings"
)

// SkillLevel is a player's playing level. Values are ordered from beginner to professional.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "INICIACION"
	SkillIntermediate SkillLevel = "MEDIO"
	SkillAdvanced     SkillLevel = "AVANZADO"
	SkillProfessional SkillLevel = "PROFESIONAL"
)

// SkillLevels lists every level in ascending order
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillProfessional}

var skillLabels = map[SkillLevel]string{
	SkillBeginner:     "Iniciación",
	SkillIntermediate: "Medio",
	SkillAdvanced:     "Avanzado",
	SkillProfessional: "Profesional",
}

var skillAliases = map[string]SkillLevel{
	"beginner":     SkillBeginner,
	"intermediate": SkillIntermediate,
	"advanced":     SkillAdvanced,
	"professional": SkillProfessional,
}

// Valid reports whether the level is one of the known values
func (l SkillLevel) Valid() bool {
	_, ok := skillLabels[l]
	return ok
}

// Rank returns the position of the level in ascending order, or -1 if unknown
func (l SkillLevel) Rank() int {
	for i, level := range SkillLevels {
		if level == l {
			return i
		}
	}
	return -1
}

// Label returns the display label for the level
func (l SkillLevel) Label() string {
	if label, ok := skillLabels[l]; ok {
		return label
	}
	return string(l)
}

// ParseSkillLevel accepts a wire value (any case) or its English name
func ParseSkillLevel(s string) (SkillLevel, error) {
	s = strings.TrimSpace(s)
	if level := SkillLevel(strings.ToUpper(s)); level.Valid() {
		return level, nil
	}
	if level, ok := skillAliases[strings.ToLower(s)]; ok {
		return level, nil
	}
	return "", fmt.Errorf("%w: unknown skill level %q", ErrInvalidPlayer, s)
}
