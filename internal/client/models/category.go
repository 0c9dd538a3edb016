package models

import (
	"strings"
)

// Category classifies where a failure originated. The underlying value is the
// label the backend stores.
type Category string

const (
	CategoryMechanical Category = "Mecânica"
	CategoryElectrical Category = "Elétrica"
	CategoryStructural Category = "Estrutural"
	CategorySoftware   Category = "Software"
	CategoryOther      Category = "Outro"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryMechanical,
		CategoryElectrical,
		CategoryStructural,
		CategorySoftware,
		CategoryOther,
	}
}

var categoryAliases = map[string]Category{
	"mecânica":   CategoryMechanical,
	"mecanica":   CategoryMechanical,
	"mechanical": CategoryMechanical,
	"elétrica":   CategoryElectrical,
	"eletrica":   CategoryElectrical,
	"electrical": CategoryElectrical,
	"estrutural": CategoryStructural,
	"structural": CategoryStructural,
	"software":   CategorySoftware,
	"outro":      CategoryOther,
	"other":      CategoryOther,
}

// LookupCategory resolves a backend label or an English/unaccented alias,
// case-insensitively.
func LookupCategory(s string) (Category, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// ParseCategory is LookupCategory with the catch-all applied: anything
// unrecognised is Other.
func ParseCategory(s string) Category {
	if c, ok := LookupCategory(s); ok {
		return c
	}
	return CategoryOther
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMechanical, CategoryElectrical, CategoryStructural, CategorySoftware, CategoryOther:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }
