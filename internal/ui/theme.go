// Package ui provides the loadplanner desktop application UI components.
//
// This file defines a custom compact Fyne theme for a professional, dense layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LoadPlannerTheme wraps the default Fyne theme with compact sizing
// overrides for a professional, information-dense fleet-planning layout.
type LoadPlannerTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewLoadPlannerTheme creates a new LoadPlannerTheme with the dark variant
// (fyne.ThemeVariant 0 is theme.VariantDark).
func NewLoadPlannerTheme() *LoadPlannerTheme {
	return &LoadPlannerTheme{
		base:    theme.DefaultTheme(),
		variant: 0, // theme.VariantDark
	}
}

// NewLoadPlannerThemeWithVariant creates a LoadPlannerTheme with a specific light/dark variant.
func NewLoadPlannerThemeWithVariant(variant fyne.ThemeVariant) *LoadPlannerTheme {
	return &LoadPlannerTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// SetVariant updates the theme variant (light or dark).
func (t *LoadPlannerTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
}

// Color delegates to the base theme with the stored variant; the variant
// Fyne passes in (the system setting) is ignored.
func (t *LoadPlannerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *LoadPlannerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *LoadPlannerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense, professional layout.
func (t *LoadPlannerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
