package ansihtml

import "strings"

// Weight is the CSS font-weight of a style run.
type Weight uint8

const (
	WeightNone Weight = iota // WeightNone leaves the font-weight unset
	Bolder                   // Bolder is set by SGR 1
	Lighter                  // Lighter is set by SGR 2, faint
)

func (w Weight) String() string {
	switch w {
	case Bolder:
		return "bolder"
	case Lighter:
		return "lighter"
	}
	return ""
}

// Style describes the visual attributes of a run of text.
// The zero value is the empty style.
//
// Style is a comparable value type, so assignment copies it
// and == compares all six fields.
type Style struct {
	Weight        Weight // Weight is the font-weight
	Italic        bool   // Italic toggles the italic font-style
	Underline     bool   // Underline toggles an underline text decoration
	Strikethrough bool   // Strikethrough toggles a line-through text decoration
	FG            Color  // FG is the foreground color or empty for default
	BG            Color  // BG is the background color or empty for default
}

// Equal reports whether s and other have identical attributes.
func (s Style) Equal(other Style) bool {
	return s == other
}

// IsEmpty reports whether every attribute is unset.
func (s Style) IsEmpty() bool {
	return s == Style{}
}

// StyleSetter is a presentational object that accepts CSS properties one at a time,
// such as the style of an element node.
type StyleSetter interface {
	SetProperty(name, value string)
}

// Apply sets the non-default attributes of s on the target
// in the order font-weight, font-style, text-decoration, color, background-color.
func (s Style) Apply(target StyleSetter) {
	if s.Weight != WeightNone {
		target.SetProperty("font-weight", s.Weight.String())
	}
	if s.Italic {
		target.SetProperty("font-style", "italic")
	}
	switch {
	case s.Underline && s.Strikethrough:
		target.SetProperty("text-decoration", "underline line-through")
	case s.Underline:
		target.SetProperty("text-decoration", "underline")
	case s.Strikethrough:
		target.SetProperty("text-decoration", "line-through")
	}
	if s.FG != "" {
		target.SetProperty("color", string(s.FG))
	}
	if s.BG != "" {
		target.SetProperty("background-color", string(s.BG))
	}
}

// CSS returns the inline style attribute value of s, for example
// "font-weight:bolder;color:#c19c00;". The empty style returns an empty string.
//
// Color values are not escaped, they must come from a validated [Palette]
// or from the numeric colors of [ExtendedColor].
func (s Style) CSS() string {
	var decl declarations
	s.Apply(&decl)
	return decl.String()
}

// declarations collects CSS properties as "name:value;" pairs.
type declarations struct {
	strings.Builder
}

func (d *declarations) SetProperty(name, value string) {
	d.WriteString(name)
	d.WriteByte(':')
	d.WriteString(value)
	d.WriteByte(';')
}
