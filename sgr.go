package ansihtml

import (
	"fmt"
	"strconv"
	"strings"
)

// SGR parameter values.
const (
	Reset           = 0
	Bold            = 1
	Faint           = 2
	Italic          = 3
	Underline       = 4
	Strikethrough   = 9
	NotBoldFaint    = 22
	NotItalic       = 23
	NotUnderline    = 24
	NotStrike       = 29
	FG1st           = 30
	FGEnd           = 37
	SetFG           = 38
	DefaultFG       = 39
	BG1st           = 40
	BGEnd           = 47
	SetBG           = 48
	DefaultBG       = 49
	BrightFG1st     = 90
	BrightFGEnd     = 97
	BrightBG1st     = 100
	BrightBGEnd     = 107
	ColorspaceRGB   = 2 // ColorspaceRGB selects 24-bit color, 38;2;r;g;b
	ColorspaceXterm = 5 // ColorspaceXterm selects 8-bit indexed color, 38;5;n
)

// ParseParams splits a CSI parameter string on semicolons.
// Empty parameters, including an empty string, are 0 and
// values that are not a representable integer are -1.
func ParseParams(s string) []int {
	fields := strings.Split(s, ";")
	params := make([]int, len(fields))
	for i, f := range fields {
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			n = -1
		}
		params[i] = n
	}
	return params
}

// ApplySGR applies the SGR parameters, left to right, to a copy of cur and returns the new Style.
// Unsupported parameters are ignored.
//
// A malformed 38 or 48 extended color abandons the remaining parameters.
// The returned Style then keeps the effects of the parameters before it,
// and the error wraps [ErrColorspace].
func ApplySGR(params []int, cur Style, pal Palette) (Style, error) { //nolint:gocyclo
	s := cur
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == Reset:
			s = Style{}
		case p == Bold:
			s.Weight = Bolder
		case p == Faint:
			s.Weight = Lighter
		case p == NotBoldFaint:
			s.Weight = WeightNone
		case p == Italic:
			s.Italic = true
		case p == NotItalic:
			s.Italic = false
		case p == Underline:
			s.Underline = true
		case p == NotUnderline:
			s.Underline = false
		case p == Strikethrough:
			s.Strikethrough = true
		case p == NotStrike:
			s.Strikethrough = false
		case p == DefaultFG:
			s.FG = ""
		case p == DefaultBG:
			s.BG = ""
		case FG1st <= p && p <= FGEnd:
			s.FG = pal.Color(p-FG1st, false)
		case BG1st <= p && p <= BGEnd:
			s.BG = pal.Color(p-BG1st, false)
		case BrightFG1st <= p && p <= BrightFGEnd:
			s.FG = pal.Color(p-BrightFG1st, true)
		case BrightBG1st <= p && p <= BrightBGEnd:
			s.BG = pal.Color(p-BrightBG1st, true)
		case p == SetFG || p == SetBG:
			next, c, err := ExtendedColor(params, i+1, pal)
			if err != nil {
				return s, fmt.Errorf("sgr %d: %w", p, err)
			}
			if p == SetFG {
				s.FG = c
			} else {
				s.BG = c
			}
			// next is the first unconsumed parameter
			i = next - 1
		}
	}
	return s, nil
}

// ExtendedColor parses the colorspace parameters that follow a 38 or 48 parameter,
// with i as the index of the colorspace selector in params.
// It returns the index of the first parameter after the color, and the color.
//
//	5;n     8-bit xterm color, n is 0-255
//	2;r;g;b 24-bit color, each value is 0-255
//
// Unknown colorspaces, missing parameters and out of range values return an error
// that wraps [ErrColorspace].
func ExtendedColor(params []int, i int, pal Palette) (int, Color, error) {
	if i >= len(params) {
		return i, "", fmt.Errorf("%w: missing colorspace", ErrColorspace)
	}
	switch mode := params[i]; mode {
	case ColorspaceXterm:
		const vals = 1
		if i+vals >= len(params) {
			return i, "", fmt.Errorf("%w: 5 expects 1 parameter", ErrColorspace)
		}
		n := params[i+1]
		if !byteRange(n) {
			return i, "", fmt.Errorf("%w: color index %d out of range", ErrColorspace, n)
		}
		return i + 1 + vals, XtermColor(n, pal), nil
	case ColorspaceRGB:
		const vals = 3
		if i+vals >= len(params) {
			return i, "", fmt.Errorf("%w: 2 expects 3 parameters", ErrColorspace)
		}
		r, g, b := params[i+1], params[i+2], params[i+3]
		if !byteRange(r) || !byteRange(g) || !byteRange(b) {
			return i, "", fmt.Errorf("%w: rgb %d;%d;%d out of range", ErrColorspace, r, g, b)
		}
		return i + 1 + vals, RGB(r, g, b), nil
	default:
		return i, "", fmt.Errorf("%w: unknown colorspace %d", ErrColorspace, mode)
	}
}

func byteRange(v int) bool {
	const hi = 255
	return v >= 0 && v <= hi
}

// RGB returns the CSS functional notation of a red, green, blue color, "rgb(r,g,b)".
func RGB(r, g, b int) Color {
	return Color(fmt.Sprintf("rgb(%d,%d,%d)", r, g, b))
}

// XtermColor takes a Xterm color code and returns the corresponding Color.
// Codes 0-7 and 8-15 use the standard and bright colors of the Palette,
// the other codes up to 255 are RGB values.
// Codes are values between 0 and 255, and any invalid codes return a blank color.
//
//nolint:mnd
func XtermColor(code int, p Palette) Color {
	switch {
	case code < 0 || code > 255:
		return ""
	case code <= 7:
		return p.Color(code, false)
	case code <= 15:
		return p.Color(code-8, true)
	}
	r, g, b := XtermColors(code)
	return RGB(r, g, b)
}

// XtermColors takes a Xterm non-system color code and returns the corresponding RGB values.
// The code values begin at 16 and finish at 255.
// If a code is out of range, then the returned RGB values will be -1, which are invalid.
//
// Some helpful links, [256 colors cheat sheet] and [8-bit colors wiki].
//
// [256 colors cheat sheet]: https://www.ditig.com/256-colors-cheat-sheet
// [8-bit colors wiki]: https://en.wikipedia.org/wiki/ANSI_escape_code#8-bit
func XtermColors(code int) (int, int, int) {
	if code >= 16 && code <= 231 {
		return XtermCube(code)
	}
	if code >= 232 && code <= 255 {
		return XtermGray(code)
	}
	return -1, -1, -1
}

// XtermCube returns the RGB values of the 6×6×6 color cube, codes 16 to 231.
// Each of the six steps is 51 apart, so 16 is black and 231 is white.
//
//nolint:mnd
func XtermCube(code int) (int, int, int) {
	c := code - 16
	const step = 51
	r := (c / 36) % 6
	g := (c / 6) % 6
	b := c % 6
	return r * step, g * step, b * step
}

// XtermGray returns the RGB values of the 24 step grayscale ramp, codes 232 to 255.
//
//nolint:mnd
func XtermGray(code int) (int, int, int) {
	v := (code - 232) * 11
	return v, v, v
}
