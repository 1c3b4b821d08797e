package ansihtml

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a CSS color value such as "#c19c00" or "rgb(0,95,255)".
type Color string

// Palette holds the 8 standard and 8 bright ANSI colors, indexed
// black, red, green, yellow, blue, magenta, cyan, white.
//
// When used as overrides, an empty Color means the slot is unset.
type Palette struct {
	Standard [8]Color
	Bright   [8]Color
}

// Scheme selects one of the built-in palettes.
// The ANSI standard never formalized color values and it was left to the system to determine.
// Wikipedia has a [useful table] of the common palettes.
//
// [useful table]: https://en.wikipedia.org/wiki/ANSI_escape_code#3-bit_and_4-bit
type Scheme uint

const (
	Campbell Scheme = iota // Campbell colorset of the Windows Terminal and the Windows 10 console
	CGA16                  // Color Graphics Adapter colorset defined by IBM for the PC in 1981
	Xterm16                // Xterm terminal emulator program for the X Window System colorset from the mid-1980s
)

func (s Scheme) String() string {
	switch s {
	case Campbell:
		return "campbell"
	case CGA16:
		return "cga"
	case Xterm16:
		return "xterm"
	}
	return fmt.Sprintf("Scheme(%d)", uint(s))
}

// Palette returns the colors of the scheme.
// Unknown schemes return the Campbell palette.
func (s Scheme) Palette() Palette {
	switch s {
	case CGA16:
		return CGA()
	case Xterm16:
		return Xterm()
	default:
		return CampbellPalette()
	}
}

// CampbellPalette returns the default palette.
func CampbellPalette() Palette {
	return Palette{
		Standard: [8]Color{
			"#0c0c0c", "#c50f1f", "#13a10e", "#c19c00",
			"#0037da", "#881798", "#3a96dd", "#cccccc",
		},
		Bright: [8]Color{
			"#767676", "#e74856", "#16c60c", "#f9f1a5",
			"#3b78ff", "#b4009e", "#61d6d6", "#f2f2f2",
		},
	}
}

// CGA returns the IBM PC Color Graphics Adapter palette.
func CGA() Palette {
	return Palette{
		Standard: [8]Color{
			"#000", "#a00", "#0a0", "#a50", "#00a", "#a0a", "#0aa", "#aaa",
		},
		Bright: [8]Color{
			"#555", "#f55", "#5f5", "#ff5", "#55f", "#f5f", "#5ff", "#fff",
		},
	}
}

// Xterm returns the xterm palette.
func Xterm() Palette {
	return Palette{
		Standard: [8]Color{
			"#000", "#800000", "#008000", "#808000", "#000080", "#800080", "#008080", "#c0c0c0",
		},
		Bright: [8]Color{
			"#808080", "#f00", "#0f0", "#ff0", "#00f", "#f0f", "#0ff", "#fff",
		},
	}
}

// Color returns the color at index 0-7, using the bright set when bright is toggled.
// Any invalid index returns a blank color.
func (p Palette) Color(index int, bright bool) Color {
	if index < 0 || index > 7 {
		return ""
	}
	if bright {
		return p.Bright[index]
	}
	return p.Standard[index]
}

// Resolve merges the overrides over the defaults.
// Each of the 16 slots uses the override color when it is set, otherwise the default.
func Resolve(overrides, defaults Palette) Palette {
	p := defaults
	for i, c := range overrides.Standard {
		if c != "" {
			p.Standard[i] = c
		}
	}
	for i, c := range overrides.Bright {
		if c != "" {
			p.Bright[i] = c
		}
	}
	return p
}

var names = [8]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Validate checks that every set slot is a hexadecimal CSS color such as "#f00" or "#ff0000".
// Anything else could break out of an HTML style attribute, so invalid slots are
// returned as a joined error and should be dropped with [Palette.Valid].
func (p Palette) Validate() error {
	var errs []error
	check := func(set string, colors [8]Color) {
		for i, c := range colors {
			if c == "" {
				continue
			}
			if _, err := hexColor(c); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s %s %q", ErrColor, set, names[i], c))
			}
		}
	}
	check("standard", p.Standard)
	check("bright", p.Bright)
	return errors.Join(errs...)
}

// Valid returns a copy of p with every slot that fails [Palette.Validate] unset,
// and the remaining slots normalized to lowercase "#rrggbb" values.
func (p Palette) Valid() Palette {
	clean := func(colors [8]Color) [8]Color {
		for i, c := range colors {
			if c == "" {
				continue
			}
			hex, err := hexColor(c)
			if err != nil {
				colors[i] = ""
				continue
			}
			colors[i] = hex
		}
		return colors
	}
	return Palette{Standard: clean(p.Standard), Bright: clean(p.Bright)}
}

// hexColor parses c as "#rgb" or "#rrggbb" and returns it as "#rrggbb".
func hexColor(c Color) (Color, error) {
	const short, long = len("#rgb"), len("#rrggbb")
	if len(c) != short && len(c) != long {
		return "", fmt.Errorf("%q is not a hex color", string(c))
	}
	col, err := colorful.Hex(string(c))
	if err != nil {
		return "", fmt.Errorf("hex color: %w", err)
	}
	return Color(col.Hex()), nil
}
