package avatar

import "github.com/easeaico/virtual-companion/internal/types"

type palette struct {
	name      types.PaletteName
	primary   types.Gradient
	secondary types.Gradient
}

func rgb(r, g, b uint8) types.Color {
	return types.Color{R: r, G: g, B: b}
}

func gradient(from, to types.Color) types.Gradient {
	return types.Gradient{From: from, To: to}
}

var (
	cyan   = rgb(0x22, 0xd3, 0xee)
	blue   = rgb(0x3b, 0x82, 0xf6)
	purple = rgb(0xa8, 0x55, 0xf7)
	pink   = rgb(0xec, 0x48, 0x99)

	// glowColor is the single hue of the avatar glow; only its alpha varies.
	glowColor = purple
)

var processingPalette = palette{
	name:      types.PaletteProcessing,
	primary:   gradient(cyan, blue),
	secondary: gradient(purple, pink),
}

type band int

const (
	bandLow band = iota
	bandNeutral
	bandHigh
)

// palettes is indexed by band, then by heightened (0 calm, 1 heightened).
var palettes = [3][2]palette{
	bandLow: {
		{
			name:      types.PaletteLowCalm,
			primary:   gradient(rgb(0x63, 0x66, 0xf1), rgb(0x47, 0x55, 0x69)),
			secondary: gradient(rgb(0x64, 0x74, 0x8b), rgb(0x94, 0xa3, 0xb8)),
		},
		{
			name:      types.PaletteLowHeightened,
			primary:   gradient(rgb(0x7c, 0x3a, 0xed), rgb(0x1e, 0x3a, 0x8a)),
			secondary: gradient(rgb(0xdc, 0x26, 0x26), rgb(0x4c, 0x1d, 0x95)),
		},
	},
	bandNeutral: {
		{
			name:      types.PaletteNeutralCalm,
			primary:   gradient(rgb(0x14, 0xb8, 0xa6), rgb(0x0e, 0xa5, 0xe9)),
			secondary: gradient(rgb(0xa7, 0x8b, 0xfa), rgb(0x81, 0x8c, 0xf8)),
		},
		{
			name:      types.PaletteNeutralHeightened,
			primary:   gradient(rgb(0x06, 0xb6, 0xd4), rgb(0x8b, 0x5c, 0xf6)),
			secondary: gradient(rgb(0xf4, 0x72, 0xb6), rgb(0xa8, 0x55, 0xf7)),
		},
	},
	bandHigh: {
		{
			name:      types.PaletteHighCalm,
			primary:   gradient(rgb(0xfb, 0xbf, 0x24), rgb(0xf4, 0x72, 0xb6)),
			secondary: gradient(rgb(0xfb, 0x92, 0x3c), rgb(0xfa, 0xcc, 0x15)),
		},
		{
			name:      types.PaletteHighHeightened,
			primary:   gradient(rgb(0xf9, 0x73, 0x16), rgb(0xec, 0x48, 0x99)),
			secondary: gradient(rgb(0xef, 0x44, 0x44), rgb(0xf5, 0x9e, 0x0b)),
		},
	},
}

func moodBand(mood int) band {
	switch {
	case mood <= 2:
		return bandLow
	case mood == 3:
		return bandNeutral
	default:
		return bandHigh
	}
}
