package types

import (
	"fmt"
	"time"
)

// Activity tells whether a companion reply is pending.
type Activity string

const (
	ActivityIdle     Activity = "idle"
	ActivityThinking Activity = "thinking"
)

// Color is an opaque sRGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA is a color with an alpha channel in [0,1].
type RGBA struct {
	Color
	A float64 `json:"a"`
}

// String formats the color the way CSS expects it.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, c.A)
}

// Gradient is a two-stop color gradient.
type Gradient struct {
	From Color `json:"from"`
	To   Color `json:"to"`
}

// PaletteName identifies which entry of the palette table was selected.
type PaletteName string

const (
	PaletteProcessing        PaletteName = "processing"
	PaletteLowCalm           PaletteName = "low-calm"
	PaletteLowHeightened     PaletteName = "low-heightened"
	PaletteNeutralCalm       PaletteName = "neutral-calm"
	PaletteNeutralHeightened PaletteName = "neutral-heightened"
	PaletteHighCalm          PaletteName = "high-calm"
	PaletteHighHeightened    PaletteName = "high-heightened"
)

// VisualState is the renderer-facing bundle derived from mood, intensity and activity.
// It is never persisted.
type VisualState struct {
	Palette         PaletteName   `json:"palette"`
	Primary         Gradient      `json:"primary_gradient"`
	Secondary       Gradient      `json:"secondary_gradient"`
	Glow            RGBA          `json:"glow_color"`
	AnimationPeriod time.Duration `json:"animation_period"`
	PrimaryScale    float64       `json:"primary_scale"`
	SecondaryScale  float64       `json:"secondary_scale"`
}
