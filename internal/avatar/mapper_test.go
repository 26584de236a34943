package avatar_test

import (
	"testing"
	"time"

	"github.com/easeaico/virtual-companion/internal/avatar"
	"github.com/easeaico/virtual-companion/internal/types"
	"github.com/m-mizutani/gt"
)

func TestMapPaletteSelection(t *testing.T) {
	cases := []struct {
		name      string
		mood      int
		intensity float64
		want      types.PaletteName
	}{
		{"low calm", 1, 30, types.PaletteLowCalm},
		{"low heightened", 2, 90, types.PaletteLowHeightened},
		{"neutral calm", 3, 70, types.PaletteNeutralCalm},
		{"neutral heightened", 3, 71, types.PaletteNeutralHeightened},
		{"high calm", 4, 50, types.PaletteHighCalm},
		{"high heightened", 5, 100, types.PaletteHighHeightened},
		{"mood clamped low", -4, 30, types.PaletteLowCalm},
		{"mood clamped high", 42, 95, types.PaletteHighHeightened},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := avatar.Map(tc.mood, tc.intensity, types.ActivityIdle)
			gt.Equal(t, state.Palette, tc.want)
		})
	}
}

func TestMapThinkingOverridesMood(t *testing.T) {
	for mood := types.MinMoodLevel; mood <= types.MaxMoodLevel; mood++ {
		for _, intensity := range []float64{10, 55, 100} {
			state := avatar.Map(mood, intensity, types.ActivityThinking)
			gt.Equal(t, state.Palette, types.PaletteProcessing)
			gt.Equal(t, state.Primary.From.Hex(), "#22d3ee")
			gt.Equal(t, state.Primary.To.Hex(), "#3b82f6")
			gt.Equal(t, state.Secondary.From.Hex(), "#a855f7")
			gt.Equal(t, state.Secondary.To.Hex(), "#ec4899")
		}
	}
}

func TestMapNumericParameters(t *testing.T) {
	state := avatar.Map(3, 90, types.ActivityIdle)

	gt.Equal(t, state.AnimationPeriod, 1200*time.Millisecond)
	gt.Number(t, state.Glow.A).Greater(0.659).Less(0.661)
	gt.Number(t, state.PrimaryScale).Greater(1.0899).Less(1.0901)
	gt.Number(t, state.SecondaryScale).Greater(1.0749).Less(1.0751)
}

func TestMapPeriodFloor(t *testing.T) {
	state := avatar.Map(3, 100, types.ActivityIdle)
	gt.Equal(t, state.AnimationPeriod, 1000*time.Millisecond)
	gt.Number(t, int64(state.AnimationPeriod)).GreaterOrEqual(int64(avatar.BasePeriod) * 3 / 10)
}

func TestMapIntensityClamped(t *testing.T) {
	low := avatar.Map(3, -50, types.ActivityIdle)
	gt.Equal(t, low, avatar.Map(3, 10, types.ActivityIdle))

	high := avatar.Map(3, 500, types.ActivityIdle)
	gt.Equal(t, high, avatar.Map(3, 100, types.ActivityIdle))
}

func TestMapMonotonicInIntensity(t *testing.T) {
	prev := avatar.Map(4, 10, types.ActivityIdle)
	for i := 11.0; i <= 100; i++ {
		cur := avatar.Map(4, i, types.ActivityIdle)
		gt.Number(t, int64(cur.AnimationPeriod)).LessOrEqual(int64(prev.AnimationPeriod))
		gt.Number(t, cur.Glow.A).GreaterOrEqual(prev.Glow.A)
		gt.Number(t, cur.PrimaryScale).GreaterOrEqual(prev.PrimaryScale)
		prev = cur
	}
}

func TestMapDeterministic(t *testing.T) {
	gt.Equal(t,
		avatar.Map(2, 64.5, types.ActivityIdle),
		avatar.Map(2, 64.5, types.ActivityIdle),
	)
}

func TestIsHeightened(t *testing.T) {
	gt.False(t, avatar.IsHeightened(70))
	gt.True(t, avatar.IsHeightened(70.1))
}
