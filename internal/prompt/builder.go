// Package prompt assembles the context sent to the reply model.
package prompt

import (
	"bytes"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/easeaico/virtual-companion/internal/emotion"
	"github.com/easeaico/virtual-companion/internal/types"
	"github.com/easeaico/virtual-companion/internal/utils"
)

// DefaultHistoryLimit is how many trailing messages the prompt carries.
const DefaultHistoryLimit = 4

const defaultUserName = "User"

// BuildContext contains all inputs for prompt assembly.
type BuildContext struct {
	Profile       *types.Profile
	UserName      string
	CompanionMood int
	LastMood      *types.MoodEntry
	History       []types.Message
}

type historyLine struct {
	Speaker string
	Content string
}

// Builder renders prompts from the persona, mood and recent conversation.
type Builder struct {
	historyLimit int
	nowFunc      func() time.Time
}

// NewBuilder creates a prompt Builder keeping historyLimit messages.
func NewBuilder(historyLimit int) *Builder {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Builder{
		historyLimit: historyLimit,
		nowFunc:      time.Now,
	}
}

// WithClock replaces the builder's time source.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.nowFunc = now
	return b
}

// Build renders the prompt context.
func (b *Builder) Build(ctx BuildContext) (string, error) {
	if ctx.Profile == nil {
		return "", goerr.New("profile is required")
	}

	name := ctx.Profile.Name
	if name == "" {
		name = types.DefaultCompanionName
	}
	userName := ctx.UserName
	if userName == "" {
		userName = defaultUserName
	}

	history := ctx.History
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}
	lines := make([]historyLine, 0, len(history))
	for _, msg := range history {
		speaker := userName
		if msg.Sender == types.SenderCompanion {
			speaker = name
		}
		lines = append(lines, historyLine{Speaker: speaker, Content: msg.Content})
	}

	now := b.nowFunc()
	var lastMoodAt string
	if ctx.LastMood != nil {
		lastMoodAt = describeAge(now.Sub(ctx.LastMood.Timestamp))
	}

	data := struct {
		Name            string
		Profile         *types.Profile
		SystemPrompt    string
		Now             string
		CompanionMood   int
		MoodInstruction string
		LastMood        *types.MoodEntry
		LastMoodAt      string
		ExampleDialogue string
		History         []historyLine
	}{
		Name:            name,
		Profile:         ctx.Profile,
		SystemPrompt:    utils.NormalizePromptText(ctx.Profile.SystemPrompt, name, userName),
		Now:             now.Format(time.RFC3339),
		CompanionMood:   types.ClampMoodLevel(ctx.CompanionMood),
		MoodInstruction: emotion.MoodInstruction(ctx.CompanionMood),
		LastMood:        ctx.LastMood,
		LastMoodAt:      lastMoodAt,
		ExampleDialogue: utils.NormalizePromptText(ctx.Profile.ExampleDialogue, name, userName),
		History:         lines,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to build prompt")
	}
	return buf.String(), nil
}

func describeAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return d.Truncate(time.Minute).String() + " ago"
	default:
		return d.Truncate(time.Hour).String() + " ago"
	}
}
