package cli

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"

	"github.com/easeaico/virtual-companion/internal/logging"
	"github.com/easeaico/virtual-companion/internal/types"
)

type inputKind int

const (
	inputMessage inputKind = iota
	inputEmpty
	inputExit
	inputHelp
	inputMood
	inputVoice
	inputState
	inputHistory
	inputUsage
	inputUnknown
)

// input is one parsed line of the chat prompt.
type input struct {
	kind  inputKind
	text  string
	level int
	voice bool
	// usage names the template shown for a malformed command.
	usage string
}

const (
	tplHelp       = "help"
	tplMood       = "mood"
	tplMoodUsage  = "mood_usage"
	tplVoice      = "voice"
	tplVoiceUsage = "voice_usage"
	tplState      = "state"
	tplUnknown    = "unknown"
	tplGoodbye    = "goodbye"
)

var responseTemplatesText = `
{{define "help"}}Commands:
  /mood <1-5>     check in with how you feel
  /voice on|off   speak replies aloud
  /state          show the companion state
  /history        show recent messages
  /help           show this help
  exit            leave the chat{{end}}
{{define "mood"}}Mood {{.Level}}/5 noted. {{.Name}} is feeling {{.CompanionMood}}/5.{{end}}
{{define "mood_usage"}}Usage: /mood <1-5>, where 1 is very low and 5 is great.{{end}}
{{define "voice"}}Voice {{if .Enabled}}on{{else}}off{{end}}.{{end}}
{{define "voice_usage"}}Usage: /voice on|off{{end}}
{{define "state"}}Session    {{.SessionID}}
Mood       {{.CompanionMood}}/5 from {{.MoodEntries}} check-ins
Intensity  {{printf "%.1f" .Intensity}} (committed {{printf "%.1f" .Committed}}{{if .Drafting}}, draft {{printf "%.1f" .Preview}}{{end}})
Activity   {{.Activity}}{{if .PendingReplies}}, {{.PendingReplies}} pending{{end}}
Palette    {{.Visual.Palette}} {{.Visual.Primary.From.Hex}}-{{.Visual.Primary.To.Hex}} / {{.Visual.Secondary.From.Hex}}-{{.Visual.Secondary.To.Hex}}
Glow       {{.Visual.Glow}}
Pulse      {{.Visual.AnimationPeriod}} at scale {{printf "%.3f" .Visual.PrimaryScale}}/{{printf "%.3f" .Visual.SecondaryScale}}
Messages   {{.Messages}}
Voice      {{if .VoiceEnabled}}on{{else}}off{{end}}{{end}}
{{define "unknown"}}Unknown command {{.Input}}. Type /help for the list.{{end}}
{{define "goodbye"}}{{.Name}} waves goodbye.{{end}}
`

var responseTemplates = template.Must(template.New("commands").Parse(responseTemplatesText))

// parseInput classifies a prompt line. Lines that do not start with a slash
// are chat messages.
func parseInput(line string) input {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return input{kind: inputEmpty}
	case trimmed == "exit" || trimmed == "quit" || trimmed == "/exit" || trimmed == "/quit":
		return input{kind: inputExit}
	case !strings.HasPrefix(trimmed, "/"):
		return input{kind: inputMessage, text: trimmed}
	}

	fields := strings.Fields(trimmed)
	name, args := fields[0], fields[1:]

	switch name {
	case "/help":
		return input{kind: inputHelp}
	case "/state":
		return input{kind: inputState}
	case "/history":
		return input{kind: inputHistory}
	case "/mood":
		if len(args) != 1 {
			return input{kind: inputUsage, usage: tplMoodUsage}
		}
		level, err := strconv.Atoi(args[0])
		if err != nil || level < types.MinMoodLevel || level > types.MaxMoodLevel {
			return input{kind: inputUsage, usage: tplMoodUsage}
		}
		return input{kind: inputMood, level: level}
	case "/voice":
		if len(args) != 1 {
			return input{kind: inputUsage, usage: tplVoiceUsage}
		}
		switch strings.ToLower(args[0]) {
		case "on":
			return input{kind: inputVoice, voice: true}
		case "off":
			return input{kind: inputVoice, voice: false}
		default:
			return input{kind: inputUsage, usage: tplVoiceUsage}
		}
	default:
		return input{kind: inputUnknown, text: name}
	}
}

// draftText returns the part of a prompt line that feeds the intensity
// preview. Commands are not conversation and preview nothing.
func draftText(line string) string {
	if strings.HasPrefix(strings.TrimSpace(line), "/") {
		return ""
	}
	return line
}

func renderResponse(tplName string, data any) string {
	var buf bytes.Buffer
	if err := responseTemplates.ExecuteTemplate(&buf, tplName, data); err != nil {
		logging.Default().Error("failed to execute template", "template", tplName, "error", err)
		return "Something went wrong while handling that command."
	}
	return buf.String()
}
