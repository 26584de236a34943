package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/easeaico/virtual-companion/internal/companion"
	"github.com/easeaico/virtual-companion/internal/config"
	"github.com/easeaico/virtual-companion/internal/logging"
	"github.com/easeaico/virtual-companion/internal/models"
	"github.com/easeaico/virtual-companion/internal/prompt"
	"github.com/easeaico/virtual-companion/internal/speech"
	"github.com/easeaico/virtual-companion/internal/storage"
	"github.com/easeaico/virtual-companion/internal/types"
	"github.com/easeaico/virtual-companion/internal/utils/async"
)

const defaultUserName = "You"

func cmdChat(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Talk with the companion (default command)",
		Action: func(ctx context.Context, c *cli.Command) error {
			return runChat(ctx, cfg, c)
		},
	}
}

func runChat(ctx context.Context, cfg *config.Config, c *cli.Command) error {
	logger := logging.From(ctx)

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return goerr.Wrap(err, "failed to open storage", goerr.V("store", cfg.Store))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}()

	var session *companion.Session
	if err := withSpinner("Restoring conversation", func() error {
		var err error
		session, err = companion.RestoreSession(ctx, store)
		return err
	}); err != nil {
		return err
	}

	llm, err := models.New(ctx, cfg.Provider, cfg.Model, cfg.ClientConfig())
	if err != nil {
		return err
	}
	replier := models.NewReplier(llm).WithSampling(float32(cfg.Temperature), int32(cfg.MaxTokens))
	logger.Info("reply model ready", "provider", cfg.Provider, "model", replier.Name())

	orch := companion.New(session, replier,
		companion.WithStore(store),
		companion.WithSpeaker(newSpeaker(ctx, cfg)),
		companion.WithVoice(cfg.Voice),
		companion.WithProfile(profile),
		companion.WithUserName(cfg.UserName),
		companion.WithPromptBuilder(prompt.NewBuilder(prompt.DefaultHistoryLimit)),
	)
	defer orch.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          c.Root().Writer,
		Stderr:          c.Root().ErrWriter,
		Listener: readline.FuncListener(func(line []rune, pos int, key rune) ([]rune, int, bool) {
			if key != readline.CharEnter {
				orch.UpdateDraft(draftText(string(line)))
			}
			return nil, 0, false
		}),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to open terminal")
	}
	defer rl.Close()

	userName := cfg.UserName
	if userName == "" {
		userName = defaultUserName
	}
	scr := newScreen(rl, profile.Name, userName, orch.CurrentVisualState())

	updates := make(chan types.VisualState, 1)
	unsubscribe := orch.Subscribe(func(vs types.VisualState) {
		pushLatest(updates, vs)
	})
	defer unsubscribe()

	animCtx, stopAnim := context.WithCancel(ctx)
	defer stopAnim()
	go scr.animate(animCtx, updates)

	for _, msg := range orch.RecentMessages(cfg.HistoryWindow) {
		scr.printMessage(msg)
	}
	if greeting, ok := orch.Greet(ctx); ok {
		scr.printMessage(greeting)
	}
	scr.println(dim.Sprint("Type /help for commands, exit to leave."))

	var pending sync.WaitGroup
	defer pending.Wait()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				break
			}
			orch.UpdateDraft("")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to read input")
		}

		in := parseInput(line)
		switch in.kind {
		case inputEmpty:
			orch.UpdateDraft("")
		case inputExit:
			scr.println(renderResponse(tplGoodbye, map[string]any{"Name": profile.Name}))
			return nil
		case inputMessage:
			orch.UpdateDraft("")
			pending.Add(1)
			async.Dispatch(ctx, func(ctx context.Context) error {
				defer pending.Done()
				if reply, ok := orch.Submit(ctx, in.text); ok {
					scr.printMessage(reply)
				}
				return nil
			})
		case inputMood:
			entry := orch.RecordMood(ctx, in.level)
			scr.println(renderResponse(tplMood, map[string]any{
				"Level":         entry.Level,
				"Name":          profile.Name,
				"CompanionMood": orch.CurrentCompanionMood(),
			}))
		case inputVoice:
			orch.SetVoiceEnabled(in.voice)
			scr.println(renderResponse(tplVoice, map[string]any{"Enabled": orch.VoiceEnabled()}))
		case inputState:
			scr.println(renderResponse(tplState, orch.Status()))
		case inputHistory:
			for _, msg := range orch.RecentMessages(cfg.HistoryWindow) {
				scr.printMessage(msg)
			}
		case inputHelp:
			scr.println(renderResponse(tplHelp, nil))
		case inputUsage:
			scr.println(renderResponse(in.usage, nil))
		case inputUnknown:
			scr.println(renderResponse(tplUnknown, map[string]any{"Input": in.text}))
		}
	}

	return nil
}

// newSpeaker returns the configured speech command, or a muted speaker when
// the command is unavailable.
func newSpeaker(ctx context.Context, cfg *config.Config) companion.Speaker {
	speaker, err := speech.NewCommandSpeaker(cfg.SpeechCommand)
	if err != nil {
		if cfg.Voice {
			logging.From(ctx).Warn("speech disabled", "command", cfg.SpeechCommand, "error", err)
		}
		return speech.Muted{}
	}
	return speaker
}

// withSpinner shows a spinner on stderr while fn runs.
func withSpinner(suffix string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(os.Stderr))
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()
	return fn()
}
