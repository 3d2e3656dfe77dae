package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"ponder/internal/client"
	"ponder/internal/config"
	"ponder/internal/database"
	"ponder/internal/models"
	"ponder/internal/session"
	"ponder/internal/tui"
)

const version = "0.1.0"

func newApp() *cli.Command {
	defaults := config.LoadClient()

	return &cli.Command{
		Name:    "ponder",
		Usage:   "chat with a tutoring assistant through the Ponder relay",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "relay-url",
				Usage:   "base URL of the relay",
				Value:   defaults.RelayURL,
				Sources: cli.EnvVars("PONDER_RELAY_URL"),
			},
			&cli.StringFlag{
				Name:    "prefs",
				Usage:   "path of the preferences database",
				Value:   defaults.PrefsPath,
				Sources: cli.EnvVars("PONDER_PREFS_PATH"),
			},
			&cli.StringFlag{
				Name:    "prefs-redis",
				Usage:   "keep preferences in Redis instead of a local file",
				Value:   defaults.PrefsRedisURL,
				Sources: cli.EnvVars("PONDER_PREFS_REDIS_URL"),
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "send one message and print the reply",
				ArgsUsage: "<message>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "access-code",
						Usage:   "unlock code, needed until this device has been unlocked once",
						Sources: cli.EnvVars("PONDER_ACCESS_CODE"),
					},
				},
				Action: ask,
			},
		},
	}
}

func openPrefs(path, redisURL string) (database.PrefStore, error) {
	if redisURL != "" {
		store, err := database.NewRedisStore(redisURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := database.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// newSession opens the prefs store and builds the session store on top of the relay
// client. The caller closes the returned PrefStore.
func newSession(ctx context.Context, cmd *cli.Command, wrap func(session.EffectRunner) session.EffectRunner) (*session.Store, []session.Effect, database.PrefStore, error) {
	prefs, err := openPrefs(cmd.String("prefs"), cmd.String("prefs-redis"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open preferences: %w", err)
	}

	relay := client.New(cmd.String("relay-url"), nil)
	runtime := session.NewRuntime(relay, prefs, config.DefaultModel, config.DefaultMaxTokens)

	var runner session.EffectRunner = runtime
	if wrap != nil {
		runner = wrap(runtime)
	}

	state, startup := session.New(relay.BaseURL(), runtime.LoadAuthenticated(ctx))
	return session.NewStore(state, runner), startup, prefs, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	store, startup, prefs, err := newSession(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer prefs.Close()

	model := tui.New(ctx, store, startup)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}

// sendFailures remembers the error of the last failed send.
type sendFailures struct {
	session.EffectRunner
	err error
}

func (r *sendFailures) Run(ctx context.Context, eff session.Effect) session.Event {
	ev := r.EffectRunner.Run(ctx, eff)
	if failed, ok := ev.(session.SendFailed); ok {
		r.err = failed.Err
	}
	return ev
}

func ask(ctx context.Context, cmd *cli.Command) error {
	message := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if message == "" {
		return errors.New("ask needs a message")
	}

	failures := &sendFailures{}
	store, startup, prefs, err := newSession(ctx, cmd, func(r session.EffectRunner) session.EffectRunner {
		failures.EffectRunner = r
		return failures
	})
	if err != nil {
		return err
	}
	defer prefs.Close()

	var reply string
	unsubscribe := store.Subscribe(func(s session.State) {
		if n := len(s.Conversation); n > 0 && s.Conversation[n-1].Role == models.RoleAssistant {
			reply = s.Conversation[n-1].Content
		}
	})
	defer unsubscribe()

	store.Run(ctx, startup...)

	if !store.State().Authenticated {
		store.Dispatch(ctx, session.AccessCodeChanged{Code: cmd.String("access-code")})
		store.Dispatch(ctx, session.AccessCodeSubmitted{})
		if !store.State().Authenticated {
			return errors.New(session.InvalidCodeNotice)
		}
	}
	if notice := store.State().Notice; notice != "" {
		fmt.Fprintln(cmd.Root().ErrWriter, notice)
		store.Dispatch(ctx, session.NoticeDismissed{})
	}

	store.Dispatch(ctx, session.InputChanged{Text: message})
	store.Dispatch(ctx, session.SendRequested{})

	if notice := store.State().Notice; notice != "" {
		return errors.New(notice)
	}
	if failures.err != nil {
		return errors.New(reply)
	}
	fmt.Fprintln(cmd.Root().Writer, reply)
	return nil
}
