package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/angoly-ara/inventory/alog"
	"github.com/angoly-ara/inventory/audit"
)

// Runner is a sub menu of the MainMenu.
type Runner interface {
	Title() string
	Run(ctx context.Context) error
}

// MainMenu lets the user choose a sub menu, until the user exits.
type MainMenu struct {
	console *Console
	actor   audit.Actor
	logger  alog.Logger
	entries []Runner
}

func NewMainMenu(console *Console, actor audit.Actor, logger alog.Logger, entries ...Runner) *MainMenu {
	if logger == nil {
		logger = alog.NewNoop()
	}

	return &MainMenu{
		console: console,
		actor:   actor,
		logger:  logger,
		entries: entries,
	}
}

// Run shows the main menu. It returns nil when the user exits or the input ends.
func (m *MainMenu) Run(ctx context.Context) error {
	exit := len(m.entries) + 1

	for {
		m.console.Clear()
		m.console.Title("=== MAIN MENU ===")
		m.console.Printf("User: %s\n\n", m.actor.Name())

		for i, e := range m.entries {
			m.console.Printf("[%d] %s\n", i+1, e.Title())
		}

		m.console.Printf("[%d] Exit\n", exit)

		option, err := m.console.ReadOption("Select an option: ")
		if err != nil {
			return endOfInput(err)
		}

		switch {
		case option == exit:
			m.logger.DebugContext(ctx, "exit")

			return nil
		case option >= 1 && option < exit:
			entry := m.entries[option-1]
			m.logger.DebugContext(ctx, "open menu", "menu", entry.Title())

			if err := entry.Run(ctx); err != nil {
				return endOfInput(err)
			}

			continue
		default:
			m.console.Error("Invalid option.")
		}

		if err := m.console.Pause(); err != nil {
			return endOfInput(err)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}

	return fmt.Errorf("menu stopped: %w", err)
}
