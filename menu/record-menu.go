package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/angoly-ara/inventory/alog"
	"github.com/angoly-ara/inventory/app"
	"github.com/angoly-ara/inventory/audit"
	"github.com/angoly-ara/inventory/catalog"
)

const (
	optionAdd = iota + 1
	optionShow
	optionModify
	optionDelete
	optionReturn
)

// RecordMenu lets a user manage the records of one catalog.
type RecordMenu[E any] struct {
	console *Console
	catalog *catalog.Catalog[E]
	actor   audit.Actor
	logger  alog.Logger
}

func NewRecordMenu[E any](console *Console, c *catalog.Catalog[E], actor audit.Actor, logger alog.Logger) *RecordMenu[E] {
	if logger == nil {
		logger = alog.NewNoop()
	}

	return &RecordMenu[E]{
		console: console,
		catalog: c,
		actor:   actor,
		logger:  logger,
	}
}

// Title is the name of the menu in the main menu.
func (m *RecordMenu[E]) Title() string {
	return m.catalog.Kind().Plural
}

// Run shows the menu until the user returns. The records are loaded first
// and persisted when leaving. Run returns io.EOF, if the input ended.
func (m *RecordMenu[E]) Run(ctx context.Context) error {
	kind := m.catalog.Kind()
	ctx = alog.AddAttr(ctx, slog.String("kind", kind.Plural))

	// the screen is not cleared before the first menu, so a load warning stays visible
	keepScreen := false

	if err := m.catalog.Load(ctx); err != nil {
		m.logger.InfoContext(ctx, "could not load all records", alog.Error(err))

		if errors.Is(err, catalog.ErrNoData) {
			m.console.Error(fmt.Sprintf("Warning: could not open the %s file %s, starting with an empty list",
				strings.ToLower(kind.Plural), kind.File))
		} else {
			m.console.Error(fmt.Sprintf("Warning: the %s file could not be read completely: %v", strings.ToLower(kind.Plural), err))
		}

		keepScreen = true
	}

	for {
		if !keepScreen {
			m.console.Clear()
		}

		keepScreen = false

		m.console.Title(fmt.Sprintf("=== %s MENU ===", strings.ToUpper(kind.Plural)))
		m.console.Printf("User: %s\n\n", m.actor.Name())
		m.console.Printf("[%d] Add %s\n", optionAdd, kind.Singular)
		m.console.Printf("[%d] Show %s\n", optionShow, kind.Plural)
		m.console.Printf("[%d] Modify %s\n", optionModify, kind.Singular)
		m.console.Printf("[%d] Delete %s\n", optionDelete, kind.Singular)
		m.console.Printf("[%d] Return\n", optionReturn)

		option, err := m.console.ReadOption("Select an option: ")
		if err != nil {
			return err
		}

		switch option {
		case optionAdd:
			err = m.add(ctx)
		case optionShow:
			m.show(ctx)
		case optionModify:
			err = m.modify(ctx)
		case optionDelete:
			err = m.delete(ctx)
		case optionReturn:
			if err := m.catalog.Persist(ctx); err != nil {
				m.logger.InfoContext(ctx, "could not persist records", alog.Error(err))
				m.console.Error("Error: could not save the " + strings.ToLower(kind.Plural) + ": " + err.Error())
			}

			return nil
		default:
			m.console.Error("Invalid option.")
		}

		if err != nil {
			return err
		}

		if err := m.console.Pause(); err != nil {
			return err
		}
	}
}

func (m *RecordMenu[E]) add(ctx context.Context) error {
	kind := m.catalog.Kind()

	id, err := m.catalog.NextID(ctx)
	if err != nil {
		m.console.Error(fmt.Sprintf("Error: no codes available for new %s (range full)", strings.ToLower(kind.Plural)))

		return nil
	}

	m.console.Title(fmt.Sprintf("\n=== ADD %s (auto-assigned ID: %s) ===", strings.ToUpper(kind.Singular), id))

	values, err := m.readValues(kind.Prompts(), nil)
	if err != nil {
		return err
	}

	if _, err := m.catalog.Add(ctx, m.actor, id, values); err != nil {
		m.report(err)

		if !errors.Is(err, catalog.ErrNotPersisted) {
			return nil
		}
	}

	m.console.Success(fmt.Sprintf("%s registered with ID: %s", kind.Singular, id))

	return nil
}

func (m *RecordMenu[E]) show(ctx context.Context) bool {
	kind := m.catalog.Kind()
	records := m.catalog.List(ctx)

	if len(records) == 0 {
		m.console.Printf("\n--- NO %s REGISTERED ---\n", strings.ToUpper(kind.Plural))

		return false
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, kind.Values(r))
	}

	m.console.Println()
	RenderTable(m.console.Out(), kind.Headers(), kind.Widths, rows)

	return true
}

func (m *RecordMenu[E]) modify(ctx context.Context) error {
	kind := m.catalog.Kind()

	id, ok, err := m.selectID(ctx, "ID to modify: ")
	if !ok || err != nil {
		return err
	}

	current, err := m.catalog.Find(ctx, id)
	if err != nil {
		m.report(err)

		return nil
	}

	m.console.Title(fmt.Sprintf("\n=== MODIFY %s %s ===", strings.ToUpper(kind.Singular), id))

	values, err := m.readValues(kind.Prompts(), kind.Values(current)[1:])
	if err != nil {
		return err
	}

	if _, err := m.catalog.Modify(ctx, m.actor, id, values); err != nil {
		m.report(err)

		if !errors.Is(err, catalog.ErrNotPersisted) {
			return nil
		}
	}

	m.console.Success(kind.Singular + " modified")

	return nil
}

func (m *RecordMenu[E]) delete(ctx context.Context) error {
	kind := m.catalog.Kind()

	id, ok, err := m.selectID(ctx, "ID to delete: ")
	if !ok || err != nil {
		return err
	}

	if err := m.catalog.Delete(ctx, m.actor, id); err != nil {
		m.report(err)

		if !errors.Is(err, catalog.ErrNotPersisted) {
			return nil
		}
	}

	m.console.Success(kind.Singular + " deleted")

	return nil
}

// selectID shows all records and asks for the id of one of them.
// It returns false, if there are no records or the id is not valid.
func (m *RecordMenu[E]) selectID(ctx context.Context, prompt string) (string, bool, error) {
	if !m.show(ctx) {
		return "", false, nil
	}

	id, err := m.console.ReadLine("\n" + prompt)
	if err != nil {
		return "", false, err
	}

	id = strings.TrimSpace(id)

	if !m.catalog.ValidID(id) {
		r := m.catalog.Range()
		m.console.Error(fmt.Sprintf("ID not valid. Must be between %d and %d", r.Low, r.High))

		return "", false, nil
	}

	return id, true, nil
}

// readValues asks for every field. If current is given, it is shown next to the prompt.
func (m *RecordMenu[E]) readValues(prompts []string, current []string) ([]string, error) {
	values := make([]string, 0, len(prompts))

	for i, p := range prompts {
		prompt := p + ": "
		if i < len(current) {
			prompt = fmt.Sprintf("%s [%s]: ", p, current[i])
		}

		v, err := m.console.ReadLine(prompt)
		if err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	return values, nil
}

// report tells the user why a change failed.
func (m *RecordMenu[E]) report(err error) {
	kind := m.catalog.Kind()

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		m.console.Error(kind.Singular + " not found.")
	case errors.Is(err, catalog.ErrNotPersisted):
		m.console.Error("Warning: the change is kept but could not be saved: " + err.Error())
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, catalog.ErrInvalidID):
		m.console.Error(err.Error())
	default:
		m.console.Error("Error: " + err.Error())
	}
}
