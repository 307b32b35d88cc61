package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/julianstephens/diacare/internal/backup"
	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/config"
	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/storage"
	"github.com/julianstephens/diacare/internal/tracker"
)

// Context is handed to every command's Run method.
type Context struct {
	Ctx     context.Context
	Target  config.Target
	Store   storage.Provider
	Tracker *tracker.Tracker
	Clock   clock.Clock
	Printer *message.Printer
	Out     io.Writer
	In      io.Reader
}

// NewContext wires a tracker in front of store.
func NewContext(ctx context.Context, target config.Target, store storage.Provider, opts ...tracker.Option) *Context {
	t := tracker.New(store, opts...)
	return &Context{
		Ctx:     ctx,
		Target:  target,
		Store:   store,
		Tracker: t,
		Clock:   t.Clock(),
		Printer: message.NewPrinter(language.English),
		Out:     os.Stdout,
		In:      os.Stdin,
	}
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// number formats n with thousands separators.
func (c *Context) number(n int) string {
	return c.Printer.Sprintf("%d", n)
}

// confirm asks a yes/no question on c.In. Anything but y or yes is no.
func (c *Context) confirm(prompt string) (bool, error) {
	c.printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// PerformAutomaticBackup backs up file stores and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.Target.IsFile() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// resolveHabit finds a habit by id or, failing that, by case-insensitive name.
func (c *Context) resolveHabit(ref string) (models.Habit, error) {
	habits := c.Tracker.Habits(c.Ctx)
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit not found: %s", ref)
}

// dateOrToday returns date, or today when date is empty or "today".
func (c *Context) dateOrToday(date string) string {
	if date == "" || date == "today" {
		return clock.Today(c.Clock)
	}
	return date
}
