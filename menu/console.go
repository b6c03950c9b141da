// Package menu is the interactive console of inventory.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const invalidNumber = "Invalid input. Enter a valid number: "

// Console reads lines typed by a user and writes text for them.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	terminal bool
	title    *color.Color
	success  *color.Color
	failure  *color.Color
}

// NewConsole returns a Console reading from in and writing to out.
// Colours and clearing the screen are only used, if out is a terminal.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		in:       bufio.NewReader(in),
		out:      out,
		terminal: isTerminal(out),
		title:    color.New(color.FgBlue, color.Bold),
		success:  color.New(color.FgGreen),
		failure:  color.New(color.FgRed, color.Bold),
	}

	if !c.terminal {
		c.title.DisableColor()
		c.success.DisableColor()
		c.failure.DisableColor()
	}

	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// Out is where the console writes to.
func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Title(s string) {
	c.title.Fprintln(c.out, s)
}

func (c *Console) Success(s string) {
	c.success.Fprintln(c.out, s)
}

func (c *Console) Error(s string) {
	c.failure.Fprintln(c.out, s)
}

// Clear clears the screen of a terminal and does nothing otherwise.
func (c *Console) Clear() {
	if c.terminal {
		fmt.Fprint(c.out, "\033[H\033[2J")
	}
}

// ReadLine prints prompt and returns the next line without its line break.
// It returns io.EOF, if the input ended before anything was typed.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err //nolint:wrapcheck // io.EOF is checked by callers
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// ReadOption prints prompt and reads a number, asking again until the user enters one.
func (c *Console) ReadOption(prompt string) (int, error) {
	line, err := c.ReadLine(prompt)

	for {
		if err != nil {
			return 0, err
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil {
			return n, nil
		}

		line, err = c.ReadLine(invalidNumber)
	}
}

// Pause waits for the user to press Enter.
func (c *Console) Pause() error {
	_, err := c.ReadLine("\nPress Enter to continue...")

	return err
}
