package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// View is everything the widget shows at one instant.
type View struct {
	// Time is the clock face time.
	Time string
	// Date is the localized calendar date.
	Date string
	// Alarm is the armed alarm description or the no-alarm text.
	Alarm string
	// Error is the last validation error text, if any.
	Error string
	// Banner is the triggered banner text, if any.
	Banner string
	// Help is the console command summary, shown on request.
	Help string
	// Ringing is true while the tone is active.
	Ringing bool
}

// Renderer draws views.
type Renderer interface {
	Render(v View) error
	Close() error
}

// TerminalRenderer redraws a live pterm area in place.
type TerminalRenderer struct {
	mu   sync.Mutex
	area *pterm.AreaPrinter
}

// NewTerminalRenderer starts a live area on stdout.
func NewTerminalRenderer() (*TerminalRenderer, error) {
	area, err := pterm.DefaultArea.WithRemoveWhenDone(false).Start()
	if err != nil {
		return nil, fmt.Errorf("start terminal area: %w", err)
	}

	return &TerminalRenderer{area: area}, nil
}

// Render replaces the area content with v.
func (r *TerminalRenderer) Render(v View) error {
	face, err := pterm.DefaultBigText.WithLetters(putils.LettersFromString(v.Time)).Srender()
	if err != nil {
		return fmt.Errorf("render clock face: %w", err)
	}

	var b strings.Builder

	b.WriteString(face)
	b.WriteString(pterm.FgGray.Sprint(v.Date))
	b.WriteString("\n\n")
	b.WriteString(pterm.FgLightCyan.Sprint(v.Alarm))
	b.WriteString("\n")

	if v.Banner != "" {
		style := pterm.NewStyle(pterm.BgRed)
		if !v.Ringing {
			style = pterm.NewStyle(pterm.BgDarkGray)
		}

		b.WriteString(pterm.DefaultHeader.
			WithBackgroundStyle(style).
			WithTextStyle(pterm.NewStyle(pterm.FgLightWhite, pterm.Bold)).
			Sprint(v.Banner))
		b.WriteString("\n")
	}

	if v.Error != "" {
		b.WriteString(pterm.Error.Sprint(v.Error))
		b.WriteString("\n")
	}

	if v.Help != "" {
		b.WriteString(pterm.Info.Sprint(v.Help))
		b.WriteString("\n")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.area.Update(b.String())

	return nil
}

// Close stops the live area, leaving the last frame on screen.
func (r *TerminalRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.area.Stop(); err != nil {
		return fmt.Errorf("stop terminal area: %w", err)
	}

	return nil
}

// PlainRenderer writes one line per changed view, for pipes and logs.
type PlainRenderer struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

// NewPlainRenderer writes to out.
func NewPlainRenderer(out io.Writer) *PlainRenderer {
	return &PlainRenderer{out: out}
}

// Render writes v when anything other than the seconds changed.
func (r *PlainRenderer) Render(v View) error {
	minute := v.Time
	if len(minute) > len("15:04") {
		minute = minute[:len("15:04")]
	}

	parts := []string{minute, v.Date, v.Alarm}
	if v.Banner != "" {
		parts = append(parts, v.Banner)
	}

	if v.Error != "" {
		parts = append(parts, v.Error)
	}

	if v.Help != "" {
		parts = append(parts, v.Help)
	}

	line := strings.Join(parts, " | ")

	r.mu.Lock()
	defer r.mu.Unlock()

	if line == r.last {
		return nil
	}

	r.last = line

	if _, err := fmt.Fprintln(r.out, line); err != nil {
		return fmt.Errorf("write view: %w", err)
	}

	return nil
}

// Close does nothing; out is owned by the caller.
func (r *PlainRenderer) Close() error { return nil }
