package widget

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/evaluator"
	"github.com/oshokin/alarm-clock/internal/ui"
)

// Widget ties the alarm evaluator to what is drawn on screen.
// Every change redraws the view, so console and remote commands show up at once.
type Widget struct {
	// evaluator owns the alarm state.
	evaluator *evaluator.Evaluator
	// formatter turns state into localized strings.
	formatter *ui.Formatter
	// renderer draws the view.
	renderer ui.Renderer
	// clock supplies the instant for redraws outside of ticks.
	clock clockwork.Clock

	// mu serializes redraws and guards the message fields.
	mu sync.Mutex
	// errorText is the last validation error shown under the alarm line.
	errorText string
	// helpText is the command summary, shown until the next command.
	helpText string
}

// newWidget creates a widget drawing with renderer.
func newWidget(
	eval *evaluator.Evaluator,
	formatter *ui.Formatter,
	renderer ui.Renderer,
	clock clockwork.Clock,
) *Widget {
	return &Widget{
		evaluator: eval,
		formatter: formatter,
		renderer:  renderer,
		clock:     clock,
	}
}

// SetAlarm arms the alarm. Invalid input is shown as an error and keeps the armed alarm.
func (w *Widget) SetAlarm(ctx context.Context, actor *domain.Actor, input string) (time.Time, error) {
	next, err := w.evaluator.SetAlarm(ctx, actor, input)
	if err != nil {
		w.setMessages(w.formatter.InvalidTime(input), "")
	} else {
		w.setMessages("", "")
	}

	w.Redraw(ctx, w.clock.Now())

	return next, err
}

// ClearAlarm disarms the alarm and silences it.
func (w *Widget) ClearAlarm(ctx context.Context, actor *domain.Actor) {
	w.evaluator.ClearAlarm(ctx, actor)
	w.setMessages("", "")
	w.Redraw(ctx, w.clock.Now())
}

// StopSound silences a ringing alarm.
func (w *Widget) StopSound(ctx context.Context, actor *domain.Actor) {
	w.evaluator.StopSound(ctx, actor)
	w.setMessages("", "")
	w.Redraw(ctx, w.clock.Now())
}

// State returns a copy of the alarm state.
func (w *Widget) State() *domain.State {
	return w.evaluator.State()
}

// ShowHelp displays the console command summary.
func (w *Widget) ShowHelp(ctx context.Context) {
	w.setMessages("", w.formatter.Help())
	w.Redraw(ctx, w.clock.Now())
}

// Tick evaluates the alarm at now and redraws the clock face.
func (w *Widget) Tick(ctx context.Context, now time.Time) {
	w.evaluator.Tick(ctx, now)
	w.Redraw(ctx, now)
}

// Redraw renders the current state at now. Render failures are logged and otherwise ignored.
func (w *Widget) Redraw(ctx context.Context, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := w.formatter.View(w.evaluator.State(), now, w.errorText)
	view.Help = w.helpText

	if err := w.renderer.Render(view); err != nil {
		logger.DebugKV(ctx, "Failed to render view", "error", err)
	}
}

func (w *Widget) setMessages(errorText, helpText string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.errorText = errorText
	w.helpText = helpText
}
