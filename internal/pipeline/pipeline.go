// Package pipeline runs one form submission through the ordered notification
// stages: validate, email (admin alert + auto-reply), spreadsheet append,
// Telegram alert.
//
// Validation gates everything: a submission with missing required fields is
// rejected with no side effects. The remaining stages are best-effort and
// failure-independent. Each stage produces a tagged Outcome; the orchestrator
// collects all of them for structured logging, but the caller-visible result
// depends only on validation.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tingnect/event-api/internal/form"
)

// ErrMissingFields is returned for submissions that fail presence validation.
var ErrMissingFields = errors.New("missing required fields")

// Mailer sends one email. Implementations report Enabled() false when no
// relay is configured, which turns the email stages into skips.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Recorder appends one row to the durable spreadsheet log.
type Recorder interface {
	Enabled() bool
	Append(ctx context.Context, row form.SheetRow) error
}

// Notifier pushes one chat alert.
type Notifier interface {
	Enabled() bool
	Notify(ctx context.Context, text string) error
}

// Status tags a stage outcome.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome is the result of one best-effort stage.
type Outcome struct {
	Stage  string
	Status Status
	Err    error
}

// Result is what the HTTP handler sees. Accepted reflects validation only;
// Outcomes carry the per-stage delivery results for logging and tests.
type Result struct {
	Accepted bool
	Missing  []string
	Message  string
	Outcomes []Outcome
}

// Err returns ErrMissingFields for rejected submissions, nil otherwise.
func (r Result) Err() error {
	if r.Accepted {
		return nil
	}
	return ErrMissingFields
}

// Pipeline fans one accepted submission out to the three notification sinks.
type Pipeline struct {
	mailer     Mailer
	recorder   Recorder
	notifier   Notifier
	adminEmail string
	logger     *slog.Logger
	now        func() time.Time
}

func New(mailer Mailer, recorder Recorder, notifier Notifier, adminEmail string, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		mailer:     mailer,
		recorder:   recorder,
		notifier:   notifier,
		adminEmail: adminEmail,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the submission timestamp source. Used by tests.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Process validates sub and, if it is well formed, attempts every
// notification stage in order. Stage failures are recorded and logged but
// never propagate: the submission is accepted as soon as validation passes.
func (p *Pipeline) Process(ctx context.Context, sub form.Submission) Result {
	if missing := sub.Missing(); len(missing) > 0 {
		p.logger.Warn("submission rejected",
			slog.String("form", sub.Kind()),
			slog.Any("missing", missing),
		)
		return Result{Missing: missing}
	}

	submittedAt := p.now()

	outcomes := []Outcome{
		p.run(ctx, "email_admin", p.mailer.Enabled(), func(ctx context.Context) error {
			notice := sub.AdminNotice()
			return p.mailer.Send(ctx, p.adminEmail, notice.Subject, notice.HTML)
		}),
		// The auto-reply is attempted regardless of the admin send's outcome.
		p.run(ctx, "email_reply", p.mailer.Enabled(), func(ctx context.Context) error {
			reply := sub.AutoReply()
			return p.mailer.Send(ctx, reply.To, reply.Subject, reply.HTML)
		}),
		p.run(ctx, "sheet", p.recorder.Enabled(), func(ctx context.Context) error {
			return p.recorder.Append(ctx, sub.Row(submittedAt))
		}),
		p.run(ctx, "chat", p.notifier.Enabled(), func(ctx context.Context) error {
			return p.notifier.Notify(ctx, sub.ChatText())
		}),
	}

	p.logOutcomes(sub.Kind(), outcomes)

	return Result{
		Accepted: true,
		Message:  sub.SuccessMessage(),
		Outcomes: outcomes,
	}
}

func (p *Pipeline) run(ctx context.Context, stage string, enabled bool, fn func(context.Context) error) Outcome {
	if !enabled {
		return Outcome{Stage: stage, Status: StatusSkipped}
	}
	if err := fn(ctx); err != nil {
		return Outcome{Stage: stage, Status: StatusFailed, Err: err}
	}
	return Outcome{Stage: stage, Status: StatusOK}
}

func (p *Pipeline) logOutcomes(kind string, outcomes []Outcome) {
	for _, o := range outcomes {
		switch o.Status {
		case StatusFailed:
			p.logger.Error("notification stage failed",
				slog.String("form", kind),
				slog.String("stage", o.Stage),
				slog.String("error", o.Err.Error()),
			)
		case StatusSkipped:
			p.logger.Debug("notification stage skipped",
				slog.String("form", kind),
				slog.String("stage", o.Stage),
			)
		default:
			p.logger.Info("notification stage completed",
				slog.String("form", kind),
				slog.String("stage", o.Stage),
			)
		}
	}
}
