package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/tingnect/event-api/internal/form"
)

type sentMail struct {
	to      string
	subject string
	html    string
}

type fakeMailer struct {
	enabled bool
	failTo  map[string]error
	sends   []sentMail
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) Send(ctx context.Context, to, subject, html string) error {
	f.sends = append(f.sends, sentMail{to: to, subject: subject, html: html})
	return f.failTo[to]
}

type fakeRecorder struct {
	enabled bool
	err     error
	rows    []form.SheetRow
}

func (f *fakeRecorder) Enabled() bool { return f.enabled }

func (f *fakeRecorder) Append(ctx context.Context, row form.SheetRow) error {
	f.rows = append(f.rows, row)
	return f.err
}

type fakeNotifier struct {
	enabled bool
	err     error
	texts   []string
}

func (f *fakeNotifier) Enabled() bool { return f.enabled }

func (f *fakeNotifier) Notify(ctx context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validContact() *form.Contact {
	return &form.Contact{
		Name: "Alice", Email: "a@x.com", Subject: "Hi",
		Message: "Hello\nWorld", InquiryType: "General Inquiry",
	}
}

func newTestPipeline() (*Pipeline, *fakeMailer, *fakeRecorder, *fakeNotifier) {
	m := &fakeMailer{enabled: true, failTo: map[string]error{}}
	r := &fakeRecorder{enabled: true}
	n := &fakeNotifier{enabled: true}
	p := New(m, r, n, "contact@tingnect.com", testLogger())
	return p, m, r, n
}

func outcomeFor(t *testing.T, res Result, stage string) Outcome {
	t.Helper()
	for _, o := range res.Outcomes {
		if o.Stage == stage {
			return o
		}
	}
	t.Fatalf("no outcome for stage %q", stage)
	return Outcome{}
}

func TestRejectedSubmissionHasNoSideEffects(t *testing.T) {
	p, m, r, n := newTestPipeline()

	res := p.Process(context.Background(), &form.Contact{Name: "Alice"})

	if res.Accepted {
		t.Fatal("expected rejection")
	}
	if res.Err() == nil || !errors.Is(res.Err(), ErrMissingFields) {
		t.Errorf("Err() = %v, want ErrMissingFields", res.Err())
	}
	if len(m.sends) != 0 || len(r.rows) != 0 || len(n.texts) != 0 {
		t.Errorf("rejected submission must trigger no external calls: mail=%d sheet=%d chat=%d",
			len(m.sends), len(r.rows), len(n.texts))
	}
	if len(res.Outcomes) != 0 {
		t.Errorf("rejected submission should carry no stage outcomes, got %v", res.Outcomes)
	}
}

func TestAcceptedSubmissionRunsAllStages(t *testing.T) {
	p, m, r, n := newTestPipeline()
	at := time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)
	p.WithClock(func() time.Time { return at })

	res := p.Process(context.Background(), validContact())

	if !res.Accepted {
		t.Fatal("expected acceptance")
	}
	if res.Message != "Contact form submitted successfully" {
		t.Errorf("Message = %q", res.Message)
	}
	if len(m.sends) != 2 {
		t.Fatalf("expected admin + auto-reply sends, got %d", len(m.sends))
	}
	if m.sends[0].to != "contact@tingnect.com" {
		t.Errorf("first send should go to the admin, got %q", m.sends[0].to)
	}
	if m.sends[1].to != "a@x.com" {
		t.Errorf("auto-reply should go to the submitter, got %q", m.sends[1].to)
	}
	if len(r.rows) != 1 {
		t.Fatalf("expected one sheet row, got %d", len(r.rows))
	}
	if r.rows[0].Values[0] != "2025-08-16T14:00:00Z" {
		t.Errorf("timestamp column = %q", r.rows[0].Values[0])
	}
	if len(n.texts) != 1 {
		t.Fatalf("expected one chat alert, got %d", len(n.texts))
	}
	for _, stage := range []string{"email_admin", "email_reply", "sheet", "chat"} {
		if o := outcomeFor(t, res, stage); o.Status != StatusOK {
			t.Errorf("stage %s: status = %s, want ok", stage, o.Status)
		}
	}
}

func TestStageFailuresAreIndependent(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		setup  func(m *fakeMailer, r *fakeRecorder, n *fakeNotifier)
		failed []string
	}{
		{
			name:   "mail relay down",
			setup:  func(m *fakeMailer, _ *fakeRecorder, _ *fakeNotifier) { m.failTo["contact@tingnect.com"] = boom; m.failTo["a@x.com"] = boom },
			failed: []string{"email_admin", "email_reply"},
		},
		{
			name:   "sheet quota exceeded",
			setup:  func(_ *fakeMailer, r *fakeRecorder, _ *fakeNotifier) { r.err = boom },
			failed: []string{"sheet"},
		},
		{
			name:   "chat webhook rejects",
			setup:  func(_ *fakeMailer, _ *fakeRecorder, n *fakeNotifier) { n.err = boom },
			failed: []string{"chat"},
		},
		{
			name: "everything down",
			setup: func(m *fakeMailer, r *fakeRecorder, n *fakeNotifier) {
				m.failTo["contact@tingnect.com"] = boom
				m.failTo["a@x.com"] = boom
				r.err = boom
				n.err = boom
			},
			failed: []string{"email_admin", "email_reply", "sheet", "chat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m, r, n := newTestPipeline()
			tt.setup(m, r, n)

			res := p.Process(context.Background(), validContact())

			if !res.Accepted {
				t.Fatal("stage failures must not reject the submission")
			}
			// Every stage is still attempted
			if len(m.sends) != 2 || len(r.rows) != 1 || len(n.texts) != 1 {
				t.Errorf("all stages must be attempted: mail=%d sheet=%d chat=%d",
					len(m.sends), len(r.rows), len(n.texts))
			}
			failed := map[string]bool{}
			for _, s := range tt.failed {
				failed[s] = true
			}
			for _, o := range res.Outcomes {
				want := StatusOK
				if failed[o.Stage] {
					want = StatusFailed
				}
				if o.Status != want {
					t.Errorf("stage %s: status = %s, want %s", o.Stage, o.Status, want)
				}
			}
		})
	}
}

func TestAdminFailureDoesNotSkipAutoReply(t *testing.T) {
	p, m, _, _ := newTestPipeline()
	m.failTo["contact@tingnect.com"] = errors.New("mailbox full")

	res := p.Process(context.Background(), validContact())

	if len(m.sends) != 2 {
		t.Fatalf("auto-reply must be attempted after a failed admin send, got %d sends", len(m.sends))
	}
	if o := outcomeFor(t, res, "email_admin"); o.Status != StatusFailed {
		t.Errorf("email_admin status = %s, want failed", o.Status)
	}
	if o := outcomeFor(t, res, "email_reply"); o.Status != StatusOK {
		t.Errorf("email_reply status = %s, want ok", o.Status)
	}
}

func TestDisabledStagesAreSkipped(t *testing.T) {
	p, m, r, n := newTestPipeline()
	m.enabled = false
	n.enabled = false

	res := p.Process(context.Background(), validContact())

	if !res.Accepted {
		t.Fatal("skipped stages must not affect acceptance")
	}
	if len(m.sends) != 0 {
		t.Errorf("disabled mailer must not be called, got %d sends", len(m.sends))
	}
	if len(n.texts) != 0 {
		t.Errorf("disabled notifier must not be called, got %d calls", len(n.texts))
	}
	if len(r.rows) != 1 {
		t.Errorf("enabled recorder must still run, got %d rows", len(r.rows))
	}
	for _, stage := range []string{"email_admin", "email_reply", "chat"} {
		if o := outcomeFor(t, res, stage); o.Status != StatusSkipped {
			t.Errorf("stage %s: status = %s, want skipped", stage, o.Status)
		}
	}
}

func TestNoDeduplication(t *testing.T) {
	p, m, r, n := newTestPipeline()

	sub := validContact()
	p.Process(context.Background(), sub)
	p.Process(context.Background(), sub)

	if len(r.rows) != 2 {
		t.Errorf("two identical submissions must append two rows, got %d", len(r.rows))
	}
	if len(m.sends) != 4 {
		t.Errorf("two submissions must send four emails, got %d", len(m.sends))
	}
	if len(n.texts) != 2 {
		t.Errorf("two submissions must post two alerts, got %d", len(n.texts))
	}
}
