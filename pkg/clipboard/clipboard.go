// Package clipboard copies text to the system clipboard and reports the
// result through a notifier. The native clipboard is tried first; when it
// is unavailable or refuses the write, the text is staged in an off-screen
// buffer on the surface and handed to a synchronous copy command instead.
package clipboard

import (
	"context"
	"errors"

	"smartlink/pkg/logger"
	"smartlink/pkg/notify"

	atotto "github.com/atotto/clipboard"
)

const (
	MsgCopied      = "Link copied to clipboard!"
	MsgCopyFailed  = "Copy failed. Please copy manually."
	MsgUnsupported = "Copy not supported. Please copy manually."
)

// ErrUnavailable is returned by a Backend that cannot be used on this host.
var ErrUnavailable = errors.New("clipboard: backend unavailable")

// Backend is an asynchronous clipboard primitive that may refuse a write.
type Backend interface {
	Name() string
	Available() bool
	WriteText(ctx context.Context, text string) error
}

// SystemBackend writes through the operating system clipboard.
type SystemBackend struct{}

func (SystemBackend) Name() string { return "native" }

func (SystemBackend) Available() bool {
	return !atotto.Unsupported
}

func (s SystemBackend) WriteText(ctx context.Context, text string) error {
	if !s.Available() {
		return ErrUnavailable
	}

	done := make(chan error, 1)
	go func() {
		done <- atotto.WriteAll(text)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Writer is the copy entry point. It never returns an error: every outcome
// is reported as exactly one notification.
type Writer struct {
	native   Backend
	fallback *Fallback
	notifier notify.Notifier
}

// NewWriter selects the native backend only if it reports itself available.
// native may be nil to force the fallback path.
func NewWriter(native Backend, fallback *Fallback, notifier notify.Notifier) *Writer {
	if native != nil && !native.Available() {
		logger.Component("clipboard").Debug().Str("backend", native.Name()).Msg("native clipboard unavailable, using fallback only")
		native = nil
	}
	return &Writer{
		native:   native,
		fallback: fallback,
		notifier: notifier,
	}
}

// Native reports the selected native backend, or nil.
func (w *Writer) Native() Backend {
	return w.native
}

// Write copies text and reports whether it reached the clipboard.
func (w *Writer) Write(ctx context.Context, text string) bool {
	log := logger.Component("clipboard")

	if w.native != nil {
		err := w.native.WriteText(ctx, text)
		if err == nil {
			log.Debug().Str("backend", w.native.Name()).Int("bytes", len(text)).Msg("copied")
			w.notifier.Notify(MsgCopied, notify.SeveritySuccess)
			return true
		}
		log.Debug().Err(err).Str("backend", w.native.Name()).Msg("native write refused, falling back")
	}

	outcome := w.fallback.Copy(text)
	log.Debug().Str("outcome", outcome.String()).Msg("fallback copy finished")
	w.notifier.Notify(outcome.Message(), outcome.Severity())
	return outcome == Copied
}

// WriteHTML copies the Markdown rendering of an HTML snippet, so an anchor
// pastes as [text](href).
func (w *Writer) WriteHTML(ctx context.Context, html string) bool {
	return w.Write(ctx, MarkdownFromHTML(html))
}
