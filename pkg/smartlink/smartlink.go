// Package smartlink bundles the interaction helpers a page or command uses:
// clipboard copy with toast feedback, field validation, loading state and
// number formatting.
package smartlink

import (
	"context"
	"os"

	"smartlink/pkg/analytics"
	"smartlink/pkg/clipboard"
	"smartlink/pkg/clock"
	"smartlink/pkg/config"
	"smartlink/pkg/format"
	"smartlink/pkg/notify"
	"smartlink/pkg/scroll"
	"smartlink/pkg/surface"
	"smartlink/pkg/validate"
)

// Kit owns one surface, one notification center and one clipboard writer.
// It holds no other state.
type Kit struct {
	clock  clock.Clock
	tree   *surface.Tree
	center *notify.Center
	writer *clipboard.Writer
}

type Options struct {
	Clock    clock.Clock
	Native   clipboard.Backend
	Fallback clipboard.CopyCommand
	Timing   notify.Timing
}

// New assembles a Kit. A nil Native forces the fallback path; a zero Timing
// uses the default toast timeline.
func New(opts Options) *Kit {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Timing == (notify.Timing{}) {
		opts.Timing = notify.DefaultTiming()
	}

	tree := surface.NewTree()
	center := notify.NewCenter(tree, notify.WithClock(opts.Clock), notify.WithTiming(opts.Timing))
	writer := clipboard.NewWriter(opts.Native, clipboard.NewFallback(tree, opts.Fallback), center)

	return &Kit{clock: opts.Clock, tree: tree, center: center, writer: writer}
}

// FromConfig builds a Kit using the real clock and the configured clipboard
// backends. OSC 52 sequences are written to term.
func FromConfig(cfg *config.Config, term *os.File) *Kit {
	opts := Options{
		Clock: clock.Real(),
		Timing: notify.Timing{
			ShowDelay:       cfg.Notifications.ShowDelay,
			DisplayDuration: cfg.Notifications.DisplayDuration,
			ExitDuration:    cfg.Notifications.ExitDuration,
		},
		Fallback: FallbackCommand(cfg.Clipboard.Command, term),
	}
	if cfg.Clipboard.Backend != config.BackendLegacy {
		opts.Native = clipboard.SystemBackend{}
	}
	return New(opts)
}

// FallbackCommand returns the copy command named by the config value.
func FallbackCommand(name string, term *os.File) clipboard.CopyCommand {
	switch name {
	case config.CommandOSC52:
		return clipboard.NewOSC52Command(term)
	case config.CommandExec:
		return clipboard.NewExecCommand()
	default:
		return clipboard.ChainCommand{
			clipboard.NewExecCommand(),
			clipboard.NewOSC52Command(term),
		}
	}
}

func (k *Kit) Tree() *surface.Tree { return k.tree }

func (k *Kit) Center() *notify.Center { return k.center }

// CopyToClipboard copies text and reports the outcome as a toast.
func (k *Kit) CopyToClipboard(ctx context.Context, text string) bool {
	return k.writer.Write(ctx, text)
}

// CopyHTML copies the Markdown form of an HTML snippet.
func (k *Kit) CopyHTML(ctx context.Context, html string) bool {
	return k.writer.WriteHTML(ctx, html)
}

// Notify shows a toast. Unknown severities render as info.
func (k *Kit) Notify(message string, severity string) {
	k.center.Notify(message, notify.ParseSeverity(severity))
}

func (k *Kit) ValidateField(field *validate.Field) bool {
	return validate.ValidateField(field)
}

func (k *Kit) ShowLoading(el *surface.Element) { surface.ShowLoading(el) }

func (k *Kit) HideLoading(el *surface.Element) { surface.HideLoading(el) }

func (k *Kit) FormatNumber(n int64) string { return format.FormatNumber(n) }

func (k *Kit) FormatPercentage(value, total float64) string {
	return format.FormatPercentage(value, total)
}

func (k *Kit) IsValidURL(candidate string) bool { return format.IsValidURL(candidate) }

// NewForm groups fields on the kit's surface for submit-time validation.
func (k *Kit) NewForm(fields ...*validate.Field) *validate.Form {
	return validate.NewForm(k.tree, fields...)
}

// Refresher drives a refresh button and reports completion through the
// kit's toasts.
func (k *Kit) Refresher(button *surface.Element, opts ...analytics.Option) *analytics.Refresher {
	opts = append([]analytics.Option{analytics.WithClock(k.clock)}, opts...)
	return analytics.NewRefresher(button, k.center, opts...)
}

// Animator reveals animate-on-scroll elements of the kit's surface.
func (k *Kit) Animator(layout scroll.LayoutFunc) *scroll.Animator {
	return scroll.NewAnimator(k.tree, layout, k.clock, scroll.DefaultDebounce)
}

func (k *Kit) IsInViewport(r scroll.Rect, vp scroll.Viewport) bool {
	return scroll.InViewport(r, vp)
}

// ScrollTarget returns the offset to scroll to so r sits offset below the
// top of the viewport.
func (k *Kit) ScrollTarget(r scroll.Rect, pageY, offset float64) float64 {
	return scroll.ScrollTarget(r, pageY, offset)
}

// Wait blocks until every toast has left the surface.
func (k *Kit) Wait(ctx context.Context) error {
	return k.center.Wait(ctx)
}
