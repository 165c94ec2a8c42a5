package clipboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"smartlink/pkg/notify"
	"smartlink/pkg/surface"
)

type recordedNotice struct {
	message  string
	severity notify.Severity
}

type recordingNotifier struct {
	notices []recordedNotice
}

func (r *recordingNotifier) Notify(message string, severity notify.Severity) {
	r.notices = append(r.notices, recordedNotice{message, severity})
}

type fakeBackend struct {
	available bool
	err       error
	written   []string
}

func (f *fakeBackend) Name() string { return "fake" }
func (f *fakeBackend) Available() bool { return f.available }

func (f *fakeBackend) WriteText(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, text)
	return nil
}

// fakeCommand records whether the staged buffer was attached while it ran.
type fakeCommand struct {
	tree            *surface.Tree
	ok              bool
	err             error
	sawStagedBuffer bool
	selection       string
}

func (f *fakeCommand) CopySelection(selection string) (bool, error) {
	f.selection = selection
	for _, el := range f.tree.Elements() {
		if el.Kind() == "textarea" && el.Focused() && el.Selected() && el.Style("top") == "-1000px" {
			f.sawStagedBuffer = true
		}
	}
	return f.ok, f.err
}

func TestWriter_NativeSuccessSkipsFallback(t *testing.T) {
	tree := surface.NewTree()
	events := 0
	tree.Watch(func(surface.Event) { events++ })

	native := &fakeBackend{available: true}
	cmd := &fakeCommand{tree: tree, ok: true}
	rec := &recordingNotifier{}
	w := NewWriter(native, NewFallback(tree, cmd), rec)

	if !w.Write(context.Background(), "https://sl.ink/abc") {
		t.Fatal("Write() = false, want true")
	}

	if events != 0 {
		t.Errorf("surface saw %d events, want none on the native path", events)
	}
	if cmd.selection != "" {
		t.Error("fallback command ran although native succeeded")
	}
	if len(native.written) != 1 || native.written[0] != "https://sl.ink/abc" {
		t.Errorf("native written = %v", native.written)
	}
	assertSingleNotice(t, rec, MsgCopied, notify.SeveritySuccess)
}

func TestWriter_FallbackOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		native     *fakeBackend
		cmdOK      bool
		cmdErr     error
		wantCopied bool
		wantMsg    string
		wantSev    notify.Severity
	}{
		{
			name:       "native unavailable, command succeeds",
			native:     &fakeBackend{available: false},
			cmdOK:      true,
			wantCopied: true,
			wantMsg:    MsgCopied,
			wantSev:    notify.SeveritySuccess,
		},
		{
			name:       "native refused, command succeeds",
			native:     &fakeBackend{available: true, err: errors.New("permission denied")},
			cmdOK:      true,
			wantCopied: true,
			wantMsg:    MsgCopied,
			wantSev:    notify.SeveritySuccess,
		},
		{
			name:    "no native, command reports failure",
			cmdOK:   false,
			wantMsg: MsgCopyFailed,
			wantSev: notify.SeverityError,
		},
		{
			name:    "native refused, command unsupported",
			native:  &fakeBackend{available: true, err: errors.New("denied")},
			cmdErr:  ErrCommandUnsupported,
			wantMsg: MsgUnsupported,
			wantSev: notify.SeverityError,
		},
		{
			name:    "command raises arbitrary error",
			cmdErr:  errors.New("boom"),
			wantMsg: MsgUnsupported,
			wantSev: notify.SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := surface.NewTree()
			cmd := &fakeCommand{tree: tree, ok: tt.cmdOK, err: tt.cmdErr}
			rec := &recordingNotifier{}

			var native Backend
			if tt.native != nil {
				native = tt.native
			}
			w := NewWriter(native, NewFallback(tree, cmd), rec)

			got := w.Write(context.Background(), "payload")
			if got != tt.wantCopied {
				t.Errorf("Write() = %v, want %v", got, tt.wantCopied)
			}
			if !cmd.sawStagedBuffer {
				t.Error("staged buffer was not attached, focused and selected during the copy command")
			}
			if cmd.selection != "payload" {
				t.Errorf("command selection = %q, want %q", cmd.selection, "payload")
			}
			if tree.Len() != 0 {
				t.Errorf("tree has %d elements after Write, want 0", tree.Len())
			}
			assertSingleNotice(t, rec, tt.wantMsg, tt.wantSev)
		})
	}
}

func TestWriter_UnavailableNativeIsDropped(t *testing.T) {
	w := NewWriter(&fakeBackend{available: false}, NewFallback(surface.NewTree(), nil), &recordingNotifier{})
	if w.Native() != nil {
		t.Error("unavailable native backend should not be selected")
	}
}

func TestWriter_ExactlyOneNoticePerCall(t *testing.T) {
	inputs := []string{"", "a", "https://example.com/very/long?q=1", strings.Repeat("x", 4096), "ünïcødé"}

	for _, in := range inputs {
		tree := surface.NewTree()
		rec := &recordingNotifier{}
		w := NewWriter(nil, NewFallback(tree, &fakeCommand{tree: tree, ok: true}), rec)
		w.Write(context.Background(), in)

		if len(rec.notices) != 1 {
			t.Fatalf("input %q produced %d notices, want 1", in, len(rec.notices))
		}
		sev := rec.notices[0].severity
		if sev != notify.SeveritySuccess && sev != notify.SeverityError {
			t.Errorf("severity = %q, want success or error", sev)
		}
	}
}

func TestWriter_CancelledContextFallsBack(t *testing.T) {
	tree := surface.NewTree()
	cmd := &fakeCommand{tree: tree, ok: true}
	rec := &recordingNotifier{}
	blocking := &blockingBackend{}
	w := NewWriter(blocking, NewFallback(tree, cmd), rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if !w.Write(ctx, "x") {
		t.Fatal("fallback should have copied")
	}
	if !cmd.sawStagedBuffer {
		t.Error("fallback did not run after the native write was cancelled")
	}
}

type blockingBackend struct{}

func (blockingBackend) Name() string { return "blocking" }
func (blockingBackend) Available() bool { return true }
func (blockingBackend) WriteText(ctx context.Context, text string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestWriter_WriteHTML(t *testing.T) {
	native := &fakeBackend{available: true}
	rec := &recordingNotifier{}
	w := NewWriter(native, NewFallback(surface.NewTree(), nil), rec)

	w.WriteHTML(context.Background(), `<a href="https://example.com/x">Example</a>`)

	if len(native.written) != 1 {
		t.Fatalf("written = %v", native.written)
	}
	if got := native.written[0]; got != "[Example](https://example.com/x)" {
		t.Errorf("copied %q, want markdown link", got)
	}
}

func TestOSC52Command(t *testing.T) {
	t.Run("not a terminal", func(t *testing.T) {
		cmd := &OSC52Command{Out: &bytes.Buffer{}, IsTerminal: func() bool { return false }}
		ok, err := cmd.CopySelection("x")
		if ok || !errors.Is(err, ErrCommandUnsupported) {
			t.Errorf("CopySelection() = %v, %v; want false, ErrCommandUnsupported", ok, err)
		}
	})

	t.Run("terminal", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := &OSC52Command{
			Out:        &buf,
			IsTerminal: func() bool { return true },
			Getenv:     func(string) string { return "" },
		}
		ok, err := cmd.CopySelection("hello")
		if !ok || err != nil {
			t.Fatalf("CopySelection() = %v, %v", ok, err)
		}
		// base64("hello") = aGVsbG8=
		if !strings.Contains(buf.String(), "\x1b]52;c;aGVsbG8=") {
			t.Errorf("sequence = %q", buf.String())
		}
	})

	t.Run("write failure", func(t *testing.T) {
		cmd := &OSC52Command{
			Out:        failingWriter{},
			IsTerminal: func() bool { return true },
			Getenv:     func(string) string { return "" },
		}
		ok, err := cmd.CopySelection("hello")
		if ok || err != nil {
			t.Errorf("CopySelection() = %v, %v; want false, nil", ok, err)
		}
	})
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("closed") }

func TestExecCommand(t *testing.T) {
	notFound := errors.New("not found")

	tests := []struct {
		name    string
		found   map[string]bool
		runErr  error
		wantOK  bool
		wantErr error
		wantRan string
	}{
		{name: "no tool", found: map[string]bool{}, wantErr: ErrCommandUnsupported},
		{name: "second tool used", found: map[string]bool{"xsel": true}, wantOK: true, wantRan: "xsel"},
		{name: "tool fails", found: map[string]bool{"xclip": true}, runErr: errors.New("exit 1"), wantRan: "xclip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ran, stdin string
			cmd := &ExecCommand{
				Candidates: [][]string{{"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}},
				LookPath: func(name string) (string, error) {
					if tt.found[name] {
						return name, nil
					}
					return "", notFound
				},
				Run: func(name string, args []string, in string) error {
					ran, stdin = name, in
					return tt.runErr
				},
			}

			ok, err := cmd.CopySelection("link")
			if ok != tt.wantOK || !errors.Is(err, tt.wantErr) {
				t.Errorf("CopySelection() = %v, %v; want %v, %v", ok, err, tt.wantOK, tt.wantErr)
			}
			if ran != tt.wantRan {
				t.Errorf("ran %q, want %q", ran, tt.wantRan)
			}
			if tt.wantRan != "" && stdin != "link" {
				t.Errorf("stdin = %q, want %q", stdin, "link")
			}
		})
	}
}

func TestChainCommand_SkipsUnsupported(t *testing.T) {
	tree := surface.NewTree()
	unsupported := &fakeCommand{tree: tree, err: ErrCommandUnsupported}
	failing := &fakeCommand{tree: tree, ok: false}
	never := &fakeCommand{tree: tree, ok: true}

	ok, err := ChainCommand{unsupported, failing, never}.CopySelection("x")
	if ok || err != nil {
		t.Errorf("CopySelection() = %v, %v; want false, nil from the first supported command", ok, err)
	}
	if never.selection != "" {
		t.Error("chain continued past a supported command")
	}

	_, err = ChainCommand{unsupported}.CopySelection("x")
	if !errors.Is(err, ErrCommandUnsupported) {
		t.Errorf("all unsupported: err = %v", err)
	}
}

func TestMarkdownFromHTML(t *testing.T) {
	if got := MarkdownFromHTML("  "); got != "" {
		t.Errorf("blank input = %q", got)
	}
	if got := MarkdownFromHTML("<strong>bold</strong> text"); got != "**bold** text" {
		t.Errorf("got %q", got)
	}
}

func assertSingleNotice(t *testing.T, rec *recordingNotifier, msg string, sev notify.Severity) {
	t.Helper()
	if len(rec.notices) != 1 {
		t.Fatalf("got %d notices, want exactly 1: %v", len(rec.notices), rec.notices)
	}
	if rec.notices[0].message != msg || rec.notices[0].severity != sev {
		t.Errorf("notice = %+v, want {%q %q}", rec.notices[0], msg, sev)
	}
}
