package notify

import (
	"sync"

	"smartlink/pkg/logger"
	"smartlink/pkg/surface"

	"github.com/gen2brain/beeep"
)

// AppName titles desktop notifications.
const AppName = "SmartLink"

// SendFunc delivers one desktop notification.
type SendFunc func(title, message string) error

// DesktopRenderer forwards each toast to the desktop notification service
// when it slides in.
type DesktopRenderer struct {
	mu   sync.Mutex
	send SendFunc
	sent map[*surface.Element]bool
}

// NewDesktopRenderer starts watching tree. A nil send uses the system
// notification service.
func NewDesktopRenderer(tree *surface.Tree, send SendFunc) *DesktopRenderer {
	if send == nil {
		send = beeepSend
	}
	r := &DesktopRenderer{
		send: send,
		sent: make(map[*surface.Element]bool),
	}
	tree.Watch(r.handle)
	return r
}

func beeepSend(title, message string) error {
	return beeep.Notify(title, message, "")
}

func (r *DesktopRenderer) handle(ev surface.Event) {
	el := ev.Element
	if !el.HasClass(ClassToast) {
		return
	}

	r.mu.Lock()
	switch ev.Kind {
	case surface.Detached:
		delete(r.sent, el)
		r.mu.Unlock()
		return
	case surface.Changed:
		if el.Style("opacity") != "1" || r.sent[el] {
			r.mu.Unlock()
			return
		}
		r.sent[el] = true
	default:
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	sev := toastSeverity(el)
	if err := r.send(AppName+": "+string(sev), el.Text()); err != nil {
		logger.Warn().Err(err).Str("severity", string(sev)).Msg("desktop notification failed")
	}
}
