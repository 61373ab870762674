package notifysvc

import (
	"log"
	"sync"

	"github.com/darasahq/darasa/core"
)

// ConsoleService prints notifications and keeps the recent ones so the
// web layer can replay them as toasts.
type ConsoleService struct {
	std *log.Logger

	mu     sync.Mutex
	recent []core.Notification
}

var _ core.Notifier = (*ConsoleService)(nil)

const keepRecent = 20

func NewConsoleService(std *log.Logger) *ConsoleService {
	return &ConsoleService{std: std}
}

func (svc *ConsoleService) Notify(n core.Notification) {
	svc.std.Printf("%s: %s", n.Title, n.Detail)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.recent = append(svc.recent, n)
	if len(svc.recent) > keepRecent {
		svc.recent = svc.recent[len(svc.recent)-keepRecent:]
	}
}

// Recent returns the notifications issued so far, oldest first.
func (svc *ConsoleService) Recent() []core.Notification {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	res := make([]core.Notification, len(svc.recent))
	copy(res, svc.recent)
	return res
}
