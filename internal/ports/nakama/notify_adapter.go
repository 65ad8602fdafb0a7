package nakama

import (
	"context"

	"github.com/heroiclabs/nakama-common/runtime"

	"traindepot/internal/ports"
)

const notificationCodeTurn = 1

// NotifyAdapter implements ports.Notifier on Nakama notifications.
// Deliveries are best-effort; failures are logged and swallowed.
type NotifyAdapter struct {
	nk     runtime.NakamaModule
	logger runtime.Logger
}

var _ ports.Notifier = (*NotifyAdapter)(nil)

// NewNotifyAdapter wraps the Nakama module as a Notifier.
func NewNotifyAdapter(nk runtime.NakamaModule, logger runtime.Logger) *NotifyAdapter {
	return &NotifyAdapter{nk: nk, logger: logger}
}

func (a *NotifyAdapter) Notify(ctx context.Context, userID, title, body string) {
	content := map[string]interface{}{"body": body}
	if err := a.nk.NotificationSend(ctx, userID, title, content, notificationCodeTurn, "", false); err != nil {
		a.logger.Warn("Notify: send to %s failed: %v", userID, err)
	}
}
