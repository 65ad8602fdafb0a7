package ports

import "context"

// Notifier delivers fire-and-forget messages to players outside the match
// session (push notifications). Failures are logged by implementations, never
// surfaced into game flow.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string)
}
