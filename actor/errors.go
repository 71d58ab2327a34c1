package actor

import "errors"

// The complete, stable error taxonomy observable by callers. Apart from
// the caller's own context error, which Send and SendAsync return when
// stdCtx ends before the reply arrives, these are the only errors the
// runtime itself returns from a send operation; they are never
// augmented with unexported sentinel variants.
var (
	// ErrMailboxClosed means the target actor has terminated, or every
	// address clone observing that mailbox is gone.
	ErrMailboxClosed = errors.New("actor: mailbox closed")

	// ErrMailboxFull means a non-blocking send found no room in a
	// bounded mailbox.
	ErrMailboxFull = errors.New("actor: mailbox full")

	// ErrTimeout means a SendTimeout deadline expired before a reply
	// arrived. The envelope may still execute; the reply slot is simply
	// abandoned.
	ErrTimeout = errors.New("actor: send timeout")

	// ErrNoHandler means no Bind/BindAsync option registered a handler
	// for this message type on this actor before Spawn.
	ErrNoHandler = errors.New("actor: no handler bound for message type")
)
