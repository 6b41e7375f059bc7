package queue

import "errors"

var (
	ErrUnknownService   = errors.New("unknown service")
	ErrUnknownTicket    = errors.New("ticket not found in history")
	ErrTransferConflict = errors.New("ticket already transferred")
	ErrNoCurrentItem    = errors.New("no current item")
	ErrMuted            = errors.New("service is muted")
)
