package settable

import "errors"

var (
	ErrInvalidTableSetting   = errors.New("settable: invalid table setting")
	ErrDealerAlreadyStarted  = errors.New("settable: dealer already started")
	ErrDealerAlreadyReleased = errors.New("settable: dealer already released")
	ErrPlayerNotFound        = errors.New("settable: player not found")
	ErrPlayerDisabled        = errors.New("settable: player is currently disabled")
	ErrSlotOutOfRange        = errors.New("settable: slot out of range")
	ErrSlotOccupied          = errors.New("settable: slot already has a card")
	ErrSlotEmpty             = errors.New("settable: slot has no card")
	ErrCardAlreadyOnTable    = errors.New("settable: card already on table")
	ErrNoLegalSetRemains     = errors.New("settable: no legal set remains in deck or table")
)
