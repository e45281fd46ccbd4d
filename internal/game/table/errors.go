package table

import "errors"

// 非法请求一律拒绝且不改动任何状态
var (
	ErrRoomFull            = errors.New("table: room is full")
	ErrUnknownPlayer       = errors.New("table: player not seated")
	ErrNotYourTurn         = errors.New("table: not this player's turn")
	ErrWrongStage          = errors.New("table: action not valid in current stage")
	ErrBetMismatch         = errors.New("table: cannot check while owing chips")
	ErrNothingToCall       = errors.New("table: nothing to call")
	ErrRaiseTooSmall       = errors.New("table: raise must exceed current bet")
	ErrInsufficientChips   = errors.New("table: not enough chips")
	ErrInsufficientPlayers = errors.New("table: need at least 2 players")
	ErrUnknownAction       = errors.New("table: unknown action")
	ErrNoConfirmation      = errors.New("table: no confirmation pending")
)
