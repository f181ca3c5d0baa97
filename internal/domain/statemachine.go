package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Action действие над бронированием
type Action string

const (
	ActionConfirm       Action = "confirm"        // PENDING -> CONFIRMED
	ActionReject        Action = "reject"         // PENDING -> REJECTED
	ActionRequestCancel Action = "request_cancel" // CONFIRMED -> CANCEL_REQUESTED
	ActionApproveCancel Action = "approve_cancel" // CANCEL_REQUESTED -> CANCELLED
	ActionRejectCancel  Action = "reject_cancel"  // CANCEL_REQUESTED -> CONFIRMED
)

type edge struct {
	from BookingStatus
	to   BookingStatus
}

var transitions = map[Action]edge{
	ActionConfirm:       {from: StatusPending, to: StatusConfirmed},
	ActionReject:        {from: StatusPending, to: StatusRejected},
	ActionRequestCancel: {from: StatusConfirmed, to: StatusCancelRequested},
	ActionApproveCancel: {from: StatusCancelRequested, to: StatusCancelled},
	ActionRejectCancel:  {from: StatusCancelRequested, to: StatusConfirmed},
}

// IsValid returns true for known actions
func (a Action) IsValid() bool {
	_, ok := transitions[a]
	return ok
}

// IsAdminSide returns true for actions performed by the platform side (admin/owner)
func (a Action) IsAdminSide() bool {
	return a != ActionRequestCancel
}

// NextStatus возвращает статус после действия или ErrInvalidTransition
func NextStatus(from BookingStatus, action Action) (BookingStatus, error) {
	e, ok := transitions[action]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	if from != e.from {
		return "", fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, from)
	}
	return e.to, nil
}

// TransitionPayload дополнительные данные действия
type TransitionPayload struct {
	Reason       *string          // request_cancel, обязательно
	RefundAmount *decimal.Decimal // approve_cancel, обязательно
	AdminNote    *string          // approve_cancel / reject_cancel, опционально
}

// StatusChange изменение, которое нужно применить к строке бронирования
type StatusChange struct {
	BookingID             int64
	Action                Action
	From                  BookingStatus
	To                    BookingStatus
	RefundAmount          *decimal.Decimal
	CancellationReason    *string
	CancellationAdminNote *string
}

// PlanTransition проверяет переход и данные действия и возвращает изменение.
// Бронирование не изменяется.
func PlanTransition(b *Booking, action Action, payload TransitionPayload) (StatusChange, error) {
	to, err := NextStatus(b.Status, action)
	if err != nil {
		return StatusChange{}, err
	}

	change := StatusChange{
		BookingID: b.ID,
		Action:    action,
		From:      b.Status,
		To:        to,
	}

	switch action {
	case ActionRequestCancel:
		reason, err := requireText(payload.Reason, "reason", MaxCancellationReasonLength)
		if err != nil {
			return StatusChange{}, err
		}
		change.CancellationReason = &reason

	case ActionApproveCancel:
		if payload.RefundAmount == nil {
			return StatusChange{}, fmt.Errorf("%w: refundAmount is required", ErrInvalidPayload)
		}
		refund := *payload.RefundAmount
		if refund.IsNegative() || refund.GreaterThan(b.TotalPrice) {
			return StatusChange{}, fmt.Errorf("%w: refundAmount must be between 0 and %s", ErrInvalidPayload,
				b.TotalPrice.StringFixed(MoneyScale))
		}
		if refund.Exponent() < -MoneyScale {
			return StatusChange{}, fmt.Errorf("%w: refundAmount must have at most %d decimal places", ErrInvalidPayload, MoneyScale)
		}
		change.RefundAmount = &refund
		if change.CancellationAdminNote, err = optionalText(payload.AdminNote, "adminNote", MaxAdminNoteLength); err != nil {
			return StatusChange{}, err
		}

	case ActionRejectCancel:
		if change.CancellationAdminNote, err = optionalText(payload.AdminNote, "adminNote", MaxAdminNoteLength); err != nil {
			return StatusChange{}, err
		}
	}

	return change, nil
}

// Apply применяет изменение к копии бронирования в памяти
func (c StatusChange) Apply(b Booking) Booking {
	b.Status = c.To
	if c.RefundAmount != nil {
		b.RefundAmount = *c.RefundAmount
	}
	if c.CancellationReason != nil {
		b.CancellationReason = c.CancellationReason
	}
	if c.CancellationAdminNote != nil {
		b.CancellationAdminNote = c.CancellationAdminNote
	}
	return b
}

func requireText(value *string, name string, maxLen int) (string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidPayload, name)
	}
	text := strings.TrimSpace(*value)
	if len(text) > maxLen {
		return "", fmt.Errorf("%w: %s is too long", ErrInvalidPayload, name)
	}
	return text, nil
}

func optionalText(value *string, name string, maxLen int) (*string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	text, err := requireText(value, name, maxLen)
	if err != nil {
		return nil, err
	}
	return &text, nil
}
