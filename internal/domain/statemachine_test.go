package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		action  Action
		want    BookingStatus
		wantErr error
	}{
		{StatusPending, ActionConfirm, StatusConfirmed, nil},
		{StatusPending, ActionReject, StatusRejected, nil},
		{StatusConfirmed, ActionRequestCancel, StatusCancelRequested, nil},
		{StatusCancelRequested, ActionApproveCancel, StatusCancelled, nil},
		{StatusCancelRequested, ActionRejectCancel, StatusConfirmed, nil},

		{StatusPending, ActionRequestCancel, "", ErrInvalidTransition},
		{StatusCancelRequested, ActionRequestCancel, "", ErrInvalidTransition},
		{StatusCancelled, ActionRequestCancel, "", ErrInvalidTransition},
		{StatusBlocked, ActionConfirm, "", ErrInvalidTransition},
		{StatusRejected, ActionConfirm, "", ErrInvalidTransition},
		{StatusConfirmed, ActionConfirm, "", ErrInvalidTransition},
		{StatusPending, Action("archive"), "", ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, err := NextStatus(tt.from, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidTransitionIsConflict(t *testing.T) {
	_, err := NextStatus(StatusPending, ActionRequestCancel)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPlanTransition_RequestCancelNeedsReason(t *testing.T) {
	b := &Booking{ID: 1, Status: StatusConfirmed}

	_, err := PlanTransition(b, ActionRequestCancel, TransitionPayload{})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	change, err := PlanTransition(b, ActionRequestCancel, TransitionPayload{Reason: ptr.Ptr("  rain  ")})
	require.NoError(t, err)
	assert.Equal(t, "rain", *change.CancellationReason)
	assert.Equal(t, StatusCancelRequested, change.To)
}

func TestPlanTransition_ApproveCancelRefundBounds(t *testing.T) {
	b := &Booking{ID: 1, Status: StatusCancelRequested, TotalPrice: decimal.NewFromInt(110)}

	_, err := PlanTransition(b, ActionApproveCancel, TransitionPayload{})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = PlanTransition(b, ActionApproveCancel, TransitionPayload{RefundAmount: ptr.Ptr(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = PlanTransition(b, ActionApproveCancel, TransitionPayload{RefundAmount: ptr.Ptr(decimal.NewFromInt(111))})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	change, err := PlanTransition(b, ActionApproveCancel, TransitionPayload{
		RefundAmount: ptr.Ptr(decimal.NewFromInt(110)),
		AdminNote:    ptr.Ptr("full refund"),
	})
	require.NoError(t, err)

	applied := change.Apply(*b)
	assert.Equal(t, StatusCancelled, applied.Status)
	assert.True(t, decimal.NewFromInt(110).Equal(applied.RefundAmount))
	assert.Equal(t, "full refund", *applied.CancellationAdminNote)
	assert.False(t, applied.IsOccupying())
}

func TestPlanTransition_RejectCancelKeepsRefundZero(t *testing.T) {
	b := &Booking{ID: 1, Status: StatusCancelRequested, TotalPrice: decimal.NewFromInt(110)}

	change, err := PlanTransition(b, ActionRejectCancel, TransitionPayload{})
	require.NoError(t, err)

	applied := change.Apply(*b)
	assert.Equal(t, StatusConfirmed, applied.Status)
	assert.True(t, applied.RefundAmount.IsZero())
	assert.Nil(t, change.RefundAmount)
}
