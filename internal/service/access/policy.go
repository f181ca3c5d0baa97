package access

import "github.com/m04kA/SMC-FieldBookingService/internal/domain"

// Operation операция, для которой проверяются права
type Operation string

const (
	OpCreateBooking    Operation = "create_booking"
	OpCreateBlock      Operation = "create_block"
	OpViewBooking      Operation = "view_booking"
	OpViewUserBookings Operation = "view_user_bookings"
	OpConfirm          Operation = "confirm"
	OpReject           Operation = "reject"
	OpRequestCancel    Operation = "request_cancel"
	OpApproveCancel    Operation = "approve_cancel"
	OpRejectCancel     Operation = "reject_cancel"
	OpDeleteBooking    Operation = "delete_booking"
	OpForceDelete      Operation = "force_delete"
	OpViewReport       Operation = "view_report"
	OpMarkSettled      Operation = "mark_settled"
	OpUpdateSettings   Operation = "update_settings"
)

// Resource данные ресурса, от которых зависит решение
type Resource struct {
	BookingUserID *int64 // владелец бронирования
	FieldOwnerID  *int64 // владелец поля
	TargetUserID  *int64 // пользователь, от имени которого выполняется операция
}

// Policy правила доступа по роли и владению
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// OperationForAction возвращает операцию для действия над статусом
func OperationForAction(action domain.Action) Operation {
	return Operation(action)
}

// IsAuthorized проверяет, может ли актор выполнить операцию над ресурсом
func (p *Policy) IsAuthorized(actor domain.Actor, op Operation, res Resource) bool {
	if !actor.Role.IsValid() || actor.UserID <= 0 {
		return false
	}

	switch op {
	case OpCreateBooking:
		// Клиент бронирует только за себя, администратор - за любого
		return actor.IsAdmin() || is(res.TargetUserID, actor.UserID)

	case OpCreateBlock:
		return actor.IsAdmin() || (actor.IsOwner() && is(res.FieldOwnerID, actor.UserID))

	case OpViewBooking:
		return actor.IsAdmin() || is(res.BookingUserID, actor.UserID) || is(res.FieldOwnerID, actor.UserID)

	case OpViewUserBookings:
		return actor.IsAdmin() || is(res.TargetUserID, actor.UserID)

	case OpConfirm, OpReject:
		return actor.IsAdmin() || (actor.IsOwner() && is(res.FieldOwnerID, actor.UserID))

	case OpRequestCancel:
		// Запросить отмену может только сам клиент, даже администратор не делает это за него
		return is(res.BookingUserID, actor.UserID)

	case OpApproveCancel, OpRejectCancel:
		// Решение о возврате денег принимает только администратор
		return actor.IsAdmin()

	case OpDeleteBooking:
		return actor.IsAdmin() || is(res.BookingUserID, actor.UserID)

	case OpForceDelete, OpMarkSettled, OpUpdateSettings:
		return actor.IsAdmin()

	case OpViewReport:
		return actor.IsAdmin() || actor.IsOwner()
	}

	return false
}

func is(id *int64, userID int64) bool {
	return id != nil && *id == userID
}
