package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Actor  domain.Actor
	UserID int64
	Status *string
}

// GetFieldScheduleRequest запрос расписания поля
type GetFieldScheduleRequest struct {
	FieldID int64
	From    *time.Time
	To      *time.Time
}

// DeleteBookingRequest запрос на удаление бронирования
type DeleteBookingRequest struct {
	Actor     domain.Actor
	BookingID int64
	Force     bool
}

// Response модели

// SharesResponse разложение суммы бронирования
type SharesResponse struct {
	NetCollected  decimal.Decimal `json:"netCollected"`
	PlatformShare decimal.Decimal `json:"platformShare"`
	OwnerShare    decimal.Decimal `json:"ownerShare"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64     `json:"id"`
	FieldID   int64     `json:"fieldId"`
	UserID    int64     `json:"userId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	SeriesID  *string   `json:"seriesId,omitempty"`

	TotalPrice   decimal.Decimal `json:"totalPrice"`
	ServiceFee   decimal.Decimal `json:"serviceFee"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	IsSettled    bool            `json:"isSettled"`
	Shares       SharesResponse  `json:"shares"`

	CancellationReason    *string `json:"cancellationReason,omitempty"`
	CancellationAdminNote *string `json:"cancellationAdminNote,omitempty"`
	ReceiptRef            *string `json:"receiptRef,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ScheduleItem занятый интервал поля, без персональных и денежных данных
type ScheduleItem struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

// FieldScheduleResponse расписание поля
type FieldScheduleResponse struct {
	FieldID int64          `json:"fieldId"`
	Items   []ScheduleItem `json:"items"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	shares := b.Shares()
	resp := &BookingResponse{
		ID:           b.ID,
		FieldID:      b.FieldID,
		UserID:       b.UserID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.Status),
		TotalPrice:   b.TotalPrice,
		ServiceFee:   b.ServiceFee,
		RefundAmount: b.RefundAmount,
		IsSettled:    b.IsSettled,
		Shares: SharesResponse{
			NetCollected:  shares.NetCollected,
			PlatformShare: shares.PlatformShare,
			OwnerShare:    shares.OwnerShare,
		},
		CancellationReason:    b.CancellationReason,
		CancellationAdminNote: b.CancellationAdminNote,
		ReceiptRef:            b.ReceiptRef,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}

	if b.SeriesID.Valid {
		series := b.SeriesID.UUID.String()
		resp.SeriesID = &series
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainSchedule конвертирует занятые бронирования в расписание
func FromDomainSchedule(fieldID int64, bookings []*domain.Booking) *FieldScheduleResponse {
	resp := &FieldScheduleResponse{
		FieldID: fieldID,
		Items:   make([]ScheduleItem, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Items = append(resp.Items, ScheduleItem{
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    string(b.Status),
		})
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
