package mark_settled

// MarkSettledRequest HTTP request model
type MarkSettledRequest struct {
	BookingIDs []int64 `json:"bookingIds"`
}
