package booking

type CreateBookingReq struct {
	TaskID        int64  `json:"taskId" validate:"required,gt=0"`
	ScheduledDate string `json:"scheduledDate" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=wallet direct"`
}

type CancelBookingReq struct {
	BookingID int64  `json:"bookingId" validate:"required,gt=0"`
	Reason    string `json:"reason"`
}
