package request

type CreateBookingRequest struct {
	HoldGroupID string `json:"hold_group_id" validate:"required,uuid4"`
}

type PaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Method    string `json:"method" validate:"required,oneof=upi card cash"`
}

type ConfirmPaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Outcome   string `json:"outcome" validate:"required,oneof=success failure"`
}
