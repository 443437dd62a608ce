package model

// TossPayment is the subset of the gateway's confirmation payload the
// service reads. The full payload is kept verbatim alongside it.
type TossPayment struct {
	PaymentKey  string `json:"paymentKey"`
	OrderID     string `json:"orderId"`
	OrderName   string `json:"orderName"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
	Method      string `json:"method"`
	ApprovedAt  string `json:"approvedAt"`
}

// TossError is the gateway's error payload on a non-2xx confirmation.
type TossError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
