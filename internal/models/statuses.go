package models

type TransStatus string

// Коды vads_trans_status, которые шлет платежный шлюз.
const (
	TransStatusAuthorised           TransStatus = "AUTHORISED"
	TransStatusAuthorisedToValidate TransStatus = "AUTHORISED_TO_VALIDATE"
	TransStatusWaitingAuthorisation TransStatus = "WAITING_AUTHORISATION"
	TransStatusRefused              TransStatus = "REFUSED"
	TransStatusAbandoned            TransStatus = "ABANDONED"
	TransStatusCancelled            TransStatus = "CANCELLED"
	TransStatusExpired              TransStatus = "EXPIRED"
	TransStatusCaptured             TransStatus = "CAPTURED"
)
