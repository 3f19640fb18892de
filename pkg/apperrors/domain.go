package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок платежного домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrUnknownTransaction - шлюз подтверждает транзакцию, которую эта система
// не создавала. Это межсистемная рассинхронизация, а не подделка подписи,
// поэтому отдается отдельно от VerificationError.
func ErrUnknownTransaction(err error) *AppError {
	return Wrap(err, CodeNotFound, "payment", "Notification references an unknown transaction", http.StatusNotFound)
}

// ErrMissingConfig - обязательное поле платежной формы не сконфигурировано.
// Фатально на старте, не восстанавливается per-call.
func ErrMissingConfig(err error) *AppError {
	return Wrap(err, CodeConfigurationError, "systempay", "Required payment field is not configured", http.StatusInternalServerError)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// ErrInvalidAmount - сумма не является неотрицательным целым в минорных единицах.
// Отклоняется до создания транзакции, частичного состояния не остается.
var ErrInvalidAmount = New(
	CodeValidationFailed,
	"payment",
	"Amount must be a non-negative minor-unit integer",
	http.StatusBadRequest,
)

// ErrInvalidCurrency - код валюты не похож на числовой код ISO 4217.
var ErrInvalidCurrency = New(
	CodeValidationFailed,
	"payment",
	"Currency must be a numeric ISO 4217 code",
	http.StatusBadRequest,
)

// ErrMissingSignature - уведомление пришло без поля signature.
// Отсутствующая подпись никогда не считается валидной.
var ErrMissingSignature = New(
	CodeSignatureMissing,
	"systempay",
	"Notification signature is missing",
	http.StatusBadRequest,
)

// ErrInvalidSignature - подпись не сошлась. Ожидаемый враждебный вход:
// типизированный отказ, транзакция не трогается.
var ErrInvalidSignature = New(
	CodeSignatureInvalid,
	"systempay",
	"Notification signature mismatch",
	http.StatusBadRequest,
)

// ErrTransIDExhausted - id транзакции больше не помещается в шесть разрядов
// trans_id. Емкость надо планировать заранее; это не ошибка вызывающего.
var ErrTransIDExhausted = New(
	CodeLimitExceeded,
	"payment",
	"Transaction id space for trans_id is exhausted",
	http.StatusInternalServerError,
)
