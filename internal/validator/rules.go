package validator

import (
	"log"

	"systempay_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-currency-code': числовой код валюты ISO 4217 (978, 840, ...)
	mustRegister("is-currency-code", validateCurrencyCode)

	// 'is-trans-status': статус транзакции, который шлет шлюз
	mustRegister("is-trans-status", validateTransStatus)
}

// --- Функции валидации ---

func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().Int()
	// Числовые коды ISO 4217 трехзначные
	return code >= 1 && code <= 999
}

func validateTransStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.TransStatus(value) {
	case models.TransStatusAuthorised,
		models.TransStatusAuthorisedToValidate,
		models.TransStatusWaitingAuthorisation,
		models.TransStatusRefused,
		models.TransStatusAbandoned,
		models.TransStatusCancelled,
		models.TransStatusExpired,
		models.TransStatusCaptured:
		return true
	default:
		return false
	}
}
