package systempay

import (
	"errors"
	"fmt"
	"time"
)

const (
	// FieldPrefix добавляется к имени каждого поля перед отправкой и подписью.
	FieldPrefix = "vads_"

	// SignatureFieldName передается без префикса и никогда не подписывается.
	SignatureFieldName = "signature"

	// DefaultPaymentURL — hosted payment page шлюза.
	DefaultPaymentURL = "https://paiement.systempay.fr/vads-payment/"

	CtxModeTest = "TEST"

	transDateLayout = "20060102150405"

	// trans_id передается как %06d, поэтому id ограничен шестью десятичными разрядами.
	maxTransID = 1000000
)

var ErrMissingRequiredField = errors.New("systempay: required field has no configured value")

// RequiredFieldNames — обязательные поля платежной формы.
// Значения приходят из конфигурации и проверяются при старте.
var RequiredFieldNames = []string{
	"action_mode",
	"ctx_mode",
	"page_action",
	"payment_config",
	"site_id",
	"version",
	"redirect_success_message",
	"redirect_error_message",
	"url_return",
}

// alwaysReplaceable — таблица политики слияния override'ов.
// Обязательное поле с непустым значением заменить нельзя, кроме
// перечисленных здесь: payment_config легитимно меняется от вызова
// к вызову (разовый платеж против подписки).
var alwaysReplaceable = map[string]bool{
	"payment_config": true,
}

// FieldSet — набор полей платежной формы до префиксации и подписи.
// Обязательная часть приходит из конфигурации, свободная — от вызывающего
// (cust_email и прочий бизнес-контекст).
type FieldSet struct {
	required map[string]string
	extra    map[string]string
}

// NewFieldSet строит шаблон из сконфигурированных обязательных полей.
// Пустое или отсутствующее значение — ошибка конфигурации, не per-call.
func NewFieldSet(required map[string]string) (*FieldSet, error) {
	fs := &FieldSet{
		required: make(map[string]string, len(RequiredFieldNames)),
		extra:    make(map[string]string),
	}
	for _, name := range RequiredFieldNames {
		value, ok := required[name]
		if !ok || value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingRequiredField, name)
		}
		fs.required[name] = value
	}
	return fs, nil
}

// Clone возвращает независимую копию. Шаблон строится один раз при старте,
// каждый платеж работает со своей копией.
func (fs *FieldSet) Clone() *FieldSet {
	cp := &FieldSet{
		required: make(map[string]string, len(fs.required)),
		extra:    make(map[string]string, len(fs.extra)),
	}
	for name, value := range fs.required {
		cp.required[name] = value
	}
	for name, value := range fs.extra {
		cp.extra[name] = value
	}
	return cp
}

// Apply накладывает override'ы вызывающего согласно alwaysReplaceable:
// обязательное поле заменяется только если его текущее значение пусто
// либо поле явно помечено заменяемым; неизвестные имена добавляются
// как свободные поля.
func (fs *FieldSet) Apply(overrides map[string]string) {
	for name, value := range overrides {
		if name == SignatureFieldName {
			continue
		}
		current, isRequired := fs.required[name]
		if isRequired {
			if current == "" || alwaysReplaceable[name] {
				fs.required[name] = value
			}
			continue
		}
		fs.extra[name] = value
	}
}

// Set записывает производное поле безусловно (amount, currency, trans_id,
// trans_date формируются системой и не подчиняются политике слияния).
func (fs *FieldSet) Set(name, value string) {
	if _, isRequired := fs.required[name]; isRequired {
		fs.required[name] = value
		return
	}
	fs.extra[name] = value
}

// Get возвращает текущее значение поля по имени без префикса.
func (fs *FieldSet) Get(name string) (string, bool) {
	if value, ok := fs.required[name]; ok {
		return value, true
	}
	value, ok := fs.extra[name]
	return value, ok
}

// Prefixed возвращает итоговую карту полей с префиксом vads_,
// готовую к подписи и отправке.
func (fs *FieldSet) Prefixed() map[string]string {
	out := make(map[string]string, len(fs.required)+len(fs.extra))
	for name, value := range fs.required {
		out[FieldPrefix+name] = value
	}
	for name, value := range fs.extra {
		out[FieldPrefix+name] = value
	}
	return out
}

// FormatTransID приводит id транзакции к формату trans_id шлюза: %06d.
func FormatTransID(id uint) (string, error) {
	if id >= maxTransID {
		return "", fmt.Errorf("systempay: transaction id %d does not fit six digits", id)
	}
	return fmt.Sprintf("%06d", id), nil
}

// FormatTransDate форматирует trans_date: UTC в YYYYMMDDHHMMSS.
func FormatTransDate(t time.Time) string {
	return t.UTC().Format(transDateLayout)
}

// SelectKey выбирает секрет по ctx_mode: TEST — тестовый ключ,
// все остальное — боевой. Выбор фиксируется один раз при создании сервиса.
func SelectKey(ctxMode, keyTest, keyProd string) string {
	if ctxMode == CtxModeTest {
		return keyTest
	}
	return keyProd
}
