package systempay

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strings"
)

// canonicalContent — единственная точка канонизации, общая для подписи
// исходящей формы и проверки входящего уведомления. Поля (уже с префиксом)
// сортируются побайтово по имени, значения конкатенируются через "+"
// (пустое значение дает голый "+"), в конец дописывается секрет без
// разделителя. Поле signature в содержимое не входит.
func canonicalContent(fields map[string]string, key string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if name == SignatureFieldName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(fields[name])
		b.WriteByte('+')
	}
	b.WriteString(key)
	return b.String()
}

// Sign вычисляет hex-подпись SHA-1 над канонизированным набором полей.
func Sign(fields map[string]string, key string) string {
	sum := sha1.Sum([]byte(canonicalContent(fields, key)))
	return hex.EncodeToString(sum[:])
}

// Verify пересчитывает подпись и сравнивает с заявленной за константное
// время. Расхождение набора полей дает false, а не ошибку: подделанное
// уведомление — ожидаемый вход, не сбой программы.
func Verify(fields map[string]string, claimed, key string) bool {
	expected := Sign(fields, key)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(claimed)) == 1
}
