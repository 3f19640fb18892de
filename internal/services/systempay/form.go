package systempay

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// RenderHiddenInputs рендерит поля в hidden-input разметку для submit-формы
// на hosted payment page. Порядок детерминированный (по имени), значения
// экранируются.
func RenderHiddenInputs(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(fmt.Sprintf(
			`<input type="hidden" name="%s" value="%s">`,
			html.EscapeString(name),
			html.EscapeString(fields[name]),
		))
	}
	return b.String()
}
