package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string][]string{
	"pt": {"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

// Date renders t in the locale's conventional long form.
// Unknown locales fall back to Portuguese.
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	months, ok := monthNames[lang]
	if !ok {
		months = monthNames["pt"]
	}
	month := months[int(t.Month())-1]
	switch lang {
	case "en":
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	case "es":
		return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
	default:
		return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
	}
}

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100}

// CenturyOrder parses a Roman-numeral century ("VIII", "XXI") into its
// ordinal for sorting. Unparseable values sort last.
func CenturyOrder(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 1 << 30
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := romanValues[s[i]]
		if !ok {
			return 1 << 30
		}
		if i+1 < len(s) && romanValues[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	return total
}
