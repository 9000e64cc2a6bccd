package helpers

import (
	"fmt"
	"strconv"
	"strings"
)

// ReplacePlaceholders - подстановка значений в шаблон вида "Здравствуйте, {{candidate}}"
func ReplacePlaceholders(text string, values map[string]string) string {
	for key, value := range values {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}

func FormatCount(count int) string {
	return fmt.Sprintf("%d", count)
}

func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
