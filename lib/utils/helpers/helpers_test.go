package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplacePlaceholders(t *testing.T) {
	t.Run("подстановка значений", func(t *testing.T) {
		text := "Здравствуйте, {{candidate}}! Вы прошли на этап {{stage}} по вакансии {{job_title}}."
		result := ReplacePlaceholders(text, map[string]string{
			"candidate": "Иван Петров",
			"stage":     "Interview",
			"job_title": "Аналитик",
		})
		require.Equal(t, "Здравствуйте, Иван Петров! Вы прошли на этап Interview по вакансии Аналитик.", result)
	})

	t.Run("повторные вхождения ключа", func(t *testing.T) {
		result := ReplacePlaceholders("{{name}}, {{name}}", map[string]string{"name": "a"})
		require.Equal(t, "a, a", result)
	})

	t.Run("неизвестные плейсхолдеры остаются", func(t *testing.T) {
		result := ReplacePlaceholders("всего {{total}}", map[string]string{"candidate": "x"})
		require.Equal(t, "всего {{total}}", result)
	})
}
