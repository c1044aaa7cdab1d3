package gpthandler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Run(`markdown and prose wrapping check`, func(t *testing.T) {
		jsonPart, ok := extractJSON("```json\n{\"score\": 7}\n```")
		require.True(t, ok)
		require.Equal(t, `{"score": 7}`, jsonPart)

		jsonPart, ok = extractJSON(`Вот результат оценки: {"score": 7, "feedback": "хорошо"} Надеюсь, помог!`)
		require.True(t, ok)
		require.Equal(t, `{"score": 7, "feedback": "хорошо"}`, jsonPart)

		_, ok = extractJSON("оценить ответ не получилось")
		require.False(t, ok)

		_, ok = extractJSON("}{")
		require.False(t, ok)
	})
}

func TestParseEvaluation(t *testing.T) {
	t.Run(`valid json check`, func(t *testing.T) {
		eval := parseEvaluation(`{"score": 8, "feedback": "Подробный ответ"}`)
		require.Equal(t, float64(8), eval.Score)
		require.Equal(t, "Подробный ответ", eval.Feedback)
	})

	t.Run(`fallback on unparsable answer check`, func(t *testing.T) {
		raw := "Ответ кандидата выглядит неплохо, оценил бы на семь баллов."
		eval := parseEvaluation(raw)
		require.Equal(t, float64(5), eval.Score)
		// исходный текст сохраняется как фидбек дословно
		require.Equal(t, raw, eval.Feedback)
	})

	t.Run(`fallback on broken json check`, func(t *testing.T) {
		raw := `{"score": "высokaya", "feedback": }`
		eval := parseEvaluation(raw)
		require.Equal(t, float64(5), eval.Score)
		require.Equal(t, raw, eval.Feedback)
	})

	t.Run(`score clamping check`, func(t *testing.T) {
		eval := parseEvaluation(`{"score": 15, "feedback": "отлично"}`)
		require.Equal(t, float64(10), eval.Score)

		eval = parseEvaluation(`{"score": -3, "feedback": "слабо"}`)
		require.Equal(t, float64(1), eval.Score)
	})

	t.Run(`missing score gets neutral check`, func(t *testing.T) {
		eval := parseEvaluation(`{"feedback": "неоднозначный ответ"}`)
		require.Equal(t, float64(5), eval.Score)
		require.Equal(t, "неоднозначный ответ", eval.Feedback)
	})
}

func TestParseFeedback(t *testing.T) {
	t.Run(`valid json check`, func(t *testing.T) {
		feedback := parseFeedback(`{"overallScore": 7.5, "strengths": ["знание языка"], "improvements": ["архитектура"]}`)
		require.NotNil(t, feedback)
		require.Equal(t, 7.5, feedback.OverallScore)
		require.Equal(t, []string{"знание языка"}, feedback.Strengths)
		require.Equal(t, []string{"архитектура"}, feedback.Improvements)
	})

	t.Run(`nil on unparsable answer check`, func(t *testing.T) {
		require.Nil(t, parseFeedback("итоговую оценку сформировать не удалось"))
		require.Nil(t, parseFeedback(`{"overallScore": "семь"}`))
		require.Nil(t, parseFeedback(`{"strengths": ["без оценки"]}`))
	})

	t.Run(`missing lists become empty check`, func(t *testing.T) {
		feedback := parseFeedback(`{"overallScore": 6}`)
		require.NotNil(t, feedback)
		require.NotNil(t, feedback.Strengths)
		require.NotNil(t, feedback.Improvements)
		require.Empty(t, feedback.Strengths)
		require.Empty(t, feedback.Improvements)
	})

	t.Run(`score clamping check`, func(t *testing.T) {
		feedback := parseFeedback(`{"overallScore": 12}`)
		require.NotNil(t, feedback)
		require.Equal(t, float64(10), feedback.OverallScore)
	})
}
