package gpthandler

import (
	"ai-interview-backend/models"
	aiapimodels "ai-interview-backend/models/api/ai"
	"encoding/json"
	"strings"
)

// Модель не гарантирует строгий JSON: ответ может быть обернут в markdown-блок
// или сопроводительный текст. Выделяем фрагмент от первой '{' до последней '}'.
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// parseEvaluation разбирает ответ ИИ на оценку.
// При неразборчивом ответе действует fallback: нейтральная оценка 5,
// весь исходный текст ответа как фидбек.
func parseEvaluation(raw string) aiapimodels.AnswerEvaluation {
	fallback := aiapimodels.AnswerEvaluation{
		Score:    models.NeutralAnswerScore,
		Feedback: raw,
	}
	jsonPart, ok := extractJSON(raw)
	if !ok {
		return fallback
	}
	parsed := aiapimodels.AnswerEvaluation{}
	if err := json.Unmarshal([]byte(jsonPart), &parsed); err != nil {
		return fallback
	}
	if parsed.Score == 0 && parsed.Feedback == "" {
		return fallback
	}
	if parsed.Score == 0 {
		parsed.Score = models.NeutralAnswerScore
	}
	parsed.Score = clampScore(parsed.Score)
	return parsed
}

// parseFeedback разбирает итоговую оценку интервью.
// nil означает неразборчивый ответ, fallback рассчитывает вызывающая сторона
// (среднее по оценкам ответов).
func parseFeedback(raw string) *aiapimodels.InterviewFeedback {
	jsonPart, ok := extractJSON(raw)
	if !ok {
		return nil
	}
	parsed := aiapimodels.InterviewFeedback{}
	if err := json.Unmarshal([]byte(jsonPart), &parsed); err != nil {
		return nil
	}
	if parsed.OverallScore == 0 {
		return nil
	}
	parsed.OverallScore = clampScore(parsed.OverallScore)
	if parsed.Strengths == nil {
		parsed.Strengths = []string{}
	}
	if parsed.Improvements == nil {
		parsed.Improvements = []string{}
	}
	return &parsed
}

func clampScore(score float64) float64 {
	if score < models.MinAnswerScore {
		return models.MinAnswerScore
	}
	if score > models.MaxAnswerScore {
		return models.MaxAnswerScore
	}
	return score
}
