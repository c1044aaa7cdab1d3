package aiapimodels

import "ai-interview-backend/models"

// Контекст для генерации очередного вопроса
type QuestionPromptData struct {
	Position   string
	Difficulty models.InterviewDifficulty
	Type       models.InterviewType
	OrderNum   int // 1-based номер генерируемого вопроса
	Total      int
	Asked      []string // тексты уже заданных вопросов, для исключения повторов
}

// Контекст для оценки ответа
type EvaluatePromptData struct {
	Position   string
	Difficulty models.InterviewDifficulty
	Type       models.InterviewType
	Question   string
	Answer     string
}

type TurnScoreData struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// Контекст для итоговой оценки интервью
type FeedbackPromptData struct {
	Position   string
	Difficulty models.InterviewDifficulty
	Type       models.InterviewType
	Turns      []TurnScoreData
}

// Ожидаемый формат ответа ИИ на оценку ответа.
// Формат не гарантирован, разбор выполняется с fallback-значениями.
type AnswerEvaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Ожидаемый формат ответа ИИ на итоговую оценку интервью
type InterviewFeedback struct {
	OverallScore float64  `json:"overallScore"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}
