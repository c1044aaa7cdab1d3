package interview

import (
	"ai-interview-backend/models"
	dbmodels "ai-interview-backend/models/db"
)

// deriveState выводит состояние сессии только из сохраненных данных.
// Благодаря этому перезагрузка или сбой на любом шаге не теряет прогресс:
// повторный вход восстанавливает корректный следующий шаг.
func deriveState(rec *dbmodels.Interview) models.SessionState {
	switch rec.Status {
	case models.InterviewStatusCompleted:
		return models.SessionStateCompleted
	case models.InterviewStatusCancelled:
		return models.SessionStateCancelled
	}
	last := rec.LastQuestion()
	if last != nil && last.Answer == nil {
		return models.SessionStateAwaitingAnswer
	}
	if rec.AnsweredCount() < rec.TotalQuestions {
		return models.SessionStateAwaitingQuestion
	}
	// все вопросы отвечены, но интервью не завершено - прерванный finalize
	return models.SessionStateEvaluating
}
