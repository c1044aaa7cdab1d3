package interviewapimodels

import (
	"ai-interview-backend/models"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type CreateRequest struct {
	Position       string                     `json:"position"`        // Должность, свободный текст
	Difficulty     models.InterviewDifficulty `json:"difficulty"`      // junior/middle/senior
	Type           models.InterviewType       `json:"type"`            // technical/behavioral/case_study
	TotalQuestions int                        `json:"total_questions"` // Кол-во вопросов, фиксируется при создании
}

func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Position) == "" {
		return errors.New("не указана должность")
	}
	if !r.Difficulty.IsValid() {
		return errors.New("указан некорректный уровень сложности")
	}
	if !r.Type.IsValid() {
		return errors.New("указан некорректный тип интервью")
	}
	if r.TotalQuestions < models.MinInterviewQuestions || r.TotalQuestions > models.MaxInterviewQuestions {
		return errors.Errorf("кол-во вопросов должно быть от %v до %v", models.MinInterviewQuestions, models.MaxInterviewQuestions)
	}
	return nil
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

func (r SubmitAnswerRequest) Validate() error {
	if r.QuestionID == "" {
		return errors.New("не указан идентификатор вопроса")
	}
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("ответ не должен быть пустым")
	}
	return nil
}

type InterviewView struct {
	ID             string                     `json:"id"`
	Position       string                     `json:"position"`
	Difficulty     models.InterviewDifficulty `json:"difficulty"`
	Type           models.InterviewType       `json:"type"`
	TotalQuestions int                        `json:"total_questions"`
	AnsweredCount  int                        `json:"answered_count"`
	Status         models.InterviewStatus     `json:"status"`
	OverallScore   *float64                   `json:"overall_score,omitempty"`
	Strengths      []string                   `json:"strengths,omitempty"`
	Improvements   []string                   `json:"improvements,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
	CompletedAt    *time.Time                 `json:"completed_at,omitempty"`
}

type QuestionView struct {
	ID       string `json:"id"`
	OrderNum int    `json:"order_num"`
	Text     string `json:"text"`
}

// TurnView - полностью завершенный цикл вопрос/ответ
type TurnView struct {
	Question QuestionView `json:"question"`
	Answer   string       `json:"answer"`
	Feedback string       `json:"feedback"`
	Score    float64      `json:"score"`
}

type StateView struct {
	Interview       InterviewView       `json:"interview"`
	State           models.SessionState `json:"state"`
	NextQuestionNum int                 `json:"next_question_num,omitempty"` // для awaiting_question
	CurrentQuestion *QuestionView       `json:"current_question,omitempty"`  // для awaiting_answer
	History         []TurnView          `json:"history"`
}

type SubmitAnswerView struct {
	Feedback string              `json:"feedback"`
	Score    float64             `json:"score"`
	State    models.SessionState `json:"state"`
}

type ResultsView struct {
	Interview InterviewView `json:"interview"`
	Turns     []TurnView    `json:"turns"`
}

type ReportView struct {
	URL string `json:"url"` // временная ссылка на отчет в хранилище
}
