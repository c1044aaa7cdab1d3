package dbmodels

import (
	"ai-interview-backend/models"
	interviewapimodels "ai-interview-backend/models/api/interview"
	"time"

	"github.com/lib/pq"
)

type Interview struct {
	BaseModel
	UserID         string                     `gorm:"type:varchar(36);index" comment:"Идентификатор пользователя"`
	Position       string                     `gorm:"type:varchar(255)" comment:"Должность"`
	Difficulty     models.InterviewDifficulty `gorm:"type:varchar(50)" comment:"Уровень сложности"`
	Type           models.InterviewType       `gorm:"type:varchar(50)" comment:"Тип интервью"`
	TotalQuestions int                        `comment:"Кол-во вопросов, фиксируется при создании"`
	Status         models.InterviewStatus     `gorm:"type:varchar(50);index" comment:"Статус интервью"`
	OverallScore   *float64                   `comment:"Итоговая оценка, заполняется при завершении"`
	Strengths      pq.StringArray             `gorm:"type:text[]" comment:"Сильные стороны"`
	Improvements   pq.StringArray             `gorm:"type:text[]" comment:"Зоны роста"`
	CompletedAt    *time.Time                 `comment:"Дата завершения"`
	Questions      []InterviewQuestion        `gorm:"foreignKey:InterviewID"`
}

// AnsweredCount возвращает кол-во полностью отвеченных вопросов
func (r Interview) AnsweredCount() int {
	count := 0
	for _, q := range r.Questions {
		if q.Answer != nil {
			count++
		}
	}
	return count
}

// LastQuestion возвращает вопрос с максимальным порядковым номером
func (r Interview) LastQuestion() *InterviewQuestion {
	if len(r.Questions) == 0 {
		return nil
	}
	last := r.Questions[0]
	for _, q := range r.Questions[1:] {
		if q.OrderNum > last.OrderNum {
			last = q
		}
	}
	return &last
}

func (r Interview) ToModel() interviewapimodels.InterviewView {
	return interviewapimodels.InterviewView{
		ID:             r.ID,
		Position:       r.Position,
		Difficulty:     r.Difficulty,
		Type:           r.Type,
		TotalQuestions: r.TotalQuestions,
		AnsweredCount:  r.AnsweredCount(),
		Status:         r.Status,
		OverallScore:   r.OverallScore,
		Strengths:      r.Strengths,
		Improvements:   r.Improvements,
		CreatedAt:      r.CreatedAt,
		CompletedAt:    r.CompletedAt,
	}
}

func (r InterviewQuestion) ToModel() interviewapimodels.QuestionView {
	return interviewapimodels.QuestionView{
		ID:       r.ID,
		OrderNum: r.OrderNum,
		Text:     r.Text,
	}
}

// ToTurns возвращает историю полностью отвеченных вопросов в порядке задания
func (r Interview) ToTurns() []interviewapimodels.TurnView {
	turns := make([]interviewapimodels.TurnView, 0, len(r.Questions))
	for _, q := range r.Questions {
		if q.Answer == nil {
			continue
		}
		score := float64(0)
		if q.Answer.Score != nil {
			score = *q.Answer.Score
		}
		turns = append(turns, interviewapimodels.TurnView{
			Question: q.ToModel(),
			Answer:   q.Answer.Text,
			Feedback: q.Answer.Feedback,
			Score:    score,
		})
	}
	return turns
}

func (r Interview) AskedQuestionTexts() []string {
	texts := make([]string, 0, len(r.Questions))
	for _, q := range r.Questions {
		texts = append(texts, q.Text)
	}
	return texts
}
