package dbmodels

type InterviewQuestion struct {
	BaseModel
	InterviewID string           `gorm:"type:varchar(36);uniqueIndex:idx_interview_order,priority:1" comment:"Идентификатор интервью"`
	OrderNum    int              `gorm:"uniqueIndex:idx_interview_order,priority:2" comment:"Порядковый номер вопроса, с 1"`
	Text        string           `comment:"Текст вопроса"`
	Answer      *InterviewAnswer `gorm:"foreignKey:QuestionID"`
}

type InterviewAnswer struct {
	BaseModel
	// на вопрос допускается только один ответ
	QuestionID string   `gorm:"type:varchar(36);uniqueIndex" comment:"Идентификатор вопроса"`
	Text       string   `comment:"Текст ответа"`
	Feedback   string   `comment:"Фидбек ИИ по ответу"`
	Score      *float64 `comment:"Оценка ответа от 1 до 10"`
}
