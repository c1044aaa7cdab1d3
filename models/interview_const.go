package models

type InterviewDifficulty string

const (
	DifficultyJunior InterviewDifficulty = "junior"
	DifficultyMiddle InterviewDifficulty = "middle"
	DifficultySenior InterviewDifficulty = "senior"
)

var difficultyHumanName = map[InterviewDifficulty]string{
	DifficultyJunior: "Начинающий специалист",
	DifficultyMiddle: "Специалист",
	DifficultySenior: "Старший специалист",
}

func (d InterviewDifficulty) IsValid() bool {
	_, exist := difficultyHumanName[d]
	return exist
}

func (d InterviewDifficulty) ToHuman() string {
	if human, exist := difficultyHumanName[d]; exist {
		return human
	}
	return string(d)
}

type InterviewType string

const (
	InterviewTypeTechnical  InterviewType = "technical"
	InterviewTypeBehavioral InterviewType = "behavioral"
	InterviewTypeCaseStudy  InterviewType = "case_study"
)

var interviewTypeHumanName = map[InterviewType]string{
	InterviewTypeTechnical:  "Техническое интервью",
	InterviewTypeBehavioral: "Поведенческое интервью",
	InterviewTypeCaseStudy:  "Кейс-интервью",
}

func (t InterviewType) IsValid() bool {
	_, exist := interviewTypeHumanName[t]
	return exist
}

func (t InterviewType) ToHuman() string {
	if human, exist := interviewTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

type InterviewStatus string

const (
	InterviewStatusInProgress InterviewStatus = "in_progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
	InterviewStatusCancelled  InterviewStatus = "cancelled"
)

// Состояние сессии интервью, всегда выводится из сохраненных данных
type SessionState string

const (
	SessionStateAwaitingQuestion SessionState = "awaiting_question"
	SessionStateAwaitingAnswer   SessionState = "awaiting_answer"
	SessionStateEvaluating       SessionState = "evaluating"
	SessionStateCompleted        SessionState = "completed"
	SessionStateCancelled        SessionState = "cancelled"
)

// Минимальное и максимальное кол-во вопросов в интервью
const (
	MinInterviewQuestions = 1
	MaxInterviewQuestions = 20
)

// Граничные значения оценки ответа
const (
	MinAnswerScore     = 1
	MaxAnswerScore     = 10
	NeutralAnswerScore = 5
)
