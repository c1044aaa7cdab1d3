package interview

import (
	"ai-interview-backend/db"
	gpthandler "ai-interview-backend/lib/gpt"
	questionstore "ai-interview-backend/lib/interview/question-store"
	interviewstore "ai-interview-backend/lib/interview/store"
	"ai-interview-backend/models"
	apimodels "ai-interview-backend/models/api"
	aiapimodels "ai-interview-backend/models/api/ai"
	interviewapimodels "ai-interview-backend/models/api/interview"
	dbmodels "ai-interview-backend/models/db"
	"math"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("интервью не найдено")

type Provider interface {
	Create(userID string, req interviewapimodels.CreateRequest) (*interviewapimodels.InterviewView, error)
	GetState(userID, id string) (*interviewapimodels.StateView, error)
	GenerateQuestion(userID, id string) (*interviewapimodels.QuestionView, error)
	SubmitAnswer(userID, id string, req interviewapimodels.SubmitAnswerRequest) (*interviewapimodels.SubmitAnswerView, error)
	Finalize(userID, id string) (*interviewapimodels.ResultsView, error)
	Cancel(userID, id string) error
	List(userID string, pagination apimodels.Pagination) (list []interviewapimodels.InterviewView, rowCount int64, err error)
	ListFull(userID string) (list []dbmodels.Interview, err error)
	GetFull(userID, id string) (*dbmodels.Interview, error)
	GetResults(userID, id string) (*interviewapimodels.ResultsView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		interviewStore: interviewstore.NewInstance(db.DB),
		questionStore:  questionstore.NewInstance(db.DB),
		gpt:            gpthandler.Instance,
	}
}

type impl struct {
	interviewStore interviewstore.Provider
	questionStore  questionstore.Provider
	gpt            gpthandler.Provider
}

func (i impl) Create(userID string, req interviewapimodels.CreateRequest) (*interviewapimodels.InterviewView, error) {
	rec := dbmodels.Interview{
		UserID:         userID,
		Position:       strings.TrimSpace(req.Position),
		Difficulty:     req.Difficulty,
		Type:           req.Type,
		TotalQuestions: req.TotalQuestions,
		Status:         models.InterviewStatusInProgress,
	}
	id, err := i.interviewStore.Create(rec)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка создания интервью")
		return nil, errors.New("ошибка создания интервью")
	}
	created, err := i.getInterview(userID, id)
	if err != nil {
		return nil, err
	}
	view := created.ToModel()
	return &view, nil
}

func (i impl) GetState(userID, id string) (*interviewapimodels.StateView, error) {
	rec, err := i.getInterview(userID, id)
	if err != nil {
		return nil, err
	}
	view := interviewapimodels.StateView{
		Interview: rec.ToModel(),
		State:     deriveState(rec),
		History:   rec.ToTurns(),
	}
	switch view.State {
	case models.SessionStateAwaitingQuestion:
		view.NextQuestionNum = rec.AnsweredCount() + 1
	case models.SessionStateAwaitingAnswer:
		// незакрытый вопрос не входит в историю, отдаем его отдельно
		lastQuestion := rec.LastQuestion().ToModel()
		view.CurrentQuestion = &lastQuestion
	}
	return &view, nil
}

func (i impl) GenerateQuestion(userID, id string) (*interviewapimodels.QuestionView, error) {
	rec, err := i.getInterview(userID, id)
	if err != nil {
		return nil, err
	}
	switch deriveState(rec) {
	case models.SessionStateAwaitingQuestion:
	case models.SessionStateAwaitingAnswer:
		return nil, errors.New("сначала нужно ответить на текущий вопрос")
	default:
		return nil, errors.New("все вопросы интервью уже заданы")
	}

	// вопрос сохраняется только после успешной генерации,
	// поэтому повтор после сбоя не создает дублей и пропусков в нумерации
	orderNum := len(rec.Questions) + 1
	text, err := i.gpt.GenerateQuestion(rec.ID, aiapimodels.QuestionPromptData{
		Position:   rec.Position,
		Difficulty: rec.Difficulty,
		Type:       rec.Type,
		OrderNum:   orderNum,
		Total:      rec.TotalQuestions,
		Asked:      rec.AskedQuestionTexts(),
	})
	if err != nil {
		return nil, err
	}
	questionRec := dbmodels.InterviewQuestion{
		InterviewID: rec.ID,
		OrderNum:    orderNum,
		Text:        text,
	}
	questionID, err := i.questionStore.Create(questionRec)
	if err != nil {
		log.
			WithField("interview_id", rec.ID).
			WithError(err).
			Error("ошибка сохранения вопроса")
		return nil, errors.New("ошибка сохранения вопроса")
	}
	return &interviewapimodels.QuestionView{
		ID:       questionID,
		OrderNum: orderNum,
		Text:     text,
	}, nil
}

func (i impl) SubmitAnswer(userID, id string, req interviewapimodels.SubmitAnswerRequest) (*interviewapimodels.SubmitAnswerView, error) {
	rec, err := i.getInterview(userID, id)
	if err != nil {
		return nil, err
	}
	if deriveState(rec) != models.SessionStateAwaitingAnswer {
		return nil, errors.New("нет вопроса, ожидающего ответа")
	}
	questionRec, err := i.questionStore.GetByID(rec.ID, req.QuestionID)
	if err != nil {
		log.
			WithField("interview_id", rec.ID).
			WithError(err).
			Error("ошибка получения вопроса")
		return nil, errors.New("ошибка получения вопроса")
	}
	if questionRec == nil {
		return nil, errors.New("вопрос не найден")
	}
	if questionRec.Answer != nil {
		return nil, errors.New("на этот вопрос уже дан ответ")
	}

	answerText := strings.TrimSpace(req.Text)
	eval, err := i.gpt.EvaluateAnswer(rec.ID, aiapimodels.EvaluatePromptData{
		Position:   rec.Position,
		Difficulty: rec.Difficulty,
		Type:       rec.Type,
		Question:   questionRec.Text,
		Answer:     answerText,
	})
	if err != nil {
		// ответ не сохранен, состояние не изменилось - повтор с тем же текстом безопасен
		return nil, err
	}
	score := eval.Score
	answerRec := dbmodels.InterviewAnswer{
		QuestionID: questionRec.ID,
		Text:       answerText,
		Feedback:   eval.Feedback,
		Score:      &score,
	}
	_, err = i.questionStore.CreateAnswer(answerRec)
	if err != nil {
		log.
			WithField("interview_id", rec.ID).
			WithError(err).
			Error("ошибка сохранения ответа")
		return nil, errors.New("ошибка сохранения ответа")
	}

	state := models.SessionStateAwaitingQuestion
	if rec.AnsweredCount()+1 >= rec.TotalQuestions {
		state = models.SessionStateEvaluating
	}
	return &interviewapimodels.SubmitAnswerView{
		Feedback: eval.Feedback,
		Score:    eval.Score,
		State:    state,
	}, nil
}

func (i impl) Finalize(userID, id string) (*interviewapimodels.ResultsView, error) {
	rec, err := i.getInterview(userID, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == models.InterviewStatusCompleted {
		// повторный finalize возвращает сохраненный результат
		return i.buildResults(rec), nil
	}
	if deriveState(rec) != models.SessionStateEvaluating {
		return nil, errors.New("итоговая оценка доступна после ответа на все вопросы")
	}

	turns := rec.ToTurns()
	promptTurns := make([]aiapimodels.TurnScoreData, 0, len(turns))
	for _, turn := range turns {
		promptTurns = append(promptTurns, aiapimodels.TurnScoreData{
			Question: turn.Question.Text,
			Answer:   turn.Answer,
			Score:    turn.Score,
		})
	}
	feedback, err := i.gpt.GenerateFeedback(rec.ID, aiapimodels.FeedbackPromptData{
		Position:   rec.Position,
		Difficulty: rec.Difficulty,
		Type:       rec.Type,
		Turns:      promptTurns,
	})
	if err != nil {
		// все ответы уже сохранены, finalize можно повторить без перегенерации вопросов
		return nil, err
	}
	if feedback == nil {
		// неразборчивый ответ ИИ: среднее по оценкам ответов, списки пустые
		feedback = &aiapimodels.InterviewFeedback{
			OverallScore: meanScore(turns),
			Strengths:    []string{},
			Improvements: []string{},
		}
	}
	err = i.interviewStore.Complete(userID, rec.ID, feedback.OverallScore, feedback.Strengths, feedback.Improvements)
	if err != nil {
		log.
			WithField("interview_id", rec.ID).
			WithError(err).
			Error("ошибка завершения интервью")
		return nil, errors.New("ошибка завершения интервью")
	}
	completed, err := i.getInterview(userID, rec.ID)
	if err != nil {
		return nil, err
	}
	return i.buildResults(completed), nil
}

func (i impl) Cancel(userID, id string) error {
	rec, err := i.getInterview(userID, id)
	if err != nil {
		return err
	}
	switch rec.Status {
	case models.InterviewStatusCompleted:
		return errors.New("завершенное интервью нельзя отменить")
	case models.InterviewStatusCancelled:
		return nil
	}
	updMap := map[string]interface{}{
		"status": models.InterviewStatusCancelled,
	}
	err = i.interviewStore.Update(userID, id, updMap)
	if err != nil {
		log.
			WithField("interview_id", id).
			WithError(err).
			Error("ошибка отмены интервью")
		return errors.New("ошибка отмены интервью")
	}
	return nil
}

func (i impl) List(userID string, pagination apimodels.Pagination) ([]interviewapimodels.InterviewView, int64, error) {
	page, limit := pagination.GetPage()
	rowCount, err := i.interviewStore.ListCount(userID)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения кол-ва интервью")
	}
	recs, err := i.interviewStore.List(userID, page, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка интервью")
	}
	list := make([]interviewapimodels.InterviewView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list, rowCount, nil
}

func (i impl) ListFull(userID string) ([]dbmodels.Interview, error) {
	count, err := i.interviewStore.ListCount(userID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кол-ва интервью")
	}
	return i.interviewStore.List(userID, 1, int(count))
}

func (i impl) GetFull(userID, id string) (*dbmodels.Interview, error) {
	return i.getInterview(userID, id)
}

func (i impl) GetResults(userID, id string) (*interviewapimodels.ResultsView, error) {
	rec, err := i.getInterview(userID, id)
	if err != nil {
		return nil, err
	}
	return i.buildResults(rec), nil
}

func (i impl) getInterview(userID, id string) (*dbmodels.Interview, error) {
	rec, err := i.interviewStore.GetByID(userID, id)
	if err != nil {
		log.
			WithField("interview_id", id).
			WithError(err).
			Error("ошибка получения интервью")
		return nil, errors.New("ошибка получения интервью")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (i impl) buildResults(rec *dbmodels.Interview) *interviewapimodels.ResultsView {
	return &interviewapimodels.ResultsView{
		Interview: rec.ToModel(),
		Turns:     rec.ToTurns(),
	}
}

// meanScore - среднее по оценкам ответов с округлением до 1 знака
func meanScore(turns []interviewapimodels.TurnView) float64 {
	if len(turns) == 0 {
		return 0
	}
	sum := float64(0)
	for _, turn := range turns {
		sum += turn.Score
	}
	return math.Round(sum/float64(len(turns))*10) / 10
}
