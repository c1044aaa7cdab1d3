package interview

import (
	"ai-interview-backend/models"
	apimodels "ai-interview-backend/models/api"
	aiapimodels "ai-interview-backend/models/api/ai"
	interviewapimodels "ai-interview-backend/models/api/interview"
	dbmodels "ai-interview-backend/models/db"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const testUserID = "2e9c9aae-7c39-4031-8cde-52b287c2fc92"

type fakeStore struct {
	interviews map[string]*dbmodels.Interview
	questions  map[string]*dbmodels.InterviewQuestion
	answers    map[string]*dbmodels.InterviewAnswer // по идентификатору вопроса
	nextID     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		interviews: map[string]*dbmodels.Interview{},
		questions:  map[string]*dbmodels.InterviewQuestion{},
		answers:    map[string]*dbmodels.InterviewAnswer{},
	}
}

func (f *fakeStore) newID() string {
	f.nextID++
	return fmt.Sprintf("id-%v", f.nextID)
}

func (f *fakeStore) Create(rec dbmodels.Interview) (string, error) {
	rec.ID = f.newID()
	rec.CreatedAt = time.Now()
	f.interviews[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeStore) GetByID(userID, id string) (*dbmodels.Interview, error) {
	stored, ok := f.interviews[id]
	if !ok || stored.UserID != userID {
		return nil, nil
	}
	rec := *stored
	rec.Questions = nil
	for _, q := range f.questions {
		if q.InterviewID != id {
			continue
		}
		question := *q
		if answer, ok := f.answers[q.ID]; ok {
			answerCopy := *answer
			question.Answer = &answerCopy
		}
		rec.Questions = append(rec.Questions, question)
	}
	sort.Slice(rec.Questions, func(i, j int) bool {
		return rec.Questions[i].OrderNum < rec.Questions[j].OrderNum
	})
	return &rec, nil
}

func (f *fakeStore) Update(userID, id string, updMap map[string]interface{}) error {
	stored, ok := f.interviews[id]
	if !ok || stored.UserID != userID {
		return errors.New("запись не найдена")
	}
	if status, ok := updMap["status"]; ok {
		stored.Status = status.(models.InterviewStatus)
	}
	return nil
}

func (f *fakeStore) Complete(userID, id string, score float64, strengths, improvements []string) error {
	stored, ok := f.interviews[id]
	if !ok || stored.UserID != userID || stored.Status != models.InterviewStatusInProgress {
		return errors.New("интервью не найдено или уже завершено")
	}
	now := time.Now()
	stored.Status = models.InterviewStatusCompleted
	stored.OverallScore = &score
	stored.Strengths = pq.StringArray(strengths)
	stored.Improvements = pq.StringArray(improvements)
	stored.CompletedAt = &now
	return nil
}

func (f *fakeStore) List(userID string, page, limit int) (list []dbmodels.Interview, err error) {
	for id, rec := range f.interviews {
		if rec.UserID != userID {
			continue
		}
		full, _ := f.GetByID(userID, id)
		list = append(list, *full)
	}
	return list, nil
}

func (f *fakeStore) ListCount(userID string) (int64, error) {
	count := int64(0)
	for _, rec := range f.interviews {
		if rec.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) ListStale(updatedBefore time.Time) (list []dbmodels.Interview, err error) {
	for _, rec := range f.interviews {
		if rec.Status == models.InterviewStatusInProgress && rec.UpdatedAt.Before(updatedBefore) {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeStore) CreateQuestion(rec dbmodels.InterviewQuestion) (string, error) {
	rec.ID = f.newID()
	f.questions[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeStore) GetQuestionByID(interviewID, id string) (*dbmodels.InterviewQuestion, error) {
	stored, ok := f.questions[id]
	if !ok || stored.InterviewID != interviewID {
		return nil, nil
	}
	rec := *stored
	if answer, ok := f.answers[id]; ok {
		answerCopy := *answer
		rec.Answer = &answerCopy
	}
	return &rec, nil
}

func (f *fakeStore) CreateAnswer(rec dbmodels.InterviewAnswer) (string, error) {
	if _, exist := f.answers[rec.QuestionID]; exist {
		return "", errors.New("duplicate key value violates unique constraint")
	}
	rec.ID = f.newID()
	f.answers[rec.QuestionID] = &rec
	return rec.ID, nil
}

// questionStoreAdapter подгоняет fakeStore под интерфейс хранилища вопросов
type questionStoreAdapter struct {
	store *fakeStore
}

func (a questionStoreAdapter) Create(rec dbmodels.InterviewQuestion) (string, error) {
	return a.store.CreateQuestion(rec)
}

func (a questionStoreAdapter) GetByID(interviewID, id string) (*dbmodels.InterviewQuestion, error) {
	return a.store.GetQuestionByID(interviewID, id)
}

func (a questionStoreAdapter) CreateAnswer(rec dbmodels.InterviewAnswer) (string, error) {
	return a.store.CreateAnswer(rec)
}

type fakeGpt struct {
	questionCalls int
	evalCalls     int
	feedbackCalls int
	questionErr   error
	evalScore     float64
	evalFeedback  string
	feedback      *aiapimodels.InterviewFeedback
	feedbackErr   error
}

func (f *fakeGpt) GenerateQuestion(interviewID string, data aiapimodels.QuestionPromptData) (string, error) {
	f.questionCalls++
	if f.questionErr != nil {
		err := f.questionErr
		f.questionErr = nil
		return "", err
	}
	return fmt.Sprintf("Вопрос номер %v из %v", data.OrderNum, data.Total), nil
}

func (f *fakeGpt) EvaluateAnswer(interviewID string, data aiapimodels.EvaluatePromptData) (aiapimodels.AnswerEvaluation, error) {
	f.evalCalls++
	return aiapimodels.AnswerEvaluation{
		Score:    f.evalScore,
		Feedback: f.evalFeedback,
	}, nil
}

func (f *fakeGpt) GenerateFeedback(interviewID string, data aiapimodels.FeedbackPromptData) (*aiapimodels.InterviewFeedback, error) {
	f.feedbackCalls++
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}
	return f.feedback, nil
}

func newTestHandler(gpt *fakeGpt) (impl, *fakeStore) {
	store := newFakeStore()
	handler := impl{
		interviewStore: store,
		questionStore:  questionStoreAdapter{store: store},
		gpt:            gpt,
	}
	return handler, store
}

func createTestInterview(t *testing.T, handler impl, totalQuestions int) string {
	view, err := handler.Create(testUserID, interviewapimodels.CreateRequest{
		Position:       "Разработчик Go",
		Difficulty:     models.DifficultyMiddle,
		Type:           models.InterviewTypeTechnical,
		TotalQuestions: totalQuestions,
	})
	require.Nil(t, err)
	require.Equal(t, models.InterviewStatusInProgress, view.Status)
	return view.ID
}

func TestInterviewLifecycle(t *testing.T) {
	t.Run(`create and derive state check`, func(t *testing.T) {
		gpt := &fakeGpt{evalScore: 7, evalFeedback: "неплохо"}
		handler, _ := newTestHandler(gpt)
		id := createTestInterview(t, handler, 3)

		state, err := handler.GetState(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, models.SessionStateAwaitingQuestion, state.State)
		require.Equal(t, 1, state.NextQuestionNum)
		require.Nil(t, state.CurrentQuestion)
		require.Empty(t, state.History)
	})

	t.Run(`question answer cycle check`, func(t *testing.T) {
		gpt := &fakeGpt{evalScore: 7, evalFeedback: "неплохо"}
		handler, _ := newTestHandler(gpt)
		id := createTestInterview(t, handler, 2)

		question, err := handler.GenerateQuestion(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, 1, question.OrderNum)

		// пока нет ответа, новый вопрос не генерируется
		_, err = handler.GenerateQuestion(testUserID, id)
		require.NotNil(t, err)
		require.Equal(t, 1, gpt.questionCalls)

		state, err := handler.GetState(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, models.SessionStateAwaitingAnswer, state.State)
		require.NotNil(t, state.CurrentQuestion)
		require.Equal(t, question.ID, state.CurrentQuestion.ID)

		answer, err := handler.SubmitAnswer(testUserID, id, interviewapimodels.SubmitAnswerRequest{
			QuestionID: question.ID,
			Text:       "использую контекст и каналы",
		})
		require.Nil(t, err)
		require.Equal(t, float64(7), answer.Score)
		require.Equal(t, "неплохо", answer.Feedback)
		require.Equal(t, models.SessionStateAwaitingQuestion, answer.State)

		// повторный ответ на закрытый вопрос отклоняется
		_, err = handler.SubmitAnswer(testUserID, id, interviewapimodels.SubmitAnswerRequest{
			QuestionID: question.ID,
			Text:       "другой ответ",
		})
		require.NotNil(t, err)

		state, err = handler.GetState(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, models.SessionStateAwaitingQuestion, state.State)
		require.Equal(t, 2, state.NextQuestionNum)
		require.Len(t, state.History, 1)
	})

	t.Run(`generation failure keeps numbering check`, func(t *testing.T) {
		gpt := &fakeGpt{evalScore: 7, questionErr: errors.New("сервис недоступен")}
		handler, store := newTestHandler(gpt)
		id := createTestInterview(t, handler, 2)

		_, err := handler.GenerateQuestion(testUserID, id)
		require.NotNil(t, err)
		// несгенерированный вопрос не сохраняется
		require.Empty(t, store.questions)

		question, err := handler.GenerateQuestion(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, 1, question.OrderNum)
		require.Len(t, store.questions, 1)
	})

	t.Run(`full interview with ai feedback check`, func(t *testing.T) {
		gpt := &fakeGpt{
			evalScore:    8,
			evalFeedback: "хорошо",
			feedback: &aiapimodels.InterviewFeedback{
				OverallScore: 8.5,
				Strengths:    []string{"глубокие знания"},
				Improvements: []string{"больше примеров"},
			},
		}
		handler, _ := newTestHandler(gpt)
		id := createTestInterview(t, handler, 3)

		for num := 1; num <= 3; num++ {
			question, err := handler.GenerateQuestion(testUserID, id)
			require.Nil(t, err)
			require.Equal(t, num, question.OrderNum)
			answer, err := handler.SubmitAnswer(testUserID, id, interviewapimodels.SubmitAnswerRequest{
				QuestionID: question.ID,
				Text:       fmt.Sprintf("ответ %v", num),
			})
			require.Nil(t, err)
			if num < 3 {
				require.Equal(t, models.SessionStateAwaitingQuestion, answer.State)
			} else {
				require.Equal(t, models.SessionStateEvaluating, answer.State)
			}
		}

		// все вопросы заданы, новый не генерируется
		_, err := handler.GenerateQuestion(testUserID, id)
		require.NotNil(t, err)

		results, err := handler.Finalize(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, models.InterviewStatusCompleted, results.Interview.Status)
		require.NotNil(t, results.Interview.OverallScore)
		require.Equal(t, 8.5, *results.Interview.OverallScore)
		require.Equal(t, []string{"глубокие знания"}, results.Interview.Strengths)
		require.Equal(t, []string{"больше примеров"}, results.Interview.Improvements)
		require.Len(t, results.Turns, 3)
		for idx, turn := range results.Turns {
			require.Equal(t, idx+1, turn.Question.OrderNum)
		}

		// повторный finalize возвращает сохраненный результат без обращения к ИИ
		again, err := handler.Finalize(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, 1, gpt.feedbackCalls)
		require.Equal(t, *results.Interview.OverallScore, *again.Interview.OverallScore)
	})

	t.Run(`finalize fallback to mean score check`, func(t *testing.T) {
		gpt := &fakeGpt{evalFeedback: "ok"}
		handler, _ := newTestHandler(gpt)
		id := createTestInterview(t, handler, 3)

		scores := []float64{8, 6, 8}
		for num := 1; num <= 3; num++ {
			gpt.evalScore = scores[num-1]
			question, err := handler.GenerateQuestion(testUserID, id)
			require.Nil(t, err)
			_, err = handler.SubmitAnswer(testUserID, id, interviewapimodels.SubmitAnswerRequest{
				QuestionID: question.ID,
				Text:       fmt.Sprintf("ответ %v", num),
			})
			require.Nil(t, err)
		}

		// неразборчивый ответ ИИ: среднее по оценкам, списки пустые
		results, err := handler.Finalize(testUserID, id)
		require.Nil(t, err)
		require.NotNil(t, results.Interview.OverallScore)
		require.Equal(t, 7.3, *results.Interview.OverallScore)
		require.Empty(t, results.Interview.Strengths)
		require.Empty(t, results.Interview.Improvements)
	})

	t.Run(`finalize failure is retryable check`, func(t *testing.T) {
		gpt := &fakeGpt{evalScore: 6, evalFeedback: "ok", feedbackErr: errors.New("сервис недоступен")}
		handler, _ := newTestHandler(gpt)
		id := createTestInterview(t, handler, 1)

		question, err := handler.GenerateQuestion(testUserID, id)
		require.Nil(t, err)
		_, err = handler.SubmitAnswer(testUserID, id, interviewapimodels.SubmitAnswerRequest{
			QuestionID: question.ID,
			Text:       "ответ",
		})
		require.Nil(t, err)

		_, err = handler.Finalize(testUserID, id)
		require.NotNil(t, err)

		// ответы сохранены, повтор завершает интервью
		state, err := handler.GetState(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, models.SessionStateEvaluating, state.State)

		gpt.feedbackErr = nil
		gpt.feedback = &aiapimodels.InterviewFeedback{OverallScore: 6, Strengths: []string{}, Improvements: []string{}}
		results, err := handler.Finalize(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, models.InterviewStatusCompleted, results.Interview.Status)
	})

	t.Run(`finalize before all answers check`, func(t *testing.T) {
		gpt := &fakeGpt{evalScore: 7, evalFeedback: "ok"}
		handler, _ := newTestHandler(gpt)
		id := createTestInterview(t, handler, 2)

		_, err := handler.Finalize(testUserID, id)
		require.NotNil(t, err)
		require.Equal(t, 0, gpt.feedbackCalls)
	})

	t.Run(`cancel check`, func(t *testing.T) {
		gpt := &fakeGpt{evalScore: 7, evalFeedback: "ok"}
		handler, _ := newTestHandler(gpt)
		id := createTestInterview(t, handler, 2)

		require.Nil(t, handler.Cancel(testUserID, id))
		state, err := handler.GetState(testUserID, id)
		require.Nil(t, err)
		require.Equal(t, models.SessionStateCancelled, state.State)

		// повторная отмена без ошибки
		require.Nil(t, handler.Cancel(testUserID, id))

		// после отмены вопросы не генерируются
		_, err = handler.GenerateQuestion(testUserID, id)
		require.NotNil(t, err)
	})

	t.Run(`cancel completed check`, func(t *testing.T) {
		gpt := &fakeGpt{
			evalScore:    7,
			evalFeedback: "ok",
			feedback:     &aiapimodels.InterviewFeedback{OverallScore: 7, Strengths: []string{}, Improvements: []string{}},
		}
		handler, _ := newTestHandler(gpt)
		id := createTestInterview(t, handler, 1)

		question, err := handler.GenerateQuestion(testUserID, id)
		require.Nil(t, err)
		_, err = handler.SubmitAnswer(testUserID, id, interviewapimodels.SubmitAnswerRequest{
			QuestionID: question.ID,
			Text:       "ответ",
		})
		require.Nil(t, err)
		_, err = handler.Finalize(testUserID, id)
		require.Nil(t, err)

		require.NotNil(t, handler.Cancel(testUserID, id))
	})

	t.Run(`foreign interview not found check`, func(t *testing.T) {
		gpt := &fakeGpt{evalScore: 7, evalFeedback: "ok"}
		handler, _ := newTestHandler(gpt)
		id := createTestInterview(t, handler, 2)

		_, err := handler.GetState("другой-пользователь", id)
		require.ErrorIs(t, err, ErrNotFound)
		_, err = handler.GetResults(testUserID, "неизвестный-id")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run(`list check`, func(t *testing.T) {
		gpt := &fakeGpt{evalScore: 7, evalFeedback: "ok"}
		handler, _ := newTestHandler(gpt)
		createTestInterview(t, handler, 2)
		createTestInterview(t, handler, 3)

		list, rowCount, err := handler.List(testUserID, apimodels.Pagination{})
		require.Nil(t, err)
		require.Equal(t, int64(2), rowCount)
		require.Len(t, list, 2)
	})
}

func TestMeanScore(t *testing.T) {
	t.Run(`rounding check`, func(t *testing.T) {
		turns := []interviewapimodels.TurnView{{Score: 8}, {Score: 6}, {Score: 8}}
		require.Equal(t, 7.3, meanScore(turns))
		require.Equal(t, 7.0, meanScore([]interviewapimodels.TurnView{{Score: 8}, {Score: 6}, {Score: 7}}))
		require.Equal(t, float64(0), meanScore(nil))
		require.Equal(t, 5.5, meanScore([]interviewapimodels.TurnView{{Score: 5}, {Score: 6}}))
	})
}

func TestDeriveState(t *testing.T) {
	score := float64(7)
	t.Run(`state from persisted rows check`, func(t *testing.T) {
		rec := &dbmodels.Interview{TotalQuestions: 2, Status: models.InterviewStatusInProgress}
		require.Equal(t, models.SessionStateAwaitingQuestion, deriveState(rec))

		rec.Questions = []dbmodels.InterviewQuestion{{OrderNum: 1, Text: "вопрос"}}
		require.Equal(t, models.SessionStateAwaitingAnswer, deriveState(rec))

		rec.Questions[0].Answer = &dbmodels.InterviewAnswer{Text: "ответ", Score: &score}
		require.Equal(t, models.SessionStateAwaitingQuestion, deriveState(rec))

		rec.Questions = append(rec.Questions, dbmodels.InterviewQuestion{
			OrderNum: 2,
			Text:     "вопрос",
			Answer:   &dbmodels.InterviewAnswer{Text: "ответ", Score: &score},
		})
		require.Equal(t, models.SessionStateEvaluating, deriveState(rec))

		rec.Status = models.InterviewStatusCompleted
		require.Equal(t, models.SessionStateCompleted, deriveState(rec))

		rec.Status = models.InterviewStatusCancelled
		require.Equal(t, models.SessionStateCancelled, deriveState(rec))
	})
}
