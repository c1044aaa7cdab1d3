package gpthandler

import (
	"ai-interview-backend/config"
	"ai-interview-backend/db"
	ailogstore "ai-interview-backend/lib/gpt/store"
	yagptclient "ai-interview-backend/lib/gpt/yagpt-client"
	aiapimodels "ai-interview-backend/models/api/ai"
	dbmodels "ai-interview-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	GenerateQuestion(interviewID string, data aiapimodels.QuestionPromptData) (question string, err error)
	EvaluateAnswer(interviewID string, data aiapimodels.EvaluatePromptData) (eval aiapimodels.AnswerEvaluation, err error)
	GenerateFeedback(interviewID string, data aiapimodels.FeedbackPromptData) (feedback *aiapimodels.InterviewFeedback, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		logStore: ailogstore.NewInstance(db.DB),
	}
}

type impl struct {
	logStore ailogstore.Provider
}

func (i impl) getYaClient() yagptclient.Provider {
	return yagptclient.NewClient(
		config.Conf.YandexGPT.IAMToken,
		config.Conf.YandexGPT.CatalogID,
		time.Second*time.Duration(config.Conf.YandexGPT.TimeoutInSec),
		config.Conf.YandexGPT.Temperature,
	)
}

func (i impl) GenerateQuestion(interviewID string, data aiapimodels.QuestionPromptData) (string, error) {
	userPromt := buildQuestionPromt(data)
	answer, err := i.getYaClient().
		GenerateByPromtAndText(InterviewerSysPromt, userPromt)
	if err != nil {
		log.
			WithField("interview_id", interviewID).
			WithError(err).
			Error("ошибка генерации вопроса через YandexGPT")
		return "", err
	}
	i.saveLog(interviewID, InterviewerSysPromt, userPromt, answer, dbmodels.AiGenerateQuestionType)

	question := strings.TrimSpace(answer)
	if question == "" {
		return "", errors.New("сервис генерации вернул пустой вопрос")
	}
	return question, nil
}

func (i impl) EvaluateAnswer(interviewID string, data aiapimodels.EvaluatePromptData) (aiapimodels.AnswerEvaluation, error) {
	userPromt := buildEvaluatePromt(data)
	answer, err := i.getYaClient().
		GenerateByPromtAndText(InterviewerSysPromt, userPromt)
	if err != nil {
		log.
			WithField("interview_id", interviewID).
			WithError(err).
			Error("ошибка оценки ответа через YandexGPT")
		return aiapimodels.AnswerEvaluation{}, err
	}
	i.saveLog(interviewID, InterviewerSysPromt, userPromt, answer, dbmodels.AiEvaluateAnswerType)

	return parseEvaluation(answer), nil
}

func (i impl) GenerateFeedback(interviewID string, data aiapimodels.FeedbackPromptData) (*aiapimodels.InterviewFeedback, error) {
	userPromt := buildFeedbackPromt(data)
	answer, err := i.getYaClient().
		GenerateByPromtAndText(InterviewerSysPromt, userPromt)
	if err != nil {
		log.
			WithField("interview_id", interviewID).
			WithError(err).
			Error("ошибка генерации итоговой оценки через YandexGPT")
		return nil, err
	}
	i.saveLog(interviewID, InterviewerSysPromt, userPromt, answer, dbmodels.AiGenerateFeedbackType)

	return parseFeedback(answer), nil
}

// saveLog сохраняет обмен с ИИ, ошибка сохранения не прерывает основной сценарий
func (i impl) saveLog(interviewID, sysPromt, userPromt, answer string, reqType dbmodels.AiReqestType) {
	rec := dbmodels.AiLog{
		SysPromt:    sysPromt,
		UserPromt:   userPromt,
		Answer:      answer,
		InterviewID: interviewID,
		ReqestType:  reqType,
		AiName:      dbmodels.AiYaGptType,
	}
	_, err := i.logStore.Save(rec)
	if err != nil {
		log.
			WithField("interview_id", interviewID).
			WithError(err).
			Error("ошибка сохранения лога обращения к ИИ")
	}
}
