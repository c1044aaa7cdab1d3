package gpthandler

import (
	aiapimodels "ai-interview-backend/models/api/ai"
	"fmt"
	"strings"
)

const (
	InterviewerSysPromt = "Ты — нейросеть, выступаешь в роли опытного интервьюера по найму. Отвечай на русском языке."

	GenQuestionTemplate = `Проводится %s (уровень: %s) на должность "%s".
Сформулируй вопрос №%d из %d.
Уже заданные вопросы (не повторяй их и не задавай близких по смыслу):
%s
В ответе верни только текст вопроса, без нумерации и пояснений.`

	EvaluateAnswerTemplate = `Проводится %s (уровень: %s) на должность "%s".
Вопрос: %s
Ответ кандидата: %s
Оцени ответ по шкале от 1 до 10 и дай короткий фидбек.
Формат ответа: строго JSON вида {"score": 7, "feedback": "…"}, без другого текста.`

	GenFeedbackTemplate = `Завершено %s (уровень: %s) на должность "%s".
История вопросов, ответов и оценок:
%s
Подведи итог: общая оценка от 1 до 10, сильные стороны и зоны роста кандидата.
Формат ответа: строго JSON вида {"overallScore": 7.5, "strengths": ["…"], "improvements": ["…"]}, без другого текста.`
)

func buildQuestionPromt(data aiapimodels.QuestionPromptData) string {
	asked := "- нет"
	if len(data.Asked) > 0 {
		sb := strings.Builder{}
		for _, q := range data.Asked {
			sb.WriteString(fmt.Sprintf("- %s\n", q))
		}
		asked = strings.TrimRight(sb.String(), "\n")
	}
	return fmt.Sprintf(GenQuestionTemplate, data.Type.ToHuman(), data.Difficulty.ToHuman(), data.Position, data.OrderNum, data.Total, asked)
}

func buildEvaluatePromt(data aiapimodels.EvaluatePromptData) string {
	return fmt.Sprintf(EvaluateAnswerTemplate, data.Type.ToHuman(), data.Difficulty.ToHuman(), data.Position, data.Question, data.Answer)
}

func buildFeedbackPromt(data aiapimodels.FeedbackPromptData) string {
	sb := strings.Builder{}
	for idx, turn := range data.Turns {
		sb.WriteString(fmt.Sprintf("Вопрос %d: %s\nОтвет: %s\nОценка: %v\n", idx+1, turn.Question, turn.Answer, turn.Score))
	}
	return fmt.Sprintf(GenFeedbackTemplate, data.Type.ToHuman(), data.Difficulty.ToHuman(), data.Position, strings.TrimRight(sb.String(), "\n"))
}
