package yagptclient

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	yandexgptclient "github.com/sheeiavellie/go-yandexgpt"
)

// Ошибки внешнего сервиса генерации, различаются для сообщений пользователю
var (
	ErrRateLimited   = errors.New("сервис генерации перегружен, повторите попытку позже")
	ErrQuotaExceeded = errors.New("исчерпана квота запросов к сервису генерации")
)

type Provider interface {
	GenerateByPromtAndText(promt, text string) (generatedText string, err error)
}

type impl struct {
	client      *yandexgptclient.YandexGPTClient
	catalogID   string
	timeout     time.Duration
	temperature float32
}

func NewClient(token, catalog string, timeout time.Duration, temperature float32) Provider {
	return impl{
		client:      yandexgptclient.NewYandexGPTClientWithIAMToken(token),
		catalogID:   catalog,
		timeout:     timeout,
		temperature: temperature,
	}
}

func (i impl) GenerateByPromtAndText(promt, text string) (generatedText string, err error) {
	request := yandexgptclient.YandexGPTRequest{
		ModelURI: yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModelLite),
		CompletionOptions: yandexgptclient.YandexGPTCompletionOptions{
			Stream:      false,
			Temperature: i.temperature,
			MaxTokens:   2000,
		},
		Messages: []yandexgptclient.YandexGPTMessage{
			{
				Role: yandexgptclient.YandexGPTMessageRoleSystem,
				Text: promt,
			},
			{
				Role: yandexgptclient.YandexGPTMessageRoleUser,
				Text: text,
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
	defer cancel()
	response, err := i.client.CreateRequest(ctx, request)
	if err != nil {
		return "", classifyError(err)
	}
	if len(response.Result.Alternatives) == 0 {
		return "", errors.New("API YandexGPT вернул пустой ответ")
	}
	return response.Result.Alternatives[0].Message.Text, nil
}

// classifyError отделяет временные отказы от исчерпания квоты
func classifyError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") || strings.Contains(msg, "rate"):
		return ErrRateLimited
	case strings.Contains(msg, "quota") || strings.Contains(msg, "resource exhausted"):
		return ErrQuotaExceeded
	}
	return errors.Wrap(err, "Ошибка при отправке запроса на генерацию в API YandexGPT")
}
