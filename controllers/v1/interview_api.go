package apiv1

import (
	"ai-interview-backend/controllers"
	pdfexport "ai-interview-backend/lib/export/pdf"
	xlsexport "ai-interview-backend/lib/export/xls"
	filestorage "ai-interview-backend/lib/file-storage"
	"ai-interview-backend/lib/interview"
	"ai-interview-backend/middleware"
	apimodels "ai-interview-backend/models/api"
	interviewapimodels "ai-interview-backend/models/api/interview"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type interviewApiController struct {
	controllers.BaseAPIController
}

func InitInterviewApiRouters(app *fiber.App) {
	controller := interviewApiController{}
	app.Route("interview", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Get("list", controller.list)
		router.Get("export", controller.export)
		router.Get(":id/state", controller.state)
		router.Post(":id/question", controller.generateQuestion)
		router.Post(":id/answer", controller.submitAnswer)
		router.Post(":id/finalize", controller.finalize)
		router.Post(":id/cancel", controller.cancel)
		router.Get(":id/results", controller.results)
		router.Get(":id/report", controller.report)
	})
}

func (c *interviewApiController) handleError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, interview.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
}

// @Summary Создать интервью
// @Tags Интервью
// @Description Создать интервью с фиксированным кол-вом вопросов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		interviewapimodels.CreateRequest	true	"request body"
// @Success 201 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview [post]
func (c *interviewApiController) create(ctx *fiber.Ctx) error {
	var payload interviewapimodels.CreateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := interview.Instance.Create(userID, payload)
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Список интервью пользователя
// @Tags Интервью
// @Description Список интервью пользователя, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   limit	query		int	false	"записей на странице"
// @Param   page	query		int	false	"страница"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/list [get]
func (c *interviewApiController) list(ctx *fiber.Ctx) error {
	pagination := apimodels.Pagination{
		Limit: ctx.QueryInt("limit"),
		Page:  ctx.QueryInt("page"),
	}
	userID := middleware.GetUserID(ctx)
	list, rowCount, err := interview.Instance.List(userID, pagination)
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Состояние сессии интервью
// @Tags Интервью
// @Description Текущее состояние сессии, восстановленное из сохраненных данных
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id		path		string	true	"идентификатор интервью"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.StateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/state [get]
func (c *interviewApiController) state(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := interview.Instance.GetState(userID, ctx.Params("id"))
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Сгенерировать следующий вопрос
// @Tags Интервью
// @Description Сгенерировать и сохранить следующий вопрос интервью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id		path		string	true	"идентификатор интервью"
// @Success 201 {object} apimodels.Response{data=interviewapimodels.QuestionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/question [post]
func (c *interviewApiController) generateQuestion(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := interview.Instance.GenerateQuestion(userID, ctx.Params("id"))
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Отправить ответ на вопрос
// @Tags Интервью
// @Description Отправить ответ, получить оценку и фидбек
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id		path		string	true	"идентификатор интервью"
// @Param	body				body		interviewapimodels.SubmitAnswerRequest	true	"request body"
// @Success 201 {object} apimodels.Response{data=interviewapimodels.SubmitAnswerView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/answer [post]
func (c *interviewApiController) submitAnswer(ctx *fiber.Ctx) error {
	var payload interviewapimodels.SubmitAnswerRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := interview.Instance.SubmitAnswer(userID, ctx.Params("id"), payload)
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Завершить интервью
// @Tags Интервью
// @Description Итоговая оценка и завершение интервью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id		path		string	true	"идентификатор интервью"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.ResultsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/finalize [post]
func (c *interviewApiController) finalize(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := interview.Instance.Finalize(userID, ctx.Params("id"))
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отменить интервью
// @Tags Интервью
// @Description Отменить интервью без итоговой оценки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id		path		string	true	"идентификатор интервью"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/cancel [post]
func (c *interviewApiController) cancel(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	err := interview.Instance.Cancel(userID, ctx.Params("id"))
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Результаты интервью
// @Tags Интервью
// @Description Результаты интервью с разбивкой по вопросам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id		path		string	true	"идентификатор интервью"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.ResultsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/results [get]
func (c *interviewApiController) results(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := interview.Instance.GetResults(userID, ctx.Params("id"))
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary PDF отчет по интервью
// @Tags Интервью
// @Description Сформировать pdf отчет, сохранить в хранилище и вернуть ссылку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id		path		string	true	"идентификатор интервью"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/{id}/report [get]
func (c *interviewApiController) report(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	rec, err := interview.Instance.GetFull(userID, ctx.Params("id"))
	if err != nil {
		return c.handleError(ctx, err)
	}
	pdfFile, err := pdfexport.GenerateInterviewReport(*rec)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	objectName := fmt.Sprintf("reports/%s/%s.pdf", rec.ID, uuid.NewString())
	link, err := filestorage.Instance.SaveReport(ctx.Context(), objectName, pdfFile)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(interviewapimodels.ReportView{URL: link}))
}

// @Summary Экспорт истории интервью
// @Tags Интервью
// @Description Экспорт истории интервью пользователя в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/export [get]
func (c *interviewApiController) export(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := interview.Instance.ListFull(userID)
	if err != nil {
		return c.handleError(ctx, err)
	}
	buf, err := xlsexport.Instance.ExportInterviewList(list)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="interviews.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
