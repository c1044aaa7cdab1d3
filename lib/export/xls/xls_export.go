package xlsexport

import (
	dbmodels "ai-interview-backend/models/db"
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportInterviewList(list []dbmodels.Interview) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var interviewHeaders = []string{"Должность", "Тип", "Сложность", "Вопросов", "Отвечено", "Статус", "Итоговая оценка", "Дата создания", "Дата завершения"}

func (i impl) ExportInterviewList(list []dbmodels.Interview) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, interviewHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeInterviewData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Интервью")
	return f.WriteToBuffer()
}

func writeInterviewData(f *excelize.File, sheet string, list []dbmodels.Interview, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(interviewHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Должность"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Position); err != nil {
			return row, err
		}
		// "Тип"
		col++
		if err := writeColumn(f, sheet, col, row, item.Type.ToHuman()); err != nil {
			return row, err
		}
		// "Сложность"
		col++
		if err := writeColumn(f, sheet, col, row, item.Difficulty.ToHuman()); err != nil {
			return row, err
		}
		// "Вопросов"
		col++
		if err := writeColumn(f, sheet, col, row, item.TotalQuestions); err != nil {
			return row, err
		}
		// "Отвечено"
		col++
		if err := writeColumn(f, sheet, col, row, item.AnsweredCount()); err != nil {
			return row, err
		}
		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}
		// "Итоговая оценка"
		col++
		score := ""
		if item.OverallScore != nil {
			score = fmt.Sprintf("%.1f", *item.OverallScore)
		}
		if err := writeColumn(f, sheet, col, row, score); err != nil {
			return row, err
		}
		// "Дата создания"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}
		// "Дата завершения"
		col++
		completedAt := ""
		if item.CompletedAt != nil {
			completedAt = item.CompletedAt.Format("02.01.2006 15:04")
		}
		if err := writeColumn(f, sheet, col, row, completedAt); err != nil {
			return row, err
		}
	}
	return row, nil
}
