package pdfexport

import (
	dbmodels "ai-interview-backend/models/db"
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateInterviewReport формирует pdf отчет по завершенному интервью
func GenerateInterviewReport(rec dbmodels.Interview) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateInterviewReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, "Отчет по интервью", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Должность: %s", rec.Position), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Тип: %s, уровень: %s", rec.Type.ToHuman(), rec.Difficulty.ToHuman()), "", 1, "L", false, 0, "")
	if rec.OverallScore != nil {
		pdf.CellFormat(0, 8, fmt.Sprintf("Итоговая оценка: %.1f из 10", *rec.OverallScore), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	_, lineHt := pdf.GetFontSize()
	for _, q := range rec.Questions {
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(0, lineHt+2, fmt.Sprintf("Вопрос %d. %s", q.OrderNum, q.Text), "", "L", false)
		if q.Answer == nil {
			continue
		}
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, lineHt+2, fmt.Sprintf("Ответ: %s", q.Answer.Text), "", "L", false)
		if q.Answer.Score != nil {
			pdf.MultiCell(0, lineHt+2, fmt.Sprintf("Оценка: %.1f. %s", *q.Answer.Score, q.Answer.Feedback), "", "L", false)
		}
		pdf.Ln(2)
	}

	writeList(pdf, lineHt, "Сильные стороны:", rec.Strengths)
	writeList(pdf, lineHt, "Зоны роста:", rec.Improvements)

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeList(pdf *fpdf.Fpdf, lineHt float64, title string, items []string) {
	if len(items) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.MultiCell(0, lineHt+2, title, "", "L", false)
	pdf.SetFont("Arial", "", 12)
	for _, item := range items {
		pdf.MultiCell(0, lineHt+2, fmt.Sprintf("- %s", item), "", "L", false)
	}
	pdf.Ln(2)
}
