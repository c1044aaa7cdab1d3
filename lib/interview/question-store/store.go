package questionstore

import (
	dbmodels "ai-interview-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.InterviewQuestion) (id string, err error)
	GetByID(interviewID, id string) (rec *dbmodels.InterviewQuestion, err error)
	CreateAnswer(rec dbmodels.InterviewAnswer) (id string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.InterviewQuestion) (id string, err error) {
	err = i.db.
		Omit("Answer").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(interviewID, id string) (*dbmodels.InterviewQuestion, error) {
	rec := dbmodels.InterviewQuestion{}
	err := i.db.
		Model(&dbmodels.InterviewQuestion{}).
		Where("id = ?", id).
		Where("interview_id = ?", interviewID).
		Preload("Answer").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) CreateAnswer(rec dbmodels.InterviewAnswer) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
