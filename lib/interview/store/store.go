package interviewstore

import (
	"ai-interview-backend/models"
	dbmodels "ai-interview-backend/models/db"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Interview) (id string, err error)
	GetByID(userID, id string) (rec *dbmodels.Interview, err error)
	Update(userID, id string, updMap map[string]interface{}) error
	Complete(userID, id string, score float64, strengths, improvements []string) error
	List(userID string, page, limit int) (list []dbmodels.Interview, err error)
	ListCount(userID string) (count int64, err error)
	ListStale(updatedBefore time.Time) (list []dbmodels.Interview, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Interview) (id string, err error) {
	err = i.db.
		Omit("Questions").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(userID, id string) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Preload("Questions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_num ASC")
		}).
		Preload("Questions.Answer").
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

func (i impl) Update(userID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

// Complete переводит интервью в completed и заполняет итоговые поля одним обновлением.
// Условие по статусу исключает повторное завершение.
func (i impl) Complete(userID, id string, score float64, strengths, improvements []string) error {
	updMap := map[string]interface{}{
		"status":        models.InterviewStatusCompleted,
		"overall_score": score,
		"strengths":     pq.StringArray(strengths),
		"improvements":  pq.StringArray(improvements),
		"completed_at":  time.Now(),
	}
	tx := i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Where("status = ?", models.InterviewStatusInProgress).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("интервью не найдено или уже завершено")
	}
	return nil
}

func (i impl) List(userID string, page, limit int) (list []dbmodels.Interview, err error) {
	offset := (page - 1) * limit
	err = i.db.
		Model(&dbmodels.Interview{}).
		Where("user_id = ?", userID).
		Preload("Questions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_num ASC")
		}).
		Preload("Questions.Answer").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(userID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Interview{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListStale(updatedBefore time.Time) (list []dbmodels.Interview, err error) {
	err = i.db.
		Model(&dbmodels.Interview{}).
		Where("status = ?", models.InterviewStatusInProgress).
		Where("updated_at < ?", updatedBefore).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
