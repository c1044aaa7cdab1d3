package staleworker

import (
	"ai-interview-backend/config"
	"ai-interview-backend/db"
	interviewstore "ai-interview-backend/lib/interview/store"
	baseworker "ai-interview-backend/lib/utils/base-worker"
	"ai-interview-backend/models"
	"context"
	"time"
)

// отмена брошенных интервью: in_progress без активности дольше настроенного срока
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:       *baseworker.NewInstance("StaleInterviewWorker", 30*time.Second, time.Minute*time.Duration(config.Conf.Interview.StaleCheckInMinutes)),
		interviewStore: interviewstore.NewInstance(db.DB),
		staleAfter:     time.Hour * time.Duration(config.Conf.Interview.StaleAfterInHours),
	}
	go i.Run(ctx, func(ctx context.Context) {
		i.handle()
	})
}

type impl struct {
	baseworker.BaseImpl
	interviewStore interviewstore.Provider
	staleAfter     time.Duration
}

func (i impl) handle() {
	logger := i.GetLogger()
	list, err := i.interviewStore.ListStale(time.Now().Add(-i.staleAfter))
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка брошенных интервью")
		return
	}
	for _, rec := range list {
		updMap := map[string]interface{}{
			"status": models.InterviewStatusCancelled,
		}
		err = i.interviewStore.Update(rec.UserID, rec.ID, updMap)
		if err != nil {
			logger.WithError(err).
				WithField("interview_id", rec.ID).
				Error("ошибка отмены брошенного интервью")
			continue
		}
		logger.
			WithField("interview_id", rec.ID).
			Info("брошенное интервью отменено")
	}
}
