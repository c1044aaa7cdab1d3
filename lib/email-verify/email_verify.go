package emailverify

import (
	"ai-interview-backend/config"
	"ai-interview-backend/db"
	emailverifystore "ai-interview-backend/lib/email-verify/store"
	"ai-interview-backend/lib/smtp"
	usersstore "ai-interview-backend/lib/users/store"
	dbmodels "ai-interview-backend/models/db"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const daysToExpires = 14

type Provider interface {
	SendVerifyCode(email string) error
	VerifyCode(code string) error
}

func NewInstance(emailFrom string) Provider {
	return &impl{
		verifyStore: emailverifystore.NewInstance(db.DB),
		emailFrom:   emailFrom,
	}
}

type impl struct {
	verifyStore emailverifystore.Provider
	emailFrom   string
}

func (i impl) SendVerifyCode(email string) error {
	exist, err := i.verifyStore.Exist(email)
	if err != nil {
		return err
	}
	if exist {
		return errors.New("код подтверждения для этой почты уже отправлен")
	}
	verifyData := dbmodels.EmailVerify{
		Email:         email,
		Code:          uuid.NewString(),
		DateGenerated: time.Now(),
		DateExpires:   time.Now().Add(time.Hour * 24 * daysToExpires),
	}
	err = i.verifyStore.Create(verifyData)
	if err != nil {
		return err
	}
	message := fmt.Sprintf("Ссылка для подтверждения почты: %s/api/v1/auth/verify-email?code=%s", config.Conf.Smtp.DomainForVerifyLink, verifyData.Code)
	err = smtp.Instance.SendEMail(i.emailFrom, email, message, "Подтверждение почты")
	if err != nil {
		return err
	}
	return nil
}

func (i impl) VerifyCode(code string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		verifyStore := emailverifystore.NewInstance(tx)
		userStore := usersstore.NewInstance(tx)

		email, err := applyCode(code, verifyStore)
		if err != nil {
			return err
		}
		return activateUser(email, userStore)
	})
	return err
}

func applyCode(code string, verifyStore emailverifystore.Provider) (email string, err error) {
	verifyData, err := verifyStore.GetByCode(code)
	if err != nil {
		return "", err
	}
	if verifyData == nil {
		return "", errors.New("указанный код не найден")
	}
	if !verifyData.DateUsed.IsZero() {
		return "", errors.New("указанный код уже использован")
	}
	if verifyData.DateExpires.Before(time.Now()) {
		return "", errors.New("срок указанного кода истек")
	}
	logger := log.WithField("email", verifyData.Email)

	updMap := map[string]interface{}{
		"date_used": time.Now(),
	}
	err = verifyStore.UpdateByCode(code, updMap)
	if err != nil {
		logger.WithError(err).Error("емайл не подтвержден, ошибка обновления таблицы EmailVerify")
		return "", errors.New("ошибка применения кода")
	}
	return verifyData.Email, nil
}

func activateUser(email string, userStore usersstore.Provider) error {
	logger := log.WithField("email", email)

	user, err := userStore.FindByEmail(email, false)
	if err != nil {
		logger.WithError(err).Error("емайл не подтвержден, ошибка получения данных пользователя")
		return errors.New("ошибка получения данных пользователя")
	}
	if user == nil {
		logger.Error("емайл не подтвержден, пользователь не найден")
		return errors.New("пользователь не найден")
	}
	err = userStore.Update(user.ID, map[string]interface{}{"is_active": true})
	if err != nil {
		logger.WithError(err).Error("емайл не подтвержден, ошибка активации пользователя")
		return errors.New("ошибка активации пользователя")
	}
	logger.Info("емайл подтвержден")
	return nil
}
