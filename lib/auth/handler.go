package authhandler

import (
	"ai-interview-backend/config"
	"ai-interview-backend/db"
	emailverify "ai-interview-backend/lib/email-verify"
	usersstore "ai-interview-backend/lib/users/store"
	authutils "ai-interview-backend/lib/utils/auth-utils"
	authapimodels "ai-interview-backend/models/api/auth"
	userapimodels "ai-interview-backend/models/api/user"
	dbmodels "ai-interview-backend/models/db"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Register(req authapimodels.RegisterRequest) error
	Login(email, password string) (response authapimodels.JWTResponse, err error)
	RefreshToken(refreshToken string) (response authapimodels.JWTResponse, err error)
	Me(ctx *fiber.Ctx) (userapimodels.UserView, error)
	VerifyEmail(code string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		emailVerify: emailverify.NewInstance(config.Conf.Smtp.EmailSendVerification),
		usersStore:  usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	emailVerify emailverify.Provider
	usersStore  usersstore.Provider
}

func (i impl) Register(req authapimodels.RegisterRequest) error {
	logger := log.WithField("email", req.Email)
	exist, err := i.usersStore.ExistByEmail(req.Email)
	if err != nil {
		logger.WithError(err).Error("ошибка проверки почты")
		return errors.New("ошибка проверки почты")
	}
	if exist {
		return errors.New("пользователь с такой почтой уже зарегистрирован")
	}
	rec := dbmodels.User{
		Email:     req.Email,
		Password:  authutils.GetMD5Hash(req.Password),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  false,
	}
	_, err = i.usersStore.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания пользователя")
		return errors.New("ошибка создания пользователя")
	}
	err = i.emailVerify.SendVerifyCode(req.Email)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки кода подтверждения")
		return errors.New("ошибка отправки кода подтверждения")
	}
	return nil
}

func (i impl) Login(email, password string) (response authapimodels.JWTResponse, err error) {
	logger := log.WithField("email", email)
	user, err := i.usersStore.FindByEmail(email, false)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска пользователя по почте")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("пользователь с такой почтой не найден")
		return authapimodels.JWTResponse{}, errors.New("пользователь с такой почтой не найден")
	}
	if authutils.GetMD5Hash(password) != user.Password {
		logger.Debug("пользователь не прошел проверку пароля")
		return authapimodels.JWTResponse{}, errors.New("пользователь не прошел проверку пароля")
	}
	if !user.IsActive {
		return authapimodels.JWTResponse{}, errors.New("почта пользователя не подтверждена")
	}
	response, err = i.issueTokens(*user)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.usersStore.Update(user.ID, map[string]interface{}{"last_login": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления даты последнего входа")
	}
	return response, nil
}

func (i impl) RefreshToken(refreshToken string) (response authapimodels.JWTResponse, err error) {
	claims, err := authutils.ParseToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.New("refresh token не прошел проверку")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return authapimodels.JWTResponse{}, errors.New("refresh token не прошел проверку")
	}
	user, err := i.usersStore.GetByID(sub)
	if err != nil {
		log.WithError(err).Error("ошибка получения данных пользователя")
		return authapimodels.JWTResponse{}, errors.New("ошибка получения данных пользователя")
	}
	if user == nil || !user.IsActive {
		return authapimodels.JWTResponse{}, errors.New("пользователь не найден")
	}
	return i.issueTokens(*user)
}

func (i impl) Me(ctx *fiber.Ctx) (userapimodels.UserView, error) {
	claims := authutils.GetClaims(ctx)
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return userapimodels.UserView{}, errors.New("пользователь не найден")
	}
	user, err := i.usersStore.GetByID(sub)
	if err != nil {
		log.WithError(err).Error("ошибка получения данных пользователя")
		return userapimodels.UserView{}, errors.New("ошибка получения данных пользователя")
	}
	if user == nil {
		return userapimodels.UserView{}, errors.New("пользователь не найден")
	}
	return user.ToModel(), nil
}

func (i impl) VerifyEmail(code string) error {
	return i.emailVerify.VerifyCode(code)
}

func (i impl) issueTokens(user dbmodels.User) (response authapimodels.JWTResponse, err error) {
	token, err := authutils.GetToken(user.ID, user.GetFullName())
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	refresh, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refresh,
	}, nil
}
