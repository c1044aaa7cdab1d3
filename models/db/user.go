package dbmodels

import (
	userapimodels "ai-interview-backend/models/api/user"
	"fmt"
	"time"
)

type User struct {
	BaseModel
	Password  string `gorm:"type:varchar(128)"`
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	Email     string `gorm:"type:varchar(255);uniqueIndex"`
	IsActive  bool
	LastLogin time.Time
}

func (r User) ToModel() userapimodels.UserView {
	return userapimodels.UserView{
		ID:        r.ID,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		IsActive:  r.IsActive,
	}
}

func (r User) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}
