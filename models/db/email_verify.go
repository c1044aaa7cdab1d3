package dbmodels

import "time"

type EmailVerify struct {
	Email         string `gorm:"type:varchar(255);index"`
	Code          string `gorm:"type:varchar(36);index"`
	DateGenerated time.Time
	DateExpires   time.Time
	DateUsed      time.Time
}
