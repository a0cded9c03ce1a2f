package user

import (
	c "fintrack/internal/core/domain/common"
	"time"
)

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	Email             c.Email
	Name              string
	PasswordHash      PasswordHash
	CreatedAt         time.Time
	PasswordChangedAt c.Optional[time.Time]
}
