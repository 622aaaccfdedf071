// internal/models/user.go
package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel    `bson:",inline"`
	Name         string `json:"name" bson:"name" gorm:"size:100;not null"`
	Email        string `json:"email" bson:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" bson:"password" gorm:"column:password;size:255;not null"`
	IsAdmin      bool   `json:"isAdmin" bson:"isAdmin" gorm:"not null;default:false"`
}

// UserSummary is the public view of a user embedded in other responses.
type UserSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NormalizeEmail is applied before every email lookup and write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
