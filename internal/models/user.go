package models

import "time"

type User struct {
	ID             string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;type:text" json:"-"`
	FullName       string    `gorm:"column:full_name;type:text" json:"full_name"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }
