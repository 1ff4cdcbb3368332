package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	FullName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(120);uniqueIndex;not null"`
	MatricNo     string `gorm:"type:varchar(20);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(200);not null"`
	HostelName   string `gorm:"type:varchar(50)"`
	RoomNumber   string `gorm:"type:varchar(10)"`
	Role         string `gorm:"type:varchar(10);not null;default:'student'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
