package models

import "time"

type Complaint struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Category     string `gorm:"type:varchar(50);not null"`
	Description  string `gorm:"type:text;not null"`
	EvidenceFile string `gorm:"type:varchar(100);default:'default.jpg'"`
	Status       string `gorm:"type:varchar(20);default:'Pending'"`
	CreatedAt    time.Time
	ResolvedAt   *time.Time `gorm:"type:timestamp"`
	UserID       uint       `gorm:"not null;index"`
	User         User       `gorm:"foreignKey:UserID"`
}
