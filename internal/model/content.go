package model

import (
	"time"

	"gorm.io/gorm"
)

// Scheme is a government scheme listed on the home page.
type Scheme struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Category string `gorm:"index"`
	Link     *string
}

func (Scheme) TableName() string {
	return "schemes"
}

// QuickLink is an entry of one of the home page link panels.
type QuickLink struct {
	gorm.Model
	Section     string `gorm:"index;not null"`
	Label       string `gorm:"not null"`
	URL         string
	Highlighted bool
	Position    int
}

func (QuickLink) TableName() string {
	return "quick_links"
}

// DailyQuizID is the primary key of the single published quiz row.
const DailyQuizID = 1

// DailyQuiz is the quiz of the day. At most one row exists.
type DailyQuiz struct {
	ID            uint `gorm:"primaryKey"`
	Question      string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	Explanation   string
	PublishedAt   time.Time
}

func (DailyQuiz) TableName() string {
	return "daily_quiz"
}

// SimpleJob is a one line job notice shown in the regional job lists.
type SimpleJob struct {
	gorm.Model
	Title            string `gorm:"not null"`
	Region           string `gorm:"index;not null"`
	LastDate         string
	NotificationLink string
}

func (SimpleJob) TableName() string {
	return "simple_jobs"
}

// HomeCard is an entry of the home page ticker cards.
type HomeCard struct {
	gorm.Model
	Category string `gorm:"index;not null"`
	Title    string `gorm:"not null"`
	LastDate string
	Position int
}

func (HomeCard) TableName() string {
	return "home_cards"
}

// DefaultHomeCards are the ticker entries a fresh database starts with.
func DefaultHomeCards() []*HomeCard {
	seed := []struct{ category, title string }{
		{"latestJobs", "Rajasthan Police Constable 2026"},
		{"latestJobs", "REET Mains Level-1"},
		{"latestJobs", "SSC CGL 2026"},
		{"latestJobs", "RPSC 2nd Grade"},
		{"latestJobs", "Indian Army Agniveer"},
		{"admitCards", "UPSC Prelims Admit Card"},
		{"admitCards", "RSMSSB LDC Hall Ticket"},
		{"results", "Rajasthan Board 12th Result"},
		{"results", "SSC GD Final Result"},
	}

	cards := make([]*HomeCard, 0, len(seed))
	for i, s := range seed {
		cards = append(cards, &HomeCard{Category: s.category, Title: s.title, LastDate: "30 Feb", Position: i + 1})
	}
	return cards
}
