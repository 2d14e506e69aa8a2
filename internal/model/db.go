package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&JobPost{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&JobPostRevision{}); err != nil {
		return err
	}

	// home cards are seeded once, when their table is first created
	seedCards := !db.Migrator().HasTable(&HomeCard{})
	if err := db.AutoMigrate(&Scheme{}, &QuickLink{}, &DailyQuiz{}, &SimpleJob{}, &HomeCard{}); err != nil {
		return err
	}
	if seedCards {
		if err := db.Create(DefaultHomeCards()).Error; err != nil {
			return err
		}
	}

	return nil
}
