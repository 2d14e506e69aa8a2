package tester

import (
	"os"
	"path/filepath"

	"github.com/emrgen/jobpost/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testPath = "../../.test/"
)

var (
	db *gorm.DB
)

// dbFile is named after the package under test so packages can run in
// parallel.
func dbFile() string {
	name := "jobpost"
	if wd, err := os.Getwd(); err == nil {
		name = filepath.Base(wd)
	}
	return filepath.Join(testPath, "db", name+".db")
}

func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(filepath.Join(testPath, "db"), os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(dbFile()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

// ResetDB empties every table between tests.
func ResetDB() {
	for _, table := range []string{"job_post_revisions", "job_posts", "schemes", "quick_links", "daily_quiz", "simple_jobs", "home_cards"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			panic(err)
		}
	}
}

func RemoveDBFile() {
	err := os.RemoveAll(dbFile())
	if err != nil {
		panic(err)
	}
}
