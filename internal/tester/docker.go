package tester

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ory/dockertest/v3"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emrgen/jobpost/internal/model"
)

// DockerEnv enables the docker backed integration tests.
const DockerEnv = "JOBPOST_DOCKER_TESTS"

// DockerEnabled reports whether docker backed tests should run.
func DockerEnabled() bool {
	return os.Getenv(DockerEnv) != ""
}

// Services are the containers started for an integration test.
type Services struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// SetupDocker starts postgres and redis containers and returns clients for
// them together with a purge function.
func SetupDocker() (*Services, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, fmt.Errorf("could not construct pool: %w", err)
	}
	pool.MaxWait = 2 * time.Minute

	// uses pool to try to connect to Docker
	err = pool.Client.Ping()
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	// run database
	pg, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=emrgen",
		"POSTGRES_PASSWORD=emrgen",
		"POSTGRES_DB=jobpost",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not start postgres: %w", err)
	}

	rd, err := pool.Run("redis", "7-alpine", nil)
	if err != nil {
		_ = pool.Purge(pg)
		return nil, nil, fmt.Errorf("could not start redis: %w", err)
	}

	purge := func() {
		if err := pool.Purge(pg); err != nil {
			logrus.Errorf("could not purge postgres: %s", err)
		}

		if err := pool.Purge(rd); err != nil {
			logrus.Errorf("could not purge redis: %s", err)
		}
	}

	services := &Services{}
	dsn := fmt.Sprintf("host=localhost port=%s user=emrgen password=emrgen dbname=jobpost sslmode=disable", pg.GetPort("5432/tcp"))
	err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return err
		}
		services.DB = db
		return nil
	})
	if err != nil {
		purge()
		return nil, nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	if err := model.Migrate(services.DB); err != nil {
		purge()
		return nil, nil, err
	}

	services.Redis = redis.NewClient(&redis.Options{Addr: "localhost:" + rd.GetPort("6379/tcp")})
	err = pool.Retry(func() error {
		return services.Redis.Ping(context.Background()).Err()
	})
	if err != nil {
		purge()
		return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return services, purge, nil
}
