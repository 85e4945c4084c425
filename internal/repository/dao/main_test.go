package dao

import (
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() || os.Getenv("SKIP_DB_TESTS") != "" {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("docker unavailable, skipping database tests: %v", err)
		os.Exit(m.Run())
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("docker unavailable, skipping database tests: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=contest",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=contest_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("host=localhost port=%s user=contest password=secret dbname=contest_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 90 * time.Second
	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}
		testDB = db

		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres: %v", err)
	}

	os.Exit(code)
}

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("database tests need docker")
	}

	return testDB
}
