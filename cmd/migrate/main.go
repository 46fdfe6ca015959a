package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/config"
	"github.com/iliyamo/eldercare-records/internal/database"
	"github.com/iliyamo/eldercare-records/internal/logger"
)

func main() {
	cmd := flag.String("cmd", "up", "up | down | version | force")
	steps := flag.Int("steps", 0, "number of steps for up/down (0 = all for up, 1 for down)")
	version := flag.Int("version", -1, "target version for force")
	dir := flag.String("path", "migrations", "directory holding the migration files")
	flag.Parse()

	_ = config.LoadDotEnv()
	lc := config.LoadLogConfig()
	log, err := logger.New(lc.Level, lc.Format, "eldercare-migrate")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := config.LoadDB()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	m, err := migrate.New("file://"+*dir, database.MigrateURL(db.User, db.Pass, db.Host, db.Port, db.Name))
	if err != nil {
		log.Fatal("migration init failed", zap.Error(err))
	}
	defer m.Close()
	m.Log = migrateLogger{log.Sugar()}

	switch *cmd {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		n := *steps
		if n < 1 {
			n = 1
		}
		err = m.Steps(-n)
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return
		}
		if verr != nil {
			log.Fatal("version failed", zap.Error(verr))
		}
		fmt.Printf("version: %d dirty: %v\n", v, dirty)
		return
	case "force":
		if *version < 0 {
			log.Fatal("force requires -version")
		}
		err = m.Force(*version)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("migration failed", zap.String("cmd", *cmd), zap.Error(err))
	}
	log.Info("migration done", zap.String("cmd", *cmd))
}

type migrateLogger struct{ s *zap.SugaredLogger }

func (l migrateLogger) Printf(format string, v ...any) { l.s.Infof(format, v...) }
func (l migrateLogger) Verbose() bool                  { return false }
