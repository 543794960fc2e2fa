// seed 寫入內建的學習路線與選擇題；重複執行不會產生重複資料
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"nexthire/internal/config"
	"nexthire/internal/database"
	"nexthire/internal/logger"
	"nexthire/internal/seed"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	loadSeed        = seed.Load
	exitFunc        = os.Exit
)

type options struct {
	reset bool
	file  string
}

func parseFlags(args []string) (*options, error) {
	fs := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	opts := &options{}
	fs.BoolVar(&opts.reset, "reset", false, "先退回所有 migration 再重建 (會刪除全部資料)")
	fs.StringVarP(&opts.file, "file", "f", "", "改用指定的 JSON 檔案")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func readData(file string) (*seed.Data, error) {
	if file == "" {
		return seed.Default()
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return seed.Parse(raw)
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	zl := newLogger(cfg.Debug(), cfg.LogFile)
	defer func() { _ = zl.Sync() }()

	// 寫入前先完成驗證
	data, err := readData(opts.file)
	if err != nil {
		return fmt.Errorf("讀取種子資料失敗: %v", err)
	}

	if opts.reset {
		zl.Warn("rolling back all migrations")
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Rollback 執行失敗: %v", err)
		}
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	res, err := loadSeed(context.Background(), db, data, zl)
	if err != nil {
		return err
	}
	zl.Info("seed finished",
		zap.Int("roadmaps_created", res.RoadmapsCreated),
		zap.Int("roadmaps_skipped", res.RoadmapsSkipped),
		zap.Int("mcqs_created", res.MCQsCreated),
		zap.Int("mcqs_skipped", res.MCQsSkipped),
	)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
