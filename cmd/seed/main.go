package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/config"
	"github.com/workhive-dev/hr-admin/backend/internal/repository"
	"github.com/workhive-dev/hr-admin/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var companyID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random employees, 2: insert a shift set, 3: insert random rotations, 4: insert random expenses)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&companyID, "company-id", 1, "company to seed")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial; ping to fail fast on a bad DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("employee count must be positive")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			employee := utils.GenerateRandomEmployee(companyID, cfg.Company.EmailDomain)
			if err := repo.CreateEmployee(employee); err != nil {
				slog.Error("failed to insert employee", slog.String("error", err.Error()))
				continue
			}
			cnt--
		}

		slog.Info("employees inserted", slog.Int("count", n-cnt))
	case 2:
		cnt := 0
		for _, shift := range utils.GenerateRandomShiftSet(companyID) {
			if err := repo.CreateShift(shift); err != nil {
				slog.Error("failed to insert shift", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("shifts inserted", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("rotation count must be positive")
			return
		}

		shiftIDs, err := repo.ListShiftIDs(companyID)
		if err != nil {
			slog.Error("failed to list shifts", slog.String("error", err.Error()))
			return
		}
		if len(shiftIDs) == 0 {
			slog.Error("no shifts to rotate, run op 2 first")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			rotation := utils.GenerateRandomRotation(companyID, shiftIDs)
			if err := repo.CreateRotation(rotation); err != nil {
				slog.Error("failed to insert rotation", slog.String("error", err.Error()))
				continue
			}
			cnt--
		}

		slog.Info("rotations inserted", slog.Int("count", n-cnt))
	case 4:
		if n <= 0 {
			slog.Error("expense count must be positive")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			expense := utils.GenerateRandomExpense(companyID, 1)
			if err := repo.CreateExpense(expense); err != nil {
				slog.Error("failed to insert expense", slog.String("error", err.Error()))
				continue
			}
			cnt--
		}

		slog.Info("expenses inserted", slog.Int("count", n-cnt))
	default:
		slog.Error("unknown operation")
	}
}
