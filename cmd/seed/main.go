package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/roosterplan/backend/internal/config"
	"github.com/roosterplan/backend/internal/repository"
	"github.com/roosterplan/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: random employees, 2: labels and assignments, 3: availability patterns, 4: random shifts)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
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
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, it does not dial the database.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 1:
		if n <= 0 {
			slog.Error("number of employees must be positive")
			return
		}
		seed.SeedEmployees(repo, n, cfg.Seed.Employee.Password, cfg.Email.EmployeeDomain)
	case 2:
		seed.SeedLabelsAndAssignments(repo)
	case 3:
		seed.SeedPatterns(repo)
	case 4:
		if n <= 0 {
			slog.Error("number of shifts must be positive")
			return
		}
		seed.SeedShifts(repo, n)
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
