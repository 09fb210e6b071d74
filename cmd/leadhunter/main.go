// Command leadhunter is the operator CLI for lead assignment: it migrates
// and seeds the database, assigns leads on behalf of a user and reports
// workload, history and ownership drift.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/diewo77/lead-hunter/internal/config"
	"github.com/diewo77/lead-hunter/internal/db"
	"github.com/diewo77/lead-hunter/internal/logger"
	"github.com/diewo77/lead-hunter/internal/metrics"
	"github.com/diewo77/lead-hunter/internal/models"
	"github.com/diewo77/lead-hunter/internal/policy"
	"github.com/diewo77/lead-hunter/internal/services"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run executes one command line and releases everything it opened.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{cfg: config.Load()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

// app holds what the commands share. It is filled lazily by open so that
// --help and argument errors never touch the database.
type app struct {
	cfg *config.Config
	as  string

	log    *zap.Logger
	db     *gorm.DB
	gate   *policy.AuthGate
	assign *services.AssignmentService
	leads  *services.LeadService
	audit  *services.AuditService
}

func (a *app) open() error {
	if a.db != nil {
		return nil
	}
	log, err := logger.New(a.cfg.App)
	if err != nil {
		return err
	}
	a.log = log

	conn, err := db.Open(a.cfg.Database, log)
	if err != nil {
		return err
	}
	a.db = conn

	// Run migrations on startup if enabled
	if a.cfg.App.Migrations {
		if err := db.Migrate(conn); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrations completed")
	}

	a.gate = policy.NewAuthGate(conn, a.cfg.Assignment.ActorCacheSize, a.cfg.Assignment.ActorCacheTTL)
	a.assign = services.NewAssignmentService(conn, log, a.cfg.Assignment.BulkConcurrency)
	a.leads = services.NewLeadService(conn)
	a.audit = services.NewAuditService(conn, log)
	return nil
}

// actor loads the user named by --as.
func (a *app) actor(ctx context.Context) (*models.User, error) {
	if a.as == "" {
		return nil, errors.New("--as <email> is required")
	}
	u, err := a.gate.LoadActorByEmail(ctx, a.as)
	if err != nil {
		return nil, fmt.Errorf("acting user: %w", err)
	}
	return u, nil
}

func (a *app) close() error {
	var errs []error
	if a.cfg.Metrics.TextfilePath != "" && a.log != nil {
		if err := metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
			errs = append(errs, fmt.Errorf("metrics textfile: %w", err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return errors.Join(errs...)
}
