package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrops/backoffice/internal/advance"
	advancePostgres "github.com/hrops/backoffice/internal/advance/postgres"
	"github.com/hrops/backoffice/internal/core/events"
	employeePostgres "github.com/hrops/backoffice/internal/employee/postgres"
	"github.com/hrops/backoffice/internal/increment"
	incrementPostgres "github.com/hrops/backoffice/internal/increment/postgres"
	"github.com/hrops/backoffice/internal/notification"
	"github.com/hrops/backoffice/pkg/logger"
	"github.com/hrops/backoffice/pkg/timeutil"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start scheduled workers such as the due-increment sweep.`,
}

// Sweep worker command
var sweepWorkerCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the salary increment sweep on a schedule",
	Long:  `Apply approved salary increments whose effective date has arrived, on the configured cron schedule.`,
	Run: func(cmd *cobra.Command, args []string) {
		startSweepWorker()
	},
}

var (
	sweepSchedule string
	runOnce       bool
)

func startSweepWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Logging.Format, config.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	clock := timeutil.SystemClock{}

	eventBus := events.NewEventBus(lg)
	dispatcher := notification.NewDispatcher(notification.NewLogSender(lg), lg)
	dispatcher.Register(eventBus)

	incrementRepo := incrementPostgres.NewIncrementRepository(db)
	employeeRepo := employeePostgres.NewEmployeeRepository(db)
	incrementService := increment.NewService(incrementRepo, employeeRepo, eventBus, clock, lg)

	advanceRepo := advancePostgres.NewAdvanceRepository(db)
	advanceService := advance.NewService(advanceRepo, eventBus, clock, lg)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		applied, err := incrementService.ApplyDueIncrements(ctx)
		if err != nil {
			lg.Error("increment sweep failed", "error", err)
		} else {
			lg.Info("increment sweep finished", "applied", len(applied))
		}

		overdue, err := advanceService.OverdueDeductions()
		if err != nil {
			lg.Error("overdue deduction check failed", "error", err)
			return
		}
		for _, d := range overdue {
			lg.Warn("deduction overdue",
				"advance_id", d.AdvanceID,
				"employee_id", d.EmployeeID,
				"due_date", d.Date,
				"amount", d.Amount)
		}
	}

	if runOnce {
		sweep()
		return
	}

	schedule := config.Sweep.Schedule
	if sweepSchedule != "" {
		schedule = sweepSchedule
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, sweep); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid sweep schedule %q: %v\n", schedule, err)
		os.Exit(1)
	}
	c.Start()

	lg.Info("sweep worker started", "schedule", schedule)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	lg.Info("received signal, shutting down sweep worker", "signal", sig)

	ctx := c.Stop()
	select {
	case <-ctx.Done():
		lg.Info("sweep worker shutdown complete")
	case <-time.After(30 * time.Second):
		lg.Warn("shutdown timeout reached, forcing exit")
	}
}

func init() {
	sweepWorkerCmd.Flags().StringVar(&sweepSchedule, "schedule", "", "Cron schedule for the sweep (overrides config)")
	sweepWorkerCmd.Flags().BoolVar(&runOnce, "once", false, "Run the sweep once and exit")

	workerCmd.AddCommand(sweepWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
