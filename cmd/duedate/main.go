// @title			Due Date API
// @version		1.0
// @description	Computes task due dates in working hours (Mon-Fri, 09:00-17:00 UTC).
// @BasePath		/api/v1

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mtlprog/duedate/internal/config"
	"github.com/mtlprog/duedate/internal/database"
	"github.com/mtlprog/duedate/internal/handler"
	"github.com/mtlprog/duedate/internal/logger"
	"github.com/mtlprog/duedate/internal/repository"
	"github.com/mtlprog/duedate/internal/service"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "duedate",
		Usage: "Due-date calculator for working hours (Mon-Fri, 09:00-17:00 UTC)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL for storing tasks (optional)",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(os.Stderr, logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "calculate",
				Usage: "Print the due date for a submission",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "submitted",
						Aliases:  []string{"s"},
						Usage:    "Submission timestamp, ISO8601 with timezone (e.g. 2025-05-20T10:00:00Z)",
						Required: true,
					},
					&cli.Float64Flag{
						Name:     "hours",
						Aliases:  []string{"t"},
						Usage:    "Turnaround in working hours",
						Required: true,
					},
				},
				Action: runCalculate,
			},
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "overdue",
				Usage:  "List stored tasks whose due date has passed",
				Action: runOverdue,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runCalculate(c *cli.Context) error {
	submitted := c.String("submitted")
	hours := c.Float64("hours")

	dueAt, err := service.CalculateDueDate(submitted, hours)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	slog.Debug("due date calculated", "submitted_at", submitted, "turnaround_hours", hours, "due_at", dueAt)
	fmt.Fprintln(c.App.Writer, dueAt)
	return nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	calculator := service.NewCalculator(config.DefaultCalendar())
	h := handler.New(calculator)

	if databaseURL := c.String("database-url"); databaseURL != "" {
		db, err := database.Open(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		taskService := service.NewTaskService(repository.NewTaskRepository(db.Pool()), calculator)
		h.WithTasks(taskService, db)
	} else {
		slog.Info("no database configured, task endpoints disabled")
	}

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runOverdue(c *cli.Context) error {
	ctx := c.Context

	databaseURL := c.String("database-url")
	if databaseURL == "" {
		return cli.Exit("overdue requires --database-url or DATABASE_URL", 1)
	}

	db, err := database.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	taskService := service.NewTaskService(repository.NewTaskRepository(db.Pool()), service.NewCalculator(config.DefaultCalendar()))

	tasks, err := taskService.ListOverdue(ctx)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", task.ID, service.FormatDueDate(task.DueAt), task.Title)
	}

	slog.Info("overdue tasks listed", "count", len(tasks))
	return nil
}
