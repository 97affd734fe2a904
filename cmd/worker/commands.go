package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/planny/planny-backend/config"
	"github.com/planny/planny-backend/internal/bootstrap"
	"github.com/planny/planny-backend/internal/logging"
	"github.com/planny/planny-backend/internal/planning/catalog"
	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/planning/gantt"
	"github.com/planny/planny-backend/internal/projects/domain"
	"github.com/planny/planny-backend/internal/storage/postgres"
)

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(logging.Options{Level: cfg.App.LogLevel, Production: cfg.IsProduction()})
	return cfg, logger, nil
}

func timelineCmd() *cobra.Command {
	var (
		projectType string
		start       string
		deadline    string
		features    string
		sprints     int
		mode        string
		span        string
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Preview the generated tasks and Gantt rows for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.Planner.Mode = mode
			}
			if span != "" {
				cfg.Planner.Span = span
			}

			startDate, err := plan.ParseDate(start)
			if err != nil {
				return err
			}
			deadlineDate, err := plan.ParseDate(deadline)
			if err != nil {
				return err
			}

			in := domain.Input{
				Name:        "preview",
				Type:        projectType,
				StartDate:   startDate,
				Deadline:    deadlineDate,
				Features:    domain.ParseFeatures(strings.ReplaceAll(features, ";", "\n")),
				SprintCount: sprints,
			}
			if err := in.Validate(); err != nil {
				return err
			}

			svc, err := bootstrap.NewProjectService(cfg, nil, nil, logger)
			if err != nil {
				return err
			}
			typeTasks, featureTasks, err := svc.Schedule(in)
			if err != nil {
				return err
			}

			all := append(typeTasks, featureTasks...)
			items := make([]gantt.Item, 0, len(all))
			for i, it := range all {
				items = append(items, gantt.Item{
					ID:    fmt.Sprintf("%d", i+1),
					Title: it.Title,
					Start: it.Start,
					End:   it.End,
				})
			}
			rows := gantt.Project(items, plan.NewDateRange(startDate, deadlineDate),
				gantt.Options{WindowDays: cfg.Planner.SprintDays, SprintCount: sprints})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderWorkItems(all))
			fmt.Fprintln(out, renderGantt(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectType, "type", "t", string(catalog.WebDevelopment), "Project type")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&features, "features", "f", "", "Feature list separated by ';'")
	cmd.Flags().IntVarP(&sprints, "sprints", "s", 0, "Sprint count (0 chooses automatically)")
	cmd.Flags().StringVar(&mode, "mode", "", "Distribution mode: sprint or legacy")
	cmd.Flags().StringVar(&span, "span", "", "Sprint span: subdivide or shared")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("deadline")

	return cmd
}

func progressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Project progress maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "recompute",
		Short: "Recompute stored progress for every project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			db, err := postgres.NewConnection(ctx, &cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			svc, err := bootstrap.NewProjectService(cfg, db, nil, logger)
			if err != nil {
				return err
			}
			n, err := svc.RefreshProgress(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d project(s) updated\n", styleOK.Render("done"), n)
			return nil
		},
	})
	return cmd
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List project types and their task templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.Planner.CatalogPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(cat))
			return nil
		},
	}
}
