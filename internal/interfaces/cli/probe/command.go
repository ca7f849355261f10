package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subhub/internal/application/subscription/usecases"
	"github.com/orris-inc/subhub/internal/infrastructure/config"
	"github.com/orris-inc/subhub/internal/infrastructure/database"
	"github.com/orris-inc/subhub/internal/infrastructure/repository"
	"github.com/orris-inc/subhub/internal/infrastructure/scheduler"
	"github.com/orris-inc/subhub/internal/infrastructure/subconverter"
	"github.com/orris-inc/subhub/internal/shared/constants"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

const jobTimeout = 2 * time.Minute

var (
	env        string
	configPath string
	schedule   string
	minVersion string
	asJSON     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check that registered subconverters respond",
		Long: `Call /version on every registered subconverter and print the result.
Exits non-zero when any subconverter fails. With --schedule the probe keeps
running on a cron schedule until interrupted.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron schedule, e.g. \"*/5 * * * *\" (default: probe.schedule, run once when empty)")
	cmd.Flags().StringVar(&minVersion, "min-version", "", "Flag subconverters older than this version (default: probe.min_version)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if minVersion == "" {
		minVersion = cfg.Probe.MinVersion
	}
	if schedule == "" {
		schedule = cfg.Probe.Schedule
	}

	uc := usecases.NewProbeSubconvertersUseCase(
		repository.NewSubconverterRepository(database.Get(), log),
		subconverter.NewClient(cfg.Subconverter, log),
		nil,
		log,
	).WithMinVersion(minVersion)

	out := cmd.OutOrStdout()

	if schedule == "" {
		report, err := uc.Execute(cmd.Context())
		if err != nil {
			return err
		}
		if err := printReport(out, report, asJSON); err != nil {
			return err
		}
		if failed := report.Failed(); failed > 0 {
			return fmt.Errorf("%d of %d subconverters failed", failed, len(report.Results))
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := scheduler.NewCronScheduler("subconverter-probe", schedule,
		scheduler.JobFunc(func(ctx context.Context) error {
			report, err := uc.Execute(ctx)
			if err != nil {
				return err
			}
			return printReport(out, report, asJSON)
		}),
		jobTimeout, log)
	if err != nil {
		return err
	}
	if err := s.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	s.Stop()
	return nil
}

func printReport(w io.Writer, report *usecases.ProbeReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tURL\tSTATUS\tVERSION\tLATENCY")
	for _, r := range report.Results {
		status := "ok"
		switch {
		case !r.OK():
			status = "error: " + r.Error
		case r.Outdated:
			status = "outdated"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.SubconverterID, r.URL, status, r.Version, r.Duration.Round(time.Millisecond))
	}
	return tw.Flush()
}
