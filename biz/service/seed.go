package service

import (
	"context"
	"log"

	"github.com/yi-nology/opsboard/biz/service/seed"
	"github.com/yi-nology/opsboard/pkg/config"
)

// EnsureSeedData runs the seeder in its configured mode at startup.
func EnsureSeedData(ctx context.Context, seeder *seed.Seeder) error {
	summary, err := seeder.Run(ctx)
	if err != nil {
		return err
	}
	if summary.Skipped {
		log.Printf("[Init] Seed skipped: %s", summary.Reason)
		return nil
	}
	log.Printf("[Init] Seeded %d projects, %d profiles, %d components, %d hosts, %d deployment configs, %d service instances",
		summary.Projects, summary.Profiles, summary.Components, summary.Infrastructure,
		summary.DeploymentConfigs, summary.ServiceInstances)
	if summary.UnmatchedServices > 0 {
		log.Printf("[Init] %d service names had no matching component", summary.UnmatchedServices)
	}
	return nil
}

// Reseed wipes and regenerates the dataset regardless of the configured mode.
func (s *Service) Reseed(ctx context.Context) (*seed.Summary, error) {
	if s.seeder == nil {
		return nil, ErrSeedingUnavailable
	}
	return s.seeder.RunMode(ctx, config.SeedModeAlways)
}
