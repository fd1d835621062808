package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

// EntitlementJobs refreshes statutory annual leave totals for active
// relations. Tenure anniversaries move employees between entitlement tiers
// mid-year, so the refresh runs periodically rather than only at year start.
type EntitlementJobs struct {
	relationRepo employee.RelationRepository
	leaveService leave.Service
	clock        clock.Clock
}

func NewEntitlementJobs(relationRepo employee.RelationRepository, leaveService leave.Service, clk clock.Clock) *EntitlementJobs {
	return &EntitlementJobs{
		relationRepo: relationRepo,
		leaveService: leaveService,
		clock:        clk,
	}
}

// RefreshAnnualEntitlements recomputes the current-year annual total for
// every active relation. Used hours are preserved; a failing relation is
// logged and skipped so one bad row never stalls the sweep.
func (j *EntitlementJobs) RefreshAnnualEntitlements(ctx context.Context) error {
	relations, err := j.relationRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active relations: %w", err)
	}

	year := j.clock.Now().Year()
	var failed int
	for _, rel := range relations {
		if _, err := j.leaveService.RefreshAnnualEntitlement(ctx, rel.ID, year); err != nil {
			failed++
			slog.Error("Entitlement refresh failed", "relation_id", rel.ID, "year", year, "error", err)
		}
	}

	slog.Info("Entitlement refresh completed", "relations", len(relations), "failed", failed, "year", year)
	return nil
}
