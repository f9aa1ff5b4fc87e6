package scheduler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/config"
)

const (
	FinishReservationsJob = "finish_reservations"
	PruneSessionsJob      = "prune_sessions"
)

// ReservationFinisher moves elapsed confirmed reservations to FINISHED.
type ReservationFinisher interface {
	FinishElapsed(ctx context.Context) (int64, error)
}

// SessionPruner drops expired login sessions.
type SessionPruner interface {
	Prune() int
}

// RegisterMaintenanceJobs adds the booking housekeeping jobs to s.
func RegisterMaintenanceJobs(s *Service, cfg config.SchedulerConfig, finisher ReservationFinisher, pruner SessionPruner) error {
	if finisher == nil || pruner == nil {
		return fmt.Errorf("maintenance jobs require a reservation finisher and a session pruner")
	}
	if _, err := s.AddJob(FinishReservationsJob, cfg.FinishReservationsCron, finishReservations(finisher)); err != nil {
		return fmt.Errorf("register %s: %w", FinishReservationsJob, err)
	}
	if _, err := s.AddJob(PruneSessionsJob, cfg.PruneSessionsCron, pruneSessions(pruner)); err != nil {
		return fmt.Errorf("register %s: %w", PruneSessionsJob, err)
	}
	return nil
}

func finishReservations(finisher ReservationFinisher) Task {
	return func(ctx context.Context) error {
		finished, err := finisher.FinishElapsed(ctx)
		if err != nil {
			return err
		}
		if finished > 0 {
			log.Ctx(ctx).Info().Int64("finished", finished).Msg("Marked elapsed reservations finished")
		}
		return nil
	}
}

func pruneSessions(pruner SessionPruner) Task {
	return func(ctx context.Context) error {
		if pruned := pruner.Prune(); pruned > 0 {
			log.Ctx(ctx).Info().Int("pruned", pruned).Msg("Pruned expired sessions")
		}
		return nil
	}
}
