package scheduler

import (
	"time"

	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/models"
	"github.com/drdjodjepetkovic/palmoticeva-v2-sub000/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// HistoryMaintenanceStore is the slice of the store the refresh job needs.
type HistoryMaintenanceStore interface {
	ListUserIDs() ([]uint, error)
	LoadHistory(userID uint) ([]models.Cycle, models.UserStatistics, error)
	Save(userID uint, cycles []models.Cycle, stats models.UserStatistics) error
}

// StatsRefresher periodically re-derives every user's rolling averages so the
// persisted statistics cannot drift from the cycle history (e.g. after manual
// data surgery or a partially deployed bugfix). Per-user failures are logged
// and skipped; the job never aborts the sweep.
type StatsRefresher struct {
	cronEngine *cron.Cron
	store      HistoryMaintenanceStore
	log        *logrus.Logger
	cronSpec   string
}

func NewStatsRefresher(store HistoryMaintenanceStore, log *logrus.Logger, cronSpec string, location *time.Location) *StatsRefresher {
	if location == nil {
		location = time.UTC
	}
	return &StatsRefresher{
		cronEngine: cron.New(cron.WithLocation(location)),
		store:      store,
		log:        log,
		cronSpec:   cronSpec,
	}
}

func (refresher *StatsRefresher) Start() error {
	if _, err := refresher.cronEngine.AddFunc(refresher.cronSpec, refresher.RefreshAllUsers); err != nil {
		return err
	}
	refresher.cronEngine.Start()
	refresher.log.WithField("spec", refresher.cronSpec).Info("statistics refresh job scheduled")
	return nil
}

func (refresher *StatsRefresher) Stop() {
	ctx := refresher.cronEngine.Stop()
	<-ctx.Done()
	refresher.log.Info("statistics refresh job stopped")
}

// RefreshAllUsers runs one full sweep. Exposed so a deployment can trigger it
// out of schedule after data surgery.
func (refresher *StatsRefresher) RefreshAllUsers() {
	userIDs, err := refresher.store.ListUserIDs()
	if err != nil {
		refresher.log.WithError(err).Error("statistics refresh: list users failed")
		return
	}

	refreshed := 0
	for _, userID := range userIDs {
		changed, err := refresher.refreshUser(userID)
		if err != nil {
			refresher.log.WithError(err).WithField("user_id", userID).Error("statistics refresh: user skipped")
			continue
		}
		if changed {
			refreshed++
		}
	}

	refresher.log.WithFields(logrus.Fields{"users": len(userIDs), "refreshed": refreshed}).Info("statistics refresh sweep finished")
}

func (refresher *StatsRefresher) refreshUser(userID uint) (bool, error) {
	cycles, stats, err := refresher.store.LoadHistory(userID)
	if err != nil {
		return false, err
	}

	recomputed := services.Recalculate(cycles, stats)
	if recomputed.Equal(stats) {
		return false, nil
	}
	if err := refresher.store.Save(userID, cycles, recomputed); err != nil {
		return false, err
	}
	return true, nil
}
