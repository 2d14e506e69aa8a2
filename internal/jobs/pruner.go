package jobs

import (
	"context"

	"github.com/sirupsen/logrus"
)

// RevisionStore drops old revisions.
type RevisionStore interface {
	PruneRevisions(ctx context.Context, keep int) (int64, error)
}

var _ CronJob = (*RevisionPruner)(nil)

// RevisionPruner keeps the newest revisions of every post and removes the rest.
type RevisionPruner struct {
	store    RevisionStore
	keep     int
	schedule string
}

func NewRevisionPruner(schedule string, keep int, store RevisionStore) *RevisionPruner {
	return &RevisionPruner{
		store:    store,
		keep:     keep,
		schedule: schedule,
	}
}

func (p *RevisionPruner) Name() string {
	return "revision_pruner"
}

func (p *RevisionPruner) Schedule() string {
	return p.schedule
}

func (p *RevisionPruner) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	removed, err := p.store.PruneRevisions(ctx, p.keep)
	if err != nil {
		logrus.Error("Error pruning the revisions: ", err)
		return
	}

	logrus.Infof("Removed %v revisions, keeping %d per post", removed, p.keep)
}
