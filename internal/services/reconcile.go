package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/repos"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

// Reconciler periodically rebuilds the derived columns that per-request
// writes keep incrementally, so drift from crashes or manual edits heals on
// its own. It also sweeps expired refresh tokens.
type Reconciler struct {
	db            *gorm.DB
	log           *logger.Logger
	categoryRepo  repos.CategoryRepo
	assetRepo     repos.AssetRepo
	userTokenRepo repos.UserTokenRepo
	interval      time.Duration
}

func NewReconciler(
	db *gorm.DB,
	baseLog *logger.Logger,
	categoryRepo repos.CategoryRepo,
	assetRepo repos.AssetRepo,
	userTokenRepo repos.UserTokenRepo,
	interval time.Duration,
) *Reconciler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Reconciler{
		db:            db,
		log:           baseLog.With("component", "Reconciler"),
		categoryRepo:  categoryRepo,
		assetRepo:     assetRepo,
		userTokenRepo: userTokenRepo,
		interval:      interval,
	}
}

func (r *Reconciler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.RunOnce(ctx); err != nil {
					r.log.Warn("Reconcile pass failed", "error", err)
				}
			}
		}
	}()
}

// RunOnce executes a single reconcile pass. Category counters are rebuilt
// per row so one bad category cannot stall the rest.
func (r *Reconciler) RunOnce(ctx context.Context) error {
	started := time.Now()
	dbc := dbctx.Context{Ctx: ctx}

	categories, err := r.categoryRepo.GetAll(dbc)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, c := range categories {
		c := c
		g.Go(func() error {
			return r.categoryRepo.RecomputeAssetCount(dbctx.Context{Ctx: gctx}, c.ID)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := r.assetRepo.RecomputeRatingAggregates(dbc); err != nil {
		return err
	}

	expired, err := r.userTokenRepo.DeleteExpiredBefore(dbc, time.Now().UTC())
	if err != nil {
		return err
	}

	r.log.Info("Reconcile pass complete",
		"categories", len(categories),
		"expiredTokens", expired,
		"took", time.Since(started).String())
	return nil
}
