package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

// StatusReconciler periodically runs CatalogService.ReconcileStatuses so the
// stock status stays truthful even when rows change outside the API.
type StatusReconciler struct {
	service   CatalogService
	scheduler *cron.Cron
}

func NewStatusReconciler(cs CatalogService, spec string) (*StatusReconciler, error) {
	r := &StatusReconciler{
		service:   cs,
		scheduler: cron.New(),
	}
	_, err := r.scheduler.AddFunc(spec, func() {
		fixed, err := r.service.ReconcileStatuses(context.Background())
		if err != nil {
			logger.Error("StatusReconciler: run failed", err)
			return
		}
		if fixed > 0 {
			logger.Info(fmt.Sprintf("StatusReconciler: repaired %d product statuses", fixed))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reconciler schedule %q: %w", spec, err)
	}
	return r, nil
}

func (r *StatusReconciler) Start() {
	r.scheduler.Start()
	logger.Info("Stock status reconciler started")
}

func (r *StatusReconciler) Stop() {
	r.scheduler.Stop()
}
