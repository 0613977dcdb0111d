package crmsync

import (
	"context"
	"sync"
	"time"

	"imobhub/internal/domain"

	"go.uber.org/zap"
)

// Exporter pushes CRM leads into the tenant's spreadsheet in the
// background. Leads are picked up by their sheet_synced flag, so a failed
// export is retried on the next tick.
type Exporter struct {
	logger       *zap.Logger
	SheetService domain.SheetService
	Leads        domain.LeadRepo

	ticker        *time.Ticker
	forceUpdateCh chan struct{}
	stopCh        chan struct{}
	mu            sync.Mutex
}

func NewExporter(sheetService domain.SheetService, leads domain.LeadRepo, logger *zap.Logger, forceUpdateCh chan struct{}) *Exporter {
	e := &Exporter{
		logger:        logger,
		SheetService:  sheetService,
		Leads:         leads,
		ticker:        time.NewTicker(10 * time.Minute),
		forceUpdateCh: forceUpdateCh,
		stopCh:        make(chan struct{}),
	}
	go e.backgroundSync()
	return e
}

func (e *Exporter) backgroundSync() {
	for {
		select {
		case <-e.ticker.C:
			e.syncUnsyncedLeads()
		case <-e.forceUpdateCh:
			e.syncUnsyncedLeads()
		case <-e.stopCh:
			e.ticker.Stop()
			return
		}
	}
}

func (e *Exporter) syncUnsyncedLeads() {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx := context.Background()

	leads, err := e.Leads.ListUnsynced(ctx)
	if err != nil {
		e.logger.Error("error getting unsynced leads", zap.Error(err))
		return
	}
	for _, lead := range leads {
		row, err := e.SheetService.FindFirstFreeRow()
		if err != nil {
			e.logger.Error("error finding free row for lead", zap.Error(err), zap.Uint("lead_id", lead.ID))
			continue
		}
		if row <= 1 {
			row = 2 // row 1 holds headers, data starts at row 2
		}
		if err := e.SheetService.InsertLead(row, lead); err != nil {
			e.logger.Error("error inserting lead into sheet", zap.Error(err), zap.Uint("lead_id", lead.ID))
			continue
		}
		if err := e.Leads.MarkSheetSynced(ctx, lead.ID, true); err != nil {
			e.logger.Error("error updating sheet_synced", zap.Error(err), zap.Uint("lead_id", lead.ID))
		}
	}
}

// ForceUpdate triggers an export run immediately.
func (e *Exporter) ForceUpdate() {
	select {
	case e.forceUpdateCh <- struct{}{}:
	default:
	}
}

// Stop terminates the background loop.
func (e *Exporter) Stop() {
	close(e.stopCh)
}
