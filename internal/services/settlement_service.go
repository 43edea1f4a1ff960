package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/utils"
)

// SettlementService batches unsettled trips into settlements.
type SettlementService struct {
	Routes      RouteStore
	Drivers     DriverStore
	Trips       TripStore
	Settlements SettlementStore
	Locker      Locker
	RequestID   string
	Now         func() time.Time
}

func (s SettlementService) locker() Locker {
	if s.Locker != nil {
		return s.Locker
	}
	return defaultLocker
}

func parseSettlementType(raw string) (models.SettlementType, error) {
	typ, ok := models.ParseSettlementType(raw)
	if !ok {
		return "", domain.ValidationError{Field: "type", Msg: "must be weekly or monthly"}
	}
	return typ, nil
}

// Process settles every unsettled trip. The read, the plan and the apply run
// under one lock so two runs can never share a trip. On ErrNothingToSettle
// nothing is written.
func (s SettlementService) Process(ctx context.Context, rawType string) (models.Settlement, error) {
	typ, err := parseSettlementType(rawType)
	if err != nil {
		return models.Settlement{}, err
	}

	unlock, err := s.locker().Lock(ctx)
	if err != nil {
		return models.Settlement{}, domain.InternalError{Msg: "acquire settlement lock", Err: err}
	}
	defer unlock()

	unsettled, drivers, routes, err := s.snapshot(ctx)
	if err != nil {
		return models.Settlement{}, err
	}
	nextID, err := s.Settlements.NextSettlementID(ctx)
	if err != nil {
		return models.Settlement{}, err
	}

	st, err := domain.PlanSettlement(unsettled, drivers, routes, typ, nextID, utils.Today(s.Now))
	if err != nil {
		utils.LogEvent(s.RequestID, "settlement", "process", fmt.Sprintf("type=%s unsettled=%d: %v", typ, len(unsettled), err))
		return models.Settlement{}, err
	}
	if err := s.Settlements.ApplySettlement(ctx, st); err != nil {
		utils.LogError(s.RequestID, "settlement", "process", "apply failed", err)
		return models.Settlement{}, err
	}

	utils.LogEvent(s.RequestID, "settlement", "process", fmt.Sprintf(
		"settlement_id=%d type=%s drivers=%d trips=%d total=%d",
		st.ID, st.Type, len(st.Lines), st.TripCount, st.TotalAmount(),
	))
	return st, nil
}

// Preview returns the lines a run of this type would produce right now.
func (s SettlementService) Preview(ctx context.Context, rawType string) ([]models.SettlementLine, error) {
	typ, err := parseSettlementType(rawType)
	if err != nil {
		return nil, err
	}
	unsettled, drivers, routes, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Summarize(unsettled, drivers, routes, typ), nil
}

func (s SettlementService) History(ctx context.Context) ([]models.Settlement, error) {
	return s.Settlements.ListSettlements(ctx)
}

func (s SettlementService) Get(ctx context.Context, id int64) (models.Settlement, error) {
	if id <= 0 {
		return models.Settlement{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	return s.Settlements.GetSettlement(ctx, id)
}

// Statement renders settlement id as a PDF.
func (s SettlementService) Statement(ctx context.Context, id int64) ([]byte, string, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	docs := DocsService{RequestID: s.RequestID, Now: s.Now}
	return docs.GenerateStatement(st)
}

func (s SettlementService) snapshot(ctx context.Context) ([]models.Trip, map[int64]models.Driver, []models.Route, error) {
	unsettled := false
	trips, err := s.Trips.ListTrips(ctx, models.TripFilter{Settled: &unsettled})
	if err != nil {
		return nil, nil, nil, err
	}
	drivers, err := s.Drivers.ListDrivers(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	routes, err := s.Routes.ListRoutes(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return trips, driverIndex(drivers), routes, nil
}
