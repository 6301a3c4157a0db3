package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/la-rentals/fleet/internal/interval"
	"github.com/la-rentals/fleet/internal/notify"
	"github.com/la-rentals/fleet/internal/store"
)

// Service wires the store, the interval engine, and the notification
// queue into the workflows the HTTP layer exposes.
type Service struct {
	store *store.Store
	queue *notify.Queue
}

// New builds the fleet service. queue may be nil when notifications are
// disabled; enqueues become no-ops.
func New(st *store.Store, queue *notify.Queue) *Service {
	return &Service{store: st, queue: queue}
}

// ScooterView is a scooter plus its derived service status.
type ScooterView struct {
	store.Scooter
	ServiceStatus interval.Status `json:"service_status"`
}

// ScooterDetail is the full per-scooter response: the scooter, its
// service history (newest first), and its damage reports.
type ScooterDetail struct {
	ScooterView
	Services []store.Service `json:"services"`
	Damages  []store.Damage  `json:"damages"`
}

// CreateScooterInput is the payload for registering a new vehicle.
type CreateScooterInput struct {
	ID         string `json:"id"`
	Model      string `json:"model"`
	EngineType string `json:"engine_type"`
	CategoryID string `json:"category_id"`
	CurrentKm  int    `json:"current_km"`
}

// AddServiceInput is the payload for a manual service entry.
type AddServiceInput struct {
	ServiceDate    time.Time `json:"service_date"`
	CurrentKm      int       `json:"current_km"`
	ServiceDetails string    `json:"service_details"`
}

// ListCategories returns all rental categories with scooter counts.
func (s *Service) ListCategories(ctx context.Context) ([]store.Category, error) {
	return s.store.ListCategories(ctx)
}

// CreateCategory adds a rental category.
func (s *Service) CreateCategory(ctx context.Context, name string) (*store.Category, error) {
	return s.store.CreateCategory(ctx, name)
}

// DeleteCategory removes an empty category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.store.DeleteCategory(ctx, id)
}

// CreateScooter registers a vehicle. Bolt-category scooters always get the
// Bolt engine profile so their shorter service interval applies regardless
// of what the form submitted.
func (s *Service) CreateScooter(ctx context.Context, in CreateScooterInput) (*ScooterView, error) {
	if in.CurrentKm < 0 {
		return nil, fmt.Errorf("invalid kilometer value: %d", in.CurrentKm)
	}

	cat, err := s.store.GetCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	engineType := strings.TrimSpace(in.EngineType)
	if strings.Contains(strings.ToLower(cat.Name), "bolt") {
		engineType = "125cc BOLT"
	}

	sc := store.Scooter{
		ID:         in.ID,
		Model:      strings.TrimSpace(in.Model),
		EngineType: engineType,
		CategoryID: cat.ID,
		CurrentKm:  in.CurrentKm,
		NextKm:     interval.NextServiceKm(in.CurrentKm, engineType, cat.Name),
	}

	created, err := s.store.CreateScooter(ctx, sc)
	if err != nil {
		return nil, err
	}
	created.CategoryName = cat.Name
	return s.withStatus(*created), nil
}

// ListScooters returns a category's scooters with derived statuses and
// open damage counts.
func (s *Service) ListScooters(ctx context.Context, categoryID string) ([]ScooterView, error) {
	scooters, err := s.store.ListScootersByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	views := make([]ScooterView, 0, len(scooters))
	for _, sc := range scooters {
		views = append(views, *s.withStatus(sc))
	}
	return views, nil
}

// GetScooter returns one scooter with its full history.
func (s *Service) GetScooter(ctx context.Context, id string) (*ScooterDetail, error) {
	sc, err := s.store.GetScooter(ctx, id)
	if err != nil {
		return nil, err
	}
	services, err := s.store.ListServicesByScooter(ctx, id)
	if err != nil {
		return nil, err
	}
	damages, err := s.store.ListDamagesByScooter(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ScooterDetail{
		ScooterView: *s.withStatus(*sc),
		Services:    services,
		Damages:     damages,
	}, nil
}

// ToggleScooterStatus flips a scooter between active and inactive.
func (s *Service) ToggleScooterStatus(ctx context.Context, id string) (*ScooterView, error) {
	sc, err := s.store.GetScooter(ctx, id)
	if err != nil {
		return nil, err
	}

	next := "inactive"
	if sc.Status == "inactive" {
		next = "active"
	}
	if err := s.store.SetScooterStatus(ctx, id, next); err != nil {
		return nil, err
	}
	sc.Status = next
	return s.withStatus(*sc), nil
}

// DeleteScooter removes a scooter with its services and damage reports.
func (s *Service) DeleteScooter(ctx context.Context, id string) error {
	return s.store.DeleteScooter(ctx, id)
}

// AddService records a manual service entry: computes the next service
// threshold from the interval engine, stores the record, rolls the
// scooter's odometer fields forward, and queues a WhatsApp notification.
func (s *Service) AddService(ctx context.Context, scooterID string, in AddServiceInput) (*store.Service, error) {
	if in.CurrentKm < 0 {
		return nil, fmt.Errorf("invalid kilometer value: %d", in.CurrentKm)
	}
	if in.ServiceDate.IsZero() {
		return nil, fmt.Errorf("invalid date: service date is required")
	}

	sc, err := s.store.GetScooter(ctx, scooterID)
	if err != nil {
		return nil, err
	}

	nextKm := interval.NextServiceKm(in.CurrentKm, sc.EngineType, sc.CategoryName)
	svc, err := s.store.InsertService(ctx, store.Service{
		ScooterID:      sc.ID,
		ServiceDate:    in.ServiceDate,
		CurrentKm:      in.CurrentKm,
		NextKm:         nextKm,
		ServiceDetails: strings.TrimSpace(in.ServiceDetails),
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateScooterKm(ctx, sc.ID, in.CurrentKm, nextKm); err != nil {
		return nil, err
	}

	s.enqueueNotification(*svc, sc.CategoryName)
	return svc, nil
}

// DeleteService removes one history entry.
func (s *Service) DeleteService(ctx context.Context, id string) error {
	return s.store.DeleteService(ctx, id)
}

// ResendNotification re-queues the WhatsApp message for a stored service.
func (s *Service) ResendNotification(ctx context.Context, serviceID string) error {
	svc, err := s.store.GetService(ctx, serviceID)
	if err != nil {
		return err
	}
	sc, err := s.store.GetScooter(ctx, svc.ScooterID)
	if err != nil {
		return err
	}

	s.enqueueNotification(*svc, sc.CategoryName)
	return nil
}

// ReportDamage records a new damage report against a scooter.
func (s *Service) ReportDamage(ctx context.Context, scooterID, note string) (*store.Damage, error) {
	if _, err := s.store.GetScooter(ctx, scooterID); err != nil {
		return nil, err
	}
	return s.store.InsertDamage(ctx, scooterID, note)
}

// ResolveDamage marks a damage report as fixed.
func (s *Service) ResolveDamage(ctx context.Context, id string) error {
	return s.store.ResolveDamage(ctx, id)
}

// DeleteDamage removes a damage report.
func (s *Service) DeleteDamage(ctx context.Context, id string) error {
	return s.store.DeleteDamage(ctx, id)
}

func (s *Service) withStatus(sc store.Scooter) *ScooterView {
	return &ScooterView{
		Scooter:       sc,
		ServiceStatus: interval.Classify(sc.CurrentKm, sc.NextKm),
	}
}

func (s *Service) enqueueNotification(svc store.Service, categoryName string) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(notify.Message{
		Date:           svc.ServiceDate,
		ScooterID:      svc.ScooterID,
		CurrentKm:      svc.CurrentKm,
		NextKm:         svc.NextKm,
		ServiceDetails: svc.ServiceDetails,
		CategoryName:   categoryName,
	})
}
