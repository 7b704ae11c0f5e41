package doselogs

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"doseup-parent/internal/domain/dosetime"
	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/platform/poll"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrAlreadyTaken = errors.New("dose already taken for this day")
	ErrUnknownDose  = errors.New("dose time is not configured for this medicine")
)

// MedicineLookup es lo único que necesitamos de medicines (lo cumple *medicines.Service).
type MedicineLookup interface {
	Get(ctx context.Context, ref parents.Ref, id string) (medicines.Medicine, error)
}

type Service struct {
	repo      Repository
	meds      MedicineLookup
	now       func() time.Time
	pollEvery time.Duration
}

func NewService(repo Repository, meds MedicineLookup, pollEvery time.Duration) *Service {
	if pollEvery <= 0 {
		pollEvery = medicines.DefaultPollInterval
	}
	return &Service{
		repo:      repo,
		meds:      meds,
		now:       time.Now,
		pollEvery: pollEvery,
	}
}

type MarkInput struct {
	Ref        parents.Ref
	MedicineID string
	DoseTime   string

	// Zona del parent; define a qué día pertenece la toma.
	Location *time.Location
}

// MarkTaken agrega el log de la toma para hoy. Una sola vez por
// (medicina, hora, día): se chequea antes y el store también lo rechaza.
func (s *Service) MarkTaken(ctx context.Context, in MarkInput) (DoseLog, error) {
	medicineID := strings.TrimSpace(in.MedicineID)
	if !in.Ref.Valid() || medicineID == "" {
		return DoseLog{}, ErrInvalidInput
	}
	if _, err := dosetime.Parse(in.DoseTime); err != nil {
		return DoseLog{}, err
	}

	m, err := s.meds.Get(ctx, in.Ref, medicineID)
	if err != nil {
		return DoseLog{}, err
	}
	// La hora se guarda tal cual la tiene la medicina: el predicado compara strings.
	if !slices.Contains(m.DoseTimes, in.DoseTime) {
		return DoseLog{}, ErrUnknownDose
	}

	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	now := s.now().In(loc)
	date := dosetime.DateKey(now)

	existing, err := s.repo.ListByDate(ctx, in.Ref, date)
	if err != nil {
		return DoseLog{}, err
	}
	if IsTaken(existing, medicineID, in.DoseTime, date) {
		return DoseLog{}, ErrAlreadyTaken
	}

	l := DoseLog{
		ID:         uuid.NewString(),
		AdminID:    in.Ref.AdminID,
		ParentID:   in.Ref.ParentID,
		MedicineID: medicineID,
		DoseTime:   in.DoseTime,
		Date:       date,
		TakenAt:    now,
	}
	if err := s.repo.Append(ctx, l); err != nil {
		return DoseLog{}, err
	}
	return l, nil
}

func (s *Service) ListForDay(ctx context.Context, ref parents.Ref, date string) ([]DoseLog, error) {
	if !ref.Valid() {
		return nil, ErrInvalidInput
	}
	if _, err := dosetime.ParseDateKey(date); err != nil {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByDate(ctx, ref, date)
}

// Subscribe sigue los logs de un día (polling, igual que medicines).
func (s *Service) Subscribe(
	ctx context.Context,
	ref parents.Ref,
	date string,
	onChange func([]DoseLog),
	onError func(error),
) (unsubscribe func()) {
	return poll.Watch[[]DoseLog]{
		Every:       s.pollEvery,
		Fetch:       func(ctx context.Context) ([]DoseLog, error) { return s.ListForDay(ctx, ref, date) },
		Fingerprint: fingerprint,
		OnChange:    onChange,
		OnError:     onError,
	}.Start(ctx)
}

// Los logs son append-only: los IDs ordenados alcanzan como fingerprint.
func fingerprint(logs []DoseLog) string {
	ids := make([]string, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	slices.Sort(ids)
	return strings.Join(ids, ",")
}
