package recurringexpense

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
)

// memoryRepository is an in-memory RecurringExpenseRepository with a real
// compare-and-swap on the watermark.
type memoryRepository struct {
	mu        sync.Mutex
	defs      map[uuid.UUID]*entity.RecurringExpense
	expenses  []*entity.Expense
	commitErr map[uuid.UUID]error
}

func newMemoryRepository(defs ...*entity.RecurringExpense) *memoryRepository {
	repo := &memoryRepository{
		defs:      make(map[uuid.UUID]*entity.RecurringExpense),
		commitErr: make(map[uuid.UUID]error),
	}
	for _, def := range defs {
		repo.defs[def.ID] = def
	}
	return repo
}

func (r *memoryRepository) Create(_ context.Context, def *entity.RecurringExpense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *def
	r.defs[def.ID] = &clone
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringExpense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.defs[id]
	if !ok {
		return nil, domainerror.ErrRecurringExpenseNotFound
	}
	clone := *def
	return &clone, nil
}

func (r *memoryRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error) {
	return r.find(userID, false), nil
}

func (r *memoryRepository) FindActiveByUserID(_ context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error) {
	return r.find(userID, true), nil
}

func (r *memoryRepository) find(userID uuid.UUID, activeOnly bool) []*entity.RecurringExpense {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.RecurringExpense
	for _, def := range r.defs {
		if def.UserID != userID || (activeOnly && !def.Active) {
			continue
		}
		clone := *def
		out = append(out, &clone)
	}
	return out
}

func (r *memoryRepository) Update(_ context.Context, def *entity.RecurringExpense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.defs[def.ID]
	if !ok {
		return domainerror.ErrRecurringExpenseNotFound
	}
	clone := *def
	clone.LastGeneratedDate = stored.LastGeneratedDate
	r.defs[def.ID] = &clone
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[id]; !ok {
		return domainerror.ErrRecurringExpenseNotFound
	}
	delete(r.defs, id)
	return nil
}

func (r *memoryRepository) AdvanceWatermark(_ context.Context, id uuid.UUID, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.advanceLocked(id, date)
}

func (r *memoryRepository) advanceLocked(id uuid.UUID, date time.Time) error {
	def, ok := r.defs[id]
	if !ok {
		return domainerror.ErrConcurrentAdvanceLost
	}
	if def.LastGeneratedDate != nil && !def.LastGeneratedDate.Before(date) {
		return domainerror.ErrConcurrentAdvanceLost
	}
	d := date
	def.LastGeneratedDate = &d
	return nil
}

func (r *memoryRepository) CommitOccurrence(_ context.Context, expense *entity.Expense, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.commitErr[*expense.RecurringExpenseID]; err != nil {
		return err
	}
	if err := r.advanceLocked(*expense.RecurringExpenseID, date); err != nil {
		return err
	}
	r.expenses = append(r.expenses, expense)
	return nil
}

func (r *memoryRepository) expensesFor(id uuid.UUID) []*entity.Expense {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.RecurringExpenseID != nil && *e.RecurringExpenseID == id {
			out = append(out, e)
		}
	}
	return out
}

func (r *memoryRepository) watermark(id uuid.UUID) *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.defs[id].LastGeneratedDate
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type recordingPublisher struct {
	mu     sync.Mutex
	events []adapter.ExpenseCommittedEvent
	err    error
}

func (p *recordingPublisher) PublishExpenseCommitted(_ context.Context, event adapter.ExpenseCommittedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type stubSuggester struct {
	suggestion *entity.CategorySuggestion
	err        error
	calls      int
}

func (s *stubSuggester) Suggest(_ context.Context, _ uuid.UUID, _ string) (*entity.CategorySuggestion, error) {
	s.calls++
	return s.suggestion, s.err
}

var errBoom = errors.New("boom")

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func monthlyDefinition(userID uuid.UUID, day int, start string, requiresConfirmation bool) *entity.RecurringExpense {
	return &entity.RecurringExpense{
		ID:                   uuid.New(),
		UserID:               userID,
		Description:          "Rent",
		Category:             "housing",
		BaseAmount:           mustDecimal("1200.00"),
		Frequency:            entity.FrequencyMonthly,
		ExecutionDay:         day,
		StartDate:            date(start),
		Active:               true,
		RequiresConfirmation: requiresConfirmation,
	}
}
