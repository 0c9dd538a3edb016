package board

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/marmota/failboard/internal/client/httpx"
	"github.com/marmota/failboard/internal/client/models"
	"github.com/marmota/failboard/internal/client/services"
	"github.com/marmota/failboard/internal/common"
	"github.com/marmota/failboard/internal/logging"
)

const listKey = "list"

type Option func(*Board)

// WithLocation sets the zone calendar days are read in. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(b *Board) { b.loc = loc }
}

func WithLogger(l logging.Logger) Option {
	return func(b *Board) { b.log = l }
}

// View is a snapshot of the board. Its slices are copies.
type View struct {
	State    State
	Records  []models.Failure
	Filtered []models.Failure
	Criteria Criteria
	Err      error
}

// Board is safe for concurrent use.
type Board struct {
	svc services.FailureService
	log logging.Logger
	loc *time.Location

	group singleflight.Group

	mu       sync.Mutex
	state    State
	records  []models.Failure
	filtered []models.Failure
	criteria Criteria
	err      error
	gen      uint64
	inflight map[Op]bool
}

func New(svc services.FailureService, opts ...Option) *Board {
	b := &Board{
		svc:      svc,
		log:      logging.Discard(),
		loc:      time.Local,
		state:    Loading,
		inflight: make(map[Op]bool),
	}
	for _, o := range opts {
		o(b)
	}
	if b.loc == nil {
		b.loc = time.Local
	}
	return b
}

func (b *Board) Location() *time.Location { return b.loc }

// Load fetches the full collection. Concurrent calls share one request. A
// response that arrives after Reset, or after a newer Load started, is
// dropped and Load returns nil.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.state = Loading
	b.err = nil
	b.mu.Unlock()

	v, err, shared := b.group.Do(listKey, func() (any, error) {
		return b.svc.List(ctx)
	})

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		b.log.Debug(ctx, "dropping superseded failure list", "generation", gen, "current", b.gen)
		return nil
	}

	if err != nil {
		if httpx.IsAuth(err) {
			b.resetLocked()
			return err
		}
		b.state = Error
		b.err = err
		b.log.Error(ctx, "load failures failed", "error", err)
		return err
	}

	records, ok := v.([]models.Failure)
	if !ok {
		err := fmt.Errorf("unexpected list result %T", v)
		b.state = Error
		b.err = err
		return err
	}

	b.records = slices.Clone(records)
	b.filtered = Filter(b.records, b.criteria, b.loc)
	b.state = Ready
	b.log.Debug(ctx, "failures loaded", "count", len(b.records), "shared", shared)
	return nil
}

// Retry reloads after a failed load.
func (b *Board) Retry(ctx context.Context) error {
	b.mu.Lock()
	st := b.state
	b.mu.Unlock()

	if st != Error {
		return ErrNothingToRetry
	}
	return b.Load(ctx)
}

// Reset drops all data and returns the board to Loading. Loads still in
// flight will be ignored.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLocked()
}

func (b *Board) resetLocked() {
	b.gen++
	b.group.Forget(listKey)
	b.state = Loading
	b.records = nil
	b.filtered = nil
	b.err = nil
}

// SetCriteria replaces the criteria and recomputes the filtered view.
func (b *Board) SetCriteria(c Criteria) error {
	if err := c.validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.criteria = c
	b.filtered = Filter(b.records, c, b.loc)
	return nil
}

// SetCategory changes only the category criterion. All clears it.
func (b *Board) SetCategory(cat models.Category) error {
	c := b.Criteria()
	c.Category = cat
	return b.SetCriteria(c)
}

// SetDateRange changes only the day bounds. A zero Day leaves that side open.
func (b *Board) SetDateRange(start, end Day) error {
	c := b.Criteria()
	c.Start, c.End = start, end
	return b.SetCriteria(c)
}

func (b *Board) ClearCriteria() {
	_ = b.SetCriteria(Criteria{})
}

func (b *Board) Criteria() Criteria {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.criteria
}

// Add creates a failure and puts it at the top of the list.
func (b *Board) Add(ctx context.Context, cat models.Category, description string) (*models.Failure, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if !cat.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownCategory, cat)
	}

	if err := b.begin(OpCreate); err != nil {
		return nil, err
	}
	defer b.end(OpCreate)

	created, err := b.svc.Create(ctx, models.NewFailure{Category: cat, Description: description})
	if err != nil {
		b.failed(ctx, OpCreate, err)
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	f := *created
	if i := b.indexLocked(f.ID); i >= 0 {
		b.records[i] = f
	} else {
		b.records = slices.Insert(b.records, 0, f)
	}
	b.filtered = Filter(b.records, b.criteria, b.loc)
	return &f, nil
}

// UpdateStatus changes the status of the record with the given id, keeping
// its position.
func (b *Board) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStatus, status)
	}

	b.mu.Lock()
	found := b.indexLocked(id) >= 0
	b.mu.Unlock()
	if !found {
		return fmt.Errorf("failure %s: %w", id, common.ErrNotFound)
	}

	if err := b.begin(OpStatus); err != nil {
		return err
	}
	defer b.end(OpStatus)

	if err := b.svc.UpdateStatus(ctx, id, status); err != nil {
		b.failed(ctx, OpStatus, err)
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		// a reload replaced the collection while the request was out
		b.log.Warn(ctx, "updated failure no longer loaded", "id", id, "status", string(status))
		return fmt.Errorf("failure %s: %w", id, common.ErrNotFound)
	}
	b.records[i].Status = status
	if j := slices.IndexFunc(b.filtered, func(f models.Failure) bool { return f.ID == id }); j >= 0 {
		b.filtered[j].Status = status
	}
	return nil
}

// Select returns a copy of the record with the given id.
func (b *Board) Select(id string) (models.Failure, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexLocked(id)
	if i < 0 {
		return models.Failure{}, fmt.Errorf("failure %s: %w", id, common.ErrNotFound)
	}
	return b.records[i], nil
}

func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return View{
		State:    b.state,
		Records:  slices.Clone(b.records),
		Filtered: slices.Clone(b.filtered),
		Criteria: b.criteria,
		Err:      b.err,
	}
}

// Busy reports whether op is in flight.
func (b *Board) Busy(op Op) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inflight[op]
}

func (b *Board) begin(op Op) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Ready {
		return ErrNotReady
	}
	if b.inflight[op] {
		return fmt.Errorf("%s: %w", op, ErrInFlight)
	}
	b.inflight[op] = true
	return nil
}

func (b *Board) end(op Op) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, op)
}

func (b *Board) failed(ctx context.Context, op Op, err error) {
	b.log.Error(ctx, "failure operation failed", "op", string(op), "error", err)
	if httpx.IsAuth(err) {
		b.Reset()
	}
}

func (b *Board) indexLocked(id string) int {
	return slices.IndexFunc(b.records, func(f models.Failure) bool { return f.ID == id })
}
