package board

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmota/failboard/internal/client/httpx"
	"github.com/marmota/failboard/internal/client/models"
	"github.com/marmota/failboard/internal/common"
)

// fakeFailures implements services.FailureService with overridable hooks.
type fakeFailures struct {
	listCalls   atomic.Int32
	createCalls atomic.Int32
	statusCalls atomic.Int32

	listFn   func(ctx context.Context) ([]models.Failure, error)
	createFn func(ctx context.Context, in models.NewFailure) (*models.Failure, error)
	statusFn func(ctx context.Context, id string, st models.Status) error
}

func (f *fakeFailures) List(ctx context.Context) ([]models.Failure, error) {
	f.listCalls.Add(1)
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *fakeFailures) Create(ctx context.Context, in models.NewFailure) (*models.Failure, error) {
	f.createCalls.Add(1)
	if f.createFn == nil {
		return &models.Failure{ID: "new", Category: in.Category, Description: in.Description, Status: models.StatusPending}, nil
	}
	return f.createFn(ctx, in)
}

func (f *fakeFailures) UpdateStatus(ctx context.Context, id string, st models.Status) error {
	f.statusCalls.Add(1)
	if f.statusFn == nil {
		return nil
	}
	return f.statusFn(ctx, id, st)
}

func sample() []models.Failure {
	return []models.Failure{
		rec("1", models.CategoryMechanical, time.Date(2025, 1, 9, 10, 0, 0, 0, saoPaulo)),
		rec("2", models.CategoryElectrical, time.Date(2025, 1, 11, 10, 0, 0, 0, saoPaulo)),
		rec("3", models.CategorySoftware, time.Date(2025, 1, 12, 10, 0, 0, 0, saoPaulo)),
	}
}

func readyBoard(t *testing.T, svc *fakeFailures) *Board {
	t.Helper()
	if svc.listFn == nil {
		svc.listFn = func(context.Context) ([]models.Failure, error) { return sample(), nil }
	}
	b := New(svc, WithLocation(saoPaulo))
	require.NoError(t, b.Load(context.Background()))
	require.Equal(t, Ready, b.View().State)
	return b
}

func TestBoard_InitialState(t *testing.T) {
	b := New(&fakeFailures{})
	v := b.View()
	assert.Equal(t, Loading, v.State)
	assert.Empty(t, v.Records)
	assert.Empty(t, v.Filtered)
	assert.NoError(t, v.Err)
	assert.Equal(t, time.Local, b.Location())
}

func TestBoard_LoadSuccess(t *testing.T) {
	b := readyBoard(t, &fakeFailures{})
	v := b.View()
	assert.Equal(t, []string{"1", "2", "3"}, ids(v.Records))
	assert.Equal(t, []string{"1", "2", "3"}, ids(v.Filtered))
}

func TestBoard_LoadErrorAndRetry(t *testing.T) {
	boom := &httpx.APIError{Status: 500, Message: "Internal Server Error"}
	fail := true
	svc := &fakeFailures{listFn: func(context.Context) ([]models.Failure, error) {
		if fail {
			return nil, boom
		}
		return sample(), nil
	}}
	b := New(svc, WithLocation(saoPaulo))

	err := b.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	v := b.View()
	assert.Equal(t, Error, v.State)
	assert.Same(t, boom, v.Err)

	fail = false
	require.NoError(t, b.Retry(context.Background()))
	v = b.View()
	assert.Equal(t, Ready, v.State)
	assert.NoError(t, v.Err)
	assert.Len(t, v.Records, 3)

	assert.ErrorIs(t, b.Retry(context.Background()), ErrNothingToRetry)
	assert.Equal(t, int32(2), svc.listCalls.Load())
}

func TestBoard_LoadAuthErrorResetsToLoading(t *testing.T) {
	authErr := &httpx.APIError{Status: 401, Message: "Unauthorized"}
	var calls int
	svc := &fakeFailures{listFn: func(context.Context) ([]models.Failure, error) {
		calls++
		if calls == 1 {
			return sample(), nil
		}
		return nil, authErr
	}}
	b := New(svc)
	require.NoError(t, b.Load(context.Background()))

	err := b.Load(context.Background())
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)

	v := b.View()
	assert.Equal(t, Loading, v.State)
	assert.Empty(t, v.Records)
	assert.Empty(t, v.Filtered)
	assert.NoError(t, v.Err)
}

func TestBoard_SetCriteriaRecomputesView(t *testing.T) {
	svc := &fakeFailures{}
	b := readyBoard(t, svc)

	require.NoError(t, b.SetCategory(models.CategoryElectrical))
	assert.Equal(t, []string{"2"}, ids(b.View().Filtered))
	assert.Len(t, b.View().Records, 3)

	require.NoError(t, b.SetDateRange(NewDay(2025, 1, 10), NewDay(2025, 1, 12)))
	assert.Equal(t, []string{"2"}, ids(b.View().Filtered))

	require.NoError(t, b.SetCategory(All))
	assert.Equal(t, []string{"2", "3"}, ids(b.View().Filtered))
	assert.True(t, b.Criteria().Active())

	assert.ErrorIs(t, b.SetDateRange(NewDay(2025, 2, 1), NewDay(2025, 1, 1)), ErrInvalidRange)
	assert.Equal(t, []string{"2", "3"}, ids(b.View().Filtered), "rejected criteria leave the view alone")

	b.ClearCriteria()
	assert.Equal(t, []string{"1", "2", "3"}, ids(b.View().Filtered))
	assert.False(t, b.Criteria().Active())
	assert.Equal(t, int32(1), svc.listCalls.Load(), "filtering never hits the network")
}

func TestBoard_AddBlankDescriptionMakesNoCall(t *testing.T) {
	svc := &fakeFailures{}
	b := readyBoard(t, svc)

	for _, d := range []string{"", "   ", "\t\n"} {
		_, err := b.Add(context.Background(), models.CategoryOther, d)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	}
	assert.Zero(t, svc.createCalls.Load())
	assert.Len(t, b.View().Records, 3)
}

func TestBoard_AddPrependsRespectingCriteria(t *testing.T) {
	created := time.Date(2025, 1, 11, 15, 0, 0, 0, saoPaulo)
	svc := &fakeFailures{createFn: func(_ context.Context, in models.NewFailure) (*models.Failure, error) {
		assert.Equal(t, "pneu furado", in.Description)
		return &models.Failure{ID: "9", Category: in.Category, Description: in.Description, CreatedAt: created, Status: models.StatusPending}, nil
	}}
	b := readyBoard(t, svc)
	require.NoError(t, b.SetCategory(models.CategoryElectrical))

	f, err := b.Add(context.Background(), models.CategoryMechanical, "  pneu furado ")
	require.NoError(t, err)
	assert.Equal(t, "9", f.ID)

	v := b.View()
	assert.Equal(t, []string{"9", "1", "2", "3"}, ids(v.Records))
	assert.Equal(t, []string{"2"}, ids(v.Filtered), "mechanical record does not pass the electrical filter")

	_, err = b.Add(context.Background(), models.CategoryElectrical, "pneu furado")
	require.NoError(t, err)
	v = b.View()
	assert.Equal(t, []string{"9", "1", "2", "3"}, ids(v.Records), "same id replaces instead of duplicating")
	assert.Equal(t, []string{"9", "2"}, ids(v.Filtered))
}

func TestBoard_AddErrorLeavesCollection(t *testing.T) {
	boom := &httpx.APIError{Status: 400, Message: "Bad Request"}
	svc := &fakeFailures{createFn: func(context.Context, models.NewFailure) (*models.Failure, error) {
		return nil, boom
	}}
	b := readyBoard(t, svc)

	_, err := b.Add(context.Background(), models.CategoryOther, "x")
	assert.Same(t, boom, err)
	v := b.View()
	assert.Equal(t, Ready, v.State)
	assert.Len(t, v.Records, 3)
	assert.False(t, b.Busy(OpCreate))
}

func TestBoard_AddRequiresReadyAndValidCategory(t *testing.T) {
	svc := &fakeFailures{}
	b := New(svc)
	_, err := b.Add(context.Background(), models.CategoryOther, "x")
	assert.ErrorIs(t, err, ErrNotReady)

	b = readyBoard(t, svc)
	_, err = b.Add(context.Background(), models.Category("Hidráulica"), "x")
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
	assert.Zero(t, svc.createCalls.Load())
}

func TestBoard_UpdateStatusKeepsPosition(t *testing.T) {
	var gotID string
	var gotStatus models.Status
	svc := &fakeFailures{statusFn: func(_ context.Context, id string, st models.Status) error {
		gotID, gotStatus = id, st
		return nil
	}}
	b := readyBoard(t, svc)
	require.NoError(t, b.SetDateRange(NewDay(2025, 1, 10), Day{}))
	before := b.View()

	require.NoError(t, b.UpdateStatus(context.Background(), "2", models.StatusResolved))
	assert.Equal(t, "2", gotID)
	assert.Equal(t, models.StatusResolved, gotStatus)

	after := b.View()
	assert.Equal(t, ids(before.Records), ids(after.Records))
	assert.Equal(t, ids(before.Filtered), ids(after.Filtered))
	assert.Equal(t, models.StatusResolved, after.Records[1].Status)
	assert.Equal(t, models.StatusResolved, after.Filtered[0].Status)

	want := before.Records[1]
	want.Status = models.StatusResolved
	assert.Equal(t, want, after.Records[1], "only the status changes")
	assert.Equal(t, models.StatusPending, before.Records[1].Status, "earlier snapshots are not affected")
}

func TestBoard_UpdateStatusUnknownID(t *testing.T) {
	svc := &fakeFailures{}
	b := readyBoard(t, svc)

	err := b.UpdateStatus(context.Background(), "404", models.StatusResolved)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, b.UpdateStatus(context.Background(), "1", models.Status("x")), models.ErrUnknownStatus)
	assert.Zero(t, svc.statusCalls.Load())
}

func TestBoard_UpdateStatusAfterReloadDroppedRecord(t *testing.T) {
	var b *Board
	var lists atomic.Int32
	svc := &fakeFailures{
		listFn: func(context.Context) ([]models.Failure, error) {
			if lists.Add(1) == 1 {
				return sample(), nil
			}
			return sample()[:1], nil
		},
		statusFn: func(ctx context.Context, _ string, _ models.Status) error {
			// another load lands while the request is out
			return b.Load(ctx)
		},
	}
	b = readyBoard(t, svc)

	err := b.UpdateStatus(context.Background(), "3", models.StatusResolved)
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, int32(1), svc.statusCalls.Load())
	assert.Equal(t, []string{"1"}, ids(b.View().Records))
}

func TestBoard_UpdateStatusKeepsRecordsAndFilteredInStep(t *testing.T) {
	dup := func() []models.Failure {
		return []models.Failure{
			rec("7", models.CategorySoftware, time.Date(2025, 1, 11, 10, 0, 0, 0, saoPaulo)),
			rec("7", models.CategorySoftware, time.Date(2025, 1, 12, 10, 0, 0, 0, saoPaulo)),
		}
	}
	svc := &fakeFailures{listFn: func(context.Context) ([]models.Failure, error) { return dup(), nil }}
	b := readyBoard(t, svc)
	require.NoError(t, b.SetCategory(models.CategorySoftware))

	require.NoError(t, b.UpdateStatus(context.Background(), "7", models.StatusResolved))

	v := b.View()
	require.Len(t, v.Filtered, 2)
	assert.Equal(t, statuses(v.Records), statuses(v.Filtered))

	b.ClearCriteria()
	assert.Equal(t, statuses(v.Records), statuses(b.View().Filtered), "recomputing the view changes nothing")
}

func statuses(fs []models.Failure) []models.Status {
	out := make([]models.Status, len(fs))
	for i, f := range fs {
		out[i] = f.Status
	}
	return out
}

func TestBoard_UpdateStatusAuthErrorResets(t *testing.T) {
	svc := &fakeFailures{statusFn: func(context.Context, string, models.Status) error {
		return errors.Join(httpx.ErrSessionExpired, &httpx.APIError{Status: 401})
	}}
	b := readyBoard(t, svc)

	err := b.UpdateStatus(context.Background(), "1", models.StatusResolved)
	assert.ErrorIs(t, err, httpx.ErrSessionExpired)
	v := b.View()
	assert.Equal(t, Loading, v.State)
	assert.Empty(t, v.Records)
}

func TestBoard_SecondSubmissionWhilePendingIsRejected(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &fakeFailures{
		createFn: func(_ context.Context, in models.NewFailure) (*models.Failure, error) {
			close(started)
			<-release
			return &models.Failure{ID: "9", Category: in.Category, Description: in.Description, Status: models.StatusPending}, nil
		},
		statusFn: func(context.Context, string, models.Status) error {
			close(started)
			<-release
			return nil
		},
	}

	t.Run("create", func(t *testing.T) {
		b := readyBoard(t, svc)
		done := make(chan error, 1)
		go func() {
			_, err := b.Add(context.Background(), models.CategoryOther, "first")
			done <- err
		}()
		<-started
		assert.True(t, b.Busy(OpCreate))

		_, err := b.Add(context.Background(), models.CategoryOther, "second")
		assert.ErrorIs(t, err, ErrInFlight)

		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, int32(1), svc.createCalls.Load())
		assert.False(t, b.Busy(OpCreate))
		assert.Len(t, b.View().Records, 4)
	})

	release = make(chan struct{})
	started = make(chan struct{})

	t.Run("status", func(t *testing.T) {
		b := readyBoard(t, svc)
		done := make(chan error, 1)
		go func() { done <- b.UpdateStatus(context.Background(), "1", models.StatusInProgress) }()
		<-started

		assert.ErrorIs(t, b.UpdateStatus(context.Background(), "2", models.StatusResolved), ErrInFlight)

		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, int32(1), svc.statusCalls.Load())
	})
}

func TestBoard_ConcurrentLoadsShareOneRequest(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 8)
	svc := &fakeFailures{listFn: func(context.Context) ([]models.Failure, error) {
		entered <- struct{}{}
		<-release
		return sample(), nil
	}}
	b := New(svc)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- b.Load(context.Background())
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- b.Load(context.Background())
	}()
	// Give the second Load time to join the first request.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), svc.listCalls.Load())
	assert.Equal(t, Ready, b.View().State)
	assert.Len(t, b.View().Records, 3)
}

func TestBoard_StaleLoadIsDiscarded(t *testing.T) {
	releaseOld := make(chan struct{})
	oldStarted := make(chan struct{})
	var calls atomic.Int32
	svc := &fakeFailures{listFn: func(context.Context) ([]models.Failure, error) {
		if calls.Add(1) == 1 {
			close(oldStarted)
			<-releaseOld
			return []models.Failure{rec("stale", models.CategoryOther, time.Time{})}, nil
		}
		return sample(), nil
	}}
	b := New(svc)

	oldDone := make(chan error, 1)
	go func() { oldDone <- b.Load(context.Background()) }()
	<-oldStarted

	b.Reset()
	require.NoError(t, b.Load(context.Background()))
	assert.Equal(t, []string{"1", "2", "3"}, ids(b.View().Records))

	close(releaseOld)
	require.NoError(t, <-oldDone)

	v := b.View()
	assert.Equal(t, Ready, v.State)
	assert.Equal(t, []string{"1", "2", "3"}, ids(v.Records))
	assert.Equal(t, int32(2), svc.listCalls.Load())
}

func TestBoard_Select(t *testing.T) {
	b := readyBoard(t, &fakeFailures{})

	f, err := b.Select("3")
	require.NoError(t, err)
	assert.Equal(t, models.CategorySoftware, f.Category)

	f.Description = "changed"
	again, _ := b.Select("3")
	assert.Equal(t, "d3", again.Description)

	_, err = b.Select("nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", State(9).String())
}
