package loader

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/internal/notify"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

func TestLoadTogglesLoadingAroundFetch(t *testing.T) {
	var seen []Snapshot[[]string]
	var during Snapshot[[]string]

	var l *Loader[None, []string]
	l = New(func(ctx context.Context, _ None) ([]string, error) {
		during = l.Snapshot()
		return []string{"a"}, nil
	}, nil)
	l.Subscribe(func(s Snapshot[[]string]) { seen = append(seen, s) })

	assert.Equal(t, StateIdle, l.Snapshot().State)
	assert.False(t, l.Snapshot().Loading)

	snap := l.Load(context.Background(), None{})

	assert.True(t, during.Loading)
	assert.Equal(t, StateLoading, during.State)
	assert.False(t, snap.Loading)
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, []string{"a"}, snap.Data)

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
}

func TestLoadSkipsAbsentParameter(t *testing.T) {
	calls := 0
	l := New(func(ctx context.Context, id string) ([]models.Routing, error) {
		calls++
		return []models.Routing{{ID: "r1"}}, nil
	}, nil)

	snap := l.Load(context.Background(), "")

	assert.Zero(t, calls)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Data)
	assert.NoError(t, snap.Err)
	assert.Equal(t, StateReady, snap.State)
}

func TestLoadFailureKeepsDataAndNotifies(t *testing.T) {
	flash := notify.NewFlash()
	fail := false
	l := New(func(ctx context.Context, id string) ([]string, error) {
		if fail {
			return nil, &epdapi.HTTPError{Status: 500, Message: "database down"}
		}
		return []string{"C1"}, nil
	}, flash, WithTitle[string, []string]("Error fetching components"))

	l.Load(context.Background(), "P1")
	fail = true
	snap := l.Refetch(context.Background())

	assert.Equal(t, StateFailed, snap.State)
	assert.False(t, snap.Loading)
	assert.Equal(t, []string{"C1"}, snap.Data)
	require.Error(t, snap.Err)

	notices := flash.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.Notice{Level: notify.LevelError, Title: "Error fetching components", Description: "database down"}, notices[0])

	fail = false
	snap = l.Refetch(context.Background())
	assert.Equal(t, StateReady, snap.State)
	assert.NoError(t, snap.Err)
}

func TestLoadResetOnError(t *testing.T) {
	fail := false
	l := New(func(ctx context.Context, id string) (*models.Process, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return &models.Process{ID: id}, nil
	}, nil, WithResetOnError[string, *models.Process]())

	l.Load(context.Background(), "p1")
	fail = true
	snap := l.Load(context.Background(), "p1")

	assert.Nil(t, snap.Data)
	assert.Equal(t, StateFailed, snap.State)
}

func TestLoadDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	l := New(func(ctx context.Context, id string) (string, error) {
		if id == "slow" {
			close(started)
			<-release
		}
		return "data-" + id, nil
	}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var stale Snapshot[string]
	go func() {
		defer wg.Done()
		stale = l.Load(context.Background(), "slow")
	}()

	<-started
	fresh := l.Load(context.Background(), "fast")
	close(release)
	wg.Wait()

	assert.Equal(t, "data-fast", fresh.Data)
	assert.Equal(t, "data-fast", stale.Data)
	assert.Equal(t, "data-fast", l.Snapshot().Data)
	assert.Equal(t, StateReady, l.Snapshot().State)
}

func TestProcessesSortedByStep(t *testing.T) {
	l := Processes(func(context.Context) (*models.Page[models.Process], error) {
		return &models.Page[models.Process]{Data: []models.Process{
			{ID: "c", StepNumber: 3},
			{ID: "a", StepNumber: 1},
			{ID: "b", StepNumber: 2},
		}}, nil
	}, nil)

	snap := l.Load(context.Background(), None{})

	require.Len(t, snap.Data, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{snap.Data[0].StepNumber, snap.Data[1].StepNumber, snap.Data[2].StepNumber})
}

func TestProcessInputsFilteredByProcess(t *testing.T) {
	l := ProcessInputs(func(context.Context) ([]models.MeterOnProcess, error) {
		return []models.MeterOnProcess{
			{ID: "1", ProcessID: "p1"},
			{ID: "2", ProcessID: "p2"},
			{ID: "3", ProcessID: "p1"},
		}, nil
	}, nil)

	snap := l.Load(context.Background(), "p1")

	require.Len(t, snap.Data, 2)
	assert.Equal(t, "1", snap.Data[0].ID)
	assert.Equal(t, "3", snap.Data[1].ID)
}

func TestAnnualEfficiencyNeedsYearAndProcess(t *testing.T) {
	calls := 0
	l := AnnualEfficiency(func(ctx context.Context, year int, processID string) ([]models.AnnualEfficiencyRow, error) {
		calls++
		return []models.AnnualEfficiencyRow{{ProcessID: processID, Month: "January"}}, nil
	}, nil)

	l.Load(context.Background(), EfficiencyParams{Year: 2025})
	l.Load(context.Background(), EfficiencyParams{ProcessID: "p1"})
	assert.Zero(t, calls)

	snap := l.Load(context.Background(), EfficiencyParams{Year: 2025, ProcessID: "p1"})
	assert.Equal(t, 1, calls)
	assert.Len(t, snap.Data, 1)
}
