package discovery

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dennis-tra/mdnssearch/internal/mock"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

func TestNewRetrier_defaults(t *testing.T) {
	r := NewRetrier(context.Background(), nil, nil, 0)
	assert.Equal(t, RetryDelay, r.delay)
	assert.NotNil(t, r.clk)
	assert.Equal(t, 0, r.Pending())
}

func TestRetrier_parentContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockPlatform(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRetrier(ctx, p, clock.NewMock(), time.Second)
	cancel()

	// no platform call expected
	r.Resolve(livingRoom(), KindFound, func(nsd.ServiceRecord) {
		assert.Fail(t, "action called")
	})
	assert.Len(t, r.cycles, 0)
}

func TestRetrier_Stop(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockPlatform(ctrl)
	clk := clock.NewMock()

	r := NewRetrier(context.Background(), p, clk, time.Second)

	p.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, rec nsd.ServiceRecord, h func(nsd.ResolveEvent)) {
			h(nsd.ResolveFailed{Record: rec, Err: fmt.Errorf("timeout")})
		}).
		Times(2)

	r.Resolve(livingRoom(), KindFound, func(nsd.ServiceRecord) {})
	r.Resolve(nsd.ServiceRecord{Name: "Kitchen", Type: airplay}, KindLost, func(nsd.ServiceRecord) {})
	require.Equal(t, 2, r.Pending())

	r.Stop()
	r.Stop()
	assert.Equal(t, 0, r.Pending())

	clk.Add(time.Minute)
	time.Sleep(10 * time.Millisecond)

	// a failure reported after stopping is not rescheduled
	r.handleResult(&cycle{record: livingRoom()}, nsd.ResolveFailed{Err: fmt.Errorf("late")})
	assert.Equal(t, 0, r.Pending())
}

func TestRetrier_Resolve_supersedesSameIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockPlatform(ctrl)
	clk := clock.NewMock()

	r := NewRetrier(context.Background(), p, clk, time.Second)

	var lostCtx context.Context
	gomock.InOrder(
		p.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(ctx context.Context, rec nsd.ServiceRecord, h func(nsd.ResolveEvent)) {
				lostCtx = ctx
				h(nsd.ResolveFailed{Record: rec, Err: fmt.Errorf("timeout")})
			}),
		p.EXPECT().
			Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(ctx context.Context, rec nsd.ServiceRecord, h func(nsd.ResolveEvent)) {
				h(nsd.Resolved{Record: resolved(rec)})
			}),
	)

	var lost, found atomic.Int32
	r.Resolve(livingRoom(), KindLost, func(nsd.ServiceRecord) { lost.Add(1) })
	require.Equal(t, 1, r.Pending())

	r.Resolve(livingRoom(), KindFound, func(nsd.ServiceRecord) { found.Add(1) })
	assert.Equal(t, 0, r.Pending())
	assert.ErrorIs(t, lostCtx.Err(), context.Canceled)

	// the superseded retry never fires
	clk.Add(time.Minute)
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, int32(0), lost.Load())
	assert.Equal(t, int32(1), found.Load())
	assert.Len(t, r.cycles, 0)
}

func TestRetrier_Resolve_otherIdentitiesIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockPlatform(ctrl)

	r := NewRetrier(context.Background(), p, clock.NewMock(), time.Second)

	p.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, rec nsd.ServiceRecord, h func(nsd.ResolveEvent)) {
			h(nsd.ResolveFailed{Record: rec, Err: fmt.Errorf("timeout")})
		}).
		Times(3)

	r.Resolve(livingRoom(), KindFound, func(nsd.ServiceRecord) {})
	r.Resolve(nsd.ServiceRecord{Name: "Kitchen", Type: airplay}, KindFound, func(nsd.ServiceRecord) {})
	r.Resolve(nsd.ServiceRecord{Name: "Living Room", Type: "_raop._tcp"}, KindFound, func(nsd.ServiceRecord) {})

	assert.Equal(t, 3, r.Pending())
	r.Stop()
}
