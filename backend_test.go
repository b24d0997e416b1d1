package montecarlo

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/destel/montecarlo/internal/th"
)

func TestBackendName(t *testing.T) {
	for _, b := range []Backend{Pool(), Spawn()} {
		t.Run(b.String(), func(t *testing.T) {
			parsed, err := ParseBackend(b.String())
			th.ExpectNoError(t, err)
			th.ExpectValue(t, parsed, b)
		})
	}
}

func TestBackend(t *testing.T) {
	for _, b := range []Backend{Pool(), Spawn()} {
		for _, n := range []int{1, 4} {
			t.Run(th.Name(b, "each worker once", n), func(t *testing.T) {
				var calls [8]atomic.Int64

				err := b.Run(context.Background(), n, func(ctx context.Context, worker int) error {
					calls[worker].Add(1)
					return nil
				})

				th.ExpectNoError(t, err)
				for i := 0; i < n; i++ {
					th.ExpectValue(t, calls[i].Load(), int64(1))
				}
				th.ExpectValue(t, calls[n].Load(), int64(0))
			})

			t.Run(th.Name(b, "concurrency", n), func(t *testing.T) {
				monitor := th.NewConcurrencyMonitor(1 * time.Second)

				th.ExpectNotHang(t, 10*time.Second, func() {
					_ = b.Run(context.Background(), n, func(ctx context.Context, worker int) error {
						monitor.Inc()
						defer monitor.Dec()
						return nil
					})
				})

				th.ExpectValue(t, monitor.Max(), n)
			})
		}

		t.Run(th.Name(b, "error cancels others"), func(t *testing.T) {
			errBoom := errors.New("boom")

			err := b.Run(context.Background(), 4, func(ctx context.Context, worker int) error {
				if worker == 2 {
					return errBoom
				}

				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(10 * time.Second):
					return errors.New("not canceled")
				}
			})

			th.ExpectErrorIs(t, err, errBoom)
		})
	}
}
