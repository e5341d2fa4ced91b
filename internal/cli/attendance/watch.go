package attendance

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/julianstephens/gradeboard/internal/cli"
	apperrors "github.com/julianstephens/gradeboard/internal/errors"
	"github.com/julianstephens/gradeboard/internal/logger"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/poller"
)

type WatchCmd struct {
	Session  string        `arg:"" help:"Attendance session ID."`
	Interval time.Duration `help:"Refresh interval. Defaults to the poll_interval_seconds setting."`
	Count    int           `help:"Stop after this many refreshes (0 runs until interrupted)."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	client, err := ctx.NewClient(settings)
	if err != nil {
		return err
	}

	interval := c.Interval
	if interval <= 0 {
		interval = time.Duration(settings.PollIntervalSeconds) * time.Second
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		mu    sync.Mutex
		ticks int
	)
	p := poller.Start(runCtx, interval, func(tickCtx context.Context) {
		status, err := client.AttendanceStatus(tickCtx, c.Session)
		if tickCtx.Err() != nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		ticks++
		if err != nil {
			logger.Warn("Attendance status poll failed", "session", c.Session, "error", err)
			ctx.Printf("[%s] %s\n", ctx.Now().Format("15:04:05"), apperrors.Message(err))
		} else {
			renderStatus(ctx, status)
		}
		if c.Count > 0 && ticks >= c.Count {
			stop()
		}
	})
	<-runCtx.Done()
	p.Stop()
	return nil
}

func renderStatus(ctx *cli.Context, status models.AttendanceStatus) {
	ctx.Printf("[%s] Session %s  code %s  present %d/%d\n",
		ctx.Now().Format("15:04:05"), status.SessionID, orDash(status.CurrentCode), status.Present(), len(status.Students))
	for _, s := range status.Students {
		ctx.Printf("  %-12s %-24s %-10s %s\n", s.ID, s.Name, orDash(s.Status), s.Time)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
