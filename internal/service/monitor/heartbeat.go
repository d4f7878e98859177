package monitor

import (
	"context"

	"github.com/KNICEX/arbitrage-agent/internal/metrics"
	"github.com/KNICEX/arbitrage-agent/internal/schedule"
	"github.com/KNICEX/arbitrage-agent/internal/service/notification"
)

var _ schedule.Task = (*HeartbeatTask)(nil)

// HeartbeatTask 存活通知, independent of any price data
type HeartbeatTask struct {
	notifier notification.Notifier
}

func NewHeartbeatTask(notifier notification.Notifier) *HeartbeatTask {
	return &HeartbeatTask{notifier: notifier}
}

func (t *HeartbeatTask) Name() string {
	return "heartbeat task"
}

// Run only fails when delivery fails; the scheduler logs it and keeps going.
func (t *HeartbeatTask) Run(ctx context.Context) error {
	err := t.notifier.Send(ctx, HeartbeatMessage)
	metrics.NotificationsTotal.WithLabelValues("heartbeat", metrics.Delivery(err == nil)).Inc()
	return err
}
