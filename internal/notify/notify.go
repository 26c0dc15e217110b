// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/packetplay/internal/capture"
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/playback"
	"github.com/llehouerou/packetplay/internal/ui/render"
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Freedesktop notification categories.
const (
	CategoryTransferComplete = "transfer.complete"
	CategoryNetworkError     = "network.error"
)

const defaultTimeout = 5000

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Category   string  // freedesktop category hint (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Finished describes a recording that was replayed to the end.
func Finished(rec *capture.Recording) Notification {
	n := Notification{
		Title:    "Playback finished",
		Category: CategoryTransferComplete,
		Timeout:  defaultTimeout,
		Urgency:  UrgencyNormal,
	}
	if rec == nil {
		return n
	}
	n.Body = fmt.Sprintf("%s\n%s packets in %s",
		render.Sanitize(rec.Info().ShortFileName),
		humanize.Comma(int64(rec.Len())),
		render.FormatDuration(rec.Duration()))
	return n
}

// SendFailed reports that playback paused because a datagram could not be sent.
func SendFailed(info model.RecordingInfo, err error) Notification {
	body := err.Error()
	if info.IsLoaded {
		body = render.Sanitize(info.ShortFileName) + "\n" + body
	}
	return Notification{
		Title:    "Playback paused",
		Body:     body,
		Category: CategoryNetworkError,
		Timeout:  defaultTimeout,
		Urgency:  UrgencyCritical,
	}
}

// Watch notifies about finished recordings and send failures until stop is
// called or the service closes.
func Watch(svc playback.Service, n Notifier, log *slog.Logger) (stop func()) {
	sub := svc.Subscribe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		// A new notification replaces the previous one instead of stacking.
		var lastID uint32
		notify := func(notif Notification) {
			notif.ReplacesID = lastID
			id, err := n.Notify(notif)
			if err != nil {
				if log != nil {
					log.Warn("notification failed", "err", err)
				}
				return
			}
			lastID = id
		}

		for {
			select {
			case <-sub.Done:
				return
			case e := <-sub.StateChanged:
				if e.Current == model.Finished {
					notify(Finished(svc.Capture()))
				}
			case e := <-sub.Error:
				notify(SendFailed(svc.Recording(), e.Err))
			case <-sub.PositionChanged:
			case <-sub.RecordingChanged:
			case <-sub.SettingsChanged:
			}
		}
	}()

	return func() {
		svc.Unsubscribe(sub)
		<-done
	}
}
