package progress

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/irsalhamdi/realty-training/background"
	"github.com/irsalhamdi/realty-training/client"
	"github.com/sirupsen/logrus"
)

const (
	// PersistInterval is how far playback must move, in seconds, before
	// another tick is written to the backend.
	PersistInterval = 10.0

	// DefaultWriteTimeout bounds one progress write. Writes for a video
	// wait on the previous one, so a hung request must not hold the rest.
	DefaultWriteTimeout = 10 * time.Second
)

type key struct {
	email   string
	videoID string
}

type playback struct {
	persistedAt float64
	watch       int
	completed   bool

	// pending is closed once the latest write for the video has finished.
	pending chan struct{}
}

// Tracker turns player ticks into progress records. Writes run in the
// background, in order per video; a failed write is logged and dropped so
// playback never waits on the network.
type Tracker struct {
	WriteTimeout time.Duration

	backend client.Backend
	bg      *background.Background
	log     logrus.FieldLogger

	mu    sync.Mutex
	plays map[key]*playback
}

func NewTracker(backend client.Backend, bg *background.Background, log logrus.FieldLogger) *Tracker {
	return &Tracker{
		WriteTimeout: DefaultWriteTimeout,
		backend:      backend,
		bg:           bg,
		log:          log,
		plays:        make(map[key]*playback),
	}
}

// Get fetches the stored progress. A video never played yields zero
// progress rather than an error.
func (t *Tracker) Get(ctx context.Context, email, videoID string) (Progress, error) {
	var p Progress
	err := t.backend.Get(ctx, client.Path("video-progress", email, videoID), &p)
	if errors.Is(err, apperr.ErrNotFound) {
		return Progress{UserEmail: email, VideoID: videoID}, nil
	}
	if err != nil {
		return Progress{}, err
	}
	return p, nil
}

// ReportTick records the player position. The first tick of a video is
// written, then one write per PersistInterval seconds of movement, plus the
// tick that first crosses the completion threshold.
func (t *Tracker) ReportTick(ctx context.Context, email, videoID string, current, total float64) Progress {
	pct, completed := Percent(current, total)
	pos := math.Max(current, 0)

	t.mu.Lock()
	k := key{email, videoID}
	pb, seen := t.plays[k]
	if !seen {
		pb = &playback{}
		t.plays[k] = pb
	}
	if w := int(pos); w > pb.watch {
		pb.watch = w
	}

	persist := !seen ||
		math.Abs(pos-pb.persistedAt) >= PersistInterval ||
		(completed && !pb.completed)
	if persist {
		pb.persistedAt = pos
	}
	if completed {
		pb.completed = true
	}
	p := Progress{
		UserEmail:  email,
		VideoID:    videoID,
		Percentage: pct,
		WatchTime:  pb.watch,
		Completed:  completed,
		UpdatedAt:  time.Now().UTC(),
	}
	t.mu.Unlock()

	if persist {
		t.save(ctx, p)
	}
	return p
}

// ReportComplete marks a video fully watched when playback reaches the end.
func (t *Tracker) ReportComplete(ctx context.Context, email, videoID string) Progress {
	t.mu.Lock()
	k := key{email, videoID}
	pb, ok := t.plays[k]
	if !ok {
		pb = &playback{}
		t.plays[k] = pb
	}
	pb.completed = true
	p := Progress{
		UserEmail:  email,
		VideoID:    videoID,
		Percentage: 100,
		WatchTime:  pb.watch,
		Completed:  true,
		UpdatedAt:  time.Now().UTC(),
	}
	t.mu.Unlock()

	t.save(ctx, p)
	return p
}

// Dashboard fetches the user's progress summary.
func (t *Tracker) Dashboard(ctx context.Context, email string) (Dashboard, error) {
	var d Dashboard
	if err := t.backend.Get(ctx, client.Path("dashboard", email), &d); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (t *Tracker) save(ctx context.Context, p Progress) {
	ctx = context.WithoutCancel(ctx)
	log := t.log.WithFields(logrus.Fields{
		"email":    p.UserEmail,
		"video_id": p.VideoID,
		"progress": p.Percentage,
	})

	t.mu.Lock()
	timeout := t.WriteTimeout
	pb := t.plays[key{p.UserEmail, p.VideoID}]
	prev := pb.pending
	done := make(chan struct{})
	pb.pending = done
	t.mu.Unlock()

	err := t.bg.Go(func() {
		defer close(done)
		if prev != nil {
			<-prev
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := t.backend.Post(ctx, "/video-progress", p, nil); err != nil {
			log.WithField("message", err).Warn("saving video progress failed")
			return
		}
		log.Debug("video progress saved")
	})
	if err != nil {
		close(done)
		log.WithField("message", err).Warn("video progress dropped")
	}
}
