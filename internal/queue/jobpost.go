package queue

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var JobPostChangeChannel = "jobpost:change"

// ChangeKind tells subscribers what happened to a post.
type ChangeKind string

const (
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change is published whenever a post is written.
type Change struct {
	ID      uint64     `json:"id"`
	Version int64      `json:"version"`
	Kind    ChangeKind `json:"kind"`
}

type JobPostQueue interface {
	// PublishChange announces a post change to every subscriber.
	PublishChange(ctx context.Context, change *Change) error
	// Subscribe returns the stream of changes. The channel closes when ctx is done.
	Subscribe(ctx context.Context) (<-chan *Change, error)
}

var _ JobPostQueue = (*RedisJobPostQueue)(nil)

type RedisJobPostQueue struct {
	client *redis.Client
}

func NewRedisJobPostQueue(client *redis.Client) *RedisJobPostQueue {
	return &RedisJobPostQueue{client: client}
}

func (q *RedisJobPostQueue) PublishChange(ctx context.Context, change *Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}

	return q.client.Publish(ctx, JobPostChangeChannel, payload).Err()
}

func (q *RedisJobPostQueue) Subscribe(ctx context.Context) (<-chan *Change, error) {
	sub := q.client.Subscribe(ctx, JobPostChangeChannel)
	// wait for the subscription to be confirmed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan *Change)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				change := &Change{}
				if err := json.Unmarshal([]byte(msg.Payload), change); err != nil {
					logrus.Warnf("skipping malformed job post change: %v", err)
					continue
				}

				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

var _ JobPostQueue = (*LocalJobPostQueue)(nil)

// LocalJobPostQueue fans changes out to in-process subscribers.
// It is used when no redis is configured.
type LocalJobPostQueue struct {
	subs   chan chan *Change
	unsubs chan chan *Change
	pub    chan *Change
	count  chan chan int
}

func NewLocalJobPostQueue() *LocalJobPostQueue {
	q := &LocalJobPostQueue{
		subs:   make(chan chan *Change),
		unsubs: make(chan chan *Change),
		pub:    make(chan *Change),
		count:  make(chan chan int),
	}
	go q.run()
	return q
}

func (q *LocalJobPostQueue) run() {
	var subscribers []chan *Change
	for {
		select {
		case s := <-q.subs:
			subscribers = append(subscribers, s)
		case s := <-q.unsubs:
			for i, sub := range subscribers {
				if sub == s {
					subscribers = append(subscribers[:i], subscribers[i+1:]...)
					break
				}
			}
		case reply := <-q.count:
			reply <- len(subscribers)
		case change := <-q.pub:
			for _, s := range subscribers {
				select {
				case s <- change:
				default:
					logrus.Warnf("dropping change of job post %d for a slow subscriber", change.ID)
				}
			}
		}
	}
}

func (q *LocalJobPostQueue) PublishChange(ctx context.Context, change *Change) error {
	select {
	case q.pub <- change:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *LocalJobPostQueue) Subscribe(ctx context.Context) (<-chan *Change, error) {
	in := make(chan *Change, 64)
	select {
	case q.subs <- in:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	out := make(chan *Change)
	go func() {
		defer close(out)
		defer func() { q.unsubs <- in }()
		for {
			select {
			case <-ctx.Done():
				return
			case change := <-in:
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// subscribers returns the number of live subscriptions.
func (q *LocalJobPostQueue) subscribers() int {
	reply := make(chan int)
	q.count <- reply
	return <-reply
}
