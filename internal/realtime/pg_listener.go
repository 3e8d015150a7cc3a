package realtime

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"weighbridge-backend/internal/metrics"
)

// Channel the change trigger notifies on; payload is "<user_id>:<table>"
const NotifyChannel = "weighbridge_changes"

// PGListener turns Postgres notifications into hub changes
type PGListener struct {
	Pool    *pgxpool.Pool
	Hub     *Hub
	Channel string
	Retry   time.Duration
}

func NewPGListener(pool *pgxpool.Pool, hub *Hub) *PGListener {
	return &PGListener{Pool: pool, Hub: hub, Channel: NotifyChannel, Retry: 2 * time.Second}
}

// ParseNotification reads a "<user_id>:<collection>" payload
func ParseNotification(payload string) (Change, bool) {
	uid, collection, ok := strings.Cut(payload, ":")
	if !ok {
		return Change{}, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(uid))
	if err != nil {
		return Change{}, false
	}
	switch collection {
	case CollectionEntities, CollectionTickets:
		return Change{UserID: id, Collection: collection}, true
	}
	return Change{}, false
}

// Run listens until ctx is cancelled, reconnecting after failures
func (l *PGListener) Run(ctx context.Context) {
	log.Printf("[Realtime] Listening on %s", l.Channel)
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			log.Println("[Realtime] Listener stopped")
			return
		}
		log.Printf("[Realtime] Listener error: %v (retrying in %v)", err, l.Retry)

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.Retry):
		}
	}
}

func (l *PGListener) listen(ctx context.Context) error {
	pooled, err := l.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	// the listening connection never goes back to the pool
	conn := pooled.Hijack()
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.Channel}.Sanitize()); err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		metrics.StoreNotificationsTotal.Inc()

		change, ok := ParseNotification(n.Payload)
		if !ok {
			log.Printf("[Realtime] Ignoring notification %q", n.Payload)
			continue
		}
		l.Hub.Publish(change)
	}
}
