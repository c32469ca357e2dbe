package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/redis/go-redis/v9"
)

const DefaultSeatLockTTL = 30 * time.Second

var lockSeatsScript = redis.NewScript(`
    -- KEYS = seat lock keys (e.g., seat_lock:sch-1:seat-1, seat_lock:sch-1:seat-2 etc.)
    -- ARGV = [owner, ttl]

    for i=1, #KEYS do
        local holder = redis.call("GET", KEYS[i])
        if holder and holder ~= ARGV[1] then
            return {err = "seat already locked"}
        end
    end

    for i=1, #KEYS do
        redis.call("SET", KEYS[i], ARGV[1], "EX", ARGV[2])
    end

    return "OK"
`)

// only the owner may release a lock, an expired and re-acquired key is left alone
var unlockSeatsScript = redis.NewScript(`
    local released = 0

    for i=1, #KEYS do
        if redis.call("GET", KEYS[i]) == ARGV[1] then
            redis.call("DEL", KEYS[i])
            released = released + 1
        end
    end

    return released
`)

// RedisSeatLocker serialises validate-then-reserve for the same seats across processes.
type RedisSeatLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisSeatLocker(client redis.UniversalClient, ttl time.Duration) *RedisSeatLocker {
	if ttl <= 0 {
		ttl = DefaultSeatLockTTL
	}

	return &RedisSeatLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *RedisSeatLocker) Lock(ctx context.Context, scheduleID string, seatIDs []string, owner string) error {
	if len(seatIDs) == 0 {
		return nil
	}

	keys := seatLockKeys(scheduleID, seatIDs)

	err := lockSeatsScript.Run(ctx, l.client, keys, owner, int(l.ttl.Seconds())).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, "seat already locked") {
			return domain.ErrSeatAlreadyReserved
		}

		return fmt.Errorf("failed to lock seats: %w", err)
	}

	return nil
}

func (l *RedisSeatLocker) Unlock(ctx context.Context, scheduleID string, seatIDs []string, owner string) error {
	if len(seatIDs) == 0 {
		return nil
	}

	keys := seatLockKeys(scheduleID, seatIDs)

	err := unlockSeatsScript.Run(ctx, l.client, keys, owner).Err()
	if err != nil {
		return fmt.Errorf("failed to unlock seats: %w", err)
	}

	return nil
}

func seatLockKeys(scheduleID string, seatIDs []string) []string {
	keys := make([]string, len(seatIDs))
	for i, seatID := range seatIDs {
		keys[i] = SeatLockKey(scheduleID, seatID)
	}

	return keys
}

func SeatLockKey(scheduleID, seatID string) string {
	return fmt.Sprintf("seat_lock:%s:%s", scheduleID, seatID)
}
