// Package valkey stores registrations as JSON documents in Valkey.
//
// Each record lives at zenith:registration:<id> and is indexed in the
// zenith:registrations sorted set, scored by an insertion sequence taken
// from zenith:registrations:seq. Both writes go through one MULTI/EXEC on
// a watched key so a record is either fully created or not at all.
package valkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/valkey-io/valkey-go"

	"github.com/Vasu1712/zenith-backend/internal/models"
)

const (
	keyPrefix = "zenith:registration:"
	indexKey  = "zenith:registrations"
	seqKey    = "zenith:registrations:seq"
)

// ErrDuplicate is returned when a record with the same id already exists.
var ErrDuplicate = errors.New("registration already exists")

// RegistrationStore implements registration.Store on a Valkey client.
type RegistrationStore struct {
	client valkey.Client
}

// NewRegistrationStore connects to the given addresses and verifies the
// connection with PING.
func NewRegistrationStore(ctx context.Context, addrs ...string) (*RegistrationStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: addrs})
	if err != nil {
		return nil, fmt.Errorf("failed to open valkey connection: %w", err)
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}
	log.Printf("Successfully connected to Valkey at %v for registrations.", addrs)
	return &RegistrationStore{client: client}, nil
}

// NewRegistrationStoreWithClient wraps an existing client.
func NewRegistrationStoreWithClient(client valkey.Client) *RegistrationStore {
	return &RegistrationStore{client: client}
}

func recordKey(id string) string {
	return keyPrefix + id
}

// Create writes the record and its index entry atomically. The record key
// is watched, so a concurrent writer for the same id aborts the
// transaction instead of overwriting it.
func (s *RegistrationStore) Create(ctx context.Context, r *models.Registration) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode registration: %w", err)
	}
	key := recordKey(r.ID)

	return s.client.Dedicated(func(c valkey.DedicatedClient) (err error) {
		if err := c.Do(ctx, c.B().Watch().Key(key).Build()).Error(); err != nil {
			return fmt.Errorf("watch registration %s: %w", r.ID, err)
		}
		defer func() {
			if err != nil {
				c.Do(ctx, c.B().Unwatch().Build())
			}
		}()

		exists, err := c.Do(ctx, c.B().Exists().Key(key).Build()).AsInt64()
		if err != nil {
			return fmt.Errorf("check registration %s: %w", r.ID, err)
		}
		if exists > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicate, r.ID)
		}
		seq, err := c.Do(ctx, c.B().Incr().Key(seqKey).Build()).AsInt64()
		if err != nil {
			return fmt.Errorf("next registration sequence: %w", err)
		}

		resps := c.DoMulti(ctx,
			c.B().Multi().Build(),
			c.B().Set().Key(key).Value(string(doc)).Nx().Build(),
			c.B().Zadd().Key(indexKey).ScoreMember().ScoreMember(float64(seq), r.ID).Build(),
			c.B().Exec().Build(),
		)
		for _, resp := range resps[:len(resps)-1] {
			if err := resp.Error(); err != nil {
				return fmt.Errorf("create registration %s: %w", r.ID, err)
			}
		}
		return execError(resps[len(resps)-1], r.ID)
	})
}

// execError inspects the EXEC reply: a nil reply means the watched key
// changed, and every queued command must have succeeded.
func execError(resp valkey.ValkeyResult, id string) error {
	msgs, err := resp.ToArray()
	if valkey.IsValkeyNil(err) {
		return fmt.Errorf("%w: %s", ErrDuplicate, id)
	}
	if err != nil {
		return fmt.Errorf("create registration %s: %w", id, err)
	}
	for i := range msgs {
		if err := msgs[i].Error(); err != nil {
			if valkey.IsValkeyNil(err) {
				return fmt.Errorf("%w: %s", ErrDuplicate, id)
			}
			return fmt.Errorf("create registration %s: %w", id, err)
		}
	}
	return nil
}

// List returns every registration in insertion order.
func (s *RegistrationStore) List(ctx context.Context) ([]*models.Registration, error) {
	ids, err := s.client.Do(ctx, s.client.B().Zrange().Key(indexKey).Min("0").Max("-1").Build()).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("list registration ids: %w", err)
	}
	if len(ids) == 0 {
		return []*models.Registration{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}
	msgs, err := s.client.Do(ctx, s.client.B().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}

	out := make([]*models.Registration, 0, len(msgs))
	for i, m := range msgs {
		doc, err := m.ToString()
		if valkey.IsValkeyNil(err) {
			log.Printf("[Registration] index entry %s has no document", ids[i])
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load registration %s: %w", ids[i], err)
		}
		var r models.Registration
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, fmt.Errorf("decode registration %s: %w", ids[i], err)
		}
		out = append(out, &r)
	}
	return out, nil
}

// Count returns the size of the index.
func (s *RegistrationStore) Count(ctx context.Context) (int64, error) {
	n, err := s.client.Do(ctx, s.client.B().Zcard().Key(indexKey).Build()).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

// Close releases the underlying client.
func (s *RegistrationStore) Close() {
	s.client.Close()
}
