package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mindgrid/mindgrid-server/internal/model"
	"github.com/mindgrid/mindgrid-server/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Atomicity for registration and account updates comes from optimistic
// WATCH/MULTI transactions.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// CreateAccount reserves the normalized handle and writes the account
// document in one transaction. The WATCH on the reservation key makes
// concurrent registrations for the same handle race safely: exactly one
// EXEC succeeds, the rest re-run, observe the reservation and fail with
// model.ErrHandleTaken.
func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	handle := model.NormalizeHandle(account.Username)
	hKey := handleKey(handle)
	aKey := accountKey(account.UID)

	txf := func(tx *redis.Tx) error {
		err := tx.Get(ctx, hKey).Err()
		if err == nil {
			return model.ErrHandleTaken
		}
		if !errors.Is(err, redis.Nil) {
			return err
		}

		accountData, err := json.Marshal(account)
		if err != nil {
			return err
		}

		reservationData, err := json.Marshal(&model.HandleReservation{
			UID:        account.UID,
			Username:   account.Username,
			ReservedAt: account.CreatedAt,
		})
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, aKey, accountData, 0)
			pipe.Set(ctx, hKey, reservationData, 0)
			return nil
		})
		return err
	}

	return s.retryTx(ctx, txf, hKey)
}

func (s *Storage) GetAccount(ctx context.Context, uid model.AccountID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, accountKey(account.UID), data, 0).Err()
}

// UpdateAccount applies mutate under a WATCH on the account key. If
// another writer commits between the read and the EXEC, the transaction
// fails and re-runs against the fresh document, so the caller's mutate
// closure always sees current state when its write lands.
func (s *Storage) UpdateAccount(ctx context.Context, uid model.AccountID, mutate func(*model.Account) error) (*model.Account, error) {
	key := accountKey(uid)
	var updated *model.Account

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrAccountNotFound
			}
			return err
		}

		var account model.Account
		if err := json.Unmarshal(data, &account); err != nil {
			return err
		}

		if err := mutate(&account); err != nil {
			return err
		}

		out, err := json.Marshal(&account)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err == nil {
			updated = &account
		}
		return err
	}

	if err := s.retryTx(ctx, txf, key); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Storage) ListAccountIDs(ctx context.Context) ([]model.AccountID, error) {
	var ids []model.AccountID

	iter := s.client.Scan(ctx, 0, accountKeyPattern(), 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, accountIDFromKey(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (s *Storage) GetHandleReservation(ctx context.Context, handle string) (*model.HandleReservation, error) {
	data, err := s.client.Get(ctx, handleKey(handle)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrHandleNotFound
		}
		return nil, err
	}

	var reservation model.HandleReservation
	if err := json.Unmarshal(data, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// retryTx runs an optimistic transaction, re-running it a bounded
// number of times when the WATCH is invalidated by a concurrent write
func (s *Storage) retryTx(ctx context.Context, txf func(*redis.Tx) error, keys ...string) error {
	retries := s.cfg.MaxTxRetries
	if retries <= 0 {
		retries = DefaultConfig().MaxTxRetries
	}

	var err error
	for i := 0; i < retries; i++ {
		err = s.client.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}
