package savestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/concurrency"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/repository"
	"github.com/osse101/MagicGarden_Go/internal/utils"
)

// Store is the only persistence boundary of the game. It owns one save slot of a
// repository and serializes every read-modify-write of that slot.
type Store struct {
	repo     repository.SaveRepository
	clock    clock.Clock
	locks    *concurrency.LockManager
	cache    *documentCache
	bus      event.Bus
	validate *validator.Validate
	slot     string
}

// Option configures a Store
type Option func(*Store)

// WithBus publishes save.written notifications on bus
func WithBus(bus event.Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// WithCache sizes the document cache
func WithCache(size int, ttl time.Duration) Option {
	return func(s *Store) { s.cache = newDocumentCache(size, ttl) }
}

// WithLockManager shares slot locks with another component
func WithLockManager(lm *concurrency.LockManager) Option {
	return func(s *Store) { s.locks = lm }
}

// New creates a store on the default slot
func New(repo repository.SaveRepository, clk clock.Clock, opts ...Option) *Store {
	s := &Store{
		repo:     repo,
		clock:    clk,
		locks:    concurrency.NewLockManager(),
		cache:    newDocumentCache(DefaultCacheSize, DefaultCacheTTL),
		validate: validator.New(),
		slot:     DefaultSlot,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithSlot returns a store for another save slot sharing this store's repository,
// locks and cache
func (s *Store) WithSlot(slot string) *Store {
	cp := *s
	cp.slot = slot
	return &cp
}

// Slot returns the slot name
func (s *Store) Slot() string {
	return s.slot
}

func (s *Store) key() string {
	return KeyPrefixSave + s.slot
}

// Load returns the slot's document. It never fails: a missing, unreadable or invalid
// document yields a fresh default game, and the bytes of an unreadable or invalid one
// are kept under the slot's backup key. Documents from older schema versions are
// migrated and written back before they are returned.
func (s *Store) Load(ctx context.Context) *domain.SaveDocument {
	var doc *domain.SaveDocument
	_ = s.locks.WithLock(s.key(), func() error {
		doc = s.load(ctx)
		return nil
	})
	return doc
}

// Update runs fn on a private copy of the document and writes the result back as one
// save. When fn returns an error nothing is written and the error is returned as is.
func (s *Store) Update(ctx context.Context, fn func(doc *domain.SaveDocument) error) (*domain.SaveDocument, error) {
	var result *domain.SaveDocument
	err := s.locks.WithLock(s.key(), func() error {
		doc := s.load(ctx)
		if err := fn(doc); err != nil {
			return err
		}
		if err := s.save(ctx, doc); err != nil {
			return err
		}
		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Save stamps and writes doc
func (s *Store) Save(ctx context.Context, doc *domain.SaveDocument) error {
	return s.locks.WithLock(s.key(), func() error {
		return s.save(ctx, doc)
	})
}

// Backup copies the currently stored document to the slot's backup key.
// A slot with nothing stored has nothing to back up.
func (s *Store) Backup(ctx context.Context) error {
	return s.locks.WithLock(s.key(), func() error {
		return s.backup(ctx)
	})
}

// Export renders the document as indented JSON tagged with the application identity
func (s *Store) Export(ctx context.Context) (string, error) {
	doc := s.Load(ctx)

	raw, err := toRaw(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}
	raw[fieldAppName] = domain.AppName
	raw[fieldAppVersion] = domain.AppVersion
	raw[fieldExportedAt] = s.clock.Now().UTC().Format(time.RFC3339)

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}
	return string(out), nil
}

// Import replaces the slot's document with an exported one. The text is fully parsed,
// migrated and validated before anything is written, and the previous document is
// copied to the backup key first.
func (s *Store) Import(ctx context.Context, text string) (*domain.SaveDocument, error) {
	log := logger.FromContext(ctx)

	var raw Raw
	if err := json.Unmarshal([]byte(text), &raw); err != nil || raw == nil {
		log.Warn(LogMsgImportRejected, "slot", s.slot, "reason", "unparseable")
		return nil, fmt.Errorf("%w: import is not a JSON object", domain.ErrMalformedDocument)
	}
	if name, ok := raw[fieldAppName]; ok && name != domain.AppName {
		log.Warn(LogMsgImportRejected, "slot", s.slot, "app_name", name)
		return nil, fmt.Errorf("%w: %v", domain.ErrForeignDocument, name)
	}
	delete(raw, fieldAppName)
	delete(raw, fieldAppVersion)
	delete(raw, fieldExportedAt)

	doc, _, err := s.fromRaw(raw)
	if err != nil {
		log.Warn(LogMsgImportRejected, "slot", s.slot, "error", err)
		return nil, err
	}

	err = s.locks.WithLock(s.key(), func() error {
		if err := s.backup(ctx); err != nil {
			log.Warn(LogMsgImportRejected, "slot", s.slot, "reason", "backup failed", "error", err)
			return err
		}
		return s.save(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgImported, "slot", s.slot, "version", doc.Version)
	return doc, nil
}

// load must be called with the slot lock held
func (s *Store) load(ctx context.Context) *domain.SaveDocument {
	log := logger.FromContext(ctx)

	if data, ok := s.cache.Get(s.slot); ok {
		var doc domain.SaveDocument
		if err := json.Unmarshal(data, &doc); err == nil {
			doc.Normalize()
			return &doc
		}
		s.cache.Invalidate(s.slot)
		log.Debug(LogMsgCacheInvalidated, "slot", s.slot)
	}

	data, err := s.repo.Get(ctx, s.key())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Info(LogMsgNoSaveFound, "slot", s.slot)
		} else {
			log.Warn(LogMsgLoadFallback, "slot", s.slot, "error", err)
		}
		return domain.NewSaveDocument(s.clock.Now())
	}

	doc, from, migrated, err := s.decode(data)
	if err != nil {
		log.Warn(LogMsgLoadFallback, "slot", s.slot, "error", err)
		s.preserve(ctx, data)
		return domain.NewSaveDocument(s.clock.Now())
	}

	if migrated {
		log.Info(LogMsgMigrated, "slot", s.slot, "from", from, "to", domain.SaveVersion, "steps", stepNames(from))
		if err := s.save(ctx, doc); err != nil {
			log.Warn(LogMsgMigratedPersist, "slot", s.slot, "error", err)
		}
		return doc
	}

	s.cache.Set(s.slot, data)
	return doc
}

// decode parses stored bytes, migrating them when they predate the current schema
func (s *Store) decode(data []byte) (*domain.SaveDocument, int, bool, error) {
	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, false, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	if raw == nil {
		return nil, 0, false, fmt.Errorf("%w: document is null", domain.ErrMalformedDocument)
	}
	doc, from, err := s.fromRaw(raw)
	if err != nil {
		return nil, 0, false, err
	}
	return doc, from, from < domain.SaveVersion, nil
}

// fromRaw migrates, decodes and validates a raw document
func (s *Store) fromRaw(raw Raw) (*domain.SaveDocument, int, error) {
	from, _ := Migrate(raw, s.clock.Now())

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, from, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	var doc domain.SaveDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, from, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	doc.Normalize()
	if err := s.validate.Struct(&doc); err != nil {
		return nil, from, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	return &doc, from, nil
}

// save must be called with the slot lock held
func (s *Store) save(ctx context.Context, doc *domain.SaveDocument) error {
	log := logger.FromContext(ctx)

	now := s.clock.Now()
	doc.Version = domain.SaveVersion
	doc.SavedAt = &now

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}

	retried := false
	err = s.repo.Put(ctx, s.key(), data)
	if errors.Is(err, domain.ErrQuotaExceeded) {
		log.Warn(LogMsgQuotaCleanup, "slot", s.slot, "bytes", len(data))
		s.clearOldData(ctx)
		retried = true
		err = s.repo.Put(ctx, s.key(), data)
		if err != nil {
			log.Error(LogMsgSaveRetryFailed, "slot", s.slot, "error", err)
		}
	}
	if err != nil {
		s.cache.Invalidate(s.slot)
		return fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}

	s.cache.Set(s.slot, data)
	log.Debug(LogMsgSaved, "slot", s.slot, "bytes", len(data), "retried", retried)
	event.Emit(ctx, s.bus, event.New(event.SaveWritten, event.SaveWrittenPayloadV1{
		Slot:    s.slot,
		Bytes:   len(data),
		Retried: retried,
	}))
	return nil
}

// clearOldData removes backups and caches of every slot, best effort
func (s *Store) clearOldData(ctx context.Context) {
	log := logger.FromContext(ctx)
	for _, prefix := range []string{KeyPrefixBackup, KeyPrefixCache} {
		keys, err := s.repo.Keys(ctx, prefix)
		if err != nil {
			log.Warn(LogMsgCleanupKeyFailed, "prefix", prefix, "error", err)
			continue
		}
		for _, k := range keys {
			if err := s.repo.Delete(ctx, k); err != nil {
				log.Warn(LogMsgCleanupKeyFailed, "key", k, "error", err)
			}
		}
	}
}

// backup must be called with the slot lock held
func (s *Store) backup(ctx context.Context) error {
	data, err := s.repo.Get(ctx, s.key())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}
	if err := s.repo.Put(ctx, KeyPrefixBackup+s.slot, data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}
	logger.FromContext(ctx).Info(LogMsgBackupWritten, "slot", s.slot, "bytes", len(data))
	return nil
}

// preserve copies unreadable stored bytes to the slot's backup key so the next save
// does not destroy the only copy. Best effort: failures are logged.
func (s *Store) preserve(ctx context.Context, data []byte) {
	log := logger.FromContext(ctx)
	if err := s.repo.Put(ctx, KeyPrefixBackup+s.slot, data); err != nil {
		log.Error(LogMsgPreserveFailed, "slot", s.slot, "error", err)
		return
	}
	log.Info(LogMsgUnreadablePreserved, "slot", s.slot, "bytes", len(data))
}

func toRaw(doc *domain.SaveDocument) (Raw, error) {
	var raw Raw
	if err := utils.CloneJSON(doc, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
