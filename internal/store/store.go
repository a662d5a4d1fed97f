package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kivly/backend/internal/models"
	"github.com/kivly/backend/internal/types"
)

// ProfileStorageKey is the fixed key the serialized profile lives under.
const ProfileStorageKey = "kivly_user_profile"

// StorageRecord is a single serialized value under a fixed key.
type StorageRecord struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StorageRecord) TableName() string {
	return "storage_records"
}

// ProfileStore owns the persisted user profile. It is meant for a single
// client instance: reads and writes are serialized in-process, and the
// in-memory copy is updated optimistically before each persist, so a failed
// write leaves the session state applied but not guaranteed durable.
type ProfileStore struct {
	db     *gorm.DB
	logger *zap.Logger

	mu      sync.Mutex
	current models.UserProfile
	loaded  bool
}

// NewProfileStore migrates the backing table and returns a store.
func NewProfileStore(db *gorm.DB, logger *zap.Logger) (*ProfileStore, error) {
	if err := db.AutoMigrate(&StorageRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage records: %w", err)
	}
	return &ProfileStore{db: db, logger: logger}, nil
}

// Load reads the persisted profile. A missing or unreadable record is
// non-fatal: the documented default profile is returned and the condition
// is logged. Records predating the savedRecipes field are backfilled with
// an empty collection.
func (s *ProfileStore) Load(ctx context.Context) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *ProfileStore) loadLocked(ctx context.Context) models.UserProfile {
	var record StorageRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", ProfileStorageKey).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("failed to read stored profile, using defaults", zap.Error(err))
		}
		s.current = models.DefaultProfile()
		s.loaded = true
		return s.current
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(record.Value), &profile); err != nil {
		s.logger.Warn("stored profile is corrupt, using defaults", zap.Error(err))
		s.current = models.DefaultProfile()
		s.loaded = true
		return s.current
	}

	backfill(&profile)
	s.current = profile
	s.loaded = true
	return s.current
}

// Update shallow-merges the patch onto the current profile, persists the
// merged result and returns it. The in-memory state is updated even when
// the persist fails; the returned error then means "applied in session,
// not guaranteed durable".
func (s *ProfileStore) Update(ctx context.Context, patch models.ProfilePatch) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded(ctx)
	merged := s.current.Merge(patch)
	s.current = merged

	if err := s.persist(ctx, merged); err != nil {
		return merged, fmt.Errorf("failed to persist profile: %w", err)
	}
	return merged, nil
}

// ToggleSavedRecipe flips the recipe's membership in the saved collection
// and persists the result. Two identical toggles return the collection to
// its original state.
func (s *ProfileStore) ToggleSavedRecipe(ctx context.Context, recipe types.Recipe) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded(ctx)
	s.current.SavedRecipes = s.current.SavedRecipes.Toggle(recipe)

	if err := s.persist(ctx, s.current); err != nil {
		return s.current, fmt.Errorf("failed to persist profile: %w", err)
	}
	return s.current, nil
}

// IsSaved is a pure membership test by title equality.
func (s *ProfileStore) IsSaved(ctx context.Context, recipe types.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded(ctx)
	return s.current.SavedRecipes.Contains(recipe.Title)
}

// persist writes the whole profile as one record. The single-row upsert is
// atomic, so a reload observes either the prior state or the full merge,
// never a partial write.
func (s *ProfileStore) persist(ctx context.Context, profile models.UserProfile) error {
	value, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	record := StorageRecord{
		Key:       ProfileStorageKey,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&record).Error
}

func (s *ProfileStore) ensureLoaded(ctx context.Context) {
	if !s.loaded {
		s.loadLocked(ctx)
	}
}

func backfill(profile *models.UserProfile) {
	if profile.SavedRecipes == nil {
		profile.SavedRecipes = models.SavedRecipeCollection{}
	}
	if profile.Allergies == nil {
		profile.Allergies = []string{}
	}
	if profile.KitchenTools == nil {
		profile.KitchenTools = []string{}
	}
	if profile.PantryEssentials == nil {
		profile.PantryEssentials = []string{}
	}
}
