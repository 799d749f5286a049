package repository

import (
	"context"
	"errors"

	"devlink/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations.
// Experience and education mutations are scoped to the owning user's
// profile by query, so callers never pass sub-resources across owners.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID uint, expID string) (*models.Profile, error)
	AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID uint, eduID string) (*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withDetails preloads the owning user and the embedded collections,
// most-recent-first.
func (r *profileRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
}

// Upsert creates the profile when the user has none, otherwise overwrites
// its scalar fields. At most one profile per user.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	var existing models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
			return nil, err
		}
	}

	return r.GetByUserID(ctx, profile.UserID)
}

// GetByUserID returns (nil, nil) when the user has no profile.
func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.withDetails(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.withDetails(r.db.WithContext(ctx)).Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteByUserID removes the profile and its embedded collections.
// A missing profile is not an error; account deletion proceeds regardless.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
}

func (r *profileRepository) AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	exp.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, userID)
}

// RemoveExperience deletes the entry with the given sub-identity from the
// caller's own profile. An unknown id is a no-op, mirroring filter-removal
// semantics.
func (r *profileRepository) RemoveExperience(ctx context.Context, userID uint, expID string) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	err = r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profile.ID).
		Delete(&models.Experience{}).Error
	if err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	edu.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) RemoveEducation(ctx context.Context, userID uint, eduID string) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	err = r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profile.ID).
		Delete(&models.Education{}).Error
	if err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, userID)
}
