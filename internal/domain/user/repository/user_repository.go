package repository

import (
	"strings"

	"scholarshub/internal/domain/user/model"

	"gorm.io/gorm"
)

// UserRepository is the persistence surface for profiles and the
// follow/bookmark join tables.
type UserRepository interface {
	Create(profile *model.Profile) error
	GetByID(id string) (*model.Profile, error)
	GetByEmail(email string) (*model.Profile, error)
	Update(profile *model.Profile) error
	Search(query string, limit int) ([]model.Profile, error)

	GetFollowingIDs(userID string) ([]string, error)
	GetFollowers(userID string) ([]model.Profile, error)
	GetFollowing(userID string) ([]model.Profile, error)
	HasFollow(followerID, followingID string) (bool, error)
	CreateFollow(follow *model.Follow) error
	DeleteFollow(followerID, followingID string) error
	CountFollowers(userID string) (int64, error)
	CountFollowing(userID string) (int64, error)

	HasBookmark(userID, postID string) (bool, error)
	CreateBookmark(bookmark *model.Bookmark) error
	DeleteBookmark(userID, postID string) error
	GetBookmarkPostIDs(userID string) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// --- Profile ---

func (r *userRepository) Create(profile *model.Profile) error {
	return r.db.Create(profile).Error
}

func (r *userRepository) GetByID(id string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) GetByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) Update(profile *model.Profile) error {
	return r.db.Save(profile).Error
}

// Search matches name or school case-insensitively. The pattern characters
// are stripped so user input cannot widen the match.
func (r *userRepository) Search(query string, limit int) ([]model.Profile, error) {
	sanitized := strings.NewReplacer("%", "", "_", "").Replace(query)
	pattern := "%" + sanitized + "%"

	var profiles []model.Profile
	err := r.db.
		Where("name ILIKE ? OR school ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

// --- Follow ---

func (r *userRepository) GetFollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (r *userRepository) GetFollowers(userID string) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.
		Joins("JOIN follows ON follows.follower_id = profiles.id").
		Where("follows.following_id = ?", userID).
		Find(&profiles).Error
	return profiles, err
}

func (r *userRepository) GetFollowing(userID string) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.
		Joins("JOIN follows ON follows.following_id = profiles.id").
		Where("follows.follower_id = ?", userID).
		Find(&profiles).Error
	return profiles, err
}

func (r *userRepository) HasFollow(followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) CreateFollow(follow *model.Follow) error {
	return r.db.Create(follow).Error
}

func (r *userRepository) DeleteFollow(followerID, followingID string) error {
	return r.db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{}).Error
}

func (r *userRepository) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *userRepository) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// --- Bookmark ---

func (r *userRepository) HasBookmark(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Bookmark{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) CreateBookmark(bookmark *model.Bookmark) error {
	return r.db.Create(bookmark).Error
}

func (r *userRepository) DeleteBookmark(userID, postID string) error {
	return r.db.
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Bookmark{}).Error
}

func (r *userRepository) GetBookmarkPostIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.Bookmark{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Pluck("post_id", &ids).Error
	return ids, err
}
