package repository

import (
	"fmt"
	"strings"

	"scholarshub/internal/domain/post/model"
	"scholarshub/pkg/database"

	"gorm.io/gorm"
)

// ExploreFilter narrows the explore page. Zero values mean "no filter";
// Subject "All" is treated the same as empty.
type ExploreFilter struct {
	Subject string
	Type    string
	Search  string
}

// Tables swept when a post is removed, in deletion order. Only tables on
// this list are ever touched; each entry names the column referencing the
// post.
var cascadeTargets = []struct {
	table  string
	column string
}{
	{"comments", "post_id"},
	{"likes", "post_id"},
	{"bookmarks", "post_id"},
	{"notifications", "post_id"},
	{"reports", "post_id"},
}

type PostRepository interface {
	Create(post *model.Post) error
	GetByID(id string) (*model.Post, error)
	GetPage(authorIDs []string, offset, limit int) ([]model.Post, int64, error)
	GetRecent(limit int) ([]model.Post, error)
	GetExplorePage(filter ExploreFilter, offset, limit int) ([]model.Post, int64, error)
	GetByAuthor(authorID string) ([]model.Post, error)
	GetByIDs(ids []string) ([]model.Post, error)
	DeleteWithRelated(postID string) error

	CreateComment(comment *model.Comment) error
	GetComment(id string) (*model.Comment, error)

	HasLike(userID, postID string) (bool, error)
	CreateLike(like *model.Like) error
	DeleteLike(userID, postID string) error
	GetLikeUserIDs(postID string) ([]string, error)

	HasReport(postID, reporterID string) (bool, error)
	CreateReport(report *model.Report) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withAssociations pulls in everything the shaping layer needs in one go:
// flattened author, comments with their authors, and like rows.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar", "school")
		}).
		Preload("Comments.Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Preload("Comments").
		Preload("Likes")
}

func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := withAssociations(r.db).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPage returns one page of posts by the given authors, newest first,
// together with the exact total match count.
func (r *postRepository) GetPage(authorIDs []string, offset, limit int) ([]model.Post, int64, error) {
	var total int64
	if err := r.db.Model(&model.Post{}).
		Where("author_id IN ?", authorIDs).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := withAssociations(r.db).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// GetRecent returns the globally newest posts, used for feed backfill.
func (r *postRepository) GetRecent(limit int) ([]model.Post, error) {
	var posts []model.Post
	err := withAssociations(r.db).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetExplorePage(filter ExploreFilter, offset, limit int) ([]model.Post, int64, error) {
	query := r.db.Model(&model.Post{})

	if filter.Subject != "" && filter.Subject != "All" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if term := sanitizeSearch(filter.Search); term != "" {
		pattern := "%" + term + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR subject ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := withAssociations(query.Session(&gorm.Session{})).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) GetByAuthor(authorID string) ([]model.Post, error) {
	var posts []model.Post
	err := withAssociations(r.db).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetByIDs(ids []string) ([]model.Post, error) {
	if len(ids) == 0 {
		return []model.Post{}, nil
	}
	var posts []model.Post
	err := withAssociations(r.db).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// DeleteWithRelated sweeps the cascade targets before removing the post row.
// A target table that does not exist yet is skipped; any other error aborts
// the sweep so the post row survives a partial cascade.
func (r *postRepository) DeleteWithRelated(postID string) error {
	for _, target := range cascadeTargets {
		stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", target.table, target.column)
		if err := r.db.Exec(stmt, postID).Error; err != nil {
			if database.IsUndefinedTable(err) {
				continue
			}
			return fmt.Errorf("cascade delete %s: %w", target.table, err)
		}
	}
	return r.db.Where("id = ?", postID).Delete(&model.Post{}).Error
}

// --- Comment ---

func (r *postRepository) CreateComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *postRepository) GetComment(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Where("id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// --- Like ---

func (r *postRepository) HasLike(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) CreateLike(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *postRepository) DeleteLike(userID, postID string) error {
	return r.db.
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{}).Error
}

func (r *postRepository) GetLikeUserIDs(postID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.Like{}).
		Where("post_id = ?", postID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// --- Report ---

func (r *postRepository) HasReport(postID, reporterID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Report{}).
		Where("post_id = ? AND reporter_id = ?", postID, reporterID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) CreateReport(report *model.Report) error {
	return r.db.Create(report).Error
}

// sanitizeSearch strips characters the pattern-match syntax treats specially
// so user input cannot widen or break the match.
func sanitizeSearch(term string) string {
	return strings.NewReplacer("%", "", "_", "", ",", "", "(", "", ")", "").Replace(strings.TrimSpace(term))
}
