package service

import (
	"errors"
	"strings"
	"time"

	"scholarshub/internal/domain/user/model"
	"scholarshub/internal/domain/user/repository"
	"scholarshub/pkg/database"
	"scholarshub/pkg/logger"
	"scholarshub/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service-level failures the handler maps to HTTP statuses.
var (
	ErrEmailTaken   = errors.New("email is already registered")
	ErrAuthFailed   = errors.New("invalid email or password")
	ErrUserNotFound = errors.New("user not found")
	ErrSelfFollow   = errors.New("cannot follow yourself")
	ErrForbidden    = errors.New("not authorized")
)

// Notifier is the slice of the notification service the user domain needs.
// A nil-safe implementation is injected by the module.
type Notifier interface {
	Notify(recipientID, senderID, notifType, postID string) error
}

// UserSummary is the flattened profile used inside follower/following lists.
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ProfileView is the full client-facing profile.
type ProfileView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Avatar    string        `json:"avatar"`
	Bio       string        `json:"bio"`
	School    string        `json:"school"`
	Subjects  []string      `json:"subjects"`
	Followers []UserSummary `json:"followers"`
	Following []UserSummary `json:"following"`
	Bookmarks []string      `json:"bookmarks"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// FollowResult is the follow-toggle response; both counts are re-read after
// the flip rather than adjusted locally.
type FollowResult struct {
	IsFollowing    bool  `json:"isFollowing"`
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
}

// BookmarkResult is the bookmark-toggle response.
type BookmarkResult struct {
	IsBookmarked bool     `json:"isBookmarked"`
	Bookmarks    []string `json:"bookmarks"`
}

// ProfileUpdate carries the editable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Name     *string
	Bio      *string
	School   *string
	Subjects []string
	Avatar   *string
}

type UserService interface {
	Register(name, email, password string) (*model.Profile, string, error)
	Login(email, password string) (string, error)
	GetProfile(id string) (*ProfileView, error)
	UpdateProfile(actorID, id string, update ProfileUpdate) (*ProfileView, error)
	ToggleFollow(actorID, targetID string) (*FollowResult, error)
	ToggleBookmark(actorID, postID string) (*BookmarkResult, error)
	Search(query string) ([]UserSummary, error)
}

type userService struct {
	repo     repository.UserRepository
	notifier Notifier
}

func NewUserService(repo repository.UserRepository, notifier Notifier) UserService {
	return &userService{repo: repo, notifier: notifier}
}

func (s *userService) Register(name, email, password string) (*model.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	profile := &model.Profile{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Subjects: []string{},
	}
	if err := s.repo.Create(profile); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(profile.ID)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

func (s *userService) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	profile, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAuthFailed
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)) != nil {
		return "", ErrAuthFailed
	}

	return utils.GenerateToken(profile.ID)
}

func (s *userService) GetProfile(id string) (*ProfileView, error) {
	profile, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	followers, err := s.repo.GetFollowers(id)
	if err != nil {
		return nil, err
	}
	following, err := s.repo.GetFollowing(id)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.repo.GetBookmarkPostIDs(id)
	if err != nil {
		return nil, err
	}

	return buildProfileView(profile, followers, following, bookmarks), nil
}

func (s *userService) UpdateProfile(actorID, id string, update ProfileUpdate) (*ProfileView, error) {
	if actorID != id {
		return nil, ErrForbidden
	}

	profile, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.School != nil {
		profile.School = *update.School
	}
	if update.Subjects != nil {
		profile.Subjects = update.Subjects
	}
	if update.Avatar != nil {
		profile.Avatar = *update.Avatar
	}

	if err := s.repo.Update(profile); err != nil {
		return nil, err
	}
	return s.GetProfile(id)
}

// ToggleFollow flips the follow edge. The follow notification fires only on
// the create transition, never on unfollow, and its failure never rolls the
// edge back.
func (s *userService) ToggleFollow(actorID, targetID string) (*FollowResult, error) {
	if actorID == targetID {
		return nil, ErrSelfFollow
	}

	if _, err := s.repo.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	following, err := s.repo.HasFollow(actorID, targetID)
	if err != nil {
		return nil, err
	}

	if following {
		if err := s.repo.DeleteFollow(actorID, targetID); err != nil {
			return nil, err
		}
		following = false
	} else {
		err := s.repo.CreateFollow(&model.Follow{FollowerID: actorID, FollowingID: targetID})
		// A concurrent toggle may have inserted the edge first. The pair
		// index makes that a unique violation, which converges to "following".
		if err != nil && !database.IsUniqueViolation(err) {
			return nil, err
		}
		following = true

		if err := s.notifier.Notify(targetID, actorID, "follow", ""); err != nil && logger.Log != nil {
			logger.Log.Warn("follow notification failed",
				zap.String("recipient", targetID), zap.Error(err))
		}
	}

	followersCount, err := s.repo.CountFollowers(targetID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.repo.CountFollowing(actorID)
	if err != nil {
		return nil, err
	}

	return &FollowResult{
		IsFollowing:    following,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
	}, nil
}

// ToggleBookmark deliberately skips the target-existence check: a bookmark
// may reference a since-deleted post without erroring, because post deletion
// cascades best-effort. Tightening this requires a product decision.
func (s *userService) ToggleBookmark(actorID, postID string) (*BookmarkResult, error) {
	bookmarked, err := s.repo.HasBookmark(actorID, postID)
	if err != nil {
		return nil, err
	}

	if bookmarked {
		if err := s.repo.DeleteBookmark(actorID, postID); err != nil {
			return nil, err
		}
		bookmarked = false
	} else {
		err := s.repo.CreateBookmark(&model.Bookmark{UserID: actorID, PostID: postID})
		if err != nil && !database.IsUniqueViolation(err) {
			return nil, err
		}
		bookmarked = true
	}

	bookmarks, err := s.repo.GetBookmarkPostIDs(actorID)
	if err != nil {
		return nil, err
	}

	return &BookmarkResult{IsBookmarked: bookmarked, Bookmarks: bookmarks}, nil
}

func (s *userService) Search(query string) ([]UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []UserSummary{}, nil
	}

	profiles, err := s.repo.Search(query, 20)
	if err != nil {
		return nil, err
	}

	results := make([]UserSummary, 0, len(profiles))
	for _, p := range profiles {
		results = append(results, UserSummary{ID: p.ID, Name: p.Name, Avatar: p.Avatar})
	}
	return results, nil
}

func buildProfileView(profile *model.Profile, followers, following []model.Profile, bookmarks []string) *ProfileView {
	view := &ProfileView{
		ID:        profile.ID,
		Name:      profile.Name,
		Email:     profile.Email,
		Avatar:    profile.Avatar,
		Bio:       profile.Bio,
		School:    profile.School,
		Subjects:  profile.Subjects,
		Followers: make([]UserSummary, 0, len(followers)),
		Following: make([]UserSummary, 0, len(following)),
		Bookmarks: bookmarks,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
	if view.Subjects == nil {
		view.Subjects = []string{}
	}
	if view.Bookmarks == nil {
		view.Bookmarks = []string{}
	}
	for _, f := range followers {
		view.Followers = append(view.Followers, UserSummary{ID: f.ID, Name: f.Name, Avatar: f.Avatar})
	}
	for _, f := range following {
		view.Following = append(view.Following, UserSummary{ID: f.ID, Name: f.Name, Avatar: f.Avatar})
	}
	return view
}
