package service

import (
	"testing"
	"time"

	"scholarshub/internal/domain/post/model"
	usermodel "scholarshub/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
)

func postWithComments(n int) *model.Post {
	author := &usermodel.Profile{Name: "Amina", Avatar: "a.png", School: "Northside High"}
	author.ID = "author-1"

	post := &model.Post{
		AuthorID: "author-1",
		Type:     model.TypePDF,
		Title:    "Wave mechanics notes",
		Subject:  "Physics",
		Author:   author,
	}
	post.ID = "post-1"

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := model.Comment{PostID: "post-1", AuthorID: "commenter", Text: "comment"}
		c.ID = string(rune('a' + i))
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		post.Comments = append(post.Comments, c)
	}
	return post
}

func TestShapePost_CommentCountBeforeTruncation(t *testing.T) {
	post := postWithComments(7)

	listView := shapePost(post, commentPreviewLimit)
	assert.Equal(t, 7, listView.CommentCount)
	assert.Len(t, listView.Comments, 3)

	fullView := shapePost(post, 0)
	assert.Equal(t, 7, fullView.CommentCount)
	assert.Len(t, fullView.Comments, 7)
}

func TestShapePost_CommentsNewestFirst(t *testing.T) {
	post := postWithComments(5)

	shaped := shapePost(post, commentPreviewLimit)

	for i := 1; i < len(shaped.Comments); i++ {
		assert.False(t, shaped.Comments[i].CreatedAt.After(shaped.Comments[i-1].CreatedAt))
	}
	// Preview keeps the newest comments, so the last-written one leads.
	assert.Equal(t, "e", shaped.Comments[0].ID)
}

func TestShapePost_DoesNotMutateInput(t *testing.T) {
	post := postWithComments(5)
	firstBefore := post.Comments[0].ID

	shapePost(post, commentPreviewLimit)

	assert.Len(t, post.Comments, 5)
	assert.Equal(t, firstBefore, post.Comments[0].ID)
}

func TestShapePost_LikesAreUserIDs(t *testing.T) {
	post := postWithComments(0)
	post.Likes = []model.Like{
		{UserID: "u1", PostID: "post-1"},
		{UserID: "u2", PostID: "post-1"},
	}

	shaped := shapePost(post, commentPreviewLimit)

	assert.Equal(t, 2, shaped.LikeCount)
	assert.ElementsMatch(t, []string{"u1", "u2"}, shaped.Likes)
}

func TestShapePost_FlattensAuthor(t *testing.T) {
	post := postWithComments(0)

	shaped := shapePost(post, commentPreviewLimit)

	assert.Equal(t, "author-1", shaped.Author.ID)
	assert.Equal(t, "Amina", shaped.Author.Name)
	assert.Equal(t, "Northside High", shaped.Author.School)
}

func TestShapePost_NilAuthorYieldsEmpty(t *testing.T) {
	post := postWithComments(0)
	post.Author = nil

	shaped := shapePost(post, commentPreviewLimit)

	assert.Empty(t, shaped.Author.ID)
}

func TestExtractYoutubeVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":        "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                       "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":          "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":         "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s":  "dQw4w9WgXcQ",
		"https://example.com/watch?v=dQw4w9WgXcQ":            "",
		"not a url":                                          "",
		"https://www.youtube.com/playlist?list=PLabcdef1234": "",
	}
	for url, want := range cases {
		assert.Equal(t, want, extractYoutubeVideoID(url), "url: %s", url)
	}
}

func TestExtractYoutubePlaylistID(t *testing.T) {
	assert.Equal(t, "PLabcdef1234",
		extractYoutubePlaylistID("https://www.youtube.com/playlist?list=PLabcdef1234"))
	assert.Equal(t, "PLabcdef1234",
		extractYoutubePlaylistID("https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabcdef1234"))
	assert.Equal(t, "",
		extractYoutubePlaylistID("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
}
