package api

import (
	"strconv"
	"time"

	"feedbox/internal/model"
)

// Wire shapes follow the GraphQL schema: IDs serialize as strings,
// timestamps as RFC 3339.

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type response struct {
	Data   map[string]interface{} `json:"data,omitempty"`
	Errors []responseError        `json:"errors,omitempty"`
}

type responseError struct {
	Message    string          `json:"message"`
	Extensions errorExtensions `json:"extensions"`
}

type errorExtensions struct {
	Code string `json:"code"`
}

const (
	codeUnauthenticated = "UNAUTHENTICATED"
	codeBadUserInput    = "BAD_USER_INPUT"
	codeNotFound        = "NOT_FOUND"
	codeConflict        = "CONFLICT"
	codeInternal        = "INTERNAL_SERVER_ERROR"
)

type feedDTO struct {
	ID           string       `json:"id"`
	URL          string       `json:"url"`
	Title        string       `json:"title"`
	FetchedAt    *string      `json:"fetchedAt"`
	IsSubscribed bool         `json:"isSubscribed"`
	Articles     []articleDTO `json:"articles,omitempty"`
}

type articleDTO struct {
	ID     string   `json:"id"`
	FeedID string   `json:"feedId"`
	GUID   string   `json:"guid"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	IsRead bool     `json:"isRead"`
	Feed   *feedDTO `json:"feed,omitempty"`
}

type userDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type authPayloadDTO struct {
	User userDTO `json:"user"`
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func feedToDTO(feed model.Feed) feedDTO {
	dto := feedDTO{
		ID:           formatID(feed.ID),
		URL:          feed.URL,
		Title:        feed.Title,
		IsSubscribed: feed.IsSubscribed,
	}
	if feed.FetchedAt != nil {
		s := feed.FetchedAt.UTC().Format(time.RFC3339)
		dto.FetchedAt = &s
	}
	return dto
}

func articleToDTO(article model.Article) articleDTO {
	dto := articleDTO{
		ID:     formatID(article.ID),
		FeedID: formatID(article.FeedID),
		GUID:   article.GUID,
		Title:  article.Title,
		URL:    article.URL,
		IsRead: article.IsRead,
	}
	if article.Feed != nil {
		feed := feedToDTO(*article.Feed)
		dto.Feed = &feed
	}
	return dto
}

func userToDTO(user model.User) userDTO {
	return userDTO{
		ID:       formatID(user.ID),
		Username: user.Username,
	}
}
