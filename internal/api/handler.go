// Package api exposes the GraphQL-shaped endpoint. There is no dynamic
// resolver: a fixed table maps operation names to typed handlers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"feedbox/internal/authctx"
	"feedbox/internal/logger"
	"feedbox/internal/service"
)

type Handler struct {
	feeds    service.FeedService
	articles service.ArticleService
	auth     service.AuthService
	sessions *SessionConfig
}

func NewHandler(feeds service.FeedService, articles service.ArticleService, auth service.AuthService, sessions *SessionConfig) *Handler {
	return &Handler{feeds: feeds, articles: articles, auth: auth, sessions: sessions}
}

func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/graphql")
	g.Use(session.Middleware(h.sessions.Store()))
	g.Use(h.sessionAuth)
	g.POST("", h.handle)
}

// sessionAuth resolves the session to a user id when present; requests
// without one continue unauthenticated and are rejected per operation.
func (h *Handler) sessionAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userID, err := h.sessions.GetUserID(c); err == nil {
			ctx := authctx.SetUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		return next(c)
	}
}

// operations, longest first so query-text scanning never matches a prefix
// of a longer field.
var operations = []string{
	"markArticleUnread",
	"markArticleRead",
	"unsubscribeFeed",
	"unreadArticles",
	"markFeedUnread",
	"readArticles",
	"markFeedRead",
	"currentUser",
	"addFeed",
	"article",
	"logout",
	"login",
	"feeds",
	"feed",
}

func (h *Handler) handle(c echo.Context) error {
	var req request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, errorsResponse("malformed request body", codeBadUserInput))
	}

	op := resolveOperation(req)
	if op == "" {
		return c.JSON(http.StatusOK, errorsResponse("unknown operation", codeBadUserInput))
	}

	ctx := c.Request().Context()
	userID, authed := authctx.GetUserID(ctx)
	if op != "login" && !authed {
		return c.JSON(http.StatusOK, errorsResponse("authentication required", codeUnauthenticated))
	}

	var (
		data map[string]interface{}
		err  error
	)
	switch op {
	case "feeds":
		data, err = h.handleFeeds(c)
	case "feed":
		data, err = h.handleFeed(c, req)
	case "article":
		data, err = h.handleArticle(c, req)
	case "unreadArticles":
		data, err = h.handleArticlesByRead(c, "unreadArticles", false)
	case "readArticles":
		data, err = h.handleArticlesByRead(c, "readArticles", true)
	case "currentUser":
		data, err = h.handleCurrentUser(c, userID)
	case "addFeed":
		data, err = h.handleAddFeed(c, req)
	case "unsubscribeFeed":
		data, err = h.handleUnsubscribeFeed(c, req)
	case "markArticleRead":
		data, err = h.handleMarkArticle(c, req, "markArticleRead", true)
	case "markArticleUnread":
		data, err = h.handleMarkArticle(c, req, "markArticleUnread", false)
	case "markFeedRead":
		data, err = h.handleMarkFeed(c, req, "markFeedRead", true)
	case "markFeedUnread":
		data, err = h.handleMarkFeed(c, req, "markFeedUnread", false)
	case "login":
		data, err = h.handleLogin(c, req)
	case "logout":
		data, err = h.handleLogout(c)
	}
	if err != nil {
		return c.JSON(http.StatusOK, serviceErrorResponse(c, err))
	}

	return c.JSON(http.StatusOK, response{Data: data})
}

func (h *Handler) handleFeeds(c echo.Context) (map[string]interface{}, error) {
	ctx := c.Request().Context()
	feeds, err := h.feeds.List(ctx)
	if err != nil {
		return nil, err
	}
	flags, err := h.articles.ListFlags(ctx)
	if err != nil {
		return nil, err
	}

	flagsByFeed := make(map[int64][]articleDTO)
	for _, flag := range flags {
		flagsByFeed[flag.FeedID] = append(flagsByFeed[flag.FeedID], articleDTO{
			ID:     formatID(flag.ID),
			FeedID: formatID(flag.FeedID),
			IsRead: flag.IsRead,
		})
	}

	dtos := make([]feedDTO, 0, len(feeds))
	for _, feed := range feeds {
		dto := feedToDTO(feed)
		dto.Articles = flagsByFeed[feed.ID]
		dtos = append(dtos, dto)
	}
	return map[string]interface{}{"feeds": dtos}, nil
}

func (h *Handler) handleFeed(c echo.Context, req request) (map[string]interface{}, error) {
	id, err := idVariable(req, "id")
	if err != nil {
		return nil, err
	}
	ctx := c.Request().Context()
	feed, err := h.feeds.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	articles, err := h.articles.ListByFeed(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := feedToDTO(feed)
	dto.Articles = make([]articleDTO, 0, len(articles))
	for _, article := range articles {
		articleDTO := articleToDTO(article)
		articleDTO.Feed = nil
		dto.Articles = append(dto.Articles, articleDTO)
	}
	return map[string]interface{}{"feed": dto}, nil
}

func (h *Handler) handleArticle(c echo.Context, req request) (map[string]interface{}, error) {
	id, err := idVariable(req, "id")
	if err != nil {
		return nil, err
	}
	article, err := h.articles.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"article": articleToDTO(article)}, nil
}

func (h *Handler) handleArticlesByRead(c echo.Context, field string, isRead bool) (map[string]interface{}, error) {
	ctx := c.Request().Context()
	list := h.articles.ListUnread
	if isRead {
		list = h.articles.ListRead
	}
	articles, err := list(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]articleDTO, 0, len(articles))
	for _, article := range articles {
		dtos = append(dtos, articleToDTO(article))
	}
	return map[string]interface{}{field: dtos}, nil
}

func (h *Handler) handleCurrentUser(c echo.Context, userID int64) (map[string]interface{}, error) {
	user, err := h.auth.GetUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return map[string]interface{}{"currentUser": nil}, nil
		}
		return nil, err
	}
	return map[string]interface{}{"currentUser": userToDTO(user)}, nil
}

func (h *Handler) handleAddFeed(c echo.Context, req request) (map[string]interface{}, error) {
	url, ok := stringVariable(req, "url")
	if !ok {
		return nil, service.ErrInvalid
	}
	feed, err := h.feeds.Add(c.Request().Context(), url)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"addFeed": feedToDTO(feed)}, nil
}

func (h *Handler) handleUnsubscribeFeed(c echo.Context, req request) (map[string]interface{}, error) {
	id, err := idVariable(req, "id")
	if err != nil {
		return nil, err
	}
	if _, err := h.feeds.Unsubscribe(c.Request().Context(), id); err != nil {
		return nil, err
	}
	return map[string]interface{}{"unsubscribeFeed": true}, nil
}

func (h *Handler) handleMarkArticle(c echo.Context, req request, field string, isRead bool) (map[string]interface{}, error) {
	id, err := idVariable(req, "id")
	if err != nil {
		return nil, err
	}
	article, err := h.articles.SetReadState(c.Request().Context(), id, isRead)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{field: articleToDTO(article)}, nil
}

func (h *Handler) handleMarkFeed(c echo.Context, req request, field string, isRead bool) (map[string]interface{}, error) {
	id, err := idVariable(req, "id")
	if err != nil {
		return nil, err
	}
	feed, err := h.feeds.SetReadState(c.Request().Context(), id, isRead)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{field: feedToDTO(feed)}, nil
}

func (h *Handler) handleLogin(c echo.Context, req request) (map[string]interface{}, error) {
	username, _ := stringVariable(req, "username")
	password, _ := stringVariable(req, "password")

	user, err := h.auth.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		return nil, err
	}
	if err := h.sessions.SetUserID(c, user.ID); err != nil {
		return nil, err
	}
	return map[string]interface{}{"login": authPayloadDTO{User: userToDTO(user)}}, nil
}

func (h *Handler) handleLogout(c echo.Context) (map[string]interface{}, error) {
	if err := h.sessions.Destroy(c); err != nil {
		return nil, err
	}
	return map[string]interface{}{"logout": true}, nil
}

// resolveOperation picks the operation from operationName when it names a
// known field, otherwise scans the query text.
func resolveOperation(req request) string {
	name := strings.TrimSpace(req.OperationName)
	for _, op := range operations {
		if strings.EqualFold(name, op) {
			return op
		}
	}
	for _, op := range operations {
		if containsField(req.Query, op) {
			return op
		}
	}
	return ""
}

func containsField(query, field string) bool {
	for start := 0; ; {
		idx := strings.Index(query[start:], field)
		if idx < 0 {
			return false
		}
		idx += start
		before := idx == 0 || !isWordChar(query[idx-1])
		afterIdx := idx + len(field)
		after := afterIdx >= len(query) || !isWordChar(query[afterIdx])
		if before && after {
			return true
		}
		start = idx + len(field)
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

func stringVariable(req request, name string) (string, bool) {
	value, ok := req.Variables[name].(string)
	return value, ok
}

func idVariable(req request, name string) (int64, error) {
	switch v := req.Variables[name].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, service.ErrInvalid
		}
		return id, nil
	case float64:
		return int64(v), nil
	default:
		return 0, service.ErrInvalid
	}
}

func errorsResponse(message, code string) response {
	return response{Errors: []responseError{{
		Message:    message,
		Extensions: errorExtensions{Code: code},
	}}}
}

func serviceErrorResponse(c echo.Context, err error) response {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return errorsResponse("invalid input", codeBadUserInput)
	case errors.Is(err, service.ErrNotFound):
		return errorsResponse("not found", codeNotFound)
	case errors.Is(err, service.ErrConflict):
		return errorsResponse("already exists", codeConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		return errorsResponse("invalid credentials", codeUnauthenticated)
	default:
		logger.Error("operation failed", "module", "api", "action", "handle", "resource", "graphql", "result", "failed", "error", err)
		return errorsResponse("internal error", codeInternal)
	}
}
