package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"feedbox/internal/api"
	"feedbox/internal/fetcher"
	"feedbox/internal/ingest"
	"feedbox/internal/repository"
	"feedbox/internal/repository/testutil"
	"feedbox/internal/scheduler"
	"feedbox/internal/service"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const stubRSS = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Stub Blog</title>
    <item><guid>g1</guid><title>First</title><link>https://example.com/1</link></item>
    <item><guid>g2</guid><title>Second</title><link>https://example.com/2</link></item>
  </channel>
</rss>`

type testEnv struct {
	server  *httptest.Server
	client  *http.Client
	feedURL string
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	feedRepo := repository.NewFeedRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	userRepo := repository.NewUserRepository(db)

	feedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(stubRSS))
	}))
	t.Cleanup(feedServer.Close)

	client := fetcher.New("Feedbox-test/1.0", fetcher.WithPerHostRate(rate.Inf, 1))
	engine := ingest.NewEngine(db, feedRepo, client)
	sched := scheduler.New(feedRepo, engine, time.Hour, 2)

	authService := service.NewAuthService(userRepo)
	feedService := service.NewFeedService(feedRepo, articleRepo, sched)
	articleService := service.NewArticleService(articleRepo)

	_, err := authService.CreateUser(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	sessions := api.NewSessionConfig("test-secret-test-secret", true)
	handler := api.NewHandler(feedService, articleService, authService, sessions)
	router := api.NewRouter(handler)

	apiServer := httptest.NewServer(router)
	t.Cleanup(apiServer.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		server:  apiServer,
		client:  &http.Client{Jar: jar},
		feedURL: feedServer.URL,
	}
}

func (e *testEnv) post(t *testing.T, query string, variables map[string]interface{}) gqlResponse {
	t.Helper()

	payload, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	require.NoError(t, err)

	resp, err := e.client.Post(e.server.URL+"/graphql", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded gqlResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	resp := e.post(t, `mutation Login($username: String!, $password: String!) { login(username: $username, password: $password) { user { id username } } }`,
		map[string]interface{}{"username": "alice", "password": "secret123"})
	require.Empty(t, resp.Errors)
}

func (e *testEnv) addFeedAndWait(t *testing.T) string {
	t.Helper()

	resp := e.post(t, `mutation AddFeed($url: String!) { addFeed(url: $url) { id url title } }`,
		map[string]interface{}{"url": e.feedURL})
	require.Empty(t, resp.Errors)

	var feed struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["addFeed"], &feed))
	require.NotEmpty(t, feed.ID)

	// Ingestion runs out of band; poll until the articles land.
	require.Eventually(t, func() bool {
		resp := e.post(t, `query GetUnreadArticles { unreadArticles { id } }`, nil)
		var articles []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(resp.Data["unreadArticles"], &articles); err != nil {
			return false
		}
		return len(articles) == 2
	}, 5*time.Second, 50*time.Millisecond)

	return feed.ID
}

func TestAPI_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, `query GetFeeds { feeds { id } }`, nil)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions.Code)
}

func TestAPI_LoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, `mutation Login($username: String!, $password: String!) { login(username: $username, password: $password) { user { id } } }`,
		map[string]interface{}{"username": "alice", "password": "wrong"})
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions.Code)
}

func TestAPI_CurrentUser(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp := env.post(t, `query Me { currentUser { id username } }`, nil)
	require.Empty(t, resp.Errors)

	var user struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["currentUser"], &user))
	require.Equal(t, "alice", user.Username)
}

func TestAPI_ReadLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	feedID := env.addFeedAndWait(t)

	// Two unread, none read.
	resp := env.post(t, `query GetUnreadArticles { unreadArticles { id title isRead feed { id title } } }`, nil)
	require.Empty(t, resp.Errors)
	var unread []struct {
		ID   string `json:"id"`
		Feed struct {
			Title string `json:"title"`
		} `json:"feed"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["unreadArticles"], &unread))
	require.Len(t, unread, 2)
	require.Equal(t, "Stub Blog", unread[0].Feed.Title)

	// Mark one read.
	resp = env.post(t, `mutation MarkArticleRead($id: ID!) { markArticleRead(id: $id) { id isRead } }`,
		map[string]interface{}{"id": unread[0].ID})
	require.Empty(t, resp.Errors)
	var marked struct {
		IsRead bool `json:"isRead"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["markArticleRead"], &marked))
	require.True(t, marked.IsRead)

	resp = env.post(t, `query GetReadArticles { readArticles { id } }`, nil)
	var read []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["readArticles"], &read))
	require.Len(t, read, 1)

	// Back to unread.
	resp = env.post(t, `mutation MarkArticleUnread($id: ID!) { markArticleUnread(id: $id) { id isRead } }`,
		map[string]interface{}{"id": unread[0].ID})
	require.Empty(t, resp.Errors)

	// Whole-feed flip.
	resp = env.post(t, `mutation MarkFeedRead($id: ID!) { markFeedRead(id: $id) { id } }`,
		map[string]interface{}{"id": feedID})
	require.Empty(t, resp.Errors)

	resp = env.post(t, `query GetUnreadArticles { unreadArticles { id } }`, nil)
	var after []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["unreadArticles"], &after))
	require.Empty(t, after)
}

func TestAPI_FeedQueryAndUnsubscribe(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	feedID := env.addFeedAndWait(t)

	resp := env.post(t, `query GetFeed($id: ID!) { feed(id: $id) { id title isSubscribed articles { id guid title url isRead } } }`,
		map[string]interface{}{"id": feedID})
	require.Empty(t, resp.Errors)
	var feed struct {
		Title        string `json:"title"`
		IsSubscribed bool   `json:"isSubscribed"`
		Articles     []struct {
			GUID string `json:"guid"`
		} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["feed"], &feed))
	require.Equal(t, "Stub Blog", feed.Title)
	require.True(t, feed.IsSubscribed)
	require.Len(t, feed.Articles, 2)

	// Adding the same URL again returns the original feed, never a duplicate.
	resp = env.post(t, `mutation AddFeed($url: String!) { addFeed(url: $url) { id } }`,
		map[string]interface{}{"url": env.feedURL})
	require.Empty(t, resp.Errors)
	var dup struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["addFeed"], &dup))
	require.Equal(t, feedID, dup.ID)

	// Soft unsubscribe keeps the data but hides the feed from the list.
	resp = env.post(t, `mutation UnsubscribeFeed($id: ID!) { unsubscribeFeed(id: $id) }`,
		map[string]interface{}{"id": feedID})
	require.Empty(t, resp.Errors)

	resp = env.post(t, `query GetFeeds { feeds { id } }`, nil)
	require.Empty(t, resp.Errors)
	var feeds []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["feeds"], &feeds))
	require.Empty(t, feeds)

	// Articles survive the unsubscribe.
	resp = env.post(t, `query GetFeed($id: ID!) { feed(id: $id) { articles { id } } }`,
		map[string]interface{}{"id": feedID})
	require.Empty(t, resp.Errors)
	var remaining struct {
		Articles []struct {
			ID string `json:"id"`
		} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["feed"], &remaining))
	require.Len(t, remaining.Articles, 2)

	resp = env.post(t, `query GetArticle($id: ID!) { article(id: $id) { id guid } }`,
		map[string]interface{}{"id": remaining.Articles[0].ID})
	require.Empty(t, resp.Errors)
}

func TestAPI_ResubscribeKeepsReadState(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	feedID := env.addFeedAndWait(t)

	// Mark everything read, unsubscribe, then add the same URL again.
	resp := env.post(t, `mutation MarkFeedRead($id: ID!) { markFeedRead(id: $id) { id } }`,
		map[string]interface{}{"id": feedID})
	require.Empty(t, resp.Errors)

	resp = env.post(t, `mutation UnsubscribeFeed($id: ID!) { unsubscribeFeed(id: $id) }`,
		map[string]interface{}{"id": feedID})
	require.Empty(t, resp.Errors)

	resp = env.post(t, `mutation AddFeed($url: String!) { addFeed(url: $url) { id } }`,
		map[string]interface{}{"url": env.feedURL})
	require.Empty(t, resp.Errors)
	var again struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["addFeed"], &again))
	require.Equal(t, feedID, again.ID)

	resp = env.post(t, `query GetUnreadArticles { unreadArticles { id } }`, nil)
	require.Empty(t, resp.Errors)
	var unread []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["unreadArticles"], &unread))
	require.Empty(t, unread)
}

func TestAPI_NotFoundAndBadInput(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp := env.post(t, `query GetArticle($id: ID!) { article(id: $id) { id } }`,
		map[string]interface{}{"id": "999999"})
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions.Code)

	resp = env.post(t, `mutation AddFeed($url: String!) { addFeed(url: $url) { id } }`,
		map[string]interface{}{"url": "not-a-url"})
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "BAD_USER_INPUT", resp.Errors[0].Extensions.Code)

	resp = env.post(t, `query Nothing { bogusOperation }`, nil)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "BAD_USER_INPUT", resp.Errors[0].Extensions.Code)
}

func TestAPI_Logout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp := env.post(t, `mutation Logout { logout }`, nil)
	require.Empty(t, resp.Errors)

	resp = env.post(t, `query GetFeeds { feeds { id } }`, nil)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions.Code)
}
