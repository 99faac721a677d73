package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveOperation(t *testing.T) {
	tests := []struct {
		name string
		req  request
		want string
	}{
		{
			name: "operation name matches field",
			req:  request{OperationName: "addFeed"},
			want: "addFeed",
		},
		{
			name: "operation name case insensitive",
			req:  request{OperationName: "AddFeed"},
			want: "addFeed",
		},
		{
			name: "client operation name falls back to query scan",
			req:  request{OperationName: "GetFeeds", Query: "query GetFeeds { feeds { id } }"},
			want: "feeds",
		},
		{
			name: "feed does not shadow feeds",
			req:  request{Query: `query GetFeed($id: ID!) { feed(id: $id) { id articles { id } } }`},
			want: "feed",
		},
		{
			name: "unreadArticles wins over its readArticles suffix",
			req:  request{Query: "query { unreadArticles { id feed { title } } }"},
			want: "unreadArticles",
		},
		{
			name: "markArticleUnread not confused with markArticleRead",
			req:  request{Query: `mutation M($id: ID!) { markArticleUnread(id: $id) { id } }`},
			want: "markArticleUnread",
		},
		{
			name: "login",
			req:  request{Query: `mutation Login($username: String!, $password: String!) { login(username: $username, password: $password) { user { id } } }`},
			want: "login",
		},
		{
			name: "unknown",
			req:  request{Query: "query { bogus }"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, resolveOperation(tt.req))
		})
	}
}

func TestIDVariable(t *testing.T) {
	id, err := idVariable(request{Variables: map[string]interface{}{"id": "42"}}, "id")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	// JSON numbers decode as float64.
	id, err = idVariable(request{Variables: map[string]interface{}{"id": float64(7)}}, "id")
	require.NoError(t, err)
	require.Equal(t, int64(7), id)

	_, err = idVariable(request{Variables: map[string]interface{}{"id": "abc"}}, "id")
	require.Error(t, err)

	_, err = idVariable(request{}, "id")
	require.Error(t, err)
}
