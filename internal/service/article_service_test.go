package service_test

import (
	"context"
	"database/sql"
	"testing"

	"feedbox/internal/model"
	"feedbox/internal/repository/mock"
	"feedbox/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestArticleService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockArticles.EXPECT().GetByID(gomock.Any(), int64(1)).Return(model.Article{ID: 1, Title: "Hello"}, nil)

	svc := service.NewArticleService(mockArticles)
	article, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Hello", article.Title)
}

func TestArticleService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockArticles.EXPECT().GetByID(gomock.Any(), int64(404)).Return(model.Article{}, sql.ErrNoRows)

	svc := service.NewArticleService(mockArticles)
	_, err := svc.Get(context.Background(), 404)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestArticleService_ListUnreadAndRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockArticles.EXPECT().ListByRead(gomock.Any(), false).Return([]model.Article{{ID: 1}, {ID: 2}}, nil)
	mockArticles.EXPECT().ListByRead(gomock.Any(), true).Return([]model.Article{{ID: 3}}, nil)

	svc := service.NewArticleService(mockArticles)

	unread, err := svc.ListUnread(context.Background())
	require.NoError(t, err)
	require.Len(t, unread, 2)

	read, err := svc.ListRead(context.Background())
	require.NoError(t, err)
	require.Len(t, read, 1)
}

func TestArticleService_SetReadState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockArticles.EXPECT().SetReadState(gomock.Any(), int64(1), true).Return(nil)
	mockArticles.EXPECT().GetByID(gomock.Any(), int64(1)).Return(model.Article{ID: 1, IsRead: true}, nil)

	svc := service.NewArticleService(mockArticles)
	article, err := svc.SetReadState(context.Background(), 1, true)
	require.NoError(t, err)
	require.True(t, article.IsRead)
}

func TestArticleService_SetReadState_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArticles := mock.NewMockArticleRepository(ctrl)
	mockArticles.EXPECT().SetReadState(gomock.Any(), int64(404), false).Return(sql.ErrNoRows)

	svc := service.NewArticleService(mockArticles)
	_, err := svc.SetReadState(context.Background(), 404, false)
	require.ErrorIs(t, err, service.ErrNotFound)
}
