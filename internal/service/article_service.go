package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"feedbox/internal/model"
	"feedbox/internal/repository"
)

type ArticleService interface {
	Get(ctx context.Context, id int64) (model.Article, error)
	ListUnread(ctx context.Context) ([]model.Article, error)
	ListRead(ctx context.Context) ([]model.Article, error)
	ListByFeed(ctx context.Context, feedID int64) ([]model.Article, error)
	ListFlags(ctx context.Context) ([]model.ArticleFlag, error)
	SetReadState(ctx context.Context, id int64, isRead bool) (model.Article, error)
}

type articleService struct {
	articles repository.ArticleRepository
}

func NewArticleService(articles repository.ArticleRepository) ArticleService {
	return &articleService{articles: articles}
}

func (s *articleService) Get(ctx context.Context, id int64) (model.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Article{}, ErrNotFound
		}
		return model.Article{}, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

func (s *articleService) ListUnread(ctx context.Context) ([]model.Article, error) {
	return s.articles.ListByRead(ctx, false)
}

func (s *articleService) ListRead(ctx context.Context) ([]model.Article, error) {
	return s.articles.ListByRead(ctx, true)
}

func (s *articleService) ListByFeed(ctx context.Context, feedID int64) ([]model.Article, error) {
	return s.articles.ListByFeed(ctx, feedID)
}

func (s *articleService) ListFlags(ctx context.Context) ([]model.ArticleFlag, error) {
	return s.articles.ListFlags(ctx)
}

// SetReadState is idempotent: marking a read article read again is a
// no-op, not an error.
func (s *articleService) SetReadState(ctx context.Context, id int64, isRead bool) (model.Article, error) {
	if err := s.articles.SetReadState(ctx, id, isRead); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Article{}, ErrNotFound
		}
		return model.Article{}, fmt.Errorf("set read state: %w", err)
	}
	return s.Get(ctx, id)
}
