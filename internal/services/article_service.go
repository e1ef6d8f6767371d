package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/repositories"
	"pizza_this_backend/pkg/utils"
)

// --- Custom Service Errors for articles ---
var (
	ErrArticleNotFound      = errors.New("article not found")
	ErrArticleNotAccessible = errors.New("article not accessible")
	ErrInvalidArticleStatus = errors.New("invalid article status")
)

// --- Article DTOs ---

type CreateArticleRequest struct {
	Title         string  `json:"title" binding:"required"`
	Excerpt       string  `json:"excerpt" binding:"required"`
	Content       string  `json:"content" binding:"required"`
	Author        string  `json:"author" binding:"required"`
	ImageURL      *string `json:"image_url"`
	PublishedDate *string `json:"published_date"`
	Status        *string `json:"status"`
}

type UpdateArticleRequest struct {
	Title         *string `json:"title"`
	Excerpt       *string `json:"excerpt"`
	Content       *string `json:"content"`
	ImageURL      *string `json:"image_url"`
	Author        *string `json:"author"`
	PublishedDate *string `json:"published_date"`
	Status        *string `json:"status"`
}

// --- ArticleService Interface ---
type ArticleService interface {
	// ListArticles returns all articles for admins, published ones otherwise.
	ListArticles(isAdmin bool) ([]models.Article, error)
	// GetArticle enforces published-only visibility for non-admins and bumps
	// the view counter on published reads.
	GetArticle(id int64, isAdmin bool) (*models.Article, error)
	CreateArticle(req CreateArticleRequest) (*models.Article, error)
	UpdateArticle(id int64, req UpdateArticleRequest) (*models.Article, error)
	DeleteArticle(id int64) error
}

// --- articleService Implementation ---
type articleService struct {
	articleRepo repositories.ArticleRepository
	db          *sql.DB

	// now is swappable in tests for the published_date stamp.
	now func() time.Time
}

// NewArticleService creates a new instance of ArticleService.
func NewArticleService(articleRepo repositories.ArticleRepository, db *sql.DB) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		db:          db,
		now:         time.Now,
	}
}

func (s *articleService) today() string {
	return s.now().Format("2006-01-02")
}

func (s *articleService) ListArticles(isAdmin bool) ([]models.Article, error) {
	var articles []models.Article
	var err error
	if isAdmin {
		articles, err = s.articleRepo.ListAll()
	} else {
		articles, err = s.articleRepo.ListPublished()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

func (s *articleService) GetArticle(id int64, isAdmin bool) (*models.Article, error) {
	article, err := s.articleRepo.GetArticleByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}

	published := article.Status == string(models.ArticleStatusPublished)
	if !published && !isAdmin {
		return nil, ErrArticleNotAccessible
	}

	if published {
		if err := s.articleRepo.IncrementViews(s.db, id); err != nil {
			return nil, fmt.Errorf("failed to count article view: %w", err)
		}
		article.ViewsCount++
	}
	return article, nil
}

func (s *articleService) CreateArticle(req CreateArticleRequest) (*models.Article, error) {
	status := string(models.ArticleStatusDraft)
	if req.Status != nil {
		if !models.IsValidArticleStatus(*req.Status) {
			return nil, ErrInvalidArticleStatus
		}
		status = *req.Status
	}

	article := models.Article{
		Title:         strings.TrimSpace(req.Title),
		Excerpt:       strings.TrimSpace(req.Excerpt),
		Content:       strings.TrimSpace(req.Content),
		Author:        strings.TrimSpace(req.Author),
		ImageURL:      utils.TrimPtr(req.ImageURL),
		PublishedDate: req.PublishedDate,
		Status:        status,
	}

	// Publishing at creation stamps today's date unless one was supplied.
	if status == string(models.ArticleStatusPublished) && article.PublishedDate == nil {
		today := s.today()
		article.PublishedDate = &today
	}

	if _, err := s.articleRepo.CreateArticle(s.db, &article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return s.articleRepo.GetArticleByID(article.ID)
}

func (s *articleService) UpdateArticle(id int64, req UpdateArticleRequest) (*models.Article, error) {
	article, err := s.articleRepo.GetArticleByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}

	upd := models.ArticleUpdate{
		Title:         utils.TrimPtr(req.Title),
		Excerpt:       utils.TrimPtr(req.Excerpt),
		Content:       utils.TrimPtr(req.Content),
		ImageURL:      utils.TrimPtr(req.ImageURL),
		Author:        utils.TrimPtr(req.Author),
		PublishedDate: req.PublishedDate,
	}

	if req.Status != nil {
		if !models.IsValidArticleStatus(*req.Status) {
			return nil, ErrInvalidArticleStatus
		}
		upd.Status = req.Status

		// First publication stamps published_date in the same update.
		if *req.Status == string(models.ArticleStatusPublished) &&
			article.PublishedDate == nil && upd.PublishedDate == nil {
			today := s.today()
			upd.PublishedDate = &today
		}
	}

	if upd.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	if err := s.articleRepo.UpdateArticle(s.db, id, &upd); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	return s.articleRepo.GetArticleByID(id)
}

func (s *articleService) DeleteArticle(id int64) error {
	if err := s.articleRepo.DeleteArticle(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}
