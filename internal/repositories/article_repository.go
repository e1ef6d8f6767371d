package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pizza_this_backend/internal/models"
)

// ArticleRepository defines the interface for article-related database operations.
type ArticleRepository interface {
	CreateArticle(executor SQLExecutor, article *models.Article) (int64, error)
	GetArticleByID(id int64) (*models.Article, error)
	ListPublished() ([]models.Article, error)
	ListAll() ([]models.Article, error)
	UpdateArticle(executor SQLExecutor, id int64, upd *models.ArticleUpdate) error
	IncrementViews(executor SQLExecutor, id int64) error
	DeleteArticle(executor SQLExecutor, id int64) error
}

type articleRepository struct {
	db *sql.DB
}

// NewArticleRepository creates a new instance of ArticleRepository.
func NewArticleRepository(db *sql.DB) ArticleRepository {
	return &articleRepository{db: db}
}

const articleColumns = `id, title, excerpt, content, image_url, author, published_date, status, views_count, created_at, updated_at`

func scanArticle(row interface{ Scan(dest ...interface{}) error }) (*models.Article, error) {
	article := &models.Article{}
	err := row.Scan(
		&article.ID, &article.Title, &article.Excerpt, &article.Content,
		&article.ImageURL, &article.Author, &article.PublishedDate,
		&article.Status, &article.ViewsCount, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

// CreateArticle inserts a new article and returns its id.
func (r *articleRepository) CreateArticle(executor SQLExecutor, article *models.Article) (int64, error) {
	query := `INSERT INTO articles (title, excerpt, content, image_url, author, published_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	article.CreatedAt = currentTime
	article.UpdatedAt = currentTime

	var id int64
	err := executor.QueryRow(query,
		article.Title, article.Excerpt, article.Content, article.ImageURL,
		article.Author, article.PublishedDate, article.Status,
		article.CreatedAt, article.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating article: %v", ErrDatabaseError, err)
	}
	article.ID = id
	return id, nil
}

// GetArticleByID retrieves an article by its id.
func (r *articleRepository) GetArticleByID(id int64) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	article, err := scanArticle(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting article %d: %v", ErrDatabaseError, id, err)
	}
	return article, nil
}

// ListPublished retrieves published articles, most recently published first.
// Content is omitted from listings; readers fetch the full article by id.
func (r *articleRepository) ListPublished() ([]models.Article, error) {
	query := `SELECT id, title, excerpt, '' AS content, image_url, author, published_date, status, views_count, created_at, updated_at
	          FROM articles
	          WHERE status = 'published'
	          ORDER BY published_date DESC, created_at DESC`
	return r.list(query)
}

// ListAll retrieves every article regardless of status, newest first.
func (r *articleRepository) ListAll() ([]models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`
	return r.list(query)
}

func (r *articleRepository) list(query string) ([]models.Article, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying articles: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning article: %v", ErrDatabaseError, err)
		}
		articles = append(articles, *article)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating article rows: %v", ErrDatabaseError, err)
	}
	return articles, nil
}

// UpdateArticle applies the non-nil fields of upd to the article row.
func (r *articleRepository) UpdateArticle(executor SQLExecutor, id int64, upd *models.ArticleUpdate) error {
	var sets []string
	var args []interface{}
	argCount := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if upd.Title != nil {
		addSet("title", *upd.Title)
	}
	if upd.Excerpt != nil {
		addSet("excerpt", *upd.Excerpt)
	}
	if upd.Content != nil {
		addSet("content", *upd.Content)
	}
	if upd.ImageURL != nil {
		addSet("image_url", *upd.ImageURL)
	}
	if upd.Author != nil {
		addSet("author", *upd.Author)
	}
	if upd.PublishedDate != nil {
		addSet("published_date", *upd.PublishedDate)
	}
	if upd.Status != nil {
		addSet("status", *upd.Status)
	}
	if len(sets) == 0 {
		return nil
	}
	addSet("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE articles SET %s WHERE id = $%d", strings.Join(sets, ", "), argCount)

	result, err := executor.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%w: updating article %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for article %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter for a published article read.
func (r *articleRepository) IncrementViews(executor SQLExecutor, id int64) error {
	_, err := executor.Exec(`UPDATE articles SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: incrementing views for article %d: %v", ErrDatabaseError, id, err)
	}
	return nil
}

// DeleteArticle removes an article.
func (r *articleRepository) DeleteArticle(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting article %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting article %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
