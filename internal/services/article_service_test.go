package services

import (
	"errors"
	"testing"
	"time"

	"pizza_this_backend/internal/models"
)

func newTestArticleService(repo *stubArticleRepo) *articleService {
	svc := NewArticleService(repo, nil).(*articleService)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func seedArticle(repo *stubArticleRepo, status string, publishedDate *string) int64 {
	id := repo.nextID
	repo.nextID++
	repo.articles[id] = &models.Article{
		ID:            id,
		Title:         "Ouverture du week-end",
		Excerpt:       "extrait",
		Content:       "contenu",
		Author:        "chef",
		Status:        status,
		PublishedDate: publishedDate,
	}
	return id
}

func TestListArticlesFiltersByRole(t *testing.T) {
	repo := newStubArticleRepo()
	seedArticle(repo, string(models.ArticleStatusPublished), nil)
	seedArticle(repo, string(models.ArticleStatusDraft), nil)
	svc := newTestArticleService(repo)

	public, err := svc.ListArticles(false)
	if err != nil {
		t.Fatalf("ListArticles returned error: %v", err)
	}
	if len(public) != 1 {
		t.Errorf("public listing has %d articles, want 1", len(public))
	}

	all, err := svc.ListArticles(true)
	if err != nil {
		t.Fatalf("ListArticles returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin listing has %d articles, want 2", len(all))
	}
}

func TestGetArticleHidesDraftsFromPublic(t *testing.T) {
	repo := newStubArticleRepo()
	id := seedArticle(repo, string(models.ArticleStatusDraft), nil)
	svc := newTestArticleService(repo)

	if _, err := svc.GetArticle(id, false); !errors.Is(err, ErrArticleNotAccessible) {
		t.Errorf("GetArticle returned %v, want ErrArticleNotAccessible", err)
	}
	if _, err := svc.GetArticle(id, true); err != nil {
		t.Errorf("admin GetArticle returned %v, want nil", err)
	}
}

func TestGetArticleCountsPublishedViews(t *testing.T) {
	repo := newStubArticleRepo()
	published := seedArticle(repo, string(models.ArticleStatusPublished), nil)
	draft := seedArticle(repo, string(models.ArticleStatusDraft), nil)
	svc := newTestArticleService(repo)

	article, err := svc.GetArticle(published, false)
	if err != nil {
		t.Fatalf("GetArticle returned error: %v", err)
	}
	if article.ViewsCount != 1 {
		t.Errorf("views = %d, want 1", article.ViewsCount)
	}
	if repo.articles[published].ViewsCount != 1 {
		t.Errorf("stored views = %d, want 1", repo.articles[published].ViewsCount)
	}

	// Admin reads of drafts do not count.
	if _, err := svc.GetArticle(draft, true); err != nil {
		t.Fatalf("GetArticle returned error: %v", err)
	}
	if repo.articles[draft].ViewsCount != 0 {
		t.Errorf("draft views = %d, want 0", repo.articles[draft].ViewsCount)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)

	if _, err := svc.GetArticle(42, true); !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("GetArticle returned %v, want ErrArticleNotFound", err)
	}
}

func TestCreateArticleDefaultsToDraft(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)

	article, err := svc.CreateArticle(CreateArticleRequest{
		Title: "Nouvelle carte", Excerpt: "extrait", Content: "contenu", Author: "chef",
	})
	if err != nil {
		t.Fatalf("CreateArticle returned error: %v", err)
	}
	if article.Status != string(models.ArticleStatusDraft) {
		t.Errorf("status = %q, want draft", article.Status)
	}
	if article.PublishedDate != nil {
		t.Errorf("published date = %v, want nil", *article.PublishedDate)
	}
}

func TestCreateArticlePublishedStampsDate(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)

	published := string(models.ArticleStatusPublished)
	article, err := svc.CreateArticle(CreateArticleRequest{
		Title: "Nouvelle carte", Excerpt: "extrait", Content: "contenu", Author: "chef",
		Status: &published,
	})
	if err != nil {
		t.Fatalf("CreateArticle returned error: %v", err)
	}
	if article.PublishedDate == nil || *article.PublishedDate != "2026-03-15" {
		t.Errorf("published date = %v, want 2026-03-15", article.PublishedDate)
	}
}

func TestCreateArticleRejectsUnknownStatus(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newTestArticleService(repo)

	bogus := "pending"
	_, err := svc.CreateArticle(CreateArticleRequest{
		Title: "Nouvelle carte", Excerpt: "extrait", Content: "contenu", Author: "chef",
		Status: &bogus,
	})
	if !errors.Is(err, ErrInvalidArticleStatus) {
		t.Errorf("CreateArticle returned %v, want ErrInvalidArticleStatus", err)
	}
}

func TestUpdateArticleFirstPublicationStampsDate(t *testing.T) {
	repo := newStubArticleRepo()
	id := seedArticle(repo, string(models.ArticleStatusDraft), nil)
	svc := newTestArticleService(repo)

	published := string(models.ArticleStatusPublished)
	article, err := svc.UpdateArticle(id, UpdateArticleRequest{Status: &published})
	if err != nil {
		t.Fatalf("UpdateArticle returned error: %v", err)
	}
	if article.PublishedDate == nil || *article.PublishedDate != "2026-03-15" {
		t.Errorf("published date = %v, want 2026-03-15", article.PublishedDate)
	}
}

func TestUpdateArticleRepublishKeepsOriginalDate(t *testing.T) {
	repo := newStubArticleRepo()
	original := "2025-12-01"
	id := seedArticle(repo, string(models.ArticleStatusArchived), &original)
	svc := newTestArticleService(repo)

	published := string(models.ArticleStatusPublished)
	article, err := svc.UpdateArticle(id, UpdateArticleRequest{Status: &published})
	if err != nil {
		t.Fatalf("UpdateArticle returned error: %v", err)
	}
	if article.PublishedDate == nil || *article.PublishedDate != original {
		t.Errorf("published date = %v, want %s", article.PublishedDate, original)
	}
}

func TestUpdateArticleExplicitDateWins(t *testing.T) {
	repo := newStubArticleRepo()
	id := seedArticle(repo, string(models.ArticleStatusDraft), nil)
	svc := newTestArticleService(repo)

	published := string(models.ArticleStatusPublished)
	chosen := "2026-04-01"
	article, err := svc.UpdateArticle(id, UpdateArticleRequest{Status: &published, PublishedDate: &chosen})
	if err != nil {
		t.Fatalf("UpdateArticle returned error: %v", err)
	}
	if article.PublishedDate == nil || *article.PublishedDate != chosen {
		t.Errorf("published date = %v, want %s", article.PublishedDate, chosen)
	}
}

func TestUpdateArticleEmptyPayload(t *testing.T) {
	repo := newStubArticleRepo()
	id := seedArticle(repo, string(models.ArticleStatusDraft), nil)
	svc := newTestArticleService(repo)

	if _, err := svc.UpdateArticle(id, UpdateArticleRequest{}); !errors.Is(err, ErrEmptyUpdate) {
		t.Errorf("UpdateArticle returned %v, want ErrEmptyUpdate", err)
	}
}

func TestDeleteArticle(t *testing.T) {
	repo := newStubArticleRepo()
	id := seedArticle(repo, string(models.ArticleStatusDraft), nil)
	svc := newTestArticleService(repo)

	if err := svc.DeleteArticle(id); err != nil {
		t.Fatalf("DeleteArticle returned error: %v", err)
	}
	if err := svc.DeleteArticle(id); !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("second DeleteArticle returned %v, want ErrArticleNotFound", err)
	}
}
