package services

import (
	"fmt"
	"sort"

	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/repositories"
)

// In-memory repository stubs. They reproduce the store's observable
// behavior, including unique-constraint errors carrying constraint names.

type stubUserRepo struct {
	users   map[string]*models.User // keyed by user code
	deleted []string

	createCalls int
	failCreates int // fail this many creates with a pkey conflict first
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*models.User)}
}

func (r *stubUserRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) error {
	r.createCalls++
	if r.failCreates > 0 {
		r.failCreates--
		return fmt.Errorf("%w: users_pkey", repositories.ErrDuplicateKey)
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: users_email_key", repositories.ErrDuplicateKey)
		}
	}
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("%w: users_pkey", repositories.ErrDuplicateKey)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByIdentifier(identifier string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == identifier || u.Email == identifier {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *stubUserRepo) FindByID(userID string) (*models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) ListUsers() ([]models.User, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *r.users[id])
	}
	return users, nil
}

func (r *stubUserRepo) UpdateUser(_ repositories.SQLExecutor, userID string, upd *models.UserUpdate) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	if upd.Email != nil {
		for id, existing := range r.users {
			if id != userID && existing.Email == *upd.Email {
				return fmt.Errorf("%w: users_email_key", repositories.ErrDuplicateKey)
			}
		}
		u.Email = *upd.Email
	}
	if upd.Nom != nil {
		u.Nom = *upd.Nom
	}
	if upd.Prenom != nil {
		u.Prenom = *upd.Prenom
	}
	if upd.Discord != nil {
		u.Discord = upd.Discord
	}
	if upd.Phone != nil {
		u.Phone = upd.Phone
	}
	if upd.Newsletter != nil {
		u.Newsletter = *upd.Newsletter
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.OrdersCount != nil {
		u.OrdersCount = *upd.OrdersCount
	}
	if upd.TotalSpent != nil {
		u.TotalSpent = *upd.TotalSpent
	}
	if upd.LoyaltyPoints != nil {
		u.LoyaltyPoints = *upd.LoyaltyPoints
	}
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(_ repositories.SQLExecutor, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *stubUserRepo) DeleteUser(userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, userID)
	r.deleted = append(r.deleted, userID)
	return nil
}

type stubContactRepo struct {
	contacts []models.Contact
	nextID   int64
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{nextID: 1}
}

func (r *stubContactRepo) CreateContact(_ repositories.SQLExecutor, contact *models.Contact) (int64, error) {
	contact.ID = r.nextID
	r.nextID++
	r.contacts = append(r.contacts, *contact)
	return contact.ID, nil
}

func (r *stubContactRepo) ListByUser(userID string) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range r.contacts {
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubContactRepo) ListAll() ([]models.Contact, error) {
	return append([]models.Contact(nil), r.contacts...), nil
}

func (r *stubContactRepo) UpdateStatus(_ repositories.SQLExecutor, id int64, status string, adminResponse *string) error {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			r.contacts[i].Status = status
			r.contacts[i].AdminResponse = adminResponse
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *stubContactRepo) CountByUser(userID string) (int, error) {
	list, _ := r.ListByUser(userID)
	return len(list), nil
}

type stubReservationRepo struct {
	reservations []models.Reservation
	nextID       int64
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{nextID: 1}
}

func (r *stubReservationRepo) CreateReservation(_ repositories.SQLExecutor, reservation *models.Reservation) (int64, error) {
	reservation.ID = r.nextID
	r.nextID++
	r.reservations = append(r.reservations, *reservation)
	return reservation.ID, nil
}

func (r *stubReservationRepo) ListByUser(userID string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.reservations {
		if res.UserID != nil && *res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *stubReservationRepo) ListAll() ([]models.Reservation, error) {
	return append([]models.Reservation(nil), r.reservations...), nil
}

func (r *stubReservationRepo) UpdateStatus(_ repositories.SQLExecutor, id int64, status string, adminNotes *string) error {
	for i := range r.reservations {
		if r.reservations[i].ID == id {
			r.reservations[i].Status = status
			r.reservations[i].AdminNotes = adminNotes
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *stubReservationRepo) CountByUser(userID string) (int, error) {
	list, _ := r.ListByUser(userID)
	return len(list), nil
}

type stubArticleRepo struct {
	articles map[int64]*models.Article
	nextID   int64
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[int64]*models.Article), nextID: 1}
}

func (r *stubArticleRepo) CreateArticle(_ repositories.SQLExecutor, article *models.Article) (int64, error) {
	article.ID = r.nextID
	r.nextID++
	clone := *article
	r.articles[article.ID] = &clone
	return article.ID, nil
}

func (r *stubArticleRepo) GetArticleByID(id int64) (*models.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) ListPublished() ([]models.Article, error) {
	var out []models.Article
	for _, a := range r.articles {
		if a.Status == string(models.ArticleStatusPublished) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubArticleRepo) ListAll() ([]models.Article, error) {
	var out []models.Article
	for _, a := range r.articles {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubArticleRepo) UpdateArticle(_ repositories.SQLExecutor, id int64, upd *models.ArticleUpdate) error {
	a, ok := r.articles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Excerpt != nil {
		a.Excerpt = *upd.Excerpt
	}
	if upd.Content != nil {
		a.Content = *upd.Content
	}
	if upd.ImageURL != nil {
		a.ImageURL = upd.ImageURL
	}
	if upd.Author != nil {
		a.Author = *upd.Author
	}
	if upd.PublishedDate != nil {
		a.PublishedDate = upd.PublishedDate
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	return nil
}

func (r *stubArticleRepo) IncrementViews(_ repositories.SQLExecutor, id int64) error {
	a, ok := r.articles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.ViewsCount++
	return nil
}

func (r *stubArticleRepo) DeleteArticle(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.articles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}
