package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"campus-portal/internal/domain"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	createCalls  int
	err          error

	searchName    string
	searchSurname string
	searchCalled  bool
	searchResult  []domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.createCalls++
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	if m.err != nil {
		return domain.User{}, m.err
	}
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	if m.err != nil {
		return domain.User{}, m.err
	}
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id, name, surname, bio string) error {
	if m.err != nil {
		return m.err
	}
	user, ok := m.usersByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Name = name
	user.Surname = surname
	user.Bio = bio
	m.usersByID[id] = user
	return nil
}

func (m *mockUserRepo) UpdatePicture(_ context.Context, id, path string) error {
	if m.err != nil {
		return m.err
	}
	user, ok := m.usersByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.ProfilePicture = &path
	m.usersByID[id] = user
	return nil
}

func (m *mockUserRepo) Search(_ context.Context, name, surname string) ([]domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.searchCalled = true
	m.searchName = name
	m.searchSurname = surname
	return m.searchResult, nil
}

func TestUserServiceFindOrCreate(t *testing.T) {
	ident := VerifiedIdentity{
		Email:       "jane.doe@asoiu.edu.az",
		MicrosoftID: "sub-1",
		Name:        "Jane",
		Surname:     "Doe",
	}

	t.Run("creates on first sight with empty bio", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := NewUserService(zap.NewNop(), repo)

		user, err := svc.FindOrCreate(context.Background(), ident)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.createCalls != 1 {
			t.Fatalf("expected one create, got %d", repo.createCalls)
		}
		if user.Bio != "" {
			t.Fatalf("expected empty bio, got %q", user.Bio)
		}
		if user.ID == "" || user.CreatedAt.IsZero() {
			t.Fatalf("expected assigned id and timestamp: %+v", user)
		}
	})

	t.Run("returns existing user on second login", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := NewUserService(zap.NewNop(), repo)

		first, err := svc.FindOrCreate(context.Background(), ident)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.FindOrCreate(context.Background(), ident)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.ID != second.ID {
			t.Fatalf("expected same user, got %q and %q", first.ID, second.ID)
		}
		if repo.createCalls != 1 {
			t.Fatalf("expected a single create, got %d", repo.createCalls)
		}
	})

	t.Run("wraps store failures in ErrDirectory", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.err = errors.New("connection refused")
		svc := NewUserService(zap.NewNop(), repo)

		_, err := svc.FindOrCreate(context.Background(), ident)
		if !errors.Is(err, ErrDirectory) {
			t.Fatalf("expected ErrDirectory, got %v", err)
		}
	})
}

func TestUserServiceGetByID(t *testing.T) {
	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		svc := NewUserService(zap.NewNop(), newMockUserRepo())
		_, err := svc.GetByID(context.Background(), "nope")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("store failure maps to ErrDirectory", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.err = errors.New("boom")
		svc := NewUserService(zap.NewNop(), repo)
		_, err := svc.GetByID(context.Background(), "any")
		if !errors.Is(err, ErrDirectory) {
			t.Fatalf("expected ErrDirectory, got %v", err)
		}
	})
}

func TestUserServiceUpdateProfile(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo)

	user, err := svc.FindOrCreate(context.Background(), VerifiedIdentity{
		Email: "x@asoiu.edu.az", MicrosoftID: "s", Name: "Old", Surname: "Name",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.UpdateProfile(context.Background(), user.ID, "  New ", " Name ", "bio text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := repo.usersByID[user.ID]
	if updated.Name != "New" || updated.Surname != "Name" || updated.Bio != "bio text" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
}
