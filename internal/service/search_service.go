package service

import (
	"context"
	"strings"

	"campus-portal/internal/domain"
	"campus-portal/internal/repository"
)

// SearchService compone búsquedas de usuarios y archivos sobre texto libre.
// No hay índice persistente: los predicados se arman por request.
type SearchService struct {
	users repository.UserRepository
	files repository.FileRepository
}

// SearchResult agrupa ambas categorías; cualquiera puede venir vacía.
type SearchResult struct {
	Users []domain.User
	Files []domain.File
}

func NewSearchService(users repository.UserRepository, files repository.FileRepository) *SearchService {
	return &SearchService{
		users: users,
		files: files,
	}
}

// Search separa el query en candidatos (nombre, apellido) para usuarios y usa
// el texto completo para archivos (substring del nombre o tag exacto).
func (s *SearchService) Search(ctx context.Context, query string) (SearchResult, error) {
	query = strings.TrimSpace(query)

	var res SearchResult
	name, surname := splitQuery(query)
	if name != "" || surname != "" {
		users, err := s.users.Search(ctx, name, surname)
		if err != nil {
			return SearchResult{}, err
		}
		res.Users = users
	}

	if query != "" {
		files, err := s.files.Search(ctx, query)
		if err != nil {
			return SearchResult{}, err
		}
		res.Files = files
	}

	return res, nil
}

// splitQuery corta en el primer run de espacios. Un token solo se interpreta
// como apellido; dos o más dan (nombre, apellido).
func splitQuery(q string) (name, surname string) {
	tokens := strings.Fields(q)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return "", tokens[0]
	default:
		return tokens[0], tokens[1]
	}
}

// Empty indica que ninguna categoría tuvo resultados.
func (r SearchResult) Empty() bool {
	return len(r.Users) == 0 && len(r.Files) == 0
}
