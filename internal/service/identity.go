package service

import (
	"errors"
	"strings"
)

// IdentityAssertion agrupa los claims del proveedor de identidad que el portal
// necesita para admitir a un usuario.
type IdentityAssertion struct {
	Subject    string
	UPN        string
	UniqueName string
	GivenName  string
	FamilyName string
}

// VerifiedIdentity es el resultado de validar una aserción: listo para el directorio.
type VerifiedIdentity struct {
	Email       string
	MicrosoftID string
	Name        string
	Surname     string
}

var (
	ErrMissingIdentity  = errors.New("no email or upn in authentication response")
	ErrDomainNotAllowed = errors.New("email domain not allowed")
)

const unknownName = "Unknown"

// VerifyIdentity valida la aserción sin tocar persistencia: email del claim
// primario (upn) con fallback a unique_name, dominio contra la allow-list y
// nombres con placeholder "Unknown" cuando faltan.
func VerifyIdentity(a IdentityAssertion, allowedDomains []string) (VerifiedIdentity, error) {
	email := strings.ToLower(strings.TrimSpace(a.UPN))
	if email == "" {
		email = strings.ToLower(strings.TrimSpace(a.UniqueName))
	}
	if email == "" {
		return VerifiedIdentity{}, ErrMissingIdentity
	}
	if !domainAllowed(email, allowedDomains) {
		return VerifiedIdentity{}, ErrDomainNotAllowed
	}

	name := strings.TrimSpace(a.GivenName)
	if name == "" {
		name = unknownName
	}
	surname := strings.TrimSpace(a.FamilyName)
	if surname == "" {
		surname = unknownName
	}

	return VerifiedIdentity{
		Email:       email,
		MicrosoftID: a.Subject,
		Name:        name,
		Surname:     surname,
	}, nil
}

func domainAllowed(email string, domains []string) bool {
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(d, "@")))
		if d == "" {
			continue
		}
		if strings.HasSuffix(email, "@"+d) {
			return true
		}
	}
	return false
}
