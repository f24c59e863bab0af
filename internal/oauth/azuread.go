// Package oauth adapta el handshake OIDC contra Azure AD. Solo frontera:
// la validación de dominio y la persistencia viven en service.
package oauth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// AzureAD implementa el flujo authorization-code contra un tenant de Azure AD.
type AzureAD struct {
	cfg      *oauth2.Config
	tenantID string
	stateKey []byte
}

func NewAzureAD(tenantID, clientID, clientSecret, redirectURI, stateSecret string) *AzureAD {
	return &AzureAD{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes: []string{
				"openid", "email", "profile",
			},
			Endpoint: microsoft.AzureADEndpoint(tenantID),
		},
		tenantID: tenantID,
		stateKey: []byte(stateSecret),
	}
}

// HMAC(state) para protección CSRF.
func (a *AzureAD) MakeState(raw string) string {
	mac := hmac.New(sha256.New, a.stateKey)
	mac.Write([]byte(raw))
	sig := mac.Sum(nil)
	return raw + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func (a *AzureAD) VerifyState(got string) bool {
	i := strings.IndexByte(got, '.')
	if i < 0 {
		return false
	}
	raw := got[:i]
	sigb, err := base64.RawURLEncoding.DecodeString(got[i+1:])
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, a.stateKey)
	mac.Write([]byte(raw))
	return hmac.Equal(mac.Sum(nil), sigb)
}

// AuthURL arma la URL de autorización; form_post hace que Azure devuelva
// code y state por POST al callback.
func (a *AzureAD) AuthURL(state string) string {
	return a.cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("response_mode", "form_post"))
}

// Claims son los claims del id_token que interesan al portal.
type Claims struct {
	Subject    string
	UPN        string
	UniqueName string
	GivenName  string
	FamilyName string
}

// ExchangeAndVerify canjea el code y extrae los claims del id_token.
// Chequeo mínimo: iss del tenant y aud == clientID. Para producción conviene
// verificar la firma contra las JWKS del tenant.
func (a *AzureAD) ExchangeAndVerify(ctx context.Context, code string) (*Claims, error) {
	tok, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("no id_token")
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(rawIDToken, claims); err != nil {
		return nil, fmt.Errorf("parse id_token: %w", err)
	}

	iss, _ := claims["iss"].(string)
	aud, _ := claims["aud"].(string)
	sub, _ := claims["sub"].(string)

	if !strings.HasPrefix(iss, "https://login.microsoftonline.com/"+a.tenantID) &&
		!strings.HasPrefix(iss, "https://sts.windows.net/"+a.tenantID) {
		return nil, errors.New("bad iss")
	}
	if aud != a.cfg.ClientID {
		return nil, errors.New("bad aud")
	}
	if sub == "" {
		return nil, errors.New("missing sub")
	}

	upn, _ := claims["upn"].(string)
	uniqueName, _ := claims["unique_name"].(string)
	givenName, _ := claims["given_name"].(string)
	familyName, _ := claims["family_name"].(string)

	return &Claims{
		Subject:    sub,
		UPN:        upn,
		UniqueName: uniqueName,
		GivenName:  givenName,
		FamilyName: familyName,
	}, nil
}
