package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// Scheme is the Authorization scheme of a presented credential.
type Scheme string

const (
	SchemeBearer Scheme = "bearer"
	SchemeBasic  Scheme = "basic"
)

// Credential is the parsed Authorization header.
type Credential struct {
	Scheme   Scheme
	Token    string
	Email    string
	Password string
}

// ParseCredential reads the Authorization header. ok is false when the
// header is missing; a malformed header yields a Credential with an empty
// Scheme.
func ParseCredential(r *http.Request) (cred Credential, ok bool) {
	header := strings.TrimSpace(r.Header.Get(echoHeaderAuthorization))
	if header == "" {
		return Credential{}, false
	}

	scheme, value, found := strings.Cut(header, " ")
	if !found {
		return Credential{}, true
	}
	value = strings.TrimSpace(value)

	switch {
	case strings.EqualFold(scheme, "bearer") && value != "":
		return Credential{Scheme: SchemeBearer, Token: value}, true
	case strings.EqualFold(scheme, "basic"):
		raw, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return Credential{}, true
		}
		email, password, found := strings.Cut(string(raw), ":")
		if !found || email == "" {
			return Credential{}, true
		}
		return Credential{Scheme: SchemeBasic, Email: email, Password: password}, true
	default:
		return Credential{}, true
	}
}

const echoHeaderAuthorization = "Authorization"
