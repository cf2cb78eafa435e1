package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/KirkDiggler/rollcall/internal/models"
	identityService "github.com/KirkDiggler/rollcall/internal/services/identity"
)

const (
	roleTeacher = models.RoleTeacher
	roleStudent = models.RoleStudent
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role" validate:"required,oneof=teacher student"`
}

type loginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	out, err := s.identity.Register(r.Context(), &identityService.RegisterInput{
		Name:     req.Name,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		writeServiceError(w, "register user", err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{User: out.User.Public(), Token: out.Token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	out, err := s.identity.Login(r.Context(), &identityService.LoginInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, "log in", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: out.User.Public(), Token: out.Token})
}

// Auth

type claimsKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token", "authorization bearer token required")
			return
		}
		out, err := s.identity.ParseToken(r.Context(), &identityService.ParseTokenInput{Token: token})
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", identityService.ErrInvalidToken.Error())
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, out.Claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFromContext(r.Context())
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "missing_token", "authorization bearer token required")
				return
			}
			if claims.Role != role {
				writeError(w, http.StatusForbidden, "forbidden", "requires role "+string(role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func claimsFromContext(ctx context.Context) *identityService.Claims {
	value := ctx.Value(claimsKey{})
	claims, _ := value.(*identityService.Claims)
	return claims
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
