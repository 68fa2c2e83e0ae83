package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"simaset/internal/model"
	"simaset/internal/scope"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const callerKey contextKey = "caller"

const authCookieName = "auth_token"

const tokenTTL = 24 * time.Hour

// Claims — полезная нагрузка JWT: личность и принадлежность вызывающего.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Role     string `json:"role"`
	PoldaID  string `json:"polda_id,omitempty"`
	PolresID string `json:"polres_id,omitempty"`
}

// SetLoginCookie подписывает JWT и ставит HttpOnly-cookie сессии.
func SetLoginCookie(w http.ResponseWriter, c scope.Caller, secret string) error {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID:   c.UserID,
		Role:     string(c.Role),
		PoldaID:  c.PoldaID,
		PolresID: c.PolresID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(tokenTTL.Seconds()),
	})
	return nil
}

// ClearLoginCookie сбрасывает cookie сессии (logout).
func ClearLoginCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// WithAuth разбирает JWT из cookie (или заголовка Authorization: Bearer) и
// кладёт Caller в контекст запроса. Отсутствие или невалидность токена не
// прерывает запрос: анонимность разбирают хендлеры (401).
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims := &Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid || claims.UserID == "" {
				next.ServeHTTP(w, r)
				return
			}
			c := scope.Caller{
				UserID:   claims.UserID,
				Role:     model.Role(claims.Role),
				PoldaID:  claims.PoldaID,
				PolresID: claims.PolresID,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey, c)))
		})
	}
}

func writeDenied(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":false,"message":"` + msg + `"}`))
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(authCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// GetCallerFromContext возвращает вызывающего, если запрос аутентифицирован.
func GetCallerFromContext(ctx context.Context) (scope.Caller, bool) {
	c, ok := ctx.Value(callerKey).(scope.Caller)
	return c, ok
}

// WithCaller кладёт вызывающего в контекст (для тестов хендлеров).
func WithCaller(ctx context.Context, c scope.Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// RequireAuth отклоняет анонимные запросы (401).
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetCallerFromContext(r.Context()); !ok {
			writeDenied(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles пускает дальше только аутентифицированных вызывающих с одной
// из перечисленных ролей: 401 без сессии, 403 при недостаточной роли.
func RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := GetCallerFromContext(r.Context())
			if !ok {
				writeDenied(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if _, ok := allowed[c.Role]; !ok {
				writeDenied(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
