// Package middleware содержит HTTP middleware сервиса поиска премиальных билетов.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const clientIDKey contextKey = "clientID"

const (
	clientCookieName = "client_id"
	clientCookieTTL  = 365 * 24 * time.Hour
)

// ClientMiddleware определяет клиента по подписанному cookie и выдаёт новый идентификатор,
// если cookie нет или подпись не совпадает.
type ClientMiddleware struct {
	secretKey []byte
}

// NewClientMiddleware создаёт новый экземпляр ClientMiddleware с указанным секретным ключом.
// При пустом ключе генерируется случайный, и выданные cookie действуют до перезапуска.
func NewClientMiddleware(secret string) *ClientMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &ClientMiddleware{
		secretKey: key,
	}
}

// Middleware добавляет идентификатор клиента в контекст запроса.
func (c *ClientMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := ""
		if cookie, err := r.Cookie(clientCookieName); err == nil {
			if id, ok := c.parseCookie(cookie.Value); ok {
				clientID = id
			}
		}

		if clientID == "" {
			clientID = uuid.NewString()
			c.SetClientCookie(w, clientID)
		}

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetClientCookie устанавливает cookie с подписанным идентификатором клиента.
func (c *ClientMiddleware) SetClientCookie(w http.ResponseWriter, clientID string) {
	cookie := &http.Cookie{
		Name:     clientCookieName,
		Value:    clientID + "." + c.sign(clientID),
		Path:     "/",
		Expires:  time.Now().Add(clientCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)
}

func (c *ClientMiddleware) sign(clientID string) string {
	mac := hmac.New(sha256.New, c.secretKey)
	mac.Write([]byte(clientID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *ClientMiddleware) parseCookie(cookieValue string) (string, bool) {
	idStr, signature, found := strings.Cut(cookieValue, ".")
	if !found {
		return "", false
	}

	if !hmac.Equal([]byte(signature), []byte(c.sign(idStr))) {
		return "", false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return "", false
	}

	return id.String(), true
}

// GetClientIDFromContext извлекает идентификатор клиента из контекста запроса.
func GetClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey).(string)
	return id, ok && id != ""
}

// WithClientID возвращает контекст с указанным идентификатором клиента.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}
