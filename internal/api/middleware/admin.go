package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
)

const (
	// AdminTokenHeader заголовок с токеном персонала
	AdminTokenHeader = "X-Admin-Token"

	msgMissingAdminToken = "отсутствует токен администратора"
	msgForbidden         = "доступ запрещен"
)

// AdminAuth пропускает запрос только с верным токеном в X-Admin-Token
// Пустой настроенный токен закрывает доступ полностью
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminTokenHeader)
			if provided == "" {
				handlers.RespondUnauthorized(w, msgMissingAdminToken)
				return
			}
			if token == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
