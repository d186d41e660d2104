package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"gostore/internal/api/response"
	apperror "gostore/internal/errors"
)

// DefaultPublicPaths são as rotas acessíveis sem o cookie do painel.
// '*' casa exatamente um segmento; padrão terminado em '/' casa como prefixo.
var DefaultPublicPaths = []string{
	"/signin",
	"/signup",
	"/api/auth/",
	"/api/*/customer/",
	"/api/*/staff/join",
	"/api/storefront/",
	"/ping",
	"/swagger/",
}

// RouteGuard barra, antes de qualquer handler, requisições sem o cookie do painel
// fora da allow-list. Só a presença do cookie é verificada; a validação do token
// fica com o AdminAuth. Rotas /api/ recebem 401 JSON, as demais são redirecionadas
// para signInPath com ?callbackUrl=.
func RouteGuard(cookieName string, allowList []string, signInPath string, rw *response.Writer) func(http.Handler) http.Handler {
	patterns := make([]pathPattern, 0, len(allowList))
	for _, p := range allowList {
		patterns = append(patterns, compilePattern(p))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || isPublic(patterns, path.Clean("/"+r.URL.Path)) {
				next.ServeHTTP(w, r)
				return
			}

			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				next.ServeHTTP(w, r)
				return
			}

			if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
				rw.Error(w, r, apperror.NewUnauthorizedError("Autenticação necessária."))
				return
			}

			target := signInPath + "?" + url.Values{"callbackUrl": {r.URL.Path}}.Encode()
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		})
	}
}

// IsPublicPath indica se path casa com algum padrão da allow-list.
func IsPublicPath(allowList []string, requestPath string) bool {
	patterns := make([]pathPattern, 0, len(allowList))
	for _, p := range allowList {
		patterns = append(patterns, compilePattern(p))
	}
	return isPublic(patterns, path.Clean("/"+requestPath))
}

type pathPattern struct {
	segments []string
	prefix   bool
}

func compilePattern(p string) pathPattern {
	return pathPattern{
		segments: splitPath(p),
		prefix:   strings.HasSuffix(p, "/") && p != "/",
	}
}

func isPublic(patterns []pathPattern, cleanPath string) bool {
	segments := splitPath(cleanPath)
	for _, p := range patterns {
		if p.matches(segments) {
			return true
		}
	}
	return false
}

func (p pathPattern) matches(segments []string) bool {
	if p.prefix {
		if len(segments) < len(p.segments) {
			return false
		}
	} else if len(segments) != len(p.segments) {
		return false
	}
	for i, want := range p.segments {
		got := segments[i]
		if want == "*" {
			if got == "" {
				return false
			}
			continue
		}
		if want != got {
			return false
		}
	}
	return true
}

// splitPath divide em segmentos não vazios. O caminho já deve estar limpo (path.Clean).
func splitPath(p string) []string {
	raw := strings.Split(p, "/")
	out := raw[:0]
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
