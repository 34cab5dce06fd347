package middleware

import (
	"net/http"
	"net/url"
)

// RequireAdmin gates admin routes: requests without a backend token in the
// session are redirected to the login form with a return target.
func RequireAdmin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := GetSession(r)
			if s.Token == "" {
				if IsHTMX(r.Context()) {
					// htmx cannot follow a redirect into a full page swap
					w.Header().Set("HX-Redirect", loginPath)
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				target := loginPath
				if r.URL.Path != "" && r.URL.Path != loginPath {
					target += "?next=" + url.QueryEscape(r.URL.RequestURI())
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
