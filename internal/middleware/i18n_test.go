package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func localeProbe(t *testing.T, lookup CountryLookup, decorate func(*http.Request)) string {
	t.Helper()
	var got string
	handler := I18N("en", lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LocaleFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	if decorate != nil {
		decorate(req)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestI18NHeaderWins(t *testing.T) {
	got := localeProbe(t, nil, func(r *http.Request) {
		r.Header.Set("X-Locale", "ID")
		r.Header.Set("Accept-Language", "en-US")
	})
	if got != "id" {
		t.Fatalf("locale = %q, want id", got)
	}
}

func TestI18NAcceptLanguage(t *testing.T) {
	got := localeProbe(t, nil, func(r *http.Request) {
		r.Header.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")
	})
	if got != "id" {
		t.Fatalf("locale = %q, want id", got)
	}
}

func TestI18NCountryLookupFallback(t *testing.T) {
	lookup := func(ip string) (string, error) {
		if ip != "203.0.113.7" {
			t.Fatalf("unexpected ip %q", ip)
		}
		return "ID", nil
	}
	if got := localeProbe(t, lookup, nil); got != "id" {
		t.Fatalf("locale = %q, want id", got)
	}
}

func TestI18NDefault(t *testing.T) {
	if got := localeProbe(t, nil, nil); got != "en" {
		t.Fatalf("locale = %q, want en", got)
	}
}
