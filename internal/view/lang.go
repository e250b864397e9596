// internal/view/lang.go
//
// Language selection and the bilingual fallback helper.
//
// The site is Korean-first with optional English columns.  Visitors switch
// with ?lang=en, which also sets a cookie so the choice sticks across
// pages.  Anything other than "en" reads as Korean.

package view

import "net/http"

const (
	// LangKo and LangEn are the two supported language codes.
	LangKo = "ko"
	LangEn = "en"

	langCookie = "lang"
)

// Lang resolves the request language: explicit ?lang= query first, then
// the cookie, then Korean.
func Lang(r *http.Request) string {
	if q := r.URL.Query().Get("lang"); q != "" {
		return normalizeLang(q)
	}
	if c, err := r.Cookie(langCookie); err == nil {
		return normalizeLang(c.Value)
	}
	return LangKo
}

// SetLangCookie persists an explicit ?lang= choice.  No-op when the query
// carries no language.
func SetLangCookie(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("lang")
	if q == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     langCookie,
		Value:    normalizeLang(q),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
}

func normalizeLang(s string) string {
	if s == LangEn {
		return LangEn
	}
	return LangKo
}

// loc picks the English variant when the language is "en" and the column
// holds text; empty string and NULL both fall back to the Korean value.
func loc(lang, ko string, en *string) string {
	if lang == LangEn && en != nil && *en != "" {
		return *en
	}
	return ko
}
