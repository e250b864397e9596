// internal/view/lang_test.go

package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLangDefaultsToKorean(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, LangKo, Lang(r))
}

func TestLangQueryBeatsCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/?lang=en", nil)
	r.AddCookie(&http.Cookie{Name: langCookie, Value: LangKo})
	assert.Equal(t, LangEn, Lang(r))
}

func TestLangCookieUsedWithoutQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/members", nil)
	r.AddCookie(&http.Cookie{Name: langCookie, Value: LangEn})
	assert.Equal(t, LangEn, Lang(r))
}

func TestLangUnknownCodeReadsAsKorean(t *testing.T) {
	r := httptest.NewRequest("GET", "/?lang=jp", nil)
	assert.Equal(t, LangKo, Lang(r))
}

func TestSetLangCookiePersistsChoice(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/?lang=en", nil)
	SetLangCookie(w, r)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, langCookie, cookies[0].Name)
	assert.Equal(t, LangEn, cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestSetLangCookieNoQueryNoCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	SetLangCookie(w, r)
	assert.Empty(t, w.Result().Cookies())
}

func TestLocFallback(t *testing.T) {
	en := "English"
	empty := ""

	assert.Equal(t, "한국어", loc(LangKo, "한국어", &en))
	assert.Equal(t, "English", loc(LangEn, "한국어", &en))
	assert.Equal(t, "한국어", loc(LangEn, "한국어", nil))
	assert.Equal(t, "한국어", loc(LangEn, "한국어", &empty))
}
