package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTFallback(t *testing.T) {
	if got := T(LocaleEnUS, "error.forbidden"); got != "Access to this resource is forbidden" {
		t.Fatalf("unexpected en message: %s", got)
	}
	if got := T("fr-FR", "error.forbidden"); got != "无权访问该资源" {
		t.Fatalf("unknown locale should fall back to zh-CN, got %s", got)
	}
	if got := T(LocaleEnUS, "error.not_registered"); got != "error.not_registered" {
		t.Fatalf("missing key should echo key, got %s", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		header string
		xLoc   string
		want   string
	}{
		{"", "", LocaleZhCN},
		{"en-GB,en;q=0.9", "", LocaleEnUS},
		{"*, zh-TW;q=0.8", "", LocaleZhCN},
		{"en-US", "zh_CN", LocaleZhCN},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}
		if tc.xLoc != "" {
			c.Request.Header.Set("X-Locale", tc.xLoc)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("header=%q x-locale=%q want %s got %s", tc.header, tc.xLoc, tc.want, got)
		}
	}
}

func TestMessageTablesAligned(t *testing.T) {
	for key := range messages[LocaleZhCN] {
		if _, ok := messages[LocaleEnUS][key]; !ok {
			t.Fatalf("en-US missing key %s", key)
		}
	}
}

func TestSprintfFormatsTranslatedTemplate(t *testing.T) {
	if got := Sprintf(LocaleEnUS, "error.login_too_many", 30); got != "Too many login attempts, please retry in 30 seconds" {
		t.Fatalf("unexpected message: %s", got)
	}
	if got := Sprintf(LocaleZhCN, "error.rate_limited", 5); got != "请求过于频繁，请 5 秒后再试" {
		t.Fatalf("unexpected message: %s", got)
	}
}
