package utils

import (
	"net/url"
	"strings"
	"unicode"
)

// SafeRedirect chỉ chấp nhận path nội bộ ("/..."), chặn "//host", URL tuyệt đối,
// backslash và control character (browser bỏ tab/newline: "/\t/evil.com" -> "//evil.com").
// Trả về fallback cho mọi giá trị khác.
func SafeRedirect(to, fallback string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return fallback
	}
	if strings.ContainsFunc(to, func(r rune) bool { return r == '\\' || unicode.IsControl(r) }) {
		return fallback
	}

	u, err := url.Parse(to)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return fallback
	}
	return to
}

// StringValue deref *string, "" cho nil
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
