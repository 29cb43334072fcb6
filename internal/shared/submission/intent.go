package submission

import (
	"fmt"
	"net/url"
	"strings"
)

// Intent chọn operation persistence duy nhất cho một submission
type Intent string

const (
	IntentNew    Intent = "new"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
)

// Form field mang intent. "intent" được chấp nhận như alias.
const (
	ActionField      = "_action"
	ActionFieldAlias = "intent"
)

// ParseIntent trả về ErrUnknownIntent nếu giá trị không thuộc tập {new, update, delete}
func ParseIntent(raw string) (Intent, error) {
	switch i := Intent(strings.TrimSpace(raw)); i {
	case IntentNew, IntentUpdate, IntentDelete:
		return i, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, raw)
	}
}

func (i Intent) String() string {
	return string(i)
}

// Values là form body đã decode: field name -> string value
type Values map[string]string

// Get trả về value đã trim, "" nếu field không có
func (v Values) Get(field string) string {
	return strings.TrimSpace(v[field])
}

// Optional trả về nil cho field rỗng
func (v Values) Optional(field string) *string {
	s := v.Get(field)
	if s == "" {
		return nil
	}
	return &s
}

// Intent đọc _action (hoặc intent) từ form
func (v Values) Intent() (Intent, error) {
	raw, ok := v[ActionField]
	if !ok {
		raw = v[ActionFieldAlias]
	}
	return ParseIntent(raw)
}

// FromForm lấy value đầu tiên của mỗi key
func FromForm(form url.Values) Values {
	out := make(Values, len(form))
	for k, vs := range form {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
