package submission

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Precondition failures. Route phải dừng, không bao giờ recover local.
var (
	ErrPrecondition  = errors.New("submission precondition failed")
	ErrUnknownIntent = errors.New("unknown submission intent")
	ErrMissingActor  = errors.New("current user is required")
	ErrMissingKey    = errors.New("route key is required")
)

// IsPrecondition kiểm tra err có phải precondition failure không
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition) ||
		errors.Is(err, ErrUnknownIntent) ||
		errors.Is(err, ErrMissingActor) ||
		errors.Is(err, ErrMissingKey)
}

// FieldErrors map field name -> message hiển thị cho user
type FieldErrors map[string]string

// Add chỉ giữ message đầu tiên của mỗi field
func (fe FieldErrors) Add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// FromValidation chuyển validation.Errors của ozzo thành FieldErrors.
// Trả về ok=false nếu err không phải lỗi validation (vd: InternalError).
func FromValidation(err error) (FieldErrors, bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(FieldErrors, len(verrs))
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		out[field] = ferr.Error()
	}
	return out, true
}
