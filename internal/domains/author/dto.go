package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-admin/internal/shared/submission"
)

const (
	MinNameLength = 6
	MaxNameLength = 255
	MaxBioLength  = 5000
)

// AuthorForm là body của POST /dashboard/authors/:id
type AuthorForm struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

// DecodeForm map form values sang AuthorForm
func DecodeForm(v submission.Values) AuthorForm {
	return AuthorForm{
		Name: v.Get("name"),
		Bio:  v.Optional("bio"),
	}
}

func (f AuthorForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error("Name is required"),
			validation.RuneLength(MinNameLength, 0).Error("Name must contain at least 6 characters"),
			validation.RuneLength(0, MaxNameLength).Error("Name must contain at most 255 characters"),
		),
		validation.Field(&f.Bio,
			validation.RuneLength(0, MaxBioLength).Error("Bio must contain at most 5000 characters"),
		),
	)
}

// AuthorDetailResponse - payload của GET /dashboard/authors/:id
type AuthorDetailResponse struct {
	Author *Author `json:"author,omitempty"` // nil khi id = "new"
}

// AuthorListResponse - payload của GET /dashboard/authors
type AuthorListResponse struct {
	Authors []AuthorWithBookCount `json:"authors"`
}
