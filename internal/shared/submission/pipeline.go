package submission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Form là payload đã decode, tự validate bằng ozzo-validation
type Form interface {
	Validate() error
}

// Submission là một lần submit form
type Submission struct {
	Intent Intent
	Key    string    // route key: author id, book isbn...
	Actor  uuid.UUID // current user, uuid.Nil nếu chưa login
	Values Values
}

// Result: đúng một trong Errors hoặc Redirect được set
type Result struct {
	Errors   FieldErrors
	Redirect string
	Key      string // key của record vừa create (intent new)
}

// Failed trả về true khi submission bị reject với field errors
func (r *Result) Failed() bool {
	return r != nil && !r.Errors.Empty()
}

// Operations là bảng intent -> operation. Mỗi request chạy đúng một.
type Operations[F Form] struct {
	Create func(ctx context.Context, actor uuid.UUID, form F) (string, error)
	Update func(ctx context.Context, key string, form F) error
	Delete func(ctx context.Context, key string) error
}

// Pipeline: validate -> check -> một operation -> redirect
type Pipeline[F Form] struct {
	Name string

	// Decode map form values sang typed form
	Decode func(Values) F

	// Check chạy sau schema, trước operation (uniqueness, reference...).
	// Chỉ là UX: store vẫn phải enforce constraint, xem Conflict.
	Check func(ctx context.Context, intent Intent, key string, form F) (FieldErrors, error)

	Ops Operations[F]

	// Conflict map lỗi store (unique/FK violation) sang field errors.
	// Trả về nil nếu lỗi không thuộc field nào.
	Conflict func(err error) FieldErrors

	RedirectTo   string
	RequireActor bool
}

// Submit xử lý một submission tới trạng thái Completed
func (p *Pipeline[F]) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if err := p.preconditions(sub); err != nil {
		log.Error().Err(err).
			Str("pipeline", p.Name).
			Str("intent", sub.Intent.String()).
			Msg("Submission precondition failed")
		return nil, err
	}

	form := p.Decode(sub.Values)

	if err := form.Validate(); err != nil {
		fieldErrs, ok := FromValidation(err)
		if !ok {
			return nil, fmt.Errorf("%s: validate: %w", p.Name, err)
		}
		return &Result{Errors: fieldErrs}, nil
	}

	if p.Check != nil {
		fieldErrs, err := p.Check(ctx, sub.Intent, sub.Key, form)
		if err != nil {
			return nil, fmt.Errorf("%s: check: %w", p.Name, err)
		}
		if !fieldErrs.Empty() {
			return &Result{Errors: fieldErrs}, nil
		}
	}

	key, err := p.run(ctx, sub, form)
	if err != nil {
		if p.Conflict != nil {
			if fieldErrs := p.Conflict(err); !fieldErrs.Empty() {
				return &Result{Errors: fieldErrs}, nil
			}
		}
		return nil, fmt.Errorf("%s: %s: %w", p.Name, sub.Intent, err)
	}

	log.Info().
		Str("pipeline", p.Name).
		Str("intent", sub.Intent.String()).
		Str("key", key).
		Msg("Submission completed")

	return &Result{Redirect: p.RedirectTo, Key: key}, nil
}

func (p *Pipeline[F]) preconditions(sub Submission) error {
	if _, err := ParseIntent(string(sub.Intent)); err != nil {
		return fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	if !p.supports(sub.Intent) {
		return fmt.Errorf("%w: %w: %s not supported by %s", ErrPrecondition, ErrUnknownIntent, sub.Intent, p.Name)
	}
	if p.RequireActor && sub.Actor == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrPrecondition, ErrMissingActor)
	}
	if sub.Intent != IntentNew && sub.Key == "" {
		return fmt.Errorf("%w: %w", ErrPrecondition, ErrMissingKey)
	}
	return nil
}

func (p *Pipeline[F]) supports(intent Intent) bool {
	switch intent {
	case IntentNew:
		return p.Ops.Create != nil
	case IntentUpdate:
		return p.Ops.Update != nil
	case IntentDelete:
		return p.Ops.Delete != nil
	}
	return false
}

func (p *Pipeline[F]) run(ctx context.Context, sub Submission, form F) (string, error) {
	switch sub.Intent {
	case IntentNew:
		return p.Ops.Create(ctx, sub.Actor, form)
	case IntentUpdate:
		return sub.Key, p.Ops.Update(ctx, sub.Key, form)
	default:
		return sub.Key, p.Ops.Delete(ctx, sub.Key)
	}
}
