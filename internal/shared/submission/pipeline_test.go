package submission

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteForm struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (f noteForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("Title is required"),
			validation.Length(3, 0).Error("Title must contain at least 3 characters"),
		),
		validation.Field(&f.Body, validation.Length(0, 10).Error("Body is too long")),
	)
}

var errStoreConflict = errors.New("duplicate title")

type recorder struct {
	creates, updates, deletes int
	lastActor                 uuid.UUID
	lastKey                   string
	createErr, deleteErr      error
}

func newPipeline(rec *recorder) *Pipeline[noteForm] {
	return &Pipeline[noteForm]{
		Name: "note",
		Decode: func(v Values) noteForm {
			return noteForm{Title: v.Get("title"), Body: v.Get("body")}
		},
		Ops: Operations[noteForm]{
			Create: func(_ context.Context, actor uuid.UUID, _ noteForm) (string, error) {
				rec.creates++
				rec.lastActor = actor
				if rec.createErr != nil {
					return "", rec.createErr
				}
				return "note-1", nil
			},
			Update: func(_ context.Context, key string, _ noteForm) error {
				rec.updates++
				rec.lastKey = key
				return nil
			},
			Delete: func(_ context.Context, key string) error {
				rec.deletes++
				rec.lastKey = key
				return rec.deleteErr
			},
		},
		Conflict: func(err error) FieldErrors {
			if errors.Is(err, errStoreConflict) {
				return FieldErrors{"title": "Title already used"}
			}
			return nil
		},
		RedirectTo:   "/dashboard/notes",
		RequireActor: true,
	}
}

func validValues() Values {
	return Values{"title": "Groceries", "body": "milk"}
}

func TestPipeline_New_CreatesOnceAndRedirects(t *testing.T) {
	rec := &recorder{}
	actor := uuid.New()

	res, err := newPipeline(rec).Submit(context.Background(), Submission{
		Intent: IntentNew,
		Actor:  actor,
		Values: validValues(),
	})

	require.NoError(t, err)
	assert.False(t, res.Failed())
	assert.Equal(t, "/dashboard/notes", res.Redirect)
	assert.Equal(t, "note-1", res.Key)
	assert.Equal(t, 1, rec.creates)
	assert.Zero(t, rec.updates+rec.deletes)
	assert.Equal(t, actor, rec.lastActor)
}

func TestPipeline_InvalidFields_NoPersistence(t *testing.T) {
	for _, intent := range []Intent{IntentNew, IntentUpdate, IntentDelete} {
		t.Run(intent.String(), func(t *testing.T) {
			rec := &recorder{}
			res, err := newPipeline(rec).Submit(context.Background(), Submission{
				Intent: intent,
				Key:    "note-1",
				Actor:  uuid.New(),
				Values: Values{"title": "ab", "body": "this body is far too long"},
			})

			require.NoError(t, err)
			require.True(t, res.Failed())
			assert.Empty(t, res.Redirect)
			assert.Equal(t, FieldErrors{
				"title": "Title must contain at least 3 characters",
				"body":  "Body is too long",
			}, res.Errors)
			assert.Zero(t, rec.creates+rec.updates+rec.deletes)
		})
	}
}

func TestPipeline_OnlyInvalidFieldsReported(t *testing.T) {
	rec := &recorder{}
	res, err := newPipeline(rec).Submit(context.Background(), Submission{
		Intent: IntentNew,
		Actor:  uuid.New(),
		Values: Values{"title": "", "body": "ok"},
	})

	require.NoError(t, err)
	assert.Equal(t, FieldErrors{"title": "Title is required"}, res.Errors)
	assert.NotContains(t, res.Errors, "body")
}

func TestPipeline_CheckRejectsBeforeOperation(t *testing.T) {
	rec := &recorder{}
	p := newPipeline(rec)
	p.Check = func(_ context.Context, intent Intent, _ string, f noteForm) (FieldErrors, error) {
		if intent == IntentNew && f.Title == "Groceries" {
			return FieldErrors{"title": "Title already used"}, nil
		}
		return nil, nil
	}

	res, err := p.Submit(context.Background(), Submission{Intent: IntentNew, Actor: uuid.New(), Values: validValues()})

	require.NoError(t, err)
	assert.Equal(t, FieldErrors{"title": "Title already used"}, res.Errors)
	assert.Zero(t, rec.creates)
}

func TestPipeline_CheckErrorPropagates(t *testing.T) {
	rec := &recorder{}
	p := newPipeline(rec)
	boom := errors.New("db down")
	p.Check = func(context.Context, Intent, string, noteForm) (FieldErrors, error) {
		return nil, boom
	}

	_, err := p.Submit(context.Background(), Submission{Intent: IntentNew, Actor: uuid.New(), Values: validValues()})

	require.ErrorIs(t, err, boom)
	assert.Zero(t, rec.creates)
}

func TestPipeline_StoreConflictBecomesFieldError(t *testing.T) {
	rec := &recorder{createErr: errStoreConflict}

	res, err := newPipeline(rec).Submit(context.Background(), Submission{Intent: IntentNew, Actor: uuid.New(), Values: validValues()})

	require.NoError(t, err)
	assert.Equal(t, FieldErrors{"title": "Title already used"}, res.Errors)
	assert.Equal(t, 1, rec.creates)
}

func TestPipeline_UpdateAndDeleteUseKey(t *testing.T) {
	rec := &recorder{}
	p := newPipeline(rec)

	_, err := p.Submit(context.Background(), Submission{Intent: IntentUpdate, Key: "note-7", Actor: uuid.New(), Values: validValues()})
	require.NoError(t, err)
	assert.Equal(t, "note-7", rec.lastKey)

	_, err = p.Submit(context.Background(), Submission{Intent: IntentDelete, Key: "note-8", Actor: uuid.New(), Values: validValues()})
	require.NoError(t, err)
	assert.Equal(t, "note-8", rec.lastKey)

	assert.Equal(t, 1, rec.updates)
	assert.Equal(t, 1, rec.deletes)
	assert.Zero(t, rec.creates)
}

func TestPipeline_NotFoundPropagates(t *testing.T) {
	notFound := errors.New("note not found")
	rec := &recorder{deleteErr: notFound}

	_, err := newPipeline(rec).Submit(context.Background(), Submission{Intent: IntentDelete, Key: "gone", Actor: uuid.New(), Values: validValues()})

	require.ErrorIs(t, err, notFound)
}

func TestPipeline_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
		want error
	}{
		{"missing actor", Submission{Intent: IntentNew, Values: validValues()}, ErrMissingActor},
		{"missing key on update", Submission{Intent: IntentUpdate, Actor: uuid.New(), Values: validValues()}, ErrMissingKey},
		{"missing key on delete", Submission{Intent: IntentDelete, Actor: uuid.New(), Values: validValues()}, ErrMissingKey},
		{"unknown intent", Submission{Intent: "archive", Key: "x", Actor: uuid.New(), Values: validValues()}, ErrUnknownIntent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			res, err := newPipeline(rec).Submit(context.Background(), tt.sub)

			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, ErrPrecondition)
			assert.True(t, IsPrecondition(err))
			assert.Nil(t, res)
			assert.Zero(t, rec.creates+rec.updates+rec.deletes)
		})
	}
}

func TestPipeline_UnsupportedIntent(t *testing.T) {
	rec := &recorder{}
	p := newPipeline(rec)
	p.Ops.Delete = nil

	_, err := p.Submit(context.Background(), Submission{Intent: IntentDelete, Key: "note-1", Actor: uuid.New(), Values: validValues()})

	require.ErrorIs(t, err, ErrUnknownIntent)
	assert.Zero(t, rec.deletes)
}

func TestValues_Intent(t *testing.T) {
	i, err := Values{"_action": "update"}.Intent()
	require.NoError(t, err)
	assert.Equal(t, IntentUpdate, i)

	i, err = Values{"intent": "delete"}.Intent()
	require.NoError(t, err)
	assert.Equal(t, IntentDelete, i)

	_, err = Values{}.Intent()
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestValues_Optional(t *testing.T) {
	v := Values{"bio": "  ", "summary": " short "}
	assert.Nil(t, v.Optional("bio"))
	require.NotNil(t, v.Optional("summary"))
	assert.Equal(t, "short", *v.Optional("summary"))
}
