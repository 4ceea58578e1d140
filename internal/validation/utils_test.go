package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/recipe-portal/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createThing struct {
	Name              string `json:"name" validate:"required"`
	DietaryPreference string `json:"dietary_preference" validate:"required"`
	Servings          *int   `json:"servings" validate:"omitempty,gte=1"`
}

func (r *createThing) Validate() error {
	return Struct(r)
}

type lookupThing struct {
	ID int64 `param:"id"`
}

func (r *lookupThing) Validate() error {
	return Struct(r)
}

type customThing struct{}

func (r *customThing) Validate() error {
	return CustomValidationErrors{{Field: "country_ids", Message: "must not repeat"}}
}

func newJSONContext(method, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func requireBadRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newJSONContext(http.MethodPost, `{"name":"Soup","dietary_preference":"Vegan","servings":2}`)

	var req createThing
	require.NoError(t, BindAndValidate(c, &req))
	assert.Equal(t, "Soup", req.Name)
	assert.Equal(t, 2, *req.Servings)
}

func TestBindAndValidateMissingFields(t *testing.T) {
	c := newJSONContext(http.MethodPost, `{"name":""}`)

	httpErr := requireBadRequest(t, BindAndValidate(c, &createThing{}))
	assert.Equal(t, MsgValidationFailed, httpErr.Message)
	assert.True(t, httpErr.Override)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "dietary_preference", Error: "is required"},
	}, httpErr.Errors)
}

func TestBindAndValidateRangeTag(t *testing.T) {
	c := newJSONContext(http.MethodPost, `{"name":"Soup","dietary_preference":"Vegan","servings":0}`)

	httpErr := requireBadRequest(t, BindAndValidate(c, &createThing{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "servings", httpErr.Errors[0].Field)
	assert.Equal(t, "must be 1 or more", httpErr.Errors[0].Error)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	c := newJSONContext(http.MethodPost, `{"name":`)

	httpErr := requireBadRequest(t, BindAndValidate(c, &createThing{}))
	assert.Equal(t, MsgInvalidPayload, httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidateWrongJSONType(t *testing.T) {
	c := newJSONContext(http.MethodPost, `{"name":"Soup","dietary_preference":"Vegan","servings":"two"}`)

	httpErr := requireBadRequest(t, BindAndValidate(c, &createThing{}))
	assert.Equal(t, MsgInvalidPayload, httpErr.Message)
	assert.NotContains(t, httpErr.Message, "offset")
}

func TestBindAndValidateNonIntegerParam(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recipes/abc", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	httpErr := requireBadRequest(t, BindAndValidate(c, &lookupThing{}))
	assert.Equal(t, MsgInvalidPayload, httpErr.Message)
}

func TestBindAndValidateUnsupportedMedia(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Soup"))
	req.Header.Set(echo.HeaderContentType, "text/csv")
	c := e.NewContext(req, httptest.NewRecorder())

	httpErr := requireBadRequest(t, BindAndValidate(c, &createThing{}))
	assert.Equal(t, MsgUnsupportedMedia, httpErr.Message)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", httpErr.Code)
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c := newJSONContext(http.MethodPost, `{}`)

	httpErr := requireBadRequest(t, BindAndValidate(c, &customThing{}))
	assert.Equal(t, []errs.FieldError{{Field: "country_ids", Error: "must not repeat"}}, httpErr.Errors)
}

type plainErrorThing struct{}

func (r *plainErrorThing) Validate() error {
	return errors.New("ids must be unique")
}

func TestBindAndValidatePlainError(t *testing.T) {
	c := newJSONContext(http.MethodPost, `{}`)

	httpErr := requireBadRequest(t, BindAndValidate(c, &plainErrorThing{}))
	assert.Equal(t, "Validation failed: ids must be unique", httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}
