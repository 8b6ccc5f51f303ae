package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/ratewise-backend/pkg/errors"
)

type sampleItem struct {
	Percent decimal.Decimal `json:"percent" validate:"dec_gte=0,dec_lte=100"`
}

type sampleBody struct {
	Mode     string              `json:"mode" validate:"required,oneof=FORWARD REVERSE"`
	Fallback decimal.NullDecimal `json:"fallback" validate:"omitempty,dec_gt=0"`
	Items    []sampleItem        `json:"items" validate:"dive"`
}

func decode(t *testing.T, body string) (sampleBody, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dest sampleBody
	err := DecodeJSONBody(req, &dest)
	return dest, err
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	got, err := decode(t, `{"mode":"REVERSE","fallback":"500000","items":[{"percent":12.5}]}`)
	require.NoError(t, err)
	require.True(t, got.Fallback.Valid)
	require.True(t, got.Items[0].Percent.Equal(decimal.RequireFromString("12.5")))
}

func TestDecodeJSONBodyNullDecimalIsOptional(t *testing.T) {
	got, err := decode(t, `{"mode":"FORWARD"}`)
	require.NoError(t, err)
	require.False(t, got.Fallback.Valid)
}

func TestDecodeJSONBodyReportsFieldPaths(t *testing.T) {
	_, err := decode(t, `{"mode":"SIDEWAYS","fallback":-1,"items":[{"percent":101}]}`)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	require.Contains(t, details, "mode")
	require.Contains(t, details, "fallback")
	require.Contains(t, details, "items[0].percent")
}

func TestDecodeJSONBodyComparesDecimalsExactly(t *testing.T) {
	got, err := decode(t, `{"mode":"FORWARD","items":[{"percent":"100"},{"percent":0}]}`)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)

	_, err = decode(t, `{"mode":"FORWARD","items":[{"percent":"100.00000000000000001"}]}`)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	require.Equal(t, "must be less than or equal to 100", details["items[0].percent"])

	_, err = decode(t, `{"mode":"FORWARD","fallback":"0.000000000000000001"}`)
	require.NoError(t, err)
	_, err = decode(t, `{"mode":"FORWARD","fallback":"0"}`)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	_, err := decode(t, `{"mode":"FORWARD","surprise":true}`)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()
	req := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "hotelId", id.String())
	got, err := ParseUUIDParam(req, "hotelId")
	require.NoError(t, err)
	require.Equal(t, id, got)

	req = withParam(httptest.NewRequest(http.MethodGet, "/", nil), "hotelId", "nope")
	_, err = ParseUUIDParam(req, "hotelId")
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
