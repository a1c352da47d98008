package httpvalidator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/swaggerguard/route"
	"github.com/erraggy/swaggerguard/validator"
)

func TestRequestResult_Message(t *testing.T) {
	missing := validator.MissingField("status")

	tests := []struct {
		name   string
		result *RequestResult
		want   string
	}{
		{"valid", &RequestResult{Valid: true}, ""},
		{"parameter", (&RequestResult{}).fail(LocationQuery, "status", missing), "query.status: Field status is required"},
		{"routing", (&RequestResult{}).fail(LocationRoute, "", route.ErrNoRoute), "no matching route"},
		{
			"path parameter",
			(&RequestResult{}).fail(LocationPath, "petId", &route.ParamError{Name: "petId", Err: errors.New("field is not integer")}),
			"path.petId: field is not integer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Message())
		})
	}
}

func TestRequestResult_Fail(t *testing.T) {
	r := &RequestResult{Valid: true}
	err := errors.New("boom")
	assert.Same(t, r, r.fail(LocationBody, "body", err))
	assert.False(t, r.Valid)
	assert.Equal(t, LocationBody, r.Location)
	assert.Equal(t, "body", r.Parameter)
	assert.Same(t, err, r.Err)
}
