package route

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/swaggerguard/format"
	"github.com/erraggy/swaggerguard/internal/testutil"
	"github.com/erraggy/swaggerguard/oaserrors"
	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

// shape is the comparable part of a Segment.
type shape struct {
	Kind    SegmentKind
	Value   string
	Untyped bool
	Min     int64
	Max     int64
	Format  string
	Choices []string
}

func shapes(segs []Segment) []shape {
	out := make([]shape, 0, len(segs))
	for _, s := range segs {
		sh := shape{Kind: s.Kind, Value: s.Value, Untyped: s.Untyped}
		if s.Number != nil {
			sh.Min, sh.Max = s.Number.Minimum, s.Number.Maximum
			sh.Format = s.Number.Format.Name()
		}
		if s.Text != nil {
			sh.Format = s.Text.Format.Name()
			sh.Choices = s.Text.Choices
		}
		out = append(out, sh)
	}
	return out
}

func pathParam(t *testing.T, src string) *schema.Parameter {
	t.Helper()
	var p schema.Parameter
	require.NoError(t, testutil.MustNode(t, src).Decode(&p))
	return &p
}

func petstore(t *testing.T) *schema.Document {
	t.Helper()
	doc, err := schema.ParseDocument([]byte(testutil.PetstoreSwagger))
	require.NoError(t, err)
	return doc
}

func TestSegmentIter(t *testing.T) {
	petID := pathParam(t, "{name: petId, in: path, required: true, type: integer, minimum: 1}")
	addr := pathParam(t, "{name: addr, in: path, type: string, format: ipv4}")
	status := pathParam(t, "{name: status, in: path, type: string, enum: [a, b]}")
	flag := pathParam(t, "{name: flag, in: path, type: boolean}")
	queryID := pathParam(t, "{name: id, in: query, type: integer}")

	tests := []struct {
		name     string
		template string
		params   []*schema.Parameter
		want     []shape
	}{
		{
			name:     "integer parameter",
			template: "/pet/{petId}",
			params:   []*schema.Parameter{petID},
			want: []shape{
				{Kind: Fixed, Value: "pet"},
				{Kind: Number, Value: "petId", Min: 1, Max: math.MaxInt64, Format: "text"},
			},
		},
		{
			name:     "string parameter with format",
			template: "/network/{addr}/ping",
			params:   []*schema.Parameter{addr},
			want: []shape{
				{Kind: Fixed, Value: "network"},
				{Kind: Text, Value: "addr", Format: "IPv4"},
				{Kind: Fixed, Value: "ping"},
			},
		},
		{
			name:     "string parameter with choices",
			template: "/{status}",
			params:   []*schema.Parameter{status},
			want:     []shape{{Kind: Text, Value: "status", Format: "text", Choices: []string{"a", "b"}}},
		},
		{
			name:     "other type falls back to text",
			template: "/toggle/{flag}",
			params:   []*schema.Parameter{flag},
			want: []shape{
				{Kind: Fixed, Value: "toggle"},
				{Kind: Text, Value: "flag", Format: "text"},
			},
		},
		{
			name:     "undeclared parameter",
			template: "/pet/{petId}",
			want: []shape{
				{Kind: Fixed, Value: "pet"},
				{Kind: Fixed, Value: "petId", Untyped: true},
			},
		},
		{
			name:     "only path parameters count",
			template: "/item/{id}",
			params:   []*schema.Parameter{queryID},
			want: []shape{
				{Kind: Fixed, Value: "item"},
				{Kind: Fixed, Value: "id", Untyped: true},
			},
		},
		{
			name:     "root",
			template: "/",
			want:     []shape{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(NewSegmentIter(nil, tt.template, tt.params).All())
			if diff := cmp.Diff(tt.want, shapes(got)); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentIter_OneShot(t *testing.T) {
	it := NewSegmentIter(nil, "/a/b/c", nil)

	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "a", first.Value)

	rest := slices.Collect(it.All())
	require.Len(t, rest, 2)
	assert.Equal(t, "b", rest[0].Value)

	_, ok = it.Next()
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(it.All()), "drained iterator does not restart")
}

func TestSegmentIter_EarlyBreak(t *testing.T) {
	it := NewSegmentIter(nil, "/a/b/c", nil)
	for seg := range it.All() {
		assert.Equal(t, "a", seg.Value)
		break
	}
	next, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "b", next.Value)
}

func TestSegmentIter_Compiler(t *testing.T) {
	c, err := validator.NewCompiler(validator.WithStringFormats(format.NewRegistry(format.NewTable[string]())))
	require.NoError(t, err)

	addr := pathParam(t, "{name: addr, in: path, type: string, format: ipv4}")
	seg, ok := NewSegmentIter(c, "/{addr}", []*schema.Parameter{addr}).Next()
	require.True(t, ok)
	assert.True(t, format.IsUnknown(seg.Text.Format))
}

func TestSegment_String(t *testing.T) {
	assert.Equal(t, "pet", Segment{Kind: Fixed, Value: "pet"}.String())
	assert.Equal(t, "{id}", Segment{Kind: Fixed, Value: "id", Untyped: true}.String())
	assert.Equal(t, "{id}", Segment{Kind: Number, Value: "id"}.String())
	assert.Equal(t, "number", Number.String())
	assert.Equal(t, "unknown", SegmentKind(9).String())
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		template string
		contains string
	}{
		{"", "cannot be empty"},
		{"pets", "must start with /"},
		{"/pets/{petId", "unclosed"},
		{"/pets/{}", "invalid path parameter name"},
		{"/files/{name}.json", "whole segment"},
		{"/users/{id}/posts/{id}", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			_, err := Compile(nil, tt.template, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestTemplate_Match(t *testing.T) {
	params := []*schema.Parameter{
		pathParam(t, "{name: orderId, in: path, type: integer, minimum: 1, maximum: 10}"),
		pathParam(t, "{name: item, in: path, type: string, enum: [hat, shoe]}"),
	}
	tmpl, err := Compile(nil, "/store/order/{orderId}/{item}/{extra}", params)
	require.NoError(t, err)
	assert.Equal(t, []string{"orderId", "item", "extra"}, tmpl.ParamNames())
	assert.Equal(t, "/store/order/{orderId}/{item}/{extra}", tmpl.String())

	t.Run("captures typed values", func(t *testing.T) {
		got, ok, err := tmpl.Match("/store/order/5/hat/any%20thing")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, Params{"orderId": int64(5), "item": "hat", "extra": "any thing"}, got)

		id, ok := got.Int("orderId")
		assert.True(t, ok)
		assert.Equal(t, int64(5), id)
		_, ok = got.Int("item")
		assert.False(t, ok)
	})

	shapeMismatch := []string{
		"/store/order/5/hat",
		"/store/order/5/hat/x/y",
		"/store/orders/5/hat/x",
		"store/order/5/hat/x",
		"/store/order//hat/x",
	}
	for _, path := range shapeMismatch {
		t.Run("mismatch "+path, func(t *testing.T) {
			_, ok, err := tmpl.Match(path)
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}

	violations := []struct {
		path  string
		param string
		msg   string
	}{
		{"/store/order/abc/hat/x", "orderId", "field is not integer"},
		{"/store/order/0/hat/x", "orderId", "field is too small"},
		{"/store/order/11/hat/x", "orderId", "field is too large"},
		{"/store/order/3/sock/x", "item", "field is not one of [hat, shoe]"},
	}
	for _, tt := range violations {
		t.Run("violation "+tt.path, func(t *testing.T) {
			_, ok, err := tmpl.Match(tt.path)
			assert.True(t, ok)
			require.Error(t, err)

			var pe *ParamError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.param, pe.Name)

			v, isViolation := validator.AsViolation(err)
			require.True(t, isViolation)
			assert.Equal(t, tt.msg, v.Message)
			assert.ErrorIs(t, err, oaserrors.ErrValidation)
		})
	}
}

func TestTemplate_SegmentsCopy(t *testing.T) {
	tmpl, err := Compile(nil, "/a/b", nil)
	require.NoError(t, err)
	segs := tmpl.Segments()
	segs[0].Value = "changed"
	assert.Equal(t, "a", tmpl.Segments()[0].Value)
}

func TestPetstoreSegments(t *testing.T) {
	doc := petstore(t)
	ops := doc.Paths["/pet/{petId}"]
	require.NotNil(t, ops)

	got := slices.Collect(NewSegmentIter(nil, "/pet/{petId}", ops.EffectiveParameters(ops.Get)).All())
	want := []shape{
		{Kind: Fixed, Value: "pet"},
		{Kind: Number, Value: "petId", Min: 1, Max: math.MaxInt64, Format: "text"},
	}
	if diff := cmp.Diff(want, shapes(got)); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestRouter(t *testing.T) {
	r, err := NewRouter(petstore(t))
	require.NoError(t, err)

	t.Run("literal beats parameter", func(t *testing.T) {
		m, err := r.Match("GET", "/pet/findByStatus")
		require.NoError(t, err)
		assert.Equal(t, "/pet/findByStatus", m.Template.String())
		assert.Equal(t, "findPetsByStatus", m.Operation.OperationID)

		m, err = r.Match("get", "/user/login")
		require.NoError(t, err)
		assert.Equal(t, "loginUser", m.Operation.OperationID)
	})

	t.Run("captures parameters", func(t *testing.T) {
		m, err := r.Match("GET", "/pet/42")
		require.NoError(t, err)
		assert.Equal(t, "getPetById", m.Operation.OperationID)
		assert.Equal(t, Params{"petId": int64(42)}, m.Params)

		m, err = r.Match("GET", "/user/alice")
		require.NoError(t, err)
		assert.Equal(t, Params{"username": "alice"}, m.Params)
	})

	t.Run("parameter violation", func(t *testing.T) {
		m, err := r.Match("GET", "/pet/abc")
		require.Error(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "/pet/{petId}", m.Template.String())
		assert.Equal(t, "path parameter petId: field is not integer", err.Error())

		_, err = r.Match("GET", "/network/CAT/ping")
		assert.EqualError(t, err, "path parameter addr: field is not format of IPv4")
	})

	t.Run("path-level parameters reach every method", func(t *testing.T) {
		m, err := r.Match("DELETE", "/pet/0")
		require.Error(t, err)
		assert.Equal(t, "deletePet", m.Operation.OperationID)
		assert.Contains(t, err.Error(), "field is too small")
		assert.NotNil(t, schema.FindParameter(m.Parameters, "api_key", schema.InHeader))
	})

	t.Run("method not allowed", func(t *testing.T) {
		_, err := r.Match("PUT", "/pet/1")
		assert.True(t, errors.Is(err, ErrMethodNotAllowed))
		assert.Equal(t, []schema.Method{schema.MethodPost, schema.MethodGet, schema.MethodDelete}, r.Allowed("/pet/1"))
	})

	t.Run("no route", func(t *testing.T) {
		_, err := r.Match("GET", "/garden/1")
		assert.ErrorIs(t, err, ErrNoRoute)
		assert.Empty(t, r.Allowed("/garden/1"))
	})
}

func TestRouter_Routes(t *testing.T) {
	r, err := NewRouter(petstore(t))
	require.NoError(t, err)

	var got []string
	for rt := range r.Routes() {
		got = append(got, string(rt.Method)+" "+rt.Template.String())
	}
	assert.Equal(t, []string{
		"POST /pet/{petId}",
		"POST /pet",
		"GET /network/{addr}/ping",
		"GET /store/order/{orderId}",
		"GET /pet/findByStatus",
		"GET /user/login",
		"GET /pet/{petId}",
		"GET /user/{username}",
		"DELETE /pet/{petId}",
	}, got)
}

func TestNewRouter_Errors(t *testing.T) {
	_, err := NewRouter(nil)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	_, err = NewRouter(petstore(t), WithCompiler(nil))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	doc := &schema.Document{Paths: schema.Paths{
		"/broken/{id": &schema.Operations{Get: &schema.Operation{}},
	}}
	_, err = NewRouter(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /broken/{id")
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}
