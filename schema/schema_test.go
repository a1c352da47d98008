package schema

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/psanford/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/swaggerguard/internal/testutil"
	"github.com/erraggy/swaggerguard/oaserrors"
)

func TestParseAttribute(t *testing.T) {
	t.Run("object with required list", func(t *testing.T) {
		attr, err := ParseAttribute([]byte(testutil.TestObjectSchema))
		require.NoError(t, err)

		obj, ok := attr.Definition.(*Object)
		require.True(t, ok, "expected *Object, got %T", attr.Definition)
		assert.Equal(t, []string{"id", "name"}, obj.Required)
		assert.Len(t, obj.Properties, 3)
		assert.IsType(t, &Integer{}, obj.Properties["id"].Definition)
		assert.IsType(t, &String{}, obj.Properties["name"].Definition)
		assert.IsType(t, Boolean{}, obj.Properties["valid"].Definition)
	})

	t.Run("integer bounds and format", func(t *testing.T) {
		attr, err := ParseAttribute([]byte("type: integer\nformat: int32\nminimum: -5\nmaximum: 5"))
		require.NoError(t, err)

		i := attr.Definition.(*Integer)
		assert.Equal(t, "int32", i.Format)
		require.NotNil(t, i.Minimum)
		require.NotNil(t, i.Maximum)
		assert.Equal(t, int64(-5), *i.Minimum)
		assert.Equal(t, int64(5), *i.Maximum)
	})

	t.Run("missing bounds stay nil", func(t *testing.T) {
		attr, err := ParseAttribute([]byte("type: integer"))
		require.NoError(t, err)

		i := attr.Definition.(*Integer)
		assert.Nil(t, i.Minimum)
		assert.Nil(t, i.Maximum)
		assert.Empty(t, i.Format)
	})

	t.Run("string enum is de-duplicated in order", func(t *testing.T) {
		attr, err := ParseAttribute([]byte("type: string\nenum: [DOG, CAT, DOG]"))
		require.NoError(t, err)

		s := attr.Definition.(*String)
		assert.Equal(t, []string{"DOG", "CAT"}, s.Choices)
	})

	t.Run("array items", func(t *testing.T) {
		attr, err := ParseAttribute([]byte("type: array\nitems:\n  type: integer"))
		require.NoError(t, err)

		arr := attr.Definition.(*Array)
		require.NotNil(t, arr.Items)
		assert.Equal(t, TypeInteger, arr.Items.Definition.TypeName())
	})

	t.Run("array without items is rejected", func(t *testing.T) {
		_, err := ParseAttribute([]byte("type: array"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrParse))
		assert.Contains(t, err.Error(), "requires items")
	})

	t.Run("reference with description", func(t *testing.T) {
		attr, err := ParseAttribute([]byte("$ref: '#/definitions/Pet'\ndescription: the pet"))
		require.NoError(t, err)

		assert.True(t, attr.IsReference())
		assert.Equal(t, "#/definitions/Pet", attr.Reference)
		assert.Equal(t, "the pet", attr.Description)
		assert.IsType(t, Undefined{}, attr.Definition)
	})

	t.Run("no type tag is undefined", func(t *testing.T) {
		attr, err := ParseAttribute([]byte("description: anything"))
		require.NoError(t, err)
		assert.IsType(t, Undefined{}, attr.Definition)
		assert.Empty(t, attr.Definition.TypeName())
	})

	t.Run("file type", func(t *testing.T) {
		attr, err := ParseAttribute([]byte("type: file"))
		require.NoError(t, err)
		assert.Equal(t, TypeFile, attr.Definition.TypeName())
	})

	t.Run("unsupported type tag", func(t *testing.T) {
		_, err := ParseAttribute([]byte("type: number"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported type "number"`)
	})

	t.Run("scalar is not an attribute", func(t *testing.T) {
		_, err := ParseAttribute([]byte("just a string"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrParse))
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ParseAttribute([]byte("  \n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty document")
	})

	t.Run("object required must be a list", func(t *testing.T) {
		_, err := ParseAttribute([]byte("type: object\nrequired: true"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list of property names")
	})

	t.Run("required is ignored outside objects", func(t *testing.T) {
		attr, err := ParseAttribute([]byte("type: integer\nrequired: true\nminimum: 1"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), *attr.Definition.(*Integer).Minimum)
	})
}

func TestParseAttribute_TopLevel(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bare mapping", "type: integer\n", TypeInteger},
		{"explicit document start", "---\ntype: string\n", TypeString},
		{"json", `{"type": "boolean"}`, TypeBoolean},
		{"leading comment", "# pet\ntype: object\n", TypeObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr, err := ParseAttribute([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, attr.Definition.TypeName())
		})
	}
}

func TestParseDocument_RequiredInlineParameters(t *testing.T) {
	src := `
swagger: "2.0"
paths:
  /pet/{petId}:
    get:
      parameters:
        - name: petId
          in: path
          required: true
          type: integer
          minimum: 1
        - name: tags
          in: query
          required: false
          type: array
          items:
            type: string
          collectionFormat: pipes
        - name: api_key
          in: header
          required: true
          type: string
`
	doc, err := ParseDocument([]byte(src))
	require.NoError(t, err)

	get := doc.Paths["/pet/{petId}"].Lookup(MethodGet)
	require.NotNil(t, get)
	require.Len(t, get.Parameters, 3)

	petID := get.Parameters[0]
	assert.True(t, petID.Required)
	i, ok := petID.Attribute.Definition.(*Integer)
	require.True(t, ok, "expected *Integer, got %T", petID.Attribute.Definition)
	assert.Equal(t, int64(1), *i.Minimum)

	tags := get.Parameters[1]
	assert.False(t, tags.Required)
	assert.Equal(t, "pipes", tags.CollectionFormat)
	assert.IsType(t, &Array{}, tags.Attribute.Definition)

	apiKey := get.Parameters[2]
	assert.True(t, apiKey.Required)
	assert.Equal(t, InHeader, apiKey.In)
	assert.IsType(t, &String{}, apiKey.Attribute.Definition)
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		ref   string
		local bool
		name  string
	}{
		{ref: "#/definitions/Pet", local: true, name: "Pet"},
		{ref: "#/definitions/", local: false},
		{ref: "#/parameters/Pet", local: false},
		{ref: "other.yaml#/definitions/Pet", local: false},
		{ref: "Pet", local: false},
		{ref: "#", local: false},
		{ref: "", local: false},
		{ref: "#/definitions/Pet/properties", local: false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			loc := ParseLocation(tt.ref)
			assert.Equal(t, tt.local, loc.IsLocal())
			assert.Equal(t, tt.name, loc.Name())
			if !tt.local {
				assert.Equal(t, UnknownLocation, loc)
				assert.Equal(t, "unknown", loc.String())
			}
		})
	}

	assert.Equal(t, "#/definitions/Tag", LocalLocation("Tag").String())
}

func TestParseDefinitions(t *testing.T) {
	defs, err := ParseDefinitions([]byte("Test:\n" + indent(testutil.TestObjectSchema)))
	require.NoError(t, err)

	assert.Equal(t, []string{"Test"}, defs.Names())
	assert.IsType(t, &Object{}, defs["Test"].Definition)
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(testutil.PetstoreSwagger))
	require.NoError(t, err)

	assert.Equal(t, SwaggerVersion, doc.Swagger)
	assert.Equal(t, []string{"Category", "Node", "Pet", "Tag"}, doc.Definitions.Names())

	pet := doc.Definitions["Pet"].Definition.(*Object)
	assert.IsType(t, &Array{}, pet.Properties["photoUrls"].Definition)
	assert.Equal(t, "#/definitions/Category", pet.Properties["category"].Reference)
	assert.Equal(t, "pet status in the store", pet.Properties["status"].Description)

	t.Run("path level parameters", func(t *testing.T) {
		item := doc.Paths["/pet/{petId}"]
		require.NotNil(t, item)
		require.Len(t, item.Parameters, 1)
		assert.Equal(t, "petId", item.Parameters[0].Name)
		assert.Equal(t, InPath, item.Parameters[0].In)
		assert.True(t, item.Parameters[0].Required)
	})

	t.Run("body parameter uses schema", func(t *testing.T) {
		post := doc.Paths["/pet"].Lookup(MethodPost)
		require.NotNil(t, post)
		require.Len(t, post.Parameters, 1)
		body := post.Parameters[0]
		assert.Equal(t, InBody, body.In)
		assert.Equal(t, "#/definitions/Pet", body.Attribute.Reference)
	})

	t.Run("inline parameter attribute", func(t *testing.T) {
		get := doc.Paths["/pet/findByStatus"].Lookup(MethodGet)
		require.NotNil(t, get)
		status := FindParameter(get.Parameters, "status", InQuery)
		require.NotNil(t, status)
		assert.Equal(t, []string{"available", "pending", "sold"}, status.Attribute.Definition.(*String).Choices)
		assert.Nil(t, FindParameter(get.Parameters, "status", InPath))
	})

	t.Run("templates are sorted", func(t *testing.T) {
		templates := doc.Paths.Templates()
		assert.True(t, slices.IsSorted(templates))
		assert.Contains(t, templates, "/user/login")
	})
}

func TestParameterInvalidLocation(t *testing.T) {
	src := `
paths:
  /a:
    get:
      parameters:
        - name: x
          in: cookie
          type: string
`
	_, err := ParseDocument([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid location "cookie"`)
}

func TestOperationsAll(t *testing.T) {
	ops := &Operations{
		Delete: &Operation{OperationID: "d"},
		Get:    &Operation{OperationID: "g"},
		Put:    &Operation{OperationID: "p"},
	}

	var methods []Method
	for m := range ops.All() {
		methods = append(methods, m)
	}
	assert.Equal(t, []Method{MethodPut, MethodGet, MethodDelete}, methods)

	t.Run("stops when yield returns false", func(t *testing.T) {
		count := 0
		for range ops.All() {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})

	t.Run("nil operations yields nothing", func(t *testing.T) {
		var empty *Operations
		for range empty.All() {
			t.Fatal("unexpected operation")
		}
	})
}

func TestEffectiveParameters(t *testing.T) {
	shared := &Parameter{Name: "id", In: InPath}
	query := &Parameter{Name: "q", In: InQuery}
	override := &Parameter{Name: "id", In: InPath, Required: true}

	ops := &Operations{Parameters: []*Parameter{shared, query}}
	op := &Operation{Parameters: []*Parameter{override}}

	got := ops.EffectiveParameters(op)
	assert.Equal(t, []*Parameter{query, override}, got)
	assert.Equal(t, []*Parameter{shared, query}, ops.EffectiveParameters(nil))
}

func TestParseWithOptions(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "swagger.yaml", testutil.PetstoreSwagger)

		doc, err := ParseWithOptions(WithFilePath(path))
		require.NoError(t, err)
		assert.Equal(t, path, doc.SourcePath)
		assert.Len(t, doc.Definitions, 4)
	})

	t.Run("from fs", func(t *testing.T) {
		fsys := memfs.New()
		require.NoError(t, fsys.MkdirAll("specs", 0o755))
		require.NoError(t, fsys.WriteFile("specs/swagger.yaml", []byte(testutil.PetstoreSwagger), 0o644))

		doc, err := ParseWithOptions(WithFS(fsys, "specs/swagger.yaml"), WithLogger(NopLogger{}))
		require.NoError(t, err)
		assert.Equal(t, "specs/swagger.yaml", doc.SourcePath)
		assert.NotEmpty(t, doc.Paths)
	})

	t.Run("missing file in fs", func(t *testing.T) {
		_, err := ParseWithOptions(WithFS(memfs.New(), "nope.yaml"))
		require.Error(t, err)
		var parseErr *oaserrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "nope.yaml", parseErr.Path)
	})

	t.Run("from reader with JSON", func(t *testing.T) {
		src := `{"swagger": "2.0", "definitions": {"A": {"type": "object", "properties": {"x": {"type": "boolean"}}}}}`
		doc, err := ParseWithOptions(WithReader(strings.NewReader(src)))
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, doc.Definitions.Names())
		assert.NotNil(t, doc.Paths)
	})

	t.Run("parse error carries source", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte("definitions:\n  A:\n    type: widget\n")))
		require.Error(t, err)
		var parseErr *oaserrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "bytes", parseErr.Path)
		assert.Contains(t, err.Error(), "widget")
	})

	t.Run("requires exactly one source", func(t *testing.T) {
		_, err := ParseWithOptions()
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))

		_, err = ParseWithOptions(WithBytes([]byte("a: 1")), WithFilePath("x.yaml"))
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("rejects empty path and nil reader", func(t *testing.T) {
		_, err := ParseWithOptions(WithFilePath(""))
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))

		_, err = ParseWithOptions(WithReader(nil))
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})
}

func indent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
