package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/swaggerguard/internal/testutil"
)

func TestSetupValidateFlags(t *testing.T) {
	fs, flags := SetupValidateFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.Ref)
		assert.Empty(t, flags.Definition)
		assert.Equal(t, "text", flags.Format)
		assert.False(t, flags.Quiet)
		assert.False(t, flags.ExtendedFormats)
		assert.Positive(t, flags.Concurrency)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-definition", "Pet", "-q", "-format", "json", "-concurrency", "2", "swagger.yaml", "pet.json"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "Pet", flags.Definition)
		assert.True(t, flags.Quiet)
		assert.Equal(t, "json", flags.Format)
		assert.Equal(t, 2, flags.Concurrency)
		assert.Equal(t, []string{"swagger.yaml", "pet.json"}, fs.Args())
	})
}

func TestHandleValidate(t *testing.T) {
	schemaPath := petstoreFile(t)
	good := testutil.WriteTempFile(t, "good.json", `{"name": "doggie", "photoUrls": []}`)
	bad := testutil.WriteTempFile(t, "bad.yaml", "name: doggie\n")

	t.Run("valid document", func(t *testing.T) {
		out, errOut := captureOutput(t, "")
		require.NoError(t, HandleValidate([]string{"-definition", "Pet", schemaPath, good}))
		assert.Equal(t, good+": valid\n", out.String())
		assert.Contains(t, errOut.String(), "1 document(s) valid against #/definitions/Pet")
	})

	t.Run("invalid document", func(t *testing.T) {
		out, errOut := captureOutput(t, "")
		err := HandleValidate([]string{"-definition", "Pet", schemaPath, good, bad})
		assert.ErrorIs(t, err, ErrCheckFailed)
		assert.Equal(t, good+": valid\n"+bad+": Field photoUrls is required\n", out.String())
		assert.Contains(t, errOut.String(), "1 of 2 document(s) invalid")
	})

	t.Run("quiet prints failures only", func(t *testing.T) {
		out, errOut := captureOutput(t, "")
		err := HandleValidate([]string{"-q", "-ref", "#/definitions/Pet", schemaPath, good, bad})
		assert.ErrorIs(t, err, ErrCheckFailed)
		assert.Equal(t, bad+": Field photoUrls is required\n", out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("json report keeps argument order", func(t *testing.T) {
		out, _ := captureOutput(t, "")
		err := HandleValidate([]string{"-definition", "Pet", "-format", "json", "-concurrency", "1", schemaPath, bad, good})
		assert.ErrorIs(t, err, ErrCheckFailed)

		var report ValidateReport
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.False(t, report.Valid)
		assert.Equal(t, "#/definitions/Pet", report.Target)
		assert.Equal(t, []DocumentResult{
			{Document: bad, Kind: "structure", Message: "Field photoUrls is required"},
			{Document: good, Valid: true},
		}, report.Documents)
	})

	t.Run("stdin", func(t *testing.T) {
		out, _ := captureOutput(t, "{name: doggie, photoUrls: [1]}")
		err := HandleValidate([]string{"-definition", "Pet", schemaPath, "-"})
		assert.ErrorIs(t, err, ErrCheckFailed)
		assert.Equal(t, "<stdin>: field is not string\n", out.String())
	})

	t.Run("unparseable document", func(t *testing.T) {
		out, _ := captureOutput(t, "")
		broken := testutil.WriteTempFile(t, "broken.yaml", "{name: [")
		err := HandleValidate([]string{"-definition", "Pet", "-format", "json", schemaPath, broken})
		assert.ErrorIs(t, err, ErrCheckFailed)

		var report ValidateReport
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		require.Len(t, report.Documents, 1)
		assert.Equal(t, "parse", report.Documents[0].Kind)
	})

	t.Run("unresolvable ref", func(t *testing.T) {
		out, _ := captureOutput(t, "")
		err := HandleValidate([]string{"-ref", "#/definitions/Missing", schemaPath, good})
		assert.ErrorIs(t, err, ErrCheckFailed)
		assert.Equal(t, good+": No such reference\n", out.String())
	})
}

func TestHandleValidate_ExtendedFormats(t *testing.T) {
	schemaPath := testutil.WriteTempFile(t, "swagger.yaml", `
swagger: "2.0"
definitions:
  Thing:
    type: object
    properties:
      id:
        type: string
        format: uuid
`)
	doc := testutil.WriteTempFile(t, "thing.yaml", "id: 123e4567-e89b-12d3-a456-426614174000\n")

	out, _ := captureOutput(t, "")
	err := HandleValidate([]string{"-definition", "Thing", schemaPath, doc})
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Equal(t, doc+": field is not format of unknown\n", out.String())

	out, _ = captureOutput(t, "")
	require.NoError(t, HandleValidate([]string{"-extended-formats", "-definition", "Thing", schemaPath, doc}))
	assert.Equal(t, doc+": valid\n", out.String())
}

func TestHandleValidate_Errors(t *testing.T) {
	schemaPath := petstoreFile(t)
	good := testutil.WriteTempFile(t, "good.json", `{"name": "doggie", "photoUrls": []}`)

	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"missing document", []string{"-definition", "Pet", schemaPath}},
		{"no target", []string{schemaPath, good}},
		{"both targets", []string{"-definition", "Pet", "-ref", "#/definitions/Pet", schemaPath, good}},
		{"invalid format", []string{"-definition", "Pet", "-format", "xml", schemaPath, good}},
		{"zero concurrency", []string{"-definition", "Pet", "-concurrency", "0", schemaPath, good}},
		{"stdin twice", []string{"-definition", "Pet", schemaPath, "-", "-"}},
		{"unknown definition", []string{"-definition", "Nope", schemaPath, good}},
		{"missing schema", []string{"-definition", "Pet", "/nonexistent/swagger.yaml", good}},
		{"unreadable document", []string{"-definition", "Pet", schemaPath, "/nonexistent/doc.yaml"}},
		{"unknown flag", []string{"-bogus", schemaPath, good}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t, "")
			err := HandleValidate(tt.args)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrCheckFailed)
		})
	}
}
