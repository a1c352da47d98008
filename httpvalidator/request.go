package httpvalidator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/erraggy/swaggerguard/oaserrors"
	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

// textCheck validates one raw value from a query string, header or form.
type textCheck func(string) error

// textChecker returns the check for a non-body parameter's values. Types
// with no textual rules (file, undefined, references) accept anything.
func (v *Validator) textChecker(attr *schema.Attribute) textCheck {
	if attr == nil || attr.IsReference() {
		return nil
	}
	switch def := attr.Definition.(type) {
	case schema.Boolean, *schema.Boolean:
		return validator.BooleanValidator{}.ValidateText
	case *schema.Integer:
		return v.compiler.Integer(def).ValidateText
	case *schema.String:
		return v.compiler.String(def).ValidateString
	case *schema.Array:
		return v.textChecker(def.Items)
	default:
		return nil
	}
}

// splitCollection splits the raw values of an array parameter according to
// its collection format.
func splitCollection(p *schema.Parameter, values []string) []string {
	if _, ok := p.Attribute.Definition.(*schema.Array); !ok {
		if len(values) == 0 {
			return nil
		}
		return values[:1]
	}
	sep := ","
	switch p.CollectionFormat {
	case "multi":
		return values
	case "ssv":
		sep = " "
	case "tsv":
		sep = "\t"
	case "pipes":
		sep = "|"
	}
	var out []string
	for _, raw := range values {
		if raw == "" {
			continue
		}
		out = append(out, strings.Split(raw, sep)...)
	}
	return out
}

// checkValues validates the values of one parameter. present is false when
// the parameter does not appear in the request at all.
func (v *Validator) checkValues(p *schema.Parameter, values []string, present bool) error {
	if !present {
		if p.Required {
			return validator.MissingField(p.Name)
		}
		return nil
	}
	check := v.textChecker(&p.Attribute)
	if check == nil {
		return nil
	}
	for _, raw := range splitCollection(p, values) {
		if err := check(raw); err != nil {
			return err
		}
	}
	return nil
}

// validateQueryParams validates query parameters in declaration order.
func (v *Validator) validateQueryParams(req *http.Request, params []*schema.Parameter, result *RequestResult) (bool, error) {
	query := req.URL.Query()
	for _, p := range params {
		if p.In != schema.InQuery {
			continue
		}
		values, present := query[p.Name]
		if err := v.checkValues(p, values, present); err != nil {
			result.fail(LocationQuery, p.Name, err)
			return true, nil
		}
	}
	return false, nil
}

// validateHeaderParams validates header parameters. Header names are
// case-insensitive.
func (v *Validator) validateHeaderParams(req *http.Request, params []*schema.Parameter, result *RequestResult) (bool, error) {
	for _, p := range params {
		if p.In != schema.InHeader {
			continue
		}
		values := req.Header.Values(p.Name)
		if err := v.checkValues(p, values, len(values) > 0); err != nil {
			result.fail(LocationHeader, p.Name, err)
			return true, nil
		}
	}
	return false, nil
}

// validateFormParams parses the form body, if the operation declares form
// parameters, and validates them. File parameters are only checked for
// presence.
func (v *Validator) validateFormParams(req *http.Request, params []*schema.Parameter, result *RequestResult) (bool, error) {
	var form []*schema.Parameter
	for _, p := range params {
		if p.In == schema.InFormData {
			form = append(form, p)
		}
	}
	if len(form) == 0 {
		return false, nil
	}

	if err := v.parseForm(req); err != nil {
		var limitErr *oaserrors.ResourceLimitError
		if errors.As(err, &limitErr) {
			result.fail(LocationFormData, "", err)
			return true, nil
		}
		result.fail(LocationFormData, "", &oaserrors.ParseError{Path: "formData", Message: "invalid form body", Cause: err})
		return true, nil
	}

	for _, p := range form {
		if _, isFile := p.Attribute.Definition.(schema.File); isFile {
			present := req.MultipartForm != nil && len(req.MultipartForm.File[p.Name]) > 0
			if !present && p.Required {
				result.fail(LocationFormData, p.Name, validator.MissingField(p.Name))
				return true, nil
			}
			continue
		}
		values, present := req.PostForm[p.Name]
		if err := v.checkValues(p, values, present); err != nil {
			result.fail(LocationFormData, p.Name, err)
			return true, nil
		}
	}
	return false, nil
}

func (v *Validator) parseForm(req *http.Request) error {
	if req.Body == nil {
		req.PostForm = make(map[string][]string)
		return nil
	}
	req.Body = http.MaxBytesReader(nil, req.Body, v.maxBodySize)
	var err error
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		err = req.ParseMultipartForm(v.maxBodySize)
	} else {
		err = req.ParseForm()
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &oaserrors.ResourceLimitError{Resource: "body_size", Limit: v.maxBodySize}
	}
	return err
}

// validateBodyParam reads, parses and validates the body parameter. The
// body is put back on the request afterwards.
func (v *Validator) validateBodyParam(req *http.Request, params []*schema.Parameter, result *RequestResult) (bool, error) {
	var body *schema.Parameter
	for _, p := range params {
		if p.In == schema.InBody {
			body = p
			break
		}
	}
	if body == nil {
		return false, nil
	}

	data, err := v.readBody(req)
	if err != nil {
		var limitErr *oaserrors.ResourceLimitError
		if errors.As(err, &limitErr) {
			result.fail(LocationBody, body.Name, err)
			return true, nil
		}
		return false, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		if body.Required {
			result.fail(LocationBody, body.Name, validator.MissingField(body.Name))
			return true, nil
		}
		return false, nil
	}

	node, err := validator.ParseNode(data)
	if err != nil {
		result.fail(LocationBody, body.Name, err)
		return true, nil
	}
	if err := v.compiler.Compile(&body.Attribute, v.resolver).Validate(node); err != nil {
		result.fail(LocationBody, body.Name, err)
		return true, nil
	}
	return false, nil
}

// readBody reads at most maxBodySize bytes of the body and replaces
// req.Body with a reader over what was read.
func (v *Validator) readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	buf := getBodyBuffer()
	defer putBodyBuffer(buf)

	n, err := io.Copy(buf, io.LimitReader(req.Body, v.maxBodySize+1))
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("httpvalidator: reading request body: %w", err)
	}
	data := bytes.Clone(buf.Bytes())
	req.Body = io.NopCloser(bytes.NewReader(data))
	if n > v.maxBodySize {
		return nil, &oaserrors.ResourceLimitError{
			Resource: "body_size",
			Limit:    v.maxBodySize,
			Message:  "request body too large",
		}
	}
	return data, nil
}
