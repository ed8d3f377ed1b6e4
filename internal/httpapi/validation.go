package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"entityd/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeExtractionRequest reads and validates a request body. A non-nil error
// means the body could not be read at all; validation problems come back as
// issues and map to 422.
//
// Keys are matched exactly and an explicit null flag is a type error, so the
// body is split into raw members before each field is decoded on its own.
func decodeExtractionRequest(body io.Reader) (types.ExtractionRequest, []types.ValidationIssue, error) {
	var req types.ExtractionRequest
	b, err := io.ReadAll(body)
	if err != nil {
		return req, nil, err
	}
	if !utf8.Valid(b) {
		return req, []types.ValidationIssue{{
			Loc:  []any{"body", invalidUTF8Offset(b)},
			Msg:  "invalid UTF-8 in request body",
			Type: "value_error.jsondecode",
		}}, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		issue, ok := decodeIssue(err)
		if !ok {
			return req, nil, err
		}
		// nothing else is meaningful for a body that is not an object
		return req, []types.ValidationIssue{issue}, nil
	}

	var issues []types.ValidationIssue
	typed := map[string]bool{}
	if raw, ok := members[fieldText]; ok && !isJSONNull(raw) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			typed[fieldText] = true
			issues = append(issues, typeIssue(fieldText, reflect.String))
		} else {
			req.Text = &s
		}
	}
	for _, f := range []struct {
		name string
		dst  *bool
	}{
		{fieldExtractNouns, &req.ExtractNouns},
		{fieldExtractNounChunks, &req.ExtractNounChunks},
	} {
		raw, ok := members[f.name]
		if !ok {
			continue
		}
		if isJSONNull(raw) || json.Unmarshal(raw, f.dst) != nil {
			*f.dst = false
			typed[f.name] = true
			issues = append(issues, typeIssue(f.name, reflect.Bool))
		}
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return req, nil, err
		}
		for _, fe := range verrs {
			if typed[fe.Field()] {
				continue
			}
			issues = append(issues, fieldIssue(fe))
		}
	}
	return req, issues, nil
}

const (
	fieldText              = "text"
	fieldExtractNouns      = "extract_nouns"
	fieldExtractNounChunks = "extract_noun_chunks"
)

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}

func typeIssue(field string, kind reflect.Kind) types.ValidationIssue {
	issue := types.ValidationIssue{Loc: []any{"body", field}}
	switch kind {
	case reflect.Bool:
		issue.Msg, issue.Type = "value could not be parsed to a boolean", "type_error.bool"
	case reflect.String:
		issue.Msg, issue.Type = "str type expected", "type_error.str"
	default:
		issue.Msg, issue.Type = "invalid type", "type_error"
	}
	return issue
}

func decodeIssue(err error) (types.ValidationIssue, bool) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return types.ValidationIssue{
			Loc:  []any{"body", syntaxErr.Offset},
			Msg:  syntaxErr.Error(),
			Type: "value_error.jsondecode",
		}, true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return types.ValidationIssue{
				Loc:  []any{"body"},
				Msg:  "value is not a valid dict",
				Type: "type_error.dict",
			}, true
		}
		return typeIssue(typeErr.Field, typeErr.Type.Kind()), true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return types.ValidationIssue{Loc: []any{"body", 0}, Msg: err.Error(), Type: "value_error.jsondecode"}, true
	}
	return types.ValidationIssue{}, false
}

func fieldIssue(fe validator.FieldError) types.ValidationIssue {
	switch fe.Tag() {
	case "required":
		return types.ValidationIssue{Loc: []any{"body", fe.Field()}, Msg: "field required", Type: "value_error.missing"}
	default:
		return types.ValidationIssue{Loc: []any{"body", fe.Field()}, Msg: fe.Error(), Type: "value_error." + fe.Tag()}
	}
}
