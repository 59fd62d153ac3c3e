// AngelaMos | 2026
// ingest.go

package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

// UploadDateLayout is the format of added and published in uploaded files,
// for example "September, 23 2016 00:00:00".
const UploadDateLayout = "January, 2 2006 15:04:05"

var (
	ErrInvalidJSON = errors.New("upload is not valid json")
	ErrNotList     = errors.New("upload is not a json array")
)

type DateFormatError struct {
	Field string
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("%s: invalid date %q", e.Field, e.Value)
}

type BatchError struct {
	Errors []core.FieldErrors
}

func (e *BatchError) Error() string {
	failed := 0
	for _, fe := range e.Errors {
		if !fe.Empty() {
			failed++
		}
	}
	return fmt.Sprintf("%d of %d records failed validation", failed, len(e.Errors))
}

var dateFields = []Field{FieldAdded, FieldPublished}

var readOnlyFields = map[string]struct{}{
	string(FieldID): {},
	"date_created":  {},
	"date_updated":  {},
}

var trailingDecimalZeros = regexp.MustCompile(`\.0*$`)

type Decoder struct {
	validate *validator.Validate
}

func NewDecoder(validate *validator.Validate) *Decoder {
	return &Decoder{validate: validate}
}

// Decode parses data as a JSON array of record objects. Empty strings are
// treated as null. Every date is checked before any item is validated, so a
// bad date reports a DateFormatError even when other items are malformed.
func (d *Decoder) Decode(data []byte) ([]Record, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidJSON
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidJSON)
	}

	items, ok := payload.([]any)
	if !ok {
		return nil, ErrNotList
	}

	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if err := normalize(obj); err != nil {
			return nil, err
		}
	}

	records := make([]Record, len(items))
	errs := make([]core.FieldErrors, len(items))
	failed := false

	for i, item := range items {
		errs[i] = core.FieldErrors{}

		obj, ok := item.(map[string]any)
		if !ok {
			errs[i].Add(
				core.NonFieldErrors,
				fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonKind(item)),
			)
			failed = true
			continue
		}

		records[i] = decodeRecord(obj, errs[i])
		if errs[i].Empty() {
			d.checkLengths(&records[i], errs[i])
		}

		if !errs[i].Empty() {
			failed = true
		}
	}

	if failed {
		return nil, &BatchError{Errors: errs}
	}

	return records, nil
}

func normalize(obj map[string]any) error {
	for key, v := range obj {
		if s, ok := v.(string); ok && s == "" {
			obj[key] = nil
		}
	}

	for _, field := range dateFields {
		raw, ok := obj[string(field)].(string)
		if !ok {
			continue
		}

		t, err := time.Parse(UploadDateLayout, raw)
		if err != nil {
			return &DateFormatError{Field: string(field), Value: raw}
		}
		obj[string(field)] = t
	}

	return nil
}

func decodeRecord(obj map[string]any, errs core.FieldErrors) Record {
	var rec Record

	for key, v := range obj {
		if _, skip := readOnlyFields[key]; skip {
			continue
		}

		field := Field(key)
		if !field.valid() {
			errs.Add(key, "Unknown field.")
			continue
		}

		switch field.kind() {
		case kindText:
			s, err := decodeText(v)
			if err != nil {
				errs.Add(key, err.Error())
				continue
			}
			rec.setText(field, s)
		case kindInt:
			n, err := decodeInt(v)
			if err != nil {
				errs.Add(key, err.Error())
				continue
			}
			rec.setInt(field, n)
		case kindTime:
			if v == nil {
				continue
			}
			t, ok := v.(time.Time)
			if !ok {
				errs.Add(key, "Datetime has wrong format.")
				continue
			}
			rec.setTime(field, &t)
		}
	}

	return rec
}

type fieldProblem string

func (p fieldProblem) Error() string { return string(p) }

const (
	notAString  fieldProblem = "Not a valid string."
	notAnInt    fieldProblem = "A valid integer is required."
	nullChar    fieldProblem = "Null characters are not allowed."
	intTooLarge fieldProblem = "Ensure this value is less than or equal to 2147483647."
	intTooSmall fieldProblem = "Ensure this value is greater than or equal to -2147483648."
)

func decodeText(v any) (*string, error) {
	var s string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		s = t
	case json.Number:
		s = t.String()
	default:
		return nil, notAString
	}

	if strings.ContainsRune(s, 0) {
		return nil, nullChar
	}
	return &s, nil
}

func decodeInt(v any) (*int, error) {
	var raw string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		raw = t.String()
	case string:
		raw = t
	default:
		return nil, notAnInt
	}

	n, err := strconv.ParseInt(trailingDecimalZeros.ReplaceAllString(raw, ""), 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		return nil, intTooLarge
	case errors.Is(err, strconv.ErrRange):
		return nil, intTooSmall
	case err != nil:
		return nil, notAnInt
	case n > math.MaxInt32:
		return nil, intTooLarge
	case n < math.MinInt32:
		return nil, intTooSmall
	}

	i := int(n)
	return &i, nil
}

func (d *Decoder) checkLengths(rec *Record, errs core.FieldErrors) {
	err := d.validate.Struct(rec)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(core.NonFieldErrors, err.Error())
		return
	}

	for _, fe := range verrs {
		if fe.Tag() == "max" {
			errs.Add(fe.Field(), fmt.Sprintf(
				"Ensure this field has no more than %s characters.",
				fe.Param(),
			))
			continue
		}
		errs.Add(fe.Field(), "Invalid value.")
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	}
	return "object"
}

func (r *Record) setText(f Field, v *string) {
	switch f {
	case FieldEndYear:
		r.EndYear = v
	case FieldSector:
		r.Sector = v
	case FieldTopic:
		r.Topic = v
	case FieldInsight:
		r.Insight = v
	case FieldURL:
		r.URL = v
	case FieldRegion:
		r.Region = v
	case FieldStartYear:
		r.StartYear = v
	case FieldImpact:
		r.Impact = v
	case FieldCountry:
		r.Country = v
	case FieldPestle:
		r.Pestle = v
	case FieldSource:
		r.Source = v
	case FieldTitle:
		r.Title = v
	}
}

func (r *Record) setInt(f Field, v *int) {
	switch f {
	case FieldIntensity:
		r.Intensity = v
	case FieldRelevance:
		r.Relevance = v
	case FieldLikelihood:
		r.Likelihood = v
	}
}

func (r *Record) setTime(f Field, v *time.Time) {
	switch f {
	case FieldAdded:
		r.Added = v
	case FieldPublished:
		r.Published = v
	}
}
