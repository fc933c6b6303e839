// Package validation evaluates explicit constraint objects against request
// values. Every field is checked and every violation is reported at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Violation describes one failed constraint.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violations is a non-empty set of failures when returned as an error.
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, vi := range v {
		parts[i] = vi.Field + ": " + vi.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns v as an error, or nil when there are no violations.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Rule is a single constraint. Check returns an empty string when value
// satisfies it.
type Rule interface {
	Name() string
	Check(value any) string
}

type rule struct {
	name  string
	check func(value any) string
}

func (r rule) Name() string { return r.name }
func (r rule) Check(value any) string { return r.check(value) }

// FieldSpec binds a value to the rules it must satisfy.
type FieldSpec struct {
	Name  string
	Value any
	Rules []Rule
}

// Field declares the rules for one named value.
func Field(name string, value any, rules ...Rule) FieldSpec {
	return FieldSpec{Name: name, Value: value, Rules: rules}
}

// Validate checks every field. A nil (or nil pointer) value is only checked
// by Required; other rules treat it as absent and pass.
func Validate(fields ...FieldSpec) Violations {
	var out Violations
	for _, f := range fields {
		v, present := deref(f.Value)
		for _, r := range f.Rules {
			if !present && r.Name() != "required" {
				continue
			}
			if msg := r.Check(v); msg != "" {
				out = append(out, Violation{Field: f.Name, Rule: r.Name(), Message: msg})
			}
		}
	}
	return out
}

func deref(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// Required rejects nil values.
func Required() Rule {
	return rule{name: "required", check: func(v any) string {
		if v == nil {
			return "must be present"
		}
		return ""
	}}
}

// NotBlank rejects strings that are empty or only whitespace.
func NotBlank() Rule {
	return rule{name: "not_blank", check: func(v any) string {
		s, ok := v.(string)
		if !ok {
			return "must be a string"
		}
		if strings.TrimSpace(s) == "" {
			return "must not be blank"
		}
		return ""
	}}
}

// Length bounds a string's length in characters. max <= 0 means unbounded.
func Length(min, max int) Rule {
	return rule{name: "length", check: func(v any) string {
		s, ok := v.(string)
		if !ok {
			return "must be a string"
		}
		n := utf8.RuneCountInString(s)
		switch {
		case n < min:
			return fmt.Sprintf("must be at least %d characters", min)
		case max > 0 && n > max:
			return fmt.Sprintf("must be at most %d characters", max)
		}
		return ""
	}}
}

// Pattern requires a string to match re. desc names the expected shape in the
// violation message.
func Pattern(re *regexp.Regexp, desc string) Rule {
	return rule{name: "pattern", check: func(v any) string {
		s, ok := v.(string)
		if !ok {
			return "must be a string"
		}
		if !re.MatchString(s) {
			return "must be " + desc
		}
		return ""
	}}
}

// Range bounds an integer value, inclusive on both ends.
func Range(min, max int64) Rule {
	return rule{name: "range", check: func(v any) string {
		n, ok := toInt64(v)
		if !ok {
			return "must be an integer"
		}
		if n < min || n > max {
			return fmt.Sprintf("must be between %d and %d", min, max)
		}
		return ""
	}}
}

// Min sets an inclusive lower bound on an integer value.
func Min(min int64) Rule {
	return rule{name: "min", check: func(v any) string {
		n, ok := toInt64(v)
		if !ok {
			return "must be an integer"
		}
		if n < min {
			return fmt.Sprintf("must be at least %d", min)
		}
		return ""
	}}
}

var tagValidator = validator.New()

// Tag checks a single value against a validator tag expression such as
// "email" or "uuid4". It never inspects struct tags on payloads.
func Tag(tag string) Rule {
	return rule{name: tag, check: func(v any) string {
		if err := tagValidator.Var(v, tag); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return fmt.Sprintf("failed %q check", verrs[0].Tag())
			}
			return "invalid value"
		}
		return ""
	}}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}
