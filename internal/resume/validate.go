package resume

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FieldError 描述单个字段的校验失败。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 表示调用方输入不合法，携带字段级明细，不应自动重试。
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError 构造只含一个字段错误的 ValidationError。
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: msg}}}
}

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// ValidateBody 校验创建/更新请求体的结构与类型。
// 返回 *ValidationError 表示输入问题，其余错误为内部错误。
func ValidateBody(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return NewValidationError("(root)", "No resume data provided")
	}
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile resume schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return NewValidationError("(root)", "body must be a valid JSON object")
	}

	verr := &ValidationError{}
	for _, e := range res.Errors() {
		verr.Fields = append(verr.Fields, FieldError{Field: e.Field(), Message: e.Description()})
	}
	if res.Valid() {
		var partial struct {
			Personal struct {
				Email string `json:"email"`
			} `json:"personal"`
		}
		if err := json.Unmarshal(raw, &partial); err == nil {
			if email := strings.TrimSpace(partial.Personal.Email); email != "" && !emailPattern.MatchString(email) {
				verr.Fields = append(verr.Fields, FieldError{Field: "personal.email", Message: "Personal email is invalid"})
			}
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// ValidEmail 判断邮箱格式。
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
