package uploads

import (
	"math"
	"strconv"
	"strings"
)

// Field names a multipart text field recorded in Metadata.
type Field string

const (
	FieldUserName    Field = "userName"
	FieldUserGender  Field = "userGender"
	FieldUserID      Field = "userId"
	FieldFileType    Field = "fileType"
	FieldTotalEvents Field = "totalEvents"
)

const (
	defaultUserName = "unknown user"
	defaultFileType = "unknown"
)

// isoMillis matches the millisecond ISO-8601 form browsers produce.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Metadata describes a stored upload. Optional fields are nil when the
// endpoint does not record them.
type Metadata struct {
	Filename     string  `json:"filename"`
	OriginalName string  `json:"originalName"`
	Size         int64   `json:"size"`
	UploadTime   string  `json:"uploadTime"`
	UserName     string  `json:"userName"`
	UserGender   *string `json:"userGender,omitempty"`
	UserID       *string `json:"userId,omitempty"`
	FileType     *string `json:"fileType,omitempty"`
	TotalEvents  *int64  `json:"totalEvents,omitempty"`
}

// applyFields copies the requested form values into m. userName is always
// recorded. Missing values fall back to defaults: userName and fileType get
// sentinels, userGender and userId stay empty.
func (m *Metadata) applyFields(values map[string]string, fields []Field) {
	m.UserName = valueOr(values, FieldUserName, defaultUserName)

	for _, f := range fields {
		switch f {
		case FieldUserGender:
			v := valueOr(values, f, "")
			m.UserGender = &v
		case FieldUserID:
			v := valueOr(values, f, "")
			m.UserID = &v
		case FieldFileType:
			v := valueOr(values, f, defaultFileType)
			m.FileType = &v
		case FieldTotalEvents:
			v := parseLeadingInt(values[string(f)])
			m.TotalEvents = &v
		}
	}
}

func valueOr(values map[string]string, f Field, def string) string {
	if v := values[string(f)]; v != "" {
		return v
	}
	return def
}

// parseLeadingInt reads an integer prefix the way JavaScript's parseInt does
// without a radix: leading whitespace, an optional sign, then hex digits after
// a 0x prefix or decimal digits otherwise ("42", " 7 events", "-3.5", "0x10"
// -> 42, 7, -3, 16). No digits yields 0. Values beyond int64 saturate.
func parseLeadingInt(raw string) int64 {
	s := strings.TrimLeft(raw, " \t\r\n\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil || n > math.MaxInt64 {
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	if neg {
		return -int64(n)
	}
	return int64(n)
}

func isDigit(ch byte, base int) bool {
	switch {
	case ch >= '0' && ch <= '9':
		return true
	case base == 16 && ch >= 'a' && ch <= 'f':
		return true
	case base == 16 && ch >= 'A' && ch <= 'F':
		return true
	}
	return false
}
