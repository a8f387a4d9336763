package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// logAttr is a single slog attribute rendered as text.
type logAttr struct {
	Key   string
	Type  string // "string", "int64", "bool", "float64", "time", "error", "json", "any"
	Value string
}

// toLogAttr converts a slog.Attr to its text form.
func toLogAttr(attr slog.Attr) logAttr {
	out := logAttr{
		Key: attr.Key,
	}
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		out.Type = "string"
		out.Value = attr.Value.String()
	case slog.KindInt64:
		out.Type = "int64"
		out.Value = strconv.FormatInt(attr.Value.Int64(), 10)
	case slog.KindUint64:
		out.Type = "uint64"
		out.Value = strconv.FormatUint(attr.Value.Uint64(), 10)
	case slog.KindBool:
		out.Type = "bool"
		out.Value = strconv.FormatBool(attr.Value.Bool())
	case slog.KindFloat64:
		out.Type = "float64"
		out.Value = fmt.Sprintf("%f", attr.Value.Float64())
	case slog.KindTime:
		out.Type = "time"
		out.Value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		out.Type = "duration"
		out.Value = attr.Value.Duration().String()
	case slog.KindAny:
		if v := attr.Value.Any(); v != nil {
			if err, isErr := v.(error); isErr {
				out.Type = "error"
				out.Value = err.Error()
			} else if s, isStringer := v.(fmt.Stringer); isStringer {
				out.Type = "string"
				out.Value = s.String()
			} else if data, marshalErr := json.Marshal(v); marshalErr == nil {
				out.Type = "json"
				out.Value = string(data)
			} else {
				out.Type = "any"
				out.Value = fmt.Sprintf("%v", v)
			}
		} else {
			out.Type = "any"
			out.Value = "<nil>"
		}
	case slog.KindGroup:
		parts := make([]string, 0, len(attr.Value.Group()))
		for _, member := range attr.Value.Group() {
			m := toLogAttr(member)
			parts = append(parts, m.Key+"="+quote(m.Value))
		}
		out.Type = "group"
		out.Value = "{" + strings.Join(parts, " ") + "}"
	default:
		out.Type = "any"
		out.Value = fmt.Sprintf("%v", attr.Value.Any())
	}
	return out
}

func writeAttr(b *strings.Builder, attr logAttr) {
	if attr.Key == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(attr.Key)
	b.WriteByte('=')
	if attr.Type == "group" || attr.Type == "json" {
		b.WriteString(attr.Value)
		return
	}
	b.WriteString(quote(attr.Value))
}

// quote quotes values that would otherwise be ambiguous on one line.
func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " =\"\n\t") {
		return strconv.Quote(s)
	}
	return s
}
