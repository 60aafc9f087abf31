package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
	redacted           = "redacted"
)

// Keys whose values never reach the request log. Matched as substrings of
// the lower-cased field name.
var sensitiveKeys = []string{"password", "token", "code", "signature", "secret"}

type requestLogLine struct {
	Time      string `json:"time"`
	UserID    string `json:"user_id"`
	LatencyMS int64  `json:"latency_ms"`
	Request   struct {
		Method string `json:"method"`
		URI    string `json:"uri"`
		Body   any    `json:"body,omitempty"`
	} `json:"request"`
	Response struct {
		Status int    `json:"status"`
		Body   any    `json:"body,omitempty"`
		Error  string `json:"error,omitempty"`
	} `json:"response"`
}

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			line := requestLogLine{
				Time:      v.StartTime.Format(time.RFC3339),
				UserID:    "anonymous",
				LatencyMS: v.Latency.Milliseconds(),
			}
			if user, ok := CurrentUser(c); ok {
				line.UserID = user.ID.String()
			}
			line.Request.Method = v.Method
			line.Request.URI = redactQuery(v.URI)
			line.Request.Body = c.Get(requestBodyLogKey)
			line.Response.Status = v.Status
			line.Response.Body = c.Get(responseBodyLogKey)
			if v.Error != nil {
				line.Response.Error = v.Error.Error()
			}

			buf, err := json.Marshal(line)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := summarizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
		if summary := summarizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
			c.Set(responseBodyLogKey, summary)
		}
	}))
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// redactQuery hides verification and reset codes carried in query strings.
func redactQuery(uri string) string {
	path, rawQuery, ok := strings.Cut(uri, "?")
	if !ok {
		return uri
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return path
	}
	for key := range values {
		if isSensitiveKey(key) {
			values.Set(key, redacted)
		}
	}
	return path + "?" + values.Encode()
}

func summarizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}
	mediaType := strings.ToLower(strings.TrimSpace(contentType))

	switch {
	case strings.HasPrefix(mediaType, "multipart/form-data"):
		return summarizeMultipart(body, contentType)
	case strings.HasPrefix(mediaType, "application/json") || json.Valid(body):
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return capJSON(redactJSON(data, false))
		}
	case strings.HasPrefix(mediaType, "application/x-www-form-urlencoded"):
		if values, err := url.ParseQuery(string(body)); err == nil && len(values) > 0 {
			fields := make(map[string]any, len(values))
			for key, vals := range values {
				fields[key] = redactString(strings.Join(vals, ","), isSensitiveKey(key))
			}
			return capJSON(fields)
		}
	}

	if isBinary(body) {
		return "binary"
	}
	return clamp(string(body))
}

func redactJSON(value any, hidden bool) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = redactJSON(val, hidden || isSensitiveKey(key))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactJSON(item, hidden)
		}
		return out
	case string:
		return redactString(v, hidden)
	default:
		if hidden && v != nil {
			return redacted
		}
		return v
	}
}

func redactString(value string, hidden bool) string {
	if hidden {
		return redacted
	}
	if isBinary([]byte(value)) {
		return "binary"
	}
	return clamp(value)
}

func summarizeMultipart(body []byte, contentType string) any {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["boundary"] == "" {
		return "binary"
	}
	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	fields := make(map[string]any)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "binary"
		}
		name := part.FormName()
		switch {
		case name == "":
		case part.FileName() != "":
			fields[name] = "binary"
		default:
			data, err := io.ReadAll(io.LimitReader(part, maxLoggedBody+1))
			if err != nil {
				fields[name] = "binary"
			} else {
				fields[name] = redactString(string(data), isSensitiveKey(name))
			}
		}
		_ = part.Close()
	}
	if len(fields) == 0 {
		return "binary"
	}
	return fields
}

func capJSON(value any) any {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	return map[string]any{"_truncated": true, "_bytes": len(buf)}
}

func isBinary(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clamp(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	cut := value[:maxLoggedBody]
	for !utf8.ValidString(cut) && len(cut) > 0 {
		cut = cut[:len(cut)-1]
	}
	return cut + "...(truncated)"
}
