package http

import (
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/roamly/vacations-api/internal/domain"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
)

// secretKeyHints marks JSON/form keys whose values never reach the log.
var secretKeyHints = []string{"password", "token", "otp", "secret"}

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if user, ok := c.Get(contextUserKey).(*domain.User); ok && user != nil {
				userID = user.ID.String()
			}

			payload := struct {
				Time      string `json:"time"`
				UserUUID  string `json:"user_uuid"`
				LatencyMS int64  `json:"latency_ms"`
				Request   struct {
					Method string      `json:"method"`
					URI    string      `json:"uri"`
					Body   interface{} `json:"body,omitempty"`
				} `json:"request"`
				Response struct {
					Status int         `json:"status"`
					Body   interface{} `json:"body,omitempty"`
					Error  string      `json:"error,omitempty"`
				} `json:"response"`
			}{
				Time:      v.StartTime.Format(time.RFC3339),
				UserUUID:  userID,
				LatencyMS: v.Latency.Milliseconds(),
			}

			payload.Request.Method = v.Method
			payload.Request.URI = v.URI
			payload.Request.Body = c.Get(requestBodyLogKey)

			payload.Response.Status = v.Status
			payload.Response.Body = c.Get(responseBodyLogKey)
			if v.Error != nil {
				payload.Response.Error = v.Error.Error()
			}

			buf, err := json.Marshal(payload)
			if err != nil {
				return err
			}

			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
		if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
			c.Set(responseBodyLogKey, summary)
		}
	}))
}

func sanitizeBody(body []byte, contentType string) interface{} {
	if len(body) == 0 {
		return nil
	}

	loweredType := strings.ToLower(strings.TrimSpace(contentType))

	// Image uploads and other multipart payloads are never worth logging.
	if strings.HasPrefix(loweredType, "multipart/form-data") {
		return "multipart"
	}

	if strings.HasPrefix(loweredType, "application/json") || json.Valid(body) {
		var data interface{}
		if err := json.Unmarshal(body, &data); err == nil {
			return clampJSONSize(sanitizeJSON(data, ""))
		}
	}

	if strings.HasPrefix(loweredType, "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil {
			sanitized := make(map[string]interface{}, len(values))
			for key, vals := range values {
				if isSecretKey(key) {
					sanitized[key] = "redacted"
					continue
				}
				sanitized[key] = strings.Join(vals, ", ")
			}
			if len(sanitized) > 0 {
				return clampJSONSize(sanitized)
			}
		}
	}

	if containsBinaryBytes(body) {
		return "binary"
	}

	text := string(body)
	if isSecretKey(text) {
		return "redacted"
	}
	return clampString(text)
}

func sanitizeJSON(value interface{}, keyHint string) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			if isSecretKey(key) {
				result[key] = "redacted"
				continue
			}
			result[key] = sanitizeJSON(val, strings.ToLower(key))
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = sanitizeJSON(item, keyHint)
		}
		return result
	case string:
		if isSecretKey(keyHint) {
			return "redacted"
		}
		if containsBinaryBytes([]byte(v)) {
			return "binary"
		}
		return clampString(v)
	default:
		return v
	}
}

func isSecretKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, hint := range secretKeyHints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}
	return false
}

func clampJSONSize(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	buf, err := json.Marshal(value)
	if err != nil {
		return value
	}
	if len(buf) <= maxLoggedBody {
		return value
	}
	return map[string]interface{}{"_truncated": true}
}

func containsBinaryBytes(data []byte) bool {
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

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
