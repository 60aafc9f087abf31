package http

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

const DefaultSwaggerPath = "docs/swagger.yaml"

// swaggerDocument converts the YAML document to JSON on first use and keeps
// the result. A failed load is retried on the next request.
type swaggerDocument struct {
	path string

	mu   sync.Mutex
	json []byte
}

func (d *swaggerDocument) load() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.json != nil {
		return d.json, nil
	}
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.path, err)
	}
	doc, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", d.path, err)
	}
	d.json = doc
	return doc, nil
}

// RegisterSwagger serves the API document at /swagger/doc.json and the UI under /swagger.
func RegisterSwagger(e *echo.Echo, path string) {
	doc := &swaggerDocument{path: path}
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		body, err := doc.load()
		if err != nil {
			c.Logger().Errorf("swagger: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("api document unavailable"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, body)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
