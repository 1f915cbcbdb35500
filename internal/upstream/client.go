package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"inventory-gateway/internal/models"

	"go.uber.org/zap"
)

// Client es el cliente tipado del API remoto de inventario. Cada operación
// del API tiene su propia función con lista fija de parámetros y encoding
// explícito; nunca se arman query strings ad hoc fuera de este paquete.
type Client struct {
	baseURL    string
	token      string
	userID     int
	role       string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient crea el cliente del API remoto
func NewClient(baseURL, token string, userID int, role string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		userID:  userID,
		role:    role,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// envelope es el sobre uniforme de todas las respuestas del API remoto
type envelope struct {
	Status     string             `json:"status"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data,omitempty"`
	Errors     []string           `json:"errors,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// call ejecuta una petición contra el API remoto y valida el sobre.
// Fallos de transporte o cuerpo ilegible se reportan como *NetworkError;
// un sobre con status distinto de "success" se reporta como
// *ApplicationError con el mensaje del servidor tal cual.
func (c *Client) call(ctx context.Context, method, action string, query url.Values, body interface{}) (*envelope, error) {
	start := time.Now()

	if query == nil {
		query = url.Values{}
	}
	query.Set("action", action)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, &NetworkError{Action: action, Err: err}
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	reqURL := c.baseURL + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, &NetworkError{Action: action, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Upstream request failed",
			zap.String("action", action),
			zap.Error(err))
		return nil, &NetworkError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Action: action, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		// Cuerpo vacío o malformado cuenta como fallo de red, no de negocio
		return nil, &NetworkError{Action: action, Err: err}
	}

	c.logger.Debug("Upstream request completed",
		zap.String("action", action),
		zap.String("status", env.Status),
		zap.Int("http_status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if env.Status != "success" {
		return nil, &ApplicationError{Action: action, Message: env.Message}
	}

	return &env, nil
}

// get ejecuta un GET y deserializa env.Data en out si corresponde
func (c *Client) get(ctx context.Context, action string, query url.Values, out interface{}) (*models.Pagination, error) {
	env, err := c.call(ctx, http.MethodGet, action, query, nil)
	if err != nil {
		return nil, err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &NetworkError{Action: action, Err: err}
		}
	}
	return env.Pagination, nil
}

// post ejecuta un POST con cuerpo JSON y retorna el sobre validado
func (c *Client) post(ctx context.Context, action string, body interface{}) (*envelope, error) {
	return c.call(ctx, http.MethodPost, action, nil, body)
}

// Ping verifica que el API remoto responde. Cualquier respuesta HTTP
// cuenta como alcanzable; el contenido no importa para el health check.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
