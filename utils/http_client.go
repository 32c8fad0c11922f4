package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Mensaje representa un mensaje genérico entre módulos
type Mensaje struct {
	Tipo      int         `json:"tipo"`
	Operacion string      `json:"operacion"`
	Origen    string      `json:"origen"`
	Datos     interface{} `json:"datos"`
}

// HTTPClient representa un cliente HTTP para comunicación con un módulo
type HTTPClient struct {
	BaseURL string
	Nombre  string
	client  *http.Client
}

// NewHTTPClient crea un nuevo cliente HTTP
func NewHTTPClient(ip string, puerto int, nombre string) *HTTPClient {
	return NewHTTPClientURL(fmt.Sprintf("http://%s:%d", ip, puerto), nombre)
}

// NewHTTPClientURL crea un cliente contra una URL base completa
func NewHTTPClientURL(baseURL string, nombre string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Nombre:  nombre,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// EnviarHTTPMensaje envía un mensaje y decodifica la respuesta en resultado
func (c *HTTPClient) EnviarHTTPMensaje(ctx context.Context, tipo int, operacion string, datos interface{}, resultado interface{}) error {
	mensaje := Mensaje{
		Tipo:      tipo,
		Operacion: operacion,
		Origen:    c.Nombre,
		Datos:     datos,
	}

	jsonData, err := json.Marshal(mensaje)
	if err != nil {
		return errors.Wrap(err, "error al serializar mensaje")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/mensaje", c.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return errors.Wrap(err, "error al armar pedido HTTP")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "error al enviar mensaje HTTP")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return errors.Errorf("respuesta HTTP no exitosa: %d - %s", resp.StatusCode, bytes.TrimSpace(bodyBytes))
	}

	if resultado == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(resultado); err != nil {
		return errors.Wrap(err, "error al decodificar respuesta")
	}

	return nil
}

// VerificarConexion verifica si un módulo está disponible
func (c *HTTPClient) VerificarConexion(ctx context.Context) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.BaseURL), nil)
	if err != nil {
		return nil, errors.Wrap(err, "error al armar pedido de verificación")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "error al verificar conexión con %s", c.BaseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("estado inesperado al verificar conexión: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "error al decodificar respuesta de verificación")
	}

	InfoLog.WithFields(log.Fields{"destino": c.BaseURL, "módulo": result["module"]}).Info("Conexión verificada")
	return result, nil
}

// CerrarConexiones libera las conexiones ociosas del cliente
func (c *HTTPClient) CerrarConexiones() {
	c.client.CloseIdleConnections()
}
