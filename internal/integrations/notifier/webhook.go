package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// WebhookClient отправляет уведомления во внешний сервис доставки (push/WhatsApp/email) по HTTP
type WebhookClient struct {
	url        string
	httpClient *http.Client
	log        Logger
	now        func() time.Time
}

// NewWebhookClient создает новый экземпляр webhook клиента
func NewWebhookClient(url string, timeout time.Duration, log Logger) *WebhookClient {
	return &WebhookClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
		now: time.Now,
	}
}

// Notify отправляет одно уведомление
func (c *WebhookClient) Notify(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(NewEvent(n, c.now()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusBadRequest:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: rejected: %s", ErrInvalidResponse, errResp.Message)
		}
		return fmt.Errorf("%w: rejected with status 400", ErrInvalidResponse)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
