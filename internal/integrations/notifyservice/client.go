package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/TTA-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
// Уведомления best-effort: недоступность сервиса не влияет на бронирования
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyBooked отправляет уведомление о переходе бронирования в booked
func (c *Client) NotifyBooked(ctx context.Context, booking *domain.Booking) error {
	c.log.Info("NotifyBooked: booking id=%d, user=%d", booking.ID, booking.UserID)

	return c.send(ctx, &Notification{
		Event:     EventBooked,
		UserID:    booking.UserID,
		BookingID: booking.ID,
		CheckIn:   booking.CheckInDate.Format(domain.DateFormat),
		CheckOut:  booking.CheckOutDate.Format(domain.DateFormat),
		Total:     booking.Pricing.GrandTotal,
	})
}

// NotifyCancelled отправляет уведомление об отмене бронирования
func (c *Client) NotifyCancelled(ctx context.Context, booking *domain.Booking, reason string) error {
	c.log.Info("NotifyCancelled: booking id=%d, user=%d", booking.ID, booking.UserID)

	return c.send(ctx, &Notification{
		Event:     EventCancelled,
		UserID:    booking.UserID,
		BookingID: booking.ID,
		CheckIn:   booking.CheckInDate.Format(domain.DateFormat),
		CheckOut:  booking.CheckOutDate.Format(domain.DateFormat),
		Total:     booking.Pricing.GrandTotal,
		Reason:    reason,
	})
}

// send выполняет POST /internal/notifications
// Любая ошибка транспорта сворачивается в ErrServiceDegraded
func (c *Client) send(ctx context.Context, notification *Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("NotifyService unavailable, dropping %s for booking id=%d: %v",
			notification.Event, notification.BookingID, err)
		return fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("NotifyService rejected %s for booking id=%d: status %d: %s",
			notification.Event, notification.BookingID, resp.StatusCode, string(body))
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}
}
