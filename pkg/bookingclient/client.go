// Package bookingclient is an HTTP client for the slot reservation API.
package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const apiPrefix = "/api/v1"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент API бронирования слотов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListServices возвращает каталог услуг
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	var resp struct {
		Services []Service `json:"services"`
	}
	if err := c.do(ctx, http.MethodGet, "/services", nil, nil, &resp); err != nil {
		return []Service{}, err
	}
	if resp.Services == nil {
		resp.Services = []Service{}
	}
	return resp.Services, nil
}

// ListServiceNames возвращает названия услуг
func (c *Client) ListServiceNames(ctx context.Context) ([]string, error) {
	var resp struct {
		Names []string `json:"names"`
	}
	if err := c.do(ctx, http.MethodGet, "/services/names", nil, nil, &resp); err != nil {
		return []string{}, err
	}
	if resp.Names == nil {
		resp.Names = []string{}
	}
	return resp.Names, nil
}

// ListOpenSlots возвращает свободные слоты услуги
func (c *Client) ListOpenSlots(ctx context.Context, serviceID string) (*OpenSlots, error) {
	var resp OpenSlots
	path := "/services/" + url.PathEscape(serviceID) + "/open-slots"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reserve бронирует слот. ErrConflict означает, что слот уже занят.
func (c *Client) Reserve(ctx context.Context, req ReserveRequest) (*Booking, error) {
	var resp Booking
	if err := c.do(ctx, http.MethodPost, "/reservations", nil, req, &resp); err != nil {
		return nil, err
	}
	c.log.Info("Reserve: booking_id=%s, slot_id=%s", resp.ID, resp.TimeSlotID)
	return &resp, nil
}

// QueryBookings возвращает страницу бронирований
func (c *Client) QueryBookings(ctx context.Context, q BookingsQuery) (*BookingsPage, error) {
	var resp BookingsPage
	if err := c.do(ctx, http.MethodGet, "/bookings", q.values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBooking возвращает бронирование по ID
func (c *Client) GetBooking(ctx context.Context, id string) (*BookingView, error) {
	var resp BookingView
	if err := c.do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportBookings копирует выгрузку страницы ("csv" или "xlsx") в w
func (c *Client) ExportBookings(ctx context.Context, format string, q BookingsQuery, w io.Writer) error {
	resp, err := c.send(ctx, http.MethodGet, "/bookings/export."+format, q.values(), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%w: failed to read export: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	target := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInvalidResponse, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInvalidResponse, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("%s %s: request failed: %v", method, path, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// decodeError переводит статус ответа в ошибку клиента
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body errorResponse
	_ = json.Unmarshal(data, &body)
	msg := body.Error
	if msg == "" {
		msg = strings.TrimSpace(string(data))
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if body.Field != "" {
			return &FieldError{Field: body.Field, Message: body.Error}
		}
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, msg)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, msg)
	}
}

func (q BookingsQuery) values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if strings.TrimSpace(val) != "" {
			v.Set(key, val)
		}
	}
	set("service", q.Service)
	set("dateFrom", q.DateFrom)
	set("dateTo", q.DateTo)
	set("q", q.Search)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}
