// Package client is a typed HTTP client for the theme park API, plus the
// session and form helpers the parkctl command builds on.
//
// The client mirrors the server's wire format with its own types rather
// than importing the server's model package.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a non-2xx answer from the server. Message is the server's
// own text, suitable for showing to the user as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// User is the public part of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is the account as returned by /auth/me.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Ticket struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	TicketDate time.Time `json:"ticketDate"`
	Type       string    `json:"type"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	BookingType string    `json:"bookingType"`
	BookingDate time.Time `json:"bookingDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Client talks to one API server. The zero value is not usable; call New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewForTesting creates a Client that sends requests through httpClient,
// typically one returned by httptest.Server.Client.
func NewForTesting(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// SetToken sets the bearer token sent with every request. An empty token
// sends none.
func (client *Client) SetToken(token string) {
	client.token = token
}

// Register creates an account. It does not log in.
func (client *Client) Register(ctx context.Context, request RegisterRequest) (User, error) {
	var response struct {
		User User `json:"user"`
	}
	if err := client.do(ctx, http.MethodPost, "/auth/register", request, &response); err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}
	return response.User, nil
}

// Login exchanges credentials for a token.
func (client *Client) Login(ctx context.Context, email, password string) (User, string, error) {
	request := map[string]string{"email": email, "password": password}
	var response struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := client.do(ctx, http.MethodPost, "/auth/login", request, &response); err != nil {
		return User{}, "", fmt.Errorf("login: %w", err)
	}
	if response.Token == "" {
		return User{}, "", errors.New("login: server returned no token")
	}
	return response.User, response.Token, nil
}

// Logout tells the server the session is over. The server keeps no state,
// so this only matters for symmetry and logging.
func (client *Client) Logout(ctx context.Context) error {
	if err := client.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Me returns the profile behind the current token.
func (client *Client) Me(ctx context.Context) (Profile, error) {
	var response struct {
		User Profile `json:"user"`
	}
	if err := client.do(ctx, http.MethodGet, "/auth/me", nil, &response); err != nil {
		return Profile{}, fmt.Errorf("me: %w", err)
	}
	return response.User, nil
}

// PurchaseTicket buys a ticket for date (YYYY-MM-DD).
func (client *Client) PurchaseTicket(ctx context.Context, date, ticketType string) (Ticket, error) {
	request := map[string]string{"ticketDate": date, "type": ticketType}
	var response struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := client.do(ctx, http.MethodPost, "/tickets", request, &response); err != nil {
		return Ticket{}, fmt.Errorf("purchase ticket: %w", err)
	}
	return response.Ticket, nil
}

// Tickets lists the caller's tickets, newest first.
func (client *Client) Tickets(ctx context.Context) ([]Ticket, error) {
	var response struct {
		Tickets []Ticket `json:"tickets"`
	}
	if err := client.do(ctx, http.MethodGet, "/tickets", nil, &response); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return response.Tickets, nil
}

// CreateBooking reserves an experience for date (YYYY-MM-DD).
func (client *Client) CreateBooking(ctx context.Context, bookingType, date string) (Booking, error) {
	request := map[string]string{"bookingType": bookingType, "bookingDate": date}
	var response struct {
		Booking Booking `json:"booking"`
	}
	if err := client.do(ctx, http.MethodPost, "/bookings", request, &response); err != nil {
		return Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return response.Booking, nil
}

// Bookings lists the caller's bookings, newest first.
func (client *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var response struct {
		Bookings []Booking `json:"bookings"`
	}
	if err := client.do(ctx, http.MethodGet, "/bookings", nil, &response); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return response.Bookings, nil
}

func (client *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if client.token != "" {
		request.Header.Set("Authorization", "Bearer "+client.token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return decodeError(response)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(response *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(response.Body, 64<<10))
	apiErr := &APIError{Status: response.StatusCode}
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
