package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// envelope is the fixed response shape of every backend endpoint.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// SessionCookieName returns the cookie carrying the session token for a
// role. The two identity contexts use disjoint cookies so one browser (or
// one jar) can hold both sessions at once.
func SessionCookieName(role models.Role) string {
	if role == models.RoleAdmin {
		return "admin_token"
	}
	return "user_token"
}

// HTTPClient implements Client against the REST backend. Session tokens
// ride on cookies held in the jar, the equivalent of the web client's
// withCredentials requests.
type HTTPClient struct {
	baseURL *url.URL
	jar     *cookiejar.Jar
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given base URL, e.g.
// "http://localhost:9000/api/v1". The timeout bounds each whole request.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: u,
		jar:     jar,
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func rolePath(role models.Role, suffix string) string {
	return "/" + string(role) + "/" + suffix
}

// do executes one request/response round trip: JSON body in, envelope out.
// On 2xx the envelope's data field is decoded into out (when out != nil)
// and the envelope message is returned. Non-2xx responses become *Error
// values; transport failures wrap ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) (string, error) {
	u := *c.baseURL
	u.Path = u.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encoding request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var env envelope
	// The envelope is decoded leniently for failures: the message is a
	// bonus there, the status code is authoritative.
	envErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil {
		return env.Message, nil
	}
	if envErr != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, envErr)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return "", fmt.Errorf("%w: missing data field", ErrMalformedResponse)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return env.Message, nil
}

func (c *HTTPClient) RegisterUser(ctx context.Context, in models.RegisterUserInput) (*models.Profile, error) {
	p := &models.Profile{}
	if _, err := c.do(ctx, http.MethodPost, "/user/register", nil, in, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *HTTPClient) RegisterAdmin(ctx context.Context, in models.RegisterAdminInput) (*models.Profile, error) {
	p := &models.Profile{}
	if _, err := c.do(ctx, http.MethodPost, "/admin/register", nil, in, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *HTTPClient) Login(ctx context.Context, role models.Role, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var data json.RawMessage
	if _, err := c.do(ctx, http.MethodPost, rolePath(role, "login"), nil, body, &data); err != nil {
		return nil, err
	}

	// The login payload is one of two shapes: a 2FA challenge marker or
	// the full profile.
	var probe struct {
		TwoFactorRequired bool `json:"twoFactorRequired"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if probe.TwoFactorRequired {
		return &LoginResult{TwoFactorRequired: true}, nil
	}

	p := &models.Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &LoginResult{Profile: p}, nil
}

func (c *HTTPClient) Logout(ctx context.Context, role models.Role) error {
	_, err := c.do(ctx, http.MethodPost, rolePath(role, "logout"), nil, nil, nil)
	return err
}

func (c *HTTPClient) ValidateToken(ctx context.Context, role models.Role) (*models.Profile, error) {
	p := &models.Profile{}
	if _, err := c.do(ctx, http.MethodGet, rolePath(role, "validate-token"), nil, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *HTTPClient) Profile(ctx context.Context, role models.Role) (*models.Profile, error) {
	p := &models.Profile{}
	if _, err := c.do(ctx, http.MethodGet, rolePath(role, "profile"), nil, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, role models.Role, in models.ProfileUpdate) error {
	_, err := c.do(ctx, http.MethodPut, rolePath(role, "update-profile"), nil, in, nil)
	return err
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, role models.Role) error {
	_, err := c.do(ctx, http.MethodDelete, rolePath(role, "delete-account"), nil, nil, nil)
	return err
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, role models.Role, email, otp string) (*models.Profile, error) {
	body := map[string]string{"email": email, "otp": otp}
	p := &models.Profile{}
	if _, err := c.do(ctx, http.MethodPost, rolePath(role, "verify-otp"), nil, body, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *HTTPClient) VerificationStatus(ctx context.Context, role models.Role) (bool, error) {
	var data struct {
		Verified bool `json:"verified"`
	}
	if _, err := c.do(ctx, http.MethodGet, rolePath(role, "verification-status"), nil, nil, &data); err != nil {
		return false, err
	}
	return data.Verified, nil
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, role models.Role, token string) (bool, string, error) {
	q := url.Values{}
	q.Set("token", token)

	var data struct {
		Verified bool `json:"verified"`
	}
	msg, err := c.do(ctx, http.MethodGet, rolePath(role, "verify-email"), q, nil, &data)
	if err != nil {
		return false, "", err
	}
	return data.Verified, msg, nil
}

func (c *HTTPClient) ResendVerification(ctx context.Context, role models.Role, email string) (string, error) {
	return c.do(ctx, http.MethodPost, rolePath(role, "resend-verification"), nil, map[string]string{"email": email}, nil)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, role models.Role, email string) (string, error) {
	return c.do(ctx, http.MethodPost, rolePath(role, "forgot-password"), nil, map[string]string{"email": email}, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, role models.Role, token, newPassword, confirmPassword string) (string, error) {
	body := map[string]string{
		"token":           token,
		"password":        newPassword,
		"confirmPassword": confirmPassword,
	}
	return c.do(ctx, http.MethodPost, rolePath(role, "reset-password"), nil, body, nil)
}

func (c *HTTPClient) SetTwoFactor(ctx context.Context, role models.Role, enable bool) error {
	suffix := "disable-two-factor"
	if enable {
		suffix = "enable-two-factor"
	}
	_, err := c.do(ctx, http.MethodPost, rolePath(role, suffix), nil, struct{}{}, nil)
	return err
}

func (c *HTTPClient) ListCows(ctx context.Context, q *models.CowQuery) ([]models.Cow, error) {
	var cows []models.Cow
	if _, err := c.do(ctx, http.MethodGet, "/cows", q.Values(), nil, &cows); err != nil {
		return nil, err
	}
	return cows, nil
}

func (c *HTTPClient) GetCow(ctx context.Context, id string) (*models.Cow, error) {
	cow := &models.Cow{}
	if _, err := c.do(ctx, http.MethodGet, "/cows/"+id, nil, nil, cow); err != nil {
		return nil, err
	}
	return cow, nil
}

func (c *HTTPClient) CreateCow(ctx context.Context, in models.CowInput) (*models.Cow, error) {
	cow := &models.Cow{}
	if _, err := c.do(ctx, http.MethodPost, "/admin/cows", nil, in, cow); err != nil {
		return nil, err
	}
	return cow, nil
}

func (c *HTTPClient) UpdateCow(ctx context.Context, id string, in models.CowInput) (*models.Cow, error) {
	cow := &models.Cow{}
	if _, err := c.do(ctx, http.MethodPut, "/admin/cows/"+id, nil, in, cow); err != nil {
		return nil, err
	}
	return cow, nil
}

func (c *HTTPClient) DeleteCow(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/cows/"+id, nil, nil, nil)
	return err
}

func (c *HTTPClient) CreateDonation(ctx context.Context, in models.DonationInput) (*models.Donation, error) {
	d := &models.Donation{}
	if _, err := c.do(ctx, http.MethodPost, "/donations", nil, in, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (c *HTTPClient) DonationHistory(ctx context.Context) ([]models.Donation, error) {
	var ds []models.Donation
	if _, err := c.do(ctx, http.MethodGet, "/donations/history", nil, nil, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (c *HTTPClient) AllDonations(ctx context.Context) ([]models.Donation, error) {
	var ds []models.Donation
	if _, err := c.do(ctx, http.MethodGet, "/donations/admin/all", nil, nil, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// SessionExpiry peeks at the role's session cookie and reads the exp claim
// from the token without verifying it. Verification is the server's job;
// this only exists so the CLI can tell the user when a re-login is due.
func (c *HTTPClient) SessionExpiry(role models.Role) (time.Time, bool) {
	for _, ck := range c.jar.Cookies(c.baseURL) {
		if ck.Name != SessionCookieName(role) {
			continue
		}
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(ck.Value, claims); err != nil {
			return time.Time{}, false
		}
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			return time.Time{}, false
		}
		return exp.Time, true
	}
	return time.Time{}, false
}
