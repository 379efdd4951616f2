package userapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"dashboard-client/internal/domain"
	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/metrics"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Operation names, used for errors, logs, spans and metrics.
const (
	OpLogin                = "login"
	OpFetchProfile         = "fetch_profile"
	OpUpdateProfile        = "update_profile"
	OpFetchProfileByToken  = "fetch_profile_by_token"
	OpUpdateProfileByToken = "update_profile_by_token"
	OpUpdateProfilePhoto   = "update_profile_photo"
)

const (
	maxResponseBytes = 10 << 20

	msgTokenRejected = "Token expired or invalid. Please login again."
	msgNoToken       = "Authentication token not found. Please login again."
	msgBadResponse   = "Unexpected response from server"
)

// failure messages shown when the service gives none
var defaultMessages = map[string]string{
	OpLogin:                "Login failed. Please try again.",
	OpFetchProfile:         "Error fetching user data",
	OpUpdateProfile:        "Failed to update profile",
	OpFetchProfileByToken:  "Failed to fetch data with token",
	OpUpdateProfileByToken: "Failed to update profile",
	OpUpdateProfilePhoto:   "Failed to update photo. Please try again.",
}

type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSec    float64 // <= 0 disables throttling
	Burst         int
	MaxImageBytes int64
	HTTPClient    *http.Client // optional, overrides Timeout
}

// Client talks to the remote profile service. It implements domain.ProfileGateway.
type Client struct {
	baseURL       string
	http          *http.Client
	limiter       *rate.Limiter
	tracer        trace.Tracer
	maxImageBytes int64
}

var _ domain.ProfileGateway = (*Client)(nil)

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RatePerSec > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), burst)
	}

	maxImage := opts.MaxImageBytes
	if maxImage <= 0 {
		maxImage = domain.MaxImageBytes
	}

	return &Client{
		baseURL:       strings.TrimSuffix(opts.BaseURL, "/"),
		http:          httpClient,
		limiter:       limiter,
		tracer:        otel.Tracer("dashboard-client/userapi"),
		maxImageBytes: maxImage,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}

func (c *Client) Login(ctx context.Context, email, password string) (id domain.Identity, err error) {
	cl := c.begin(ctx, OpLogin)
	defer func() { cl.end(err) }()

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return domain.Identity{}, newError(domain.KindInternal, OpLogin, 0, "encode request", err)
	}
	req, err := c.newJSONRequest(cl.ctx, http.MethodPost, "/user_login", body)
	if err != nil {
		return domain.Identity{}, err
	}

	env, err := c.do(cl, req)
	if err != nil {
		return domain.Identity{}, err
	}
	switch {
	case cl.status >= 500:
		return domain.Identity{}, newError(domain.KindNetwork, OpLogin, cl.status, messageOr(env, defaultMessages[OpLogin]), nil)
	case cl.status >= 400 || !env.Success:
		return domain.Identity{}, newError(domain.KindInvalidCredentials, OpLogin, cl.status, messageOr(env, "Invalid credentials"), nil)
	}

	var data loginData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return domain.Identity{}, newError(domain.KindNetwork, OpLogin, cl.status, msgBadResponse, err)
		}
	}
	if env.UserID == "" {
		return domain.Identity{}, newError(domain.KindNetwork, OpLogin, cl.status, msgBadResponse, fmt.Errorf("response has no userId"))
	}
	return domain.Identity{SessionID: string(env.UserID), Token: data.Token}, nil
}

func (c *Client) FetchProfile(ctx context.Context, sessionID string) (p *domain.ProfileRecord, err error) {
	cl := c.begin(ctx, OpFetchProfile)
	defer func() { cl.end(err) }()

	req, err := c.newJSONRequest(cl.ctx, http.MethodGet, "/userDetails?userId="+url.QueryEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	env, err := c.do(cl, req)
	if err != nil {
		return nil, err
	}
	if err := c.statusError(cl, env, false); err != nil {
		return nil, err
	}
	return decodeProfile(cl, env, "User not found")
}

func (c *Client) UpdateProfile(ctx context.Context, sessionID string, profile domain.ProfileRecord) (err error) {
	cl := c.begin(ctx, OpUpdateProfile)
	defer func() { cl.end(err) }()

	body, err := json.Marshal(profile)
	if err != nil {
		return newError(domain.KindInternal, OpUpdateProfile, 0, "encode profile", err)
	}
	req, err := c.newJSONRequest(cl.ctx, http.MethodPut, "/updateUser?userId="+url.QueryEscape(sessionID), body)
	if err != nil {
		return err
	}
	env, err := c.do(cl, req)
	if err != nil {
		return err
	}
	if err := c.statusError(cl, env, false); err != nil {
		return err
	}
	return softFailure(cl, env)
}

func (c *Client) FetchProfileByToken(ctx context.Context, token string) (p *domain.ProfileRecord, err error) {
	cl := c.begin(ctx, OpFetchProfileByToken)
	defer func() { cl.end(err) }()

	if token == "" {
		return nil, newError(domain.KindUnauthorized, OpFetchProfileByToken, 0, msgNoToken, nil)
	}
	req, err := c.newJSONRequest(cl.ctx, http.MethodGet, "/display", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", token)

	env, err := c.do(cl, req)
	if err != nil {
		return nil, err
	}
	if err := c.statusError(cl, env, true); err != nil {
		return nil, err
	}
	return decodeProfile(cl, env, "No data found with this token")
}

func (c *Client) UpdateProfileByToken(ctx context.Context, token string, profile domain.ProfileRecord) (err error) {
	cl := c.begin(ctx, OpUpdateProfileByToken)
	defer func() { cl.end(err) }()

	if token == "" {
		return newError(domain.KindUnauthorized, OpUpdateProfileByToken, 0, msgNoToken, nil)
	}
	body, err := json.Marshal(profile)
	if err != nil {
		return newError(domain.KindInternal, OpUpdateProfileByToken, 0, "encode profile", err)
	}
	req, err := c.newJSONRequest(cl.ctx, http.MethodPut, "/updateWithToken", body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)

	env, err := c.do(cl, req)
	if err != nil {
		return err
	}
	if err := c.statusError(cl, env, true); err != nil {
		return err
	}
	return softFailure(cl, env)
}

func (c *Client) UpdateProfilePhoto(ctx context.Context, sessionID, token string, file domain.FileSelection) (p *domain.ProfileRecord, err error) {
	cl := c.begin(ctx, OpUpdateProfilePhoto)
	defer func() { cl.end(err) }()

	// validation happens before anything goes on the wire
	if err := domain.ValidateImage(OpUpdateProfilePhoto, file, c.maxImageBytes); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, newError(domain.KindUnauthorized, OpUpdateProfilePhoto, 0, msgNoToken, nil)
	}

	body, contentType, err := photoForm(sessionID, file)
	if err != nil {
		return nil, newError(domain.KindInternal, OpUpdateProfilePhoto, 0, "encode upload", err)
	}
	req, err := http.NewRequestWithContext(cl.ctx, http.MethodPut, c.baseURL+"/updateWithPhoto", bytes.NewReader(body))
	if err != nil {
		return nil, newError(domain.KindInternal, OpUpdateProfilePhoto, 0, "build request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", token)

	env, err := c.do(cl, req)
	if err != nil {
		return nil, err
	}
	if err := c.statusError(cl, env, true); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, newError(domain.KindSoftFailure, OpUpdateProfilePhoto, cl.status, messageOr(env, "Failed to update photo"), nil)
	}

	// the service may or may not echo the updated record
	if !hasData(env) {
		return nil, nil
	}
	var updated domain.ProfileRecord
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		logger.WithContext(cl.ctx).Debug().Err(err).Msg("Ignoring photo response body")
		return nil, nil
	}
	return &updated, nil
}

func photoForm(sessionID string, file domain.FileSelection) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("userId", sessionID); err != nil {
		return nil, "", err
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="profile_photo"; filename="%s"`, escapeQuotes(file.Name)))
	h.Set("Content-Type", file.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// --- plumbing ---

// call tracks one gateway operation for logging, tracing and metrics.
type call struct {
	ctx    context.Context
	op     string
	start  time.Time
	span   trace.Span
	status int
}

func (c *Client) begin(ctx context.Context, op string) *call {
	ctx, span := c.tracer.Start(ctx, "userapi."+op, trace.WithSpanKind(trace.SpanKindClient))
	return &call{ctx: ctx, op: op, start: time.Now(), span: span}
}

func (cl *call) end(err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(domain.KindOf(err))
		cl.span.RecordError(err)
		cl.span.SetStatus(codes.Error, outcome)
	}
	cl.span.SetAttributes(attribute.Int("http.status_code", cl.status))
	cl.span.End()

	metrics.ObserveGatewayCall(cl.op, outcome, cl.start)
	logger.GatewayCall(cl.ctx, cl.op, cl.status, time.Since(cl.start), err)
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, newError(domain.KindInternal, "build_request", 0, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do sends the request and decodes the envelope. Only transport failures and
// undecodable success bodies are errors here; status handling is the caller's.
func (c *Client) do(cl *call, req *http.Request) (*domain.Response, error) {
	if err := c.limiter.Wait(cl.ctx); err != nil {
		return nil, newError(domain.KindNetwork, cl.op, 0, defaultMessages[cl.op], err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newError(domain.KindNetwork, cl.op, 0, defaultMessages[cl.op], err)
	}
	defer resp.Body.Close()
	cl.status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, newError(domain.KindNetwork, cl.op, cl.status, defaultMessages[cl.op], err)
	}

	env := &domain.Response{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(raw, env); err != nil {
		if resp.StatusCode < 300 {
			return nil, newError(domain.KindNetwork, cl.op, cl.status, msgBadResponse, err)
		}
		// error pages from proxies are not JSON
		return &domain.Response{}, nil
	}
	return env, nil
}

// statusError classifies a non-2xx response. 401 only means Unauthorized on
// token-authenticated calls.
func (c *Client) statusError(cl *call, env *domain.Response, tokenAuth bool) error {
	switch {
	case cl.status >= 200 && cl.status < 300:
		return nil
	case cl.status == http.StatusUnauthorized && tokenAuth:
		return newError(domain.KindUnauthorized, cl.op, cl.status, msgTokenRejected, nil)
	case cl.status == http.StatusNotFound:
		return newError(domain.KindNotFound, cl.op, cl.status, messageOr(env, "Not found"), nil)
	default:
		return newError(domain.KindNetwork, cl.op, cl.status, messageOr(env, defaultMessages[cl.op]), nil)
	}
}

func softFailure(cl *call, env *domain.Response) error {
	if env.Success {
		return nil
	}
	return newError(domain.KindSoftFailure, cl.op, cl.status, messageOr(env, defaultMessages[cl.op]), nil)
}

func decodeProfile(cl *call, env *domain.Response, missing string) (*domain.ProfileRecord, error) {
	if !hasData(env) {
		return nil, newError(domain.KindNotFound, cl.op, cl.status, messageOr(env, missing), nil)
	}
	var p domain.ProfileRecord
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return nil, newError(domain.KindNetwork, cl.op, cl.status, msgBadResponse, err)
	}
	return &p, nil
}

func hasData(env *domain.Response) bool {
	d := bytes.TrimSpace(env.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

func messageOr(env *domain.Response, fallback string) string {
	if env != nil && env.Message != "" {
		return env.Message
	}
	return fallback
}

func newError(kind domain.ErrorKind, op string, status int, message string, err error) *domain.Error {
	e := domain.NewError(kind, op, message, err)
	e.Status = status
	return e
}
