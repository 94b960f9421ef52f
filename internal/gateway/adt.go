package gateway

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ppiankov/s4spectre/internal/models"
)

// DefaultTimeout bounds a single HTTP exchange with the system
const DefaultTimeout = 30 * time.Second

const (
	searchPath     = "/sap/bc/adt/repository/informationsystem/search"
	maxSearchHits  = 1000
	defaultRetries = 30 * time.Second
)

// ADTConfig configures the live gateway
type ADTConfig struct {
	BaseURL  string
	Client   string
	User     string
	Password string
	Timeout  time.Duration
	Logger   *slog.Logger
}

// ADT talks to the ABAP Development Tools REST API of a live system
type ADT struct {
	baseURL    string
	client     string
	user       string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
	newBackOff func() backoff.BackOff
}

// NewADT creates a live gateway
func NewADT(cfg ADTConfig) *ADT {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	jar, _ := cookiejar.New(nil)
	return &ADT{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		client:     cfg.Client,
		user:       cfg.User,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		logger:     logger,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.MaxElapsedTime = defaultRetries
			return bo
		},
	}
}

// Mode implements Gateway
func (a *ADT) Mode() Mode { return ModeLive }

// StatusError is a non-2xx answer from the system
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200]
	}
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, body)
}

// isRetryableError reports whether a failed exchange is worth repeating
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "eof")
}

type response struct {
	header http.Header
	body   []byte
}

// do performs one request, retrying transient failures with exponential backoff
func (a *ADT) do(ctx context.Context, method, path string, query url.Values, header http.Header, body []byte) (*response, error) {
	var out *response
	attempt := 0
	op := func() error {
		attempt++
		resp, err := a.exchange(ctx, method, path, query, header, body)
		if err == nil {
			out = resp
			return nil
		}
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return backoff.Permanent(ErrNotFound)
		}
		if isRetryableError(err) {
			a.logger.Debug("retrying ADT request", "method", method, "path", path, "attempt", attempt, "error", err)
			return err
		}
		return backoff.Permanent(err)
	}
	if err := backoff.Retry(op, backoff.WithContext(a.newBackOff(), ctx)); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ADT) exchange(ctx context.Context, method, path string, query url.Values, header http.Header, body []byte) (*response, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if a.client != "" {
		q.Set("sap-client", a.client)
	}
	u := a.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if a.user != "" {
		req.SetBasicAuth(a.user, a.password)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	return &response{header: resp.Header, body: data}, nil
}

// objectPath returns the ADT URI of an object, without the source suffix
func objectPath(name, objectType string) (string, error) {
	n := url.PathEscape(strings.ToLower(name))
	switch models.NormalizeObjectType(objectType) {
	case models.TypeClass:
		return "/sap/bc/adt/oo/classes/" + n, nil
	case models.TypeInterface:
		return "/sap/bc/adt/oo/interfaces/" + n, nil
	case models.TypeProgram:
		return "/sap/bc/adt/programs/programs/" + n, nil
	case models.TypeInclude:
		return "/sap/bc/adt/programs/includes/" + n, nil
	case models.TypeFunctionGroup:
		return "/sap/bc/adt/functions/groups/" + n, nil
	}
	return "", fmt.Errorf("object type %q has no source endpoint", objectType)
}

type objectReferences struct {
	Refs []struct {
		URI         string `xml:"uri,attr"`
		Type        string `xml:"type,attr"`
		Name        string `xml:"name,attr"`
		PackageName string `xml:"packageName,attr"`
		Description string `xml:"description,attr"`
	} `xml:"objectReference"`
}

// Search implements Gateway
func (a *ADT) Search(ctx context.Context, query, objectType string) (*SearchResult, error) {
	q := url.Values{}
	q.Set("operation", "quickSearch")
	q.Set("query", query)
	q.Set("maxResults", fmt.Sprint(maxSearchHits))
	if objectType != "" {
		q.Set("objectType", models.NormalizeObjectType(objectType))
	}
	resp, err := a.do(ctx, http.MethodGet, searchPath, q, http.Header{"Accept": {"application/xml"}}, nil)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", query, err)
	}

	var refs objectReferences
	if err := xml.Unmarshal(resp.body, &refs); err != nil {
		return nil, fmt.Errorf("parse search result: %w", err)
	}
	res := &SearchResult{Query: query, Results: make([]SearchHit, 0, len(refs.Refs))}
	for _, r := range refs.Refs {
		res.Results = append(res.Results, SearchHit{
			Name:        r.Name,
			Type:        models.NormalizeObjectType(r.Type),
			Description: r.Description,
			Package:     r.PackageName,
		})
	}
	res.ResultCount = len(res.Results)
	return res, nil
}

// ReadSource implements Gateway
func (a *ADT) ReadSource(ctx context.Context, name, objectType string) (*SourceResult, error) {
	p, err := objectPath(name, objectType)
	if err != nil {
		return nil, err
	}
	resp, err := a.do(ctx, http.MethodGet, p+"/source/main", nil, http.Header{"Accept": {"text/plain"}}, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound(name)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &SourceResult{
		ObjectName: name,
		ObjectType: models.NormalizeObjectType(objectType),
		Source:     string(resp.body),
	}, nil
}

type lockResult struct {
	Handle string `xml:"values>DATA>LOCK_HANDLE"`
}

// WriteSource implements Gateway: fetch a CSRF token, lock, upload, unlock
func (a *ADT) WriteSource(ctx context.Context, req WriteRequest) (*WriteResult, error) {
	p, err := objectPath(req.ObjectName, req.ObjectType)
	if err != nil {
		return nil, err
	}

	token, err := a.csrfToken(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", req.ObjectName, err)
	}
	stateful := http.Header{
		"X-Csrf-Token":          {token},
		"X-Sap-Adt-Sessiontype": {"stateful"},
		"Accept":                {"application/vnd.sap.as+xml"},
	}

	lockResp, err := a.do(ctx, http.MethodPost, p, url.Values{"_action": {"LOCK"}, "accessMode": {"MODIFY"}}, stateful, nil)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", req.ObjectName, err)
	}
	var lock lockResult
	if err := xml.Unmarshal(lockResp.body, &lock); err != nil || lock.Handle == "" {
		return nil, fmt.Errorf("lock %s: no lock handle in response", req.ObjectName)
	}

	defer func() {
		_, uerr := a.do(context.WithoutCancel(ctx), http.MethodPost, p,
			url.Values{"_action": {"UNLOCK"}, "lockHandle": {lock.Handle}}, stateful, nil)
		if uerr != nil {
			a.logger.Warn("failed to unlock object", "object", req.ObjectName, "error", uerr)
		}
	}()

	put := http.Header{
		"X-Csrf-Token":          {token},
		"X-Sap-Adt-Sessiontype": {"stateful"},
		"Content-Type":          {"text/plain; charset=utf-8"},
	}
	if _, err := a.do(ctx, http.MethodPut, p+"/source/main", url.Values{"lockHandle": {lock.Handle}}, put, []byte(req.Source)); err != nil {
		return nil, fmt.Errorf("write %s: %w", req.ObjectName, err)
	}

	return &WriteResult{Status: StatusSaved, Lines: models.CountLines(req.Source)}, nil
}

func (a *ADT) csrfToken(ctx context.Context, objectPath string) (string, error) {
	resp, err := a.do(ctx, http.MethodGet, objectPath, nil, http.Header{"X-Csrf-Token": {"Fetch"}}, nil)
	if err != nil {
		return "", fmt.Errorf("fetch CSRF token: %w", err)
	}
	token := resp.header.Get("X-Csrf-Token")
	if token == "" {
		return "", fmt.Errorf("fetch CSRF token: empty token")
	}
	return token, nil
}
