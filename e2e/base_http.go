package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

// BaseHTTPSuite carries the shared plumbing for end-to-end scenarios run
// against a live server: configuration, per-persona HTTP sessions with
// their own cookie jars, and optional request/response dumping.
type BaseHTTPSuite struct {
	suite.Suite
	Config Config
}

func (s *BaseHTTPSuite) SetupSuite() {
	cfg, err := LoadConfig()
	s.Require().NoError(err)
	if cfg.BaseURL == "" {
		s.T().Skip("E2E_BASE_URL not set, skipping end-to-end suite")
	}
	s.Config = cfg

	// Fail fast when nobody is listening instead of timing out per test.
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(cfg.BaseURL + "/healthz")
	if err != nil {
		s.T().Skipf("server at %s unreachable: %v", cfg.BaseURL, err)
	}
	_ = resp.Body.Close()
}

// NewSession returns an HTTP client with an isolated cookie jar, so each
// persona in a scenario holds its own auth cookie.
func (s *BaseHTTPSuite) NewSession() *http.Client {
	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

// DoJSON sends a JSON request, decodes the JSON answer into out (when out
// is non-nil) and returns the status code.
func (s *BaseHTTPSuite) DoJSON(client *http.Client, method, path string, body, out any) int {
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		payload = raw
	}

	req, err := http.NewRequest(method, s.Config.BaseURL+path, bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	if s.Config.DebugJSON {
		s.logExchange(method, path, payload, resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		s.Require().NoError(json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}

func (s *BaseHTTPSuite) logExchange(method, path string, request []byte, status int, response []byte) {
	line := fmt.Sprintf("%s %s -> %d", method, path, status)
	if s.Config.Colours {
		if status < 400 {
			color.Green.Println(line)
		} else {
			color.Red.Println(line)
		}
	} else {
		s.T().Log(line)
	}
	if len(request) > 0 {
		s.T().Logf("  request:  %s", request)
	}
	s.T().Logf("  response: %s", response)
}
