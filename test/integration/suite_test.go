//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/notekeeper/internal/adapters/storage/memory"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL      string
	client       *http.Client
	server       *httptest.Server
	response     *http.Response
	responseBody []byte
}

type apiNote struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// newTestContext targets BASE_URL when set, otherwise a fresh in-process
// server over an in-memory store.
func newTestContext() *testContext {
	return &testContext{
		baseURL: os.Getenv("BASE_URL"),
		client: &http.Client{
			Timeout: 10 * time.Second,
			// Redirects are asserted, not followed.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (tc *testContext) start() error {
	if tc.baseURL != "" {
		return nil
	}

	engine, err := newAppHandler(memory.New())
	if err != nil {
		return err
	}

	tc.server = httptest.NewServer(engine)
	tc.baseURL = tc.server.URL

	return nil
}

// reset clears response state between scenarios.
func (tc *testContext) reset() {
	tc.response = nil
	tc.responseBody = nil

	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
		tc.baseURL = ""
	}
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, tc.start()
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^I request GET "([^"]*)"$`, tc.iRequestGET)
	ctx.Step(`^I create a note titled "([^"]*)" with content "([^"]*)"$`, tc.iCreateANote)
	ctx.Step(`^I open the edit page for the note titled "([^"]*)"$`, tc.iOpenTheEditPage)
	ctx.Step(`^I edit the note titled "([^"]*)" to title "([^"]*)" and content "([^"]*)"$`, tc.iEditTheNote)
	ctx.Step(`^I delete the note titled "([^"]*)"$`, tc.iDeleteTheNote)
	ctx.Step(`^I send POST "([^"]*)" with JSON:$`, tc.iSendPOSTWithJSON)
	ctx.Step(`^I should be redirected home with message "([^"]*)"$`, tc.iShouldBeRedirectedHome)
	ctx.Step(`^I follow the redirect$`, tc.iFollowTheRedirect)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the API should return the note titled "([^"]*)" with content "([^"]*)"$`, tc.theAPIShouldReturnTheNote)
	ctx.Step(`^the API should not list a note titled "([^"]*)"$`, tc.theAPIShouldNotListTheNote)
}

// theServiceIsRunning verifies the service is reachable.
func (tc *testContext) theServiceIsRunning() error {
	if err := tc.do(http.MethodGet, "/-/live", nil, ""); err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}

	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", tc.response.StatusCode)
	}

	return nil
}

func (tc *testContext) iRequestGET(path string) error {
	return tc.do(http.MethodGet, path, nil, "")
}

func (tc *testContext) iCreateANote(title, content string) error {
	return tc.postForm("/notes", title, content)
}

func (tc *testContext) iOpenTheEditPage(title string) error {
	note, err := tc.findNote(title)
	if err != nil {
		return err
	}

	return tc.do(http.MethodGet, fmt.Sprintf("/notes/%d/edit", note.ID), nil, "")
}

func (tc *testContext) iEditTheNote(title, newTitle, newContent string) error {
	note, err := tc.findNote(title)
	if err != nil {
		return err
	}

	return tc.postForm(fmt.Sprintf("/notes/%d/edit", note.ID), newTitle, newContent)
}

func (tc *testContext) iDeleteTheNote(title string) error {
	note, err := tc.findNote(title)
	if err != nil {
		return err
	}

	return tc.do(http.MethodPost, fmt.Sprintf("/notes/%d/delete", note.ID), nil, "")
}

func (tc *testContext) iSendPOSTWithJSON(path string, body *godog.DocString) error {
	return tc.do(http.MethodPost, path, strings.NewReader(body.Content), "application/json")
}

func (tc *testContext) iShouldBeRedirectedHome(message string) error {
	if err := tc.theResponseStatusShouldBe(http.StatusSeeOther); err != nil {
		return err
	}

	want := "/?message=" + url.QueryEscape(message)
	if got := tc.response.Header.Get("Location"); got != want {
		return fmt.Errorf("expected redirect to %q, got %q", want, got)
	}

	return nil
}

func (tc *testContext) iFollowTheRedirect() error {
	location := tc.response.Header.Get("Location")
	if location == "" {
		return errors.New("last response was not a redirect")
	}

	return tc.do(http.MethodGet, location, nil, "")
}

// theResponseStatusShouldBe asserts the response status code.
func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return errors.New("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

// theResponseShouldContain asserts the response body contains the given text.
func (tc *testContext) theResponseShouldContain(text string) error {
	if tc.responseBody == nil {
		return errors.New("no response body")
	}

	if !strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theAPIShouldReturnTheNote(title, content string) error {
	note, err := tc.findNote(title)
	if err != nil {
		return err
	}

	if err := tc.do(http.MethodGet, fmt.Sprintf("/api/notes/%d", note.ID), nil, ""); err != nil {
		return err
	}

	var got apiNote
	if err := json.Unmarshal(tc.responseBody, &got); err != nil {
		return fmt.Errorf("decoding note: %w", err)
	}

	if got.Content != content {
		return fmt.Errorf("expected content %q, got %q", content, got.Content)
	}

	return nil
}

func (tc *testContext) theAPIShouldNotListTheNote(title string) error {
	if _, err := tc.findNote(title); err == nil {
		return fmt.Errorf("note %q is still listed", title)
	}

	return nil
}

// findNote returns the newest note with the given title from the JSON API.
// It leaves the last response untouched.
func (tc *testContext) findNote(title string) (apiNote, error) {
	resp, body, err := tc.send(http.MethodGet, "/api/notes", nil, "")
	if err != nil {
		return apiNote{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return apiNote{}, fmt.Errorf("listing notes: status %d", resp.StatusCode)
	}

	var notes []apiNote
	if err := json.Unmarshal(body, &notes); err != nil {
		return apiNote{}, fmt.Errorf("decoding notes: %w", err)
	}

	for i := len(notes) - 1; i >= 0; i-- {
		if notes[i].Title == title {
			return notes[i], nil
		}
	}

	return apiNote{}, fmt.Errorf("no note titled %q", title)
}

func (tc *testContext) postForm(path, title, content string) error {
	form := url.Values{"title": {title}, "content": {content}}
	return tc.do(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// do sends a request and records it as the last response.
func (tc *testContext) do(method, path string, body io.Reader, contentType string) error {
	resp, respBody, err := tc.send(method, path, body, contentType)
	if err != nil {
		return err
	}

	tc.response = resp
	tc.responseBody = respBody

	return nil
}

func (tc *testContext) send(method, path string, body io.Reader, contentType string) (*http.Response, []byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+path, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response body: %w", err)
	}

	return resp, bytes.TrimSpace(respBody), nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
