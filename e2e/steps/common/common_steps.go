package common

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetLastStatusCode() int
	GetLastHeader(name string) string
	GetResponseField(path string) (any, error)
}

// RegisterSteps registers request and assertion steps shared by features
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the server is running$`, steps.serverIsRunning)
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I GET "([^"]*)" with request id "([^"]*)"$`, steps.getWithRequestID)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, steps.headerShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should not be empty$`, steps.fieldShouldNotBeEmpty)
	ctx.Step(`^the response field "([^"]*)" should have at most (\d+) items$`, steps.fieldShouldHaveAtMost)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serverIsRunning(ctx context.Context) error {
	if err := s.tc.GET("/healthz", nil); err != nil {
		return err
	}
	return s.statusShouldBe(ctx, 200)
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.GET(path, nil)
}

func (s *commonSteps) getWithRequestID(ctx context.Context, path, requestID string) error {
	return s.tc.GET(path, map[string]string{"X-Request-ID": requestID})
}

func (s *commonSteps) statusShouldBe(ctx context.Context, expected int) error {
	if got := s.tc.GetLastStatusCode(); got != expected {
		return fmt.Errorf("expected status %d, got %d", expected, got)
	}
	return nil
}

func (s *commonSteps) headerShouldBe(ctx context.Context, name, expected string) error {
	if got := s.tc.GetLastHeader(name); got != expected {
		return fmt.Errorf("expected header %s=%q, got %q", name, expected, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(ctx context.Context, path, expected string) error {
	v, err := s.tc.GetResponseField(path)
	if err != nil {
		return err
	}
	if got := render(v); got != expected {
		return fmt.Errorf("expected %s=%q, got %q", path, expected, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldNotBeEmpty(ctx context.Context, path string) error {
	v, err := s.tc.GetResponseField(path)
	if err != nil {
		return err
	}
	switch node := v.(type) {
	case nil:
		return fmt.Errorf("field %s is null", path)
	case string:
		if node == "" {
			return fmt.Errorf("field %s is empty", path)
		}
	case []any:
		if len(node) == 0 {
			return fmt.Errorf("field %s is an empty list", path)
		}
	case map[string]any:
		if len(node) == 0 {
			return fmt.Errorf("field %s is an empty object", path)
		}
	}
	return nil
}

func (s *commonSteps) fieldShouldHaveAtMost(ctx context.Context, path string, limit int) error {
	v, err := s.tc.GetResponseField(path)
	if err != nil {
		return err
	}
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("field %s is not a list", path)
	}
	if len(items) > limit {
		return fmt.Errorf("field %s has %d items, want at most %d", path, len(items), limit)
	}
	return nil
}

func render(v any) string {
	switch node := v.(type) {
	case string:
		return node
	case float64:
		return strconv.FormatFloat(node, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(node)
	case nil:
		return ""
	default:
		return fmt.Sprint(node)
	}
}
