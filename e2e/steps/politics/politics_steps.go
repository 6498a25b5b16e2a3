package politics

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetResponseField(path string) (any, error)
}

// RegisterSteps registers entity and schema browsing steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &politicsSteps{tc: tc}

	ctx.Step(`^I open the entity "([^"]*)"$`, steps.openEntity)
	ctx.Step(`^I page the "([^"]*)" relation of "([^"]*)" with limit (\d+) and offset (\d+)$`, steps.pageRelation)
	ctx.Step(`^I open the schema "([^"]*)"$`, steps.openSchema)

	ctx.Step(`^the schema list should include "([^"]*)"$`, steps.schemaListIncludes)
	ctx.Step(`^the schema should have parent "([^"]*)"$`, steps.schemaHasParent)
	ctx.Step(`^the entity should have a "([^"]*)" relation$`, steps.entityHasRelation)
}

type politicsSteps struct {
	tc TestContext
}

func (s *politicsSteps) openEntity(ctx context.Context, id string) error {
	return s.tc.GET("/entities/"+url.PathEscape(id), nil)
}

func (s *politicsSteps) pageRelation(ctx context.Context, prop, id string, limit, offset int) error {
	path := fmt.Sprintf("/entities/%s/relations/%s?limit=%d&offset=%d",
		url.PathEscape(id), url.PathEscape(prop), limit, offset)
	return s.tc.GET(path, nil)
}

func (s *politicsSteps) openSchema(ctx context.Context, name string) error {
	return s.tc.GET("/schemata/"+url.PathEscape(name), nil)
}

func (s *politicsSteps) schemaListIncludes(ctx context.Context, name string) error {
	v, err := s.tc.GetResponseField(".")
	if err != nil {
		return err
	}
	for _, item := range asList(v) {
		if obj, ok := item.(map[string]any); ok && obj["name"] == name {
			return nil
		}
	}
	return fmt.Errorf("schema %s not listed", name)
}

func (s *politicsSteps) schemaHasParent(ctx context.Context, parent string) error {
	v, err := s.tc.GetResponseField("parents")
	if err != nil {
		return err
	}
	for _, item := range asList(v) {
		if item == parent {
			return nil
		}
	}
	return fmt.Errorf("schema does not inherit from %s", parent)
}

func (s *politicsSteps) entityHasRelation(ctx context.Context, prop string) error {
	v, err := s.tc.GetResponseField("relations")
	if err != nil {
		return err
	}
	for _, item := range asList(v) {
		if obj, ok := item.(map[string]any); ok && obj["property"] == prop {
			return nil
		}
	}
	return fmt.Errorf("entity has no %s relation", prop)
}

func asList(v any) []any {
	items, _ := v.([]any)
	return items
}
