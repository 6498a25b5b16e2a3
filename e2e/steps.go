// Package e2e drives a running server through Gherkin scenarios.
package e2e

import (
	"github.com/cucumber/godog"

	"everypolitician/e2e/steps/common"
	"everypolitician/e2e/steps/politics"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and response assertions
	common.RegisterSteps(ctx, tc)

	// Entity browsing and schema documentation
	politics.RegisterSteps(ctx, tc)
}
