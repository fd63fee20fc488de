package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/blueprint-optimizer/internal/adapters/blueprints"
	"github.com/andrescamacho/blueprint-optimizer/internal/application/evaluation/commands"
	"github.com/andrescamacho/blueprint-optimizer/internal/application/mediator"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/shared"
	"github.com/andrescamacho/blueprint-optimizer/pkg/utils"
	"github.com/andrescamacho/blueprint-optimizer/test/helpers"
)

type optimizerContext struct {
	blueprints []*production.Blueprint
	runRepo    *helpers.MockRunRepository
	response   *commands.EvaluateBlueprintsResponse
	err        error
	parseErr   error
}

func (ctx *optimizerContext) reset() {
	ctx.blueprints = nil
	ctx.runRepo = helpers.NewMockRunRepository()
	ctx.response = nil
	ctx.err = nil
	ctx.parseErr = nil
}

// InitializeOptimizerScenario registers blueprint evaluation steps
func InitializeOptimizerScenario(sc *godog.ScenarioContext) {
	oc := &optimizerContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		oc.reset()
		return ctx, nil
	})

	sc.Step(`^the blueprint list:$`, oc.theBlueprintList)
	sc.Step(`^I parse the blueprint list:$`, oc.iParseTheBlueprintList)
	sc.Step(`^I evaluate in "([^"]*)" mode with horizon (-?\d+) using (\d+) workers$`, oc.iEvaluate)
	sc.Step(`^I evaluate in "([^"]*)" mode with horizon (-?\d+) and prefix limit (\d+) using (\d+) workers$`, oc.iEvaluateWithPrefix)
	sc.Step(`^I evaluate and persist in "([^"]*)" mode with horizon (-?\d+) using (\d+) workers$`, oc.iEvaluateAndPersist)
	sc.Step(`^the evaluation should succeed$`, oc.theEvaluationShouldSucceed)
	sc.Step(`^the answer should be (\d+)$`, oc.theAnswerShouldBe)
	sc.Step(`^the maximum yields should be:$`, oc.theMaximumYieldsShouldBe)
	sc.Step(`^(\d+) blueprints should have been searched$`, oc.blueprintsShouldHaveBeenSearched)
	sc.Step(`^the persisted run should have answer (\d+)$`, oc.thePersistedRunShouldHaveAnswer)
	sc.Step(`^the evaluation should fail with an invalid horizon error$`, oc.shouldFailWithInvalidHorizon)
	sc.Step(`^the evaluation should fail with an empty list error$`, oc.shouldFailWithEmptyList)
	sc.Step(`^parsing should fail mentioning "([^"]*)"$`, oc.parsingShouldFailMentioning)
}

func (ctx *optimizerContext) theBlueprintList(doc *godog.DocString) error {
	bps, err := blueprints.ParseString(doc.Content)
	if err != nil {
		return fmt.Errorf("failed to parse blueprint list: %w", err)
	}
	ctx.blueprints = bps
	return nil
}

func (ctx *optimizerContext) iParseTheBlueprintList(doc *godog.DocString) error {
	bps, err := blueprints.ParseString(doc.Content)
	ctx.blueprints = bps
	ctx.parseErr = err
	return nil
}

func (ctx *optimizerContext) evaluate(mode string, horizon, prefixLimit, workers int, persist bool) error {
	aggregation, err := production.ParseAggregationMode(mode)
	if err != nil {
		return err
	}

	handler := commands.NewEvaluateBlueprintsHandler(
		workers,
		production.DefaultSearchOptions(),
		ctx.runRepo,
		shared.NewRealClock(),
		utils.GenerateRunID,
		0,
	)
	m := mediator.NewMediator()
	if err := mediator.RegisterHandler[*commands.EvaluateBlueprintsCommand](m, handler); err != nil {
		return err
	}

	resp, err := m.Send(context.Background(), &commands.EvaluateBlueprintsCommand{
		Blueprints:  ctx.blueprints,
		Source:      "feature",
		Mode:        aggregation,
		Horizon:     horizon,
		PrefixLimit: prefixLimit,
		Persist:     persist,
	})
	ctx.err = err
	if err == nil {
		ctx.response = resp.(*commands.EvaluateBlueprintsResponse)
	}
	return nil
}

func (ctx *optimizerContext) iEvaluate(mode string, horizon, workers int) error {
	return ctx.evaluate(mode, horizon, 0, workers, false)
}

func (ctx *optimizerContext) iEvaluateWithPrefix(mode string, horizon, prefixLimit, workers int) error {
	return ctx.evaluate(mode, horizon, prefixLimit, workers, false)
}

func (ctx *optimizerContext) iEvaluateAndPersist(mode string, horizon, workers int) error {
	return ctx.evaluate(mode, horizon, 0, workers, true)
}

func (ctx *optimizerContext) theEvaluationShouldSucceed() error {
	if ctx.err != nil {
		return fmt.Errorf("expected success but got: %w", ctx.err)
	}
	if ctx.response == nil {
		return fmt.Errorf("no evaluation response recorded")
	}
	return nil
}

func (ctx *optimizerContext) theAnswerShouldBe(expected int) error {
	if err := ctx.theEvaluationShouldSucceed(); err != nil {
		return err
	}
	if got := ctx.response.Evaluation.Aggregate; got != uint64(expected) {
		return fmt.Errorf("expected answer %d, got %d", expected, got)
	}
	return nil
}

func (ctx *optimizerContext) theMaximumYieldsShouldBe(table *godog.Table) error {
	yields := make(map[int]uint64)
	for _, r := range ctx.response.Evaluation.Results {
		yields[r.BlueprintID] = r.MaxYield
	}

	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		id, want, err := parseYieldRow(row)
		if err != nil {
			return err
		}

		got, ok := yields[id]
		if !ok {
			return fmt.Errorf("blueprint %d was not searched", id)
		}
		if got != want {
			return fmt.Errorf("blueprint %d: expected yield %d, got %d", id, want, got)
		}
	}
	return nil
}

func (ctx *optimizerContext) blueprintsShouldHaveBeenSearched(count int) error {
	if got := len(ctx.response.Evaluation.Results); got != count {
		return fmt.Errorf("expected %d searched blueprints, got %d", count, got)
	}
	return nil
}

func (ctx *optimizerContext) thePersistedRunShouldHaveAnswer(expected int) error {
	if !ctx.response.Persisted || ctx.response.RunID == "" {
		return fmt.Errorf("evaluation was not persisted")
	}
	run, err := ctx.runRepo.FindByID(context.Background(), ctx.response.RunID)
	if err != nil {
		return err
	}
	if run.Aggregate() != uint64(expected) {
		return fmt.Errorf("expected persisted answer %d, got %d", expected, run.Aggregate())
	}
	return nil
}

func (ctx *optimizerContext) shouldFailWithInvalidHorizon() error {
	var horizonErr *production.ErrInvalidHorizon
	if !errors.As(ctx.err, &horizonErr) {
		return fmt.Errorf("expected invalid horizon error, got %v", ctx.err)
	}
	return nil
}

func (ctx *optimizerContext) shouldFailWithEmptyList() error {
	var emptyErr *production.ErrEmptyBlueprintList
	if !errors.As(ctx.err, &emptyErr) {
		return fmt.Errorf("expected empty list error, got %v", ctx.err)
	}
	return nil
}

func (ctx *optimizerContext) parsingShouldFailMentioning(fragment string) error {
	if ctx.parseErr == nil {
		return fmt.Errorf("expected parsing to fail")
	}
	if !strings.Contains(ctx.parseErr.Error(), fragment) {
		return fmt.Errorf("expected parse error to mention %q, got %q", fragment, ctx.parseErr.Error())
	}
	return nil
}

// parseYieldRow reads a "| blueprint | yield |" table row
func parseYieldRow(row *messages.PickleTableRow) (int, uint64, error) {
	if len(row.Cells) < 2 {
		return 0, 0, fmt.Errorf("expected 2 cells, got %d", len(row.Cells))
	}
	id, err := strconv.Atoi(strings.TrimSpace(row.Cells[0].Value))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid blueprint id %q", row.Cells[0].Value)
	}
	yield, err := strconv.ParseUint(strings.TrimSpace(row.Cells[1].Value), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid yield %q", row.Cells[1].Value)
	}
	return id, yield, nil
}
