package loader

import (
	"context"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/internal/notify"
)

// EfficiencyParams selects an annual efficiency report.
type EfficiencyParams struct {
	Year      int
	ProcessID string
}

// Processes loads every process, ordered by step number.
func Processes(list func(context.Context) (*models.Page[models.Process], error), n notify.Notifier) *Loader[None, []models.Process] {
	fetch := func(ctx context.Context, _ None) ([]models.Process, error) {
		page, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return page.Data, nil
	}
	return New(fetch, n,
		WithTitle[None, []models.Process]("Error fetching process steps"),
		WithTransform(func(_ None, processes []models.Process) []models.Process {
			return models.SortByStep(processes)
		}),
	)
}

// Process loads one process. A failed load clears it.
func Process(get func(context.Context, string) (*models.Process, error), n notify.Notifier) *Loader[string, *models.Process] {
	return New(Fetcher[string, *models.Process](get), n,
		WithTitle[string, *models.Process]("Error fetching process"),
		WithResetOnError[string, *models.Process](),
	)
}

// ProcessInputs loads the meters feeding a process. The backend only offers
// the full relationship list, so it is filtered here.
func ProcessInputs(list func(context.Context) ([]models.MeterOnProcess, error), n notify.Notifier) *Loader[string, []models.MeterOnProcess] {
	fetch := func(ctx context.Context, _ string) ([]models.MeterOnProcess, error) {
		return list(ctx)
	}
	return New(fetch, n,
		WithTitle[string, []models.MeterOnProcess]("Error fetching process inputs"),
		WithTransform(func(processID string, rels []models.MeterOnProcess) []models.MeterOnProcess {
			return models.FilterByProcess(rels, processID)
		}),
	)
}

// AnnualEfficiency loads a process's monthly efficiency for one year.
func AnnualEfficiency(report func(context.Context, int, string) ([]models.AnnualEfficiencyRow, error), n notify.Notifier) *Loader[EfficiencyParams, []models.AnnualEfficiencyRow] {
	fetch := func(ctx context.Context, p EfficiencyParams) ([]models.AnnualEfficiencyRow, error) {
		return report(ctx, p.Year, p.ProcessID)
	}
	return New(fetch, n,
		WithTitle[EfficiencyParams, []models.AnnualEfficiencyRow]("Error fetching annual efficiency report"),
		WithGuard[EfficiencyParams, []models.AnnualEfficiencyRow](func(p EfficiencyParams) bool {
			return p.ProcessID != "" && p.Year > 0
		}),
	)
}

// Product loads one material.
func Product(get func(context.Context, string) (*models.Product, error), n notify.Notifier) *Loader[string, *models.Product] {
	return New(Fetcher[string, *models.Product](get), n,
		WithTitle[string, *models.Product]("Error fetching material details"))
}

// ComponentCodes loads the distinct component codes used under a product code.
func ComponentCodes(list func(context.Context, string) ([]string, error), n notify.Notifier) *Loader[string, []string] {
	return New(Fetcher[string, []string](list), n,
		WithTitle[string, []string]("Error fetching component codes"))
}

// Components loads the bill of materials of a product.
func Components(list func(context.Context, string) ([]models.Component, error), n notify.Notifier) *Loader[string, []models.Component] {
	return New(Fetcher[string, []models.Component](list), n,
		WithTitle[string, []models.Component]("Error fetching components"))
}

// Routings loads the routing steps of a product.
func Routings(list func(context.Context, string) ([]models.Routing, error), n notify.Notifier) *Loader[string, []models.Routing] {
	return New(Fetcher[string, []models.Routing](list), n,
		WithTitle[string, []models.Routing]("Error fetching routings"))
}

// QualityHours loads the quality hours report of a product.
func QualityHours(report func(context.Context, string) ([]models.QualityHoursRow, error), n notify.Notifier) *Loader[string, []models.QualityHoursRow] {
	return New(Fetcher[string, []models.QualityHoursRow](report), n,
		WithTitle[string, []models.QualityHoursRow]("Error fetching quality hours report"))
}
