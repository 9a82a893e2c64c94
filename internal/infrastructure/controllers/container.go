package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewStatusController); err != nil {
		return err
	}
	if err := container.Provide(NewGraphController); err != nil {
		return err
	}
	if err := container.Provide(NewBumpController); err != nil {
		return err
	}
	if err := container.Provide(NewExcludeController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	statusController *StatusController,
	graphController *GraphController,
	bumpController *BumpController,
	excludeController *ExcludeController,
) *[]entities.Controller {
	return &[]entities.Controller{
		statusController,
		graphController,
		bumpController,
		excludeController,
	}
}
