package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/bumpchain/internal/domain/repositories"
	"github.com/rios0rios0/bumpchain/internal/infrastructure/repositories/gitcli"
	"github.com/rios0rios0/bumpchain/internal/infrastructure/repositories/gogit"
	"github.com/rios0rios0/bumpchain/internal/infrastructure/repositories/msbuild"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register diff registry with every source-control provider
	if err := container.Provide(func() *DiffRegistry {
		reg := NewDiffRegistry()
		reg.Register(gogit.NewDiffRepository())
		reg.Register(gitcli.NewDiffRepository())
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.ProjectRepository {
		return msbuild.NewProjectRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.ManifestRepository {
		return msbuild.NewManifestRepository()
	}); err != nil {
		return err
	}

	return nil
}
