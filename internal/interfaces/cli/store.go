package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/verduras-pro/internal/application/auth"
	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/application/usecase"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/storage"
	"github.com/jhoicas/verduras-pro/pkg/config"
)

const storeTimeout = 60 * time.Second

func (cli *CLI) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea las tablas del almacenamiento configurado (STORAGE_DRIVER)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.withStore(cmd, func(ctx context.Context, _ *config.Config, store *storage.Store) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Esquema aplicado (%s)\n", store.Driver)
				return nil
			})
		},
	}
}

func (cli *CLI) newSeedCmd() *cobra.Command {
	var skipUser bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga el catálogo inicial y el usuario administrador (DEMO_*)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.withStore(cmd, func(ctx context.Context, cfg *config.Config, store *storage.Store) error {
				out := cmd.OutOrStdout()
				res, err := usecase.NewProductUseCase(store.Products, cli.log).SeedDefaults(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Productos creados: %d", len(res.Created))
				if len(res.Skipped) > 0 {
					fmt.Fprintf(out, " (ya existían: %s)", strings.Join(res.Skipped, ", "))
				}
				fmt.Fprintln(out)

				if skipUser {
					return nil
				}
				if cfg.Demo.Password == "" {
					cli.log.Warn().Msg("DEMO_PASSWORD vacío: no se crea el usuario administrador")
					fmt.Fprintln(out, "Usuario administrador omitido (defina DEMO_PASSWORD)")
					return nil
				}
				authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{
					Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
				}, cfg.Business.Currency, cli.log)
				created, err := authUC.SeedAdmin(ctx, dto.RegisterRequest{
					Username: cfg.Demo.Username,
					Email:    cfg.Demo.Email,
					Password: cfg.Demo.Password,
					Name:     cfg.Demo.Name,
					Business: cfg.Business.Name,
				})
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(out, "Usuario administrador creado: %s\n", cfg.Demo.Username)
				} else {
					fmt.Fprintf(out, "Usuario administrador ya existía: %s\n", cfg.Demo.Username)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&skipUser, "sin-usuario", false, "Solo carga el catálogo")
	return cmd
}

// withStore carga la configuración, abre el almacenamiento, aplica el esquema y ejecuta fn.
func (cli *CLI) withStore(cmd *cobra.Command, fn func(context.Context, *config.Config, *storage.Store) error) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithTimeout(base, storeTimeout)
	defer cancel()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	cli.log.Info().Str("driver", store.Driver).Msg("almacenamiento listo")
	return fn(ctx, cfg, store)
}
