// Package cli línea de comandos de Verduras Pro: calculadora de negocio y tareas de mantenimiento.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/verduras-pro/pkg/config"
	"github.com/jhoicas/verduras-pro/pkg/logger"
)

// CLI interfaz de línea de comandos.
type CLI struct {
	out        io.Writer
	loadConfig func() (*config.Config, error)
	log        *logger.Logger
	rootCmd    *cobra.Command
}

// Options configuración del CLI. Los campos nil toman valores por defecto.
type Options struct {
	Output     io.Writer
	LoadConfig func() (*config.Config, error)
	Logger     *logger.Logger
}

// NewCLI construye el CLI con sus comandos.
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	cli := &CLI{out: opts.Output, loadConfig: opts.LoadConfig, log: opts.Logger}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute corre el comando indicado en os.Args.
func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// Root devuelve el comando raíz (para pruebas o para fijar args).
func (cli *CLI) Root() *cobra.Command {
	return cli.rootCmd
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "verduras",
		Short:         "Herramientas de Verduras Pro",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.out)
	cmd.SetErr(cli.out)

	cmd.AddCommand(newCalcCmd())
	cmd.AddCommand(cli.newMigrateCmd())
	cmd.AddCommand(cli.newSeedCmd())
	return cmd
}
