package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/aq2208/gstore-api/cmd/store-api/app"
	"github.com/aq2208/gstore-api/configs"
	"github.com/aq2208/gstore-api/internal/catalog"
	"github.com/aq2208/gstore-api/internal/coupon"
	"github.com/aq2208/gstore-api/internal/pricing"
	"github.com/spf13/cobra"
)

var (
	configDir string
	appEnv    string
	category  string
)

var rootCmd = &cobra.Command{
	Use:   "store-api",
	Short: "Storefront cart service",
	Long: `store-api serves the storefront: product catalog, a persisted cart with
coupons, simulated checkout with receipts, and a simulated login.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (and gRPC health when configured)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configs.Load(configDir, appEnv)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, cleanup, err := app.InitWithConfig(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		return a.Run(ctx)
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the built-in product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE")
		for _, p := range catalog.Filter(catalog.Default(), category, "") {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, pricing.Money(p.Price))
		}
		return w.Flush()
	},
}

var couponsCmd = &cobra.Command{
	Use:   "coupons",
	Short: "List the coupon codes the cart accepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tTYPE\tDISCOUNT\tFREE SHIPPING")
		for _, c := range coupon.Default.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", c.Code, c.Kind, c.Discount.String(), c.FreeShipping)
		}
		return w.Flush()
	},
}

func init() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "configs", "directory holding base.yaml and <env>.yaml")
	rootCmd.PersistentFlags().StringVar(&appEnv, "env", env, "config overlay to load (dev, staging, prod)")
	catalogCmd.Flags().StringVar(&category, "category", "", "only show this category")

	rootCmd.AddCommand(serveCmd, catalogCmd, couponsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
