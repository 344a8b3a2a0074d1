package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"commandcenter/collections"
	"commandcenter/handlers"
	"commandcenter/services"
)

func main() {
	app := pocketbase.New()

	var catalogPath string
	var seed bool
	app.RootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "YAML template catalog to serve instead of the built-in one")
	app.RootCmd.PersistentFlags().BoolVar(&seed, "seed", true, "insert sample leads and invoices into an empty database")
	app.RootCmd.AddCommand(newExportCommand(app))

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if seed {
			if err := collections.Seed(app); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		catalog := services.DefaultCatalog()
		if catalogPath != "" {
			loaded, err := services.LoadCatalogFile(catalogPath)
			if err != nil {
				return fmt.Errorf("load template catalog: %w", err)
			}
			catalog = loaded
			log.Printf("Loaded %d templates from %s", catalog.Len(), catalogPath)
		}

		se.Router.BindFunc(handlers.RequestLogger())
		se.Router.BindFunc(handlers.CatalogMiddleware(catalog))

		// ── Dashboard ────────────────────────────────────────────
		se.Router.GET("/api/dashboard", handlers.HandleDashboard(app))
		se.Router.GET("/api/options", handlers.HandleFormOptions())

		// ── Template library ─────────────────────────────────────
		se.Router.GET("/api/templates", handlers.HandleTemplateList())
		se.Router.GET("/api/templates/{id}", handlers.HandleTemplateGet())
		se.Router.POST("/api/templates/{id}/render", handlers.HandleTemplateRender())
		se.Router.POST("/api/templates/{id}/documents", handlers.HandleDocumentSave(app))
		se.Router.POST("/templates/{id}/preview", handlers.HandleTemplatePreview())

		// ── Generated documents ──────────────────────────────────
		se.Router.GET("/api/documents", handlers.HandleDocumentList(app))
		se.Router.GET("/api/documents/{id}", handlers.HandleDocumentGet(app))

		// ── CRM (export/metrics/import before {id} routes) ───────
		se.Router.GET("/api/leads", handlers.HandleLeadList(app))
		se.Router.GET("/api/leads/metrics", handlers.HandleLeadMetrics(app))
		se.Router.GET("/api/leads/export", handlers.HandleLeadExport(app))
		se.Router.POST("/api/leads/import", handlers.HandleLeadImport(app))
		se.Router.PATCH("/api/leads/{id}/status", handlers.HandleLeadStatusUpdate(app))

		// ── Billing ──────────────────────────────────────────────
		se.Router.GET("/api/invoices", handlers.HandleInvoiceList(app))
		se.Router.GET("/api/invoices/export", handlers.HandleInvoiceExport(app))
		se.Router.GET("/api/invoices/{id}", handlers.HandleInvoiceGet(app))
		se.Router.GET("/api/invoices/{id}/export", handlers.HandleInvoiceDownload(app))
		se.Router.GET("/api/billing/summary", handlers.HandleBillingSummary(app))

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/api/dashboard")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// newExportCommand writes the lead or invoice table to a file without
// starting the server.
func newExportCommand(app *pocketbase.PocketBase) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:       "export [leads|invoices]",
		Short:     "Export CRM leads or invoices as CSV or Excel",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"leads", "invoices"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported format %q: must be csv or xlsx", format)
			}
			collections.Setup(app)

			data, err := exportTable(app, args[0], format, time.Now())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			log.Printf("Exported %s to %s (%d bytes)", args[0], out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func exportTable(app core.App, table, format string, now time.Time) ([]byte, error) {
	switch table {
	case "leads":
		leads, err := collections.LoadLeads(app)
		if err != nil {
			return nil, err
		}
		if format == "xlsx" {
			return services.GenerateLeadsExcel(leads, now)
		}
		csv, err := services.LeadsToCSV(leads)
		return []byte(csv), err
	case "invoices":
		invoices, err := collections.LoadInvoices(app)
		if err != nil {
			return nil, err
		}
		if format == "xlsx" {
			return services.GenerateInvoicesExcel(invoices, now)
		}
		csv, err := services.InvoicesToCSV(invoices)
		return []byte(csv), err
	}
	return nil, fmt.Errorf("unknown table %q", table)
}
