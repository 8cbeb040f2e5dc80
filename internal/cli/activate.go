package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/sitemaint/internal/db"
	"github.com/sitemaint/internal/maintenance"
	"github.com/sitemaint/internal/service"
	"github.com/spf13/cobra"
)

var activateLayout string

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Provision the maintenance page and template",
	Long: `Create the "maintenance" page and the "page-maintenance" display template
if they do not exist yet, then link them. The template is derived from the
theme's "page" layout; --layout seeds that layout from a file when none is stored.

Running activate again is safe and creates nothing new.`,
	Args: cobra.NoArgs,
	RunE: runActivate,
}

func init() {
	activateCmd.Flags().StringVar(&activateLayout, "layout", "",
		"Block markup file used as the theme page layout when none exists")
}

func runActivate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := db.Init(cfg.DatabasePath); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	pages := service.NewPageService(db.DB)
	if activateLayout != "" {
		markup, err := os.ReadFile(activateLayout)
		if err != nil {
			return fmt.Errorf("failed to read layout %s: %w", activateLayout, err)
		}
		created, err := pages.EnsureReferenceLayout(string(markup), cfg.Theme)
		if err != nil {
			return fmt.Errorf("failed to store layout: %w", err)
		}
		if created {
			log.Printf("[ACTIVATE] stored reference layout from %s", activateLayout)
		}
	}

	store := service.NewContentStore(db.DB, cfg.SiteBaseURL)
	if err := maintenance.NewProvisioner(store, service.MaintenancePageTitle(cfg.Language), cfg.Theme).Provision(); err != nil {
		return fmt.Errorf("activation failed: %w", err)
	}

	page, err := pages.GetBySlug(maintenance.PageSlug)
	if err != nil {
		return err
	}
	link, err := store.Permalink(maintenance.KindPage, page.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "maintenance page %s uses template %s\n", link, page.TemplateSlug)
	return nil
}
