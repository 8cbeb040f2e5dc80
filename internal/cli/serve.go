package cli

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sitemaint/internal/db"
	"github.com/sitemaint/internal/handler"
	"github.com/sitemaint/internal/router"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.EnsureUser(cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		return fmt.Errorf("failed to ensure super root user: %w", err)
	}

	api := handler.NewAPI(db.DB, handler.Options{
		SiteBaseURL: cfg.SiteBaseURL,
		HomeURL:     cfg.HomeURL,
		Language:    cfg.Language,
		Theme:       cfg.Theme,
	})
	r := router.SetupRouter(api, cfg.SessionSecret)

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}
