package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"skripsiku_backend/internals/configs"
	database "skripsiku_backend/internals/databases"
	notifService "skripsiku_backend/internals/features/home/notifications/service"
	thesisScheduler "skripsiku_backend/internals/features/theses/theses/scheduler"
	scheduler "skripsiku_backend/internals/features/users/auth/scheduler"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/oss"
	middlewares "skripsiku_backend/internals/middlewares"
	routes "skripsiku_backend/internals/route"
	"skripsiku_backend/internals/seeds"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "skripsiku",
		Short:         "Backend administrasi skripsi & yudisium",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
	}

	serve := serveCmd()
	root.AddCommand(serve, migrateCmd(), thesisStatusCmd())

	// tanpa subcommand = serve
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Jalankan HTTP server + scheduler",
		RunE:  runServe,
	}
	cmd.Flags().Bool("migrate", false, "AutoMigrate + seed sebelum server jalan")
	return cmd
}

func connect() {
	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
}

func runServe(cmd *cobra.Command, args []string) error {
	connect()
	database.WarmUpQueries()
	defer database.Close()

	if doMigrate, _ := cmd.Flags().GetBool("migrate"); doMigrate {
		if err := migrateAndSeed(); err != nil {
			return err
		}
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               12 << 20, // PDF skripsi 10MB + overhead multipart
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID (dipakai logger middleware via locals reqid)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		// konversi PDF bisa lama, guard sedikit di atas timeout konverter
		ctx, cancel := context.WithTimeout(c.Context(), configs.PDFConverterTimeout+10*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app)

	deps := routes.Deps{
		DB:      database.DB,
		Storage: oss.NewStorageFromEnv(),
		Hub:     notifService.NewHub(),
	}

	// ⏱ scheduler setelah DB siap
	c := cron.New()
	if err := scheduler.StartBlacklistCleanupScheduler(c, database.DB); err != nil {
		return fmt.Errorf("scheduler blacklist: %w", err)
	}
	if _, err := thesisScheduler.StartThesisStatusScheduler(c, configs.ThesisStatusCron, routes.NewStatusJob(deps), 30*time.Minute); err != nil {
		return fmt.Errorf("scheduler status skripsi: %w", err)
	}
	c.Start()
	log.Printf("[INFO] ⏰ Job status skripsi terjadwal: %q", configs.ThesisStatusCron)

	// ✅ Routes
	routes.SetupRoutes(app, deps)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 90 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", port)
		errCh <- app.Listen("0.0.0.0:" + port)
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Println("[INFO] 🛑 Shutdown...")
	<-c.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}

func migrateAndSeed() error {
	if err := database.AutoMigrate(database.DB); err != nil {
		return err
	}
	return seeds.RunAllSeeds(database.DB)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "AutoMigrate semua tabel lalu isi data awal",
		RunE: func(cmd *cobra.Command, args []string) error {
			connect()
			defer database.Close()
			return migrateAndSeed()
		},
	}
}
