package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	database "skripsiku_backend/internals/databases"
	notifService "skripsiku_backend/internals/features/home/notifications/service"
	thesisService "skripsiku_backend/internals/features/theses/theses/service"
	"skripsiku_backend/internals/helpers/oss"
	routes "skripsiku_backend/internals/route"
)

// thesis-status: jalankan klasifikasi rating sekali (tanpa menunggu cron).
func thesisStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thesis-status",
		Short: "Jalankan job rating skripsi sekali lalu tampilkan ringkasan",
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")
			pageSize, _ := cmd.Flags().GetInt("page-size")
			workers, _ := cmd.Flags().GetInt("concurrency")

			connect()
			defer database.Close()

			job := routes.NewStatusJob(routes.Deps{
				DB:      database.DB,
				Storage: oss.NewStorageFromEnv(),
				Hub:     notifService.NewHub(),
			})
			job.PageSize = pageSize
			job.Concurrency = workers

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			color.Cyan("\n=== Job Rating Skripsi ===")
			sum, err := job.Run(ctx)
			printSummary(sum)
			if err != nil {
				color.Red("Job berhenti: %v", err)
				return err
			}
			if sum.Errors > 0 {
				color.Yellow("Selesai dengan %d error per baris (lihat log).", sum.Errors)
			} else {
				color.Green("Selesai tanpa error.")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Duration("timeout", 30*time.Minute, "Batas waktu satu run")
	f.Int("page-size", thesisService.DefaultPageSize, "Jumlah skripsi per halaman scan")
	f.Int("concurrency", thesisService.DefaultConcurrency, "Worker paralel per halaman")
	return cmd
}

func printSummary(sum thesisService.Summary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Dipindai", "Berubah", "Jadi FAILED", "Error", "Durasi"})
	table.Append([]string{
		strconv.FormatInt(sum.Scanned, 10),
		strconv.FormatInt(sum.Changed, 10),
		strconv.FormatInt(sum.Failed, 10),
		strconv.FormatInt(sum.Errors, 10),
		fmt.Sprint(sum.Duration.Round(time.Millisecond)),
	})
	table.Render()
}
