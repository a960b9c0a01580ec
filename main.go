package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "net/http/pprof" // profiling

	_ "github.com/joho/godotenv/autoload" // automatically load .env files

	"github.com/menuboard/menuboard/internal/cmd"
	"github.com/menuboard/menuboard/internal/log"
)

func main() {
	if os.Getenv("MENUBOARD_PROFILE") != "" {
		go func() {
			defer log.RecoverPanic("pprof", nil)
			slog.Info("Serving pprof at localhost:6060")
			if httpErr := http.ListenAndServe("localhost:6060", nil); httpErr != nil {
				slog.Error("Failed to pprof listen", "error", httpErr)
			}
		}()
	}

	cmd.Execute()
}
