package middleware

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// ServerInfo muestra información del gateway al iniciar
func ServerInfo(port, upstreamURL string, logger *zap.Logger) {
	hostname, _ := os.Hostname()
	goVersion := runtime.Version()
	numCPU := runtime.NumCPU()
	startTime := time.Now().Format("2006-01-02 15:04:05")

	fmt.Println("")
	fmt.Println(boldColor + "Inventory Gateway" + resetColor)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("Started at: " + startTime)
	fmt.Println("Server URL: " + cyanColor + "http://localhost:" + port + resetColor)
	fmt.Println("Upstream:   " + upstreamURL)
	fmt.Println("Hostname:   " + hostname)
	fmt.Println("Go Version: " + goVersion)
	fmt.Println("CPU Cores:  " + fmt.Sprintf("%d", numCPU))
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("")

	logger.Info("Server started successfully",
		zap.String("port", port),
		zap.String("upstream_url", upstreamURL),
		zap.String("hostname", hostname),
		zap.String("go_version", goVersion),
		zap.Int("cpu_cores", numCPU),
		zap.String("start_time", startTime),
	)
}
