package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Muslimceek/fastfoodmuslim/internal/global"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"
	"github.com/Muslimceek/fastfoodmuslim/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// startWorkers khởi động các background worker của bảng bếp:
// watcher theo dõi thay đổi đơn hàng và đồng hồ dùng chung.
func startWorkers(ctx context.Context) {
	log := logger.GetAppLogger()

	watchWorker, err := worker.NewKitchenWatchWorker()
	if err != nil {
		log.WithError(err).Error("Failed to create kitchen watch worker, bảng bếp sẽ không tự cập nhật realtime")
	} else {
		go utility.GoProtect(func() {
			watchWorker.Start(ctx)
		})
	}

	tickInterval := time.Duration(global.ServerConfig.KitchenTickSeconds) * time.Second
	clockWorker, err := worker.NewKitchenClockWorker(tickInterval)
	if err != nil {
		log.WithError(err).Error("Failed to create kitchen clock worker, thời gian chờ trên bảng sẽ không tự nhảy")
	} else {
		go utility.GoProtect(func() {
			clockWorker.Start(ctx)
		})
	}

	statsWorker, err := worker.NewStatsRefreshWorker(0)
	if err != nil {
		log.WithError(err).Error("Failed to create stats refresh worker, thống kê sẽ tính khi có request")
	} else {
		go utility.GoProtect(func() {
			statsWorker.Start(ctx)
		})
	}
}

// resolvePath trả về đường dẫn tuyệt đối, đi lên từ thư mục hiện tại
// đến khi gặp thư mục chứa config/env
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	app := InitFiberApp()

	cfg := global.ServerConfig
	address := cfg.Address

	log := logger.GetAppLogger()
	log.Info("Starting Fiber server...")

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			log.Fatalf("TLS certificate file not found: %s (resolved from: %s)", certPath, cfg.TLSCertFile)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			log.Fatalf("TLS key file not found: %s (resolved from: %s)", keyPath, cfg.TLSKeyFile)
		}

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		tlsListener := tls.NewListener(ln, tlsConfig)

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
			"key":     keyPath,
		}).Info("Starting server with HTTPS/TLS")

		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Khởi tạo dữ liệu mặc định
	InitDefaultData()

	// Khởi động các background worker của bảng bếp
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx)

	// Chạy Fiber server trên main thread
	main_thread()
}
