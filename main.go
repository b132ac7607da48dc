package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cafe-analytics/common"
	"cafe-analytics/server"

	"github.com/op/go-logging"
)

const importCommand = "import"

var log = logging.MustGetLogger("log")

// InitLogger Receives the log level to be set in go-logging as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stdout, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	// Set the backends to be used.
	logging.SetBackend(backendLeveled)
	return nil
}

func configPath() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	return common.DefaultConfigFilePath
}

func main() {
	config, err := common.InitConfig(configPath())
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	if err := InitLogger(config.LogLevel); err != nil {
		log.Fatalf("%s", err)
	}

	log.Debugf("Config: %+v", config)

	if len(os.Args) > 1 && os.Args[1] == importCommand {
		if err := runImport(config); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		return
	}

	snapshot, err := loadSnapshot(config)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}
	if missing := snapshot.Missing(); len(missing) > 0 {
		log.Warningf("Optional sources not loaded: %v", missing)
	}

	srv := server.New(snapshot, config.CorsOrigins)
	go func() {
		if err := srv.Start(config.ServerAddress); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infof("Received signal %s, shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Failed to shut down gracefully: %v", err)
	}
}
