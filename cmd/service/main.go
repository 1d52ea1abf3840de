package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/fitforge/internal"
	"github.com/2beens/fitforge/internal/config"
	"github.com/2beens/fitforge/internal/logging"
	"github.com/2beens/fitforge/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of the given password (for FITFORGE_DEV_LOGIN_HASH) and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := pkg.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("hash password: %s", err)
		}
		fmt.Println(hash)
		return
	}

	fmt.Println("starting ...")
	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        cfg.SentryDSN,
		SentryServerName: "fitforge-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	if cfg.JWTSecret == "" {
		log.Fatalln("jwt secret not set. use FITFORGE_JWT_SECRET")
	}
	if cfg.DocStoreAuth == "" {
		log.Errorf("document store auth not set. use FITFORGE_STORE_AUTH")
	}
	if cfg.IdentityAPIKey == "" {
		log.Errorf("identity API key not set. use FITFORGE_IDENTITY_API_KEY")
	}
	if cfg.RedisPassword == "" {
		log.Errorf("redis password not set. use FITFORGE_REDIS_PASS")
	}
	if cfg.DevLoginEmail != "" && cfg.DevLoginHash == "" && !cfg.IsProduction() {
		log.Warnln("dev login email set without FITFORGE_DEV_LOGIN_HASH, dev account will not sign in")
	}
	if cfg.ChatGeneratorURL == "" {
		log.Warnln("chat generator url not set, chat falls back to canned replies")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	if cfg.HoneycombEnable {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:      cfg,
			VersionInfo: versionInfo,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
