package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ventoux/quictun/internal/config"
	"github.com/ventoux/quictun/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.Load(os.Args[1:])

	var help *config.HelpError
	switch {
	case errors.As(err, &help):
		fmt.Print(help.Usage)
		return
	case errors.Is(err, config.ErrVersion):
		fmt.Println("quictun-server " + version())
		return
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.NewLogger("quictun-server", cfg.LogLevel)
	log.Info().
		Str("version", version()).
		Str("build_date", buildDate).
		Str("build_commit", buildCommit).
		Uint16("port", cfg.Port).
		Bool("enable_ipv6", cfg.EnableIPv6).
		Stringer("congestion_controller", cfg.Server.Congestion).
		Dur("authentication_timeout", cfg.AuthenticationTimeout).
		Int("max_udp_packet_size", cfg.MaxUDPPacketSize).
		Msg("configuration resolved")
}

func version() string {
	if buildVersion == "" {
		return "N/A"
	}

	return buildVersion
}
