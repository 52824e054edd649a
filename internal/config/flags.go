package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// cliOptions is the outcome of command-line parsing: the typed values of
// every flag that was actually set, plus the config-file path.
// configSet records whether -c/--config was present at all, so an
// explicitly empty path is still attempted (and fails) rather than being
// mistaken for "no file".
type cliOptions struct {
	raw        RawConfig
	configPath string
	configSet  bool
}

// parseFlags parses args (without the program name) against the full
// option surface.
//
// Flags:
//
//	-c/--config              json config file path
//	--port                   server listening port
//	--token                  authentication token
//	--certificate            end-entity certificate path
//	--private-key            certificate private key path
//	--congestion-controller  cubic|new_reno|bbr
//	--max-idle-time          connection idle timeout, milliseconds
//	--authentication-timeout authentication deadline, milliseconds
//	--max-udp-packet-size    maximum UDP packet size, bytes
//	--enable-ipv6            enable IPv6 support
//	--log-level              off|error|warn|info|debug|trace
//	-v/--version             print the version
//	-h/--help                print the usage text
//
// Help and version short-circuit as *HelpError / ErrVersion before any
// other validation. Leftover positional arguments are rejected with
// ErrUnexpectedArguments naming the offending tokens. Numeric options
// are declared as strings and converted here so a bad value surfaces as
// a strconv error naming the flag instead of a generic argument error.
func parseFlags(args []string) (*cliOptions, error) {
	fs := pflag.NewFlagSet("quictun-server", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)

	configPath := fs.StringP("config", "c", "", "Read the configuration from a JSON file. Command line arguments override values from the file")
	port := fs.String("port", "", "Set the server listening port")
	token := fs.String("token", "", "Set the token for authentication")
	certificate := fs.String("certificate", "", "Set the X.509 certificate. This must be an end-entity certificate")
	privateKey := fs.String("private-key", "", "Set the certificate private key")
	congestionController := fs.String("congestion-controller", "", `Set the congestion control algorithm. Available: "cubic", "new_reno", "bbr". Default: "cubic"`)
	maxIdleTime := fs.String("max-idle-time", "", "Set the maximum idle time for connections, in milliseconds. Default: 15000")
	authenticationTimeout := fs.String("authentication-timeout", "", "Set the maximum time allowed between a connection established and the authentication packet received, in milliseconds. Default: 1000")
	maxUDPPacketSize := fs.String("max-udp-packet-size", "", "Set the maximum UDP packet size, in bytes. Excess bytes may be discarded. Default: 1536")
	enableIPv6 := fs.Bool("enable-ipv6", false, "Enable IPv6 support")
	logLevel := fs.String("log-level", "", `Set the log level. Available: "off", "error", "warn", "info", "debug", "trace". Default: "info"`)
	version := fs.BoolP("version", "v", false, "Print the version")
	help := fs.BoolP("help", "h", false, "Print this help menu")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	if *help {
		return nil, &HelpError{Usage: usage(fs)}
	}

	if *version {
		return nil, ErrVersion
	}

	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedArguments, strings.Join(rest, ", "))
	}

	opts := &cliOptions{
		configPath: *configPath,
		configSet:  fs.Changed("config"),
	}

	if fs.Changed("port") {
		v, err := strconv.ParseUint(*port, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("--port: %w", err)
		}
		opts.raw.Port = ptr(uint16(v))
	}

	if fs.Changed("token") {
		opts.raw.Token = token
	}

	if fs.Changed("certificate") {
		opts.raw.Certificate = certificate
	}

	if fs.Changed("private-key") {
		opts.raw.PrivateKey = privateKey
	}

	if fs.Changed("congestion-controller") {
		opts.raw.CongestionController = congestionController
	}

	if fs.Changed("max-idle-time") {
		v, err := strconv.ParseUint(*maxIdleTime, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("--max-idle-time: %w", err)
		}
		opts.raw.MaxIdleTime = ptr(uint32(v))
	}

	if fs.Changed("authentication-timeout") {
		v, err := strconv.ParseUint(*authenticationTimeout, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("--authentication-timeout: %w", err)
		}
		opts.raw.AuthenticationTimeout = ptr(v)
	}

	if fs.Changed("max-udp-packet-size") {
		v, err := strconv.ParseUint(*maxUDPPacketSize, 10, strconv.IntSize-1)
		if err != nil {
			return nil, fmt.Errorf("--max-udp-packet-size: %w", err)
		}
		opts.raw.MaxUDPPacketSize = ptr(int(v))
	}

	// The flag can only enable IPv6, never disable it: the field is left
	// unset when the flag is absent so a file value survives the merge.
	if *enableIPv6 {
		opts.raw.EnableIPv6 = ptr(true)
	}

	if fs.Changed("log-level") {
		opts.raw.LogLevel = logLevel
	}

	return opts, nil
}

func usage(fs *pflag.FlagSet) string {
	return "Usage: quictun-server [OPTIONS]\n\nOptions:\n" + fs.FlagUsages()
}
