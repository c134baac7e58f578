package config

import (
	"flag"
	"os"

	"github.com/nextclip/attribution/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   address and port to bind the HTTP server
//	-s string   structured-store backend (memory|sqlite|redis|postgres)
//	-f string   sqlite database file path
//	-r string   redis address
//	-d string   postgres DSN
//	-k string   visitor-cookie signing secret
//	-m string   attribution cookie domain
//	-t duration attribution lifetime (e.g. 720h)
//
// Arguments are pre-filtered with flagx.FilterArgs so flags owned by
// other components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-s", "-f", "-r", "-d", "-k", "-m", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to bind")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "structured store backend")
	fs.StringVar(&cfg.SQLitePath, "f", cfg.SQLitePath, "sqlite database file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres dsn")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "visitor cookie signing secret")
	fs.StringVar(&cfg.CookieDomain, "m", cfg.CookieDomain, "attribution cookie domain")
	fs.DurationVar(&cfg.AttributionTTL, "t", cfg.AttributionTTL, "attribution lifetime")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
