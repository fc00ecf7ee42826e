package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr         string
	CacheControl string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("DOCFRONT_ADDR"),
		},
		&cli.StringFlag{
			Name:        "cache-control",
			Usage:       "Cache-Control header of the landing page",
			Value:       "no-cache",
			Destination: &c.CacheControl,
			Sources:     cli.EnvVars("DOCFRONT_CACHE_CONTROL"),
		},
	}
}
