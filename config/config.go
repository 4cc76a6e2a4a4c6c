// Package config describes the server settings read by ardanlabs/conf from
// flags and CATALOG_* environment variables.
package config

import "time"

type Config struct {
	Web     Web
	Cors    Cors
	Session Session
	Auth    Auth
	Log     Log
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:3001"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string `conf:"default:http://localhost:3000"`
}

type Session struct {
	Lifetime     time.Duration `conf:"default:24h"`
	SecureCookie bool          `conf:"default:false"`
}

type Auth struct {
	AdminName     string `conf:"default:Administrator"`
	AdminEmail    string `conf:"default:admin@realtyonegroupmexico.mx"`
	AdminPassword string `conf:"mask"`

	LoginBurst    int           `conf:"default:5"`
	LoginInterval time.Duration `conf:"default:12s"`
	LoginExpiry   time.Duration `conf:"default:30m"`
}

type Log struct {
	Level string `conf:"default:info"`
}
