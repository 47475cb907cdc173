package config

import (
	"time"

	"github.com/josephleon/leonweb/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Upload    Upload
	Admin     Admin
	Site      Site
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int     // listening port for the webserver
	ShutDownTime int     // wait time for shutdown
	URL          string  // base url for the webserver
	SecretKey    string  // base64 AES key used to encrypt the session cookie
	Metrics      bool    // expose /metrics
	Session      Session // session settings
}

// Upload holds the settings for blog post images.
type Upload struct {
	Dir               string   // directory the uploaded files are written to
	MaxSize           int64    // max accepted file size in bytes
	AllowedExtensions []string // lower case, with leading dot
}

// Admin holds the seeded administrator settings.
type Admin struct {
	Username        string
	InitialPassword string // empty generates a random one at first start
}

// Site holds public page settings.
type Site struct {
	HomePosts int // number of posts listed on the homepage
}
