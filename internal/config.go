package internal

import "time"

// Config holds every runtime knob of the service, loaded from the
// environment.
type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`

	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`

	MediaUploadURL string        `env:"MEDIA_UPLOAD_URL,required=true"`
	MediaTimeout   time.Duration `env:"MEDIA_TIMEOUT,default=10s"`

	MaxContentLength int `env:"MAX_CONTENT_LENGTH,default=4096"`

	EnableInspector bool `env:"ENABLE_INSPECTOR,default=false"`
	DebugPort       int  `env:"DEBUG_PORT,default=8081"`
}
