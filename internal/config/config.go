// Package config resolves the printer connection settings. The core never
// reads environment state directly; hosts build a Config (usually via
// FromEnv) and hand it to the engine.
package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Hard fallbacks, used when neither the payload nor the environment names
// a value.
const (
	DefaultPort = "COM7"
	DefaultBaud = 9600
)

// Config carries the externally supplied defaults for one engine.
type Config struct {
	Port         string
	Baud         int
	FontPath     string
	WriteTimeout time.Duration
}

// FromEnv builds a Config from the conventional environment variables.
func FromEnv() *Config {
	v := viper.New()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("baud", DefaultBaud)
	v.SetDefault("write_timeout", "10s")

	_ = v.BindEnv("port", "PRINTER_COM_PORT")
	_ = v.BindEnv("baud", "PRINTER_BAUD_RATE")
	_ = v.BindEnv("font_path", "PRINTER_FONT_PATH")
	_ = v.BindEnv("write_timeout", "PRINTER_WRITE_TIMEOUT")

	return &Config{
		Port:         v.GetString("port"),
		Baud:         v.GetInt("baud"),
		FontPath:     v.GetString("font_path"),
		WriteTimeout: v.GetDuration("write_timeout"),
	}
}

// ResolvePort picks the effective port: explicit payload value first, then
// the configured default, then the hard fallback. The result is
// normalized for the running platform.
func (c *Config) ResolvePort(explicit string) string {
	port := explicit
	if port == "" {
		port = c.Port
	}
	if port == "" {
		port = DefaultPort
	}
	return NormalizePort(port)
}

// ResolveBaud picks the effective baud rate with the same precedence.
func (c *Config) ResolveBaud(explicit int) int {
	if explicit > 0 {
		return explicit
	}
	if c.Baud > 0 {
		return c.Baud
	}
	return DefaultBaud
}

// NormalizePort rewrites Windows COM ports above COM9 to the \\.\COMn
// device form the Win32 API requires. Other platforms pass through.
func NormalizePort(port string) string {
	return normalizePort(port, runtime.GOOS)
}

func normalizePort(port, goos string) string {
	if goos != "windows" {
		return port
	}
	upper := strings.ToUpper(port)
	if !strings.HasPrefix(upper, "COM") {
		return port
	}
	n, err := strconv.Atoi(upper[3:])
	if err != nil || n <= 9 {
		return port
	}
	return fmt.Sprintf(`\\.\%s`, upper)
}
