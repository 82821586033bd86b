package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// Lookup helpers.  An unset or unparsable variable yields the default.

func envStr(k, def string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return def
}

func envBool(k string, def bool) bool {
    switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return def
}

func envInt(k string, def int) int {
    if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
        return n
    }
    return def
}

func envFloat(k string, def float64) float64 {
    if f, err := strconv.ParseFloat(os.Getenv(k), 64); err == nil {
        return f
    }
    return def
}

func envDur(k string, def time.Duration) time.Duration {
    if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
        return d
    }
    return def
}
