package structures

import "net/http"

type Route struct {
	Url     string
	Handler http.Handler
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

// StoreEntry is the snapshot form of one key-value pair, carrying the
// remaining TTL in seconds so a restore keeps the original expiry.
type StoreEntry struct {
	Key   string `json:"k"`
	Value string `json:"v"`
	TTL   int    `json:"ttl"`
}
