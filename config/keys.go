package config

const (
	delimiter = "."

	ServerPrefix  = "server"
	ServerAddr    = ServerPrefix + delimiter + "addr"
	ServerDataDir = ServerPrefix + delimiter + "data_dir"

	ClientPrefix  = "client"
	ClientBaseURL = ClientPrefix + delimiter + "base_url"
	ClientTimeout = ClientPrefix + delimiter + "timeout"

	CachePrefix     = "cache"
	CachePolicy     = CachePrefix + delimiter + "policy"
	CacheStore      = CachePrefix + delimiter + "store"
	CacheMaxEntries = CachePrefix + delimiter + "max_entries"

	GeneratePrefix  = "generate"
	GenerateWorkers = GeneratePrefix + delimiter + "workers"

	LogPrefix = "log"
	LogLevel  = LogPrefix + delimiter + "level"
	LogFormat = LogPrefix + delimiter + "format"
)

// Keys lists every key accepted by Config.Set.
var Keys = []string{
	ServerAddr, ServerDataDir,
	ClientBaseURL, ClientTimeout,
	CachePolicy, CacheStore, CacheMaxEntries,
	GenerateWorkers,
	LogLevel, LogFormat,
}
